package config

import "time"

// Field is a config key with its default value.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Default lists every known key.
var Default = map[string]Field{}

func define(key string, value any, description string) {
	Default[key] = Field{Key: key, Value: value, Description: description}
}

func init() {
	define(ProbeTimeout, 1500*time.Millisecond, "Timeout for each stream probe")
	define(DriveDebounce, 60*time.Millisecond, "Quiet period before a throttle change is sent")
	define(DriveTurnTap, 150*time.Millisecond, "How long a keyboard turn lasts before stop")
	define(ArmDebounce, 80*time.Millisecond, "Quiet period before a joint angle is sent, per joint")
	define(StreamPollFPS, 2, "Snapshot polling rate in frames per second")
	define(PingInterval, 3*time.Second, "How often the device liveness probe runs")
	define(PingTimeout, 1500*time.Millisecond, "Timeout for the liveness probe")
	define(RelayAddr, "127.0.0.1:8181", "Listen address of the local viewer")
	define(LogsWrite, false, "Write logs to the logs directory")
	define(LogsLevel, "info", "Log level")
	define(LogsJSON, false, "Write logs as JSON")
}
