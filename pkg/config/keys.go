package config

// Config keys. Each is also readable from ROVER_<KEY> with dots as underscores.
const (
	ProbeTimeout = "probe.timeout"

	DriveDebounce = "drive.debounce"
	DriveTurnTap  = "drive.turn_tap"
	ArmDebounce   = "arm.debounce"

	StreamPollFPS = "stream.poll_fps"

	PingInterval = "ping.interval"
	PingTimeout  = "ping.timeout"

	RelayAddr = "relay.addr"

	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJSON  = "logs.json"
)
