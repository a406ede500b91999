package rover

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Direction is the cmd value of a /drive request.
type Direction string

const (
	DirForward  Direction = "F"
	DirBackward Direction = "B"
	DirLeft     Direction = "L"
	DirRight    Direction = "R"
	DirStop     Direction = "S"
)

// Speed and throttle limits.
const (
	MaxSpeed    = 100
	MaxThrottle = 100
	MinThrottle = -100
)

// DriveCommand is a single drive instruction. Speed is only sent for
// forward and backward motion.
type DriveCommand struct {
	Dir   Direction
	Speed int
}

// Forward drives forward at speed (clamped to [0,100]).
func Forward(speed int) DriveCommand {
	return DriveCommand{Dir: DirForward, Speed: lo.Clamp(speed, 0, MaxSpeed)}
}

// Backward drives backward at speed (clamped to [0,100]).
func Backward(speed int) DriveCommand {
	return DriveCommand{Dir: DirBackward, Speed: lo.Clamp(speed, 0, MaxSpeed)}
}

// Left turns left.
func Left() DriveCommand { return DriveCommand{Dir: DirLeft} }

// Right turns right.
func Right() DriveCommand { return DriveCommand{Dir: DirRight} }

// Stop halts the motors.
func Stop() DriveCommand { return DriveCommand{Dir: DirStop} }

// FromThrottle maps a signed throttle in [-100,100] to a command:
// zero stops, positive goes forward, negative goes backward.
func FromThrottle(throttle int) DriveCommand {
	switch {
	case throttle == 0:
		return Stop()
	case throttle > 0:
		return Forward(throttle)
	default:
		return Backward(-throttle)
	}
}

// HasSpeed reports whether the speed parameter is part of the request.
func (c DriveCommand) HasSpeed() bool {
	return c.Dir == DirForward || c.Dir == DirBackward
}

// Query encodes the command as /drive query parameters.
func (c DriveCommand) Query() url.Values {
	q := url.Values{"cmd": {string(c.Dir)}}
	if c.HasSpeed() {
		q.Set("speed", strconv.Itoa(c.Speed))
	}
	return q
}

func (c DriveCommand) String() string {
	if c.HasSpeed() {
		return fmt.Sprintf("%s %d", c.Dir, c.Speed)
	}
	return string(c.Dir)
}

// ParseDrive builds a command from a CLI direction letter and optional speed.
func ParseDrive(dir string, speed int) (DriveCommand, error) {
	switch Direction(strings.ToUpper(dir)) {
	case DirForward:
		return Forward(speed), nil
	case DirBackward:
		return Backward(speed), nil
	case DirLeft:
		return Left(), nil
	case DirRight:
		return Right(), nil
	case DirStop:
		return Stop(), nil
	}
	return DriveCommand{}, fmt.Errorf("unknown drive direction %q", dir)
}
