// Package rover talks to the robot over its HTTP control API.
package rover

import (
	"fmt"

	"github.com/samber/lo"
)

// Joint identifies a servo on the arm.
type Joint string

// Joints of the 3-joint arm.
const (
	Shoulder Joint = "shoulder"
	Elbow    Joint = "elbow"
	Grip     Joint = "grip"
)

// Angle limits accepted by /setServo.
const (
	MinAngle  = 0
	MaxAngle  = 180
	HomeAngle = 90
)

// AllJoints returns all joints in display order.
func AllJoints() []Joint {
	return []Joint{Shoulder, Elbow, Grip}
}

// ParseJoint returns the joint with the given name.
func ParseJoint(name string) (Joint, error) {
	for _, j := range AllJoints() {
		if string(j) == name {
			return j, nil
		}
	}
	return "", fmt.Errorf("unknown joint %q", name)
}

// ClampAngle limits an angle to [MinAngle, MaxAngle].
func ClampAngle(angle int) int {
	return lo.Clamp(angle, MinAngle, MaxAngle)
}
