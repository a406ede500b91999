package teleop

import (
	"context"
	"sync"

	"github.com/gwillem/rover/pkg/log"
	"github.com/gwillem/rover/pkg/rover"
)

// AngleStep is how far one key press moves a joint.
const AngleStep = 5

// SetJoint records an angle and sends it once that joint has been quiet for
// the arm debounce. Joints debounce independently.
func (c *Controller) SetJoint(j rover.Joint, angle int) {
	c.mu.Lock()
	c.joints[j] = rover.ClampAngle(angle)
	c.mu.Unlock()

	c.publish()
	c.debounceArm(j)
}

// NudgeJoint moves a joint by delta degrees.
func (c *Controller) NudgeJoint(j rover.Joint, delta int) {
	c.mu.RLock()
	angle := c.joints[j]
	c.mu.RUnlock()
	c.SetJoint(j, angle+delta)
}

// HomePose moves every joint to 90 degrees. The requests go out together.
func (c *Controller) HomePose() {
	joints := rover.AllJoints()

	for _, j := range joints {
		c.cancelArm(j)
	}
	c.mu.Lock()
	for _, j := range joints {
		c.joints[j] = rover.HomeAngle
	}
	c.mu.Unlock()
	c.publish()

	go func() {
		var wg sync.WaitGroup
		for _, j := range joints {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.servo(j, rover.HomeAngle)
			}()
		}
		wg.Wait()
		c.log("Arm at home pose")
	}()
}

func (c *Controller) sendJoint(j rover.Joint) {
	c.mu.RLock()
	angle := c.joints[j]
	c.mu.RUnlock()
	c.servo(j, angle)
}

func (c *Controller) servo(j rover.Joint, angle int) {
	ctx, cancel := context.WithTimeout(c.baseContext(), commandTimeout)
	defer cancel()

	if err := c.client.SetServo(ctx, j, angle); err != nil {
		log.Debug(err)
	}
}
