package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gwillem/rover/pkg/rover"
)

const oneShotTimeout = 3 * time.Second

type DriveCommand struct {
	DeviceOptions
	Args struct {
		Dir   string `positional-arg-name:"DIR" description:"F, B, L, R or S" required:"yes"`
		Speed int    `positional-arg-name:"SPEED" description:"0-100, forward and backward only"`
	} `positional-args:"yes"`
}

func (c *DriveCommand) Execute(args []string) error {
	cmd, err := rover.ParseDrive(c.Args.Dir, c.Args.Speed)
	if err != nil {
		return err
	}

	client := c.client(rover.OpenStore())
	ctx, cancel := context.WithTimeout(context.Background(), oneShotTimeout)
	defer cancel()

	if err := client.Drive(ctx, cmd); err != nil {
		return err
	}
	fmt.Println(successStyle.Render("Sent drive " + cmd.String()))
	return nil
}

type ServoCommand struct {
	DeviceOptions
	Args struct {
		Joint string `positional-arg-name:"JOINT" description:"shoulder, elbow or grip" required:"yes"`
		Angle int    `positional-arg-name:"ANGLE" description:"0-180" required:"yes"`
	} `positional-args:"yes"`
}

func (c *ServoCommand) Execute(args []string) error {
	joint, err := rover.ParseJoint(c.Args.Joint)
	if err != nil {
		return err
	}

	client := c.client(rover.OpenStore())
	ctx, cancel := context.WithTimeout(context.Background(), oneShotTimeout)
	defer cancel()

	angle := rover.ClampAngle(c.Args.Angle)
	if err := client.SetServo(ctx, joint, angle); err != nil {
		return err
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("Moved %s to %d°", joint, angle)))
	return nil
}

type PingCommand struct {
	DeviceOptions
}

func (c *PingCommand) Execute(args []string) error {
	client := c.client(rover.OpenStore())
	if client.Ping(context.Background()) {
		fmt.Println(successStyle.Render("Online") + dimStyle.Render("  "+client.BaseURL()))
		return nil
	}
	fmt.Println(errorStyle.Render("Offline") + dimStyle.Render("  "+client.BaseURL()))
	os.Exit(1)
	return nil
}
