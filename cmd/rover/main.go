package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/gwillem/rover/pkg/config"
	"github.com/gwillem/rover/pkg/log"
)

type Options struct {
	Control ControlCommand `command:"control" alias:"ctl" description:"Drive the robot and watch its camera from the terminal"`
	Setup   SetupCommand   `command:"setup" description:"Save the robot and camera addresses"`
	Resolve ResolveCommand `command:"resolve" description:"Probe a camera URL and report what it serves"`
	Relay   RelayCommand   `command:"relay" description:"Serve the camera feed to a browser without the TUI"`
	Drive   DriveCommand   `command:"drive" description:"Send one drive command (F, B, L, R or S)"`
	Servo   ServoCommand   `command:"servo" description:"Move one arm joint"`
	Ping    PingCommand    `command:"ping" description:"Check whether the robot answers"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "rover - remote control for an HTTP robot with a camera"

	if err := config.Setup(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		os.Exit(1)
	}
	if err := log.Setup(); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
