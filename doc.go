// Package rover drives a small HTTP-controlled robot from the terminal.
//
// The robot exposes a tiny HTTP API for its drive motors and a three-joint
// arm. A camera on the same network is probed for a raw MJPEG stream, then
// for a snapshot endpoint to poll, and otherwise shown as its own web page.
//
// # Installation
//
//	go install github.com/gwillem/rover/cmd/rover@latest
//
// # Usage
//
// First, save the robot and camera addresses:
//
//	rover setup
//
// Then drive:
//
//	rover control
//
// The camera feed is re-served on http://127.0.0.1:8181 while control runs.
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/rover: CLI with control, setup, resolve, relay, drive, servo and ping commands
//   - pkg/rover: Device client, drive and joint commands, saved settings
//   - pkg/stream: Camera stream resolution, snapshot polling, player and viewer relay
//   - pkg/teleop: Controller that debounces operator input into device commands
//   - pkg/config, pkg/log, pkg/where, pkg/filesystem, pkg/network: Shared plumbing
package rover
