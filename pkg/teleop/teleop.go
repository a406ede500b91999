// Package teleop turns operator input into robot commands and owns the
// application state shared with the TUI.
package teleop

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/gwillem/rover/pkg/log"
	"github.com/gwillem/rover/pkg/rover"
	"github.com/gwillem/rover/pkg/stream"
)

// Default timings.
const (
	DefaultDriveDebounce = 60 * time.Millisecond
	DefaultArmDebounce   = 80 * time.Millisecond
	DefaultTurnTap       = 150 * time.Millisecond
	DefaultPingInterval  = 3 * time.Second

	commandTimeout = 3 * time.Second
	statsInterval  = 250 * time.Millisecond
)

// State is a snapshot of the controller for display.
type State struct {
	Online    bool
	BaseURL   string
	StreamURL string
	Throttle  int
	Joints    map[rover.Joint]int
	Resolving bool
	PollFPS   int
	Stream    stream.MonitorState
	Timestamp time.Time
}

// Config holds configuration for the controller.
type Config struct {
	Client  *rover.Client
	Store   *rover.Store // nil disables persistence
	Player  *stream.Player
	Monitor *stream.Monitor

	DriveDebounce time.Duration
	ArmDebounce   time.Duration
	TurnTap       time.Duration
	PingInterval  time.Duration
}

// Controller mediates every read and write of the application state.
// Drive and arm changes are debounced per purpose: one timer for the
// throttle and one per joint.
type Controller struct {
	client       *rover.Client
	store        *rover.Store
	player       *stream.Player
	monitor      *stream.Monitor
	turnTap      time.Duration
	pingInterval time.Duration

	debounceDrive func()
	cancelDrive   func()
	debounceArm   func(rover.Joint)
	cancelArm     func(rover.Joint)

	mu        sync.RWMutex
	ctx       context.Context
	running   bool
	online    bool
	throttle  int
	joints    map[rover.Joint]int
	streamURL string
	resolving bool

	stateCh chan State
	logCh   chan string
}

// NewController creates a controller. Client is required. Monitor should be
// one of the player's displays; both are created when Player is nil.
func NewController(cfg Config) (*Controller, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("teleop: client is required")
	}
	if cfg.Monitor == nil {
		cfg.Monitor = &stream.Monitor{}
	}
	if cfg.Player == nil {
		cfg.Player = stream.NewPlayer(stream.PlayerConfig{Display: cfg.Monitor})
	}
	if cfg.DriveDebounce <= 0 {
		cfg.DriveDebounce = DefaultDriveDebounce
	}
	if cfg.ArmDebounce <= 0 {
		cfg.ArmDebounce = DefaultArmDebounce
	}
	if cfg.TurnTap <= 0 {
		cfg.TurnTap = DefaultTurnTap
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = DefaultPingInterval
	}

	c := &Controller{
		client:       cfg.Client,
		store:        cfg.Store,
		player:       cfg.Player,
		monitor:      cfg.Monitor,
		turnTap:      cfg.TurnTap,
		pingInterval: cfg.PingInterval,
		ctx:          context.Background(),
		joints:       make(map[rover.Joint]int),
		stateCh:      make(chan State, 1),
		logCh:        make(chan string, 10),
	}
	for _, j := range rover.AllJoints() {
		c.joints[j] = rover.HomeAngle
	}

	c.debounceDrive, c.cancelDrive = lo.NewDebounce(cfg.DriveDebounce, c.sendThrottle)
	c.debounceArm, c.cancelArm = lo.NewDebounceBy(cfg.ArmDebounce, func(j rover.Joint, _ int) {
		c.sendJoint(j)
	})

	if cfg.Store != nil {
		settings, err := cfg.Store.Load()
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		if c.client.BaseURL() == "" {
			c.client.SetBaseURL(settings.BaseURL)
		}
		c.streamURL = settings.StreamURL
	}

	return c, nil
}

// States returns a channel that receives state updates.
func (c *Controller) States() <-chan State {
	return c.stateCh
}

// Logs returns a channel that receives log messages.
func (c *Controller) Logs() <-chan string {
	return c.logCh
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// the player knows the live poll period after a rate change
	st := c.monitor.State()
	st.Source = c.player.Source()

	return State{
		Online:    c.online,
		BaseURL:   c.client.BaseURL(),
		StreamURL: c.streamURL,
		Throttle:  c.throttle,
		Joints:    lo.Assign(c.joints),
		Resolving: c.resolving,
		PollFPS:   c.player.FPS(),
		Stream:    st,
		Timestamp: time.Now(),
	}
}

func (c *Controller) log(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	log.Info(text)

	msg := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), text)
	select {
	case c.logCh <- msg:
	default:
		// Drop if channel full
	}
}

func (c *Controller) publish() {
	s := c.State()
	select {
	case c.stateCh <- s:
	default:
		// Replace the stale state nobody has read yet
		select {
		case <-c.stateCh:
		default:
		}
		select {
		case c.stateCh <- s:
		default:
		}
	}
}

func (c *Controller) baseContext() context.Context {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ctx
}

// Start runs the liveness ping loop until ctx ends.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("already running")
	}
	c.running = true
	c.ctx = ctx
	c.mu.Unlock()

	if base := c.client.BaseURL(); base != "" {
		c.log("Device: %s", base)
	} else {
		c.log("No device configured, press 'u' to set one")
	}
	c.ping(ctx)

	pings := time.NewTicker(c.pingInterval)
	defer pings.Stop()
	stats := time.NewTicker(statsInterval)
	defer stats.Stop()

	for {
		select {
		case <-ctx.Done():
			c.shutdown()
			return ctx.Err()
		case <-pings.C:
			c.ping(ctx)
		case <-stats.C:
			if c.player.Active() {
				c.publish()
			}
		}
	}
}

func (c *Controller) ping(ctx context.Context) {
	online := c.client.Ping(ctx)

	c.mu.Lock()
	changed := online != c.online
	c.online = online
	c.mu.Unlock()

	if changed {
		if online {
			c.log("Device online")
		} else {
			c.log("Device offline")
		}
	}
	c.publish()
}

// Close stops the stream and drops pending commands.
func (c *Controller) Close() {
	c.cancelDrive()
	for _, j := range rover.AllJoints() {
		c.cancelArm(j)
	}
	c.player.Stop()
}

func (c *Controller) shutdown() {
	c.Close()

	c.mu.Lock()
	c.running = false
	c.ctx = context.Background()
	c.mu.Unlock()

	// Leave the motors stopped
	ctx, cancel := context.WithTimeout(context.Background(), rover.DefaultPingTimeout)
	defer cancel()
	if err := c.client.Drive(ctx, rover.Stop()); err != nil {
		log.Debugf("final stop: %v", err)
	}
	c.log("Teleoperation stopped")
}
