package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/gwillem/rover/pkg/config"
	"github.com/gwillem/rover/pkg/log"
	"github.com/gwillem/rover/pkg/rover"
	"github.com/gwillem/rover/pkg/stream"
	"github.com/gwillem/rover/pkg/teleop"
)

type ControlCommand struct {
	Base    string `long:"base" short:"b" description:"Robot base URL for this session (default: saved setting)"`
	Stream  string `long:"stream" short:"s" description:"Camera URL to open on start"`
	Relay   string `long:"relay" description:"Viewer listen address (default: config relay.addr)"`
	NoRelay bool   `long:"no-relay" description:"Do not serve the camera viewer"`
}

const (
	headerHeight = 2 // title + blank line
	legendHeight = 2 // legend row + blank
	statusHeight = 4 // device, arm, stream and input rows
	footerHeight = 8 // log box + help
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border

	throttleSeries = "throttle"
)

// Series colors
var seriesColors = map[string]string{
	throttleSeries:         "196", // red
	string(rover.Shoulder): "226", // yellow
	string(rover.Elbow):    "46",  // green
	string(rover.Grip):     "51",  // cyan
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
)

type editTarget int

const (
	editNone editTarget = iota
	editBase
	editCamera
)

type controlModel struct {
	ctrl      *teleop.Controller
	chart     *streamlinechart.Model
	keys      *controlKeymap
	help      help.Model
	input     textinput.Model
	editing   editTarget
	joint     rover.Joint
	relayAddr string
	relayErr  error
	autoplay  string // camera URL opened on the first state update

	state    teleop.State
	lastPlot []float64 // previous chart sample, to freeze when idle
	width    int
	height   int
	logs     []string
	quitting bool
}

func (m *controlModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// sample returns the chart values for state in series order.
func sample(state teleop.State) []float64 {
	values := []float64{float64(state.Throttle)}
	for _, j := range rover.AllJoints() {
		values = append(values, float64(state.Joints[j]))
	}
	return values
}

// hasMovement reports whether values differ from the last plotted sample.
func (m *controlModel) hasMovement(values []float64) bool {
	if len(m.lastPlot) != len(values) {
		return true
	}
	for i, v := range values {
		if v != m.lastPlot[i] {
			return true
		}
	}
	return false
}

// Messages from the controller
type stateMsg teleop.State
type logMsg string
type relayErrMsg struct{ err error }

func waitForState(ctrl *teleop.Controller) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-ctrl.States())
	}
}

func waitForLog(ctrl *teleop.Controller) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-ctrl.Logs())
	}
}

// chartSize calculates the size of the chart based on terminal dimensions
func (m *controlModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 12 // default size before we know terminal size
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - legendHeight - statusHeight - footerHeight - borderSize
	if height < 6 {
		height = 6
	}
	return width, height
}

func (m *controlModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

func chartSeries() []string {
	series := []string{throttleSeries}
	for _, j := range rover.AllJoints() {
		series = append(series, string(j))
	}
	return series
}

func initialControlModel(ctrl *teleop.Controller, relayAddr, autoplay string) controlModel {
	chart := streamlinechart.New(80, 12,
		streamlinechart.WithYRange(-rover.MaxThrottle, rover.MaxAngle),
	)
	for _, name := range chartSeries() {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(seriesColors[name]))
		chart.SetDataSetStyles(name, runes.ThinLineStyle, style)
	}

	input := textinput.New()
	input.CharLimit = 200

	return controlModel{
		ctrl:      ctrl,
		chart:     &chart,
		keys:      newControlKeymap(),
		help:      help.New(),
		input:     input,
		joint:     rover.Shoulder,
		relayAddr: relayAddr,
		autoplay:  autoplay,
		state:     ctrl.State(),
	}
}

func (m controlModel) Init() tea.Cmd {
	return tea.Batch(
		waitForState(m.ctrl),
		waitForLog(m.ctrl),
	)
}

func (m controlModel) startEditing(target editTarget) (tea.Model, tea.Cmd) {
	m.editing = target
	m.keys.editing = true
	switch target {
	case editBase:
		m.input.Prompt = "Robot URL: "
		m.input.Placeholder = "http://192.168.4.1"
		m.input.SetValue(m.state.BaseURL)
	case editCamera:
		m.input.Prompt = "Camera URL: "
		m.input.Placeholder = "192.168.4.1 or http://host:81/stream"
		m.input.SetValue(m.state.StreamURL)
	}
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return m, cmd
}

func (m controlModel) stopEditing() controlModel {
	m.editing = editNone
	m.keys.editing = false
	m.input.Blur()
	m.input.SetValue("")
	return m
}

func (m controlModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.forceQuit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.cancel):
		return m.stopEditing(), nil

	case key.Matches(msg, m.keys.confirm):
		value := strings.TrimSpace(m.input.Value())
		target := m.editing
		m = m.stopEditing()
		switch target {
		case editBase:
			if err := m.ctrl.SaveBaseURL(value); err != nil {
				m.addLog(err.Error())
			}
		case editCamera:
			m.ctrl.StartStream(value)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m controlModel) updateDriving(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.quit, k.forceQuit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, k.throttleUp):
		m.ctrl.NudgeThrottle(teleop.ThrottleStep)
	case key.Matches(msg, k.throttleDown):
		m.ctrl.NudgeThrottle(-teleop.ThrottleStep)
	case key.Matches(msg, k.left):
		m.ctrl.Turn(rover.Left())
	case key.Matches(msg, k.right):
		m.ctrl.Turn(rover.Right())
	case key.Matches(msg, k.stop):
		m.ctrl.StopDrive()

	case key.Matches(msg, k.shoulder):
		m.joint = rover.Shoulder
	case key.Matches(msg, k.elbow):
		m.joint = rover.Elbow
	case key.Matches(msg, k.grip):
		m.joint = rover.Grip
	case key.Matches(msg, k.angleUp):
		m.ctrl.NudgeJoint(m.joint, teleop.AngleStep)
	case key.Matches(msg, k.angleDown):
		m.ctrl.NudgeJoint(m.joint, -teleop.AngleStep)
	case key.Matches(msg, k.home):
		m.ctrl.HomePose()

	case key.Matches(msg, k.toggleStream):
		m.ctrl.ToggleStream("")
	case key.Matches(msg, k.slower):
		m.ctrl.NudgePollFPS(-1)
	case key.Matches(msg, k.faster):
		m.ctrl.NudgePollFPS(1)

	case key.Matches(msg, k.editBase):
		return m.startEditing(editBase)
	case key.Matches(msg, k.editCamera):
		return m.startEditing(editCamera)

	case key.Matches(msg, k.showHelp):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m controlModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		if m.editing != editNone {
			return m.updateEditing(msg)
		}
		return m.updateDriving(msg)

	case stateMsg:
		m.state = teleop.State(msg)
		if m.autoplay != "" {
			m.ctrl.StartStream(m.autoplay)
			m.autoplay = ""
		}
		// Only update chart if there's movement (freeze when idle)
		if values := sample(m.state); m.hasMovement(values) {
			for i, name := range chartSeries() {
				m.chart.PushDataSet(name, values[i])
			}
			m.chart.DrawAll()
			m.lastPlot = values
		}
		return m, waitForState(m.ctrl)

	case logMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.ctrl)

	case relayErrMsg:
		m.relayErr = msg.err
		m.addLog("Viewer failed: " + msg.err.Error())
		return m, nil
	}

	if m.editing != editNone {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m controlModel) View() string {
	if m.quitting {
		return "Rover stopped.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render("Rover Control"))
	if m.width > 0 {
		sb.WriteString(statusStyle.Render(fmt.Sprintf("  [%dx%d]", m.width, m.height)))
	}
	sb.WriteString("\n\n")

	// Chart
	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	// Legend
	sb.WriteString(renderLegend())
	sb.WriteString("\n")

	// Status
	sb.WriteString(m.renderDevice())
	sb.WriteString("\n")
	sb.WriteString(m.renderArm())
	sb.WriteString("\n")
	sb.WriteString(m.renderStream())
	sb.WriteString("\n")
	if m.editing != editNone {
		sb.WriteString(m.input.View())
	}
	sb.WriteString("\n")

	// Log box
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(max(m.width-4, 20))

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("Press 'q' to quit")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	sb.WriteString("\n")

	return sb.String()
}

func (m controlModel) renderDevice() string {
	status := errorStyle.Render("● offline")
	if m.state.Online {
		status = successStyle.Render("● online")
	}
	base := m.state.BaseURL
	if base == "" {
		base = "no robot set, press u"
	}
	return fmt.Sprintf("%s  %s  throttle %s",
		status, statusStyle.Render(base), headerStyle.Render(fmt.Sprintf("%+d", m.state.Throttle)))
}

func (m controlModel) renderArm() string {
	var items []string
	for _, j := range rover.AllJoints() {
		item := fmt.Sprintf("%s %3d°", j, m.state.Joints[j])
		if j == m.joint {
			item = selectStyle.Render(item)
		}
		items = append(items, item)
	}
	return strings.Join(items, "  ")
}

func (m controlModel) renderStream() string {
	var sb strings.Builder

	st := m.state.Stream
	switch {
	case m.state.Resolving:
		sb.WriteString(warnStyle.Render("camera: probing…"))
	case st.Source.IsZero():
		sb.WriteString(statusStyle.Render("camera: off"))
	default:
		sb.WriteString(successStyle.Render("camera: " + st.Source.Kind.String()))
		sb.WriteString(" " + statusStyle.Render(st.Source.URL))
		switch st.Source.Kind {
		case stream.KindSnapshot:
			sb.WriteString(fmt.Sprintf("  %d fps", m.state.PollFPS))
			fallthrough
		case stream.KindMJPEG:
			sb.WriteString(fmt.Sprintf("  %d frames", st.Frames))
			if !st.LastFrame.IsZero() {
				sb.WriteString(statusStyle.Render(fmt.Sprintf(" (%s ago)", time.Since(st.LastFrame).Round(100*time.Millisecond))))
			}
		}
	}

	switch {
	case m.relayAddr == "":
	case m.relayErr != nil:
		sb.WriteString("  " + errorStyle.Render("viewer down"))
	default:
		sb.WriteString("  " + statusStyle.Render("view at http://"+m.relayAddr))
	}
	return sb.String()
}

func renderLegend() string {
	var items []string
	for _, name := range chartSeries() {
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(seriesColors[name])).Bold(true)
		items = append(items, colorStyle.Render("━━")+" "+name)
	}
	return strings.Join(items, "  ")
}

func (c *ControlCommand) Execute(args []string) error {
	store := rover.OpenStore()
	client := newDeviceClient(c.Base)

	monitor := &stream.Monitor{}
	displays := stream.Displays{monitor}

	var relay *stream.Relay
	relayAddr := c.Relay
	if relayAddr == "" {
		relayAddr = viper.GetString(config.RelayAddr)
	}
	if c.NoRelay {
		relayAddr = ""
	} else {
		relay = stream.NewRelay()
		displays = append(displays, relay)
	}

	var ctrl *teleop.Controller
	player := stream.NewPlayer(stream.PlayerConfig{
		Resolver: newResolver(0),
		Display:  displays,
		FPS:      viper.GetInt(config.StreamPollFPS),
		OnError: func(err error) {
			ctrl.StreamError(err)
		},
	})

	ctrl, err := teleop.NewController(teleop.Config{
		Client:        client,
		Store:         store,
		Player:        player,
		Monitor:       monitor,
		DriveDebounce: viper.GetDuration(config.DriveDebounce),
		ArmDebounce:   viper.GetDuration(config.ArmDebounce),
		TurnTap:       viper.GetDuration(config.DriveTurnTap),
		PingInterval:  viper.GetDuration(config.PingInterval),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create controller: %v\n", err)
		os.Exit(1)
	}
	defer ctrl.Close()

	// Start controller and viewer in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := ctrl.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Errorf("controller: %v", err)
		}
	}()

	// Run TUI
	model := initialControlModel(ctrl, relayAddr, c.Stream)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if relay != nil {
		go func() {
			if err := relay.ListenAndServe(ctx, relayAddr); err != nil {
				p.Send(relayErrMsg{err})
			}
		}()
	}
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}

	// Let the controller send its final stop
	cancel()
	<-done
	return nil
}
