package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/gwillem/rover/pkg/rover"
	"github.com/gwillem/rover/pkg/stream"
)

type SetupCommand struct{}

func (c *SetupCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("Rover Setup"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━"))
	fmt.Println()

	store := rover.OpenStore()
	settings, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading settings: %v\n", err)
		os.Exit(1)
	}

	// Step 1: Ask for addresses
	base, camera := askAddresses(settings)

	base, err = store.SaveBaseURL(base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
		os.Exit(1)
	}

	// Step 2: Check the robot
	fmt.Println()
	fmt.Println(subHeaderStyle.Render("━━━ Robot ━━━"))
	fmt.Println()
	client := checkRobot(base)
	if client != nil && confirm("Move the arm to its home pose?", "The arm that moves is the one you configured") {
		homeArm(client)
	}

	// Step 3: Find the camera feed
	if stream.Normalize(camera) != "" {
		fmt.Println()
		fmt.Println(subHeaderStyle.Render("━━━ Camera ━━━"))
		fmt.Println()

		src, err := probeCamera(camera)
		if err != nil {
			fmt.Println()
			os.Exit(0)
		}
		fmt.Println(renderSource(src))

		if err := store.SaveStreamURL(src.URL); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println()
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"))
	fmt.Println(successStyle.Render("Setup complete!"))
	fmt.Println()
	fmt.Println("Start driving with: " + headerStyle.Render("rover control"))

	return nil
}

func askAddresses(settings rover.Settings) (base, camera string) {
	base, camera = settings.BaseURL, settings.StreamURL

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Robot address").
				Description("Host or URL of the robot's HTTP API, e.g. 192.168.4.1").
				Value(&base).
				Validate(func(s string) error {
					if rover.NormalizeURL(s) == "" {
						return errors.New("an address is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Camera address").
				Description("Leave empty to skip. A bare host also tries port 81").
				Value(&camera),
		),
	)

	if err := form.Run(); err != nil {
		fmt.Println()
		os.Exit(0)
	}
	return base, camera
}

func checkRobot(base string) *rover.Client {
	client := newDeviceClient(base)

	fmt.Printf("Checking %s...\n", base)
	if !client.Ping(context.Background()) {
		fmt.Println(errorStyle.Render("Offline") + dimStyle.Render("  address saved, try again when the robot is on"))
		return nil
	}
	fmt.Println(successStyle.Render("Online"))
	return client
}

func homeArm(client *rover.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), oneShotTimeout)
	defer cancel()

	for _, j := range rover.AllJoints() {
		if err := client.SetServo(ctx, j, rover.HomeAngle); err != nil {
			fmt.Printf("  %-8s %s\n", j, errorStyle.Render(shortError(err)))
			continue
		}
		fmt.Printf("  %-8s %s\n", j, successStyle.Render(fmt.Sprintf("%d°", rover.HomeAngle)))
	}
}

func confirm(title, description string) bool {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("Skip").
				Value(&ok),
		),
	)
	if err := form.Run(); err != nil {
		fmt.Println()
		os.Exit(0)
	}
	return ok
}

var errProbeCancelled = errors.New("probe cancelled")

// probeCamera resolves camera while showing each probe as it completes.
func probeCamera(camera string) (stream.Source, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := tea.NewProgram(newProbeModel(stream.Normalize(camera), cancel))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		src := newResolver(0).Observe(ctx, camera, func(pr stream.Probe) {
			p.Send(probeMsg(pr))
		})
		p.Send(resolvedMsg(src))
	}()

	final, err := p.Run()
	cancel()
	wg.Wait()
	if err != nil {
		return stream.Source{}, err
	}

	m := final.(probeModel)
	if !m.done {
		return stream.Source{}, errProbeCancelled
	}
	return m.source, nil
}

// Probe TUI model
type probeModel struct {
	camera  string
	cancel  context.CancelFunc
	spinner spinner.Model
	probes  []stream.Probe
	source  stream.Source
	done    bool
}

type probeMsg stream.Probe
type resolvedMsg stream.Source

func newProbeModel(camera string, cancel context.CancelFunc) probeModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = subHeaderStyle
	return probeModel{
		camera:  camera,
		cancel:  cancel,
		spinner: s,
	}
}

func (m probeModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m probeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			return m, tea.Quit
		}

	case probeMsg:
		m.probes = append(m.probes, stream.Probe(msg))
		return m, nil

	case resolvedMsg:
		m.source = stream.Source(msg)
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m probeModel) View() string {
	var sb strings.Builder

	if m.done {
		sb.WriteString(fmt.Sprintf("Probed %s\n\n", m.camera))
	} else {
		sb.WriteString(fmt.Sprintf("%s Probing %s\n\n", m.spinner.View(), m.camera))
	}
	if len(m.probes) > 0 {
		sb.WriteString(renderProbes(m.probes))
		sb.WriteString("\n")
	}
	if !m.done {
		sb.WriteString(dimStyle.Render("Press q to cancel"))
		sb.WriteString("\n")
	}
	return sb.String()
}
