package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gwillem/rover/pkg/rover"
	"github.com/gwillem/rover/pkg/stream"
)

var tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)

type ResolveCommand struct {
	FPS  int  `long:"fps" description:"Snapshot polling rate (default: config stream.poll_fps)"`
	Save bool `long:"save" description:"Remember the resolved URL as the camera"`
	Args struct {
		URL string `positional-arg-name:"URL" description:"Camera address (default: saved camera)"`
	} `positional-args:"yes"`
}

func (c *ResolveCommand) Execute(args []string) error {
	store := rover.OpenStore()
	raw := c.Args.URL
	if raw == "" {
		settings, err := store.Load()
		if err != nil {
			return err
		}
		raw = settings.StreamURL
	}
	if stream.Normalize(raw) == "" {
		return fmt.Errorf("no camera URL given and none saved")
	}

	fmt.Printf("Probing %s...\n\n", stream.Normalize(raw))
	src, probes := newResolver(c.FPS).Trace(context.Background(), raw)

	fmt.Println(renderProbes(probes))
	fmt.Println()
	fmt.Println(renderSource(src))

	if c.Save {
		if err := store.SaveStreamURL(src.URL); err != nil {
			return err
		}
		fmt.Println(dimStyle.Render("Camera saved."))
	}
	return nil
}

func renderSource(src stream.Source) string {
	var sb strings.Builder
	switch src.Kind {
	case stream.KindMJPEG:
		sb.WriteString(successStyle.Render("MJPEG stream: "))
	case stream.KindSnapshot:
		sb.WriteString(warnStyle.Render("Snapshot: "))
	default:
		sb.WriteString(errorStyle.Render("Embedded page: "))
	}
	sb.WriteString(src.URL)
	if src.Kind == stream.KindSnapshot {
		sb.WriteString(dimStyle.Render(fmt.Sprintf(" (every %s)", src.PollInterval)))
	}
	if notice := src.Notice(); notice != "" {
		sb.WriteString("\n" + dimStyle.Render(notice))
	}
	return sb.String()
}

func renderProbes(probes []stream.Probe) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Tier", "URL", "Status", "Content-Type", "Time", "").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			style := lipgloss.NewStyle().Padding(0, 1)
			if col == 5 && row >= 0 && row < len(probes) {
				if probes[row].Matched {
					return style.Foreground(lipgloss.Color("10"))
				}
				return style.Foreground(lipgloss.Color("9"))
			}
			return style
		})

	for _, p := range probes {
		status := "-"
		if p.Status != 0 {
			status = strconv.Itoa(p.Status)
		}
		contentType := p.ContentType
		if p.Err != nil {
			contentType = shortError(p.Err)
		}
		mark := "✗"
		if p.Matched {
			mark = "✓"
		}
		t.Row(string(p.Tier), p.URL, status, contentType, p.Elapsed.Round(time.Millisecond).String(), mark)
	}
	return t.Render()
}

func shortError(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "deadline exceeded") || strings.Contains(msg, "Timeout") {
		return "timeout"
	}
	if strings.Contains(msg, "refused") {
		return "refused"
	}
	if r := []rune(msg); len(r) > 40 {
		return string(r[:40]) + "…"
	}
	return msg
}
