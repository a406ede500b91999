package stream

import (
	"sync"
	"time"
)

// Display is the surface a source draws on. Activate hands the surface to
// a new source: image sources receive frames through ShowFrame, an embedded
// page only needs its URL. Clear restores the placeholder.
type Display interface {
	FrameSink
	Activate(src Source)
	Clear()
}

// FrameSink receives decoded JPEG frames.
type FrameSink interface {
	ShowFrame(frame []byte)
}

// Displays fans every call out to several displays.
type Displays []Display

func (d Displays) Activate(src Source) {
	for _, display := range d {
		display.Activate(src)
	}
}

func (d Displays) ShowFrame(frame []byte) {
	for _, display := range d {
		display.ShowFrame(frame)
	}
}

func (d Displays) Clear() {
	for _, display := range d {
		display.Clear()
	}
}

// MonitorState summarizes what a Monitor has seen.
type MonitorState struct {
	Source    Source
	Frames    int
	LastSize  int
	LastFrame time.Time
}

// Monitor is a Display that only counts frames, for status lines.
type Monitor struct {
	mu    sync.RWMutex
	state MonitorState
}

func (m *Monitor) Activate(src Source) {
	m.mu.Lock()
	m.state = MonitorState{Source: src}
	m.mu.Unlock()
}

func (m *Monitor) ShowFrame(frame []byte) {
	m.mu.Lock()
	m.state.Frames++
	m.state.LastSize = len(frame)
	m.state.LastFrame = time.Now()
	m.mu.Unlock()
}

func (m *Monitor) Clear() {
	m.mu.Lock()
	m.state = MonitorState{}
	m.mu.Unlock()
}

// State returns a copy of the current state.
func (m *Monitor) State() MonitorState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}
