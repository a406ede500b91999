package main

import "github.com/charmbracelet/bubbles/key"

type controlKeymap struct {
	editing bool

	quit, forceQuit,
	throttleUp, throttleDown, left, right, stop,
	shoulder, elbow, grip, angleUp, angleDown, home,
	toggleStream, slower, faster,
	editBase, editCamera,
	confirm, cancel,
	showHelp key.Binding
}

func newControlKeymap() *controlKeymap {
	return &controlKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		throttleUp: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "faster"),
		),
		throttleDown: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "slower"),
		),
		left: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "left"),
		),
		right: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "right"),
		),
		stop: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "stop"),
		),
		shoulder: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "shoulder"),
		),
		elbow: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "elbow"),
		),
		grip: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "grip"),
		),
		angleUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "joint +5°"),
		),
		angleDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "joint -5°"),
		),
		home: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "home pose"),
		),
		toggleStream: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "camera on/off"),
		),
		slower: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "fps -1"),
		),
		faster: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "fps +1"),
		),
		editBase: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "robot url"),
		),
		editCamera: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "camera url"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *controlKeymap) ShortHelp() []key.Binding {
	if k.editing {
		return []key.Binding{k.confirm, k.cancel}
	}
	return []key.Binding{k.throttleUp, k.throttleDown, k.left, k.right, k.stop, k.toggleStream, k.showHelp, k.quit}
}

func (k *controlKeymap) FullHelp() [][]key.Binding {
	if k.editing {
		return [][]key.Binding{{k.confirm, k.cancel}}
	}
	return [][]key.Binding{
		{k.throttleUp, k.throttleDown, k.left, k.right, k.stop},
		{k.shoulder, k.elbow, k.grip, k.angleUp, k.angleDown, k.home},
		{k.toggleStream, k.slower, k.faster},
		{k.editBase, k.editCamera, k.showHelp, k.quit},
	}
}
