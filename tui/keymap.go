package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/video-presenter/presenter/color"
	"github.com/video-presenter/presenter/style"
)

type keymap struct {
	quit, forceQuit,
	next, prev,
	playPause,
	showHelp key.Binding
}

func newKeymap() *keymap {
	return &keymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		// presentation clickers send page down / page up
		next: key.NewBinding(
			key.WithKeys("right", "n", "l", "pgdown"),
			key.WithHelp(style.Fg(color.Orange)("→"), style.Fg(color.Orange)("next cue")),
		),
		prev: key.NewBinding(
			key.WithKeys("left", "p", "h", "pgup"),
			key.WithHelp("←", "previous cue"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "pause/resume"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.next, k.prev, k.playPause, k.showHelp}
}

func (k *keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.next, k.prev, k.playPause},
		{k.showHelp, k.quit, k.forceQuit},
	}
}
