package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/video-presenter/presenter/internal/ui"
	"github.com/video-presenter/presenter/log"
)

func (b *bubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd := b.notifier.Update(msg); cmd != nil {
		return b, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case cueChangedMsg:
		b.refresh()
		return b, b.waitForChange()
	case sessionEndedMsg:
		b.ended = true
		return b, tea.Quit
	case error:
		b.raiseError(msg)
	case tea.KeyMsg:
		return b, b.handleKey(msg)
	}

	return b, nil
}

func (b *bubble) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, b.keymap.forceQuit), key.Matches(msg, b.keymap.quit):
		return tea.Quit
	case key.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	case key.Matches(msg, b.keymap.next):
		if b.act("next cue", b.options.Presenter.Advance) {
			return ui.Notify(b.jumpedTo())
		}
	case key.Matches(msg, b.keymap.prev):
		if b.act("previous cue", b.options.Presenter.Retreat) {
			return ui.Notify(b.jumpedTo())
		}
	case key.Matches(msg, b.keymap.playPause):
		if b.options.Player != nil {
			b.act("pause/resume", b.options.Player.TogglePause)
		}
	}

	return nil
}

func (b *bubble) jumpedTo() string {
	switch s := b.status; {
	case s.Index == 0:
		return "jumped to the start"
	case s.Index > s.Len:
		return "jumped to the end"
	default:
		return fmt.Sprintf("jumped to cue %d", s.Index)
	}
}

// act runs a navigation action on the input goroutine, one key press at a time.
func (b *bubble) act(name string, f func() error) bool {
	err := f()
	b.refresh()

	if err != nil {
		log.Errorf("%s: %v", name, err)
		b.raiseError(err)
		return false
	}

	b.lastError = nil
	return true
}
