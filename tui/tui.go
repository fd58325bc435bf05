// Package tui provides the presentation view: cue navigation keys and a live cue list.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/video-presenter/presenter/cuesync"
	"github.com/video-presenter/presenter/timecode"
)

// Presenter is the cue navigation the view drives.
type Presenter interface {
	Advance() error
	Retreat() error
	Status() cuesync.Status
}

// Toggler resumes or pauses playback.
type Toggler interface {
	TogglePause() error
}

// Options encapsulates the runtime configuration for the presentation view.
type Options struct {
	// Title is shown in the header, usually the video file name.
	Title     string
	Presenter Presenter
	Player    Toggler
	Cues      []timecode.Timecode

	// Changes receives the new cue index whenever it moves.
	Changes <-chan int
	// Done is closed when the playback session ends.
	Done <-chan struct{}
}

// Run executes the Bubble Tea program until the user quits or the session ends.
func Run(options *Options) error {
	_, err := tea.NewProgram(newBubble(options), tea.WithAltScreen()).Run()
	return err
}
