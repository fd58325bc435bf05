// Package player is the boundary to the playback engine.
// The presenter only needs a handful of engine operations plus a stream of
// lifecycle and position events; mpv driven over JSON-IPC provides both.
package player

// Engine is what the cue controller asks of a playback engine.
// Every call may fail; callers decide whether to log or abort.
type Engine interface {
	// Pause suspends playback. Pausing an already paused engine is harmless.
	Pause() error

	// SeekAbsolute moves the playhead to seconds from the start of the media.
	SeekAbsolute(seconds float64) error

	// SeekToEnd moves the playhead to the end of the media.
	SeekToEnd() error

	// GetProperty reads an engine property such as "time-pos" or "container-fps".
	GetProperty(name string) (any, error)
}

// EventKind tags an Event.
type EventKind int

const (
	Other EventKind = iota
	FileLoaded
	Seek
	PositionChanged
	Shutdown
)

func (k EventKind) String() string {
	switch k {
	case FileLoaded:
		return "file-loaded"
	case Seek:
		return "seek"
	case PositionChanged:
		return "position-changed"
	case Shutdown:
		return "shutdown"
	default:
		return "other"
	}
}

// Event is a notification from the engine.
type Event struct {
	Kind EventKind
	// Position is the reported playhead in seconds, set for PositionChanged.
	Position float64
	// Name is the raw engine event or property name.
	Name string
	// Value is the new value of a changed property other than the position.
	Value any
}
