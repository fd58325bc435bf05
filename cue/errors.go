package cue

import (
	"fmt"
)

// LoadErrorKind classifies a fatal marker file problem.
type LoadErrorKind int

const (
	// Malformed means a row is too short or a required timecode does not parse.
	Malformed LoadErrorKind = iota
	// Unreadable means the marker file itself could not be read.
	Unreadable
)

func (k LoadErrorKind) String() string {
	switch k {
	case Malformed:
		return "malformed"
	case Unreadable:
		return "unreadable"
	default:
		return "unknown"
	}
}

// LoadError aborts building a cue table.
type LoadError struct {
	Kind LoadErrorKind
	// Row is the 1-based marker row, or 0 when the error is not tied to a row.
	Row int
	Err error
}

func (e *LoadError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s marker file: row %d: %v", e.Kind, e.Row, e.Err)
	}
	return fmt.Sprintf("%s marker file: %v", e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SkipReason explains why a marker row was left out of the table.
type SkipReason int

const (
	NotCuePoint SkipReason = iota
	HasDuration
)

func (r SkipReason) String() string {
	switch r {
	case NotCuePoint:
		return "it is not a 'Cue Point'"
	case HasDuration:
		return "it has a non-zero duration"
	default:
		return "unknown reason"
	}
}

// Skip records a marker row ignored with a warning.
type Skip struct {
	Row    int
	Reason SkipReason
}

func (s Skip) String() string {
	return fmt.Sprintf("skipping marker %d because %s", s.Row, s.Reason)
}
