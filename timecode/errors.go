package timecode

import "fmt"

// ParseError reports a timecode string that could not be read.
type ParseError struct {
	Text string
	// Field is the position of the offending field (0 = hours, 3 = frame), or -1 when the whole text is at fault.
	Field  int
	Reason string
	Err    error
}

var fieldNames = [maxFields]string{"hours", "minutes", "seconds", "frame"}

func (e *ParseError) Error() string {
	if e.Field >= 0 && e.Field < maxFields {
		return fmt.Sprintf("parse timecode %q: %s: %s", e.Text, fieldNames[e.Field], e.Reason)
	}
	return fmt.Sprintf("parse timecode %q: %s", e.Text, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
