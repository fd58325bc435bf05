// Package timecode implements HH:MM:SS:FF video timecodes as exported by editing tools.
//
// A Timecode has no duration of its own: the frame field only becomes a time once a
// frame rate is supplied, so every conversion takes the fps of the loaded media.
package timecode

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Timecode is an immutable (hours, minutes, seconds, frame) value.
type Timecode struct {
	Hours   uint8
	Minutes uint8
	Seconds uint8
	Frames  uint8
}

// Zero is 00:00:00:00, the implicit start of every video.
var Zero = Timecode{}

// End is greater than any real timecode and means "end of the media".
// It has no duration and must only ever be turned into a seek to the end.
var End = Timecode{Hours: math.MaxUint8, Minutes: math.MaxUint8, Seconds: math.MaxUint8, Frames: math.MaxUint8}

const maxFields = 4

// New builds a timecode from its fields.
func New(hours, minutes, seconds, frames uint8) Timecode {
	return Timecode{Hours: hours, Minutes: minutes, Seconds: seconds, Frames: frames}
}

// Parse reads a colon-delimited timecode of one to four fields.
// Fields fill from the frame position backward, so "12" is 12 frames and
// "00:05:00:00" is five minutes.
func Parse(text string) (Timecode, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Timecode{}, &ParseError{Text: text, Field: -1, Reason: "empty timecode"}
	}

	parts := strings.Split(trimmed, ":")
	if len(parts) > maxFields {
		return Timecode{}, &ParseError{Text: text, Field: -1, Reason: fmt.Sprintf("expected at most %d fields, got %d", maxFields, len(parts))}
	}

	var fields [maxFields]uint8
	offset := maxFields - len(parts)
	for i, part := range parts {
		v, err := strconv.ParseUint(part, 10, 8)
		if err != nil {
			return Timecode{}, &ParseError{Text: text, Field: offset + i, Reason: "not a number between 0 and 255", Err: err}
		}
		fields[offset+i] = uint8(v)
	}

	return New(fields[0], fields[1], fields[2], fields[3]), nil
}

// MustParse is like Parse but panics on error. Meant for tests and constants.
func MustParse(text string) Timecode {
	tc, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return tc
}

// ToSeconds converts t into seconds from the start of the media at the given frame rate.
// End converts to +Inf.
func (t Timecode) ToSeconds(fps float64) float64 {
	if t.IsEnd() {
		return math.Inf(1)
	}
	whole := float64(t.Hours)*3600 + float64(t.Minutes)*60 + float64(t.Seconds)
	return whole + float64(t.Frames)/fps
}

// TotalFrames counts the frames from the start of the media up to t.
func (t Timecode) TotalFrames(fps float64) uint32 {
	whole := uint32(t.Hours)*3600 + uint32(t.Minutes)*60 + uint32(t.Seconds)
	return uint32(t.Frames) + uint32(float64(whole)*fps)
}

// FromDuration finds the timecode of a position in the media.
// Fields that would overflow are saturated at End.
func FromDuration(d time.Duration, fps float64) Timecode {
	if d < 0 {
		return Zero
	}
	total := d.Seconds()
	whole := uint64(total)
	hours := whole / 3600
	if hours >= math.MaxUint8 {
		return End
	}
	frames := uint64((total - float64(whole)) * fps)

	return New(uint8(hours), uint8(whole/60%60), uint8(whole%60), uint8(min(frames, math.MaxUint8)))
}

// IsEnd reports whether t is the End sentinel.
func (t Timecode) IsEnd() bool {
	return t == End
}

// Compare orders a and b by hours, minutes, seconds, then frame.
func Compare(a, b Timecode) int {
	if c := cmp.Compare(a.Hours, b.Hours); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Minutes, b.Minutes); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Seconds, b.Seconds); c != 0 {
		return c
	}
	return cmp.Compare(a.Frames, b.Frames)
}

// Before reports whether t sorts before u.
func (t Timecode) Before(u Timecode) bool {
	return Compare(t, u) < 0
}

// String formats t as HH:MM:SS:FF.
func (t Timecode) String() string {
	if t.IsEnd() {
		return "END"
	}
	return fmt.Sprintf("%02d:%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds, t.Frames)
}

// MarshalText implements encoding.TextMarshaler.
func (t Timecode) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Timecode) UnmarshalText(text []byte) error {
	if string(text) == "END" {
		*t = End
		return nil
	}
	tc, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = tc
	return nil
}
