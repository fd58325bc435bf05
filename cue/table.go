// Package cue holds the ordered table of cue points a presentation pauses at.
//
// Cues are addressed by 1-based index: 0 is the implicit start of the video,
// 1..Len() are the authored cues in ascending order, and anything past Len()
// is the end of the video.
package cue

import (
	"slices"

	"github.com/video-presenter/presenter/timecode"
)

// Table is an ascending, read-only sequence of cue timecodes.
// It is safe for concurrent use once built.
type Table struct {
	cues    []timecode.Timecode
	skipped []Skip
}

// NewTable builds a table from cue timecodes in any order.
// End values are dropped; equal timecodes keep their relative order.
func NewTable(cues ...timecode.Timecode) *Table {
	sorted := make([]timecode.Timecode, 0, len(cues))
	for _, c := range cues {
		if !c.IsEnd() {
			sorted = append(sorted, c)
		}
	}
	slices.SortStableFunc(sorted, timecode.Compare)
	return &Table{cues: sorted}
}

// Len is the number of authored cues, excluding the implicit start and end.
func (t *Table) Len() int {
	return len(t.cues)
}

// At returns the timecode of cue i.
// 0 (or less) is 00:00:00:00 and anything beyond Len() is timecode.End.
func (t *Table) At(i int) timecode.Timecode {
	switch {
	case i <= 0:
		return timecode.Zero
	case i > len(t.cues):
		return timecode.End
	default:
		return t.cues[i-1]
	}
}

// Locate returns the index of the cue that position pos (in seconds) has reached.
//
// Landing exactly on a cue counts as having reached it, and the highest matching
// cue wins, because mpv reports rounded positions. A position before the first cue
// is 0 and a position past the last cue is Len()+1.
func (t *Table) Locate(pos, fps float64) int {
	n := len(t.cues)
	if n == 0 {
		return 0
	}

	if pos > t.cues[n-1].ToSeconds(fps) {
		return n + 1
	}

	for i := n - 1; i >= 0; i-- {
		if t.cues[i].ToSeconds(fps) <= pos {
			return i + 1
		}
	}

	return 0
}

// Cues returns a copy of the stored timecodes.
func (t *Table) Cues() []timecode.Timecode {
	return slices.Clone(t.cues)
}

// Skipped lists the marker rows that were ignored while loading.
func (t *Table) Skipped() []Skip {
	return slices.Clone(t.skipped)
}
