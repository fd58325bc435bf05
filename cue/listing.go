package cue

import (
	"github.com/samber/lo"
	"github.com/video-presenter/presenter/timecode"
)

// Listing is the machine readable form of a loaded table, printed by "presenter cues --json".
type Listing struct {
	Source  string        `json:"source" jsonschema:"description=Path of the marker file"`
	FPS     float64       `json:"fps,omitempty" jsonschema:"description=Frame rate used for the seconds column"`
	Cues    []ListedCue   `json:"cues"`
	Skipped []SkippedLine `json:"skipped"`
}

// ListedCue is one cue of a Listing.
type ListedCue struct {
	Index    int      `json:"index" jsonschema:"minimum=1"`
	Timecode string   `json:"timecode" jsonschema:"pattern=^\\d{2}:\\d{2}:\\d{2}:\\d{2}$"`
	Seconds  *float64 `json:"seconds,omitempty"`
}

// SkippedLine is a marker row left out of the table.
type SkippedLine struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Listing describes the table; seconds are filled in when fps is positive.
func (t *Table) Listing(source string, fps float64) Listing {
	return Listing{
		Source: source,
		FPS:    max(fps, 0),
		Cues: lo.Map(t.cues, func(c timecode.Timecode, i int) ListedCue {
			listed := ListedCue{Index: i + 1, Timecode: c.String()}
			if fps > 0 {
				listed.Seconds = lo.ToPtr(c.ToSeconds(fps))
			}
			return listed
		}),
		Skipped: lo.Map(t.skipped, func(s Skip, _ int) SkippedLine {
			return SkippedLine{Row: s.Row, Reason: s.Reason.String()}
		}),
	}
}
