package cue

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/video-presenter/presenter/filesystem"
	"github.com/video-presenter/presenter/log"
	"github.com/video-presenter/presenter/timecode"
)

// Column layout of a marker export (Premiere Pro, or After Effects through
// Marker Batch Editor with ",,[time],[time],[markerDuration],Cue Point").
const (
	startField = 2
	endField   = 3
	typeField  = 5
	minFields  = 6
)

// CuePointType must appear in the marker type column of every cue row.
const CuePointType = "Cue Point"

// Extensions are the marker file extensions looked up next to a video.
var Extensions = []string{".csv", ".tsv", ".txt"}

var separators = regexp.MustCompile("[\t,]")

// Tokenize splits a marker export into rows of fields.
// Fields are separated by tabs or commas. If the text starts with a letter the
// first line is taken to be a header and dropped; blank lines are ignored.
func Tokenize(contents string) [][]string {
	contents = strings.TrimPrefix(contents, "\ufeff")

	lines := strings.Split(contents, "\n")
	if first, _ := utf8.DecodeRuneInString(contents); unicode.IsLetter(first) {
		lines = lines[1:]
	}

	var rows [][]string
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, separators.Split(line, -1))
	}
	return rows
}

// FromRecords builds a table from tokenized marker rows.
//
// Rows whose type is not a cue point, or whose start and end differ, are
// skipped with a warning. A row that is too short or carries an unparsable
// timecode fails the whole load.
func FromRecords(rows [][]string) (*Table, error) {
	var (
		cues    []timecode.Timecode
		skipped []Skip
	)

	for i, row := range rows {
		n := i + 1
		if len(row) < minFields {
			return nil, &LoadError{Kind: Malformed, Row: n, Err: fmt.Errorf("expected at least %d fields, got %d", minFields, len(row))}
		}

		if !strings.Contains(row[typeField], CuePointType) {
			skipped = append(skipped, Skip{Row: n, Reason: NotCuePoint})
			log.Warnf("skipping marker %d because %s", n, NotCuePoint)
			continue
		}

		start, err := timecode.Parse(row[startField])
		if err != nil {
			return nil, &LoadError{Kind: Malformed, Row: n, Err: err}
		}
		end, err := timecode.Parse(row[endField])
		if err != nil {
			return nil, &LoadError{Kind: Malformed, Row: n, Err: err}
		}

		if start != end {
			skipped = append(skipped, Skip{Row: n, Reason: HasDuration})
			log.Warnf("skipping marker %d because %s", n, HasDuration)
			continue
		}

		cues = append(cues, start)
	}

	table := NewTable(cues...)
	table.skipped = skipped
	return table, nil
}

// Parse tokenizes and loads a marker export held in memory.
func Parse(contents string) (*Table, error) {
	return FromRecords(Tokenize(contents))
}

// Load reads and parses the marker file at path.
func Load(path string) (*Table, error) {
	contents, err := filesystem.ReadText(path)
	if err != nil {
		return nil, &LoadError{Kind: Unreadable, Err: err}
	}

	table, err := Parse(contents)
	if err != nil {
		return nil, err
	}

	log.Infof("loaded %d cues from %s (%d rows skipped)", table.Len(), path, len(table.skipped))
	return table, nil
}

// Candidates lists marker files sharing the video's name, e.g. talk.csv for talk.mp4.
func Candidates(video string) []string {
	stem := strings.TrimSuffix(video, filepath.Ext(video))
	return lo.Filter(lo.Map(Extensions, func(ext string, _ int) string {
		return stem + ext
	}), func(path string, _ int) bool {
		exists, err := filesystem.API().Exists(path)
		return err == nil && exists
	})
}

// IsLoadError reports whether err is a *LoadError of the given kind.
func IsLoadError(err error, kind LoadErrorKind) bool {
	var loadErr *LoadError
	return errors.As(err, &loadErr) && loadErr.Kind == kind
}
