package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/mo"
	"github.com/video-presenter/presenter/color"
	"github.com/video-presenter/presenter/cue"
	"github.com/video-presenter/presenter/icon"
	"github.com/video-presenter/presenter/style"
	"github.com/video-presenter/presenter/util"
)

// pickMarkers chooses one of several marker files. Replaced in tests.
var pickMarkers = func(candidates []string) (string, error) {
	if !util.IsTerminal() {
		return "", fmt.Errorf("several marker files found (%s), pass one explicitly", strings.Join(candidates, ", "))
	}

	var picked string
	err := survey.AskOne(&survey.Select{
		Message: "Several marker files found, which one?",
		Options: candidates,
	}, &picked)
	return picked, err
}

// resolveMarkers returns the explicit markers path, or the marker file found next to the video.
func resolveMarkers(video string, explicit mo.Option[string]) (string, error) {
	if path, ok := explicit.Get(); ok {
		return path, nil
	}

	candidates := cue.Candidates(video)
	switch len(candidates) {
	case 0:
		stem := strings.TrimSuffix(video, filepath.Ext(video))
		return "", errors.New("no marker file given and none found at " + stem + "{" + strings.Join(cue.Extensions, ",") + "}")
	case 1:
		return candidates[0], nil
	default:
		return pickMarkers(candidates)
	}
}

// printCueTree prints the "Loaded N cues" banner and one branch per cue.
// With a positive fps every cue also shows its position in seconds.
func printCueTree(w io.Writer, table *cue.Table, fps float64) {
	cues := table.Cues()

	_, _ = fmt.Fprintf(w, "%s Loaded %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Bold(util.Quantify(len(cues), "cue", "cues")))

	for i, c := range cues {
		branch := "├─"
		if i == len(cues)-1 {
			branch = "└─"
		}

		line := fmt.Sprintf("%s %s %s", style.Faint(branch), style.Fg(color.Purple)(fmt.Sprintf("%3d", i+1)), c)
		if fps > 0 {
			line += style.Faint(fmt.Sprintf("  %.3fs", c.ToSeconds(fps)))
		}

		_, _ = fmt.Fprintln(w, line)
	}
}

// warnSkipped prints one warning line when rows of the marker file were ignored.
func warnSkipped(w io.Writer, table *cue.Table) {
	skipped := table.Skipped()
	if len(skipped) == 0 {
		return
	}

	_, _ = fmt.Fprintf(w, "%s %s\n",
		style.Fg(color.Yellow)(icon.Get(icon.Warn)),
		style.Fg(color.Yellow)(fmt.Sprintf("skipped %s that are not cue points", util.Quantify(len(skipped), "row", "rows"))),
	)
}
