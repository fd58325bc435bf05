package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
	"github.com/video-presenter/presenter/color"
	"github.com/video-presenter/presenter/icon"
	"github.com/video-presenter/presenter/style"
	"github.com/video-presenter/presenter/util"
)

var (
	paddingStyle = lipgloss.NewStyle().Padding(1, 2)
	currentStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(color.Orange).
			Foreground(color.Orange).
			Padding(0, 0, 0, 1)
	cueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).PaddingLeft(2)
)

// header, blank, status, position, blank
const fixedLines = 5

func (b *bubble) View() string {
	lines := []string{
		style.Title(b.options.Title),
		"",
		b.viewStatus(),
		b.viewPosition(),
		"",
	}

	if b.showCues {
		lines = append(lines, b.viewCues(b.height-fixedLines-b.reservedLines())...)
	}

	if b.lastError != nil {
		lines = append(lines, "", wrap.String(style.Fg(color.Red)(icon.Get(icon.Fail)+" "+b.lastError.Error()), b.width))
	}

	return b.notifier.View(b.renderLines(true, lines))
}

func (b *bubble) viewStatus() string {
	s := b.status
	switch {
	case s.Index == 0:
		return style.Faint("before the first cue")
	case s.Index > s.Len:
		return style.Fg(color.Green)(icon.Get(icon.End) + " end of the video")
	default:
		return fmt.Sprintf("%s cue %d of %d", icon.Get(icon.Cue), s.Index, s.Len)
	}
}

func (b *bubble) viewPosition() string {
	s := b.status

	next := s.Next.String()
	if s.Next.IsEnd() {
		next = "end"
	}

	line := fmt.Sprintf("at %s, next %s %s",
		style.Bold(s.Current.String()),
		style.Bold(next),
		style.Faint(fmt.Sprintf("(%g fps)", s.FrameRate)),
	)

	return truncate.StringWithTail(line, uint(util.Max(b.width, 0)), "…")
}

// viewCues renders at most rows cues, keeping the current one in view.
func (b *bubble) viewCues(rows int) []string {
	cues := b.options.Cues
	if len(cues) == 0 || rows <= 0 {
		return nil
	}

	from, to := window(len(cues), b.status.Index-1, rows)

	lines := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		text := fmt.Sprintf("%3d  %s", i+1, cues[i])
		if i+1 == b.status.Index {
			lines = append(lines, currentStyle.Render(text))
		} else {
			lines = append(lines, cueStyle.Render(text))
		}
	}

	return lines
}

// window returns the [from, to) range of length at most rows around focus.
func window(total, focus, rows int) (from, to int) {
	if rows >= total {
		return 0, total
	}

	focus = util.Min(util.Max(focus, 0), total-1)
	from = util.Max(focus-rows/2, 0)
	to = from + rows
	if to > total {
		to = total
		from = total - rows
	}

	return from, to
}

func (b *bubble) reservedLines() int {
	reserved := lipgloss.Height(b.helpC.View(b.keymap))
	if b.lastError != nil {
		reserved += 2
	}
	return reserved
}

func (b *bubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		helpView := b.helpC.View(b.keymap)
		if gap := b.height - h - lipgloss.Height(helpView); gap > 0 {
			l += strings.Repeat("\n", gap)
		}
		l += "\n" + helpView
	}

	return paddingStyle.Render(l)
}
