package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/video-presenter/presenter/cuesync"
	"github.com/video-presenter/presenter/timecode"
)

type fakePresenter struct {
	index, n int
	fail     error
	toggles  int
}

func (f *fakePresenter) Advance() error {
	if f.fail != nil {
		return f.fail
	}
	f.index = min(f.index+1, f.n+1)
	return nil
}

func (f *fakePresenter) Retreat() error {
	if f.fail != nil {
		return f.fail
	}
	f.index = max(f.index-1, 0)
	return nil
}

func (f *fakePresenter) Status() cuesync.Status {
	return cuesync.Status{Index: f.index, Len: f.n, FrameRate: 25}
}

func (f *fakePresenter) TogglePause() error {
	f.toggles++
	return f.fail
}

func press(b *bubble, keyType tea.KeyType, runes ...rune) tea.Cmd {
	_, cmd := b.Update(tea.KeyMsg{Type: keyType, Runes: runes})
	return cmd
}

func TestBubble(t *testing.T) {
	Convey("Given a presentation view", t, func() {
		fake := &fakePresenter{n: 3}
		b := newBubble(&Options{
			Title:     "talk.mp4",
			Presenter: fake,
			Player:    fake,
			Cues: []timecode.Timecode{
				timecode.New(0, 0, 5, 0),
				timecode.New(0, 0, 20, 0),
				timecode.New(0, 0, 40, 0),
			},
		})
		b.resize(80, 24)

		Convey("Right and n move to the next cue", func() {
			press(b, tea.KeyRight)
			cmd := press(b, tea.KeyRunes, 'n')
			So(fake.index, ShouldEqual, 2)
			So(b.status.Index, ShouldEqual, 2)

			So(cmd, ShouldNotBeNil)
			_, _ = b.Update(cmd())
			So(b.notifier.Text(), ShouldEqual, "jumped to cue 2")
		})

		Convey("Page up moves back", func() {
			fake.index = 2
			press(b, tea.KeyPgUp)
			So(b.status.Index, ShouldEqual, 1)
		})

		Convey("Space toggles playback", func() {
			press(b, tea.KeySpace, ' ')
			So(fake.toggles, ShouldEqual, 1)
		})

		Convey("Failures are shown and cleared by the next success", func() {
			fake.fail = errors.New("seek rejected")
			press(b, tea.KeyRight)
			So(b.lastError, ShouldEqual, fake.fail)
			So(b.View(), ShouldContainSubstring, "seek rejected")

			fake.fail = nil
			press(b, tea.KeyRight)
			So(b.lastError, ShouldBeNil)
		})

		Convey("q quits", func() {
			cmd := press(b, tea.KeyRunes, 'q')
			So(cmd, ShouldNotBeNil)
			So(cmd(), ShouldResemble, tea.QuitMsg{})
		})

		Convey("A cue change refreshes the status", func() {
			fake.index = 3
			_, _ = b.Update(cueChangedMsg(3))
			So(b.status.Index, ShouldEqual, 3)
			So(b.View(), ShouldContainSubstring, "cue 3 of 3")
		})

		Convey("The end of the session quits", func() {
			_, cmd := b.Update(sessionEndedMsg{})
			So(b.ended, ShouldBeTrue)
			So(cmd(), ShouldResemble, tea.QuitMsg{})
		})

		Convey("The view lists the cues", func() {
			b.showCues = true
			view := b.View()
			So(view, ShouldContainSubstring, "talk.mp4")
			So(view, ShouldContainSubstring, "00:00:20:00")
			So(view, ShouldContainSubstring, "before the first cue")
		})
	})
}

func TestWindow(t *testing.T) {
	Convey("window keeps the focus in range", t, func() {
		from, to := window(3, 1, 10)
		So([]int{from, to}, ShouldResemble, []int{0, 3})

		from, to = window(20, 0, 5)
		So([]int{from, to}, ShouldResemble, []int{0, 5})

		from, to = window(20, 10, 5)
		So([]int{from, to}, ShouldResemble, []int{8, 13})

		from, to = window(20, 19, 5)
		So([]int{from, to}, ShouldResemble, []int{15, 20})

		from, to = window(20, 25, 5)
		So([]int{from, to}, ShouldResemble, []int{15, 20})
	})
}
