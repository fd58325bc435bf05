package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/spf13/viper"
	"github.com/video-presenter/presenter/cuesync"
	"github.com/video-presenter/presenter/internal/ui"
	"github.com/video-presenter/presenter/key"
	"github.com/video-presenter/presenter/util"
)

// bubble is the presentation view model.
type bubble struct {
	keymap   *keymap
	helpC    help.Model
	notifier *ui.Model

	options  *Options
	status   cuesync.Status
	showCues bool

	lastError error
	ended     bool

	width, height int
}

func newBubble(options *Options) *bubble {
	b := &bubble{
		keymap:   newKeymap(),
		helpC:    help.New(),
		notifier: &ui.Model{},
		options:  options,
		showCues: viper.GetBool(key.TUIShowCues),
	}

	b.refresh()

	if w, h, err := util.TerminalSize(); err == nil {
		b.resize(w, h)
	}

	return b
}

func (b *bubble) refresh() {
	b.status = b.options.Presenter.Status()
}

// raiseError keeps the failure for the status line; presenting goes on.
func (b *bubble) raiseError(err error) {
	b.lastError = err
}

func (b *bubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y
	b.helpC.Width = b.width
}
