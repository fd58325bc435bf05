// Package icon renders UI symbols in the variant chosen by icons.variant.
package icon

import (
	"github.com/spf13/viper"
	"github.com/video-presenter/presenter/key"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns every supported icon variant.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Fail Icon = iota
	Success
	Warn
	Progress
	Cue
	Paused
	End
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d *iconDef) get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

var icons = map[Icon]*iconDef{
	Fail:     {emoji: "💀", nerd: "", plain: "x", kaomoji: "(×_×)", squares: "▣"},
	Success:  {emoji: "🎉", nerd: "", plain: "+", kaomoji: "(ᵔ◡ᵔ)", squares: "■"},
	Warn:     {emoji: "⚠️", nerd: "", plain: "!", kaomoji: "(・_・;)", squares: "▲"},
	Progress: {emoji: "⏳", nerd: "", plain: "~", kaomoji: "(・・)", squares: "◫"},
	Cue:      {emoji: "🎬", nerd: "", plain: ">", kaomoji: "(▶‿▶)", squares: "▶"},
	Paused:   {emoji: "⏸️", nerd: "", plain: "||", kaomoji: "(-_-)", squares: "◼"},
	End:      {emoji: "🏁", nerd: "", plain: "#", kaomoji: "(^_^)/", squares: "▩"},
}

// Get returns the rendered symbol for i, or "" for an unknown variant.
func Get(i Icon) string {
	return icons[i].get()
}
