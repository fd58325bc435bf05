package version

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/video-presenter/presenter/color"
	"github.com/video-presenter/presenter/constant"
	"github.com/video-presenter/presenter/icon"
	"github.com/video-presenter/presenter/key"
	"github.com/video-presenter/presenter/style"
	"github.com/video-presenter/presenter/util"
)

// Notify prints a notice when a newer release than the running one exists.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	version, err := Latest()
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(version, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(version),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint(fmt.Sprintf("https://github.com/%s/releases/tag/v%s", constant.Repository, version)),
	)
}
