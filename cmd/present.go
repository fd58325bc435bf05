package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/video-presenter/presenter/cue"
	"github.com/video-presenter/presenter/cuesync"
	"github.com/video-presenter/presenter/key"
	"github.com/video-presenter/presenter/log"
	"github.com/video-presenter/presenter/player"
	"github.com/video-presenter/presenter/tui"
	"github.com/video-presenter/presenter/util"
)

// playerOptions merges configured mpv settings with the ones given on the command line.
func playerOptions(extra []string) player.Options {
	raw := append(viper.GetStringSlice(key.PlayerSettings), extra...)

	return player.Options{
		Executable: viper.GetString(key.PlayerExecutable),
		Audio:      viper.GetBool(key.PlayerAudio),
		Fullscreen: viper.GetBool(key.PlayerFullscreen),
		Settings: lo.FilterMap(raw, func(s string, _ int) (player.Setting, bool) {
			setting := player.ParseSetting(s)
			return setting, setting.Key != ""
		}),
	}
}

// present runs one presentation session: mpv, its event stream, the cue controller and the view.
// It returns when the view is closed or mpv exits.
func present(video string, table *cue.Table, settings []string) error {
	mpv := player.NewMPV(playerOptions(settings))
	if err := mpv.Start(video); err != nil {
		return err
	}
	defer util.Ignore(mpv.Close)

	timeout := time.Duration(viper.GetInt(key.PlayerEventTimeoutMs)) * time.Millisecond
	if timeout <= 0 {
		timeout = player.DefaultEventTimeout
	}

	listener := player.NewEventListener(mpv.Socket(), timeout)
	if err := listener.Start(); err != nil {
		return err
	}
	defer listener.Stop()

	changes := make(chan int, 1)
	controller := cuesync.New(table, mpv,
		cuesync.WithFallbackFPS(viper.GetFloat64(key.PlayerFallbackFPS)),
		cuesync.WithOnChange(func(index int) {
			// the view reads the full status on refresh, so a pending signal is enough
			select {
			case changes <- index:
			default:
			}
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := controller.Run(ctx, listener.Events()); err != nil && !errors.Is(err, context.Canceled) {
			log.Error(err)
		}
	}()

	if err := beginPlayback(controller, mpv.Resume); err != nil {
		return err
	}

	return tui.Run(&tui.Options{
		Title:     filepath.Base(video),
		Presenter: controller,
		Player:    mpv,
		Cues:      table.Cues(),
		Changes:   changes,
		Done:      done,
	})
}

// beginPlayback unpauses mpv once the listener is subscribed.
// mpv does not replay file-loaded, so media that loaded during startup is read directly.
func beginPlayback(controller *cuesync.Controller, resume func() error) error {
	if err := controller.Prime(); err != nil {
		log.Warnf("media not ready yet, waiting for file-loaded: %v", err)
	}

	if err := resume(); err != nil {
		return fmt.Errorf("resume playback: %w", err)
	}

	return nil
}
