package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/video-presenter/presenter/config"
	"github.com/video-presenter/presenter/cue"
	"github.com/video-presenter/presenter/cuesync"
	"github.com/video-presenter/presenter/filesystem"
	"github.com/video-presenter/presenter/key"
	"github.com/video-presenter/presenter/player"
	"github.com/video-presenter/presenter/timecode"
)

const markers = ",,00:00:05:00,00:00:05:00,0,Cue Point\n" +
	",,00:00:20:00,00:00:20:00,0,Cue Point\n" +
	",,00:00:30:00,00:00:31:00,0,Cue Point\n" +
	",,00:00:40:00,00:00:40:00,0,Comment\n"

func TestResolveMarkers(t *testing.T) {
	Convey("Given videos on an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		Reset(filesystem.SetOsFs)
		fs := filesystem.API()

		So(afero.WriteFile(fs, "/talks/keynote.mp4", nil, 0o644), ShouldBeNil)
		So(afero.WriteFile(fs, "/talks/keynote.csv", []byte(markers), 0o644), ShouldBeNil)
		So(afero.WriteFile(fs, "/talks/demo.mp4", nil, 0o644), ShouldBeNil)
		So(afero.WriteFile(fs, "/talks/demo.csv", nil, 0o644), ShouldBeNil)
		So(afero.WriteFile(fs, "/talks/demo.txt", nil, 0o644), ShouldBeNil)

		original := pickMarkers
		Reset(func() { pickMarkers = original })

		Convey("An explicit path wins", func() {
			path, err := resolveMarkers("/talks/keynote.mp4", mo.Some("/elsewhere/markers.tsv"))
			So(err, ShouldBeNil)
			So(path, ShouldEqual, "/elsewhere/markers.tsv")
		})

		Convey("A single sibling is used", func() {
			path, err := resolveMarkers("/talks/keynote.mp4", mo.None[string]())
			So(err, ShouldBeNil)
			So(path, ShouldEqual, "/talks/keynote.csv")
		})

		Convey("Several siblings are offered for picking", func() {
			var offered []string
			pickMarkers = func(candidates []string) (string, error) {
				offered = candidates
				return candidates[1], nil
			}

			path, err := resolveMarkers("/talks/demo.mp4", mo.None[string]())
			So(err, ShouldBeNil)
			So(offered, ShouldResemble, []string{"/talks/demo.csv", "/talks/demo.txt"})
			So(path, ShouldEqual, "/talks/demo.txt")
		})

		Convey("No sibling is an error", func() {
			_, err := resolveMarkers("/talks/other.mp4", mo.None[string]())
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "/talks/other")
		})

		Convey("A cancelled pick is an error", func() {
			pickMarkers = func([]string) (string, error) { return "", errors.New("interrupt") }
			_, err := resolveMarkers("/talks/demo.mp4", mo.None[string]())
			So(err, ShouldNotBeNil)
		})
	})
}

func TestCueTree(t *testing.T) {
	Convey("Given a loaded marker file", t, func() {
		table, err := cue.Parse(markers)
		So(err, ShouldBeNil)

		Convey("The tree lists every cue under the banner", func() {
			var out bytes.Buffer
			printCueTree(&out, table, 0)

			text := out.String()
			So(text, ShouldContainSubstring, "Loaded 2 cues")
			So(text, ShouldContainSubstring, "├─")
			So(text, ShouldContainSubstring, "└─")
			So(text, ShouldContainSubstring, "00:00:20:00")
		})

		Convey("With a frame rate the seconds are shown", func() {
			var out bytes.Buffer
			printCueTree(&out, table, 25)
			So(out.String(), ShouldContainSubstring, "20.000s")
		})

		Convey("Skipped rows produce one warning", func() {
			var out bytes.Buffer
			warnSkipped(&out, table)
			So(out.String(), ShouldContainSubstring, "skipped 2 rows")
		})

		Convey("A clean table produces no warning", func() {
			var out bytes.Buffer
			warnSkipped(&out, cue.NewTable())
			So(out.Len(), ShouldEqual, 0)
		})
	})
}

func TestCueListingSchema(t *testing.T) {
	Convey("The listing schema is valid JSON describing the cues", t, func() {
		raw, err := cueListingSchema()
		So(err, ShouldBeNil)

		var schema map[string]any
		So(json.Unmarshal(raw, &schema), ShouldBeNil)
		So(string(raw), ShouldContainSubstring, "timecode")
		So(string(raw), ShouldContainSubstring, "presenter cue listing")
	})
}

func TestPlayerOptions(t *testing.T) {
	Convey("Given configured mpv settings", t, func() {
		viper.Set(key.PlayerSettings, []string{"volume=50"})
		viper.Set(key.PlayerAudio, true)
		Reset(func() {
			viper.Set(key.PlayerSettings, []string{})
			viper.Set(key.PlayerAudio, false)
		})

		options := playerOptions([]string{"--loop-file=no", "osc", ""})

		So(options.Audio, ShouldBeTrue)
		So(options.Settings, ShouldResemble, []player.Setting{
			{Key: "volume", Value: "50"},
			{Key: "loop-file", Value: "no"},
			{Key: "osc", Value: ""},
		})
	})
}

func TestParseConfigValue(t *testing.T) {
	Convey("parseConfigValue follows the default's type", t, func() {
		v, err := parseConfigValue(config.Default[key.PlayerFallbackFPS], []string{"29.97"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 29.97)

		v, err = parseConfigValue(config.Default[key.PlayerEventTimeoutMs], []string{"250"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 250)

		v, err = parseConfigValue(config.Default[key.PlayerAudio], []string{"true"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, true)

		v, err = parseConfigValue(config.Default[key.PlayerSettings], []string{"a=1", "b=2"})
		So(err, ShouldBeNil)
		So(v, ShouldResemble, []string{"a=1", "b=2"})

		_, err = parseConfigValue(config.Default[key.PlayerFallbackFPS], []string{"fast"})
		So(err, ShouldNotBeNil)

		_, err = parseConfigValue(config.Default[key.PlayerAudio], nil)
		So(err, ShouldNotBeNil)
	})
}

// startupEngine is mpv with its media already loaded, logging calls in order.
type startupEngine struct {
	calls      []string
	properties map[string]any
}

func (e *startupEngine) Pause() error {
	e.calls = append(e.calls, "pause")
	return nil
}

func (e *startupEngine) SeekAbsolute(float64) error {
	e.calls = append(e.calls, "seek")
	return nil
}

func (e *startupEngine) SeekToEnd() error {
	e.calls = append(e.calls, "seek-end")
	return nil
}

func (e *startupEngine) GetProperty(name string) (any, error) {
	e.calls = append(e.calls, name)
	if v, ok := e.properties[name]; ok {
		return v, nil
	}
	return nil, errors.New("property unavailable")
}

func TestBeginPlayback(t *testing.T) {
	Convey("Given media that loaded before the listener subscribed", t, func() {
		engine := &startupEngine{properties: map[string]any{"container-fps": 25.0, "time-pos": 0.0}}
		table := cue.NewTable(timecode.New(0, 0, 1, 12), timecode.New(0, 0, 10, 0))
		controller := cuesync.New(table, engine)
		resume := func() error {
			engine.calls = append(engine.calls, "resume")
			return nil
		}

		So(beginPlayback(controller, resume), ShouldBeNil)

		Convey("The frame rate is read before playback resumes", func() {
			So(engine.calls, ShouldResemble, []string{"container-fps", "time-pos", "resume"})
			So(controller.FrameRate(), ShouldEqual, 25)
		})

		Convey("Cues are placed at the media frame rate", func() {
			So(controller.OnPositionReport(1.4), ShouldBeNil)
			So(controller.CurrentIndex(), ShouldEqual, 0)
			So(controller.OnPositionReport(1.5), ShouldBeNil)
			So(controller.CurrentIndex(), ShouldEqual, 1)
		})
	})

	Convey("Given media that is not loaded yet", t, func() {
		engine := &startupEngine{}
		controller := cuesync.New(cue.NewTable(), engine, cuesync.WithFallbackFPS(30))

		Convey("Playback still resumes with the fallback rate", func() {
			resumed := false
			So(beginPlayback(controller, func() error {
				resumed = true
				return nil
			}), ShouldBeNil)
			So(resumed, ShouldBeTrue)
			So(controller.FrameRate(), ShouldEqual, 30)
		})

		Convey("A failed resume is returned", func() {
			err := beginPlayback(controller, func() error { return errors.New("socket closed") })
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "resume playback")
		})
	})
}
