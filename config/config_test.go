package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/video-presenter/presenter/filesystem"
	"github.com/video-presenter/presenter/key"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		So(Setup(), ShouldBeNil)

		Convey("Should have default values populated", func() {
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetFloat64(key.PlayerFallbackFPS), ShouldEqual, 60.0)
			So(viper.GetString(key.PlayerExecutable), ShouldEqual, "mpv")
		})

		Convey("Environment variables override defaults", func() {
			t.Setenv("PRESENTER_PLAYER_AUDIO", "true")
			So(viper.GetBool(key.PlayerAudio), ShouldBeTrue)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("player.fallback_fps"), ShouldEqual, "player_fallback_fps")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given the fallback frame rate field", t, func() {
		field := Default[key.PlayerFallbackFPS]

		Convey("Its env name carries the application prefix", func() {
			So(field.Env(), ShouldEqual, "PRESENTER_PLAYER_FALLBACK_FPS")
		})

		Convey("Its type is reported as float", func() {
			So(field.TypeName(), ShouldEqual, "float")
		})
	})
}
