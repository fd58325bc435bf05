// Package cmd implements the command-line interface of presenter.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/video-presenter/presenter/color"
	"github.com/video-presenter/presenter/constant"
	"github.com/video-presenter/presenter/cue"
	"github.com/video-presenter/presenter/icon"
	"github.com/video-presenter/presenter/key"
	"github.com/video-presenter/presenter/log"
	"github.com/video-presenter/presenter/style"
	"github.com/video-presenter/presenter/version"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.Flags().StringArrayP("mpv-setting", "m", nil, "Pass an option to mpv as key=value, may be repeated")

	rootCmd.Flags().BoolP("audio", "a", false, "Play the audio track")
	lo.Must0(viper.BindPFlag(key.PlayerAudio, rootCmd.Flags().Lookup("audio")))

	rootCmd.Flags().BoolP("fullscreen", "f", false, "Start mpv in fullscreen")
	lo.Must0(viper.BindPFlag(key.PlayerFullscreen, rootCmd.Flags().Lookup("fullscreen")))

	rootCmd.Flags().Float64("fps", 0, "Frame rate used to place cues until mpv reports one")
	lo.Must0(viper.BindPFlag(key.PlayerFallbackFPS, rootCmd.Flags().Lookup("fps")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

// rootCmd plays a video as a presentation, pausing at every cue of its marker file.
var rootCmd = &cobra.Command{
	Use:   constant.Presenter + " <video> [markers]",
	Short: "Present a recorded video, pausing at every cue point",
	Long: constant.Banner + "\n\n" +
		style.New().Italic(true).Foreground(color.HiCyan).Render("    - Present a recorded video, pausing at every cue point") + `

The markers file is a Premiere Pro or After Effects marker export (comma or tab separated).
When it is omitted, a file next to the video with the same name and a .csv, .tsv or .txt
extension is used.`,
	Example: strings.Join([]string{
		"  presenter talk.mp4",
		"  presenter talk.mp4 talk-markers.csv --audio",
		"  presenter talk.mp4 -m volume=50 -m loop-file=no",
	}, "\n"),
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		if len(args) == 0 {
			handleErr(cmd.Help())
			return
		}

		video := args[0]
		markers := mo.None[string]()
		if len(args) > 1 {
			markers = mo.Some(args[1])
		}

		path, err := resolveMarkers(video, markers)
		handleErr(err)

		table, err := cue.Load(path)
		handleErr(err)

		printCueTree(os.Stdout, table, 0)
		warnSkipped(os.Stderr, table)

		CheckDependencies()

		handleErr(present(video, table, lo.Must(cmd.Flags().GetStringArray("mpv-setting"))))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
