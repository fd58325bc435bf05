// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Media Playback - these keys configure the mpv engine and how the controller talks to it.
const (
	PlayerExecutable     = "player.executable"
	PlayerAudio          = "player.audio"
	PlayerFullscreen     = "player.fullscreen"
	PlayerSettings       = "player.settings"
	PlayerFallbackFPS    = "player.fallback_fps"
	PlayerEventTimeoutMs = "player.event_timeout_ms"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the presentation view.
const (
	TUIShowCues = "tui.show_cues"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
