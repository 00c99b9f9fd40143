// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 27

// Wave Geometry - these keys shape the squiggle drawn by every slider.
const (
	WaveStrokeWidth       = "wave.stroke_width"
	WaveWavelength        = "wave.wavelength"
	WaveAmplitude         = "wave.amplitude"
	WaveAnimationDuration = "wave.animation_duration"
	WaveAnimate           = "wave.animate"
)

// Palette - these keys hold colour strings (#rrggbb, #rrggbbaa or rgba(r, g, b, a)).
const (
	ColorsActive   = "colors.active"
	ColorsInactive = "colors.inactive"
	ColorsThumb    = "colors.thumb"
)

// Thumb Geometry - these keys size the progress thumb.
const (
	ThumbWidth  = "thumb.width"
	ThumbHeight = "thumb.height"
)

// Volume Control - these keys configure the curved volume slider.
const (
	VolumeInitial     = "volume.initial"
	VolumeThumbRadius = "volume.thumb_radius"
	VolumeStep        = "volume.step"
)

// Mirror Bar - these keys configure the compact display-only bar.
const (
	MirrorShow         = "mirror.show"
	MirrorPollInterval = "mirror.poll_interval"
)

// Terminal User Interface (TUI) - these keys define frame pacing and keyboard seeking.
const (
	TUIFPS      = "tui.fps"
	TUISeekStep = "tui.seek_step"
)

// Playback Host - these keys select and tune the backend that reports position.
const (
	Player             = "player.default"
	PlayerRemoteURL    = "player.remote_url"
	PlayerPollInterval = "player.poll_interval"
)

// Persisted Slider Settings - the key under which wavelength, amplitude and colour survive restarts.
const (
	SettingsKey = "settings.key"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)
