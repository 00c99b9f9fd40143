// Package icon renders UI symbols in the variant chosen by icons.variant.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII,
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/spf13/viper"
	"github.com/squiggle-cli/squiggle/key"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, squares}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Play Icon = iota
	Pause
	VolumeOff
	VolumeDown
	VolumeUp
	Success
	Fail
	Mark
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	squares string
}

var icons = map[Icon]*iconDef{
	Play:       {emoji: "▶️", nerd: "", plain: ">", squares: "▶"},
	Pause:      {emoji: "⏸️", nerd: "", plain: "||", squares: "⏸"},
	VolumeOff:  {emoji: "🔇", nerd: "\U000f075f", plain: "x", squares: "▫"},
	VolumeDown: {emoji: "🔉", nerd: "\U000f057f", plain: "-", squares: "▪"},
	VolumeUp:   {emoji: "🔊", nerd: "\U000f057e", plain: "+", squares: "■"},
	Success:    {emoji: "✅", nerd: "", plain: "OK", squares: "🟩"},
	Fail:       {emoji: "❌", nerd: "", plain: "X", squares: "🟥"},
	Mark:       {emoji: "〰️", nerd: "", plain: "~", squares: "≈"},
}

// Get retrieves the representation for the configured variant.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns the rendered string for a specified Icon identifier from the global registry.
func Get(i Icon) string {
	if def, ok := icons[i]; ok {
		return def.Get()
	}
	return ""
}

// Level picks the volume icon for a 0-100 volume: off at zero, down below half, up otherwise.
func Level(volume int) Icon {
	switch {
	case volume <= 0:
		return VolumeOff
	case volume < 50:
		return VolumeDown
	default:
		return VolumeUp
	}
}
