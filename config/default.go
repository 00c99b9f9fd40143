// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/squiggle-cli/squiggle/color"
	"github.com/squiggle-cli/squiggle/constant"
	"github.com/squiggle-cli/squiggle/key"
	"github.com/squiggle-cli/squiggle/style"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Squiggle + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.TypeName(),
	})
}

// TypeName returns the string representation of the field's underlying value type.
func (f *Field) TypeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Parse converts raw CLI arguments into a value of the field's type.
func (f *Field) Parse(raw []string) (any, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("no value given for %s", f.Key)
	}

	switch f.Value.(type) {
	case string:
		return raw[0], nil
	case int:
		v, err := strconv.ParseInt(raw[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer value: %s", raw[0])
		}
		return int(v), nil
	case float64:
		v, err := strconv.ParseFloat(raw[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number value: %s", raw[0])
		}
		return v, nil
	case bool:
		v, err := strconv.ParseBool(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value: %s", raw[0])
		}
		return v, nil
	case []string:
		return raw, nil
	default:
		return nil, fmt.Errorf("unsupported type for %s", f.Key)
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	// Terminal dots are coarse, so the wave defaults are tuned for a 2x4 braille grid.
	register(key.WaveStrokeWidth, 1.0, "Stroke width of the wave, in braille dots")
	register(key.WaveWavelength, 16.0, "Wavelength of the progress squiggle, in braille dots.\nOverridden by the persisted slider settings when present")
	register(key.WaveAmplitude, 3.0, "Peak amplitude of the progress squiggle, in braille dots.\nOverridden by the persisted slider settings when present")
	register(key.WaveAnimationDuration, 4000, "Duration of one full wave cycle in milliseconds")
	register(key.WaveAnimate, true, "Animate the wave and interpolate between position updates")
	register(key.ColorsActive, "#00ff88", "Colour of the played part of the bar.\nAccepts #rrggbb, #rrggbbaa or rgba(r, g, b, a)")
	register(key.ColorsInactive, "rgba(255, 255, 255, 0.2)", "Colour of the unplayed track")
	register(key.ColorsThumb, "#ffffff", "Colour of the thumb")
	register(key.ThumbWidth, 2.0, "Width of the progress thumb, in braille dots")
	register(key.ThumbHeight, 8.0, "Height of the progress thumb, in braille dots")
	register(key.VolumeInitial, 50, "Volume shown before the player reports one (0-100)")
	register(key.VolumeThumbRadius, 2.0, "Radius of the volume thumb, in braille dots")
	register(key.VolumeStep, 5, "Volume change per key press (0-100)")
	register(key.MirrorShow, true, "Show the compact mirror bar under the volume control")
	register(key.MirrorPollInterval, 200, "How often the mirror bar samples the main bar, in milliseconds")
	register(key.TUIFPS, 60, "Target frames per second of the animation loop")
	register(key.TUISeekStep, 5, "Seconds skipped by the left and right keys")
	register(key.Player, "mpv", "Playback host to drive.\nAvailable options are: mpv, local, remote")
	register(key.PlayerRemoteURL, "ws://127.0.0.1:8765/ws", "Websocket URL of the remote playback host")
	register(key.PlayerPollInterval, 1000, "How often the playback host is asked for its position, in milliseconds")
	register(key.SettingsKey, "squiggly-slider", "Name of the persisted slider settings record")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Check for a newer release when printing help or version")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, nerd, plain, squares")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
