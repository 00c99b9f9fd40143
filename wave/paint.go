package wave

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/samber/lo"
)

// ErrInvalidColor is returned when a colour string cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// Paint is a colour with straight alpha.
type Paint struct {
	Color colorful.Color
	Alpha float64
	raw   string
}

// IsZero reports whether the paint was never set.
func (p Paint) IsZero() bool {
	return p.raw == "" && p.Alpha == 0
}

// String returns the colour as it was written, or as hex when built in code.
func (p Paint) String() string {
	if p.raw != "" {
		return p.raw
	}
	return p.Color.Hex()
}

// WithAlpha returns a copy scaled to the given opacity.
func (p Paint) WithAlpha(alpha float64) Paint {
	return Paint{Color: p.Color, Alpha: p.Alpha * alpha}
}

// ParsePaint accepts #rgb, #rrggbb, #rrggbbaa, rgb(r, g, b) and rgba(r, g, b, a).
func ParsePaint(s string) (Paint, error) {
	raw := strings.TrimSpace(s)
	lower := strings.ToLower(raw)

	switch {
	case strings.HasPrefix(lower, "#"):
		return parseHex(raw, lower)
	case strings.HasPrefix(lower, "rgba(") || strings.HasPrefix(lower, "rgb("):
		return parseFunctional(raw, lower)
	}
	return Paint{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// MustPaint parses a colour literal known to be valid.
func MustPaint(s string) Paint {
	return lo.Must(ParsePaint(s))
}

func parseHex(raw, lower string) (Paint, error) {
	alpha := 1.0
	hex := lower
	if len(lower) == 9 {
		a, err := strconv.ParseUint(lower[7:], 16, 8)
		if err != nil {
			return Paint{}, fmt.Errorf("%w: %q", ErrInvalidColor, raw)
		}
		alpha = float64(a) / 255
		hex = lower[:7]
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Paint{}, fmt.Errorf("%w: %q", ErrInvalidColor, raw)
	}
	return Paint{Color: c, Alpha: alpha, raw: raw}, nil
}

func parseFunctional(raw, lower string) (Paint, error) {
	open, end := strings.IndexByte(lower, '('), strings.LastIndexByte(lower, ')')
	if end < open {
		return Paint{}, fmt.Errorf("%w: %q", ErrInvalidColor, raw)
	}
	parts := strings.Split(lower[open+1:end], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Paint{}, fmt.Errorf("%w: %q", ErrInvalidColor, raw)
	}

	values := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Paint{}, fmt.Errorf("%w: %q", ErrInvalidColor, raw)
		}
		values[i] = v
	}

	alpha := 1.0
	if len(values) == 4 {
		alpha = values[3]
	}
	return Paint{
		Color: colorful.Color{R: values[0] / 255, G: values[1] / 255, B: values[2] / 255}.Clamped(),
		Alpha: lo.Clamp(alpha, 0, 1),
		raw:   raw,
	}, nil
}
