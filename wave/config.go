// Package wave computes and draws the animated squiggle used by every slider.
//
// Geometry is pure: LinearWave and CurvedWave return point lists that a
// renderer strokes onto a Surface. All lengths are in surface units (braille
// dots for the terminal canvas).
package wave

import (
	"math"
	"time"
)

// Config is the immutable per-slider drawing configuration.
type Config struct {
	StrokeWidth       float64
	Wavelength        float64
	Amplitude         float64
	Segments          int
	AnimationDuration time.Duration

	Active   Paint
	Inactive Paint
	Thumb    Paint

	ThumbWidth  float64
	ThumbHeight float64
	ThumbRadius float64

	// Padding insets the compact track from both ends.
	Padding float64
	// LabelOffset is the distance of the curved label's top from the bottom edge.
	LabelOffset float64
	// GlowSpread inflates the thumb halo beyond the thumb.
	GlowSpread float64
}

// Option overrides a Config field. Zero values leave the default in place.
type Option func(*Config)

func WithStrokeWidth(w float64) Option { return func(c *Config) { c.StrokeWidth = w } }
func WithWavelength(l float64) Option  { return func(c *Config) { c.Wavelength = l } }
func WithAmplitude(a float64) Option   { return func(c *Config) { c.Amplitude = a } }
func WithSegments(n int) Option        { return func(c *Config) { c.Segments = n } }
func WithPadding(p float64) Option     { return func(c *Config) { c.Padding = p } }
func WithLabelOffset(o float64) Option { return func(c *Config) { c.LabelOffset = o } }
func WithGlowSpread(s float64) Option  { return func(c *Config) { c.GlowSpread = s } }
func WithThumbRadius(r float64) Option { return func(c *Config) { c.ThumbRadius = r } }

func WithAnimationDuration(d time.Duration) Option {
	return func(c *Config) { c.AnimationDuration = d }
}

func WithActiveColor(p Paint) Option   { return func(c *Config) { c.Active = p } }
func WithInactiveColor(p Paint) Option { return func(c *Config) { c.Inactive = p } }
func WithThumbColor(p Paint) Option    { return func(c *Config) { c.Thumb = p } }

func WithThumbSize(w, h float64) Option {
	return func(c *Config) {
		c.ThumbWidth = w
		c.ThumbHeight = h
	}
}

func build(opts []Option, fill func(*Config)) Config {
	var c Config
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	fill(&c)
	return c
}

func orFloat(v *float64, def float64) {
	if *v <= 0 {
		*v = def
	}
}

func orPaint(p *Paint, def string) {
	if p.IsZero() {
		*p = MustPaint(def)
	}
}

func orCommon(c *Config, segments int, period time.Duration) {
	if c.Segments <= 0 {
		c.Segments = segments
	}
	if c.AnimationDuration <= 0 {
		c.AnimationDuration = period
	}
	orPaint(&c.Active, "#00ff88")
	orPaint(&c.Thumb, "#ffffff")
	orFloat(&c.GlowSpread, 4)
}

// Progress returns the configuration of the main progress bar. Wavelength,
// amplitude and thumb size derive from the stroke width when unset.
func Progress(opts ...Option) Config {
	return build(opts, func(c *Config) {
		orFloat(&c.StrokeWidth, 4)
		orFloat(&c.Wavelength, math.Max(c.StrokeWidth*6, 16))
		orFloat(&c.Amplitude, math.Max(c.StrokeWidth/2, 2))
		orFloat(&c.ThumbWidth, math.Max(c.StrokeWidth, 4))
		orFloat(&c.ThumbHeight, math.Max(c.StrokeWidth*4, 16))
		orPaint(&c.Inactive, "rgba(255, 255, 255, 0.2)")
		orCommon(c, 10, 4000*time.Millisecond)
	})
}

// Volume returns the configuration of the curved volume control.
func Volume(opts ...Option) Config {
	return build(opts, func(c *Config) {
		orFloat(&c.StrokeWidth, 4)
		orFloat(&c.Wavelength, 14)
		orFloat(&c.Amplitude, 3)
		orFloat(&c.ThumbRadius, 8)
		orFloat(&c.LabelOffset, 12)
		orPaint(&c.Inactive, "rgba(255, 255, 255, 0.2)")
		orCommon(c, 8, 3000*time.Millisecond)
	})
}

// Mini returns the configuration of the compact mirror bar.
func Mini(opts ...Option) Config {
	return build(opts, func(c *Config) {
		orFloat(&c.StrokeWidth, 3)
		orFloat(&c.Wavelength, 12)
		orFloat(&c.Amplitude, 4)
		orFloat(&c.Padding, 8)
		orFloat(&c.ThumbRadius, 4)
		orPaint(&c.Inactive, "rgba(255, 255, 255, 0.15)")
		orCommon(c, 8, 3000*time.Millisecond)
	})
}

// Phase is the animation position within one wave cycle, in [0, 1).
type Phase float64

// Advance moves the phase forward by elapsed/period and wraps at 1.
func (p Phase) Advance(elapsed, period time.Duration) Phase {
	if period <= 0 {
		return p
	}
	next := float64(p) + float64(elapsed)/float64(period)
	next -= math.Floor(next)
	return Phase(next)
}
