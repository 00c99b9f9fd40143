package wave

import "math"

// Surface is a drawable area measured in device units.
type Surface interface {
	Size() (width, height float64)
	Resize(width, height float64)
	Clear()
	StrokePolyline(points []Point, width float64, paint Paint)
	FillRoundRect(x, y, w, h, radius float64, paint Paint)
	FillCircle(cx, cy, r float64, paint Paint)
	StrokeCircle(cx, cy, r, width float64, paint Paint)
	// Text draws s horizontally centred on x with its top at y.
	Text(x, y float64, s string, paint Paint)
}

// LinearFrame is the state needed to draw one frame of a straight bar.
type LinearFrame struct {
	Progress  float64
	Amplitude float64
	Phase     Phase
	// Glow is the halo intensity in [0, 1]; zero draws none.
	Glow float64
}

// LinearRenderer draws the progress bar, or the mirror bar when Compact is set.
type LinearRenderer struct {
	Config  Config
	Compact bool
}

// Draw clears s and paints one complete frame.
func (r LinearRenderer) Draw(s Surface, f LinearFrame) {
	if r.Compact {
		r.drawCompact(s, f)
		return
	}

	c := r.Config
	width, height := s.Size()
	centerY := height / 2
	progressX := f.Progress * width

	s.Clear()
	s.StrokePolyline([]Point{{X: progressX, Y: centerY}, {X: width, Y: centerY}}, c.StrokeWidth, c.Inactive)

	if progressX > 0 {
		start := c.StrokeWidth / 2
		end := math.Max(progressX-c.StrokeWidth/2, start)
		s.StrokePolyline(LinearWave(start, end, centerY, c.Wavelength, c.Segments, f.Amplitude, f.Phase), c.StrokeWidth, c.Active)
	}

	if f.Glow > 0 {
		spread := c.GlowSpread
		s.FillRoundRect(
			progressX-c.ThumbWidth/2-spread,
			centerY-c.ThumbHeight/2-spread,
			c.ThumbWidth+2*spread,
			c.ThumbHeight+2*spread,
			c.ThumbWidth/2+spread,
			c.Active.WithAlpha(0.2*f.Glow),
		)
	}
	s.FillRoundRect(progressX-c.ThumbWidth/2, centerY-c.ThumbHeight/2, c.ThumbWidth, c.ThumbHeight, c.ThumbWidth/2, c.Thumb)
}

func (r LinearRenderer) drawCompact(s Surface, f LinearFrame) {
	c := r.Config
	width, height := s.Size()
	centerY := height / 2
	progressX := f.Progress * width

	s.Clear()
	s.StrokePolyline([]Point{{X: progressX, Y: centerY}, {X: width - c.Padding, Y: centerY}}, c.StrokeWidth, c.Inactive)

	if progressX > c.Padding {
		start := c.Padding
		end := math.Max(progressX, start+1)
		s.StrokePolyline(LinearWave(start, end, centerY, c.Wavelength, c.Segments, f.Amplitude, f.Phase), c.StrokeWidth, c.Active)
		s.FillCircle(progressX, centerY, c.ThumbRadius, c.Active)
	}
}

// CurvedFrame is the state needed to draw one frame of the volume arc.
type CurvedFrame struct {
	Progress  float64
	Amplitude float64
	Phase     Phase
	Glow      float64
	Label     string
}

// CurvedRenderer draws the volume arc scaled to its surface.
type CurvedRenderer struct {
	Config Config
	Curve  Quad
}

// NewCurvedRenderer returns a renderer whose curve fits a surface of the given size.
func NewCurvedRenderer(c Config, width, height float64) *CurvedRenderer {
	r := &CurvedRenderer{Config: c}
	r.Fit(width, height)
	return r
}

// Fit rescales the reference curve to a new surface size.
func (r *CurvedRenderer) Fit(width, height float64) {
	r.Curve = VolumeCurve.Scale(width/VolumeCurveBox.X, height/VolumeCurveBox.Y)
}

// Draw clears s and paints one complete frame.
func (r *CurvedRenderer) Draw(s Surface, f CurvedFrame) {
	c := r.Config
	width, height := s.Size()

	s.Clear()
	s.StrokePolyline(r.Curve.Polyline(CurveSegments), c.StrokeWidth, c.Inactive)

	if f.Progress > 0 {
		s.StrokePolyline(CurvedWave(r.Curve, f.Progress, f.Amplitude, f.Phase, CurveSegments), c.StrokeWidth, c.Active)
	}

	thumb := CurvedThumb(r.Curve, f.Progress, f.Amplitude, f.Phase)
	if f.Glow > 0 {
		s.FillCircle(thumb.X, thumb.Y, c.ThumbRadius+c.GlowSpread, c.Active.WithAlpha(0.3*f.Glow))
	}
	s.FillCircle(thumb.X, thumb.Y, c.ThumbRadius, c.Thumb)
	s.StrokeCircle(thumb.X, thumb.Y, c.ThumbRadius, 2, c.Active)

	if f.Label != "" {
		s.Text(width/2, height-c.LabelOffset, f.Label, c.Active)
	}
}
