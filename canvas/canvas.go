// Package canvas is a braille-dot raster that implements wave.Surface.
//
// Every terminal cell holds a 2x4 grid of dots, so a canvas of W x H dots
// occupies ceil(W/2) x ceil(H/4) cells. Each cell renders in one colour: the
// alpha-weighted mix of its lit dots.
package canvas

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/squiggle-cli/squiggle/color"
	"github.com/squiggle-cli/squiggle/wave"
)

// Dot positions (col, row) to bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// visible is the coverage below which a dot stays dark.
const visible = 0.05

type dot struct {
	c colorful.Color
	a float64
}

type label struct {
	row, col int
	text     string
	paint    wave.Paint
}

// Canvas is a braille raster measured in dots.
type Canvas struct {
	width, height float64
	cols, rows    int
	dots          []dot
	labels        []label
}

// New returns a canvas of width x height dots.
func New(width, height float64) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Size returns the canvas size in dots.
func (c *Canvas) Size() (float64, float64) {
	return c.width, c.height
}

// Cells returns the canvas size in terminal cells.
func (c *Canvas) Cells() (cols, rows int) {
	return c.cols, c.rows
}

// Resize reallocates the raster and clears it.
func (c *Canvas) Resize(width, height float64) {
	c.width, c.height = math.Max(width, 0), math.Max(height, 0)
	c.cols = int(math.Ceil(c.width / 2))
	c.rows = int(math.Ceil(c.height / 4))
	c.dots = make([]dot, c.cols*2*c.rows*4)
	c.labels = nil
}

// Clear darkens every dot and drops labels.
func (c *Canvas) Clear() {
	for i := range c.dots {
		c.dots[i] = dot{}
	}
	c.labels = c.labels[:0]
}

func (c *Canvas) dotCols() int { return c.cols * 2 }
func (c *Canvas) dotRows() int { return c.rows * 4 }

// mask collects the dots touched by one drawing operation so that
// overlapping stamps composite only once.
type mask map[int]struct{}

func (c *Canvas) mark(m mask, x, y int) {
	if x < 0 || y < 0 || x >= c.dotCols() || y >= c.dotRows() {
		return
	}
	m[y*c.dotCols()+x] = struct{}{}
}

func (c *Canvas) apply(m mask, p wave.Paint) {
	if p.Alpha <= 0 {
		return
	}
	for i := range m {
		d := &c.dots[i]
		a := p.Alpha + d.a*(1-p.Alpha)
		if a <= 0 {
			continue
		}
		d.c = colorful.Color{
			R: (p.Color.R*p.Alpha + d.c.R*d.a*(1-p.Alpha)) / a,
			G: (p.Color.G*p.Alpha + d.c.G*d.a*(1-p.Alpha)) / a,
			B: (p.Color.B*p.Alpha + d.c.B*d.a*(1-p.Alpha)) / a,
		}
		d.a = a
	}
}

// disc marks every dot whose centre lies within r of (cx, cy). Discs smaller
// than a dot still light the nearest one.
func (c *Canvas) disc(m mask, cx, cy, r float64) {
	if r < 0.75 {
		c.mark(m, int(math.Floor(cx)), int(math.Floor(cy)))
		return
	}
	for y := int(math.Floor(cy - r)); y <= int(math.Ceil(cy+r)); y++ {
		for x := int(math.Floor(cx - r)); x <= int(math.Ceil(cx+r)); x++ {
			if math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) <= r {
				c.mark(m, x, y)
			}
		}
	}
}

// StrokePolyline draws connected segments with round caps and joins.
func (c *Canvas) StrokePolyline(points []wave.Point, width float64, p wave.Paint) {
	if len(points) == 0 {
		return
	}
	m := make(mask)
	r := width / 2
	c.disc(m, points[0].X, points[0].Y, r)
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		length := math.Hypot(b.X-a.X, b.Y-a.Y)
		steps := int(math.Ceil(length * 2))
		for s := 1; s <= steps; s++ {
			t := float64(s) / float64(steps)
			c.disc(m, a.X+(b.X-a.X)*t, a.Y+(b.Y-a.Y)*t, r)
		}
	}
	c.apply(m, p)
}

// FillRoundRect fills a rectangle whose corners are rounded by radius.
func (c *Canvas) FillRoundRect(x, y, w, h, radius float64, p wave.Paint) {
	if w <= 0 || h <= 0 {
		return
	}
	radius = math.Min(radius, math.Min(w, h)/2)
	m := make(mask)
	for dy := int(math.Floor(y)); dy <= int(math.Ceil(y+h)); dy++ {
		for dx := int(math.Floor(x)); dx <= int(math.Ceil(x+w)); dx++ {
			px, py := float64(dx)+0.5, float64(dy)+0.5
			if px < x || px > x+w || py < y || py > y+h {
				continue
			}
			// distance to the inner rectangle; corners fall outside the radius
			ix := math.Max(math.Max(x+radius-px, px-(x+w-radius)), 0)
			iy := math.Max(math.Max(y+radius-py, py-(y+h-radius)), 0)
			if math.Hypot(ix, iy) <= radius {
				c.mark(m, dx, dy)
			}
		}
	}
	if len(m) == 0 {
		c.mark(m, int(math.Floor(x+w/2)), int(math.Floor(y+h/2)))
	}
	c.apply(m, p)
}

// FillCircle fills a disc.
func (c *Canvas) FillCircle(cx, cy, r float64, p wave.Paint) {
	m := make(mask)
	c.disc(m, cx, cy, r)
	c.apply(m, p)
}

// StrokeCircle draws a ring of the given line width.
func (c *Canvas) StrokeCircle(cx, cy, r, width float64, p wave.Paint) {
	m := make(mask)
	half := width / 2
	outer := r + half
	for y := int(math.Floor(cy - outer)); y <= int(math.Ceil(cy+outer)); y++ {
		for x := int(math.Floor(cx - outer)); x <= int(math.Ceil(cx+outer)); x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if math.Abs(d-r) <= half {
				c.mark(m, x, y)
			}
		}
	}
	c.apply(m, p)
}

// Text places s on the cell row containing y, centred on x.
func (c *Canvas) Text(x, y float64, s string, p wave.Paint) {
	row := int(math.Floor(y / 4))
	if row < 0 || row >= c.rows {
		return
	}
	col := int(math.Floor(x/2)) - runewidth.StringWidth(s)/2
	c.labels = append(c.labels, label{row: row, col: col, text: s, paint: p})
}

// Lit reports whether the dot at (x, y) is visible.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x >= c.dotCols() || y >= c.dotRows() {
		return false
	}
	return c.dots[y*c.dotCols()+x].a >= visible
}

type cell struct {
	r     rune
	color colorful.Color
	lit   bool
}

func (c *Canvas) cell(col, row int) cell {
	var pattern uint
	var sum colorful.Color
	var n float64
	for dx := 0; dx < 2; dx++ {
		for dy := 0; dy < 4; dy++ {
			x, y := col*2+dx, row*4+dy
			d := c.dots[y*c.dotCols()+x]
			if d.a < visible {
				continue
			}
			pattern |= 1 << brailleBits[dx][dy]
			shaded := d.c.BlendRgb(colorful.Color{}, 1-d.a)
			sum.R += shaded.R
			sum.G += shaded.G
			sum.B += shaded.B
			n++
		}
	}
	if pattern == 0 {
		return cell{r: ' '}
	}
	return cell{r: rune(0x2800 + pattern), color: colorful.Color{R: sum.R / n, G: sum.G / n, B: sum.B / n}, lit: true}
}

// grid resolves dots and labels into one rune and colour per cell.
func (c *Canvas) grid() [][]cell {
	g := make([][]cell, c.rows)
	for row := range g {
		g[row] = make([]cell, c.cols)
		for col := range g[row] {
			g[row][col] = c.cell(col, row)
		}
	}
	for _, l := range c.labels {
		col := l.col
		for _, r := range l.text {
			if col >= 0 && col < c.cols {
				g[l.row][col] = cell{r: r, color: l.paint.Color, lit: true}
			}
			col += runewidth.RuneWidth(r)
		}
	}
	return g
}

// Plain renders the canvas without colour.
func (c *Canvas) Plain() string {
	lines := make([]string, c.rows)
	for row, cells := range c.grid() {
		var b strings.Builder
		for _, cl := range cells {
			b.WriteRune(cl.r)
		}
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}

// String renders the canvas with one lipgloss foreground per run of equal colour.
func (c *Canvas) String() string {
	lines := make([]string, c.rows)
	for row, cells := range c.grid() {
		var b strings.Builder
		var run strings.Builder
		var current cell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current.lit {
				b.WriteString(lipgloss.NewStyle().Foreground(color.Of(current.color)).Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for i, cl := range cells {
			if i == 0 || cl.lit != current.lit || (cl.lit && cl.color.Hex() != current.color.Hex()) {
				flush()
				current = cl
			}
			run.WriteRune(cl.r)
		}
		flush()
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}
