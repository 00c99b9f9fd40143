package wave

import "math"

// CurveSegments is the sampling resolution of the curved track.
const CurveSegments = 60

// curvedFrequency is the angular frequency of the curved squiggle, in radians
// per unit of normalized progress.
const curvedFrequency = 15

// Point is a position on the surface.
type Point struct {
	X, Y float64
}

// Taper grows the amplitude from nothing at the tail to full at the head.
func Taper(f float64) float64 {
	if f <= 0 {
		return 0
	}
	return math.Pow(f, 1.5)
}

// LinearWave samples a horizontal squiggle between start and end.
func LinearWave(start, end, centerY, wavelength float64, segments int, amplitude float64, phase Phase) []Point {
	if segments <= 0 || wavelength <= 0 {
		return nil
	}
	step := wavelength / float64(segments)
	length := end - start
	count := int(math.Ceil(length/step)) + 1
	if count < 1 {
		count = 1
	}

	points := make([]Point, 0, count)
	x := start
	for i := 0; i < count; i++ {
		radians := (x-start)/wavelength*2*math.Pi + 2*math.Pi*float64(phase)
		var f float64
		if length > 0 {
			f = (x - start) / length
		}
		points = append(points, Point{X: x, Y: centerY + math.Sin(radians)*amplitude*Taper(f)})
		x = math.Min(x+step, end)
	}
	return points
}

// Quad is a quadratic Bézier curve.
type Quad struct {
	P0, P1, P2 Point
}

// VolumeCurve is the reference arc of the volume control on a 150x50 box.
var VolumeCurve = Quad{
	P0: Point{X: 8, Y: 42},
	P1: Point{X: 75, Y: 8},
	P2: Point{X: 142, Y: 42},
}

// VolumeCurveBox is the size of the box VolumeCurve is drawn in.
var VolumeCurveBox = Point{X: 150, Y: 50}

// At returns the point at parameter t.
func (q Quad) At(t float64) Point {
	inv := 1 - t
	return Point{
		X: inv*inv*q.P0.X + 2*inv*t*q.P1.X + t*t*q.P2.X,
		Y: inv*inv*q.P0.Y + 2*inv*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Normal returns the unit normal (-ty, tx) of the tangent at t.
func (q Quad) Normal(t float64) Point {
	inv := 1 - t
	tx := 2*inv*(q.P1.X-q.P0.X) + 2*t*(q.P2.X-q.P1.X)
	ty := 2*inv*(q.P1.Y-q.P0.Y) + 2*t*(q.P2.Y-q.P1.Y)
	l := math.Hypot(tx, ty)
	if l == 0 {
		return Point{}
	}
	return Point{X: -ty / l, Y: tx / l}
}

// Scale stretches the curve by sx horizontally and sy vertically.
func (q Quad) Scale(sx, sy float64) Quad {
	s := func(p Point) Point { return Point{X: p.X * sx, Y: p.Y * sy} }
	return Quad{P0: s(q.P0), P1: s(q.P1), P2: s(q.P2)}
}

// Polyline samples the bare curve with the given number of segments.
func (q Quad) Polyline(segments int) []Point {
	points := make([]Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		points = append(points, q.At(float64(i)/float64(segments)))
	}
	return points
}

// CurvedWave samples the squiggle along q from the start to progress.
func CurvedWave(q Quad, progress, amplitude float64, phase Phase, segments int) []Point {
	if progress <= 0 || segments <= 0 {
		return nil
	}
	active := int(math.Ceil(float64(segments) * progress))
	points := make([]Point, 0, active+1)
	for i := 0; i <= active; i++ {
		t := float64(i) / float64(segments)
		pt, n := q.At(t), q.Normal(t)
		f := t / progress
		offset := math.Sin(f*curvedFrequency+2*math.Pi*float64(phase)) * amplitude * Taper(f)
		points = append(points, Point{X: pt.X + n.X*offset, Y: pt.Y + n.Y*offset})
	}
	return points
}

// CurvedThumb returns the thumb centre at progress along q.
func CurvedThumb(q Quad, progress, amplitude float64, phase Phase) Point {
	pt, n := q.At(progress), q.Normal(progress)
	offset := math.Sin(curvedFrequency+2*math.Pi*float64(phase)) * amplitude
	return Point{X: pt.X + n.X*offset, Y: pt.Y + n.Y*offset}
}
