package render

import "image/color"

// recordingSurface implements Surface and records drawing operations so
// tests can assert on what was drawn without rasterising anything.
type recordingSurface struct {
	width  float64
	height float64

	fills     []color.Color
	polylines []polylineOp
	strokes   []circleOp
	filled    []circleOp
}

type polylineOp struct {
	pts   []Point
	color color.Color
	width float64
}

type circleOp struct {
	cx, cy, r float64
	color     color.Color
}

func newRecordingSurface(width, height float64) *recordingSurface {
	return &recordingSurface{width: width, height: height}
}

func (s *recordingSurface) Size() (float64, float64) { return s.width, s.height }

func (s *recordingSurface) Fill(c color.Color) {
	s.fills = append(s.fills, c)
}

func (s *recordingSurface) Polyline(pts []Point, c color.Color, width float64) {
	cp := make([]Point, len(pts))
	copy(cp, pts)
	s.polylines = append(s.polylines, polylineOp{pts: cp, color: c, width: width})
}

func (s *recordingSurface) StrokeCircle(cx, cy, r float64, c color.Color, width float64) {
	s.strokes = append(s.strokes, circleOp{cx: cx, cy: cy, r: r, color: c})
}

func (s *recordingSurface) FillCircle(cx, cy, r float64, c color.Color) {
	s.filled = append(s.filled, circleOp{cx: cx, cy: cy, r: r, color: c})
}

// markers returns the filled circles of the given radius. Trail markers
// are radius 2; the current position marker is radius 5.
func (s *recordingSurface) markers(r float64) []circleOp {
	var out []circleOp
	for _, c := range s.filled {
		if c.r == r {
			out = append(out, c)
		}
	}
	return out
}
