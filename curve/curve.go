package curve

import (
	"fmt"
	"sort"
	"sync"
)

// Kind identifies how a slider's control points are interpreted.
type Kind uint8

const (
	Linear Kind = iota
	PerfectCircle
	Catmull
	Bezier
)

func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case PerfectCircle:
		return "perfect-circle"
	case Catmull:
		return "catmull"
	case Bezier:
		return "bezier"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Curve is a continuous, length-parameterized path built from a curve kind
// and its ordered control points. The anchors are stored as authored; the
// flattened polyline and its cumulative-length table are derived lazily on
// first use and never change afterwards, so a Curve is safe for concurrent
// readers.
type Curve struct {
	kind      Kind // as authored
	effective Kind // after degenerate-input fallbacks
	anchors   []Vector2

	once       sync.Once
	polyline   []Vector2
	cumulative []float64
}

// New builds a Curve from ordered anchor points. At least one anchor is
// required. Degenerate inputs fall back to simpler kinds: two anchors are
// always a line, a perfect circle needs exactly three anchors (anything else
// is treated as a bezier), and a collinear perfect-circle triple degrades to
// a line through the same anchors.
func New(kind Kind, anchors []Vector2) (*Curve, error) {
	if kind > Bezier {
		return nil, fmt.Errorf("curve: unknown kind %d", kind)
	}
	if len(anchors) == 0 {
		return nil, fmt.Errorf("curve: %s curve needs at least one anchor", kind)
	}
	effective := kind
	switch {
	case len(anchors) == 2:
		effective = Linear
	case kind == PerfectCircle && len(anchors) != 3:
		effective = Bezier
	case kind == PerfectCircle && collinear(anchors[0], anchors[1], anchors[2]):
		effective = Linear
	}
	own := make([]Vector2, len(anchors))
	copy(own, anchors)
	return &Curve{kind: kind, effective: effective, anchors: own}, nil
}

// Kind returns the curve kind as authored.
func (c *Curve) Kind() Kind { return c.kind }

// EffectiveKind returns the kind actually used to build the path. It differs
// from Kind when a degenerate-input fallback applied.
func (c *Curve) EffectiveKind() Kind { return c.effective }

// Anchors returns the control points as authored.
func (c *Curve) Anchors() []Vector2 { return c.anchors }

// TotalLength returns the arc length of the flattened path.
func (c *Curve) TotalLength() float64 {
	c.flatten()
	return c.cumulative[len(c.cumulative)-1]
}

// PointAt returns the point reached after traveling distance d along the
// path. The distance is clamped to [0, TotalLength()]. The result is an
// approximation bounded by the flattening tolerance, not exact curve
// evaluation.
func (c *Curve) PointAt(d float64) Vector2 {
	c.flatten()
	total := c.cumulative[len(c.cumulative)-1]
	d = clamp(d, 0, total)

	// First flattened segment whose cumulative length reaches d.
	i := sort.SearchFloat64s(c.cumulative, d)
	if i == 0 {
		return c.polyline[0]
	}
	if i == len(c.cumulative) {
		return c.polyline[len(c.polyline)-1]
	}
	lo, hi := c.cumulative[i-1], c.cumulative[i]
	if hi == lo {
		return c.polyline[i]
	}
	t := (d - lo) / (hi - lo)
	return c.polyline[i-1].Lerp(c.polyline[i], t)
}

// flatten computes the polyline and the cumulative-length prefix table,
// exactly once even under concurrent use.
func (c *Curve) flatten() {
	c.once.Do(func() {
		var poly []Vector2
		add := func(v Vector2) {
			n := len(poly)
			if n == 0 || poly[n-1] != v {
				poly = append(poly, v)
			}
		}
		appendMany := func(pts []Vector2) {
			for _, p := range pts {
				add(p)
			}
		}

		switch c.effective {
		case Linear:
			appendMany(c.anchors)
		case PerfectCircle:
			appendMany(approximateArc(c.anchors[0], c.anchors[1], c.anchors[2]))
		case Catmull:
			appendMany(approximateCatmull(c.anchors))
		case Bezier:
			for _, seg := range splitAtRepeats(c.anchors) {
				appendMany(approximateBezier(seg))
			}
		}
		if len(poly) == 0 {
			poly = []Vector2{c.anchors[0]}
		}

		cumulative := make([]float64, len(poly))
		for i := 1; i < len(poly); i++ {
			cumulative[i] = cumulative[i-1] + poly[i-1].Distance(poly[i])
		}
		c.polyline = poly
		c.cumulative = cumulative
	})
}

// splitAtRepeats cuts a bezier control-point list into independent sub-curves
// wherever an anchor exactly repeats its predecessor. A zero-length step is
// the format's marker for an explicit path break, not a real control point.
func splitAtRepeats(anchors []Vector2) [][]Vector2 {
	var segs [][]Vector2
	cur := []Vector2{anchors[0]}
	for _, p := range anchors[1:] {
		if p == cur[len(cur)-1] {
			if len(cur) >= 2 {
				segs = append(segs, cur)
			}
			cur = []Vector2{p}
			continue
		}
		cur = append(cur, p)
	}
	if len(cur) >= 2 || len(segs) == 0 {
		segs = append(segs, cur)
	}
	return segs
}
