package curve

import (
	"fmt"
	"math"
)

// Vector2 is a point or displacement in playfield coordinates.
type Vector2 struct {
	X float64
	Y float64
}

// Vec returns the vector (x, y).
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Midpoint returns the point halfway between v and o.
func (v Vector2) Midpoint(o Vector2) Vector2 {
	return Vector2{X: 0.5 * (v.X + o.X), Y: 0.5 * (v.Y + o.Y)}
}

// Lerp linearly interpolates between v and o.
func (v Vector2) Lerp(o Vector2, t float64) Vector2 {
	return Vector2{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
	}
}

func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the cross product, twice the signed
// area of the triangle (origin, v, o).
func (v Vector2) Cross(o Vector2) float64 {
	return v.X*o.Y - v.Y*o.X
}

func (v Vector2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vector2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Distance returns the euclidean distance between two points.
func (v Vector2) Distance(o Vector2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

func (v Vector2) DistanceSquared(o Vector2) float64 {
	x := v.X - o.X
	y := v.Y - o.Y
	return x*x + y*y
}

// Normalize returns the unit vector in the direction of v, or the zero
// vector when v has no length.
func (v Vector2) Normalize() Vector2 {
	l := math.Hypot(v.X, v.Y)
	if l == 0 {
		return Vector2{}
	}
	return Vector2{X: v.X / l, Y: v.Y / l}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// collinear reports whether the three points lie on a single line.
func collinear(a, b, c Vector2) bool {
	return math.Abs(b.Sub(a).Cross(c.Sub(b))) < 1e-6
}

// circumcenter computes the center of the unique circle through three
// non-collinear points via the perpendicular-bisector intersection.
func circumcenter(a, b, c Vector2) (Vector2, bool) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < 1e-8 {
		return Vector2{}, false
	}
	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y
	return Vector2{
		X: (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d,
		Y: (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d,
	}, true
}
