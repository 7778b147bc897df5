package curve

import "math"

// Flattening constants, matching the reference client's path approximator.
const (
	// Maximum deviation of a bezier control polygon from its chord.
	bezierTolerance = 0.25
	bezierTolSq     = bezierTolerance * bezierTolerance

	// Sagitta tolerance for circular arcs.
	arcTolerance = 0.10

	// Samples per catmull span.
	catmullDetail = 50
)

// approximateBezier flattens one bezier sub-curve by recursive subdivision:
// the control polygon is halved (de Casteljau) until its maximum second
// difference is within tolerance, then the flat pieces are emitted in order.
func approximateBezier(cp []Vector2) []Vector2 {
	if len(cp) < 2 {
		return cp
	}
	var out []Vector2
	stack := make([][]Vector2, 0, 32)
	stack = append(stack, cp)

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if bezierFlatEnough(cur) {
			out = append(out, cur[0])
			continue
		}
		// Push right before left so points come out in path order.
		l, r := bezierSubdivide(cur)
		stack = append(stack, r)
		stack = append(stack, l)
	}
	out = append(out, cp[len(cp)-1])
	return out
}

func bezierFlatEnough(cp []Vector2) bool {
	for i := 1; i < len(cp)-1; i++ {
		dx := cp[i-1].X - 2*cp[i].X + cp[i+1].X
		dy := cp[i-1].Y - 2*cp[i].Y + cp[i+1].Y
		if dx*dx+dy*dy > bezierTolSq {
			return false
		}
	}
	return true
}

// bezierSubdivide halves a bezier at t=0.5 via the de Casteljau triangle.
func bezierSubdivide(cp []Vector2) (left, right []Vector2) {
	n := len(cp)
	buf := make([]Vector2, n*(n+1)/2)
	copy(buf, cp)

	rowStart := 0
	nextRowStart := n
	for r := 1; r < n; r++ {
		for i := 0; i < n-r; i++ {
			buf[nextRowStart+i] = buf[rowStart+i].Midpoint(buf[rowStart+i+1])
		}
		rowStart = nextRowStart
		nextRowStart += n - r
	}

	// Left half: first element of each row.
	left = make([]Vector2, n)
	rowStart = 0
	for r := 0; r < n; r++ {
		left[r] = buf[rowStart]
		rowStart += n - r
	}

	// Right half: last element of each row, reversed (midpoint to end).
	right = make([]Vector2, n)
	rowStart = 0
	rowEnd := n - 1
	for r := 0; r < n; r++ {
		right[n-1-r] = buf[rowStart+rowEnd]
		rowStart += n - r
		rowEnd--
	}
	return left, right
}

// approximateCatmull samples a uniform Catmull-Rom chain through the anchors,
// duplicating the first and last knot to define the end tangents.
func approximateCatmull(pts []Vector2) []Vector2 {
	n := len(pts)
	if n < 2 {
		return pts
	}
	out := make([]Vector2, 0, (n-1)*catmullDetail+1)
	out = append(out, pts[0])
	for i := 0; i < n-1; i++ {
		p0 := pts[max(i-1, 0)]
		p1 := pts[i]
		p2 := pts[i+1]
		p3 := pts[min(i+2, n-1)]
		for s := 1; s <= catmullDetail; s++ {
			t := float64(s) / catmullDetail
			out = append(out, catmullPoint(p0, p1, p2, p3, t))
		}
	}
	return out
}

func catmullPoint(p0, p1, p2, p3 Vector2, t float64) Vector2 {
	t2 := t * t
	t3 := t2 * t
	return Vector2{
		X: 0.5 * ((2 * p1.X) + (-p0.X+p2.X)*t + (2*p0.X-5*p1.X+4*p2.X-p3.X)*t2 + (-p0.X+3*p1.X-3*p2.X+p3.X)*t3),
		Y: 0.5 * ((2 * p1.Y) + (-p0.Y+p2.Y)*t + (2*p0.Y-5*p1.Y+4*p2.Y-p3.Y)*t2 + (-p0.Y+3*p1.Y-3*p2.Y+p3.Y)*t3),
	}
}

// approximateArc traces the arc of the circumcircle of p1,p2,p3 from p1 to
// p3, passing through p2. The sign of the triangle's area picks the sweep
// direction; the step angle comes from the sagitta tolerance.
func approximateArc(p1, p2, p3 Vector2) []Vector2 {
	center, ok := circumcenter(p1, p2, p3)
	if !ok {
		return []Vector2{p1, p3}
	}
	r := center.Distance(p1)

	a1 := math.Atan2(p1.Y-center.Y, p1.X-center.X)
	a3 := math.Atan2(p3.Y-center.Y, p3.X-center.X)

	// Counter-clockwise when the triangle's signed area is positive.
	dir := 1.0
	if p2.Sub(p1).Cross(p3.Sub(p2)) < 0 {
		dir = -1.0
	}
	delta := sweepAngle(a1, a3, dir)

	step := 2 * math.Acos(clamp(1-arcTolerance/r, -1, 1))
	if step <= 0 || math.IsNaN(step) || step > math.Pi {
		step = math.Pi
	}
	steps := int(math.Ceil(math.Abs(delta) / step))
	if steps < 2 {
		steps = 2
	}
	step = math.Abs(delta) / float64(steps) * dir

	out := make([]Vector2, 0, steps+1)
	out = append(out, p1)
	for i := 1; i < steps; i++ {
		a := a1 + float64(i)*step
		out = append(out, Vector2{X: center.X + math.Cos(a)*r, Y: center.Y + math.Sin(a)*r})
	}
	out = append(out, p3)
	return out
}

// sweepAngle returns the angle traveled from aStart to aEnd going in the
// given direction, in (-2pi, 2pi].
func sweepAngle(aStart, aEnd, dir float64) float64 {
	d := aEnd - aStart
	for d <= -math.Pi {
		d += 2 * math.Pi
	}
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	if dir < 0 && d > 0 {
		d -= 2 * math.Pi
	} else if dir > 0 && d < 0 {
		d += 2 * math.Pi
	}
	return d
}
