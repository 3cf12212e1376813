package citygrow

import "math"

// IntersectionKind classifies how two line segments meet.
type IntersectionKind int

const (
	// IntersectNone means the segments do not touch.
	IntersectNone IntersectionKind = iota
	// IntersectPoint means the segments meet in exactly one point.
	IntersectPoint
	// IntersectOverlap means the segments are collinear and share more
	// than a single point.
	IntersectOverlap
)

// Intersection is the result of classifying two segments.
// P and T are only meaningful when Kind is IntersectPoint: P is the
// intersection point and T its parameter along the first segment
// (0 at the first segment's start, 1 at its end).
type Intersection struct {
	Kind IntersectionKind
	P    Point
	T    float64
}

// SegmentIntersection classifies the intersection of segment a0-a1 with
// segment b0-b1.
func SegmentIntersection(a0, a1, b0, b1 Point) Intersection {
	da := a1.Sub(a0)
	db := b1.Sub(b0)
	d := da.Cross(db)
	w := b0.Sub(a0)

	if math.Abs(d) < epsilon {
		// Parallel. Only collinear segments can touch.
		if math.Abs(w.Cross(da)) >= epsilon*math.Max(1, da.Length()) {
			return Intersection{Kind: IntersectNone}
		}
		return collinearIntersection(a0, a1, b0, b1, da)
	}

	t := w.Cross(db) / d
	u := w.Cross(da) / d
	if t < -epsilon || t > 1+epsilon || u < -epsilon || u > 1+epsilon {
		return Intersection{Kind: IntersectNone}
	}
	t = math.Max(0, math.Min(1, t))
	return Intersection{Kind: IntersectPoint, P: a0.Add(da.Mul(t)), T: t}
}

// collinearIntersection resolves two collinear segments by projecting
// b0-b1 onto a's direction and intersecting the parameter intervals.
func collinearIntersection(a0, a1, b0, b1, da Point) Intersection {
	lenSq := da.LengthSq()
	if lenSq < epsilon*epsilon {
		// Degenerate first segment. Treat as a point probe.
		if pointOnSegment(a0, b0, b1) {
			return Intersection{Kind: IntersectPoint, P: a0, T: 0}
		}
		return Intersection{Kind: IntersectNone}
	}
	t0 := b0.Sub(a0).Dot(da) / lenSq
	t1 := b1.Sub(a0).Dot(da) / lenSq
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	lo := math.Max(0, t0)
	hi := math.Min(1, t1)
	switch {
	case hi < lo-epsilon:
		return Intersection{Kind: IntersectNone}
	case hi-lo < epsilon:
		t := (lo + hi) / 2
		return Intersection{Kind: IntersectPoint, P: a0.Add(da.Mul(t)), T: t}
	default:
		return Intersection{Kind: IntersectOverlap}
	}
}

// pointOnSegment reports whether p lies on segment a-b within epsilon.
func pointOnSegment(p, a, b Point) bool {
	d := b.Sub(a)
	lenSq := d.LengthSq()
	if lenSq < epsilon*epsilon {
		return samePoint(p, a)
	}
	t := p.Sub(a).Dot(d) / lenSq
	if t < 0 || t > 1 {
		return false
	}
	return samePoint(p, a.Add(d.Mul(t)))
}

// MinAngleDeg returns the minimum angle between two directions in
// degrees, ignoring orientation: the smaller of the two supplementary
// angles, always in [0, 90]. Used to reject near-parallel intersections.
func MinAngleDeg(d1, d2 Point) float64 {
	l := d1.Length() * d2.Length()
	if l == 0 {
		return 0
	}
	cos := math.Abs(d1.Dot(d2)) / l
	if cos > 1 {
		cos = 1
	}
	return math.Acos(cos) * 180 / math.Pi
}

// ProjectToLine projects p onto the infinite line through a and b.
// It returns the perpendicular distance from p to the line, the foot of
// the perpendicular, and the foot's signed distance along the line from
// a. The foot lies within the segment a-b when 0 <= along <= |b-a|.
func ProjectToLine(p, a, b Point) (dist float64, foot Point, along float64) {
	d := b.Sub(a)
	length := d.Length()
	if length < epsilon {
		return p.Distance(a), a, 0
	}
	unit := d.Mul(1 / length)
	along = p.Sub(a).Dot(unit)
	foot = a.Add(unit.Mul(along))
	return p.Distance(foot), foot, along
}
