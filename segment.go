package citygrow

// RoadType selects the template a road segment is built from.
type RoadType int

const (
	// Highway segments are long arterials that branch into streets.
	Highway RoadType = iota
	// Street segments are local roads gated by population density.
	Street
)

// String returns the road type name.
func (t RoadType) String() string {
	switch t {
	case Highway:
		return "highway"
	case Street:
		return "street"
	default:
		return "unknown"
	}
}

// Segment is a directed road piece from A to B, one edge of the road
// graph. Fields are mutated during validation: snapping and splitting
// shorten or redirect a segment after creation.
type Segment struct {
	// A and B are the segment endpoints. The segment grows from A
	// toward B; B is the growth front.
	A, B Point

	// Type selects the template the segment was built from.
	Type RoadType

	// Width and Elevation are rendering metadata, opaque to the
	// growth algorithm.
	Width     float64
	Elevation float64

	// Priority orders the worklist; lower values are popped first.
	Priority int

	// Split is set once the segment has been shortened or redirected
	// by the validator. A split segment no longer proposes successors
	// but stays part of the graph.
	Split bool

	// Forward holds the segments adjacent at B, Backward those
	// adjacent at A. Adjacency is always symmetric: if t appears in
	// one of s's lists, s appears in t's list at the shared endpoint.
	Forward  []*Segment
	Backward []*Segment
}

// Dir returns the segment's unit direction from A to B.
func (s *Segment) Dir() Point {
	return s.B.Sub(s.A).Normalize()
}

// Length returns the segment's current length.
func (s *Segment) Length() float64 {
	return s.B.Sub(s.A).Length()
}

// Bounds returns the axis-aligned bounding rectangle of the segment.
func (s *Segment) Bounds() Rect {
	return NewRect(s.A, s.B)
}

// LinksAt returns the adjacency list at whichever endpoint coincides
// with p, or nil if p matches neither endpoint.
func (s *Segment) LinksAt(p Point) []*Segment {
	switch {
	case samePoint(p, s.B):
		return s.Forward
	case samePoint(p, s.A):
		return s.Backward
	default:
		return nil
	}
}

// addLinkAt appends t to the adjacency list at s's endpoint p.
// Duplicates are suppressed.
func (s *Segment) addLinkAt(p Point, t *Segment) {
	list := &s.Forward
	if !samePoint(p, s.B) {
		list = &s.Backward
	}
	for _, l := range *list {
		if l == t {
			return
		}
	}
	*list = append(*list, t)
}

// removeLink removes t from both of s's adjacency lists.
func (s *Segment) removeLink(t *Segment) {
	s.Forward = removeSeg(s.Forward, t)
	s.Backward = removeSeg(s.Backward, t)
}

// detach removes s from every neighbor's adjacency lists and clears its
// own. Called when a candidate is rejected so no dangling references
// survive.
func (s *Segment) detach() {
	for _, t := range s.Forward {
		t.removeLink(s)
	}
	for _, t := range s.Backward {
		t.removeLink(s)
	}
	s.Forward = nil
	s.Backward = nil
}

// replaceLink swaps every occurrence of old for new in s's adjacency
// lists. Used when a neighbor is split and its far portion takes over
// the links at the far endpoint.
func (s *Segment) replaceLink(old, new *Segment) {
	for i, l := range s.Forward {
		if l == old {
			s.Forward[i] = new
		}
	}
	for i, l := range s.Backward {
		if l == old {
			s.Backward[i] = new
		}
	}
}

func removeSeg(list []*Segment, t *Segment) []*Segment {
	for i, l := range list {
		if l == t {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// linkAt records symmetric adjacency between s and t at the shared
// point p.
func linkAt(s, t *Segment, p Point) {
	s.addLinkAt(p, t)
	t.addLinkAt(p, s)
}
