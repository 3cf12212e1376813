package citygrow

// Quadtree is a region-partitioning index over road segments.
// Leaf nodes hold entries until they exceed their capacity, then
// subdivide into four children; entries straddling a child boundary are
// duplicated into every overlapping child, so queries never miss a
// segment at the cost of some insertion redundancy. Retrieve suppresses
// the duplicates.
//
// Subdivision stops at the configured maximum depth; beyond it a leaf
// accumulates entries without splitting, which bounds the tree under
// pathological clustering.
//
// Segments are never removed. The index stays queryable while Insert
// and Retrieve calls alternate (single goroutine).
type Quadtree struct {
	root     *quadNode
	capacity int
	maxDepth int
}

type quadNode struct {
	bounds  Rect
	depth   int
	entries []*Segment
	child   [4]*quadNode
}

// NewQuadtree creates an index covering bounds. capacity is the number
// of entries a leaf holds before subdividing; maxDepth caps subdivision.
func NewQuadtree(bounds Rect, capacity, maxDepth int) *Quadtree {
	return &Quadtree{
		root:     &quadNode{bounds: bounds},
		capacity: capacity,
		maxDepth: maxDepth,
	}
}

// Insert places the segment in every leaf region its bounds overlap.
func (q *Quadtree) Insert(s *Segment) {
	q.root.insert(s, s.Bounds(), q.capacity, q.maxDepth)
}

// Retrieve returns all segments whose bounds overlap r, without
// duplicates. Order is not specified.
func (q *Quadtree) Retrieve(r Rect) []*Segment {
	var out []*Segment
	seen := make(map[*Segment]struct{})
	q.root.retrieve(r, seen, &out)
	return out
}

func (n *quadNode) insert(s *Segment, b Rect, capacity, maxDepth int) {
	if n.child[0] != nil {
		for _, c := range n.child {
			if c.bounds.Overlaps(b) {
				c.insert(s, b, capacity, maxDepth)
			}
		}
		return
	}

	n.entries = append(n.entries, s)
	if len(n.entries) <= capacity || n.depth >= maxDepth {
		return
	}

	n.subdivide()
	entries := n.entries
	n.entries = nil
	for _, e := range entries {
		eb := e.Bounds()
		for _, c := range n.child {
			if c.bounds.Overlaps(eb) {
				c.insert(e, eb, capacity, maxDepth)
			}
		}
	}
}

func (n *quadNode) subdivide() {
	mid := n.bounds.Center()
	n.child[0] = &quadNode{bounds: NewRect(n.bounds.Min, mid), depth: n.depth + 1}
	n.child[1] = &quadNode{bounds: NewRect(Pt(mid.X, n.bounds.Min.Y), Pt(n.bounds.Max.X, mid.Y)), depth: n.depth + 1}
	n.child[2] = &quadNode{bounds: NewRect(Pt(n.bounds.Min.X, mid.Y), Pt(mid.X, n.bounds.Max.Y)), depth: n.depth + 1}
	n.child[3] = &quadNode{bounds: NewRect(mid, n.bounds.Max), depth: n.depth + 1}
}

func (n *quadNode) retrieve(r Rect, seen map[*Segment]struct{}, out *[]*Segment) {
	if !n.bounds.Overlaps(r) {
		return
	}
	for _, e := range n.entries {
		if _, ok := seen[e]; ok {
			continue
		}
		if e.Bounds().Overlaps(r) {
			seen[e] = struct{}{}
			*out = append(*out, e)
		}
	}
	if n.child[0] != nil {
		for _, c := range n.child {
			c.retrieve(r, seen, out)
		}
	}
}
