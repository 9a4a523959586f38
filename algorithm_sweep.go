package geometry

import (
	"sort"

	"github.com/google/btree"
)

// sweepSegment is a polyline segment ordered left to right.
type sweepSegment struct {
	id          int
	left, right Coordinate
}

// Less orders segments from bottom to top along the sweep line. The order
// does not depend on the sweep position: the segment with the larger left
// endpoint is located against the line through the other one.
func (s *sweepSegment) Less(than btree.Item) bool {
	return compareSegments(s, than.(*sweepSegment)) < 0
}

func compareSegments(a, b *sweepSegment) int {
	if a == b {
		return 0
	}
	if lessPoint(a.left, b.left) {
		return -compareSegments(b, a)
	}
	d := orient2D(b.left, b.right, a.left)
	if d == 0 {
		d = orient2D(b.left, b.right, a.right)
	}
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	case a.id < b.id:
		return -1
	case a.id > b.id:
		return 1
	}
	return 0
}

func lessPoint(a, b Coordinate) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

type sweepEvent struct {
	at   Coordinate
	seg  *sweepSegment
	left bool
}

// IsSimpleCurve reports whether the polyline cs has no self intersection
// other than shared vertices of consecutive segments and, for a closed
// polyline, the shared start and end. Consecutive duplicate positions are
// ignored. The test is a Shamos-Hoey sweep and runs in O(n log n).
func IsSimpleCurve(cs []Coordinate) bool {
	pts := dedupe2D(cs)
	n := len(pts)
	if n < 3 {
		return true
	}
	closed := pts[0].Equal2D(pts[n-1])

	segments := make([]*sweepSegment, n-1)
	events := make([]sweepEvent, 0, 2*(n-1))
	for i := 0; i < n-1; i++ {
		s := &sweepSegment{id: i, left: pts[i], right: pts[i+1]}
		if lessPoint(s.right, s.left) {
			s.left, s.right = s.right, s.left
		}
		segments[i] = s
		events = append(events,
			sweepEvent{at: s.left, seg: s, left: true},
			sweepEvent{at: s.right, seg: s, left: false},
		)
	}
	sort.Slice(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.at.Equal2D(b.at) {
			return lessPoint(a.at, b.at)
		}
		if a.left != b.left {
			return a.left
		}
		return a.seg.id < b.seg.id
	})

	sweep := &sweeper{
		tree:     btree.New(8),
		pts:      pts,
		segments: len(segments),
		closed:   closed,
	}
	for _, ev := range events {
		if ev.left {
			sweep.tree.ReplaceOrInsert(ev.seg)
			above, below := sweep.neighbors(ev.seg)
			if sweep.conflict(ev.seg, above) || sweep.conflict(ev.seg, below) {
				return false
			}
			continue
		}
		above, below := sweep.neighbors(ev.seg)
		if sweep.conflict(above, below) {
			return false
		}
		sweep.tree.Delete(ev.seg)
	}
	return true
}

type sweeper struct {
	tree     *btree.BTree
	pts      []Coordinate
	segments int
	closed   bool
}

func (w *sweeper) neighbors(s *sweepSegment) (above, below *sweepSegment) {
	w.tree.AscendGreaterOrEqual(s, func(i btree.Item) bool {
		if o := i.(*sweepSegment); o != s {
			above = o
			return false
		}
		return true
	})
	w.tree.DescendLessOrEqual(s, func(i btree.Item) bool {
		if o := i.(*sweepSegment); o != s {
			below = o
			return false
		}
		return true
	})
	return above, below
}

// conflict reports whether a and b intersect in a way a simple curve does
// not allow.
func (w *sweeper) conflict(a, b *sweepSegment) bool {
	if a == nil || b == nil {
		return false
	}
	if !segmentsIntersect(a.left, a.right, b.left, b.right) {
		return false
	}
	shared, ok := w.sharedVertex(a.id, b.id)
	if !ok {
		return true
	}
	// consecutive segments may only meet at their common vertex, so they
	// conflict when they fold back onto each other
	v := w.pts[shared]
	p, q := w.otherEnd(a.id, shared), w.otherEnd(b.id, shared)
	if orient2D(v, p, q) != 0 {
		return false
	}
	sp, sq := p.Sub(v), q.Sub(v)
	return sp.X*sq.X+sp.Y*sq.Y > 0
}

// sharedVertex returns the index of the vertex joining two consecutive
// segments.
func (w *sweeper) sharedVertex(i, j int) (int, bool) {
	if i > j {
		i, j = j, i
	}
	if j-i == 1 {
		return j, true
	}
	if w.closed && i == 0 && j == w.segments-1 && w.segments > 2 {
		return 0, true
	}
	return 0, false
}

func (w *sweeper) otherEnd(id, vertex int) Coordinate {
	if vertex == id {
		return w.pts[id+1]
	}
	return w.pts[id]
}
