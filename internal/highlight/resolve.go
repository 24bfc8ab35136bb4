package highlight

import (
	"dropboard/internal/board"
	"dropboard/internal/geom"
)

// Candidate is a discovered zone mapped onto the board.
type Candidate struct {
	Location board.Location
	Bounds   geom.Rect
}

// Resolve picks the hover target for a dragged element with the given bounds.
//
// Item candidates always win over list and slot candidates, however much
// larger the latter's overlap is. Within the chosen pool the candidate with
// the largest intersection area wins; the first of several equal maxima is
// kept.
func Resolve(zones []Candidate, dragged geom.Rect) (board.Location, bool) {
	var items, others []Candidate
	for _, z := range zones {
		if z.Location.IsItem() {
			items = append(items, z)
		} else {
			others = append(others, z)
		}
	}
	pool := items
	if len(pool) == 0 {
		pool = others
	}
	return biggestIntersection(pool, dragged)
}

func biggestIntersection(pool []Candidate, dragged geom.Rect) (board.Location, bool) {
	if len(pool) == 0 {
		return board.Location{}, false
	}
	best := 0
	bestArea := pool[0].Bounds.Intersection(dragged).Area()
	for i := 1; i < len(pool); i++ {
		if a := pool[i].Bounds.Intersection(dragged).Area(); a > bestArea {
			best, bestArea = i, a
		}
	}
	return pool[best].Location, true
}
