// Package highlight keeps drag and drop highlight flags consistent while the
// pointer moves.
//
// State transitions are pure: each returns a new State and the caller stores
// it. Diff compares two states and yields the side effect to apply to the
// board.
package highlight

import (
	"dropboard/internal/board"
	"dropboard/internal/geom"
)

// Drag is the element being dragged and its current bounds.
type Drag struct {
	Location board.Location
	Bounds   geom.Rect
}

// State is the highlight state of one drag kind. The zero value is the
// "dropped" state: nothing dragged, nothing hovered.
type State struct {
	Dragging *Drag
	Hovered  *board.Location
}

// Active reports whether a drag is in progress.
func (s State) Active() bool { return s.Dragging != nil }

// Dragged records a drag sample. The hover target is kept.
func Dragged(s State, loc board.Location, bounds geom.Rect) State {
	s.Dragging = &Drag{Location: loc, Bounds: bounds}
	return s
}

// ZonesFound resolves the hover target from the zones discovered for the
// current drag. Without an active drag the hover target is left alone.
func ZonesFound(s State, zones []Candidate) State {
	if len(zones) == 0 {
		s.Hovered = nil
		return s
	}
	if s.Dragging == nil {
		return s
	}
	s.Hovered = nil
	if loc, ok := Resolve(zones, s.Dragging.Bounds); ok {
		s.Hovered = &loc
	}
	return s
}

// Dropped is the state after a drop or a cancel.
func Dropped() State {
	return State{}
}

// ShouldFlagDragSource reports whether the element at loc should have its
// own highlight asserted on this update: on the first event of a drag, or
// while an existing drag of loc continues.
func ShouldFlagDragSource(old, next State, loc board.Location) bool {
	if old.Dragging != nil {
		return old.Dragging.Location == loc
	}
	return next.Dragging != nil
}

// Update is the side effect a hover change requires.
type Update uint8

const (
	None Update = iota
	Highlight
	RemoveHighlight
	Replace
)

func (u Update) String() string {
	switch u {
	case Highlight:
		return "highlight"
	case RemoveHighlight:
		return "remove-highlight"
	case Replace:
		return "replace"
	default:
		return "none"
	}
}

// Diff compares the hover targets of two states.
func Diff(old, next State) Update {
	switch {
	case old.Hovered == nil && next.Hovered == nil:
		return None
	case old.Hovered == nil:
		return Highlight
	case next.Hovered == nil:
		return RemoveHighlight
	case *old.Hovered == *next.Hovered:
		return None
	default:
		return Replace
	}
}

// Target receives highlight side effects. Stale locations must be ignored.
type Target interface {
	SetHighlight(loc board.Location, on bool) bool
}

// Apply performs u against t.
func (u Update) Apply(t Target, old, next State) {
	switch u {
	case Highlight:
		SetHovered(t, next, true)
	case RemoveHighlight:
		SetHovered(t, old, false)
	case Replace:
		SetHovered(t, old, false)
		SetHovered(t, next, true)
	}
}

// SetHovered sets the flag of s's hover target, if any.
func SetHovered(t Target, s State, on bool) {
	if s.Hovered != nil {
		t.SetHighlight(*s.Hovered, on)
	}
}
