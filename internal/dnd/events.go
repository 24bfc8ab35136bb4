package dnd

import (
	"time"

	"dropboard/internal/board"
	"dropboard/internal/geom"
	"dropboard/internal/zone"
)

// Event is one input to the Controller. Events are processed one at a time,
// each to completion.
type Event interface {
	isEvent()
}

// DragItem is a pointer sample while an item is dragged. Bounds is where the
// dragged item is drawn now.
type DragItem struct {
	Location board.Location
	Point    geom.Point
	Bounds   geom.Rect
}

// DropItem releases a dragged item.
type DropItem struct {
	Location board.Location
	Point    geom.Point
	Bounds   geom.Rect
}

// ItemDropCanceled aborts an item drag without moving anything.
type ItemDropCanceled struct{}

// DragList is a pointer sample while a whole list is dragged.
type DragList struct {
	Location board.Location
	Point    geom.Point
	Bounds   geom.Rect
}

// DropList releases a dragged list.
type DropList struct {
	Location board.Location
	Point    geom.Point
	Bounds   geom.Rect
}

// ListDropCanceled aborts a list drag.
type ListDropCanceled struct{}

// ZonesFound delivers the result of a discovery query issued earlier.
type ZonesFound struct {
	Result zone.Result
}

// ClickItem is a click on an item. Two clicks on the same item within the
// controller's double-click window start editing it.
type ClickItem struct {
	Location board.Location
	At       time.Time
}

// UpdateItem replaces the content of the item being edited.
type UpdateItem struct {
	Location board.Location
	Content  string
}

// StopEditing leaves edit mode.
type StopEditing struct{}

// UpdateAdder changes the draft text of a list's adder.
type UpdateAdder struct {
	Slot int
	Text string
}

// WriteAdder commits a list's adder draft as a new item.
type WriteAdder struct {
	Slot int
}

func (DragItem) isEvent()         {}
func (DropItem) isEvent()         {}
func (ItemDropCanceled) isEvent() {}
func (DragList) isEvent()         {}
func (DropList) isEvent()         {}
func (ListDropCanceled) isEvent() {}
func (ZonesFound) isEvent()       {}
func (ClickItem) isEvent()        {}
func (UpdateItem) isEvent()       {}
func (StopEditing) isEvent()      {}
func (UpdateAdder) isEvent()      {}
func (WriteAdder) isEvent()       {}
