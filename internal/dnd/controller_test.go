package dnd

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"

	"dropboard/internal/board"
	"dropboard/internal/geom"
	"dropboard/internal/node"
	"dropboard/internal/zone"
)

func rect(x, y, w, h float32) geom.Rect {
	return geom.Rect{X: x, Y: y, Width: w, Height: h}
}

// widgets lays the board out as 100-wide columns with 20-high items.
func widgets(b *board.Board) *zone.Element {
	root := zone.NewElement(node.ID{}, rect(0, 0, float32(100*b.Len()), 200))
	for i, s := range b.Slots() {
		x := float32(100 * i)
		list := zone.NewElement(s.List().ID(), rect(x, 0, 100, 200))
		for j, it := range s.List().Items {
			list.Push(zone.NewElement(it.ID(), rect(x, float32(10+20*j), 100, 20)))
		}
		root.Push(zone.NewElement(s.ID(), rect(x, 0, 100, 200), list))
	}
	return root
}

func itemBounds(slot, idx int) geom.Rect {
	return rect(float32(100*slot), float32(10+20*idx), 100, 20)
}

func newBoard() *board.Board {
	b := board.New(node.NewAllocator())
	b.AddSlot("Todo", "a", "b", "c")
	b.AddSlot("Doing", "x", "y")
	b.AddSlot("Done")
	return b
}

func listContents(b *board.Board, slot int) string {
	l, _ := b.List(board.ListAt(slot))
	parts := []string{}
	for _, it := range l.Items {
		parts = append(parts, it.Content)
	}
	return strings.Join(parts, ",")
}

func assertNoHighlights(t *testing.T, b *board.Board) {
	t.Helper()
	for i, s := range b.Slots() {
		if s.Highlight || s.List().Highlight {
			t.Fatalf("slot %d or its list still highlighted", i)
		}
		for j, it := range s.List().Items {
			if it.Highlight {
				t.Fatalf("item %d/%d (%s) still highlighted", i, j, it.Content)
			}
		}
	}
}

func TestDragItemOntoItemInOtherList(t *testing.T) {
	b := newBoard()
	c := New(b)
	root := widgets(b)
	src := board.ItemAt(0, 0)
	it, _ := b.Item(src)
	xID := it.ID()

	// Hover over "y" (slot 1, index 1).
	bounds := itemBounds(1, 1).Add(geom.Vector{X: 2, Y: 2})
	c.Run(DragItem{Location: src, Bounds: bounds}, root)

	if !it.Highlight {
		t.Fatalf("drag source must be flagged while dragged")
	}
	y, _ := b.Item(board.ItemAt(1, 1))
	if !y.Highlight {
		t.Fatalf("hover target must be flagged")
	}
	if h := c.Items().Hovered; h == nil || *h != board.ItemAt(1, 1) {
		t.Fatalf("hovered = %v", h)
	}

	r := c.Handle(DropItem{Location: src, Bounds: bounds})
	if !r.Changed {
		t.Fatalf("drop reported no change")
	}
	if got := listContents(b, 0); got != "b,c" {
		t.Fatalf("source list = %s", got)
	}
	if got := listContents(b, 1); got != "x,a,y" {
		t.Fatalf("target list = %s", got)
	}
	if loc, ok := b.Find(xID); !ok || loc != board.ItemAt(1, 1) {
		t.Fatalf("dropped item resolves to %v, %v", loc, ok)
	}
	assertNoHighlights(t, b)
	if c.Dragging() {
		t.Fatalf("controller still dragging after drop")
	}
}

func TestDragItemWithinList(t *testing.T) {
	b := newBoard()
	c := New(b)
	root := widgets(b)
	src := board.ItemAt(0, 2)
	c.Run(DragItem{Location: src, Bounds: itemBounds(0, 0)}, root)
	c.Handle(DropItem{Location: src})
	if got := listContents(b, 0); got != "c,a,b" {
		t.Fatalf("list = %s", got)
	}
	assertNoHighlights(t, b)
}

func TestDragItemOntoEmptyList(t *testing.T) {
	b := newBoard()
	c := New(b)
	root := widgets(b)
	src := board.ItemAt(1, 0)
	c.Run(DragItem{Location: src, Bounds: rect(210, 100, 50, 20)}, root)
	if h := c.Items().Hovered; h == nil || *h != board.ListAt(2) {
		t.Fatalf("hovered = %v, want list 2", h)
	}
	l2, _ := b.List(board.ListAt(2))
	if !l2.Highlight {
		t.Fatalf("target list must be highlighted")
	}
	c.Handle(DropItem{Location: src})
	if listContents(b, 1) != "y" || listContents(b, 2) != "x" {
		t.Fatalf("unexpected lists: %q %q", listContents(b, 1), listContents(b, 2))
	}
	assertNoHighlights(t, b)
}

func TestDragItemOntoOwnListIsNoop(t *testing.T) {
	b := newBoard()
	c := New(b)
	root := widgets(b)
	src := board.ItemAt(1, 0)
	// Below the last item of slot 1: only the list itself intersects.
	c.Run(DragItem{Location: src, Bounds: rect(110, 150, 50, 20)}, root)
	if h := c.Items().Hovered; h == nil || *h != board.ListAt(1) {
		t.Fatalf("hovered = %v, want own list", h)
	}
	if r := c.Handle(DropItem{Location: src}); r.Changed {
		t.Fatalf("dropping onto own list must not change the board")
	}
	if got := listContents(b, 1); got != "x,y" {
		t.Fatalf("list = %s", got)
	}
	assertNoHighlights(t, b)
}

func TestDropWithoutTargetRemovesItem(t *testing.T) {
	b := newBoard()
	var buf bytes.Buffer
	c := New(b, WithLogger(log.New(&buf, "", 0)))
	root := widgets(b)
	src := board.ItemAt(0, 1)
	c.Run(DragItem{Location: src, Bounds: rect(1000, 1000, 10, 10)}, root)
	if c.Items().Hovered != nil {
		t.Fatalf("expected no hover target off-board")
	}
	r := c.Handle(DropItem{Location: src})
	if !r.Changed || r.Change == nil || r.Change.Type != ItemRemoved {
		t.Fatalf("expected removal to change the board, got %+v", r)
	}
	if got := listContents(b, 0); got != "a,c" {
		t.Fatalf("list = %s", got)
	}
	if !strings.Contains(buf.String(), "removed") {
		t.Fatalf("expected removal to be logged, got %q", buf.String())
	}
	assertNoHighlights(t, b)
}

func TestHoverMovesBetweenTargets(t *testing.T) {
	b := newBoard()
	c := New(b)
	root := widgets(b)
	src := board.ItemAt(0, 0)

	c.Run(DragItem{Location: src, Bounds: itemBounds(1, 0)}, root)
	x, _ := b.Item(board.ItemAt(1, 0))
	y, _ := b.Item(board.ItemAt(1, 1))
	if !x.Highlight || y.Highlight {
		t.Fatalf("expected x highlighted only")
	}

	c.Run(DragItem{Location: src, Bounds: itemBounds(1, 1)}, root)
	if x.Highlight || !y.Highlight {
		t.Fatalf("expected highlight to move from x to y")
	}

	c.Run(DragItem{Location: src, Bounds: rect(1000, 0, 1, 1)}, root)
	if x.Highlight || y.Highlight {
		t.Fatalf("expected highlight removed when leaving all targets")
	}
	a, _ := b.Item(src)
	if !a.Highlight {
		t.Fatalf("drag source lost its flag mid-drag")
	}
}

func TestCancelClearsEverything(t *testing.T) {
	b := newBoard()
	c := New(b)
	root := widgets(b)
	src := board.ItemAt(0, 0)
	c.Run(DragItem{Location: src, Bounds: itemBounds(1, 0)}, root)
	c.Handle(ItemDropCanceled{})
	assertNoHighlights(t, b)
	if listContents(b, 0) != "a,b,c" || listContents(b, 1) != "x,y" {
		t.Fatalf("cancel must not move items")
	}
}

func TestStaleZonesAreDiscarded(t *testing.T) {
	b := newBoard()
	c := New(b)
	root := widgets(b)
	src := board.ItemAt(0, 0)

	first := c.Handle(DragItem{Location: src, Bounds: itemBounds(1, 0)})
	second := c.Handle(DragItem{Location: src, Bounds: itemBounds(1, 1)})

	// The older result arrives late and must be ignored.
	c.Handle(ZonesFound{Result: first.Query.Run(root)})
	if c.Items().Hovered != nil {
		t.Fatalf("stale result applied: %v", c.Items().Hovered)
	}
	c.Handle(ZonesFound{Result: second.Query.Run(root)})
	if h := c.Items().Hovered; h == nil || *h != board.ItemAt(1, 1) {
		t.Fatalf("hovered = %v", h)
	}

	// A result arriving after cancel must not re-flag anything.
	third := c.Handle(DragItem{Location: src, Bounds: itemBounds(1, 0)})
	c.Handle(ItemDropCanceled{})
	c.Handle(ZonesFound{Result: third.Query.Run(root)})
	assertNoHighlights(t, b)
}

func TestDragListSwapsSlots(t *testing.T) {
	b := newBoard()
	c := New(b)
	root := widgets(b)
	s0, _ := b.Slot(0)
	s1, _ := b.Slot(1)
	slot0, slot1 := s0.ID(), s1.ID()
	list0, list1 := s0.List(), s1.List()
	itemIDs := []node.ID{}
	for _, l := range []*board.List{list0, list1} {
		for _, it := range l.Items {
			itemIDs = append(itemIDs, it.ID())
		}
	}

	src := board.ListAt(0)
	c.Run(DragList{Location: src, Bounds: rect(60, 0, 100, 200)}, root)
	if !list0.Highlight {
		t.Fatalf("dragged list must be flagged")
	}
	if h := c.Lists().Hovered; h == nil || *h != board.SlotAt(1) {
		t.Fatalf("hovered = %v, want slot 1", h)
	}
	if !s1.Highlight {
		t.Fatalf("hovered slot must be flagged")
	}

	if r := c.Handle(DropList{Location: src}); !r.Changed || r.Change.Type != ListsSwapped {
		t.Fatalf("expected swap to change the board, got %+v", r)
	}
	if s0.List() != list1 || s1.List() != list0 {
		t.Fatalf("lists not swapped")
	}
	if s0.ID() != slot0 || s1.ID() != slot1 {
		t.Fatalf("slot identities changed")
	}
	for _, id := range itemIDs {
		if _, ok := b.Find(id); !ok {
			t.Fatalf("item %v lost", id)
		}
	}
	assertNoHighlights(t, b)
}

func TestDragListOverOwnSlotOnly(t *testing.T) {
	b := newBoard()
	c := New(b)
	root := widgets(b)
	c.Run(DragList{Location: board.ListAt(2), Bounds: rect(210, 0, 80, 200)}, root)
	if c.Lists().Hovered != nil {
		t.Fatalf("own slot must not be a target")
	}
	if r := c.Handle(DropList{Location: board.ListAt(2)}); r.Changed {
		t.Fatalf("drop without target must not change the board")
	}
	c.Run(DragList{Location: board.ListAt(0), Bounds: rect(150, 0, 100, 200)}, root)
	c.Handle(ListDropCanceled{})
	assertNoHighlights(t, b)
}

func TestDoubleClickStartsEditing(t *testing.T) {
	b := newBoard()
	c := New(b)
	t0 := time.Unix(1000, 0)
	loc := board.ItemAt(0, 1)

	if r := c.Handle(ClickItem{Location: loc, At: t0}); r.Edit != nil {
		t.Fatalf("single click must not edit")
	}
	if r := c.Handle(ClickItem{Location: loc, At: t0.Add(800 * time.Millisecond)}); r.Edit != nil {
		t.Fatalf("slow second click must not edit")
	}
	r := c.Handle(ClickItem{Location: loc, At: t0.Add(1100 * time.Millisecond)})
	if r.Edit == nil || *r.Edit != loc {
		t.Fatalf("expected edit of %v, got %v", loc, r.Edit)
	}
	it, _ := b.Item(loc)
	if !it.Editing {
		t.Fatalf("item not in edit mode")
	}
	if r := c.Handle(UpdateItem{Location: loc, Content: "bee"}); !r.Changed || it.Content != "bee" {
		t.Fatalf("update not applied")
	}
	c.Handle(StopEditing{})
	if it.Editing {
		t.Fatalf("StopEditing left the item in edit mode")
	}
	if _, ok := c.Editing(); ok {
		t.Fatalf("controller still reports editing")
	}
}

func TestClickOnDifferentItemsDoesNotEdit(t *testing.T) {
	b := newBoard()
	c := New(b, WithDoubleClick(time.Second))
	t0 := time.Unix(0, 0)
	c.Handle(ClickItem{Location: board.ItemAt(0, 0), At: t0})
	if r := c.Handle(ClickItem{Location: board.ItemAt(0, 1), At: t0}); r.Edit != nil {
		t.Fatalf("clicks on different items must not edit")
	}
}

func TestAdder(t *testing.T) {
	b := newBoard()
	c := New(b)
	c.Handle(UpdateAdder{Slot: 2, Text: "deploy"})
	if r := c.Handle(WriteAdder{Slot: 2}); !r.Changed {
		t.Fatalf("expected write to change the board")
	}
	if got := listContents(b, 2); got != "deploy" {
		t.Fatalf("list = %s", got)
	}
	if r := c.Handle(WriteAdder{Slot: 2}); r.Changed {
		t.Fatalf("empty draft must not create an item")
	}
}
