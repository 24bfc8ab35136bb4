package layout

import (
	"testing"

	"dropboard/internal/board"
	"dropboard/internal/geom"
	"dropboard/internal/node"
	"dropboard/internal/zone"
)

func newBoard(items int) *board.Board {
	b := board.New(node.NewAllocator())
	contents := make([]string, items)
	for i := range contents {
		contents[i] = "item"
	}
	b.AddSlot("Todo", contents...)
	b.AddSlot("Doing")
	b.AddSlot("Done", "one")
	return b
}

func TestCompute_Columns(t *testing.T) {
	b := newBoard(2)
	lay := Compute(b, 90, 30, nil)
	if len(lay.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(lay.Columns))
	}
	c := lay.Columns[1]
	if c.Slot != (geom.Rect{X: 30, Y: 1, Width: 30, Height: 28}) {
		t.Fatalf("slot rect = %+v", c.Slot)
	}
	if c.List != (geom.Rect{X: 31, Y: 2, Width: 28, Height: 26}) {
		t.Fatalf("list rect = %+v", c.List)
	}
	if c.Viewport.Y != c.Title.Y+1 || c.Adder.Y != c.Viewport.Bottom() {
		t.Fatalf("title/viewport/adder not stacked: %+v %+v %+v", c.Title, c.Viewport, c.Adder)
	}
	if got := len(lay.Columns[0].Items); got != 2 {
		t.Fatalf("expected 2 item cards, got %d", got)
	}
}

func TestCompute_NarrowTerminalKeepsMinimumWidth(t *testing.T) {
	lay := Compute(newBoard(0), 20, 10, nil)
	if w := lay.Columns[0].Slot.Width; w != MinColumnWidth {
		t.Fatalf("column width = %v, want %d", w, MinColumnWidth)
	}
}

func TestCompute_ScrollClampAndCorrection(t *testing.T) {
	b := newBoard(20)
	lay := Compute(b, 90, 20, []int{1000, 5})
	c := lay.Columns[0]
	if c.MaxScroll <= 0 || c.Scroll != c.MaxScroll {
		t.Fatalf("scroll = %d, max = %d", c.Scroll, c.MaxScroll)
	}
	if lay.Columns[1].Scroll != 0 {
		t.Fatalf("empty column must not scroll, got %d", lay.Columns[1].Scroll)
	}

	// Discovery must report the scrolled card positions the renderer uses.
	l, _ := b.List(board.ListAt(0))
	for j, it := range l.Items {
		got, ok := zone.Find(lay.Root, it.ID())
		if !ok {
			t.Fatalf("item %d not in widget tree", j)
		}
		if got != c.Items[j] {
			t.Fatalf("item %d: discovered %+v, drawn at %+v", j, got, c.Items[j])
		}
		if want := c.Viewport.Y + float32(ItemHeight*j-c.Scroll); got.Y != want {
			t.Fatalf("item %d: y = %v, want %v", j, got.Y, want)
		}
	}
}

func TestCompute_TreeCarriesIdentities(t *testing.T) {
	b := newBoard(1)
	lay := Compute(b, 90, 30, nil)
	zones := zone.Discover(lay.Root, func(geom.Rect) bool { return true }, nil, 0)
	// 3 slots, 3 lists, 3 adders, 2 items.
	if len(zones) != 11 {
		t.Fatalf("expected 11 zones, got %d", len(zones))
	}
	s2, _ := b.Slot(2)
	got, ok := zone.Find(lay.Root, s2.ID())
	if !ok || got != lay.Columns[2].Slot {
		t.Fatalf("slot 2 bounds = %+v, %v", got, ok)
	}
}

func TestColumnAtAndViewport(t *testing.T) {
	lay := Compute(newBoard(1), 90, 30, nil)
	if i, ok := lay.ColumnAt(geom.Point{X: 65, Y: 10}); !ok || i != 2 {
		t.Fatalf("ColumnAt = %d, %v", i, ok)
	}
	if _, ok := lay.ColumnAt(geom.Point{X: 65, Y: 0}); ok {
		t.Fatalf("header row must not belong to a column")
	}
	title := lay.Columns[0].Title
	if lay.InViewport(0, geom.Point{X: title.X, Y: title.Y}) {
		t.Fatalf("title row is not part of the viewport")
	}
}

func TestCompute_DiscoveryIgnoresCardsOutsideViewport(t *testing.T) {
	b := newBoard(10)
	lay := Compute(b, 90, 30, nil)
	c := lay.Columns[0]
	l, _ := b.List(board.ListAt(0))

	below := geom.Rect{X: c.Viewport.X, Y: c.Viewport.Bottom() + 1, Width: c.Viewport.Width, Height: ItemHeight}
	for _, z := range zone.Discover(lay.Root, geom.Intersecting(below), nil, 0) {
		if z.ID.Kind == node.KindItem {
			t.Fatalf("undrawn card %v discovered at %+v", z.ID, z.Bounds)
		}
	}

	// Card 7 straddles the bottom edge; only its visible row is a zone.
	zones := zone.Discover(lay.Root, geom.Intersecting(c.Viewport), zone.AllowOf(l.Items[7].ID(), l.Items[8].ID()), 0)
	if len(zones) != 1 || zones[0].ID != l.Items[7].ID() {
		t.Fatalf("zones = %+v", zones)
	}
	if want := (geom.Rect{X: 2, Y: 25, Width: 26, Height: 1}); zones[0].Bounds != want {
		t.Fatalf("card 7 bounds = %+v, want %+v", zones[0].Bounds, want)
	}

	// Scrolled to the end, the first cards are gone instead.
	lay = Compute(b, 90, 30, []int{1000})
	for _, z := range zone.Discover(lay.Root, geom.Intersecting(lay.Columns[0].List), zone.AllowOf(l.Items[0].ID()), 0) {
		t.Fatalf("scrolled-out card discovered at %+v", z.Bounds)
	}
}
