// Package layout places a board on a terminal grid and produces the widget
// tree zone discovery runs against. One cell is one unit.
//
// Each column is a slot; the slot is drawn as a one-cell ring around its
// list, and the list's body is a vertical scroll container of item cards.
package layout

import (
	"dropboard/internal/board"
	"dropboard/internal/geom"
	"dropboard/internal/node"
	"dropboard/internal/zone"
)

const (
	HeaderHeight   = 1
	FooterHeight   = 1
	ItemHeight     = 3
	MinColumnWidth = 14
)

// Column is the geometry of one slot, in screen space.
type Column struct {
	Slot     geom.Rect
	List     geom.Rect
	Inner    geom.Rect
	Title    geom.Rect
	Viewport geom.Rect
	Adder    geom.Rect
	// Items are the card rectangles after scrolling. Cards outside Viewport
	// are not drawn.
	Items []geom.Rect

	Scroll    int
	MaxScroll int
}

// Layout is a computed frame.
type Layout struct {
	Width, Height int
	Columns       []Column
	Root          *zone.Element
}

// Compute lays out b for a width x height terminal. scroll holds the
// requested scroll offset per slot; offsets are clamped.
func Compute(b *board.Board, width, height int, scroll []int) Layout {
	lay := Layout{Width: width, Height: height}
	n := b.Len()
	lay.Root = zone.NewElement(node.ID{}, rect(0, 0, width, height))
	if n == 0 {
		return lay
	}

	colW := width / n
	if colW < MinColumnWidth {
		colW = MinColumnWidth
	}
	bodyH := max(height-HeaderHeight-FooterHeight, 0)

	for i, s := range b.Slots() {
		x := i * colW
		c := Column{Slot: rect(x, HeaderHeight, colW, bodyH)}
		c.List = inset(c.Slot, 1)
		c.Inner = inset(c.List, 1)
		c.Title = rect(int(c.Inner.X), int(c.Inner.Y), int(c.Inner.Width), min(1, int(c.Inner.Height)))
		vpH := max(int(c.Inner.Height)-2, 0)
		c.Viewport = rect(int(c.Inner.X), int(c.Inner.Y)+1, int(c.Inner.Width), vpH)
		c.Adder = rect(int(c.Inner.X), int(c.Viewport.Bottom()), int(c.Inner.Width), min(1, max(int(c.Inner.Height)-1, 0)))

		l := s.List()
		c.MaxScroll = max(ItemHeight*l.Len()-vpH, 0)
		if i < len(scroll) {
			c.Scroll = min(max(scroll[i], 0), c.MaxScroll)
		}

		offset := geom.Vector{Y: float32(c.Scroll)}
		body := zone.NewElement(node.ID{}, c.Viewport).Scrolled(offset).Clipped()
		for j, it := range l.Items {
			card := rect(int(c.Viewport.X), int(c.Viewport.Y)+ItemHeight*j, int(c.Viewport.Width), ItemHeight)
			body.Push(zone.NewElement(it.ID(), card))
			c.Items = append(c.Items, card.Sub(offset))
		}

		list := zone.NewElement(l.ID(), c.List,
			zone.NewElement(node.ID{}, c.Title),
			body,
			zone.NewElement(l.Adder.ID(), c.Adder),
		)
		lay.Root.Push(zone.NewElement(s.ID(), c.Slot, list))
		lay.Columns = append(lay.Columns, c)
	}
	return lay
}

// ColumnAt returns the index of the column containing p.
func (l Layout) ColumnAt(p geom.Point) (int, bool) {
	for i, c := range l.Columns {
		if c.Slot.Contains(p) {
			return i, true
		}
	}
	return 0, false
}

// InViewport reports whether p lies in the scrolled body of column i, where
// item cards are drawn.
func (l Layout) InViewport(i int, p geom.Point) bool {
	if i < 0 || i >= len(l.Columns) {
		return false
	}
	return l.Columns[i].Viewport.Contains(p)
}

func rect(x, y, w, h int) geom.Rect {
	return geom.Rect{X: float32(x), Y: float32(y), Width: float32(max(w, 0)), Height: float32(max(h, 0))}
}

func inset(r geom.Rect, d float32) geom.Rect {
	r.X += d
	r.Y += d
	r.Width = max(r.Width-2*d, 0)
	r.Height = max(r.Height-2*d, 0)
	return r
}
