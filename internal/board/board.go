// Package board is the domain tree behind the drag and drop UI: a fixed row of
// slots, each holding exactly one list of items.
package board

import (
	"strings"

	"dropboard/internal/node"
)

// Item is one card of a list.
type Item struct {
	id        node.ID
	Content   string
	Editing   bool
	Highlight bool
}

// ID returns the item's identity.
func (it *Item) ID() node.ID { return it.id }

// Adder is the append affordance at the bottom of every list. Text is the
// draft of the next item.
type Adder struct {
	id   node.ID
	Text string
}

// ID returns the adder's identity.
func (a *Adder) ID() node.ID { return a.id }

// List is an ordered sequence of items with a title.
type List struct {
	id        node.ID
	Title     string
	Items     []*Item
	Adder     Adder
	Highlight bool
}

// ID returns the list's identity.
func (l *List) ID() node.ID { return l.id }

// Len returns the number of items.
func (l *List) Len() int { return len(l.Items) }

// Slot is a fixed position on the board. Slots swap lists but are never
// created or removed after startup.
type Slot struct {
	id        node.ID
	list      *List
	Highlight bool
}

// ID returns the slot's identity.
func (s *Slot) ID() node.ID { return s.id }

// List returns the list currently held by the slot.
func (s *Slot) List() *List { return s.list }

// Board owns every entity and the allocator their identities come from.
type Board struct {
	ids   *node.Allocator
	slots []*Slot
}

// New returns an empty board drawing identities from ids. A nil allocator
// gets a fresh one.
func New(ids *node.Allocator) *Board {
	if ids == nil {
		ids = node.NewAllocator()
	}
	return &Board{ids: ids}
}

// AddSlot appends a slot holding a new list with the given title and items.
// It is meant for board construction only.
func (b *Board) AddSlot(title string, contents ...string) *Slot {
	l := &List{
		id:    b.ids.New(node.KindList),
		Title: strings.TrimSpace(title),
		Adder: Adder{id: b.ids.New(node.KindAdder)},
	}
	for _, c := range contents {
		l.Items = append(l.Items, b.newItem(c))
	}
	s := &Slot{id: b.ids.New(node.KindSlot), list: l}
	b.slots = append(b.slots, s)
	return s
}

func (b *Board) newItem(content string) *Item {
	return &Item{id: b.ids.New(node.KindItem), Content: content}
}

// Slots returns the slots in board order.
func (b *Board) Slots() []*Slot { return b.slots }

// Len returns the number of slots.
func (b *Board) Len() int { return len(b.slots) }

// Slot returns slot i.
func (b *Board) Slot(i int) (*Slot, bool) {
	if i < 0 || i >= len(b.slots) {
		return nil, false
	}
	return b.slots[i], true
}

// List returns the list held by loc's slot, whatever element loc names.
func (b *Board) List(loc Location) (*List, bool) {
	s, ok := b.Slot(loc.Slot)
	if !ok {
		return nil, false
	}
	return s.list, true
}

// Item returns the item loc addresses. Non-item and stale locations report
// false.
func (b *Board) Item(loc Location) (*Item, bool) {
	j, ok := loc.ItemIndex()
	if !ok {
		return nil, false
	}
	l, ok := b.List(loc)
	if !ok || j < 0 || j >= len(l.Items) {
		return nil, false
	}
	return l.Items[j], true
}

// Find resolves an identity to its current location. Identities of removed
// entities and adders do not resolve.
func (b *Board) Find(id node.ID) (Location, bool) {
	if !id.Valid() {
		return Location{}, false
	}
	for i, s := range b.slots {
		if s.id == id {
			return SlotAt(i), true
		}
		if s.list.id == id {
			return ListAt(i), true
		}
		for j, it := range s.list.Items {
			if it.id == id {
				return ItemAt(i, j), true
			}
		}
	}
	return Location{}, false
}

// FindAdder returns the slot whose list owns the adder id.
func (b *Board) FindAdder(id node.ID) (int, bool) {
	for i, s := range b.slots {
		if s.list.Adder.id == id {
			return i, true
		}
	}
	return 0, false
}

// ItemOptions returns the identities an item dragged from loc may be dropped
// on: every other item and every list.
func (b *Board) ItemOptions(loc Location) []node.ID {
	dragged, ok := b.Item(loc)
	if !ok {
		return []node.ID{}
	}
	out := []node.ID{}
	for _, s := range b.slots {
		for _, it := range s.list.Items {
			if it != dragged {
				out = append(out, it.id)
			}
		}
	}
	for _, s := range b.slots {
		out = append(out, s.list.id)
	}
	return out
}

// ListOptions returns the identities a list dragged from loc may be dropped
// on: every slot except the one it occupies.
func (b *Board) ListOptions(loc Location) []node.ID {
	out := []node.ID{}
	for i, s := range b.slots {
		if i == loc.Slot {
			continue
		}
		out = append(out, s.id)
	}
	return out
}

// SetHighlight sets the highlight flag of whatever loc addresses. Stale
// locations are ignored.
func (b *Board) SetHighlight(loc Location, on bool) bool {
	switch loc.Element.Kind {
	case ElementSlot:
		s, ok := b.Slot(loc.Slot)
		if !ok {
			return false
		}
		s.Highlight = on
	case ElementList:
		l, ok := b.List(loc)
		if !ok {
			return false
		}
		l.Highlight = on
	case ElementItem:
		it, ok := b.Item(loc)
		if !ok {
			return false
		}
		it.Highlight = on
	default:
		return false
	}
	return true
}

// ClearHighlights resets every highlight flag on the board.
func (b *Board) ClearHighlights() {
	for _, s := range b.slots {
		s.Highlight = false
		s.list.Highlight = false
		for _, it := range s.list.Items {
			it.Highlight = false
		}
	}
}
