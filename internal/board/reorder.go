package board

import (
	"slices"
	"strings"
)

// MoveItem moves item from to index to within the list held by slot. The
// item is removed first, so a forward move lands at to-1: the moved item
// ends up directly before the item that was at index to.
func (b *Board) MoveItem(slot, from, to int) bool {
	s, ok := b.Slot(slot)
	if !ok {
		return false
	}
	l := s.list
	if from < 0 || from >= len(l.Items) || to < 0 || to > len(l.Items) {
		return false
	}
	insertAt := to
	if from < to {
		insertAt = to - 1
	}
	it := l.removeAt(from)
	l.insertAt(insertAt, it)
	return true
}

// TransferToItem moves the item at src into another list, at the index of
// the item at dst. The target and everything after it shift one later.
// Locations in the same slot are rejected; use MoveItem for those.
func (b *Board) TransferToItem(src, dst Location) bool {
	if src.Slot == dst.Slot {
		return false
	}
	if _, ok := b.Item(dst); !ok {
		return false
	}
	if _, ok := b.Item(src); !ok {
		return false
	}
	it, _ := b.RemoveItem(src)
	l, _ := b.List(dst)
	l.insertAt(dst.Element.Index, it)
	return true
}

// TransferToList moves the item at src to the end of the list held by dst's
// slot. Dropping onto the item's own list does nothing.
func (b *Board) TransferToList(src, dst Location) bool {
	if src.Slot == dst.Slot {
		return false
	}
	target, ok := b.List(dst)
	if !ok {
		return false
	}
	it, ok := b.RemoveItem(src)
	if !ok {
		return false
	}
	target.Items = append(target.Items, it)
	return true
}

// RemoveItem detaches the item at loc from its list. Its identity no longer
// resolves afterwards.
func (b *Board) RemoveItem(loc Location) (*Item, bool) {
	if _, ok := b.Item(loc); !ok {
		return nil, false
	}
	l, _ := b.List(loc)
	return l.removeAt(loc.Element.Index), true
}

// SwapLists exchanges the lists held by slots a and b. Slot identities and
// flags stay where they are.
func (b *Board) SwapLists(i, j int) bool {
	if i == j {
		return false
	}
	si, ok := b.Slot(i)
	if !ok {
		return false
	}
	sj, ok := b.Slot(j)
	if !ok {
		return false
	}
	si.list, sj.list = sj.list, si.list
	return true
}

// AppendItem adds a new item with content to the end of slot's list.
func (b *Board) AppendItem(slot int, content string) (Location, bool) {
	s, ok := b.Slot(slot)
	if !ok {
		return Location{}, false
	}
	s.list.Items = append(s.list.Items, b.newItem(content))
	return ItemAt(slot, len(s.list.Items)-1), true
}

// SetAdderText updates the draft text of slot's adder.
func (b *Board) SetAdderText(slot int, text string) bool {
	s, ok := b.Slot(slot)
	if !ok {
		return false
	}
	s.list.Adder.Text = text
	return true
}

// WriteAdder commits the draft of slot's adder as a new item and clears the
// draft. Blank drafts create nothing.
func (b *Board) WriteAdder(slot int) (Location, bool) {
	s, ok := b.Slot(slot)
	if !ok {
		return Location{}, false
	}
	text := s.list.Adder.Text
	s.list.Adder.Text = ""
	if strings.TrimSpace(text) == "" {
		return Location{}, false
	}
	return b.AppendItem(slot, text)
}

func (l *List) removeAt(i int) *Item {
	it := l.Items[i]
	l.Items = slices.Delete(l.Items, i, i+1)
	return it
}

func (l *List) insertAt(i int, it *Item) {
	if i > len(l.Items) {
		i = len(l.Items)
	}
	l.Items = append(l.Items, nil)
	copy(l.Items[i+1:], l.Items[i:])
	l.Items[i] = it
}
