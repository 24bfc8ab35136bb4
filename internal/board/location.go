package board

import (
	"fmt"
	"strconv"
	"strings"
)

// ElementKind is the level of the board a Location points at.
type ElementKind uint8

const (
	ElementSlot ElementKind = iota
	ElementList
	ElementItem
)

func (k ElementKind) String() string {
	switch k {
	case ElementSlot:
		return "slot"
	case ElementList:
		return "list"
	case ElementItem:
		return "item"
	default:
		return fmt.Sprintf("element(%d)", uint8(k))
	}
}

// Element selects the slot itself, the list it holds, or one item of that
// list. Index is only meaningful for ElementItem.
type Element struct {
	Kind  ElementKind
	Index int
}

// Location is the logical address of a board entity. An item location is
// relative to whichever list currently occupies the slot, so it goes stale
// when items or lists move.
type Location struct {
	Slot    int
	Element Element
}

// SlotAt addresses slot i.
func SlotAt(i int) Location {
	return Location{Slot: i, Element: Element{Kind: ElementSlot}}
}

// ListAt addresses the list held by slot i.
func ListAt(i int) Location {
	return Location{Slot: i, Element: Element{Kind: ElementList}}
}

// ItemAt addresses item j of the list held by slot i.
func ItemAt(i, j int) Location {
	return Location{Slot: i, Element: Element{Kind: ElementItem, Index: j}}
}

// IsItem reports whether l addresses an item.
func (l Location) IsItem() bool {
	return l.Element.Kind == ElementItem
}

// ItemIndex returns the item index for item locations.
func (l Location) ItemIndex() (int, bool) {
	if !l.IsItem() {
		return 0, false
	}
	return l.Element.Index, true
}

func (l Location) String() string {
	if l.IsItem() {
		return fmt.Sprintf("%d/item/%d", l.Slot, l.Element.Index)
	}
	return fmt.Sprintf("%d/%s", l.Slot, l.Element.Kind)
}

// ParseLocation reads the form produced by Location.String: "2/slot",
// "2/list" or "2/item/0". A bare "2" addresses slot 2.
func ParseLocation(s string) (Location, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	slot, err := strconv.Atoi(parts[0])
	if err != nil || slot < 0 {
		return Location{}, fmt.Errorf("invalid location %q: bad slot", s)
	}
	switch {
	case len(parts) == 1:
		return SlotAt(slot), nil
	case len(parts) == 2 && parts[1] == "slot":
		return SlotAt(slot), nil
	case len(parts) == 2 && parts[1] == "list":
		return ListAt(slot), nil
	case len(parts) == 3 && parts[1] == "item":
		j, err := strconv.Atoi(parts[2])
		if err != nil || j < 0 {
			return Location{}, fmt.Errorf("invalid location %q: bad item index", s)
		}
		return ItemAt(slot, j), nil
	}
	return Location{}, fmt.Errorf("invalid location %q: want slot/list or slot/item/index", s)
}
