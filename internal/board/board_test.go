package board

import (
	"strings"
	"testing"

	"dropboard/internal/node"
)

func newTestBoard() *Board {
	b := New(node.NewAllocator())
	b.AddSlot("Todo", "a", "b", "c", "d", "e")
	b.AddSlot("Doing", "x", "y")
	b.AddSlot("Done")
	return b
}

func contents(l *List) string {
	parts := make([]string, 0, len(l.Items))
	for _, it := range l.Items {
		parts = append(parts, it.Content)
	}
	return strings.Join(parts, ",")
}

func TestFind_ResolvesEveryLevel(t *testing.T) {
	b := newTestBoard()
	s1, _ := b.Slot(1)
	if loc, ok := b.Find(s1.ID()); !ok || loc != SlotAt(1) {
		t.Fatalf("Find(slot) = %v, %v", loc, ok)
	}
	if loc, ok := b.Find(s1.List().ID()); !ok || loc != ListAt(1) {
		t.Fatalf("Find(list) = %v, %v", loc, ok)
	}
	if loc, ok := b.Find(s1.List().Items[1].ID()); !ok || loc != ItemAt(1, 1) {
		t.Fatalf("Find(item) = %v, %v", loc, ok)
	}
	if _, ok := b.Find(s1.List().Adder.ID()); ok {
		t.Fatalf("adder identities must not resolve to a location")
	}
	if slot, ok := b.FindAdder(s1.List().Adder.ID()); !ok || slot != 1 {
		t.Fatalf("FindAdder = %d, %v", slot, ok)
	}
}

func TestIdentitiesAreUnique(t *testing.T) {
	b := newTestBoard()
	seen := map[node.ID]bool{}
	add := func(id node.ID) {
		if seen[id] {
			t.Fatalf("duplicate identity %v", id)
		}
		seen[id] = true
	}
	for _, s := range b.Slots() {
		add(s.ID())
		add(s.List().ID())
		add(s.List().Adder.ID())
		for _, it := range s.List().Items {
			add(it.ID())
		}
	}
}

func TestLocationEquality(t *testing.T) {
	if ItemAt(0, 1) == ItemAt(0, 2) {
		t.Fatalf("item locations with different indexes must differ")
	}
	if ItemAt(0, 1) != ItemAt(0, 1) {
		t.Fatalf("structurally equal locations must compare equal")
	}
	if ListAt(1) == SlotAt(1) {
		t.Fatalf("list and slot locations must differ")
	}
}

func TestItem_StaleLocations(t *testing.T) {
	b := newTestBoard()
	for _, loc := range []Location{ItemAt(0, 5), ItemAt(0, -1), ItemAt(9, 0), ListAt(0)} {
		if _, ok := b.Item(loc); ok {
			t.Fatalf("expected %v not to resolve to an item", loc)
		}
	}
	if b.SetHighlight(ItemAt(2, 0), true) {
		t.Fatalf("expected highlight on stale location to be a no-op")
	}
}

func TestMoveItem(t *testing.T) {
	cases := []struct {
		from, to int
		want     string
	}{
		{0, 3, "b,c,a,d,e"},
		{3, 0, "d,a,b,c,e"},
		{1, 1, "a,b,c,d,e"},
		{4, 0, "e,a,b,c,d"},
		{0, 5, "b,c,d,e,a"},
	}
	for _, tc := range cases {
		b := newTestBoard()
		if !b.MoveItem(0, tc.from, tc.to) {
			t.Fatalf("MoveItem(%d,%d) reported failure", tc.from, tc.to)
		}
		l, _ := b.List(ListAt(0))
		if got := contents(l); got != tc.want {
			t.Fatalf("MoveItem(%d,%d) = %s, want %s", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestMoveItem_PreservesIdentity(t *testing.T) {
	b := newTestBoard()
	l, _ := b.List(ListAt(0))
	id := l.Items[0].ID()
	b.MoveItem(0, 0, 3)
	if loc, ok := b.Find(id); !ok || loc != ItemAt(0, 2) {
		t.Fatalf("moved item resolves to %v, %v", loc, ok)
	}
}

func TestMoveItem_RejectsOutOfRange(t *testing.T) {
	b := newTestBoard()
	if b.MoveItem(0, 7, 0) || b.MoveItem(0, 0, 9) || b.MoveItem(5, 0, 0) {
		t.Fatalf("expected out-of-range moves to be rejected")
	}
}

func TestTransferToItem(t *testing.T) {
	b := newTestBoard()
	if !b.TransferToItem(ItemAt(0, 0), ItemAt(1, 1)) {
		t.Fatalf("transfer failed")
	}
	l0, _ := b.List(ListAt(0))
	l1, _ := b.List(ListAt(1))
	if got := contents(l0); got != "b,c,d,e" {
		t.Fatalf("source list = %s", got)
	}
	if got := contents(l1); got != "x,a,y" {
		t.Fatalf("target list = %s", got)
	}
	if b.TransferToItem(ItemAt(0, 0), ItemAt(0, 1)) {
		t.Fatalf("same-slot transfer must be rejected")
	}
}

func TestTransferToList(t *testing.T) {
	b := newTestBoard()
	if !b.TransferToList(ItemAt(1, 0), ListAt(2)) {
		t.Fatalf("transfer failed")
	}
	l1, _ := b.List(ListAt(1))
	l2, _ := b.List(ListAt(2))
	if contents(l1) != "y" || contents(l2) != "x" {
		t.Fatalf("unexpected lists: %q %q", contents(l1), contents(l2))
	}
	if b.TransferToList(ItemAt(1, 0), ListAt(1)) {
		t.Fatalf("dropping onto own list must be a no-op")
	}
	if contents(l1) != "y" {
		t.Fatalf("no-op transfer changed the list: %q", contents(l1))
	}
}

func TestRemoveItem_RetiresIdentity(t *testing.T) {
	b := newTestBoard()
	l, _ := b.List(ListAt(1))
	id := l.Items[0].ID()
	if _, ok := b.RemoveItem(ItemAt(1, 0)); !ok {
		t.Fatalf("remove failed")
	}
	if _, ok := b.Find(id); ok {
		t.Fatalf("removed identity still resolves")
	}
	if _, ok := b.RemoveItem(ItemAt(1, 3)); ok {
		t.Fatalf("removing a stale location must fail")
	}
}

func TestRemoveItem_ReleasesBackingSlot(t *testing.T) {
	b := newTestBoard()
	l, _ := b.List(ListAt(0))
	n := len(l.Items)
	if _, ok := b.RemoveItem(ItemAt(0, 0)); !ok {
		t.Fatalf("remove failed")
	}
	if tail := l.Items[:n][n-1]; tail != nil {
		t.Fatalf("backing array still holds %q", tail.Content)
	}
}

func TestSwapLists(t *testing.T) {
	b := newTestBoard()
	s0, _ := b.Slot(0)
	s1, _ := b.Slot(1)
	slot0, slot1 := s0.ID(), s1.ID()
	list0, list1 := s0.List(), s1.List()
	itemIDs := map[node.ID]bool{}
	for _, it := range append(append([]*Item{}, list0.Items...), list1.Items...) {
		itemIDs[it.ID()] = true
	}

	if !b.SwapLists(0, 1) {
		t.Fatalf("swap failed")
	}
	if s0.List() != list1 || s1.List() != list0 {
		t.Fatalf("lists were not exchanged")
	}
	if s0.ID() != slot0 || s1.ID() != slot1 {
		t.Fatalf("slot identities changed")
	}
	if s0.List().Title != "Doing" || s1.List().Title != "Todo" {
		t.Fatalf("titles did not travel with lists")
	}
	for id := range itemIDs {
		if _, ok := b.Find(id); !ok {
			t.Fatalf("item %v lost by swap", id)
		}
	}
	if b.SwapLists(0, 0) || b.SwapLists(0, 7) {
		t.Fatalf("invalid swaps must be rejected")
	}
}

func TestWriteAdder(t *testing.T) {
	b := newTestBoard()
	b.SetAdderText(2, "   ")
	if _, ok := b.WriteAdder(2); ok {
		t.Fatalf("blank draft must not create an item")
	}
	b.SetAdderText(2, "ship it")
	loc, ok := b.WriteAdder(2)
	if !ok || loc != ItemAt(2, 0) {
		t.Fatalf("WriteAdder = %v, %v", loc, ok)
	}
	l, _ := b.List(ListAt(2))
	if l.Adder.Text != "" || contents(l) != "ship it" {
		t.Fatalf("unexpected list after write: adder=%q items=%q", l.Adder.Text, contents(l))
	}
}

func TestOptions(t *testing.T) {
	b := newTestBoard()
	l0, _ := b.List(ListAt(0))
	dragged := l0.Items[2].ID()
	opts := b.ItemOptions(ItemAt(0, 2))
	// 5+2 items minus the dragged one, plus 3 lists.
	if len(opts) != 9 {
		t.Fatalf("expected 9 item options, got %d", len(opts))
	}
	for _, id := range opts {
		if id == dragged {
			t.Fatalf("dragged item offered as its own target")
		}
	}
	if got := b.ItemOptions(ItemAt(0, 42)); len(got) != 0 {
		t.Fatalf("stale drag source must have no options, got %v", got)
	}

	lopts := b.ListOptions(ListAt(1))
	s1, _ := b.Slot(1)
	if len(lopts) != 2 {
		t.Fatalf("expected 2 list options, got %v", lopts)
	}
	for _, id := range lopts {
		if id == s1.ID() {
			t.Fatalf("own slot offered as list target")
		}
	}
}

func TestApply(t *testing.T) {
	b := newTestBoard()
	l0, _ := b.List(ListAt(0))
	it := l0.Items[0]
	if !b.Apply(it.ID(), SetHighlight{On: true}) || !it.Highlight {
		t.Fatalf("SetHighlight not applied")
	}
	if !b.Apply(it.ID(), SetEditing{On: true}) || !it.Editing {
		t.Fatalf("SetEditing not applied")
	}
	if !b.Apply(it.ID(), SetContent{Content: "z"}) || it.Content != "z" {
		t.Fatalf("SetContent not applied")
	}
	if b.Apply(it.ID(), SetTitle{Title: "nope"}) {
		t.Fatalf("SetTitle must not apply to items")
	}
	if !b.Apply(l0.ID(), SetTitle{Title: "Backlog"}) || l0.Title != "Backlog" {
		t.Fatalf("SetTitle not applied to list")
	}
	s2, _ := b.Slot(2)
	if !b.Apply(s2.ID(), SetHighlight{On: true}) || !s2.Highlight {
		t.Fatalf("SetHighlight not applied to slot")
	}
	b.RemoveItem(ItemAt(0, 0))
	if b.Apply(it.ID(), SetHighlight{On: false}) {
		t.Fatalf("mutation on retired identity must be a no-op")
	}
	b.ClearHighlights()
	if s2.Highlight {
		t.Fatalf("ClearHighlights left a slot flagged")
	}
}

func TestSnapshot(t *testing.T) {
	b := newTestBoard()
	v := b.Snapshot()
	if len(v.Slots) != 3 || v.Slots[1].List.Title != "Doing" || len(v.Slots[0].List.Items) != 5 {
		t.Fatalf("unexpected snapshot: %+v", v)
	}
	if v.Slots[1].List.Items[1].Location != "1/item/1" {
		t.Fatalf("unexpected item location: %q", v.Slots[1].List.Items[1].Location)
	}
}

func TestParseLocation(t *testing.T) {
	cases := map[string]Location{
		"2":        SlotAt(2),
		"2/slot":   SlotAt(2),
		" 0/list ": ListAt(0),
		"1/item/4": ItemAt(1, 4),
	}
	for in, want := range cases {
		got, err := ParseLocation(in)
		if err != nil {
			t.Fatalf("ParseLocation(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLocation(%q) = %v, want %v", in, got, want)
		}
		if in == "1/item/4" && got.String() != in {
			t.Fatalf("String() does not round trip: %s", got)
		}
	}
	for _, bad := range []string{"", "x", "-1/list", "1/item", "1/item/-2", "1/box", "1/list/3"} {
		if _, err := ParseLocation(bad); err == nil {
			t.Fatalf("ParseLocation(%q) should fail", bad)
		}
	}
}
