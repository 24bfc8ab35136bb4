package board

// ItemView is the serializable form of an item.
type ItemView struct {
	ID        string `json:"id"`
	Location  string `json:"location"`
	Content   string `json:"content"`
	Highlight bool   `json:"highlight,omitempty"`
}

// ListView is the serializable form of a list.
type ListView struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Items []ItemView `json:"items"`
}

// SlotView is the serializable form of a slot and the list it holds.
type SlotView struct {
	Index int      `json:"index"`
	ID    string   `json:"id"`
	List  ListView `json:"list"`
}

// View is a point-in-time copy of the board for output.
type View struct {
	Slots []SlotView `json:"slots"`
}

// Snapshot copies the board into a View.
func (b *Board) Snapshot() View {
	v := View{Slots: make([]SlotView, 0, len(b.slots))}
	for i, s := range b.slots {
		lv := ListView{
			ID:    s.list.id.String(),
			Title: s.list.Title,
			Items: make([]ItemView, 0, len(s.list.Items)),
		}
		for j, it := range s.list.Items {
			lv.Items = append(lv.Items, ItemView{
				ID:        it.id.String(),
				Location:  ItemAt(i, j).String(),
				Content:   it.Content,
				Highlight: it.Highlight,
			})
		}
		v.Slots = append(v.Slots, SlotView{Index: i, ID: s.id.String(), List: lv})
	}
	return v
}
