package board

import "dropboard/internal/node"

// Mutation is a change applied to one entity by identity. The set of
// mutations is closed: SetHighlight, SetEditing, SetContent and SetTitle.
type Mutation interface {
	isMutation()
}

// SetHighlight sets the highlight flag of a slot, list or item.
type SetHighlight struct{ On bool }

// SetEditing toggles an item's editing flag.
type SetEditing struct{ On bool }

// SetContent replaces an item's text.
type SetContent struct{ Content string }

// SetTitle replaces a list's title.
type SetTitle struct{ Title string }

func (SetHighlight) isMutation() {}
func (SetEditing) isMutation()   {}
func (SetContent) isMutation()   {}
func (SetTitle) isMutation()     {}

// Apply performs m on the entity named by id. It reports false when id does
// not resolve or m does not apply to that kind of entity.
func (b *Board) Apply(id node.ID, m Mutation) bool {
	loc, ok := b.Find(id)
	if !ok {
		return false
	}
	switch m := m.(type) {
	case SetHighlight:
		return b.SetHighlight(loc, m.On)
	case SetEditing:
		it, ok := b.Item(loc)
		if !ok {
			return false
		}
		it.Editing = m.On
	case SetContent:
		it, ok := b.Item(loc)
		if !ok {
			return false
		}
		it.Content = m.Content
	case SetTitle:
		if loc.Element.Kind != ElementList {
			return false
		}
		l, _ := b.List(loc)
		l.Title = m.Title
	default:
		return false
	}
	return true
}
