package tui

import (
	"dropboard/internal/board"
	"dropboard/internal/dnd"
	"dropboard/internal/geom"
	"dropboard/internal/node"
	"dropboard/internal/zone"

	tea "github.com/charmbracelet/bubbletea"
)

type hitKind int

const (
	hitNone hitKind = iota
	hitItem
	hitTitle
	hitAdder
	hitList
)

type hit struct {
	kind   hitKind
	slot   int
	loc    board.Location
	bounds geom.Rect
}

// hitTest finds what is drawn at p. Cards scrolled out of their list's
// viewport are still in the tree but are not hittable. An item hit carries
// the full card rect, including any part clipped by the viewport.
func (m Model) hitTest(p geom.Point) hit {
	col, ok := m.lay.ColumnAt(p)
	if !ok {
		return hit{}
	}
	c := m.lay.Columns[col]
	h := hit{slot: col}
	for _, z := range zone.OnPoint(m.lay.Root, p, nil, 0) {
		switch z.ID.Kind {
		case node.KindItem:
			if !m.lay.InViewport(col, p) {
				continue
			}
			if loc, ok := m.ctrl.Board().Find(z.ID); ok {
				card, found := zone.Find(m.lay.Root, z.ID)
				if !found {
					card = z.Bounds
				}
				h.kind, h.loc, h.bounds = hitItem, loc, card
				return h
			}
		case node.KindAdder:
			h.kind = hitAdder
			return h
		}
	}
	switch {
	case c.Title.Contains(p):
		h.kind, h.loc, h.bounds = hitTitle, board.ListAt(col), c.List
	case c.List.Contains(p):
		h.kind, h.loc = hitList, board.ListAt(col)
	}
	return h
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := geom.Point{X: float32(msg.X), Y: float32(msg.Y)}
	m.pointer = p
	if m.showHelp {
		return m, nil
	}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		if i, ok := m.lay.ColumnAt(p); ok {
			m.scrollColumn(i, -1)
		}
	case msg.Button == tea.MouseButtonWheelDown:
		if i, ok := m.lay.ColumnAt(p); ok {
			m.scrollColumn(i, 1)
		}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return m, m.press(p)
	case msg.Action == tea.MouseActionMotion:
		return m, m.motion(p)
	case msg.Action == tea.MouseActionRelease:
		return m, m.release(p)
	}
	return m, nil
}

func (m *Model) press(p geom.Point) tea.Cmd {
	h := m.hitTest(p)

	var cmd tea.Cmd
	if loc, editing := m.ctrl.Editing(); editing && (h.kind != hitItem || h.loc != loc) {
		cmd = m.finishEditing(true)
		// Committing may have reshaped the frame.
		h = m.hitTest(p)
	}

	switch h.kind {
	case hitItem:
		if loc, editing := m.ctrl.Editing(); editing && loc == h.loc {
			return cmd
		}
		m.blurAdders()
		m.gesture = &gesture{kind: gestureItem, loc: h.loc, start: p, origin: h.bounds, bounds: h.bounds}
	case hitTitle:
		m.blurAdders()
		m.gesture = &gesture{kind: gestureList, loc: h.loc, start: p, origin: h.bounds, bounds: h.bounds}
	case hitAdder:
		m.focusAdder(h.slot)
	default:
		m.blurAdders()
	}
	return cmd
}

func (m *Model) motion(p geom.Point) tea.Cmd {
	g := m.gesture
	if g == nil {
		return nil
	}
	delta := geom.Vector{X: p.X - g.start.X, Y: p.Y - g.start.Y}
	if !g.moved && delta.IsZero() {
		return nil
	}
	g.moved = true
	g.bounds = g.origin.Add(delta)

	var ev dnd.Event
	switch g.kind {
	case gestureItem:
		ev = dnd.DragItem{Location: g.loc, Point: p, Bounds: g.bounds}
	case gestureList:
		ev = dnd.DragList{Location: g.loc, Point: p, Bounds: g.bounds}
	}
	return m.apply(m.ctrl.Handle(ev))
}

func (m *Model) release(p geom.Point) tea.Cmd {
	g := m.gesture
	m.gesture = nil
	if g == nil {
		return nil
	}
	if !g.moved {
		if g.kind == gestureItem {
			return m.apply(m.ctrl.Handle(dnd.ClickItem{Location: g.loc, At: m.now()}))
		}
		return nil
	}
	switch g.kind {
	case gestureItem:
		return m.apply(m.ctrl.Handle(dnd.DropItem{Location: g.loc, Point: p, Bounds: g.bounds}))
	case gestureList:
		return m.apply(m.ctrl.Handle(dnd.DropList{Location: g.loc, Point: p, Bounds: g.bounds}))
	}
	return nil
}

func (m *Model) cancelGesture() {
	g := m.gesture
	m.gesture = nil
	if g == nil || !g.moved {
		return
	}
	switch g.kind {
	case gestureItem:
		m.ctrl.Handle(dnd.ItemDropCanceled{})
	case gestureList:
		m.ctrl.Handle(dnd.ListDropCanceled{})
	}
}
