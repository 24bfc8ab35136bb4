package tui

import (
	"fmt"
	"strings"

	"dropboard/internal/board"
	"dropboard/internal/docs"
	"dropboard/internal/layout"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.showHelp {
		return m.viewHelp()
	}

	cols := make([]string, 0, len(m.lay.Columns))
	for i := range m.lay.Columns {
		cols = append(cols, m.viewColumn(i))
	}
	body := strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, cols...), "\n")
	bodyH := max(m.height-layout.HeaderHeight-layout.FooterHeight, 0)
	for len(body) < bodyH {
		body = append(body, "")
	}
	body = body[:bodyH]
	for i := range body {
		body[i] = padOrCut(body[i], m.width)
	}
	m.overlayGhost(body)

	lines := make([]string, 0, m.height)
	lines = append(lines, m.viewHeader())
	lines = append(lines, body...)
	lines = append(lines, m.viewFooter())
	return strings.Join(lines, "\n")
}

func (m Model) viewHeader() string {
	b := m.ctrl.Board()
	items := 0
	for _, s := range b.Slots() {
		items += s.List().Len()
	}
	left := fmt.Sprintf(" dropboard · %d lists · %d items", b.Len(), items)
	right := ""
	if m.status != "" {
		st := lipgloss.NewStyle()
		if m.statusErr {
			st = st.Foreground(colors.statusError).Bold(true)
		}
		right = st.Render(m.status) + " "
	}
	gap := max(m.width-xansi.StringWidth(left)-xansi.StringWidth(right), 1)
	return styleHeader().Render(padOrCut(left+strings.Repeat(" ", gap)+right, m.width))
}

func (m Model) viewFooter() string {
	return padOrCut(" "+m.help.ShortHelpView(m.keys.ShortHelp()), m.width)
}

func (m Model) viewColumn(i int) string {
	c := m.lay.Columns[i]
	s, ok := m.ctrl.Board().Slot(i)
	if !ok {
		return ""
	}
	l := s.List()
	innerW := int(c.Inner.Width)
	innerH := int(c.Inner.Height)
	if innerW <= 0 || innerH <= 0 {
		return lipgloss.NewStyle().Width(int(c.Slot.Width)).Height(int(c.Slot.Height)).Render("")
	}

	lines := make([]string, 0, innerH)
	title := fmt.Sprintf("%s %s", l.Title, styleMuted().Render(fmt.Sprintf("(%d)", l.Len())))
	lines = append(lines, styleListTitle(l.Highlight).Render(truncate(title, innerW)))

	if vpH := int(c.Viewport.Height); vpH > 0 {
		var cards []string
		for j, it := range l.Items {
			cards = append(cards, m.viewCard(board.ItemAt(i, j), it, innerW)...)
		}
		lines = append(lines, window(cards, c.Scroll, vpH)...)
	}
	if innerH >= 2 {
		lines = append(lines, m.viewAdder(i, innerW))
	}
	for k := range lines {
		lines[k] = padOrCut(lines[k], innerW)
	}

	list := styleList(l.Highlight).Render(strings.Join(lines, "\n"))
	return styleSlot(s.Highlight).Render(list)
}

// viewCard renders one item as layout.ItemHeight lines.
func (m Model) viewCard(loc board.Location, it *board.Item, w int) []string {
	content := it.Content
	editLoc, editing := m.ctrl.Editing()
	editing = editing && editLoc == loc
	if editing {
		content = m.editor.View()
	}
	st := styleCard(it.Highlight, editing).Width(max(w-2, 0))
	out := strings.Split(st.Render(truncate(content, max(w-2, 0))), "\n")
	for len(out) < layout.ItemHeight {
		out = append(out, "")
	}
	return out[:layout.ItemHeight]
}

func (m Model) viewAdder(i, w int) string {
	if i >= len(m.adders) {
		return ""
	}
	in := m.adders[i]
	if !in.Focused() && in.Value() == "" {
		return lipgloss.NewStyle().Foreground(colors.placeholderFg).Render(truncate(in.Placeholder, w))
	}
	return in.View()
}

// overlayGhost draws the dragged card or list header where the pointer has
// taken it. body starts at screen row layout.HeaderHeight.
func (m Model) overlayGhost(body []string) {
	g := m.gesture
	if g == nil || !g.moved {
		return
	}
	w := int(g.bounds.Width)
	if w < 3 {
		return
	}
	label := ""
	switch g.kind {
	case gestureItem:
		if it, ok := m.ctrl.Board().Item(g.loc); ok {
			label = it.Content
		}
	case gestureList:
		if l, ok := m.ctrl.Board().List(g.loc); ok {
			label = l.Title
		}
	}
	ghost := strings.Split(styleGhost().Width(w-2).Render(truncate(label, w-2)), "\n")
	x := int(g.bounds.X)
	for k, line := range ghost {
		y := int(g.bounds.Y) + k - layout.HeaderHeight
		if y < 0 || y >= len(body) {
			continue
		}
		body[y] = overlay(body[y], line, x)
	}
}

func (m Model) viewHelp() string {
	w := min(max(m.width-8, 20), 80)
	var parts []string
	for _, topic := range []string{"dragdrop", "keys"} {
		if md, ok := docs.Get(topic); ok {
			parts = append(parts, md)
		}
	}
	body := renderMarkdown(strings.Join(parts, "\n\n"), w-4)
	lines := strings.Split(body, "\n")
	if maxH := max(m.height-4, 1); len(lines) > maxH {
		lines = lines[:maxH]
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colors.accent).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// window returns the vpH lines of lines starting at offset, padded with
// blank lines.
func window(lines []string, offset, vpH int) []string {
	out := make([]string, 0, vpH)
	for k := offset; k < offset+vpH; k++ {
		if k >= 0 && k < len(lines) {
			out = append(out, lines[k])
		} else {
			out = append(out, "")
		}
	}
	return out
}
