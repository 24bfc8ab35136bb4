package tui

import (
	"dropboard/internal/dnd"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.relayout()
		return m, nil

	case zonesMsg:
		// Stale results are discarded by the controller.
		m.ctrl.Handle(dnd.ZonesFound{Result: msg.result})
		return m, nil

	case statusDoneMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.saveState()
		return m, tea.Quit
	}

	// A drag in progress only listens for esc.
	if m.gesture != nil && m.gesture.moved {
		if key.Matches(msg, m.keys.Cancel) {
			m.cancelGesture()
		}
		return m, nil
	}

	if _, editing := m.ctrl.Editing(); editing {
		switch {
		case key.Matches(msg, m.keys.Submit):
			return m, m.finishEditing(true)
		case key.Matches(msg, m.keys.Cancel):
			return m, m.finishEditing(false)
		}
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}

	if m.focus >= 0 {
		i := m.focus
		switch {
		case key.Matches(msg, m.keys.Submit):
			r := m.ctrl.Handle(dnd.WriteAdder{Slot: i})
			m.adders[i].SetValue("")
			return m, m.apply(r)
		case key.Matches(msg, m.keys.Cancel):
			m.blurAdders()
			return m, nil
		case key.Matches(msg, m.keys.NextAdd):
			m.focusAdder((i + 1) % len(m.adders))
			return m, nil
		case key.Matches(msg, m.keys.PrevAdd):
			m.focusAdder((i + len(m.adders) - 1) % len(m.adders))
			return m, nil
		}
		var cmd tea.Cmd
		m.adders[i], cmd = m.adders[i].Update(msg)
		m.ctrl.Handle(dnd.UpdateAdder{Slot: i, Text: m.adders[i].Value()})
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveState()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Cancel):
		m.showHelp = false
	case key.Matches(msg, m.keys.NextAdd):
		m.focusAdder(0)
	case key.Matches(msg, m.keys.PrevAdd):
		m.focusAdder(len(m.adders) - 1)
	case key.Matches(msg, m.keys.ScrollUp):
		if i, ok := m.lay.ColumnAt(m.pointer); ok {
			m.scrollColumn(i, -3)
		}
	case key.Matches(msg, m.keys.ScrollDn):
		if i, ok := m.lay.ColumnAt(m.pointer); ok {
			m.scrollColumn(i, 3)
		}
	}
	return m, nil
}
