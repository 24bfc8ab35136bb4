package tui

import (
	"context"
	"io"
	"log"
	"time"

	"dropboard/internal/board"
	"dropboard/internal/dnd"
	"dropboard/internal/geom"
	"dropboard/internal/layout"
	"dropboard/internal/store"
	"dropboard/internal/zone"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Store persists the board and its history. store.Store implements it.
type Store interface {
	Save(ctx context.Context, b *board.Board) error
	AppendEvent(ctx context.Context, typ, summary string, payload any) error
	SaveTUIState(st *store.TUIState) error
}

// Options configure a Model. Every field is optional.
type Options struct {
	Store  Store
	State  *store.TUIState
	Config *store.TUIConfig
	Logger *log.Logger
	// Now is the clock used for double-click detection.
	Now func() time.Time
}

// statusTTL is how long a status message stays in the header.
var statusTTL = 3 * time.Second

type gestureKind int

const (
	gestureItem gestureKind = iota
	gestureList
)

// gesture is a pressed mouse button that may turn into a drag.
type gesture struct {
	kind   gestureKind
	loc    board.Location
	start  geom.Point
	origin geom.Rect
	bounds geom.Rect
	moved  bool
}

type zonesMsg struct {
	result zone.Result
}

type statusDoneMsg struct {
	seq int
}

// Model is the bubbletea model of the board.
type Model struct {
	ctrl  *dnd.Controller
	store Store
	log   *log.Logger
	now   func() time.Time

	width, height int
	scroll        []int
	lay           layout.Layout
	pointer       geom.Point

	gesture *gesture

	adders []textinput.Model
	focus  int
	editor textinput.Model

	keys     keyMap
	help     help.Model
	showHelp bool

	status    string
	statusErr bool
	statusSeq int
}

// New returns a model for b.
func New(b *board.Board, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ctrlOpts := []dnd.Option{dnd.WithLogger(logger)}
	if opts.Config != nil {
		ctrlOpts = append(ctrlOpts,
			dnd.WithDoubleClick(opts.Config.DoubleClick()),
			dnd.WithMaxDepth(opts.Config.MaxDepth),
		)
	}

	m := Model{
		ctrl:  dnd.New(b, ctrlOpts...),
		store: opts.Store,
		log:   logger,
		now:   now,
		focus: -1,
		keys:  defaultKeyMap(),
		help:  help.New(),
	}
	if opts.State != nil {
		m.scroll = append([]int(nil), opts.State.Scroll...)
		m.showHelp = opts.State.ShowHelp
	}
	m.editor = newInput("")
	m.adders = make([]textinput.Model, b.Len())
	for i, s := range b.Slots() {
		m.adders[i] = newInput(s.List().Adder.Text)
		m.adders[i].Placeholder = "+ add item"
	}
	return m
}

func newInput(value string) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Cursor.SetMode(cursor.CursorStatic)
	in.SetValue(value)
	return in
}

// Controller exposes the drag and drop controller, mainly for tests.
func (m Model) Controller() *dnd.Controller { return m.ctrl }

func (m Model) Init() tea.Cmd { return nil }

func (m *Model) relayout() {
	b := m.ctrl.Board()
	m.lay = layout.Compute(b, m.width, m.height, m.scroll)
	m.scroll = m.scroll[:0]
	for _, c := range m.lay.Columns {
		m.scroll = append(m.scroll, c.Scroll)
	}
	for i := range m.adders {
		if i < len(m.lay.Columns) {
			m.adders[i].Width = max(int(m.lay.Columns[i].Inner.Width)-1, 1)
		}
	}
}

// apply carries out what the controller asked for in r.
func (m *Model) apply(r dnd.Reply) tea.Cmd {
	var cmds []tea.Cmd
	if r.Query != nil {
		cmds = append(cmds, discover(*r.Query, m.lay.Root))
	}
	if r.Edit != nil {
		m.startEditing(*r.Edit)
	}
	if r.Changed {
		m.syncAdders()
		m.relayout()
		cmds = append(cmds, m.persist(r.Change))
	}
	return tea.Batch(cmds...)
}

// discover runs q off the event loop. Frames are rebuilt rather than
// mutated, so root is safe to read from the command's goroutine.
func discover(q zone.Query, root zone.Widget) tea.Cmd {
	return func() tea.Msg {
		return zonesMsg{result: q.Run(root)}
	}
}

func (m *Model) persist(change *dnd.Change) tea.Cmd {
	if m.store == nil {
		if change != nil {
			return m.setStatus(change.Summary, false)
		}
		return nil
	}
	ctx := context.Background()
	if err := m.store.Save(ctx, m.ctrl.Board()); err != nil {
		m.log.Printf("save board: %v", err)
		return m.setStatus("save failed: "+err.Error(), true)
	}
	if change == nil {
		return nil
	}
	if err := m.store.AppendEvent(ctx, change.Type, change.Summary, nil); err != nil {
		m.log.Printf("append event: %v", err)
	}
	return m.setStatus(change.Summary, false)
}

func (m *Model) setStatus(s string, isErr bool) tea.Cmd {
	m.status = s
	m.statusErr = isErr
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return statusDoneMsg{seq: seq} })
}

func (m *Model) startEditing(loc board.Location) {
	it, ok := m.ctrl.Board().Item(loc)
	if !ok {
		return
	}
	m.blurAdders()
	m.editor.SetValue(it.Content)
	m.editor.CursorEnd()
	m.editor.Focus()
}

// finishEditing commits the editor's text to the item being edited.
func (m *Model) finishEditing(commit bool) tea.Cmd {
	loc, ok := m.ctrl.Editing()
	if !ok {
		return nil
	}
	var r dnd.Reply
	if commit {
		r = m.ctrl.Handle(dnd.UpdateItem{Location: loc, Content: m.editor.Value()})
	}
	m.ctrl.Handle(dnd.StopEditing{})
	m.editor.Blur()
	return m.apply(r)
}

func (m *Model) focusAdder(i int) {
	m.blurAdders()
	if i < 0 || i >= len(m.adders) {
		return
	}
	m.focus = i
	m.adders[i].Focus()
}

// syncAdders reloads the inputs from the board's drafts, which move with
// their lists.
func (m *Model) syncAdders() {
	for i, s := range m.ctrl.Board().Slots() {
		if i >= len(m.adders) {
			break
		}
		if text := s.List().Adder.Text; m.adders[i].Value() != text {
			m.adders[i].SetValue(text)
		}
	}
}

func (m *Model) blurAdders() {
	for i := range m.adders {
		m.adders[i].Blur()
	}
	m.focus = -1
}

func (m *Model) scrollColumn(i, delta int) {
	if i < 0 || i >= len(m.scroll) {
		return
	}
	m.scroll[i] += delta
	m.relayout()
}

func (m Model) saveState() {
	if m.store == nil {
		return
	}
	st := &store.TUIState{Version: 1, Scroll: append([]int(nil), m.scroll...), ShowHelp: m.showHelp}
	if err := m.store.SaveTUIState(st); err != nil {
		m.log.Printf("save tui state: %v", err)
	}
}
