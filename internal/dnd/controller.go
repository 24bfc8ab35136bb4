// Package dnd drives drag and drop over a board. It turns gesture events
// into discovery queries, hover highlights and, on drop, board mutations.
// Nothing here depends on a renderer: the caller runs the returned queries
// against whatever widget tree it has and feeds the results back.
package dnd

import (
	"fmt"
	"io"
	"log"
	"time"

	"dropboard/internal/board"
	"dropboard/internal/geom"
	"dropboard/internal/highlight"
	"dropboard/internal/zone"
)

// DefaultDoubleClick is the window in which a second click on the same item
// starts editing it.
const DefaultDoubleClick = 500 * time.Millisecond

// Reply is what handling one event asks of the caller.
type Reply struct {
	// Query, when set, must be run against the current widget tree and its
	// result delivered back as a ZonesFound event.
	Query *zone.Query
	// Changed reports that the board's structure or content changed.
	Changed bool
	// Edit is set when an item entered edit mode.
	Edit *board.Location
	// Change describes a committed change, for history. Nil when Changed is
	// false.
	Change *Change
}

// Change kinds.
const (
	ItemMoved       = "item.moved"
	ItemTransferred = "item.transferred"
	ItemRemoved     = "item.removed"
	ItemAdded       = "item.added"
	ItemEdited      = "item.edited"
	ListsSwapped    = "lists.swapped"
)

// Change is a one-line record of a committed change.
type Change struct {
	Type    string
	Summary string
}

func (c *Controller) commit(typ, format string, args ...any) Reply {
	summary := fmt.Sprintf(format, args...)
	c.log.Print(summary)
	return Reply{Changed: true, Change: &Change{Type: typ, Summary: summary}}
}

// Controller owns the highlight state of item and list drags. It is not safe
// for concurrent use; events are expected from a single event loop.
type Controller struct {
	board *board.Board
	log   *log.Logger

	doubleClick time.Duration
	maxDepth    int

	items highlight.State
	lists highlight.State

	seq          uint64
	pendingItems uint64
	pendingLists uint64

	clicked   *board.Location
	clickedAt time.Time
	editing   *board.Location
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets where committed drops are logged.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithDoubleClick overrides DefaultDoubleClick.
func WithDoubleClick(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.doubleClick = d
		}
	}
}

// WithMaxDepth bounds how deep discovery queries search; 0 is unbounded.
func WithMaxDepth(n int) Option {
	return func(c *Controller) { c.maxDepth = n }
}

// New returns a controller for b.
func New(b *board.Board, opts ...Option) *Controller {
	c := &Controller{
		board:       b,
		log:         log.New(io.Discard, "", 0),
		doubleClick: DefaultDoubleClick,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Board returns the board the controller mutates.
func (c *Controller) Board() *board.Board { return c.board }

// Items returns the highlight state of item drags.
func (c *Controller) Items() highlight.State { return c.items }

// Lists returns the highlight state of list drags.
func (c *Controller) Lists() highlight.State { return c.lists }

// Editing returns the item in edit mode, if any.
func (c *Controller) Editing() (board.Location, bool) {
	if c.editing == nil {
		return board.Location{}, false
	}
	return *c.editing, true
}

// Dragging reports whether an item or list drag is in progress.
func (c *Controller) Dragging() bool {
	return c.items.Active() || c.lists.Active()
}

// Handle processes ev to completion.
func (c *Controller) Handle(ev Event) Reply {
	switch ev := ev.(type) {
	case DragItem:
		return c.dragItem(ev)
	case DropItem:
		return c.dropItem(ev)
	case ItemDropCanceled:
		c.cancelItem()
	case DragList:
		return c.dragList(ev)
	case DropList:
		return c.dropList(ev)
	case ListDropCanceled:
		c.cancelList()
	case ZonesFound:
		c.zonesFound(ev.Result)
	case ClickItem:
		return c.clickItem(ev)
	case UpdateItem:
		if it, ok := c.board.Item(ev.Location); ok && it.Content != ev.Content {
			it.Content = ev.Content
			return c.commit(ItemEdited, "edit item %s", ev.Location)
		}
	case StopEditing:
		c.stopEditing()
	case UpdateAdder:
		c.stopEditing()
		c.board.SetAdderText(ev.Slot, ev.Text)
	case WriteAdder:
		if loc, ok := c.board.WriteAdder(ev.Slot); ok {
			return c.commit(ItemAdded, "add item %s", loc)
		}
	}
	return Reply{}
}

// Run handles ev and, if it issues a query, runs it against root right away.
func (c *Controller) Run(ev Event, root zone.Widget) Reply {
	r := c.Handle(ev)
	if r.Query != nil {
		c.Handle(ZonesFound{Result: r.Query.Run(root)})
	}
	return r
}

func (c *Controller) nextQuery(bounds geom.Rect, allow zone.Allow) *zone.Query {
	c.seq++
	return &zone.Query{
		Seq:      c.seq,
		Filter:   geom.Intersecting(bounds),
		Allow:    allow,
		MaxDepth: c.maxDepth,
	}
}

func (c *Controller) dragItem(ev DragItem) Reply {
	if !c.items.Active() {
		c.stopEditing()
	}
	next := highlight.Dragged(c.items, ev.Location, ev.Bounds)
	if highlight.ShouldFlagDragSource(c.items, next, ev.Location) {
		c.board.SetHighlight(ev.Location, true)
	}
	c.items = next
	q := c.nextQuery(ev.Bounds, zone.AllowOf(c.board.ItemOptions(ev.Location)...))
	c.pendingItems = q.Seq
	return Reply{Query: q}
}

func (c *Controller) dragList(ev DragList) Reply {
	next := highlight.Dragged(c.lists, ev.Location, ev.Bounds)
	if highlight.ShouldFlagDragSource(c.lists, next, ev.Location) {
		c.board.SetHighlight(board.ListAt(ev.Location.Slot), true)
	}
	c.lists = next
	q := c.nextQuery(ev.Bounds, zone.AllowOf(c.board.ListOptions(ev.Location)...))
	c.pendingLists = q.Seq
	return Reply{Query: q}
}

// zonesFound applies a discovery result. Results that do not answer the
// latest query of an active drag are stale and dropped.
func (c *Controller) zonesFound(res zone.Result) {
	if res.Seq == 0 {
		return
	}
	candidates := c.candidates(res.Zones)
	switch res.Seq {
	case c.pendingItems:
		if !c.items.Active() {
			return
		}
		next := highlight.ZonesFound(c.items, candidates)
		highlight.Diff(c.items, next).Apply(c.board, c.items, next)
		c.items = next
	case c.pendingLists:
		if !c.lists.Active() {
			return
		}
		next := highlight.ZonesFound(c.lists, candidates)
		highlight.Diff(c.lists, next).Apply(c.board, c.lists, next)
		c.lists = next
	}
}

func (c *Controller) candidates(zones []zone.Zone) []highlight.Candidate {
	out := make([]highlight.Candidate, 0, len(zones))
	for _, z := range zones {
		if loc, ok := c.board.Find(z.ID); ok {
			out = append(out, highlight.Candidate{Location: loc, Bounds: z.Bounds})
		}
	}
	return out
}

func (c *Controller) dropItem(ev DropItem) Reply {
	hovered := c.items.Hovered
	c.clearItemFlags(ev.Location)
	c.items = highlight.Dropped()
	c.pendingItems = 0

	src := ev.Location
	if _, ok := c.board.Item(src); !ok {
		return Reply{}
	}
	if hovered == nil {
		c.board.RemoveItem(src)
		return c.commit(ItemRemoved, "drop item %s: no target, removed", src)
	}
	dst := *hovered
	switch dst.Element.Kind {
	case board.ElementList:
		if c.board.TransferToList(src, dst) {
			return c.commit(ItemTransferred, "drop item %s onto %s", src, dst)
		}
	case board.ElementItem:
		if src.Slot == dst.Slot {
			if c.board.MoveItem(src.Slot, src.Element.Index, dst.Element.Index) {
				return c.commit(ItemMoved, "drop item %s onto %s", src, dst)
			}
		} else if c.board.TransferToItem(src, dst) {
			return c.commit(ItemTransferred, "drop item %s onto %s", src, dst)
		}
	}
	return Reply{}
}

// clearItemFlags lowers every flag an item drag may have raised. It must run
// before the board is restructured, while the locations are still valid.
func (c *Controller) clearItemFlags(src board.Location) {
	c.board.SetHighlight(src, false)
	if c.items.Dragging != nil && c.items.Dragging.Location != src {
		c.board.SetHighlight(c.items.Dragging.Location, false)
	}
	highlight.SetHovered(c.board, c.items, false)
}

func (c *Controller) cancelItem() {
	if c.items.Dragging != nil {
		c.clearItemFlags(c.items.Dragging.Location)
	}
	c.items = highlight.Dropped()
	c.pendingItems = 0
}

func (c *Controller) dropList(ev DropList) Reply {
	hovered := c.lists.Hovered
	c.clearListFlags(ev.Location)
	c.lists = highlight.Dropped()
	c.pendingLists = 0

	if hovered == nil || hovered.Slot == ev.Location.Slot {
		return Reply{}
	}
	if !c.board.SwapLists(ev.Location.Slot, hovered.Slot) {
		return Reply{}
	}
	return c.commit(ListsSwapped, "drop list from slot %d onto slot %d", ev.Location.Slot, hovered.Slot)
}

func (c *Controller) clearListFlags(src board.Location) {
	c.board.SetHighlight(board.ListAt(src.Slot), false)
	if c.lists.Dragging != nil {
		c.board.SetHighlight(board.ListAt(c.lists.Dragging.Location.Slot), false)
	}
	highlight.SetHovered(c.board, c.lists, false)
}

func (c *Controller) cancelList() {
	if c.lists.Dragging != nil {
		c.clearListFlags(c.lists.Dragging.Location)
	}
	c.lists = highlight.Dropped()
	c.pendingLists = 0
}

func (c *Controller) clickItem(ev ClickItem) Reply {
	c.stopEditing()
	if c.clicked != nil && *c.clicked == ev.Location && ev.At.Sub(c.clickedAt) < c.doubleClick {
		if it, ok := c.board.Item(ev.Location); ok {
			it.Editing = true
			loc := ev.Location
			c.editing = &loc
			c.clicked = nil
			return Reply{Edit: &loc}
		}
	}
	loc := ev.Location
	c.clicked = &loc
	c.clickedAt = ev.At
	return Reply{}
}

func (c *Controller) stopEditing() {
	if c.editing == nil {
		return
	}
	if it, ok := c.board.Item(*c.editing); ok {
		it.Editing = false
	}
	c.editing = nil
}
