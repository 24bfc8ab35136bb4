package zone

import (
	"dropboard/internal/geom"
	"dropboard/internal/node"
)

// Element is a plain in-memory widget tree. Layout code builds one per frame.
type Element struct {
	ID       node.ID
	Bounds   geom.Rect
	Scroll   geom.Vector
	Clip     bool
	Children []*Element
}

// NewElement returns an element with the given identity and bounds.
func NewElement(id node.ID, bounds geom.Rect, children ...*Element) *Element {
	return &Element{ID: id, Bounds: bounds, Children: children}
}

// Scrolled marks e as a scroll container translated by v.
func (e *Element) Scrolled(v geom.Vector) *Element {
	e.Scroll = v
	return e
}

// Clipped makes e hide the parts of its descendants outside its bounds.
func (e *Element) Clipped() *Element {
	e.Clip = true
	return e
}

// Push appends children to e.
func (e *Element) Push(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

func (e *Element) Operate(op Operation) {
	if e == nil {
		return
	}
	n := Node{ID: e.ID, Bounds: e.Bounds, Scroll: e.Scroll, Clip: e.Clip}
	if len(e.Children) == 0 {
		op.Leaf(n)
		return
	}
	op.Container(n, func(op Operation) {
		for _, c := range e.Children {
			c.Operate(op)
		}
	})
}

// Find returns the scroll-corrected bounds of id, or false when no node in
// root carries it. Clipping is not applied.
func Find(root Widget, id node.ID) (geom.Rect, bool) {
	if root == nil || !id.Valid() {
		return geom.Rect{}, false
	}
	op := &findBounds{id: id}
	root.Operate(op)
	return op.bounds, op.found
}

type findBounds struct {
	id     node.ID
	offset geom.Vector
	bounds geom.Rect
	found  bool
}

func (f *findBounds) match(n Node) bool {
	if f.found || n.ID != f.id {
		return false
	}
	f.bounds, f.found = n.Bounds.Sub(f.offset), true
	return true
}

func (f *findBounds) Container(n Node, descend func(Operation)) {
	if f.found || f.match(n) {
		return
	}
	offset := f.offset
	f.offset = f.offset.Add(n.Scroll)
	descend(f)
	f.offset = offset
}

func (f *findBounds) Leaf(n Node) {
	f.match(n)
}
