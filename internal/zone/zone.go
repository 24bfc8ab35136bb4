// Package zone finds drop zones in a widget tree.
//
// The tree is not owned by this package: a Widget reports itself to an
// Operation, which decides whether to descend into containers. Discovery is
// one such Operation; other read-only walks (hit testing, bounds lookup) are
// built the same way.
package zone

import (
	"dropboard/internal/geom"
	"dropboard/internal/node"
)

// Node is what a widget reports about itself to an Operation.
type Node struct {
	// ID is the zero ID for nodes that cannot be zones (layout chrome).
	ID node.ID
	// Bounds is the layout position, not corrected for any ancestor scroll.
	Bounds geom.Rect
	// Scroll is the translation this node applies to all of its descendants.
	Scroll geom.Vector
	// Clip limits descendants to the visible part of this node's bounds.
	Clip bool
}

// Operation visits a widget tree.
type Operation interface {
	// Container is called for nodes with children. The operation calls
	// descend to visit them; not calling it prunes the subtree.
	Container(n Node, descend func(Operation))
	// Leaf is called for nodes without children.
	Leaf(n Node)
}

// Widget is anything that can report itself to an Operation.
type Widget interface {
	Operate(op Operation)
}

// Zone is a candidate drop target: an identity and its corrected bounds.
type Zone struct {
	ID     node.ID
	Bounds geom.Rect
}

// Allow restricts which identities may be zones. A nil Allow admits every
// identity; an empty non-nil Allow admits none.
type Allow map[node.ID]bool

// AllowOf builds an Allow from ids.
func AllowOf(ids ...node.ID) Allow {
	a := make(Allow, len(ids))
	for _, id := range ids {
		a[id] = true
	}
	return a
}

func (a Allow) admits(id node.ID) bool {
	if a == nil {
		return true
	}
	return a[id]
}

// Discover walks root depth-first and returns every node whose
// scroll-corrected bounds satisfy filter and whose identity is admitted by
// allow.
//
// maxDepth bounds how many zones may be recorded along one branch before the
// walk stops descending; maxDepth <= 0 explores the whole tree. Nodes that do
// not qualify are still descended into. Results are in pre-order.
//
// Below a clipping container, bounds are cut to the container's visible area
// and nodes clipped away entirely are skipped.
func Discover(root Widget, filter geom.Filter, allow Allow, maxDepth int) []Zone {
	if root == nil || filter == nil {
		return nil
	}
	op := &findZones{
		filter:   filter,
		allow:    allow,
		maxDepth: maxDepth,
	}
	root.Operate(op)
	return op.zones
}

// OnPoint returns the zones containing p.
func OnPoint(root Widget, p geom.Point, allow Allow, maxDepth int) []Zone {
	return Discover(root, geom.ContainingPoint(p), allow, maxDepth)
}

type findZones struct {
	filter   geom.Filter
	allow    Allow
	maxDepth int

	depth   int
	offset  geom.Vector
	clip    geom.Rect
	clipped bool
	zones   []Zone
}

func (f *findZones) visit(n Node) {
	if !n.ID.Valid() || !f.allow.admits(n.ID) {
		return
	}
	bounds := n.Bounds.Sub(f.offset)
	if f.clipped {
		if bounds = bounds.Intersection(f.clip); bounds.Empty() {
			return
		}
	}
	if f.filter(bounds) {
		f.depth++
		f.zones = append(f.zones, Zone{ID: n.ID, Bounds: bounds})
	}
}

func (f *findZones) Container(n Node, descend func(Operation)) {
	depth, offset, clip, clipped := f.depth, f.offset, f.clip, f.clipped
	f.visit(n)
	if f.maxDepth <= 0 || f.depth < f.maxDepth {
		if n.Clip {
			visible := n.Bounds.Sub(f.offset)
			if f.clipped {
				visible = visible.Intersection(f.clip)
			}
			f.clip, f.clipped = visible, true
		}
		f.offset = f.offset.Add(n.Scroll)
		descend(f)
	}
	// Depth, scroll correction and clip belong to the branch.
	f.depth, f.offset, f.clip, f.clipped = depth, offset, clip, clipped
}

func (f *findZones) Leaf(n Node) {
	depth := f.depth
	f.visit(n)
	f.depth = depth
}
