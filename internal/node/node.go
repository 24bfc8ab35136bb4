// Package node issues the opaque identities carried by widget tree nodes.
package node

import "fmt"

// Kind is the category an ID was issued for.
type Kind uint8

const (
	KindNone Kind = iota
	KindSlot
	KindList
	KindItem
	KindAdder
	KindChrome
)

func (k Kind) String() string {
	switch k {
	case KindSlot:
		return "slot"
	case KindList:
		return "list"
	case KindItem:
		return "item"
	case KindAdder:
		return "adder"
	case KindChrome:
		return "chrome"
	default:
		return "none"
	}
}

// ID names one tree node for the node's lifetime. The zero ID means "no
// identity".
type ID struct {
	Kind Kind
	Seq  uint64
}

// Valid reports whether id was issued by an Allocator.
func (id ID) Valid() bool {
	return id.Kind != KindNone
}

func (id ID) String() string {
	if !id.Valid() {
		return "none"
	}
	return fmt.Sprintf("%s_%d", id.Kind, id.Seq)
}

// Allocator hands out IDs from per-kind monotonic counters. An Allocator
// never issues the same ID twice. It is owned by whoever constructs the tree
// and is not safe for concurrent use.
type Allocator struct {
	next map[Kind]uint64
}

// NewAllocator returns an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{next: map[Kind]uint64{}}
}

// New issues a fresh ID of the given kind. KindNone is reserved for the
// zero ID; asking for it panics.
func (a *Allocator) New(k Kind) ID {
	if k == KindNone {
		panic("node: cannot issue an ID of KindNone")
	}
	if a.next == nil {
		a.next = map[Kind]uint64{}
	}
	seq := a.next[k]
	a.next[k] = seq + 1
	return ID{Kind: k, Seq: seq}
}

// Issued returns how many IDs of kind k have been handed out.
func (a *Allocator) Issued(k Kind) uint64 {
	return a.next[k]
}
