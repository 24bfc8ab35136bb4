package zone

import "dropboard/internal/geom"

// Query is a discovery request that may be run later than it was issued.
// Seq ties the eventual Result back to the request.
type Query struct {
	Seq      uint64
	Filter   geom.Filter
	Allow    Allow
	MaxDepth int
}

// Result is the answer to exactly one Query.
type Result struct {
	Seq   uint64
	Zones []Zone
}

// Run executes q against root.
func (q Query) Run(root Widget) Result {
	return Result{Seq: q.Seq, Zones: Discover(root, q.Filter, q.Allow, q.MaxDepth)}
}
