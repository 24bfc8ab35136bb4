package cli

import (
	"fmt"
	"strconv"
	"strings"

	"dropboard/internal/board"
	"dropboard/internal/geom"
	"dropboard/internal/highlight"
	"dropboard/internal/layout"
	"dropboard/internal/node"
	"dropboard/internal/zone"

	"github.com/spf13/cobra"
)

type rectView struct {
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

func viewRect(r geom.Rect) rectView {
	return rectView{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

type zoneView struct {
	ID       string   `json:"id"`
	Kind     string   `json:"kind"`
	Location string   `json:"location"`
	Bounds   rectView `json:"bounds"`
}

type zonesResult struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Zones  []zoneView `json:"zones"`
	// Target is where a drag of --drag would drop, when one was given.
	Target string `json:"target,omitempty"`
}

func (r zonesResult) Table() ([]string, [][]string) {
	rows := make([][]string, 0, len(r.Zones))
	for _, z := range r.Zones {
		b := z.Bounds
		mark := ""
		if r.Target != "" && z.Location == r.Target {
			mark = "*"
		}
		rows = append(rows, []string{z.Kind, z.Location, z.ID, fmt.Sprintf("%g,%g %gx%g", b.X, b.Y, b.Width, b.Height), mark})
	}
	return []string{"KIND", "LOCATION", "ID", "BOUNDS", "TARGET"}, rows
}

func newZonesCmd(app *App) *cobra.Command {
	var (
		at, within   string
		width        int
		height       int
		kinds        []string
		depth        int
		scrollArg    string
		dragLocation string
	)

	cmd := &cobra.Command{
		Use:   "zones",
		Short: "Run drop zone discovery against the board's layout",
		Long: strings.TrimSpace(`
Lays the board out for a terminal of --width x --height cells and reports the
zones at a point (--at x,y) or intersecting a rectangle (--rect x,y,w,h).
Bounds are in screen cells, corrected for each list's scroll offset.

With --drag, only the places that element may be dropped on are considered
and the resolved target is reported.
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (at == "") == (within == "") {
				return writeErr(cmd, errUsage("exactly one of --at or --rect is required"))
			}
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			scroll, err := parseInts(scrollArg, -1)
			if err != nil {
				return writeErr(cmd, errUsage("invalid --scroll: %v", err))
			}

			var (
				filter  geom.Filter
				dragged geom.Rect
			)
			if at != "" {
				xy, err := parseInts(at, 2)
				if err != nil {
					return writeErr(cmd, errUsage("invalid --at: %v", err))
				}
				p := geom.Point{X: float32(xy[0]), Y: float32(xy[1])}
				filter = geom.ContainingPoint(p)
				dragged = geom.Rect{X: p.X, Y: p.Y, Width: 1, Height: 1}
			} else {
				r, err := parseInts(within, 4)
				if err != nil {
					return writeErr(cmd, errUsage("invalid --rect: %v", err))
				}
				dragged = geom.Rect{X: float32(r[0]), Y: float32(r[1]), Width: float32(r[2]), Height: float32(r[3])}
				filter = geom.Intersecting(dragged)
			}

			allow, err := allowKinds(s.board, kinds)
			if err != nil {
				return writeErr(cmd, err)
			}
			var drag *board.Location
			if dragLocation != "" {
				loc, err := board.ParseLocation(dragLocation)
				if err != nil {
					return writeErr(cmd, err)
				}
				var opts []node.ID
				if loc.IsItem() {
					if _, ok := s.board.Item(loc); !ok {
						return writeErr(cmd, errNotFound("item", dragLocation))
					}
					opts = s.board.ItemOptions(loc)
				} else {
					if _, ok := s.board.Slot(loc.Slot); !ok {
						return writeErr(cmd, errNotFound("slot", dragLocation))
					}
					opts = s.board.ListOptions(loc)
				}
				allow = intersectAllow(allow, zone.AllowOf(opts...))
				drag = &loc
			}

			lay := layout.Compute(s.board, width, height, scroll)
			found := zone.Discover(lay.Root, filter, allow, depth)

			res := zonesResult{Width: width, Height: height, Zones: make([]zoneView, 0, len(found))}
			var candidates []highlight.Candidate
			for _, z := range found {
				res.Zones = append(res.Zones, zoneView{ID: z.ID.String(), Kind: z.ID.Kind.String(), Location: locate(s.board, z.ID), Bounds: viewRect(z.Bounds)})
				if l, ok := s.board.Find(z.ID); ok {
					candidates = append(candidates, highlight.Candidate{Location: l, Bounds: z.Bounds})
				}
			}
			if drag != nil {
				if target, ok := highlight.Resolve(candidates, dragged); ok {
					res.Target = target.String()
				}
			}
			return writeOut(cmd, app, res)
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Point x,y in cells")
	cmd.Flags().StringVar(&within, "rect", "", "Rectangle x,y,w,h in cells")
	cmd.Flags().IntVar(&width, "width", 120, "Terminal width in cells")
	cmd.Flags().IntVar(&height, "height", 40, "Terminal height in cells")
	cmd.Flags().StringSliceVar(&kinds, "kind", nil, "Only report these kinds (slot|list|item|adder)")
	cmd.Flags().IntVar(&depth, "depth", 0, "Maximum zones per branch (0 = unbounded)")
	cmd.Flags().StringVar(&scrollArg, "scroll", "", "Scroll offset per slot, e.g. 0,3,0")
	cmd.Flags().StringVar(&dragLocation, "drag", "", "Location of the element being dragged (item or list)")

	return cmd
}

// locate names the board position of id. Adders have no Location of their
// own and are named after their slot.
func locate(b *board.Board, id node.ID) string {
	if loc, ok := b.Find(id); ok {
		return loc.String()
	}
	if slot, ok := b.FindAdder(id); ok {
		return fmt.Sprintf("%d/adder", slot)
	}
	return ""
}

func allowKinds(b *board.Board, kinds []string) (zone.Allow, error) {
	if len(kinds) == 0 {
		return nil, nil
	}
	want := map[node.Kind]bool{}
	for _, k := range kinds {
		switch strings.ToLower(strings.TrimSpace(k)) {
		case "slot":
			want[node.KindSlot] = true
		case "list":
			want[node.KindList] = true
		case "item":
			want[node.KindItem] = true
		case "adder":
			want[node.KindAdder] = true
		default:
			return nil, errUsage("unknown kind %q (want slot|list|item|adder)", k)
		}
	}
	var ids []node.ID
	add := func(id node.ID) {
		if want[id.Kind] {
			ids = append(ids, id)
		}
	}
	for _, s := range b.Slots() {
		l := s.List()
		add(s.ID())
		add(l.ID())
		add(l.Adder.ID())
		for _, it := range l.Items {
			add(it.ID())
		}
	}
	return zone.AllowOf(ids...), nil
}

// intersectAllow admits what both a and b admit. A nil Allow admits all.
func intersectAllow(a, b zone.Allow) zone.Allow {
	if a == nil {
		return b
	}
	out := zone.Allow{}
	for id := range a {
		if b[id] {
			out[id] = true
		}
	}
	return out
}

// parseInts reads a comma separated list of integers. n < 0 accepts any
// count.
func parseInts(s string, n int) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		if n > 0 {
			return nil, fmt.Errorf("want %d comma separated integers", n)
		}
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if n >= 0 && len(parts) != n {
		return nil, fmt.Errorf("want %d comma separated integers, got %d", n, len(parts))
	}
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
