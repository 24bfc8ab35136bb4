package cli

import (
	"context"
	"strconv"

	"dropboard/internal/board"
	"dropboard/internal/store"
)

// session is one load-modify-save round trip on the board.
type session struct {
	ctx   context.Context
	store store.Store
	board *board.Board
}

func openSession(ctx context.Context, app *App) (*session, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := resolveStore(app)
	if err != nil {
		return nil, err
	}
	b, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &session{ctx: ctx, store: s, board: b}, nil
}

// commit saves the board and records one history entry.
func (s *session) commit(typ, summary string, payload any) error {
	if err := s.store.Save(s.ctx, s.board); err != nil {
		return err
	}
	return s.store.AppendEvent(s.ctx, typ, summary, payload)
}

func (s *session) item(arg string) (board.Location, *board.Item, error) {
	loc, err := board.ParseLocation(arg)
	if err != nil {
		return board.Location{}, nil, err
	}
	if !loc.IsItem() {
		return board.Location{}, nil, errUsage("%s is not an item location (want slot/item/index)", arg)
	}
	it, ok := s.board.Item(loc)
	if !ok {
		return board.Location{}, nil, errNotFound("item", arg)
	}
	return loc, it, nil
}

func (s *session) slot(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errUsage("invalid slot %q", arg)
	}
	if _, ok := s.board.Slot(i); !ok {
		return 0, errNotFound("slot", arg)
	}
	return i, nil
}

// boardTable is the text rendering of a board: one row per item, plus a row
// for each empty list.
type boardTable board.View

func (v boardTable) Table() ([]string, [][]string) {
	header := []string{"SLOT", "LIST", "LOCATION", "ID", "CONTENT"}
	var rows [][]string
	for _, s := range v.Slots {
		if len(s.List.Items) == 0 {
			rows = append(rows, []string{strconv.Itoa(s.Index), s.List.Title, "", "", ""})
			continue
		}
		for _, it := range s.List.Items {
			rows = append(rows, []string{strconv.Itoa(s.Index), s.List.Title, it.Location, it.ID, it.Content})
		}
	}
	return header, rows
}
