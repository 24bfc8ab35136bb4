package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Event is one entry of the board history: a committed drop, edit or add.
type Event struct {
	ID      int64           `json:"id"`
	Type    string          `json:"type"`
	Summary string          `json:"summary"`
	Payload json.RawMessage `json:"payload,omitempty"`
	At      time.Time       `json:"at"`
}

// AppendEvent records a history entry. payload may be nil.
func (s Store) AppendEvent(ctx context.Context, typ, summary string, payload any) error {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return errors.New("event: missing type")
	}
	raw := []byte("{}")
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		raw = b
	}

	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT INTO events(type, summary, payload_json, created_at_unixms) VALUES(?, ?, ?, ?)`,
		typ, summary, string(raw), time.Now().UTC().UnixMilli())
	return err
}

// ReadEvents returns history entries, newest first. limit == 0 means "all".
func (s Store) ReadEvents(ctx context.Context, limit int) ([]Event, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT id, type, summary, payload_json, created_at_unixms FROM events ORDER BY id DESC`
	var rows *sql.Rows
	if limit > 0 {
		rows, err = db.QueryContext(ctx, q+` LIMIT ?`, limit)
	} else {
		rows, err = db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		var (
			ev      Event
			payload string
			atMs    int64
		)
		if err := rows.Scan(&ev.ID, &ev.Type, &ev.Summary, &payload, &atMs); err != nil {
			return nil, err
		}
		if payload != "" && payload != "{}" {
			ev.Payload = json.RawMessage(payload)
		}
		ev.At = time.UnixMilli(atMs).UTC()
		out = append(out, ev)
	}
	return out, rows.Err()
}
