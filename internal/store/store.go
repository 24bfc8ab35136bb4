package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dropboard/internal/board"
	"dropboard/internal/node"

	_ "modernc.org/sqlite"
)

const (
	dirName        = ".dropboard"
	sqliteFileName = "board.sqlite"
	schemaVersion  = "1"
)

// DefaultTitles seed a board that has never been saved.
var DefaultTitles = []string{"Todo", "Doing", "Done"}

type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for a .dropboard directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, dirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, dirName), nil
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store: empty dir")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

// Exists reports whether a board has been saved. Opening the file alone
// (as Load does) does not count.
func (s Store) Exists(ctx context.Context) (bool, error) {
	if _, err := os.Stat(s.sqlitePath()); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return false, err
	}
	defer db.Close()
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM slots`).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL lets the CLI read while the TUI writes.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS slots (
			idx INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			draft TEXT NOT NULL DEFAULT '',
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			slot_idx INTEGER NOT NULL REFERENCES slots(idx) ON DELETE CASCADE,
			rank TEXT NOT NULL,
			content TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_items_slot_rank ON items(slot_idx, rank);`,
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			type TEXT NOT NULL,
			summary TEXT NOT NULL,
			payload_json TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	_, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO meta(k, v) VALUES('version', ?)`, schemaVersion)
	return err
}

// Init creates the board file with one slot per title. It fails if a board
// already exists.
func (s Store) Init(ctx context.Context, titles []string) (*board.Board, error) {
	exists, err := s.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("board already exists in " + s.Dir)
	}
	if len(titles) == 0 {
		titles = DefaultTitles
	}
	b := board.New(node.NewAllocator())
	for _, t := range titles {
		b.AddSlot(strings.TrimSpace(t))
	}
	if err := s.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Load reads the board. An empty store yields a board with DefaultTitles,
// which is not written until the first Save.
func (s Store) Load(ctx context.Context) (*board.Board, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	type slotRow struct {
		title, draft string
		items        []string
	}
	var slots []*slotRow

	rows, err := db.QueryContext(ctx, `SELECT title, draft FROM slots ORDER BY idx`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var r slotRow
		if err := rows.Scan(&r.title, &r.draft); err != nil {
			rows.Close()
			return nil, err
		}
		slots = append(slots, &r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	rows, err = db.QueryContext(ctx, `SELECT slot_idx, content FROM items ORDER BY slot_idx, rank, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			idx     int
			content string
		)
		if err := rows.Scan(&idx, &content); err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(slots) {
			continue
		}
		slots[idx].items = append(slots[idx].items, content)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	b := board.New(node.NewAllocator())
	if len(slots) == 0 {
		for _, t := range DefaultTitles {
			b.AddSlot(t)
		}
		return b, nil
	}
	for i, r := range slots {
		b.AddSlot(r.title, r.items...)
		b.SetAdderText(i, r.draft)
	}
	return b, nil
}

// Save replaces the stored board with b in one transaction.
func (s Store) Save(ctx context.Context, b *board.Board) error {
	if b == nil {
		return errors.New("nil board")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, t := range []string{"items", "slots"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	nowMs := time.Now().UTC().UnixMilli()
	for i, slot := range b.Slots() {
		l := slot.List()
		if _, err := tx.ExecContext(ctx, `INSERT INTO slots(idx, title, draft, updated_at_unixms) VALUES(?, ?, ?, ?)`,
			i, l.Title, l.Adder.Text, nowMs); err != nil {
			return err
		}
		ranks, err := Ranks(l.Len())
		if err != nil {
			return err
		}
		for j, it := range l.Items {
			if _, err := tx.ExecContext(ctx, `INSERT INTO items(slot_idx, rank, content) VALUES(?, ?, ?)`,
				i, ranks[j], it.Content); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// AppendItem adds one item to the end of slot's list without rewriting the
// rest of the board.
func (s Store) AppendItem(ctx context.Context, slot int, content string) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM slots WHERE idx = ?`, slot).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return errors.New("no such slot")
	}
	var last sql.NullString
	if err := db.QueryRowContext(ctx, `SELECT MAX(rank) FROM items WHERE slot_idx = ?`, slot).Scan(&last); err != nil {
		return err
	}
	rank, err := RankAfter(last.String)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `INSERT INTO items(slot_idx, rank, content) VALUES(?, ?, ?)`, slot, rank, content)
	return err
}
