package store

import (
	"context"
	"errors"
	"fmt"
)

var ErrDoctorIssuesFound = errors.New("doctor: issues found")

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Slot    *int             `json:"slot,omitempty"`
	ItemID  int64            `json:"itemId,omitempty"`
}

type DoctorReport struct {
	Dir    string        `json:"dir"`
	Issues []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

// Doctor checks the board file for problems Load would silently paper over:
// a schema version mismatch, gaps in slot numbering, items pointing at
// missing slots, and malformed or duplicate ranks.
func (s Store) Doctor(ctx context.Context) (DoctorReport, error) {
	rep := DoctorReport{Dir: s.Dir, Issues: []DoctorIssue{}}
	add := func(level DoctorIssueLevel, code, msg string, slot *int, itemID int64) {
		rep.Issues = append(rep.Issues, DoctorIssue{Level: level, Code: code, Message: msg, Slot: slot, ItemID: itemID})
	}

	db, err := s.openSQLite(ctx)
	if err != nil {
		return rep, err
	}
	defer db.Close()

	var check string
	if err := db.QueryRowContext(ctx, `PRAGMA integrity_check`).Scan(&check); err != nil {
		return rep, err
	}
	if check != "ok" {
		add(DoctorIssueLevelError, "integrity", "sqlite integrity_check: "+check, nil, 0)
	}

	var version string
	err = db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = 'version'`).Scan(&version)
	switch {
	case err != nil:
		add(DoctorIssueLevelWarn, "missing_version", "meta has no schema version", nil, 0)
	case version != schemaVersion:
		add(DoctorIssueLevelError, "version_mismatch", fmt.Sprintf("schema version %q, this build expects %q", version, schemaVersion), nil, 0)
	}

	rows, err := db.QueryContext(ctx, `SELECT idx FROM slots ORDER BY idx`)
	if err != nil {
		return rep, err
	}
	slots := map[int]bool{}
	want := 0
	for rows.Next() {
		var idx int
		if err := rows.Scan(&idx); err != nil {
			rows.Close()
			return rep, err
		}
		slots[idx] = true
		if idx != want {
			i := idx
			add(DoctorIssueLevelError, "slot_gap", fmt.Sprintf("slot %d found where %d was expected", idx, want), &i, 0)
		}
		want = idx + 1
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return rep, err
	}
	rows.Close()

	rows, err = db.QueryContext(ctx, `SELECT id, slot_idx, rank FROM items ORDER BY slot_idx, rank, id`)
	if err != nil {
		return rep, err
	}
	defer rows.Close()
	prev := map[int]string{}
	for rows.Next() {
		var (
			id   int64
			slot int
			rank string
		)
		if err := rows.Scan(&id, &slot, &rank); err != nil {
			return rep, err
		}
		sl := slot
		if !slots[slot] {
			add(DoctorIssueLevelError, "orphan_item", fmt.Sprintf("item %d belongs to missing slot %d", id, slot), &sl, id)
			continue
		}
		if !validRank(rank) {
			add(DoctorIssueLevelError, "bad_rank", fmt.Sprintf("item %d has malformed rank %q", id, rank), &sl, id)
		}
		if p, ok := prev[slot]; ok && p == rank {
			add(DoctorIssueLevelWarn, "duplicate_rank", fmt.Sprintf("item %d shares rank %q with its predecessor; order falls back to insertion", id, rank), &sl, id)
		}
		prev[slot] = rank
	}
	return rep, rows.Err()
}

func validRank(r string) bool {
	if r == "" {
		return false
	}
	for i := 0; i < len(r); i++ {
		if _, ok := rankDigit(r[i]); !ok {
			return false
		}
	}
	return true
}
