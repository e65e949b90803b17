package scheduler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mrlokans/postomat/internal/entities"
)

// ChangeKind names what happened to a cell between two snapshots.
type ChangeKind string

const (
	ChangeAdded          ChangeKind = "added"
	ChangeRemoved        ChangeKind = "removed"
	ChangeActivated      ChangeKind = "activated"
	ChangeDeactivated    ChangeKind = "deactivated"
	ChangeSessionStarted ChangeKind = "session_started"
	ChangeSessionEnded   ChangeKind = "session_ended"
)

// CellChange is one difference between two status snapshots.
type CellChange struct {
	Kind       ChangeKind `json:"kind"`
	CellID     int        `json:"cell_id"`
	Name       string     `json:"name"`
	OldSession *string    `json:"old_session_id"`
	NewSession *string    `json:"new_session_id"`
}

func (c CellChange) String() string {
	switch c.Kind {
	case ChangeSessionStarted:
		return fmt.Sprintf("cell %d (%s): session %s started", c.CellID, c.Name, deref(c.NewSession))
	case ChangeSessionEnded:
		return fmt.Sprintf("cell %d (%s): session %s ended", c.CellID, c.Name, deref(c.OldSession))
	default:
		return fmt.Sprintf("cell %d (%s): %s", c.CellID, c.Name, c.Kind)
	}
}

// DiffCells compares two snapshots by cell_id. Changes are ordered by cell_id,
// and a cell whose session was replaced yields an end followed by a start.
func DiffCells(previous, current []entities.Cell) []CellChange {
	before := indexCells(previous)
	after := indexCells(current)

	ids := make([]int, 0, len(before)+len(after))
	for id := range before {
		ids = append(ids, id)
	}
	for id := range after {
		if _, ok := before[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	var changes []CellChange
	for _, id := range ids {
		old, hadOld := before[id]
		cur, hasCur := after[id]

		switch {
		case !hadOld:
			changes = append(changes, CellChange{Kind: ChangeAdded, CellID: id, Name: cur.Name, NewSession: cur.SessionID})
			continue
		case !hasCur:
			changes = append(changes, CellChange{Kind: ChangeRemoved, CellID: id, Name: old.Name, OldSession: old.SessionID})
			continue
		}

		if old.IsActive() != cur.IsActive() {
			kind := ChangeDeactivated
			if cur.IsActive() {
				kind = ChangeActivated
			}
			changes = append(changes, CellChange{Kind: kind, CellID: id, Name: cur.Name})
		}

		if sameSession(old.SessionID, cur.SessionID) {
			continue
		}
		if old.HasSession() {
			changes = append(changes, CellChange{Kind: ChangeSessionEnded, CellID: id, Name: cur.Name, OldSession: old.SessionID, NewSession: cur.SessionID})
		}
		if cur.HasSession() {
			changes = append(changes, CellChange{Kind: ChangeSessionStarted, CellID: id, Name: cur.Name, OldSession: old.SessionID, NewSession: cur.SessionID})
		}
	}
	return changes
}

// FormatChanges renders changes as the plain-text notification body.
func FormatChanges(changes []CellChange) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d cell change(s) detected:\n\n", len(changes))
	for _, c := range changes {
		b.WriteString("- ")
		b.WriteString(c.String())
		b.WriteString("\n")
	}
	return b.String()
}

func indexCells(cells []entities.Cell) map[int]entities.Cell {
	m := make(map[int]entities.Cell, len(cells))
	for _, c := range cells {
		m[c.CellID] = c
	}
	return m
}

func sameSession(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
