package entities

import "time"

// Cell is one locker compartment as reported by a single status fetch.
type Cell struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	CellID int    `json:"cell_id"` // physical slot number, not the same as ID
	// Active is 0 or 1. The controller types it as an integer and callers compare
	// against the literal, so it stays an int.
	Active    int       `json:"active"`
	SessionID *string   `json:"session_id"`
	Position  *string   `json:"position"`
	Block     *string   `json:"block"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsActive reports whether the controller marks the cell as usable.
func (c Cell) IsActive() bool {
	return c.Active != 0
}

// HasSession reports whether a session currently occupies the cell.
func (c Cell) HasSession() bool {
	return c.SessionID != nil && *c.SessionID != ""
}

// FindCell returns the cell with the given physical slot number.
func FindCell(cells []Cell, cellID int) (*Cell, bool) {
	for i := range cells {
		if cells[i].CellID == cellID {
			return &cells[i], true
		}
	}
	return nil, false
}

// FilterActive returns the cells whose Active flag equals active.
func FilterActive(cells []Cell, active int) []Cell {
	out := make([]Cell, 0, len(cells))
	for _, c := range cells {
		if c.Active == active {
			out = append(out, c)
		}
	}
	return out
}
