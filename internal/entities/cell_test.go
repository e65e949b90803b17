package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestCell_IsActive(t *testing.T) {
	assert.True(t, Cell{Active: 1}.IsActive())
	assert.False(t, Cell{Active: 0}.IsActive())
}

func TestCell_HasSession(t *testing.T) {
	tests := []struct {
		name      string
		sessionID *string
		expected  bool
	}{
		{"nil session", nil, false},
		{"empty session", strPtr(""), false},
		{"open session", strPtr("abc"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Cell{SessionID: tt.sessionID}.HasSession())
		})
	}
}

func TestFindCell(t *testing.T) {
	cells := []Cell{
		{ID: 10, CellID: 1},
		{ID: 11, CellID: 2},
	}

	cell, ok := FindCell(cells, 2)
	assert.True(t, ok)
	assert.Equal(t, 11, cell.ID)

	_, ok = FindCell(cells, 3)
	assert.False(t, ok)
}

func TestFilterActive(t *testing.T) {
	cells := []Cell{
		{CellID: 1, Active: 1},
		{CellID: 2, Active: 0},
		{CellID: 3, Active: 1},
	}

	active := FilterActive(cells, 1)
	assert.Len(t, active, 2)
	assert.Equal(t, 1, active[0].CellID)
	assert.Equal(t, 3, active[1].CellID)

	inactive := FilterActive(cells, 0)
	assert.Len(t, inactive, 1)
	assert.Equal(t, 2, inactive[0].CellID)
}
