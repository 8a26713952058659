package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boardWith(t *testing.T, player PlayerID, cells ...Cell) *Board {
	t.Helper()
	b := newTestBoard(t)
	grid := b.Cells()
	for _, c := range cells {
		grid[c.Row][c.Column] = player
	}
	require.NoError(t, b.Load(grid))
	return b
}

func TestCheckForWin(t *testing.T) {
	tests := []struct {
		name  string
		cells []Cell
		want  bool
	}{
		{
			name:  "horizontal",
			cells: []Cell{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
			want:  true,
		},
		{
			name:  "vertical",
			cells: []Cell{{1, 6}, {2, 6}, {3, 6}, {4, 6}},
			want:  true,
		},
		{
			name:  "diagonal down-right",
			cells: []Cell{{0, 0}, {1, 1}, {2, 2}, {3, 3}},
			want:  true,
		},
		{
			name:  "diagonal down-left",
			cells: []Cell{{2, 6}, {3, 5}, {4, 4}, {5, 3}},
			want:  true,
		},
		{
			name:  "three in a row",
			cells: []Cell{{5, 0}, {5, 1}, {5, 2}},
			want:  false,
		},
		{
			name:  "gap in the line",
			cells: []Cell{{5, 0}, {5, 1}, {5, 3}, {5, 4}},
			want:  false,
		},
		{
			name:  "no wrap across rows",
			cells: []Cell{{0, 5}, {0, 6}, {1, 0}, {1, 1}},
			want:  false,
		},
		{
			name:  "empty board",
			cells: nil,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardWith(t, Player1, tt.cells...)
			assert.Equal(t, tt.want, CheckForWin(b, Player1))
			assert.False(t, CheckForWin(b, Player2), "other player must not win")
		})
	}
}

func TestCheckForWinMixedOwners(t *testing.T) {
	b := boardWith(t, Player1, Cell{5, 0}, Cell{5, 1}, Cell{5, 2})
	grid := b.Cells()
	grid[5][3] = Player2
	require.NoError(t, b.Load(grid))

	assert.False(t, CheckForWin(b, Player1))
	assert.False(t, CheckForWin(b, Player2))
}

func TestCheckForWinEmptyPlayerNeverWins(t *testing.T) {
	b := newTestBoard(t)
	assert.False(t, CheckForWin(b, Empty))
}

func TestWinningLine(t *testing.T) {
	want := []Cell{{0, 0}, {1, 1}, {2, 2}, {3, 3}}
	b := boardWith(t, Player2, want...)

	line, ok := WinningLine(b, Player2)
	require.True(t, ok)
	assert.Equal(t, want, line)
}

func TestCheckForTie(t *testing.T) {
	b := newTestBoard(t)
	assert.False(t, CheckForTie(b))

	for _, col := range tieSequence {
		_, err := b.DropDisk(col, Player1)
		require.NoError(t, err)
	}
	assert.True(t, CheckForTie(b))
}
