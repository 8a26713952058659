package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBoard(t *testing.T) *Board {
	t.Helper()
	b, err := NewBoard(DefaultRows, DefaultColumns)
	require.NoError(t, err)
	return b
}

func TestNewBoardRejectsBadDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 7}, {6, 0}, {-1, -1}} {
		_, err := NewBoard(dims[0], dims[1])
		assert.ErrorIs(t, err, ErrInvalidDimensions, "dims %v", dims)
	}
}

func TestDropDiskStacksFromBottom(t *testing.T) {
	b := newTestBoard(t)

	for i := 0; i < DefaultRows; i++ {
		row, err := b.DropDisk(3, Player1)
		require.NoError(t, err)
		assert.Equal(t, DefaultRows-1-i, row)
	}
}

func TestDropDiskFullColumnLeavesBoardUnchanged(t *testing.T) {
	b := newTestBoard(t)
	for i := 0; i < DefaultRows; i++ {
		_, err := b.DropDisk(0, PlayerID(i%2+1))
		require.NoError(t, err)
	}
	before := b.Cells()

	row, err := b.DropDisk(0, Player1)
	assert.ErrorIs(t, err, ErrColumnFull)
	assert.Equal(t, -1, row)
	assert.Equal(t, before, b.Cells())
}

func TestDropDiskOutOfRange(t *testing.T) {
	b := newTestBoard(t)
	before := b.Cells()

	for _, col := range []int{-1, DefaultColumns, 100} {
		_, err := b.DropDisk(col, Player1)
		assert.ErrorIs(t, err, ErrColumnOutOfRange)
	}
	assert.Equal(t, before, b.Cells())
}

func TestCellsIsACopy(t *testing.T) {
	b := newTestBoard(t)
	cells := b.Cells()
	cells[0][0] = Player2

	assert.Equal(t, Empty, b.At(0, 0))
}

func TestLoadRejectsMismatchedGrid(t *testing.T) {
	b := newTestBoard(t)
	err := b.Load([][]PlayerID{{Empty}})
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestIsFull(t *testing.T) {
	b, err := NewBoard(2, 2)
	require.NoError(t, err)
	assert.False(t, b.IsFull())

	for col := 0; col < 2; col++ {
		for i := 0; i < 2; i++ {
			_, err := b.DropDisk(col, Player1)
			require.NoError(t, err)
		}
	}
	assert.True(t, b.IsFull())

	b.Clear()
	assert.False(t, b.IsFull())
}
