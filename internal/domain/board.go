package domain

// Board is a height x width grid. Row 0 is the top row.
type Board struct {
	height int
	width  int
	cells  [][]PlayerID
}

func NewBoard(height, width int) (*Board, error) {
	if height < 1 || width < 1 {
		return nil, ErrInvalidDimensions
	}
	b := &Board{height: height, width: width}
	b.Clear()
	return b, nil
}

func (b *Board) Height() int { return b.height }
func (b *Board) Width() int  { return b.width }

// Clear empties every cell. It is the only way an occupied cell goes back to Empty.
func (b *Board) Clear() {
	b.cells = make([][]PlayerID, b.height)
	for i := range b.cells {
		b.cells[i] = make([]PlayerID, b.width)
	}
}

func (b *Board) InBounds(row, column int) bool {
	return row >= 0 && row < b.height && column >= 0 && column < b.width
}

// At returns the occupant of a cell, Empty when out of bounds
func (b *Board) At(row, column int) PlayerID {
	if !b.InBounds(row, column) {
		return Empty
	}
	return b.cells[row][column]
}

// LowestEmptyRow walks the column from the bottom row upward and returns the
// first empty row, or -1 when the column is full.
func (b *Board) LowestEmptyRow(column int) int {
	for row := b.height - 1; row >= 0; row-- {
		if b.cells[row][column] == Empty {
			return row
		}
	}
	return -1
}

// DropDisk places player in the lowest empty row of column.
func (b *Board) DropDisk(column int, player PlayerID) (int, error) {
	if column < 0 || column >= b.width {
		return -1, ErrColumnOutOfRange
	}

	row := b.LowestEmptyRow(column)
	if row < 0 {
		return -1, ErrColumnFull
	}
	b.cells[row][column] = player
	return row, nil
}

func (b *Board) IsFull() bool {
	for _, row := range b.cells {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}
	return true
}

// Cells returns a deep copy of the grid
func (b *Board) Cells() [][]PlayerID {
	out := make([][]PlayerID, len(b.cells))
	for i := range b.cells {
		out[i] = make([]PlayerID, len(b.cells[i]))
		copy(out[i], b.cells[i])
	}
	return out
}

// Load replaces the grid with cells. Rows and columns must match the board size.
func (b *Board) Load(cells [][]PlayerID) error {
	if len(cells) != b.height {
		return ErrInvalidDimensions
	}
	for _, row := range cells {
		if len(row) != b.width {
			return ErrInvalidDimensions
		}
	}
	b.cells = make([][]PlayerID, b.height)
	for i := range cells {
		b.cells[i] = make([]PlayerID, b.width)
		copy(b.cells[i], cells[i])
	}
	return nil
}
