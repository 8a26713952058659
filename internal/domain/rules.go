package domain

// the four directions checked from every origin cell:
// horizontal, vertical, diagonal down-right, diagonal down-left
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// CheckForWin scans the whole board for ToWin aligned cells owned by player.
func CheckForWin(b *Board, player PlayerID) bool {
	_, ok := WinningLine(b, player)
	return ok
}

// WinningLine returns the first winning sequence for player, scanning origins
// top-left to bottom-right. Sequences that leave the board never match.
func WinningLine(b *Board, player PlayerID) ([]Cell, bool) {
	if player == Empty {
		return nil, false
	}

	for row := 0; row < b.Height(); row++ {
		for col := 0; col < b.Width(); col++ {
			for _, d := range directions {
				if line, ok := lineFrom(b, row, col, d[0], d[1], player); ok {
					return line, true
				}
			}
		}
	}
	return nil, false
}

func lineFrom(b *Board, row, col, deltaRow, deltaCol int, player PlayerID) ([]Cell, bool) {
	line := make([]Cell, 0, ToWin)
	for i := 0; i < ToWin; i++ {
		r, c := row+deltaRow*i, col+deltaCol*i
		if !b.InBounds(r, c) || b.At(r, c) != player {
			return nil, false
		}
		line = append(line, Cell{Row: r, Column: c})
	}
	return line, true
}

// CheckForTie reports a board with no empty cell. Callers check for a win first.
func CheckForTie(b *Board) bool {
	return b.IsFull()
}
