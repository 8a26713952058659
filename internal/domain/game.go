package domain

// Game owns the board, the current player and the active flag.
type Game struct {
	Board         *Board
	CurrentPlayer PlayerID
	Active        bool
	Winner        PlayerID
	MoveCount     int
}

// NewGame returns an inactive game with an empty board
func NewGame(height, width int) (*Game, error) {
	board, err := NewBoard(height, width)
	if err != nil {
		return nil, err
	}
	return &Game{
		Board:         board,
		CurrentPlayer: Player1,
		Active:        false,
		Winner:        Empty,
	}, nil
}

// DropPiece puts the current player's disk in column. Failures leave the game untouched.
func (g *Game) DropPiece(column int) (Move, error) {
	if !g.Active {
		return Move{}, ErrGameNotActive
	}

	player := g.CurrentPlayer
	row, err := g.Board.DropDisk(column, player)
	if err != nil {
		return Move{}, err
	}
	g.MoveCount++

	move := Move{Row: row, Column: column, Player: player, Result: ResultContinue}

	// win takes precedence over a full board
	if g.CheckForWin(player) {
		g.Active = false
		g.Winner = player
		move.Result = ResultWin
		return move, nil
	}

	if g.CheckForTie() {
		g.Active = false
		move.Result = ResultTie
		return move, nil
	}

	return move, nil
}

func (g *Game) CheckForWin(player PlayerID) bool {
	return CheckForWin(g.Board, player)
}

func (g *Game) CheckForTie() bool {
	return CheckForTie(g.Board)
}

// AdvanceTurn hands the move to the other player
func (g *Game) AdvanceTurn() {
	g.CurrentPlayer = g.CurrentPlayer.Other()
}

// Reset clears the board and reactivates the game with player 1 to move.
func (g *Game) Reset() {
	g.Board.Clear()
	g.Active = true
	g.CurrentPlayer = Player1
	g.Winner = Empty
	g.MoveCount = 0
}

func (g *Game) IsFinished() bool {
	return !g.Active && (g.Winner != Empty || g.CheckForTie())
}
