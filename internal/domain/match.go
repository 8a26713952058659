package domain

// Match wraps a Game with the two players and the phase of the whole game.
// It is the turn controller: it validates colours, alternates turns after
// non-terminal moves and takes the game back to Unconfigured on restart.
type Match struct {
	game    *Game
	players [2]Player
	phase   Phase
}

func NewMatch(height, width int) (*Match, error) {
	game, err := NewGame(height, width)
	if err != nil {
		return nil, err
	}
	return &Match{
		game:    game,
		players: [2]Player{{ID: Player1}, {ID: Player2}},
		phase:   PhaseUnconfigured,
	}, nil
}

func (m *Match) Phase() Phase  { return m.phase }
func (m *Match) Board() *Board { return m.game.Board }
func (m *Match) Game() *Game   { return m.game }

// Player returns the player in slot id. Unknown slots yield a zero Player.
func (m *Match) Player(id PlayerID) Player {
	if !id.Valid() {
		return Player{}
	}
	return m.players[id-1]
}

func (m *Match) Players() [2]Player {
	return m.players
}

func (m *Match) CurrentPlayer() Player {
	return m.Player(m.game.CurrentPlayer)
}

// ConfigureColors assigns both colours, or nothing when either is empty.
func (m *Match) ConfigureColors(color1, color2 string) error {
	if color1 == "" || color2 == "" {
		return ErrInvalidConfiguration
	}
	m.players[0].Color = color1
	m.players[1].Color = color2
	return nil
}

// Start configures the colours and begins a round with player 1 to move.
func (m *Match) Start(color1, color2 string) error {
	if m.phase != PhaseUnconfigured {
		return ErrAlreadyStarted
	}
	if err := m.ConfigureColors(color1, color2); err != nil {
		return err
	}

	m.game.Reset()
	m.phase = PhaseActive
	return nil
}

// Drop plays the current player's disk in column. The turn only moves on
// after a Continue; a win or tie ends the round before this returns.
func (m *Match) Drop(column int) (Move, error) {
	if m.phase != PhaseActive {
		return Move{}, ErrGameNotActive
	}

	move, err := m.game.DropPiece(column)
	if err != nil {
		return Move{}, err
	}

	if move.Result.Terminal() {
		m.phase = PhaseEnded
		return move, nil
	}

	m.AdvanceTurn()
	return move, nil
}

func (m *Match) AdvanceTurn() {
	m.game.AdvanceTurn()
}

// Outcome reports how the round ended. ok is false while the round is not over.
func (m *Match) Outcome() (Outcome, bool) {
	if m.phase != PhaseEnded {
		return Outcome{}, false
	}

	if m.game.Winner != Empty {
		line, _ := WinningLine(m.game.Board, m.game.Winner)
		return Outcome{Result: ResultWin, Winner: m.game.Winner, Line: line}, true
	}
	return Outcome{Result: ResultTie}, true
}

// Restart empties the board, clears the colours and waits for a new configuration.
func (m *Match) Restart() {
	m.game.Reset()
	m.game.Active = false
	m.players[0].Color = ""
	m.players[1].Color = ""
	m.phase = PhaseUnconfigured
}
