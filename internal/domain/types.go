package domain

// PlayerID identifies one of the two player slots. Cells and the current
// player hold slot ids, so comparing them is an identity check.
type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Other returns the opposing slot.
func (p PlayerID) Other() PlayerID {
	if p == Player1 {
		return Player2
	}
	return Player1
}

func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

const (
	DefaultRows    = 6
	DefaultColumns = 7
	ToWin          = 4
)

// Player is a slot plus the colour label shown for it
type Player struct {
	ID    PlayerID `json:"id"`
	Color string   `json:"color"`
}

// to represent what a drop did to the game
type Result string

const (
	ResultContinue Result = "continue"
	ResultWin      Result = "win"
	ResultTie      Result = "tie"
)

func (r Result) Terminal() bool {
	return r == ResultWin || r == ResultTie
}

// Phase of the whole game, across rounds
type Phase string

const (
	PhaseUnconfigured Phase = "unconfigured"
	PhaseActive       Phase = "active"
	PhaseEnded        Phase = "ended"
)

type Cell struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

type Move struct {
	Row    int      `json:"row"`
	Column int      `json:"column"`
	Player PlayerID `json:"player"`
	Result Result   `json:"result"`
}

// Outcome describes how a round finished. Line is empty for a tie.
type Outcome struct {
	Result Result   `json:"result"`
	Winner PlayerID `json:"winner,omitempty"`
	Line   []Cell   `json:"line,omitempty"`
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidConfiguration Error = "both player colors must be set"
	ErrColumnFull           Error = "column is full"
	ErrColumnOutOfRange     Error = "column out of range"
	ErrGameNotActive        Error = "game is not active"
	ErrAlreadyStarted       Error = "game already started"
	ErrInvalidDimensions    Error = "board dimensions must be positive"
	ErrSessionNotFound      Error = "session not found"
	ErrSnapshotNotFound     Error = "snapshot not found"
)
