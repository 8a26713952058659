package domain

import "time"

// Snapshot is the serialisable state of one session's match.
type Snapshot struct {
	SessionID     string       `json:"sessionId"`
	Phase         Phase        `json:"phase"`
	Rows          int          `json:"rows"`
	Columns       int          `json:"columns"`
	Cells         [][]PlayerID `json:"cells"`
	Players       []Player     `json:"players"`
	CurrentPlayer PlayerID     `json:"currentPlayer"`
	Winner        PlayerID     `json:"winner,omitempty"`
	MoveCount     int          `json:"moveCount"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

func (m *Match) Snapshot(sessionID string) Snapshot {
	players := m.Players()
	return Snapshot{
		SessionID:     sessionID,
		Phase:         m.phase,
		Rows:          m.game.Board.Height(),
		Columns:       m.game.Board.Width(),
		Cells:         m.game.Board.Cells(),
		Players:       players[:],
		CurrentPlayer: m.game.CurrentPlayer,
		Winner:        m.game.Winner,
		MoveCount:     m.game.MoveCount,
		UpdatedAt:     time.Now().UTC(),
	}
}

// RestoreMatch rebuilds a match from a snapshot taken by Snapshot.
func RestoreMatch(s Snapshot) (*Match, error) {
	m, err := NewMatch(s.Rows, s.Columns)
	if err != nil {
		return nil, err
	}
	if err := m.game.Board.Load(s.Cells); err != nil {
		return nil, err
	}

	for _, p := range s.Players {
		if p.ID.Valid() {
			m.players[p.ID-1].Color = p.Color
		}
	}

	m.phase = s.Phase
	if !s.CurrentPlayer.Valid() {
		s.CurrentPlayer = Player1
	}
	m.game.CurrentPlayer = s.CurrentPlayer
	m.game.Winner = s.Winner
	m.game.MoveCount = s.MoveCount
	m.game.Active = s.Phase == PhaseActive
	return m, nil
}
