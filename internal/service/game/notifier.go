package game

import (
	"context"
	"fmt"
	"time"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/domain"
)

// Notifier is the presentation side of a session. Calls arrive one at a time
// in the order the game produced them.
type Notifier interface {
	PiecePlaced(move domain.Move, player domain.Player)
	TurnChanged(player domain.Player)
	GameEnded(outcome domain.Outcome, winner domain.Player)
	ConfigurationRejected(reason string)
	Restarted(state domain.Snapshot)
}

// SnapshotStore keeps the latest state of each live session.
// Load returns domain.ErrSnapshotNotFound for unknown ids.
type SnapshotStore interface {
	Save(ctx context.Context, snapshot domain.Snapshot) error
	Load(ctx context.Context, sessionID string) (domain.Snapshot, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

const ConfigurationRejectedReason = "Please set player colors before starting game."

// EndMessage is the human readable result shown once a round is over
func EndMessage(outcome domain.Outcome, winner domain.Player) string {
	if outcome.Result == domain.ResultWin {
		return fmt.Sprintf("Player %d (%s) won!", winner.ID, winner.Color)
	}
	return "Tie!"
}

type nopNotifier struct{}

func (nopNotifier) PiecePlaced(domain.Move, domain.Player)  {}
func (nopNotifier) TurnChanged(domain.Player)               {}
func (nopNotifier) GameEnded(domain.Outcome, domain.Player) {}
func (nopNotifier) ConfigurationRejected(string)            {}
func (nopNotifier) Restarted(domain.Snapshot)               {}
