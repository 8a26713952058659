package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/domain"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/logging"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/repository/memory"
)

type event struct {
	kind    string
	move    domain.Move
	player  domain.Player
	outcome domain.Outcome
	reason  string
	state   domain.Snapshot
}

// recorder is a Notifier that keeps every call for inspection.
type recorder struct {
	mu     sync.Mutex
	events []event
}

func (r *recorder) add(e event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) PiecePlaced(move domain.Move, player domain.Player) {
	r.add(event{kind: "piece", move: move, player: player})
}

func (r *recorder) TurnChanged(player domain.Player) {
	r.add(event{kind: "turn", player: player})
}

func (r *recorder) GameEnded(outcome domain.Outcome, winner domain.Player) {
	r.add(event{kind: "ended", outcome: outcome, player: winner})
}

func (r *recorder) ConfigurationRejected(reason string) {
	r.add(event{kind: "rejected", reason: reason})
}

func (r *recorder) Restarted(state domain.Snapshot) {
	r.add(event{kind: "restarted", state: state})
}

func (r *recorder) snapshot() []event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event(nil), r.events...)
}

func (r *recorder) kinds() []string {
	var out []string
	for _, e := range r.snapshot() {
		out = append(out, e.kind)
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func newTestManager(t *testing.T, delay time.Duration) (*SessionManager, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	settings := Settings{Rows: domain.DefaultRows, Columns: domain.DefaultColumns, EndAnnounceDelay: delay}
	return NewSessionManager(settings, store, logging.Nop(), nil), store
}

func newStartedSession(t *testing.T, delay time.Duration) (*Session, *recorder) {
	t.Helper()
	sm, _ := newTestManager(t, delay)
	rec := &recorder{}

	session, err := sm.CreateSession(context.Background(), rec)
	require.NoError(t, err)
	session.HandleStartRequested(context.Background(), "red", "blue")
	rec.reset()
	return session, rec
}

func TestStartRejectedWithEmptyColor(t *testing.T) {
	sm, _ := newTestManager(t, 0)
	rec := &recorder{}
	session, err := sm.CreateSession(context.Background(), rec)
	require.NoError(t, err)

	session.HandleStartRequested(context.Background(), "", "blue")
	session.HandleStartRequested(context.Background(), "red", "")

	events := rec.snapshot()
	require.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, "rejected", e.kind)
		assert.Equal(t, ConfigurationRejectedReason, e.reason)
	}
	assert.Equal(t, domain.PhaseUnconfigured, session.Snapshot().Phase)

	session.HandleColumnSelected(context.Background(), 0)
	assert.Len(t, rec.snapshot(), 2, "drops before start are ignored")
}

func TestStartAnnouncesPlayerOne(t *testing.T) {
	sm, _ := newTestManager(t, 0)
	rec := &recorder{}
	session, err := sm.CreateSession(context.Background(), rec)
	require.NoError(t, err)

	session.HandleStartRequested(context.Background(), "red", "blue")

	events := rec.snapshot()
	require.Len(t, events, 1)
	assert.Equal(t, "turn", events[0].kind)
	assert.Equal(t, domain.Player{ID: domain.Player1, Color: "red"}, events[0].player)
	assert.Equal(t, domain.PhaseActive, session.Snapshot().Phase)
}

func TestDropNotifiesPieceThenTurn(t *testing.T) {
	session, rec := newStartedSession(t, 0)

	session.HandleColumnSelected(context.Background(), 3)
	session.HandleColumnSelected(context.Background(), 3)

	events := rec.snapshot()
	require.Len(t, events, 4)
	assert.Equal(t, []string{"piece", "turn", "piece", "turn"}, rec.kinds())

	assert.Equal(t, domain.Move{Row: 5, Column: 3, Player: domain.Player1, Result: domain.ResultContinue}, events[0].move)
	assert.Equal(t, "red", events[0].player.Color)
	assert.Equal(t, domain.Player2, events[1].player.ID)
	assert.Equal(t, 4, events[2].move.Row)
	assert.Equal(t, "blue", events[2].player.Color)
	assert.Equal(t, domain.Player1, events[3].player.ID)
}

func TestIgnoredDropsAreSilent(t *testing.T) {
	session, rec := newStartedSession(t, 0)
	for i := 0; i < domain.DefaultRows; i++ {
		session.HandleColumnSelected(context.Background(), 0)
	}
	rec.reset()
	before := session.Snapshot()

	session.HandleColumnSelected(context.Background(), 0)
	session.HandleColumnSelected(context.Background(), -1)
	session.HandleColumnSelected(context.Background(), domain.DefaultColumns)

	assert.Empty(t, rec.snapshot())
	after := session.Snapshot()
	assert.Equal(t, before.Cells, after.Cells)
	assert.Equal(t, before.CurrentPlayer, after.CurrentPlayer)
}

func TestWinAnnouncedImmediatelyWithoutDelay(t *testing.T) {
	session, rec := newStartedSession(t, 0)

	for _, col := range []int{0, 0, 1, 1, 2, 2, 3} {
		session.HandleColumnSelected(context.Background(), col)
	}

	events := rec.snapshot()
	last := events[len(events)-1]
	assert.Equal(t, "ended", last.kind)
	assert.Equal(t, domain.ResultWin, last.outcome.Result)
	assert.Equal(t, domain.Player{ID: domain.Player1, Color: "red"}, last.player)
	assert.Equal(t, "piece", events[len(events)-2].kind, "no turn change after the winning move")
	assert.Equal(t, "Player 1 (red) won!", EndMessage(last.outcome, last.player))

	rec.reset()
	session.HandleColumnSelected(context.Background(), 4)
	assert.Empty(t, rec.snapshot())
}

func TestTieAnnounced(t *testing.T) {
	session, rec := newStartedSession(t, 0)

	sequence := []int{
		0, 0, 0, 0, 0, 0,
		1, 1, 1, 1, 1, 1,
		2, 2, 2, 2, 2, 2,
		4, 3, 3, 3, 3, 3, 3,
		4, 4, 4, 4, 4,
		5, 5, 5, 5, 5, 5,
		6, 6, 6, 6, 6, 6,
	}
	for _, col := range sequence {
		session.HandleColumnSelected(context.Background(), col)
	}

	events := rec.snapshot()
	last := events[len(events)-1]
	require.Equal(t, "ended", last.kind)
	assert.Equal(t, domain.ResultTie, last.outcome.Result)
	assert.Equal(t, "Tie!", EndMessage(last.outcome, last.player))
}

func TestEndAnnouncementIsDeferredButStateIsNot(t *testing.T) {
	session, rec := newStartedSession(t, 30*time.Millisecond)

	for _, col := range []int{0, 0, 1, 1, 2, 2, 3} {
		session.HandleColumnSelected(context.Background(), col)
	}

	assert.Equal(t, domain.PhaseEnded, session.Snapshot().Phase)
	assert.NotContains(t, rec.kinds(), "ended")

	// a click inside the delay must not place anything
	session.HandleColumnSelected(context.Background(), 5)
	assert.Equal(t, domain.Empty, session.Snapshot().Cells[5][5])

	assert.Eventually(t, func() bool {
		kinds := rec.kinds()
		return len(kinds) > 0 && kinds[len(kinds)-1] == "ended"
	}, time.Second, 5*time.Millisecond)
}

func TestRestartCancelsPendingAnnouncement(t *testing.T) {
	session, rec := newStartedSession(t, 40*time.Millisecond)

	for _, col := range []int{0, 0, 1, 1, 2, 2, 3} {
		session.HandleColumnSelected(context.Background(), col)
	}
	session.HandleRestartRequested(context.Background())

	time.Sleep(100 * time.Millisecond)
	assert.NotContains(t, rec.kinds(), "ended")
}

func TestRestartResetsToUnconfigured(t *testing.T) {
	session, rec := newStartedSession(t, 0)
	session.HandleColumnSelected(context.Background(), 3)
	rec.reset()

	session.HandleRestartRequested(context.Background())

	events := rec.snapshot()
	require.Len(t, events, 1)
	assert.Equal(t, "restarted", events[0].kind)

	state := events[0].state
	assert.Equal(t, domain.PhaseUnconfigured, state.Phase)
	assert.Equal(t, domain.Player1, state.CurrentPlayer)
	for _, row := range state.Cells {
		for _, cell := range row {
			assert.Equal(t, domain.Empty, cell)
		}
	}
	for _, p := range state.Players {
		assert.Empty(t, p.Color)
	}

	rec.reset()
	session.HandleStartRequested(context.Background(), "green", "yellow")
	require.Len(t, rec.snapshot(), 1)
	assert.Equal(t, "green", rec.snapshot()[0].player.Color)
}

func TestDetachOnlyDropsCurrentNotifier(t *testing.T) {
	session, first := newStartedSession(t, 0)
	second := &recorder{}

	session.Attach(second)
	session.Detach(first)
	session.HandleColumnSelected(context.Background(), 0)

	assert.Empty(t, first.snapshot())
	assert.Equal(t, []string{"piece", "turn"}, second.kinds())

	session.Detach(second)
	session.HandleColumnSelected(context.Background(), 1)
	assert.Len(t, second.snapshot(), 2)
}
