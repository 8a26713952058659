package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/domain"
)

// Session binds one match to the collaborator that displays it. Every
// inbound event is handled to completion under mu before the next one.
type Session struct {
	ID        string
	CreatedAt time.Time

	match        *domain.Match
	notifier     Notifier
	store        SnapshotStore
	log          *zap.SugaredLogger
	tracer       trace.Tracer
	endDelay     time.Duration
	endTimer     *time.Timer
	round        int // bumped on restart so a stale end announcement is dropped
	lastActivity time.Time
	mu           sync.Mutex
}

func newSession(id string, match *domain.Match, deps sessionDeps) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		CreatedAt:    now,
		match:        match,
		notifier:     nopNotifier{},
		store:        deps.store,
		log:          deps.log,
		tracer:       deps.tracer,
		endDelay:     deps.endDelay,
		lastActivity: now,
	}
}

// Attach makes n the session's collaborator, replacing any previous one.
func (s *Session) Attach(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n == nil {
		n = nopNotifier{}
	}
	s.notifier = n
	s.lastActivity = time.Now()
}

// Detach drops n if it is still the attached collaborator.
func (s *Session) Detach(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.notifier == n {
		s.notifier = nopNotifier{}
	}
}

func (s *Session) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.Snapshot(s.ID)
}

// Outcome returns the result of a finished round and the winning player.
func (s *Session) Outcome() (domain.Outcome, domain.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome, ok := s.match.Outcome()
	if !ok {
		return domain.Outcome{}, domain.Player{}, false
	}
	return outcome, s.match.Player(outcome.Winner), true
}

// attached reports whether a real collaborator is bound, such as an open socket
func (s *Session) attached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, detached := s.notifier.(nopNotifier)
	return !detached
}

func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// HandleColumnSelected drops a disk for the current player. Full, out of
// range and inactive drops are ignored without telling the player.
func (s *Session) HandleColumnSelected(ctx context.Context, column int) {
	ctx, span := s.tracer.Start(ctx, "session.drop", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.Int("column", column),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = time.Now()

	move, err := s.match.Drop(column)
	if err != nil {
		if isIgnoredDrop(err) {
			span.SetAttributes(attribute.String("ignored", err.Error()))
			s.log.Debugw("[SESSION] drop ignored", "session", s.ID, "column", column, "reason", err)
			return
		}
		span.SetStatus(codes.Error, err.Error())
		s.log.Errorw("[SESSION] drop failed", "session", s.ID, "column", column, "error", err)
		return
	}

	span.SetAttributes(
		attribute.Int("row", move.Row),
		attribute.String("result", string(move.Result)),
	)

	s.notifier.PiecePlaced(move, s.match.Player(move.Player))

	if move.Result.Terminal() {
		outcome, _ := s.match.Outcome()
		s.log.Infow("[SESSION] round over", "session", s.ID, "result", outcome.Result, "winner", outcome.Winner)
		s.scheduleEndAnnouncement(outcome)
	} else {
		s.notifier.TurnChanged(s.match.CurrentPlayer())
	}

	s.persist(ctx)
}

// HandleStartRequested configures the colours and starts a round.
func (s *Session) HandleStartRequested(ctx context.Context, color1, color2 string) {
	ctx, span := s.tracer.Start(ctx, "session.start", trace.WithAttributes(
		attribute.String("session.id", s.ID),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = time.Now()

	err := s.match.Start(color1, color2)
	switch {
	case errors.Is(err, domain.ErrInvalidConfiguration):
		span.SetAttributes(attribute.Bool("rejected", true))
		s.notifier.ConfigurationRejected(ConfigurationRejectedReason)
		return
	case err != nil:
		s.log.Debugw("[SESSION] start ignored", "session", s.ID, "reason", err)
		return
	}

	s.log.Infow("[SESSION] round started", "session", s.ID, "color1", color1, "color2", color2)
	s.notifier.TurnChanged(s.match.CurrentPlayer())
	s.persist(ctx)
}

// HandleRestartRequested abandons whatever round is in progress and waits
// for new colours. A pending end announcement is cancelled.
func (s *Session) HandleRestartRequested(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "session.restart", trace.WithAttributes(
		attribute.String("session.id", s.ID),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = time.Now()

	s.stopEndTimer()
	s.round++
	s.match.Restart()

	s.log.Infow("[SESSION] restarted", "session", s.ID)
	s.notifier.Restarted(s.match.Snapshot(s.ID))
	s.persist(ctx)
}

// caller must hold mu
func (s *Session) scheduleEndAnnouncement(outcome domain.Outcome) {
	winner := s.match.Player(outcome.Winner)

	if s.endDelay <= 0 {
		s.notifier.GameEnded(outcome, winner)
		return
	}

	round := s.round
	s.stopEndTimer()
	s.endTimer = time.AfterFunc(s.endDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.round != round {
			return
		}
		s.endTimer = nil
		s.notifier.GameEnded(outcome, winner)
	})
}

// caller must hold mu
func (s *Session) stopEndTimer() {
	if s.endTimer != nil {
		s.endTimer.Stop()
		s.endTimer = nil
	}
}

// close stops timers; the session must not be used afterwards
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopEndTimer()
	s.round++
	s.notifier = nopNotifier{}
}

// caller must hold mu
func (s *Session) persist(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, s.match.Snapshot(s.ID)); err != nil {
		s.log.Warnw("[SESSION] failed to save snapshot", "session", s.ID, "error", err)
	}
}

func isIgnoredDrop(err error) bool {
	return errors.Is(err, domain.ErrColumnFull) ||
		errors.Is(err, domain.ErrColumnOutOfRange) ||
		errors.Is(err, domain.ErrGameNotActive)
}
