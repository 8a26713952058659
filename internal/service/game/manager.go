package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/domain"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/telemetry"
	"github.com/iamasit07/4-in-a-row/hotseat/pkg/uid"
)

// Settings are the per-session game parameters
type Settings struct {
	Rows             int
	Columns          int
	EndAnnounceDelay time.Duration
}

type sessionDeps struct {
	store    SnapshotStore
	log      *zap.SugaredLogger
	tracer   trace.Tracer
	endDelay time.Duration
}

// SessionManager manages live game sessions
type SessionManager struct {
	Sessions map[string]*Session // sessionID → Session
	mu       sync.RWMutex
	settings Settings
	deps     sessionDeps
}

// NewSessionManager creates a manager. store may be nil, in which case
// sessions only live in memory; a nil tracer means no tracing.
func NewSessionManager(settings Settings, store SnapshotStore, log *zap.SugaredLogger, tracer trace.Tracer) *SessionManager {
	if tracer == nil {
		tracer = telemetry.NoopTracer()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &SessionManager{
		Sessions: make(map[string]*Session),
		settings: settings,
		deps: sessionDeps{
			store:    store,
			log:      log,
			tracer:   tracer,
			endDelay: settings.EndAnnounceDelay,
		},
	}
}

// CreateSession starts a fresh, unconfigured session attached to n.
func (sm *SessionManager) CreateSession(ctx context.Context, n Notifier) (*Session, error) {
	match, err := domain.NewMatch(sm.settings.Rows, sm.settings.Columns)
	if err != nil {
		return nil, err
	}

	session := newSession(uid.GenerateSessionID(), match, sm.deps)
	session.Attach(n)

	sm.mu.Lock()
	sm.Sessions[session.ID] = session
	sm.mu.Unlock()

	session.mu.Lock()
	session.persist(ctx)
	session.mu.Unlock()

	sm.deps.log.Infow("[SESSION] created", "session", session.ID,
		"rows", sm.settings.Rows, "columns", sm.settings.Columns)
	return session, nil
}

func (sm *SessionManager) GetSession(sessionID string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Sessions[sessionID]
	return session, exists
}

// ResumeSession finds a session in memory, or rebuilds it from the snapshot
// store, and attaches n to it.
func (sm *SessionManager) ResumeSession(ctx context.Context, sessionID string, n Notifier) (*Session, error) {
	if session, ok := sm.GetSession(sessionID); ok {
		session.Attach(n)
		return session, nil
	}

	if sm.deps.store == nil {
		return nil, domain.ErrSessionNotFound
	}

	snapshot, err := sm.deps.store.Load(ctx, sessionID)
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	match, err := domain.RestoreMatch(snapshot)
	if err != nil {
		return nil, err
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	// another connection may have restored it while we were loading
	if session, ok := sm.Sessions[sessionID]; ok {
		session.Attach(n)
		return session, nil
	}

	session := newSession(sessionID, match, sm.deps)
	session.Attach(n)
	sm.Sessions[sessionID] = session

	sm.deps.log.Infow("[SESSION] restored from snapshot", "session", sessionID, "phase", snapshot.Phase)
	return session, nil
}

// RemoveSession forgets a session and deletes its snapshot.
func (sm *SessionManager) RemoveSession(ctx context.Context, sessionID string) error {
	sm.mu.Lock()
	session, exists := sm.Sessions[sessionID]
	delete(sm.Sessions, sessionID)
	sm.mu.Unlock()

	if !exists {
		return domain.ErrSessionNotFound
	}
	session.close()

	sm.deps.log.Infow("[SESSION] removed", "session", sessionID)
	if sm.deps.store != nil {
		return sm.deps.store.Delete(ctx, sessionID)
	}
	return nil
}

// CleanupIdleSessions drops in-memory sessions with no activity for maxIdle
// and nobody attached. Their snapshots are left for the store's own expiry.
func (sm *SessionManager) CleanupIdleSessions(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	sm.mu.Lock()
	var stale []*Session
	for id, session := range sm.Sessions {
		if session.LastActivity().Before(cutoff) && !session.attached() {
			stale = append(stale, session)
			delete(sm.Sessions, id)
		}
	}
	sm.mu.Unlock()

	for _, session := range stale {
		session.close()
	}

	if len(stale) > 0 {
		sm.deps.log.Infow("[SESSION] memory cleanup", "removed", len(stale))
	}
	return len(stale)
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.Sessions)
}

func (sm *SessionManager) Store() SnapshotStore {
	return sm.deps.store
}
