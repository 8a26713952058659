// Package memory keeps snapshots in process memory. It is the default store
// and loses everything on restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/domain"
)

type Store struct {
	snapshots map[string]domain.Snapshot
	mu        sync.RWMutex
}

func NewStore() *Store {
	return &Store{snapshots: make(map[string]domain.Snapshot)}
}

func (s *Store) Save(_ context.Context, snapshot domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snapshot.SessionID] = snapshot
	return nil
}

func (s *Store) Load(_ context.Context, sessionID string) (domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.snapshots[sessionID]
	if !ok {
		return domain.Snapshot{}, domain.ErrSnapshotNotFound
	}
	return snapshot, nil
}

func (s *Store) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, sessionID)
	return nil
}

func (s *Store) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, snapshot := range s.snapshots {
		if snapshot.UpdatedAt.Before(cutoff) {
			delete(s.snapshots, id)
			n++
		}
	}
	return n, nil
}
