// Package sqlstore implements the snapshot store on database/sql. The
// postgres and sqlite packages supply the connection and the dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/domain"
)

// Queries holds the dialect specific statements. Parameters are, in order:
// upsert (session_id, phase, snapshot, updated_at), load/delete (session_id),
// prune (cutoff).
type Queries struct {
	Upsert string
	Load   string
	Delete string
	Prune  string

	// Timestamp converts a time to the driver value stored in updated_at
	Timestamp func(time.Time) any
}

type Store struct {
	DB      *sql.DB
	queries Queries
}

func New(db *sql.DB, queries Queries) *Store {
	if queries.Timestamp == nil {
		queries.Timestamp = func(t time.Time) any { return t.UTC() }
	}
	return &Store{DB: db, queries: queries}
}

func (s *Store) Save(ctx context.Context, snapshot domain.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, s.queries.Upsert,
		snapshot.SessionID, string(snapshot.Phase), string(data), s.queries.Timestamp(snapshot.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot %s: %w", snapshot.SessionID, err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	var data string
	err := s.DB.QueryRowContext(ctx, s.queries.Load, sessionID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Snapshot{}, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to load snapshot %s: %w", sessionID, err)
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to decode snapshot %s: %w", sessionID, err)
	}
	return snapshot, nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if _, err := s.DB.ExecContext(ctx, s.queries.Delete, sessionID); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", sessionID, err)
	}
	return nil
}

func (s *Store) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.DB.ExecContext(ctx, s.queries.Prune, s.queries.Timestamp(cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}
	return result.RowsAffected()
}
