package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/domain"
)

func TestStoreSaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)

	snap := domain.Snapshot{SessionID: "s1", Phase: domain.PhaseActive, MoveCount: 3, UpdatedAt: time.Now()}
	require.NoError(t, store.Save(ctx, snap))

	got, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Load(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestStoreDeleteOlderThan(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	now := time.Now()

	require.NoError(t, store.Save(ctx, domain.Snapshot{SessionID: "old", UpdatedAt: now.Add(-2 * time.Hour)}))
	require.NoError(t, store.Save(ctx, domain.Snapshot{SessionID: "new", UpdatedAt: now}))

	n, err := store.DeleteOlderThan(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = store.Load(ctx, "new")
	assert.NoError(t, err)
	_, err = store.Load(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}
