package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/domain"
)

const (
	snapshotKeyPrefix = "connect4:snapshot:"
	snapshotIndexKey  = "connect4:snapshots"
)

// NewClient connects to Redis and checks the connection with a ping.
func NewClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

// SnapshotStore keeps each snapshot as a JSON string with a TTL, plus a
// sorted set scored by update time so old entries can be swept.
type SnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshotStore(client *redis.Client, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{client: client, ttl: ttl}
}

func snapshotKey(sessionID string) string {
	return snapshotKeyPrefix + sessionID
}

func (s *SnapshotStore) Save(ctx context.Context, snapshot domain.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, snapshotKey(snapshot.SessionID), data, s.ttl)
	pipe.ZAdd(ctx, snapshotIndexKey, redis.Z{
		Score:  float64(snapshot.UpdatedAt.Unix()),
		Member: snapshot.SessionID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", snapshot.SessionID, err)
	}
	return nil
}

func (s *SnapshotStore) Load(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	data, err := s.client.Get(ctx, snapshotKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Snapshot{}, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to load snapshot %s: %w", sessionID, err)
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to decode snapshot %s: %w", sessionID, err)
	}
	return snapshot, nil
}

func (s *SnapshotStore) Delete(ctx context.Context, sessionID string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, snapshotKey(sessionID))
	pipe.ZRem(ctx, snapshotIndexKey, sessionID)
	_, err := pipe.Exec(ctx)
	return err
}

// DeleteOlderThan removes snapshots last saved before cutoff. Keys that
// already expired through their TTL are only dropped from the index.
func (s *SnapshotStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	upper := strconv.FormatInt(cutoff.Unix()-1, 10)
	ids, err := s.client.ZRangeByScore(ctx, snapshotIndexKey, &redis.ZRangeBy{Min: "-inf", Max: upper}).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list old snapshots: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	keys := make([]string, len(ids))
	members := make([]interface{}, len(ids))
	for i, id := range ids {
		keys[i] = snapshotKey(id)
		members[i] = id
	}

	deleted, err := s.client.Del(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to delete old snapshots: %w", err)
	}
	if err := s.client.ZRem(ctx, snapshotIndexKey, members...).Err(); err != nil {
		return deleted, fmt.Errorf("failed to trim snapshot index: %w", err)
	}
	return deleted, nil
}
