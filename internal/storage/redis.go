package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/scene-engine/pkg/state"
)

const (
	gameStatePrefix = "gamestate:"
	latestSaveKey   = "gamestate:latest"
)

// RedisSaveStore implements SaveStore on a Redis backend. Saves are
// stored as JSON under a per-ID key, with a pointer key tracking the
// most recent save.
type RedisSaveStore struct {
	client *redis.Client
	logger *slog.Logger
}

var _ SaveStore = (*RedisSaveStore)(nil)

// NewRedisSaveStore creates a store connected to addr.
func NewRedisSaveStore(addr string, logger *slog.Logger) *RedisSaveStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisSaveStore{
		client: rdb,
		logger: logger,
	}
}

// NewRedisSaveStoreFromClient wraps an existing client. Used in tests.
func NewRedisSaveStoreFromClient(client *redis.Client, logger *slog.Logger) *RedisSaveStore {
	return &RedisSaveStore{
		client: client,
		logger: logger,
	}
}

func (s *RedisSaveStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (s *RedisSaveStore) Save(ctx context.Context, gs *state.GameState) error {
	gs.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(gs)
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}

	key := gameStatePrefix + gs.ID.String()
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		s.logger.Error("Redis SET failed", "key", key, "error", err)
		return fmt.Errorf("redis set failed: %w", err)
	}
	if err := s.client.Set(ctx, latestSaveKey, gs.ID.String(), 0).Err(); err != nil {
		s.logger.Error("Redis SET failed", "key", latestSaveKey, "error", err)
		return fmt.Errorf("redis set failed: %w", err)
	}

	s.logger.Debug("game state saved", "id", gs.ID, "bytes", len(data))
	return nil
}

func (s *RedisSaveStore) Load(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	key := gameStatePrefix + id.String()
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		s.logger.Error("Redis GET failed", "key", key, "error", err)
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var gs state.GameState
	if err := json.Unmarshal([]byte(data), &gs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game state: %w", err)
	}
	return &gs, nil
}

func (s *RedisSaveStore) LoadLatest(ctx context.Context) (*state.GameState, error) {
	raw, err := s.client.Get(ctx, latestSaveKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid latest save pointer %q: %w", raw, err)
	}
	return s.Load(ctx, id)
}

func (s *RedisSaveStore) Delete(ctx context.Context, id uuid.UUID) error {
	key := gameStatePrefix + id.String()
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.logger.Error("Redis DEL failed", "key", key, "error", err)
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (s *RedisSaveStore) Close() error {
	if err := s.client.Close(); err != nil {
		s.logger.Error("failed to close Redis connection", "error", err)
		return err
	}
	return nil
}
