package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const storeKey = "clinic:settings"

// Store persists the clinic settings record.
type Store struct {
	redis *redis.Client
}

// NewStore creates a settings store backed by Redis.
func NewStore(redisClient *redis.Client) *Store {
	return &Store{redis: redisClient}
}

// Get retrieves the settings record, returning the documented defaults when
// none has been persisted yet.
func (s *Store) Get(ctx context.Context) (*ClinicSettings, error) {
	data, err := s.redis.Get(ctx, storeKey).Bytes()
	if err == redis.Nil {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("settings: get: %w", err)
	}

	var cfg ClinicSettings
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("settings: unmarshal: %w", err)
	}
	return &cfg, nil
}

// Set persists the full settings record.
func (s *Store) Set(ctx context.Context, cfg *ClinicSettings) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	if err := s.redis.Set(ctx, storeKey, data, 0).Err(); err != nil {
		return fmt.Errorf("settings: set: %w", err)
	}
	return nil
}

// Seed persists the default record with the given admin password hash, but
// only when no record exists yet. Returns true when a record was written.
func (s *Store) Seed(ctx context.Context, adminPasswordHash string) (bool, error) {
	cfg := Default()
	cfg.AdminPasswordHash = adminPasswordHash

	data, err := json.Marshal(cfg)
	if err != nil {
		return false, fmt.Errorf("settings: marshal seed: %w", err)
	}
	created, err := s.redis.SetNX(ctx, storeKey, data, 0).Result()
	if err != nil {
		return false, fmt.Errorf("settings: seed: %w", err)
	}
	return created, nil
}
