package redis

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"techo/backend/internal/domain"
)

// Store persists the snapshot as a single JSON value under one key, the
// direct analogue of the browser-era local storage slot.
type Store struct {
	client *redis.Client
	key    string
}

func New(addr string, password string, db int, key string) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &Store{client: client, key: key}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Load(ctx context.Context) (domain.Snapshot, bool, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if err == redis.Nil {
		return domain.Snapshot{}, false, nil
	}
	if err != nil {
		return domain.Snapshot{}, false, err
	}

	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return domain.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s *Store) Save(ctx context.Context, snap domain.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	// No TTL: the slot lives until overwritten.
	return s.client.Set(ctx, s.key, payload, 0).Err()
}
