package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/polkiloo/sushibar/internal/domain/repository"
)

const maxFlashes = 20

// RedisStore keeps visitor session state in Redis with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds RedisStore over an existing client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func lastOrdersKey(sessionID string) string {
	return fmt.Sprintf("session:%s:last_orders", sessionID)
}

func flashKey(sessionID string) string {
	return fmt.Sprintf("session:%s:flash", sessionID)
}

func (s *RedisStore) SaveLastOrders(ctx context.Context, sessionID string, ids []int64) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, lastOrdersKey(sessionID), data, s.ttl).Err()
}

// PopLastOrders returns stored ids once and removes them.
func (s *RedisStore) PopLastOrders(ctx context.Context, sessionID string) ([]int64, error) {
	data, err := s.client.GetDel(ctx, lastOrdersKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode last orders: %w", err)
	}
	return ids, nil
}

func (s *RedisStore) PushFlash(ctx context.Context, sessionID string, level, message string) error {
	data, err := json.Marshal(repository.Flash{Level: level, Message: message})
	if err != nil {
		return err
	}
	key := flashKey(sessionID)
	if err := s.client.RPush(ctx, key, data).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, key, s.ttl).Err()
}

func (s *RedisStore) PopFlashes(ctx context.Context, sessionID string) ([]repository.Flash, error) {
	values, err := s.client.LPopCount(ctx, flashKey(sessionID), maxFlashes).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	flashes := make([]repository.Flash, 0, len(values))
	for _, v := range values {
		var f repository.Flash
		if err := json.Unmarshal([]byte(v), &f); err != nil {
			continue
		}
		flashes = append(flashes, f)
	}
	return flashes, nil
}

// Ping checks Redis availability.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the client connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
