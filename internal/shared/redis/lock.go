package redis

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"planets-galaxy/internal/shared/errors"

	"github.com/redis/go-redis/v9"
)

const lockKeyPrefix = "planets:generation:"

// releaseScript deletes the key only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// Lock guards a generation run for one seed across processes
type Lock struct {
	client *Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewLock(client *Client, ttl time.Duration, logger *slog.Logger) *Lock {
	return &Lock{
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "generation_lock"),
	}
}

// Acquire returns false without error when another run holds the seed
func (l *Lock) Acquire(ctx context.Context, seed, token string) (bool, error) {
	ok, err := l.client.SetNX(ctx, lockKeyPrefix+seed, token, l.ttl).Result()
	if err != nil {
		l.logger.Error("Failed to acquire generation lock", "seed", seed, "error", err)
		return false, errors.WrapExternal("failed to acquire generation lock", err)
	}

	l.logger.Debug("Generation lock attempt", "seed", seed, "acquired", ok)
	return ok, nil
}

func (l *Lock) Release(ctx context.Context, seed, token string) error {
	if err := releaseScript.Run(ctx, l.client, []string{lockKeyPrefix + seed}, token).Err(); err != nil {
		l.logger.Error("Failed to release generation lock", "seed", seed, "error", err)
		return errors.WrapExternal("failed to release generation lock", err)
	}
	return nil
}

// MemoryLock is the in-process fallback used when Redis is disabled
type MemoryLock struct {
	mu      sync.Mutex
	holders map[string]string
}

func NewMemoryLock() *MemoryLock {
	return &MemoryLock{holders: make(map[string]string)}
}

func (m *MemoryLock) Acquire(_ context.Context, seed, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, held := m.holders[seed]; held {
		return false, nil
	}
	m.holders[seed] = token
	return true, nil
}

func (m *MemoryLock) Release(_ context.Context, seed, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	holder, held := m.holders[seed]
	if !held {
		return nil
	}
	if holder != token {
		return fmt.Errorf("lock for seed %q is held by another run", seed)
	}
	delete(m.holders, seed)
	return nil
}
