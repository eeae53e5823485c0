package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/schedassist/sched-assist-api/internal/models"
)

const conflictKeyPrefix = "pending_conflict:"

func conflictKey(userID string) string {
	return conflictKeyPrefix + userID
}

// RedisConflictStore keeps pending confirmations in Redis so they survive
// restarts and expire on their own.
type RedisConflictStore struct {
	client *redis.Client
}

// NewRedisConflictStore constructs the store.
func NewRedisConflictStore(client *redis.Client) *RedisConflictStore {
	return &RedisConflictStore{client: client}
}

// Get returns the pending conflict for the user, or nil when none exists.
func (s *RedisConflictStore) Get(ctx context.Context, userID string) (*models.PendingConflict, error) {
	raw, err := s.client.Get(ctx, conflictKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", conflictKey(userID), err)
	}
	var pc models.PendingConflict
	if err := json.Unmarshal(raw, &pc); err != nil {
		return nil, fmt.Errorf("decode pending conflict: %w", err)
	}
	return &pc, nil
}

// Put stores the pending conflict with the given TTL.
func (s *RedisConflictStore) Put(ctx context.Context, userID string, pc models.PendingConflict, ttl time.Duration) error {
	raw, err := json.Marshal(pc)
	if err != nil {
		return fmt.Errorf("encode pending conflict: %w", err)
	}
	if err := s.client.Set(ctx, conflictKey(userID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", conflictKey(userID), err)
	}
	return nil
}

// Delete clears the pending conflict; deleting a missing entry is a no-op.
func (s *RedisConflictStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, conflictKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", conflictKey(userID), err)
	}
	return nil
}

type memoryConflictEntry struct {
	conflict  models.PendingConflict
	expiresAt time.Time
}

// MemoryConflictStore is a mutex-guarded in-process store with lazy expiry,
// used in tests and in Redis-less deployments.
type MemoryConflictStore struct {
	mu      sync.Mutex
	entries map[string]memoryConflictEntry
	now     func() time.Time
}

// NewMemoryConflictStore constructs the store.
func NewMemoryConflictStore() *MemoryConflictStore {
	return &MemoryConflictStore{
		entries: make(map[string]memoryConflictEntry),
		now:     time.Now,
	}
}

// Get returns the pending conflict for the user, dropping it if expired.
func (s *MemoryConflictStore) Get(ctx context.Context, userID string) (*models.PendingConflict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[userID]
	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		delete(s.entries, userID)
		return nil, nil
	}
	pc := entry.conflict
	return &pc, nil
}

// Put stores the pending conflict with the given TTL; ttl <= 0 means no expiry.
func (s *MemoryConflictStore) Put(ctx context.Context, userID string, pc models.PendingConflict, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memoryConflictEntry{conflict: pc}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.entries[userID] = entry
	return nil
}

// Delete clears the pending conflict; deleting a missing entry is a no-op.
func (s *MemoryConflictStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, userID)
	return nil
}
