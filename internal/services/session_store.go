package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"

	"quote-service/internal/database/redis"
	"quote-service/internal/models"
)

// ErrResultNotFound is returned when a session has no stored result.
var ErrResultNotFound = errors.New("quote result not found")

// ResultStore keeps the current quote result per form session. It is a
// TTL-bound cache of the latest submission, not lead persistence: every
// new submission replaces the prior result and the entry expires on its
// own.
type ResultStore interface {
	Save(ctx context.Context, sessionID string, result models.QuoteResult) error
	Get(ctx context.Context, sessionID string) (*models.QuoteResult, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisResultStore stores results in Redis with a TTL.
type RedisResultStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisResultStore(client *redis.Client, ttl time.Duration) *RedisResultStore {
	return &RedisResultStore{client: client, ttl: ttl}
}

func resultKey(sessionID string) string {
	return "quote:result:" + sessionID
}

func (s *RedisResultStore) Save(ctx context.Context, sessionID string, result models.QuoteResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal quote result: %w", err)
	}
	if err := s.client.GetClient().Set(ctx, resultKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store quote result: %w", err)
	}
	return nil
}

func (s *RedisResultStore) Get(ctx context.Context, sessionID string) (*models.QuoteResult, error) {
	data, err := s.client.GetClient().Get(ctx, resultKey(sessionID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read quote result: %w", err)
	}
	var result models.QuoteResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quote result: %w", err)
	}
	return &result, nil
}

func (s *RedisResultStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.GetClient().Del(ctx, resultKey(sessionID)).Err()
}

// MemoryResultStore is the in-process fallback used in tests and when
// Redis is unavailable. Entries expire lazily on read.
type MemoryResultStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

type memoryEntry struct {
	result    models.QuoteResult
	expiresAt time.Time
}

func NewMemoryResultStore(ttl time.Duration) *MemoryResultStore {
	return &MemoryResultStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryResultStore) Save(_ context.Context, sessionID string, result models.QuoteResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = memoryEntry{
		result:    result,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryResultStore) Get(_ context.Context, sessionID string) (*models.QuoteResult, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrResultNotFound
	}
	result := entry.result
	return &result, nil
}

func (s *MemoryResultStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}
