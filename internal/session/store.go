package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL is how long a session stays valid after login, slightly longer
// than the 24h token lifetime so the token always expires first.
const DefaultTTL = 25 * time.Hour

// Session is what the auth layer tracks per issued token.
type Session struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Store tracks active sessions keyed by token. A process-local map does not
// survive horizontal scaling, so the store is injected: single-instance
// deployments use MemoryStore, multi-instance ones use RedisStore.
type Store interface {
	Set(ctx context.Context, token string, sess Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Has(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, token string) error
	SweepExpired(ctx context.Context) error
}

// MemoryStore keeps sessions in an in-process map guarded by a mutex.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
	}
}

func (s *MemoryStore) Set(ctx context.Context, token string, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = sess
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[token]
	if !ok || time.Since(sess.CreatedAt) > s.ttl {
		return nil, nil
	}
	return &sess, nil
}

func (s *MemoryStore) Has(ctx context.Context, token string) (bool, error) {
	sess, err := s.Get(ctx, token)
	return sess != nil, err
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *MemoryStore) SweepExpired(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for token, sess := range s.sessions {
		if now.Sub(sess.CreatedAt) > s.ttl {
			delete(s.sessions, token)
		}
	}
	return nil
}

// Size returns the number of tracked sessions, expired ones included.
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

const sessionKeyPrefix = "session:"

// RedisStore keeps sessions in redis with a TTL so they survive restarts and
// are shared across instances.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

func (s *RedisStore) Set(ctx context.Context, token string, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(token), data, s.ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisStore) Has(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}

// SweepExpired is a no-op for redis; key TTLs already expire sessions.
func (s *RedisStore) SweepExpired(ctx context.Context) error {
	return nil
}
