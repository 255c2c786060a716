package verification

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Record é um código pendente para um destino (telefone ou e-mail).
type Record struct {
	Code      string    `json:"code"`
	Attempts  int       `json:"attempts"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (r *Record) expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// Store guarda códigos de vida curta. Get de chave expirada é "não achou".
type Store interface {
	Save(ctx context.Context, key string, rec Record) error
	Get(ctx context.Context, key string) (*Record, bool, error)
	Delete(ctx context.Context, key string) error
}

// ------------------------------------------------------
// Em memória
// ------------------------------------------------------

type MemoryStore struct {
	mu      sync.Mutex
	records map[string]Record
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
		now:     time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, key string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, r := range s.records {
		if r.expired(now) {
			delete(s.records, k)
		}
	}
	s.records[key] = rec
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (*Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok {
		return nil, false, nil
	}
	if rec.expired(s.now()) {
		delete(s.records, key)
		return nil, false, nil
	}
	return &rec, true, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.records, key)
	s.mu.Unlock()
	return nil
}

// ------------------------------------------------------
// Redis
// ------------------------------------------------------

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Save(ctx context.Context, key string, rec Record) error {
	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, key)
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, "verify:"+key, raw, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Record, bool, error) {
	raw, err := s.rdb.Get(ctx, "verify:"+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, false, err
	}
	return &rec, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, "verify:"+key).Err()
}
