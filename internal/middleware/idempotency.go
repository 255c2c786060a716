package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const IdempotencyHeader = "Idempotency-Key"

type CachedResponse struct {
	StatusCode  int       `json:"status"`
	ContentType string    `json:"content_type"`
	Body        []byte    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
}

type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*CachedResponse, bool, error)
	Set(ctx context.Context, key string, resp *CachedResponse) error
}

// ------------------------------------------------------
// Em memória
// ------------------------------------------------------

type MemoryIdempotencyStore struct {
	mu     sync.RWMutex
	store  map[string]*CachedResponse
	ttl    time.Duration
	stopCh chan struct{}
}

func NewMemoryIdempotencyStore(ttl time.Duration) *MemoryIdempotencyStore {
	s := &MemoryIdempotencyStore{
		store:  make(map[string]*CachedResponse),
		ttl:    ttl,
		stopCh: make(chan struct{}),
	}
	go s.cleanup()
	return s
}

func (s *MemoryIdempotencyStore) Get(_ context.Context, key string) (*CachedResponse, bool, error) {
	s.mu.RLock()
	resp, ok := s.store[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if time.Since(resp.CreatedAt) > s.ttl {
		s.mu.Lock()
		delete(s.store, key)
		s.mu.Unlock()
		return nil, false, nil
	}
	return resp, true, nil
}

func (s *MemoryIdempotencyStore) Set(_ context.Context, key string, resp *CachedResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp.CreatedAt = time.Now()
	s.store[key] = resp
	return nil
}

func (s *MemoryIdempotencyStore) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			for k, resp := range s.store {
				if time.Since(resp.CreatedAt) > s.ttl {
					delete(s.store, k)
				}
			}
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}

func (s *MemoryIdempotencyStore) Stop() {
	close(s.stopCh)
}

// ------------------------------------------------------
// Redis
// ------------------------------------------------------

type RedisIdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisIdempotencyStore(rdb *redis.Client, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{rdb: rdb, ttl: ttl}
}

func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) (*CachedResponse, bool, error) {
	raw, err := s.rdb.Get(ctx, "idem:"+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var resp CachedResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false, err
	}
	return &resp, true, nil
}

func (s *RedisIdempotencyStore) Set(ctx context.Context, key string, resp *CachedResponse) error {
	resp.CreatedAt = time.Now()
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, "idem:"+key, raw, s.ttl).Err()
}

// ------------------------------------------------------
// Middleware
// ------------------------------------------------------

type bodyCapture struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCapture) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// idempotencyScope isola a chave por barbearia (painel) ou por IP
// (agendamento público), mais o hash do corpo.
func idempotencyScope(c *gin.Context) (string, error) {
	scope := "ip:" + c.ClientIP()
	if id, ok := c.Get(ContextBarbershopID); ok {
		scope = fmt.Sprintf("shop:%v", id)
	}

	if c.Request.Body == nil {
		return scope, nil
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", err
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	sum := sha256.Sum256(body)
	return scope + ":" + hex.EncodeToString(sum[:]), nil
}

// Idempotency repete a resposta 2xx já dada para a mesma chave,
// no mesmo escopo e com o mesmo corpo.
// Sem o header a requisição segue normalmente.
func Idempotency(store IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		scope, err := idempotencyScope(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
			return
		}
		key = c.Request.Method + ":" + c.FullPath() + ":" + scope + ":" + key

		ctx := c.Request.Context()
		cached, found, err := store.Get(ctx, key)
		if err != nil {
			Logger(c).Warn("idempotency store get failed", zap.Error(err))
		}
		if found {
			c.Header("Idempotent-Replayed", "true")
			c.Data(cached.StatusCode, cached.ContentType, cached.Body)
			c.Abort()
			return
		}

		capture := &bodyCapture{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = capture

		c.Next()

		status := capture.Status()
		if status < 200 || status >= 300 {
			return
		}

		if err := store.Set(ctx, key, &CachedResponse{
			StatusCode:  status,
			ContentType: capture.Header().Get("Content-Type"),
			Body:        capture.body.Bytes(),
		}); err != nil {
			Logger(c).Warn("idempotency store set failed", zap.Error(err))
		}
	}
}
