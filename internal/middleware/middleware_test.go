package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddleware(t *testing.T) {
	const secret = "test-secret"

	r := gin.New()
	r.GET("/me", AuthMiddleware(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user":       c.MustGet(ContextUserID).(uint),
			"barbershop": c.MustGet(ContextBarbershopID).(uint),
		})
	})

	valid, err := IssueToken(secret, 3, 9, "owner", time.Now())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	expired, _ := IssueToken(secret, 3, 9, "owner", time.Now().Add(-48*time.Hour))
	foreign, _ := IssueToken("other-secret", 3, 9, "owner", time.Now())

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer " + valid, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rw := httptest.NewRecorder()
			r.ServeHTTP(rw, req)

			if rw.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rw.Code, rw.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	rw := httptest.NewRecorder()
	r.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rw.Header().Get(RequestIDHeader)
	if generated == "" || rw.Body.String() != generated {
		t.Fatalf("expected generated id echoed, got header %q body %q", generated, rw.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rw = httptest.NewRecorder()
	r.ServeHTTP(rw, req)
	if rw.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("expected incoming id to be kept, got %q", rw.Header().Get(RequestIDHeader))
	}
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(nil))
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rw := httptest.NewRecorder()
	r.ServeHTTP(rw, req)

	if rw.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rw.Code)
	}
	if rw.Header().Get("Access-Control-Allow-Origin") != "https://app.example.com" {
		t.Fatal("expected origin to be echoed")
	}
}

func TestCORSAllowList(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://barbearia.com.br/"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	for origin, allowed := range map[string]bool{
		"https://barbearia.com.br": true,
		"https://evil.example.com": false,
	} {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", origin)
		rw := httptest.NewRecorder()
		r.ServeHTTP(rw, req)

		got := rw.Header().Get("Access-Control-Allow-Origin") == origin
		if got != allowed {
			t.Fatalf("origin %s: allowed=%v, want %v", origin, got, allowed)
		}
	}
}

func TestMemoryLimiter(t *testing.T) {
	l := NewMemoryLimiter(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if ok, _ := l.Allow(ctx, "1.1.1.1"); !ok {
			t.Fatalf("request %d should pass", i)
		}
	}
	if ok, _ := l.Allow(ctx, "1.1.1.1"); ok {
		t.Fatal("4th request should be limited")
	}
	if ok, _ := l.Allow(ctx, "2.2.2.2"); !ok {
		t.Fatal("other ip has its own bucket")
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func TestRateLimit(t *testing.T) {
	serve := func(l Limiter, failOpen bool) int {
		r := gin.New()
		r.Use(RateLimit(l, failOpen))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
		rw := httptest.NewRecorder()
		r.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/", nil))
		return rw.Code
	}

	if code := serve(failingLimiter{}, true); code != http.StatusOK {
		t.Fatalf("fail open must let request through, got %d", code)
	}
	if code := serve(failingLimiter{}, false); code != http.StatusServiceUnavailable {
		t.Fatalf("fail closed must return 503, got %d", code)
	}

	l := NewMemoryLimiter(1)
	serve(l, true)
	if code := serve(l, true); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}
}

func TestIdempotency_ReplaysSuccess(t *testing.T) {
	store := NewMemoryIdempotencyStore(time.Hour)
	defer store.Stop()

	calls := 0
	r := gin.New()
	r.POST("/book", Idempotency(store), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	})

	send := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/book", nil)
		if key != "" {
			req.Header.Set(IdempotencyHeader, key)
		}
		rw := httptest.NewRecorder()
		r.ServeHTTP(rw, req)
		return rw
	}

	first := send("k1")
	second := send("k1")
	if calls != 1 {
		t.Fatalf("handler must run once, ran %d times", calls)
	}
	if second.Code != http.StatusCreated || second.Body.String() != first.Body.String() {
		t.Fatalf("expected replay of %q, got %d %q", first.Body.String(), second.Code, second.Body.String())
	}
	if second.Header().Get("Idempotent-Replayed") != "true" {
		t.Fatal("expected replay header")
	}

	send("")
	send("")
	if calls != 3 {
		t.Fatalf("requests without key are never cached, calls=%d", calls)
	}
}

func TestIdempotency_DoesNotCacheErrors(t *testing.T) {
	store := NewMemoryIdempotencyStore(time.Hour)
	defer store.Stop()

	calls := 0
	r := gin.New()
	r.POST("/book", Idempotency(store), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusConflict, gin.H{"error": "slot_conflict"})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/book", nil)
		req.Header.Set(IdempotencyHeader, "k2")
		r.ServeHTTP(httptest.NewRecorder(), req)
	}
	if calls != 2 {
		t.Fatalf("error responses must not be replayed, calls=%d", calls)
	}
}

func TestIdempotency_ScopedPerTenantAndBody(t *testing.T) {
	store := NewMemoryIdempotencyStore(time.Hour)
	defer store.Stop()

	calls := 0
	r := gin.New()
	r.POST("/me/appointments",
		func(c *gin.Context) {
			if shop := c.GetHeader("X-Shop"); shop != "" {
				id, _ := strconv.Atoi(shop)
				c.Set(ContextBarbershopID, uint(id))
			}
			c.Next()
		},
		Idempotency(store),
		func(c *gin.Context) {
			calls++
			body, _ := io.ReadAll(c.Request.Body)
			c.JSON(http.StatusCreated, gin.H{"shop": c.GetHeader("X-Shop"), "body": string(body)})
		},
	)

	send := func(shop, body string) string {
		req := httptest.NewRequest(http.MethodPost, "/me/appointments", strings.NewReader(body))
		req.Header.Set(IdempotencyHeader, "same-key")
		if shop != "" {
			req.Header.Set("X-Shop", shop)
		}
		rw := httptest.NewRecorder()
		r.ServeHTTP(rw, req)
		return rw.Body.String()
	}

	first := send("1", `{"time":"10:00"}`)
	other := send("2", `{"time":"10:00"}`)
	if other == first || !strings.Contains(other, `"shop":"2"`) {
		t.Fatalf("tenant 2 received tenant 1 response: %s", other)
	}

	if replay := send("1", `{"time":"10:00"}`); replay != first {
		t.Fatalf("same tenant and body must replay, got %s", replay)
	}

	// público: mesmo IP, corpo diferente é outra operação
	a := send("", `{"customer":"ana"}`)
	b := send("", `{"customer":"bruno"}`)
	if a == b || !strings.Contains(b, "bruno") {
		t.Fatalf("different bodies must not share a replay: %s", b)
	}

	if calls != 4 {
		t.Fatalf("expected 4 handler runs, got %d", calls)
	}
}
