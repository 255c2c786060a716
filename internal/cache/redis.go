package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewRedis conecta e faz um PING. Addr vazio devolve (nil, nil):
// quem usa cai para a versão em memória.
func NewRedis(ctx context.Context, opts Options) (*redis.Client, error) {
	if opts.Addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return rdb, nil
}
