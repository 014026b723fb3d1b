package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
)

// Options selects and configures a storage driver.
type Options struct {
	Driver      string // memory, file, postgres or redis
	Path        string
	DatabaseURL string
	RedisAddr   string
}

// Open returns the configured store and a function releasing its resources.
func Open(ctx context.Context, opts Options) (Store, func() error, error) {
	noop := func() error { return nil }

	switch opts.Driver {
	case "memory":
		return NewMemoryStore(), noop, nil
	case "", "file":
		s, err := OpenFileStore(opts.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	case "postgres":
		if opts.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("postgres storage requires DATABASE_URL")
		}
		db, err := sql.Open("pgx", opts.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		s := NewPostgresStore(db)
		if err := s.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return s, db.Close, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: opts.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("redis ping failed: %w", err)
		}
		return NewRedisStore(client, "storefront:"), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
