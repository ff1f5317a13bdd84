package store

import (
	"ciesta/internal/core/port"
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

type Options struct {
	Driver    string
	Path      string
	RedisAddr string
	RedisKey  string
}

// Open builds the configured backend. The returned close func is never nil.
func Open(ctx context.Context, opts Options) (port.UserStore, func() error, error) {
	noop := func() error { return nil }

	switch opts.Driver {
	case DriverJSON, "":
		s, err := NewJSON(opts.Path)
		return s, noop, err
	case DriverSQLite:
		s, err := OpenSQLite(opts.Path)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case DriverRedis:
		client := redis.NewClient(&redis.Options{Addr: opts.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("redis ping %s: %w", opts.RedisAddr, err)
		}
		return NewRedis(client, opts.RedisKey), client.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}

// Must logs and exits when Open fails.
func Must(s port.UserStore, closeFn func() error, err error) (port.UserStore, func() error) {
	if err != nil {
		log.Fatal().Err(err).Msg("failed opening user store")
	}

	return s, closeFn
}
