package storage

import (
	"context"
	"errors"
	"fmt"
)

const (
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

type Options struct {
	Driver      string
	Path        string
	RedisURL    string
	RedisPrefix string
}

// Open builds the KV backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (KV, error) {
	switch opts.Driver {
	case "", DriverSQLite3, DriverSQLite:
		if opts.Path == "" {
			return nil, errors.New("storage: sqlite path is required")
		}
		return OpenSQLite(opts.Driver, opts.Path)
	case DriverRedis:
		if opts.RedisURL == "" {
			return nil, errors.New("storage: redis url is required")
		}
		prefix := opts.RedisPrefix
		if prefix == "" {
			prefix = "aitodo:"
		}
		return OpenRedis(ctx, opts.RedisURL, prefix)
	case DriverMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", opts.Driver)
	}
}
