package store

import (
	"context"
	"fmt"
	"strings"
)

// Open selects a backend from a store URL:
//
//	""                      SQLite file in dir
//	sqlite://               SQLite file in dir
//	sqlite:///path/db.file  SQLite file at the given path
//	redis://host:port/db    Redis, keys namespaced by prefix
func Open(ctx context.Context, url, dir, prefix string) (KV, error) {
	url = strings.TrimSpace(url)
	switch {
	case url == "" || url == "sqlite://" || url == "sqlite":
		if strings.TrimSpace(dir) == "" {
			return nil, fmt.Errorf("store: no data dir for sqlite backend")
		}
		return OpenSQLiteKV(ctx, SQLitePath(dir))
	case strings.HasPrefix(url, "sqlite://"):
		return OpenSQLiteKV(ctx, strings.TrimPrefix(url, "sqlite://"))
	case strings.HasPrefix(url, "redis://"), strings.HasPrefix(url, "rediss://"):
		kv, err := OpenRedisKV(ctx, url, prefix)
		if err != nil {
			return nil, fmt.Errorf("store: redis: %w", err)
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("store: unsupported store url: %s", url)
	}
}
