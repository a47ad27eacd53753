package store

import "context"

// KV is the persistence backend: a flat string-keyed, string-valued map.
// It plays the part browser local storage plays for the web page: every
// value is a scalar or a JSON document, and writers overwrite whole values.
type KV interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
