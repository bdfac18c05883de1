package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by KV.Get when the key has no value.
var ErrNotFound = errors.New("storage: key not found")

// ErrMalformed wraps decode failures of stored values.
var ErrMalformed = errors.New("storage: malformed value")

// KV is the persistence adapter: opaque key to structured value.
// Writes are whole-value and last writer wins; nothing is merged.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// GetJSON decodes the value at key into v.
// It returns false with a nil error when the key is absent.
func GetJSON(ctx context.Context, kv KV, key string, v any) (bool, error) {
	data, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	return true, nil
}

// PutJSON encodes v and stores it under key.
func PutJSON(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: cannot encode %s: %w", key, err)
	}
	return kv.Put(ctx, key, data)
}

// Prefixed scopes every key of kv under prefix, so several profiles can
// share one database.
func Prefixed(kv KV, prefix string) KV {
	if prefix == "" {
		return kv
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &prefixedKV{kv: kv, prefix: prefix}
}

type prefixedKV struct {
	kv     KV
	prefix string
}

func (p *prefixedKV) Get(ctx context.Context, key string) ([]byte, error) {
	return p.kv.Get(ctx, p.prefix+key)
}

func (p *prefixedKV) Put(ctx context.Context, key string, value []byte) error {
	return p.kv.Put(ctx, p.prefix+key, value)
}

func (p *prefixedKV) Delete(ctx context.Context, key string) error {
	return p.kv.Delete(ctx, p.prefix+key)
}
