package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Skotchmaster/stylehub/internal/logging"
)

var ErrNotFound = errors.New("key not found")

// Store keeps one serialized snapshot per key. Writes overwrite the whole value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type scoped struct {
	inner  Store
	prefix string
}

// Scoped prefixes every key with "session:{id}:".
func Scoped(inner Store, sessionID string) Store {
	return &scoped{inner: inner, prefix: "session:" + sessionID + ":"}
}

func (s *scoped) Get(ctx context.Context, key string) ([]byte, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key string, value []byte) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

func (s *scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// LoadJSON decodes the value under key into dst. A missing key leaves dst
// untouched and a malformed value resets it to its zero value; neither is an
// error. Only backend failures are returned.
func LoadJSON[T any](ctx context.Context, s Store, key string, dst *T) error {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logging.FromContext(ctx).Warn("store_corrupt_value", "key", key, "error", err)
		var zero T
		*dst = zero
		return nil
	}
	*dst = v
	return nil
}

func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
