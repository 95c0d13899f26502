package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// GetJSON decodes the document stored under key into v. It reports false,
// leaving v untouched, when the key is absent.
func GetJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// PutJSON encodes v and stores it under key.
func PutJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// PutJSONIfAbsent stores v under key unless the key already holds a value.
// It reports whether a write happened.
func PutJSONIfAbsent(ctx context.Context, s Store, key string, v any) (bool, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if raw != nil {
		return false, nil
	}
	return true, PutJSON(ctx, s, key, v)
}

// NextID reserves an id from the decimal counter stored under key and
// advances the counter before returning. floor is the smallest acceptable
// id, normally one past the highest id already in use, and covers documents
// written without a counter.
func NextID(ctx context.Context, s Store, key string, floor int64) (int64, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to read id counter %s: %w", key, err)
	}

	next := max(floor, 1)
	if len(raw) > 0 {
		stored, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse id counter %s: %w", key, err)
		}
		next = max(next, stored)
	}

	if err := s.Set(ctx, key, []byte(strconv.FormatInt(next+1, 10))); err != nil {
		return 0, fmt.Errorf("failed to advance id counter %s: %w", key, err)
	}
	return next, nil
}
