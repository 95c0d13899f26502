package kv

import (
	"context"
	"strings"
)

// Prefixed scopes a Store to keys starting with prefix. Keys passed in and
// returned by List are relative to the prefix; Clear only removes keys in
// the scope. Closing a Prefixed store closes the underlying one.
func Prefixed(s Store, prefix string) Store {
	return &prefixed{inner: s, prefix: prefix}
}

type prefixed struct {
	inner  Store
	prefix string
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key string, value []byte) error {
	return p.inner.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.inner.Delete(ctx, p.prefix+key)
}

func (p *prefixed) List(ctx context.Context) (map[string][]byte, error) {
	all, err := p.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte)
	for k, v := range all {
		if rest, ok := strings.CutPrefix(k, p.prefix); ok {
			out[rest] = v
		}
	}
	return out, nil
}

func (p *prefixed) Clear(ctx context.Context) error {
	all, err := p.List(ctx)
	if err != nil {
		return err
	}
	for k := range all {
		if err := p.inner.Delete(ctx, p.prefix+k); err != nil {
			return err
		}
	}
	return nil
}

func (p *prefixed) Close() error {
	return p.inner.Close()
}
