package diferenco

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/zeebo/blake3"
)

type CacheOptions struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
}

// CachedDiffer memoizes diff results for token pairs. Returned slices are
// shared between callers and must not be modified.
type CachedDiffer struct {
	a     Algorithm
	cache *ristretto.Cache[string, []Change]
}

func NewCachedDiffer(a Algorithm, opts *CacheOptions) (*CachedDiffer, error) {
	cfg := &ristretto.Config[string, []Change]{
		NumCounters: 1e5,
		MaxCost:     1 << 20,
		BufferItems: 64,
	}
	if opts != nil {
		if opts.NumCounters > 0 {
			cfg.NumCounters = opts.NumCounters
		}
		if opts.MaxCost > 0 {
			cfg.MaxCost = opts.MaxCost
		}
		if opts.BufferItems > 0 {
			cfg.BufferItems = opts.BufferItems
		}
	}
	c, err := ristretto.NewCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("unable initialize diff cache, error: %w", err)
	}
	return &CachedDiffer{a: a, cache: c}, nil
}

// cacheKey hashes the algorithm and both token lists; every token is length
// prefixed so ["ab"] and ["a","b"] never collide.
func (d *CachedDiffer) cacheKey(a, b []string) string {
	h := blake3.New()
	var buf [binary.MaxVarintLen64]byte
	writeTokens := func(tokens []string) {
		_, _ = h.Write(buf[:binary.PutUvarint(buf[:], uint64(len(tokens)))])
		for _, t := range tokens {
			_, _ = h.Write(buf[:binary.PutUvarint(buf[:], uint64(len(t)))])
			_, _ = h.Write([]byte(t))
		}
	}
	_, _ = h.Write([]byte(d.a.String()))
	writeTokens(a)
	writeTokens(b)
	return string(h.Sum(nil))
}

func (d *CachedDiffer) Diff(ctx context.Context, a, b []string) ([]Change, error) {
	key := d.cacheKey(a, b)
	if changes, ok := d.cache.Get(key); ok {
		return changes, nil
	}
	changes, err := Diff(ctx, a, b, d.a)
	if err != nil {
		return nil, err
	}
	d.cache.Set(key, changes, int64(len(changes)+1))
	return changes, nil
}

// Wait blocks until pending cache writes are visible.
func (d *CachedDiffer) Wait() {
	d.cache.Wait()
}

func (d *CachedDiffer) Close() {
	d.cache.Close()
}

var (
	_ Differ = &CachedDiffer{}
)
