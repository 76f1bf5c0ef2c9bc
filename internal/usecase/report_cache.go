package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

const reportGenerationKey = "reports:generation"

// ReportCache stores computed reports keyed by a ledger generation. Any ledger
// write bumps the generation, which orphans every previously cached report.
// A nil *ReportCache is valid and caches nothing.
type ReportCache struct {
	cache Cache
	idGen IDGenerator
	ttl   time.Duration
}

// NewReportCache creates a ReportCache.
func NewReportCache(cache Cache, idGen IDGenerator, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = DefaultReportCacheTTL
	}

	return &ReportCache{cache: cache, idGen: idGen, ttl: ttl}
}

// Invalidate starts a new generation.
func (c *ReportCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}

	if err := c.cache.Set(ctx, reportGenerationKey, []byte(c.idGen.Generate()), 0); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to invalidate report cache")
	}
}

func (c *ReportCache) key(ctx context.Context, name string) (string, error) {
	gen, err := c.cache.Get(ctx, reportGenerationKey)
	if errors.Is(err, ErrCacheMiss) {
		gen = []byte(c.idGen.Generate())
		err = c.cache.Set(ctx, reportGenerationKey, gen, 0)
	}
	if err != nil {
		return "", err
	}

	return "reports:" + string(gen) + ":" + name, nil
}

// load resolves the cache key of name under the current generation and decodes
// a cached report into dst. The returned key is empty when the cache is
// unavailable; callers store under that key so a report built before an
// Invalidate never lands in the newer generation.
func (c *ReportCache) load(ctx context.Context, name string, dst any) (string, bool) {
	if c == nil {
		return "", false
	}

	key, err := c.key(ctx, name)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("report cache unavailable")
		return "", false
	}

	data, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("report cache read failed")
		}
		return key, false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("discarding undecodable cached report")
		return key, false
	}

	return key, true
}

func (c *ReportCache) store(ctx context.Context, key string, v any) {
	if c == nil || key == "" {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		return
	}

	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("report cache write failed")
	}
}
