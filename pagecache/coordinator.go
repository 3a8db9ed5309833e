package pagecache

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/hotelvalmont/cms-server/internal/locales"
)

// ForbiddenErr is returned when the bulk-revalidation secret does not match.
var ForbiddenErr = errors.New("invalid revalidation secret")

// DefaultRoutes is the fixed set of public top-level routes, used when a
// bulk revalidation names no explicit paths.
var DefaultRoutes = []string{
	"/",
	"/chambres",
	"/galerie",
	"/evenements",
	"/seminaires",
	"/bons-cadeaux",
	"/contact",
	"/mentions-legales",
}

// Coordinator turns logical page paths into the full set of locale-qualified
// cached renderings and drops each of them. The fan-out is unconditional:
// shadow-locale fields live on the same records as canonical ones, so every
// locale variant of an affected page derives from the data that just changed.
type Coordinator struct {
	cache  *Cache
	secret string
	log    zerolog.Logger
}

// NewCoordinator wires the coordinator to a cache. secret gates
// BulkInvalidate; when empty, every bulk request is rejected.
func NewCoordinator(cache *Cache, secret string, logger zerolog.Logger) *Coordinator {
	return &Coordinator{cache: cache, secret: secret, log: logger}
}

// Invalidate drops the rendering of every logical path under every supported
// locale, default included. Cache-layer failures are logged and skipped: a
// content write that already committed must not fail because of them.
func (c *Coordinator) Invalidate(ctx context.Context, logicalPaths []string) []string {
	invalidated := make([]string, 0, len(logicalPaths)*len(locales.Supported))
	for _, logical := range logicalPaths {
		for _, path := range locales.Expand(logical) {
			if err := c.cache.Delete(ctx, path); err != nil {
				c.log.Error().Err(err).Str("path", path).Msg("cache invalidation failed")
				continue
			}
			invalidated = append(invalidated, path)
		}
	}
	return invalidated
}

// BulkInvalidate is the secret-gated entry point for infrastructure-driven
// refreshes. It fails closed on a wrong (or unconfigured) secret. With no
// explicit paths it expands the full DefaultRoutes list.
func (c *Coordinator) BulkInvalidate(ctx context.Context, secret string, logicalPaths []string) ([]string, error) {
	if c.secret == "" || secret != c.secret {
		return nil, ForbiddenErr
	}

	if len(logicalPaths) == 0 {
		logicalPaths = DefaultRoutes
	}
	return c.Invalidate(ctx, logicalPaths), nil
}
