package catalogue

import (
	"crypto/rsa"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/erasmus-without-paper/ewp-registry-service-sub002/pkg/manifest"
)

const (
	DefaultTTL             = 5 * time.Minute
	DefaultCleanupInterval = 10 * time.Minute
)

// Cached is a read-through cache in front of another Query. Answers are
// kept for the configured TTL, so catalogue changes become visible to
// admission only after it expires or Flush is called. Returned slices are
// shared between callers and must not be modified.
type Cached struct {
	next   Query
	cache  *gocache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

var _ Query = (*Cached)(nil)

// CachedOption configures a Cached query.
type CachedOption func(*Cached)

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(l *zap.Logger) CachedOption {
	return func(c *Cached) { c.logger = l }
}

// NewCached wraps next. A non-positive ttl selects DefaultTTL.
func NewCached(next Query, ttl time.Duration, opts ...CachedOption) *Cached {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cached{
		next:   next,
		cache:  gocache.New(ttl, DefaultCleanupInterval),
		ttl:    ttl,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// readThrough returns the cached value for key, computing and storing it
// with fn on a miss.
func readThrough[V any](c *Cached, key string, fn func() V) V {
	if value, found := c.cache.Get(key); found {
		if v, ok := value.(V); ok {
			c.logger.Debug("catalogue cache hit", zap.String("key", key))
			return v
		}
		c.logger.Error("wrong type in catalogue cache", zap.String("key", key))
	}
	v := fn()
	c.cache.Set(key, v, c.ttl)
	return v
}

func cacheKey(parts ...string) string {
	return strings.Join(parts, "\x00")
}

func (c *Cached) FindAPIs(heiID, namespace, localName string) []APIEntry {
	return readThrough(c, cacheKey("apis", heiID, namespace, localName), func() []APIEntry {
		return c.next.FindAPIs(heiID, namespace, localName)
	})
}

func (c *Cached) HEIsCoveredByClientKey(key *rsa.PublicKey) []string {
	return readThrough(c, cacheKey("client-heis", manifest.Fingerprint(key)), func() []string {
		return c.next.HEIsCoveredByClientKey(key)
	})
}

func (c *Cached) ServerKeysCoveringAPI(api APIEntry) []*rsa.PublicKey {
	key := cacheKey("server-keys", api.Namespace, api.LocalName, api.URL, api.Version,
		strings.Join(api.HEIs, ","), strconv.Itoa(api.host))
	return readThrough(c, key, func() []*rsa.PublicKey {
		return c.next.ServerKeysCoveringAPI(api)
	})
}

func (c *Cached) IsInstitutionCoveredByClientKey(heiID string, key *rsa.PublicKey) bool {
	return readThrough(c, cacheKey("covered", heiID, manifest.Fingerprint(key)), func() bool {
		return c.next.IsInstitutionCoveredByClientKey(heiID, key)
	})
}

// Flush drops every cached answer.
func (c *Cached) Flush() {
	c.cache.Flush()
}

// Len returns the number of cached answers.
func (c *Cached) Len() int {
	return c.cache.ItemCount()
}
