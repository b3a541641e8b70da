// Package images extracts and upgrades representative article images.
// Resolution for already-displayed articles is a deferred best-effort
// path: it runs in small rate-limited batches so it never blocks the
// primary feed.
package images

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/cache"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/domain"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/logger"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/metrics"
)

// PageFetcher retrieves a single article page. Satisfied by
// fetch.Fetcher's deep-fetch path.
type PageFetcher interface {
	FetchArticlePage(ctx context.Context, pageURL string, timeout time.Duration, attempts int, backoff time.Duration) ([]byte, error)
}

type ResolverConfig struct {
	BatchSize  int
	BatchDelay time.Duration
	CacheTTL   time.Duration
	Timeout    time.Duration
}

// Resolver fills in images for articles whose feeds carried none, by
// fetching the linked page and mining its metadata.
type Resolver struct {
	fetcher PageFetcher
	cache   *cache.Cache
	limiter *rate.Limiter
	cfg     ResolverConfig
}

func NewResolver(fetcher PageFetcher, c *cache.Cache, cfg ResolverConfig) *Resolver {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 4
	}
	if cfg.BatchDelay <= 0 {
		cfg.BatchDelay = 500 * time.Millisecond
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	// One page fetch per BatchDelay on average, with a burst of one
	// batch. Keeps the resolver polite toward origin sites.
	limiter := rate.NewLimiter(rate.Every(cfg.BatchDelay), cfg.BatchSize)

	return &Resolver{
		fetcher: fetcher,
		cache:   c,
		limiter: limiter,
		cfg:     cfg,
	}
}

// ResolveMissing returns image URLs for the given articles, keyed by
// article ID. Articles that already carry an image are skipped. Every
// failure is silent beyond a log line: this path is cosmetic.
func (r *Resolver) ResolveMissing(ctx context.Context, articles []domain.Article) map[string]string {
	resolved := make(map[string]string)

	for _, a := range articles {
		if a.ImageURL != "" || a.URL == "" {
			continue
		}

		if cached, ok := r.cache.Get(cacheKey(a.URL)); ok {
			if img, ok := cached.(string); ok && img != "" {
				resolved[a.ID] = img
			}
			continue
		}

		if err := r.limiter.Wait(ctx); err != nil {
			return resolved // cancelled; return what we have
		}

		img := r.resolveOne(ctx, a.URL)
		// Cache misses too, so a page without imagery is not refetched
		// on every feed render.
		r.cache.Set(cacheKey(a.URL), img, r.cfg.CacheTTL)

		if img != "" {
			resolved[a.ID] = img
			metrics.Global.IncrementImagesResolved()
		}
	}

	return resolved
}

func (r *Resolver) resolveOne(ctx context.Context, pageURL string) string {
	// Single attempt; the deferred path does not retry a page that a
	// user may never scroll back to.
	body, err := r.fetcher.FetchArticlePage(ctx, pageURL, r.cfg.Timeout, 1, 0)
	if err != nil {
		logger.Debug("image resolution fetch failed", "url", pageURL, "error", err)
		return ""
	}
	return FromPage(string(body))
}

func cacheKey(pageURL string) string {
	return "img:" + pageURL
}
