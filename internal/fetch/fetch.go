// Package fetch pulls raw feed payloads over HTTP. All sources in a
// batch are requested concurrently with an individual timeout, so one
// dead source can never stall or fail the batch.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/domain"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/logger"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/retry"
)

const (
	userAgent   = "nuuz-ingest/1.0 (+https://nuuz.app)"
	maxBodySize = 10 << 20 // 10 MiB cap on any single response
)

// Result is the outcome of fetching one source. Exactly one of Body or
// Err is meaningful; a failed source contributes an empty payload.
type Result struct {
	Source domain.Source
	Body   []byte
	Err    error
}

type Fetcher struct {
	client  *http.Client
	proxies []string
}

// New builds a fetcher. proxies is the ordered list of neutral
// forwarding proxies tried when a direct request is refused.
func New(proxies []string) *Fetcher {
	return &Fetcher{
		// Per-request deadlines come from contexts, not the client.
		client:  &http.Client{},
		proxies: proxies,
	}
}

// FetchAll requests every source concurrently, each bounded by
// perSourceTimeout. The batch settles once every source has either
// resolved or timed out; its wall-clock time is bounded by the slowest
// single timeout, not the sum. Failures are logged and returned as
// empty results, never as a batch error.
func (f *Fetcher) FetchAll(ctx context.Context, sources []domain.Source, perSourceTimeout time.Duration) []Result {
	results := make(chan Result, len(sources))
	var wg sync.WaitGroup

	for _, source := range sources {
		wg.Add(1)
		go func(s domain.Source) {
			defer wg.Done()
			body, err := f.fetchWithFallback(ctx, s.FeedURL, perSourceTimeout)
			results <- Result{Source: s, Body: body, Err: err}
		}(source)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]Result, 0, len(sources))
	for r := range results {
		if r.Err != nil {
			logger.Warn("feed fetch failed", "source", r.Source.Name, "url", r.Source.FeedURL, "error", r.Err)
		}
		out = append(out, r)
	}
	return out
}

// FetchArticlePage retrieves a single article page for the reader view.
// This path is slower and more patient than bulk ingestion: a longer
// timeout, bounded retries with linear backoff, and full cancellation
// through ctx if the reader is closed before completion.
func (f *Fetcher) FetchArticlePage(ctx context.Context, pageURL string, timeout time.Duration, attempts int, backoff time.Duration) ([]byte, error) {
	var body []byte

	err := retry.Do(ctx, retry.Config{MaxAttempts: attempts, Delay: backoff, Linear: true}, func() error {
		b, err := f.fetchWithFallback(ctx, pageURL, timeout)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch article %s: %w", pageURL, err)
	}
	return body, nil
}

// fetchWithFallback tries the direct URL first, then walks the proxy
// list in order until one succeeds. Context cancellation short-circuits
// the walk.
func (f *Fetcher) fetchWithFallback(ctx context.Context, target string, timeout time.Duration) ([]byte, error) {
	body, err := f.get(ctx, target, timeout)
	if err == nil {
		return body, nil
	}
	directErr := err

	for _, proxy := range f.proxies {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		proxied := proxy + url.QueryEscape(target)
		body, err = f.get(ctx, proxied, timeout)
		if err == nil {
			logger.Debug("fetched via proxy", "proxy", proxy, "url", target)
			return body, nil
		}
	}

	return nil, fmt.Errorf("direct and proxied fetch failed: %w", directErr)
}

func (f *Fetcher) get(ctx context.Context, rawURL string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, text/html, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
