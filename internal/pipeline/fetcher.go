package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/govsift/govsift/internal/cache"
	"github.com/govsift/govsift/internal/util"
	"github.com/govsift/govsift/internal/worker"
)

// Fetcher retrieves document bytes for content analysis. Responses are
// cached so repeated runs against the same result set do not re-download.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	store      cache.Cache
	robots     *util.RobotsChecker
	limiter    *worker.DomainLimiter
}

// NewFetcher creates a fetcher. store may be a Nop cache; robots and
// limiter may be nil to disable those gates.
func NewFetcher(timeout time.Duration, userAgent string, maxBytes int64, store cache.Cache, robots *util.RobotsChecker, limiter *worker.DomainLimiter) *Fetcher {
	if store == nil {
		store = cache.Nop{}
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("stopped after 5 redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
		maxBytes:  maxBytes,
		store:     store,
		robots:    robots,
		limiter:   limiter,
	}
}

// FetchResult contains the raw document bytes and response metadata
type FetchResult struct {
	Data        []byte
	ContentType string
	FinalURL    string
	FromCache   bool
}

// Fetch retrieves the document at rawURL, consulting the cache first
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	key := cache.Key(rawURL)

	if data, ok := f.store.Get(key); ok {
		return &FetchResult{Data: data, FinalURL: rawURL, FromCache: true}, nil
	}

	if f.robots != nil && !f.robots.IsAllowed(ctx, rawURL) {
		return nil, fmt.Errorf("disallowed by robots.txt: %s", rawURL)
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, rawURL); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/pdf,text/html,application/xhtml+xml,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	limitedReader := io.LimitReader(resp.Body, f.maxBytes)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	_ = f.store.Set(key, body, 0)

	return &FetchResult{
		Data:        body,
		ContentType: resp.Header.Get("Content-Type"),
		FinalURL:    resp.Request.URL.String(),
	}, nil
}
