package validate

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/govsift/govsift/internal/model"
	"github.com/govsift/govsift/internal/worker"
)

// LinkChecker probes candidate URLs for reachability concurrently
type LinkChecker struct {
	httpClient *http.Client
	userAgent  string
	maxWorkers int
	limiter    *worker.DomainLimiter
}

// NewLinkChecker creates a link checker with the given timeout, worker
// bound and optional per-domain limiter (nil disables pacing)
func NewLinkChecker(timeout time.Duration, maxWorkers int, userAgent string, limiter *worker.DomainLimiter) *LinkChecker {
	if maxWorkers <= 0 {
		maxWorkers = 5
	}

	return &LinkChecker{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("stopped after 5 redirects")
				}
				return nil
			},
		},
		userAgent:  userAgent,
		maxWorkers: maxWorkers,
		limiter:    limiter,
	}
}

// Check probes every URL concurrently and returns validity keyed by URL.
// Duplicate URLs are probed once.
func (l *LinkChecker) Check(ctx context.Context, urls []string) map[string]model.LinkValidity {
	results := make(map[string]model.LinkValidity, len(urls))
	if len(urls) == 0 {
		return results
	}

	unique := make([]string, 0, len(urls))
	seen := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		unique = append(unique, u)
	}

	validities := make([]model.LinkValidity, len(unique))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, l.maxWorkers)

	for i, u := range unique {
		wg.Add(1)
		go func(idx int, rawURL string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				validities[idx] = model.LinkValidity{
					State:  model.LinkInvalid,
					Reason: "context cancelled",
				}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			validities[idx] = l.checkSingle(ctx, rawURL)
		}(i, u)
	}

	wg.Wait()

	for i, u := range unique {
		results[u] = validities[i]
	}
	return results
}

// checkSingle probes one URL with HEAD, falling back to GET when the
// server rejects HEAD
func (l *LinkChecker) checkSingle(ctx context.Context, rawURL string) model.LinkValidity {
	if l.limiter != nil {
		if err := l.limiter.Wait(ctx, rawURL); err != nil {
			return model.LinkValidity{State: model.LinkInvalid, Reason: "context cancelled"}
		}
	}

	resp, err := l.probe(ctx, http.MethodHead, rawURL)
	if err != nil {
		return classifyProbeError(err)
	}
	_ = resp.Body.Close()

	if resp.StatusCode == http.StatusMethodNotAllowed {
		resp, err = l.probe(ctx, http.MethodGet, rawURL)
		if err != nil {
			return classifyProbeError(err)
		}
		_ = resp.Body.Close()
	}

	return classifyStatus(resp.StatusCode)
}

func (l *LinkChecker) probe(ctx context.Context, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", l.userAgent)
	return l.httpClient.Do(req)
}

// classifyStatus maps an HTTP status to link validity. Forbidden counts
// as valid: government portals often gate HEAD probes behind access
// rules that do not apply to browser traffic.
func classifyStatus(code int) model.LinkValidity {
	switch {
	case code == http.StatusOK:
		return model.LinkValidity{State: model.LinkValid, StatusCode: code, Reason: "OK"}
	case code >= 300 && code < 400:
		return model.LinkValidity{State: model.LinkValid, StatusCode: code, Reason: "Redirect"}
	case code == http.StatusForbidden:
		return model.LinkValidity{State: model.LinkValid, StatusCode: code, Reason: "Forbidden (may still work)"}
	case code == http.StatusNotFound:
		return model.LinkValidity{State: model.LinkInvalid, StatusCode: code, Reason: "Not Found"}
	default:
		return model.LinkValidity{State: model.LinkInvalid, StatusCode: code, Reason: fmt.Sprintf("HTTP %d", code)}
	}
}

// classifyProbeError maps transport failures to link validity
func classifyProbeError(err error) model.LinkValidity {
	var certErr *tls.CertificateVerificationError
	msg := strings.ToLower(err.Error())

	switch {
	case errors.As(err, &certErr) || strings.Contains(msg, "certificate") || strings.Contains(msg, "tls"):
		return model.LinkValidity{State: model.LinkInvalid, Reason: "SSL Error"}
	case errors.Is(err, context.DeadlineExceeded) || strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return model.LinkValidity{State: model.LinkInvalid, Reason: "Timeout"}
	default:
		return model.LinkValidity{State: model.LinkInvalid, Reason: "Connection Error"}
	}
}
