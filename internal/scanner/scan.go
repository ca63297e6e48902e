package scanner

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	consts "github.com/headcheck/headcheck/internal/shared/constants"
)

// Config controls a Scanner. Zero values fall back to the shared defaults.
type Config struct {
	Timeout   time.Duration // bound per fetch attempt
	UserAgent string        // outbound User-Agent header
	Logger    *zap.Logger
}

// Scanner fetches a target URL and inspects its response headers against the
// checklist. A Scanner is stateless and safe for concurrent use.
type Scanner struct {
	timeout   time.Duration
	userAgent string
	logger    *zap.Logger
	client    *http.Client
}

// New builds a Scanner from cfg, applying defaults for unset fields.
func New(cfg Config) *Scanner {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = consts.ScanTimeout
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = consts.ScanUserAgent
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scanner{
		timeout:   timeout,
		userAgent: userAgent,
		logger:    logger,
		client:    &http.Client{Timeout: timeout},
	}
}

// Scan validates rawURL, fetches it with the HEAD-then-GET policy, and
// reports the presence of each checklist header.
//
// Invalid input returns a *ValidationError before any network activity. When
// both fetch attempts fail the scan returns an *UnreachableError wrapping the
// last transport error. There is no partial report: a scan either yields a
// full checklist or an error.
func (s *Scanner) Scan(ctx context.Context, rawURL string) (*Report, error) {
	target, err := parseTarget(rawURL)
	if err != nil {
		return nil, err
	}

	headers, err := s.fetch(ctx, target.String())
	if err != nil {
		return nil, err
	}

	results := inspect(headers)

	return &Report{
		URL:       target.String(),
		Timestamp: time.Now().UTC(),
		Results:   results,
		Summary:   summarize(results),
	}, nil
}

// parseTarget validates raw user input and normalizes it into an absolute
// http(s) URL.
func parseTarget(rawURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, &ValidationError{Message: "URL is required"}
	}

	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, &ValidationError{Message: "Invalid URL format"}
	}

	return u, nil
}

// fetch probes the target with a HEAD request and falls back to GET when HEAD
// fails for any reason; some servers disallow HEAD. Two attempts at most.
func (s *Scanner) fetch(ctx context.Context, target string) (http.Header, error) {
	headers, err := s.attempt(ctx, http.MethodHead, target)
	if err == nil {
		return headers, nil
	}

	s.logger.Debug("HEAD attempt failed, retrying with GET",
		zap.String("url", target),
		zap.Error(err))

	headers, err = s.attempt(ctx, http.MethodGet, target)
	if err != nil {
		return nil, &UnreachableError{Message: "Could not reach the target URL", Err: err}
	}

	return headers, nil
}

// attempt performs a single bounded request and returns the response headers.
// Redirects are followed by the client's default policy.
func (s *Scanner) attempt(ctx context.Context, method, target string) (http.Header, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.Header, nil
}

// inspect evaluates every checklist entry against the response headers, in
// checklist order.
func inspect(headers http.Header) []CheckResult {
	results := make([]CheckResult, 0, len(checklist))
	for _, check := range checklist {
		results = append(results, check.evaluate(headers))
	}
	return results
}
