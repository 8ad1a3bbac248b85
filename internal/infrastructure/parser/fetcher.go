package parser

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/3469335/referent-n/internal/domain"
	"github.com/3469335/referent-n/internal/ports"
)

const (
	defaultFetchTimeout = 30 * time.Second

	// Many origin servers reject requests that do not look like a browser.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	acceptHeader     = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	acceptLanguage   = "en-US,en;q=0.5"
)

// PageFetcher downloads raw article HTML under a hard wall-clock timeout.
// Retry policy, if any, belongs to the caller.
type PageFetcher struct {
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

var _ ports.HTMLFetcher = (*PageFetcher)(nil)

// NewPageFetcher wires an HTTP client; timeout defaults to 30s.
func NewPageFetcher(client *http.Client, timeout time.Duration, logger *slog.Logger) *PageFetcher {
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &PageFetcher{client: client, timeout: timeout, logger: logger}
}

// Fetch issues a single GET for the page and returns its raw HTML.
// Malformed URLs fail before any network activity; non-2xx statuses are
// classified (not_found, access_denied, server_error, upstream_error).
func (f *PageFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	parsed, err := parseAbsoluteURL(pageURL)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return "", domain.WrapError(domain.KindInvalidInput, err, "build request for %s", parsed.Host)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", domain.WrapError(domain.KindTimeout, err,
				"failed to fetch article within %s", f.timeout)
		}
		return "", domain.WrapError(domain.KindUpstream, err, "fetch %s", parsed.Host)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		f.debug("fetch failed", "host", parsed.Host, "status", resp.StatusCode)
		return "", domain.StatusError(resp.StatusCode, "failed to fetch article: %s", resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", domain.WrapError(domain.KindTimeout, err,
				"failed to fetch article within %s", f.timeout)
		}
		return "", domain.WrapError(domain.KindUpstream, err, "read body from %s", parsed.Host)
	}

	f.debug("fetched page", "host", parsed.Host, "bytes", len(raw))
	return string(raw), nil
}

func parseAbsoluteURL(raw string) (*url.URL, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, domain.WrapError(domain.KindInvalidInput, err, "invalid URL format")
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return nil, domain.NewError(domain.KindInvalidInput, "invalid URL format: %q", raw)
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, domain.NewError(domain.KindInvalidInput, "unsupported URL scheme: %q", parsed.Scheme)
	}
	return parsed, nil
}

func (f *PageFetcher) debug(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Debug(msg, args...)
	}
}
