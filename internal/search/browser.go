package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kevin-rs/duckduckgo/internal/cache"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultTimeout for HTTP requests
	DefaultTimeout = 30 * time.Second

	// MaxContentSize caps how much of a response body is read (10MB)
	MaxContentSize = 10 * 1024 * 1024

	// DefaultMaxPages bounds image/news pagination when no limit is given
	DefaultMaxPages = 50

	// DefaultAcceptLanguage is sent when no language is configured
	DefaultAcceptLanguage = "en-US,en;q=0.9"

	// DefaultRegion is DuckDuckGo's "no region" code
	DefaultRegion = "wt-wt"

	// tokenTTL is how long a vqd token is reused for the same query
	tokenTTL = 5 * time.Minute
)

// Endpoints holds the upstream URLs. Tests point these at httptest servers.
type Endpoints struct {
	API    string // instant answer JSON API
	Site   string // HTML landing page, also sent as Referer
	Lite   string // text-only HTML results
	Images string // paginated image JSON
	News   string // paginated news JSON
}

// DefaultEndpoints returns the public DuckDuckGo endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		API:    "https://api.duckduckgo.com/",
		Site:   "https://duckduckgo.com/",
		Lite:   "https://lite.duckduckgo.com/lite/",
		Images: "https://duckduckgo.com/i.js",
		News:   "https://duckduckgo.com/news.js",
	}
}

// Origin is the site URL without a trailing slash. Relative image paths in
// instant answers are resolved against it.
func (e Endpoints) Origin() string {
	return strings.TrimRight(e.Site, "/")
}

// Options configures a Browser.
type Options struct {
	UserAgent      string
	AcceptLanguage string
	Endpoints      Endpoints
	// MaxPages caps pagination; zero means DefaultMaxPages
	MaxPages int
}

// Browser talks to the DuckDuckGo endpoints and normalises their responses.
type Browser struct {
	client         *http.Client
	logger         *logrus.Logger
	userAgent      string
	acceptLanguage string
	endpoints      Endpoints
	maxPages       int
	tokens         *cache.Cache[string]
}

// NewBrowser creates a Browser on top of an already configured HTTP client.
// Zero-valued options fall back to the package defaults.
func NewBrowser(client *http.Client, logger *logrus.Logger, opts Options) *Browser {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	if opts.AcceptLanguage == "" {
		opts.AcceptLanguage = DefaultAcceptLanguage
	}
	if opts.Endpoints == (Endpoints{}) {
		opts.Endpoints = DefaultEndpoints()
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = DefaultMaxPages
	}
	return &Browser{
		client:         client,
		logger:         logger,
		userAgent:      opts.UserAgent,
		acceptLanguage: opts.AcceptLanguage,
		endpoints:      opts.Endpoints,
		maxPages:       opts.MaxPages,
		tokens:         cache.NewCache[string](tokenTTL),
	}
}

// Endpoints returns the endpoints this browser talks to.
func (b *Browser) Endpoints() Endpoints {
	return b.endpoints
}

// Request sends a single request with the fixed header set and returns the
// response body. Params are appended to the query string in order, for POST
// requests too. Non-2xx responses yield an *UpstreamStatusError and failures
// below HTTP a *TransportError. There is no retry.
func (b *Browser) Request(ctx context.Context, method, rawURL, userAgent string, params Params) ([]byte, error) {
	reqURL := appendQuery(rawURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", b.endpoints.Site)
	req.Header.Set("Accept-Language", b.acceptLanguage)

	b.logger.WithFields(logrus.Fields{
		"method": method,
		"url":    reqURL,
	}).Debug("Sending DuckDuckGo request")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, URL: reqURL, Err: err}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			b.logger.WithError(closeErr).Warn("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxContentSize))
	if err != nil {
		return nil, &TransportError{Method: method, URL: reqURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	b.logger.WithFields(logrus.Fields{
		"status_code":   resp.StatusCode,
		"content_type":  resp.Header.Get("Content-Type"),
		"response_size": len(body),
	}).Debug("Received DuckDuckGo response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamStatusError{URL: reqURL, StatusCode: resp.StatusCode, Body: excerpt(body)}
	}

	return body, nil
}

func appendQuery(rawURL, query string) string {
	if query == "" {
		return rawURL
	}
	switch {
	case strings.HasSuffix(rawURL, "?"), strings.HasSuffix(rawURL, "&"):
		return rawURL + query
	case strings.Contains(rawURL, "?"):
		return rawURL + "&" + query
	default:
		return rawURL + "?" + query
	}
}

func safeSearchParam(safe bool, on, off string) string {
	if safe {
		return on
	}
	return off
}
