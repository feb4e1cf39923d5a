// Package httpclient builds the HTTP client used for every DuckDuckGo request.
package httpclient

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/kevin-rs/duckduckgo/internal/telemetry"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/publicsuffix"
)

// Options configures New.
type Options struct {
	Timeout time.Duration
	// Proxy is an http, https or socks5 URL. When empty the proxy environment
	// variables are consulted.
	Proxy string
	// Cookies keeps cookies between the requests of one run
	Cookies bool
}

// New creates an HTTP client with the configured proxy, cookie jar and
// timeout. The transport is wrapped with OTEL instrumentation when tracing is
// enabled.
func New(opts Options, logger *logrus.Logger) (*http.Client, error) {
	client := &http.Client{
		Timeout: opts.Timeout,
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil

	proxyURL, source := opts.Proxy, "flag"
	if proxyURL == "" && IsProxyConfigured() {
		proxyURL, source = getProxyURL(), "environment"
	}
	if proxyURL != "" {
		parsedProxy, err := url.Parse(proxyURL)
		if err != nil || parsedProxy.Host == "" {
			if source == "flag" {
				return nil, fmt.Errorf("failed to parse proxy URL %s", redactProxyCredentials(proxyURL))
			}
			logger.WithField("proxy_url", redactProxyCredentials(proxyURL)).Warn("Failed to parse proxy URL, using direct connection")
		} else {
			// net/http dials socks5 proxies itself
			transport.Proxy = http.ProxyURL(parsedProxy)
			logger.WithFields(logrus.Fields{
				"proxy_url": redactProxyCredentials(proxyURL),
				"source":    source,
			}).Debug("HTTP client configured with proxy")
		}
	}

	if opts.Cookies {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		client.Jar = jar
	}

	client.Transport = telemetry.WrapHTTPTransport(transport)

	return client, nil
}
