package search

import (
	"fmt"
	"unicode/utf8"
)

// maxErrorBodyLength caps how much of an upstream body is kept on errors
const maxErrorBodyLength = 512

// TransportError is returned when a request never produced an HTTP response
// (DNS, TCP, TLS or proxy failure, or a cancelled context).
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request %s %s failed: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UpstreamStatusError is returned for responses outside the 2xx range.
type UpstreamStatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream %s returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("upstream %s returned status %d: %s", e.URL, e.StatusCode, e.Body)
}

// TokenMissingError is returned when the vqd token cannot be found in the
// landing page, usually because the markup changed or the query was blocked.
type TokenMissingError struct {
	Query string
}

func (e *TokenMissingError) Error() string {
	return fmt.Sprintf("missing vqd token in response for query %q", e.Query)
}

// ParseError is returned when a successful response cannot be decoded.
type ParseError struct {
	Format string // json or html
	URL    string
	Body   string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("failed to parse %s response", e.Format)
	if e.URL != "" {
		msg += " from " + e.URL
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Body != "" {
		msg += fmt.Sprintf(" (body: %s)", e.Body)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// excerpt trims body to maxErrorBodyLength bytes without splitting a rune.
func excerpt(body []byte) string {
	if len(body) <= maxErrorBodyLength {
		return string(body)
	}
	cut := maxErrorBodyLength
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut]) + "..."
}
