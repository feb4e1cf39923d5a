package telemetry

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// Query parameters that are never exported in full. vqd is the per-query
// session token handed out by the landing page.
var sensitiveQueryParams = map[string]bool{
	"vqd":          true,
	"api_key":      true,
	"apikey":       true,
	"token":        true,
	"access_token": true,
	"secret":       true,
	"key":          true,
	"password":     true,
	"auth":         true,
}

// SanitiseURL removes credentials and sensitive query parameters from a URL.
// Parameter order is kept so the result still matches what was sent.
func SanitiseURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil || parsedURL.Scheme == "" {
		return "[INVALID_URL]"
	}

	parsedURL.User = nil

	if parsedURL.RawQuery != "" {
		parts := strings.Split(parsedURL.RawQuery, "&")
		for i, part := range parts {
			key, _, hasValue := strings.Cut(part, "=")
			if !hasValue {
				continue
			}
			keyLower := strings.ToLower(key)
			if sensitiveQueryParams[keyLower] || strings.Contains(keyLower, "token") {
				parts[i] = key + "=[REDACTED]"
			}
		}
		parsedURL.RawQuery = strings.Join(parts, "&")
	}

	return parsedURL.String()
}

// TruncateString truncates a string to at most maxLen bytes with an ellipsis,
// without splitting a rune.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
