package search

import (
	"context"
	"net/http"
	"regexp"

	"github.com/sirupsen/logrus"
)

// vqdPattern matches the session token embedded in the landing page script,
// e.g. vqd="4-1234", vqd=\"4-1234\", vqd='1234567890' or vqd=-12345.
var vqdPattern = regexp.MustCompile(`vqd=[\\"']*(-?\d[\d-]*)`)

// ExtractToken pulls the vqd token out of an HTML page body.
func ExtractToken(body []byte) (string, error) {
	m := vqdPattern.FindSubmatch(body)
	if m == nil {
		return "", &TokenMissingError{}
	}
	return string(m[1]), nil
}

// Token fetches the landing page for query and extracts its vqd token. The
// image and news endpoints refuse requests without it. Tokens are reused
// for the same query for a few minutes.
func (b *Browser) Token(ctx context.Context, query string) (string, error) {
	if token, ok := b.tokens.Get(query); ok {
		return token, nil
	}

	body, err := b.Request(ctx, http.MethodGet, b.endpoints.Site, b.userAgent, NewParams("q", query))
	if err != nil {
		return "", err
	}

	token, err := ExtractToken(body)
	if err != nil {
		b.logger.WithField("query", query).Debug("No vqd token in landing page")
		return "", &TokenMissingError{Query: query}
	}

	b.logger.WithFields(logrus.Fields{
		"query": query,
		"vqd":   token,
	}).Debug("Extracted vqd token")

	b.tokens.Set(query, token)
	return token, nil
}
