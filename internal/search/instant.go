package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Search queries the instant answer API.
func (b *Browser) Search(ctx context.Context, req Request) (*InstantAnswer, error) {
	params := NewParams(
		"q", req.Query,
		"kp", safeSearchParam(req.SafeSearch, "1", "-2"),
	)
	ia, err := b.instantAnswer(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to perform search for query '%s': %w", req.Query, err)
	}
	return ia, nil
}

// AdvancedSearch queries the instant answer API restricted to req.Region.
func (b *Browser) AdvancedSearch(ctx context.Context, req Request) (*InstantAnswer, error) {
	params := NewParams(
		"q", req.Query,
		"kl", req.region(),
		"kp", safeSearchParam(req.SafeSearch, "1", "-2"),
	)
	ia, err := b.instantAnswer(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to perform advanced search for query '%s': %w", req.Query, err)
	}
	return ia, nil
}

// SearchOperators queries the instant answer API with req.Operators copied
// verbatim into the query string after the query itself.
func (b *Browser) SearchOperators(ctx context.Context, req Request) (*InstantAnswer, error) {
	params := NewParams("q", req.Query).
		AddRaw(req.Operators).
		Add("kp", safeSearchParam(req.SafeSearch, "1", "-2"))
	ia, err := b.instantAnswer(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to perform operator search for query '%s': %w", req.Query, err)
	}
	return ia, nil
}

func (b *Browser) instantAnswer(ctx context.Context, params Params) (*InstantAnswer, error) {
	params = params.Add("format", "json")

	body, err := b.Request(ctx, http.MethodGet, b.endpoints.API, b.userAgent, params)
	if err != nil {
		return nil, err
	}

	ia, err := ParseInstantAnswer(body)
	if err != nil {
		return nil, err
	}

	b.logger.WithFields(logrus.Fields{
		"type":           ia.Type,
		"related_topics": len(ia.RelatedTopics),
	}).Debug("Parsed instant answer")

	return ia, nil
}

// ParseInstantAnswer decodes an instant answer document.
func ParseInstantAnswer(body []byte) (*InstantAnswer, error) {
	var ia InstantAnswer
	if err := json.Unmarshal(body, &ia); err != nil {
		return nil, &ParseError{Format: "json", Body: excerpt(body), Err: err}
	}
	return &ia, nil
}
