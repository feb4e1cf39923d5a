package search

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// Images runs an image search, following pagination until req.Limit results
// are collected or the feed ends.
func (b *Browser) Images(ctx context.Context, req Request) ([]ImageResult, error) {
	vqd, err := b.Token(ctx, req.Query)
	if err != nil {
		return nil, err
	}

	params := NewParams(
		"q", req.Query,
		"l", req.region(),
		"vqd", vqd,
		"o", "json",
		"p", safeSearchParam(req.SafeSearch, "1", "-1"),
	)

	results, err := Paginate(ctx, params, b.pageFetcher(b.endpoints.Images, req.Query), decodeImage, PageOptions{
		Limit:    req.Limit,
		MaxPages: b.maxPages,
		Logger:   b.logger,
	})
	if err != nil {
		return nil, err
	}

	b.logger.WithFields(logrus.Fields{
		"query":        req.Query,
		"result_count": len(results),
	}).Info("Image search completed")

	return results, nil
}

func decodeImage(item gjson.Result) ImageResult {
	return ImageResult{
		Title:     stringField(item, "title"),
		Image:     stringField(item, "image"),
		Thumbnail: stringField(item, "thumbnail"),
		URL:       stringField(item, "url"),
		Height:    FlexFromGJSON(item.Get("height")).Int(),
		Width:     FlexFromGJSON(item.Get("width")).Int(),
		Source:    stringField(item, "source"),
	}
}

// pageFetcher binds a JSON feed endpoint to the gateway. A rejected page
// drops the cached token for query so the next search scrapes a fresh one.
func (b *Browser) pageFetcher(endpoint, query string) PageFunc {
	return func(ctx context.Context, params Params) ([]byte, error) {
		body, err := b.Request(ctx, http.MethodGet, endpoint, b.userAgent, params)
		var statusErr *UpstreamStatusError
		if errors.As(err, &statusErr) {
			b.tokens.Delete(query)
			b.logger.WithField("query", query).Debug("Feed rejected the request, dropped cached vqd token")
		}
		return body, err
	}
}
