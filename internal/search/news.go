package search

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// now is swapped in tests
var now = time.Now

// News runs a news search, following pagination until req.Limit results are
// collected or the feed ends.
func (b *Browser) News(ctx context.Context, req Request) ([]NewsResult, error) {
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
		"noamp", "1",
	)

	results, err := Paginate(ctx, params, b.pageFetcher(b.endpoints.News, req.Query), decodeNews, PageOptions{
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
	}).Info("News search completed")

	return results, nil
}

func decodeNews(item gjson.Result) NewsResult {
	result := NewsResult{
		Date:   newsDate(item.Get("date")).Format(time.RFC3339),
		Title:  stringField(item, "title"),
		Body:   stringField(item, "excerpt"),
		URL:    stringField(item, "url"),
		Source: stringField(item, "source"),
	}
	if img := item.Get("image"); img.Type == gjson.String {
		s := img.Str
		result.Image = &s
	}
	return result
}

// newsDate converts a Unix timestamp field, falling back to the current time
// when it is missing or not an integer.
func newsDate(v gjson.Result) time.Time {
	if v.Type != gjson.Number || v.Num != math.Trunc(v.Num) {
		return now().UTC()
	}
	return time.Unix(v.Int(), 0).UTC()
}
