package search

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// cursorParam is the query parameter carrying the page cursor
const cursorParam = "s"

// PageFunc fetches one page for the given params and returns the raw JSON.
type PageFunc func(ctx context.Context, params Params) ([]byte, error)

// PageOptions bounds a pagination run.
type PageOptions struct {
	// Limit stops the run once this many records are collected; zero means none
	Limit int
	// MaxPages stops the run after this many pages; zero means DefaultMaxPages
	MaxPages int
	Logger   *logrus.Logger
}

// Paginate calls fetch until the upstream stops sending a "next" cursor, the
// limit is reached or MaxPages pages were read. Records from each page's
// "results" array are decoded in order. An error on any page discards
// everything collected so far.
func Paginate[T any](ctx context.Context, base Params, fetch PageFunc, decode func(gjson.Result) T, opts PageOptions) ([]T, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	params := base.Clone()
	results := make([]T, 0)
	cursor := ""

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, err := fetch(ctx, params)
		if err != nil {
			return nil, err
		}
		if !gjson.ValidBytes(body) {
			return nil, &ParseError{Format: "json", Body: excerpt(body), Err: errors.New("invalid JSON document")}
		}

		doc := gjson.ParseBytes(body)
		items := doc.Get("results")
		if items.IsArray() {
			done := false
			items.ForEach(func(_, item gjson.Result) bool {
				results = append(results, decode(item))
				done = opts.Limit > 0 && len(results) >= opts.Limit
				return !done
			})
			if done {
				return results, nil
			}
		}

		logger.WithFields(logrus.Fields{
			"page":    page,
			"records": len(results),
		}).Debug("Fetched result page")

		next := doc.Get("next")
		if next.Type != gjson.String {
			return results, nil
		}
		nextCursor := cursorFromNext(next.Str)
		if nextCursor == "" || nextCursor == cursor {
			logger.WithField("next", next.Str).Debug("Next link carries no new cursor, stopping")
			return results, nil
		}
		if page >= maxPages {
			logger.WithFields(logrus.Fields{
				"max_pages": maxPages,
				"records":   len(results),
			}).Warn("Reached page cap, returning collected results")
			return results, nil
		}

		cursor = nextCursor
		params = params.Set(cursorParam, cursor)
	}
}

// cursorFromNext returns the text after the last "s=" in a next link.
func cursorFromNext(next string) string {
	i := strings.LastIndex(next, "s=")
	if i < 0 {
		return ""
	}
	cursor := next[i+len("s="):]
	if amp := strings.IndexByte(cursor, '&'); amp >= 0 {
		cursor = cursor[:amp]
	}
	return cursor
}

// stringField reads a string field, yielding "" for missing or non-string values.
func stringField(item gjson.Result, key string) string {
	v := item.Get(key)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}
