package search

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

var whitespace = regexp.MustCompile(`\s+`)

// Lite searches the text-only HTML endpoint and scrapes its result table.
func (b *Browser) Lite(ctx context.Context, req Request) ([]LiteResult, error) {
	params := NewParams("q", req.Query, "kl", req.region())

	body, err := b.Request(ctx, http.MethodPost, b.endpoints.Lite, b.userAgent, params)
	if err != nil {
		return nil, err
	}

	results, err := ParseLite(body, req.Limit)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.URL = b.endpoints.Lite
		}
		return nil, err
	}

	b.logger.WithFields(logrus.Fields{
		"query":        req.Query,
		"result_count": len(results),
	}).Info("Lite search completed")

	return results, nil
}

// ParseLite extracts results from a lite results page. Every table row with
// an anchor becomes a result; the snippet comes from the first
// .result-snippet element in the same row and is empty when there is none.
// A limit of zero means no limit.
func ParseLite(body []byte, limit int) ([]LiteResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &ParseError{Format: "html", Body: excerpt(body), Err: err}
	}

	results := []LiteResult{}
	doc.Find("table tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		link := row.Find("a").First()
		if link.Length() == 0 {
			return true
		}
		href, ok := link.Attr("href")
		if !ok {
			return true
		}

		results = append(results, LiteResult{
			Title:   cleanText(link.Text()),
			URL:     strings.TrimSpace(href),
			Snippet: cleanText(row.Find(".result-snippet").First().Text()),
		})
		return limit <= 0 || len(results) < limit
	})

	return results, nil
}

// cleanText collapses runs of whitespace left over from the table markup
func cleanText(text string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}
