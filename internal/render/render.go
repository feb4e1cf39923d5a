// Package render prints search results to a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/kevin-rs/duckduckgo/internal/search"
	"github.com/kevin-rs/duckduckgo/internal/styles"
)

const topicSeparator = "--------------------------------------------"

// Renderer writes styled results to w.
type Renderer struct {
	w       io.Writer
	palette styles.Palette
	origin  string
	err     error
}

// NewRenderer creates a renderer. Relative image paths are resolved against
// origin, e.g. https://duckduckgo.com.
func NewRenderer(w io.Writer, palette styles.Palette, origin string) *Renderer {
	return &Renderer{
		w:       w,
		palette: palette,
		origin:  strings.TrimRight(origin, "/"),
	}
}

// List prints the heading followed by the related topics.
func (r *Renderer) List(ia *search.InstantAnswer, limit int) error {
	r.err = nil
	if ia.Heading != nil {
		r.line(r.palette.ListHeading, *ia.Heading)
	}
	r.topics(ia.RelatedTopics, limit)
	return r.err
}

// Detailed prints the heading, the abstract block, the top-level image and
// then the related topics. Each field is printed only when present.
func (r *Renderer) Detailed(ia *search.InstantAnswer, limit int) error {
	r.err = nil
	if ia.Heading != nil {
		r.line(r.palette.DetailedHeading, *ia.Heading)
	}
	if ia.AbstractText != nil {
		r.line(r.palette.Abstract, "Abstract: "+*ia.AbstractText)
	}
	if ia.AbstractSource != nil {
		r.line(r.palette.AbstractSource, "Abstract Source: "+*ia.AbstractSource)
	}
	if ia.AbstractURL != nil {
		r.line(r.palette.AbstractURL, "Abstract URL: "+*ia.AbstractURL)
	}
	if ia.Image != nil && *ia.Image != "" {
		r.line(r.palette.Image, "Image URL: "+r.resolve(*ia.Image))
	}
	r.topics(ia.RelatedTopics, limit)
	return r.err
}

// topics prints at most limit entries of the unfiltered topic list. The
// number shown is the 1-based position in that list, so a skipped entry
// still uses up its number.
func (r *Renderer) topics(topics []search.Topic, limit int) {
	if limit <= 0 || limit > len(topics) {
		limit = len(topics)
	}
	for i, topic := range topics[:limit] {
		r.topic(i+1, topic)
	}
}

func (r *Renderer) topic(index int, topic search.Topic) {
	if !topic.Renderable() {
		return
	}

	r.line(r.palette.Topic, fmt.Sprintf("%d. %s", index, *topic.Text))
	if topic.FirstURL != nil {
		r.line(r.palette.Topic, "URL: "+*topic.FirstURL)
	}
	if topic.Icon != nil && topic.Icon.URL != "" {
		r.line(r.palette.TopicImage, "Image URL: "+r.resolve(topic.Icon.URL))
	}
	r.plain(topicSeparator)
}

// Lite prints title, URL and snippet for each result.
func (r *Renderer) Lite(results []search.LiteResult) error {
	r.err = nil
	for _, res := range results {
		r.line(r.palette.Title, res.Title)
		r.line(r.palette.Link, res.URL)
		r.plain(res.Snippet)
	}
	return r.err
}

// Images prints title, page URL and image URL for each result.
func (r *Renderer) Images(results []search.ImageResult) error {
	r.err = nil
	for _, res := range results {
		r.line(r.palette.Title, res.Title)
		r.line(r.palette.Link, res.URL)
		r.line(r.palette.Image, res.Image)
	}
	return r.err
}

// News prints date, title and URL for each result.
func (r *Renderer) News(results []search.NewsResult) error {
	r.err = nil
	for _, res := range results {
		r.line(r.palette.Muted, res.Date)
		r.line(r.palette.Title, res.Title)
		r.line(r.palette.Link, res.URL)
	}
	return r.err
}

func (r *Renderer) resolve(path string) string {
	return resolveURL(r.origin, path)
}

// resolveURL turns a site-relative path into an absolute URL
func resolveURL(origin, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return origin + path
}

func (r *Renderer) line(c *color.Color, text string) {
	if r.err != nil {
		return
	}
	_, r.err = c.Fprintln(r.w, text)
}

func (r *Renderer) plain(text string) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintln(r.w, text)
}
