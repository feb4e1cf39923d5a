package render

import (
	"fmt"
	"io"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/kevin-rs/duckduckgo/internal/search"
)

// MarkdownWriter renders results as Markdown. Topic snippets arrive as HTML
// and are converted rather than stripped, so their links survive.
type MarkdownWriter struct {
	w         io.Writer
	origin    string
	converter *md.Converter
}

// NewMarkdownWriter creates a Markdown writer; origin resolves relative
// image paths.
func NewMarkdownWriter(w io.Writer, origin string) *MarkdownWriter {
	return &MarkdownWriter{
		w:      w,
		origin: strings.TrimRight(origin, "/"),
		// snippets are plain prose, escaping would leak backslashes
		converter: md.NewConverter("", true, &md.Options{EscapeMode: "disabled"}),
	}
}

// InstantAnswer writes the heading, abstract and up to limit related topics.
// Topic numbering follows the same rule as the terminal renderer.
func (m *MarkdownWriter) InstantAnswer(ia *search.InstantAnswer, limit int) error {
	var b strings.Builder

	if ia.Heading != nil {
		fmt.Fprintf(&b, "# %s\n\n", *ia.Heading)
	}
	if ia.AbstractText != nil && *ia.AbstractText != "" {
		fmt.Fprintf(&b, "%s\n\n", *ia.AbstractText)
	}
	if ia.AbstractSource != nil && ia.AbstractURL != nil && *ia.AbstractURL != "" {
		fmt.Fprintf(&b, "Source: [%s](%s)\n\n", *ia.AbstractSource, *ia.AbstractURL)
	}
	if ia.Image != nil && *ia.Image != "" {
		fmt.Fprintf(&b, "![%s](%s)\n\n", headingOr(ia, "image"), m.resolve(*ia.Image))
	}

	topics := ia.RelatedTopics
	if limit > 0 && limit < len(topics) {
		topics = topics[:limit]
	}
	for i, topic := range topics {
		if !topic.Renderable() {
			continue
		}
		text, err := m.topicText(topic)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, text)
	}

	_, err := io.WriteString(m.w, b.String())
	return err
}

func (m *MarkdownWriter) topicText(topic search.Topic) (string, error) {
	if topic.Result != nil && *topic.Result != "" {
		converted, err := m.converter.ConvertString(*topic.Result)
		if err != nil {
			return "", fmt.Errorf("failed to convert topic HTML to markdown: %w", err)
		}
		if converted = strings.TrimSpace(converted); converted != "" {
			return strings.Join(strings.Fields(converted), " "), nil
		}
	}
	if topic.FirstURL != nil {
		return fmt.Sprintf("[%s](%s)", *topic.Text, *topic.FirstURL), nil
	}
	return *topic.Text, nil
}

// Lite writes one list item per result.
func (m *MarkdownWriter) Lite(results []search.LiteResult) error {
	var b strings.Builder
	for _, res := range results {
		fmt.Fprintf(&b, "- [%s](%s)\n", res.Title, res.URL)
		if res.Snippet != "" {
			fmt.Fprintf(&b, "  %s\n", res.Snippet)
		}
	}
	_, err := io.WriteString(m.w, b.String())
	return err
}

// Images writes one list item per result with the image inline.
func (m *MarkdownWriter) Images(results []search.ImageResult) error {
	var b strings.Builder
	for _, res := range results {
		fmt.Fprintf(&b, "- [%s](%s)\n  ![%s](%s)\n", res.Title, res.URL, res.Title, res.Image)
	}
	_, err := io.WriteString(m.w, b.String())
	return err
}

// News writes one list item per result, prefixed with its date.
func (m *MarkdownWriter) News(results []search.NewsResult) error {
	var b strings.Builder
	for _, res := range results {
		fmt.Fprintf(&b, "- %s [%s](%s)", res.Date, res.Title, res.URL)
		if res.Source != "" {
			fmt.Fprintf(&b, " (%s)", res.Source)
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(m.w, b.String())
	return err
}

func (m *MarkdownWriter) resolve(path string) string {
	return resolveURL(m.origin, path)
}

func headingOr(ia *search.InstantAnswer, fallback string) string {
	if ia.Heading != nil && *ia.Heading != "" {
		return *ia.Heading
	}
	return fallback
}
