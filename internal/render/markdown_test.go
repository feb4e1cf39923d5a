package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kevin-rs/duckduckgo/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown_InstantAnswer(t *testing.T) {
	var buf bytes.Buffer
	m := NewMarkdownWriter(&buf, origin)

	require.NoError(t, m.InstantAnswer(fixture(), 0))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# Rust\n\nA language.\n\n"))
	assert.Contains(t, out, "Source: [Wikipedia](https://en.wikipedia.org/wiki/Rust)")
	assert.Contains(t, out, "![Rust](https://duckduckgo.com/i/rust.png)")
	assert.Contains(t, out, "1. [Cargo](https://duckduckgo.com/Cargo) - package manager\n")
	assert.Contains(t, out, "3. [Ferris](https://duckduckgo.com/Ferris)\n")
	assert.Contains(t, out, "4. [Fourth](https://duckduckgo.com/Fourth)\n")
	assert.NotContains(t, out, "2. ")
	assert.NotContains(t, out, "<a")
}

func TestMarkdown_InstantAnswerLimit(t *testing.T) {
	var buf bytes.Buffer
	m := NewMarkdownWriter(&buf, origin)

	require.NoError(t, m.InstantAnswer(fixture(), 1))
	assert.NotContains(t, buf.String(), "Ferris")
}

func TestMarkdown_Lists(t *testing.T) {
	var buf bytes.Buffer
	m := NewMarkdownWriter(&buf, origin)

	require.NoError(t, m.Lite([]search.LiteResult{
		{Title: "Go", URL: "https://go.dev", Snippet: "Build fast"},
		{Title: "Bare", URL: "https://x"},
	}))
	require.NoError(t, m.Images([]search.ImageResult{{Title: "Gopher", URL: "https://go.dev", Image: "https://img/g.png"}}))
	require.NoError(t, m.News([]search.NewsResult{{Date: "2024-01-01T00:00:00Z", Title: "Go 1.22", URL: "https://go.dev/blog", Source: "Go Blog"}}))

	want := "- [Go](https://go.dev)\n  Build fast\n" +
		"- [Bare](https://x)\n" +
		"- [Gopher](https://go.dev)\n  ![Gopher](https://img/g.png)\n" +
		"- 2024-01-01T00:00:00Z [Go 1.22](https://go.dev/blog) (Go Blog)\n"
	assert.Equal(t, want, buf.String())
}

func TestMarkdown_SnippetNotEscaped(t *testing.T) {
	var buf bytes.Buffer
	m := NewMarkdownWriter(&buf, origin)

	ia := &search.InstantAnswer{RelatedTopics: []search.Topic{{
		Text:     strPtr("snake_case - 2 * 3"),
		FirstURL: strPtr("https://duckduckgo.com/Snake"),
		Result:   strPtr(`<a href="https://duckduckgo.com/Snake">snake_case</a> - 2 * 3`),
	}}}
	require.NoError(t, m.InstantAnswer(ia, 0))

	assert.Equal(t, "1. [snake_case](https://duckduckgo.com/Snake) - 2 * 3\n", buf.String())
	assert.NotContains(t, buf.String(), `\`)
}
