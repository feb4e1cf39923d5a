package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/kevin-rs/duckduckgo/internal/config"
	"github.com/kevin-rs/duckduckgo/internal/search"
	"github.com/kevin-rs/duckduckgo/internal/styles"
	"github.com/kevin-rs/duckduckgo/internal/useragents"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSearcher records which backend call was made.
type fakeSearcher struct {
	calls []string
	last  search.Request
	ia    *search.InstantAnswer
	lite  []search.LiteResult
	imgs  []search.ImageResult
	news  []search.NewsResult
	err   error
}

func (f *fakeSearcher) record(name string, req search.Request) {
	f.calls = append(f.calls, name)
	f.last = req
}

func (f *fakeSearcher) Search(_ context.Context, req search.Request) (*search.InstantAnswer, error) {
	f.record("Search", req)
	return f.ia, f.err
}

func (f *fakeSearcher) AdvancedSearch(_ context.Context, req search.Request) (*search.InstantAnswer, error) {
	f.record("AdvancedSearch", req)
	return f.ia, f.err
}

func (f *fakeSearcher) SearchOperators(_ context.Context, req search.Request) (*search.InstantAnswer, error) {
	f.record("SearchOperators", req)
	return f.ia, f.err
}

func (f *fakeSearcher) Lite(_ context.Context, req search.Request) ([]search.LiteResult, error) {
	f.record("Lite", req)
	return f.lite, f.err
}

func (f *fakeSearcher) Images(_ context.Context, req search.Request) ([]search.ImageResult, error) {
	f.record("Images", req)
	return f.imgs, f.err
}

func (f *fakeSearcher) News(_ context.Context, req search.Request) ([]search.NewsResult, error) {
	f.record("News", req)
	return f.news, f.err
}

func strPtr(s string) *string {
	return &s
}

func newTestRunner(t *testing.T, f *fakeSearcher, opts Options) (*Runner, *bytes.Buffer) {
	t.Helper()
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	opts.Origin = "https://duckduckgo.com"
	opts.Palette = styles.Default()

	var buf bytes.Buffer
	return NewRunner(logger, f, &buf, opts), &buf
}

func sampleAnswer() *search.InstantAnswer {
	return &search.InstantAnswer{
		Heading: strPtr("Go"),
		RelatedTopics: []search.Topic{
			{Text: strPtr("Gopher"), FirstURL: strPtr("https://duckduckgo.com/Gopher")},
			{Text: strPtr("Goroutine"), FirstURL: strPtr("https://duckduckgo.com/Goroutine")},
		},
		Type: "D",
	}
}

func TestInstantMode(t *testing.T) {
	assert.Equal(t, ModeInstant, InstantMode(search.Request{Query: "go"}))
	assert.Equal(t, ModeInstant, InstantMode(search.Request{Query: "go", Region: "wt-wt"}))
	assert.Equal(t, ModeAdvanced, InstantMode(search.Request{Query: "go", Region: "us-en"}))
	assert.Equal(t, ModeOperators, InstantMode(search.Request{Query: "go", Region: "us-en", Operators: "site:go.dev"}))
}

func TestRun_AutoDispatch(t *testing.T) {
	tests := []struct {
		name string
		req  search.Request
		want string
	}{
		{"plain", search.Request{Query: "go"}, "Search"},
		{"region", search.Request{Query: "go", Region: "de-de"}, "AdvancedSearch"},
		{"operators", search.Request{Query: "go", Operators: "site:go.dev"}, "SearchOperators"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeSearcher{ia: sampleAnswer()}
			r, _ := newTestRunner(t, f, Options{})
			require.NoError(t, r.Run(context.Background(), tt.req))
			assert.Equal(t, []string{tt.want}, f.calls)
		})
	}
}

func TestRun_DetailedText(t *testing.T) {
	f := &fakeSearcher{ia: sampleAnswer()}
	r, out := newTestRunner(t, f, Options{Format: config.FormatDetailed})

	require.NoError(t, r.Run(context.Background(), search.Request{Query: "go", Limit: 1}))
	assert.True(t, strings.HasPrefix(out.String(), "Go\n1. Gopher\n"))
	assert.NotContains(t, out.String(), "Goroutine")
}

func TestRun_ListText(t *testing.T) {
	f := &fakeSearcher{ia: sampleAnswer()}
	r, out := newTestRunner(t, f, Options{Format: config.FormatList})

	require.NoError(t, r.Run(context.Background(), search.Request{Query: "go"}))
	assert.Contains(t, out.String(), "2. Goroutine\n")
}

func TestRun_InstantAnswerJSONHonoursLimit(t *testing.T) {
	f := &fakeSearcher{ia: sampleAnswer()}
	r, out := newTestRunner(t, f, Options{Output: OutputJSON})

	require.NoError(t, r.Run(context.Background(), search.Request{Query: "go", Limit: 1}))

	var decoded search.InstantAnswer
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Len(t, decoded.RelatedTopics, 1)
	assert.Equal(t, "D", decoded.Type)
	// the searcher's answer is not modified
	assert.Len(t, f.ia.RelatedTopics, 2)
}

func TestRun_Backends(t *testing.T) {
	f := &fakeSearcher{
		lite: []search.LiteResult{{Title: "Go", URL: "https://go.dev", Snippet: "fast"}},
		imgs: []search.ImageResult{{Title: "Gopher", URL: "https://go.dev", Image: "https://img/g.png"}},
		news: []search.NewsResult{{Date: "2024-01-01T00:00:00Z", Title: "Go 1.22", URL: "https://go.dev/blog"}},
	}

	r, out := newTestRunner(t, f, Options{Backend: config.BackendLite})
	require.NoError(t, r.Run(context.Background(), search.Request{Query: "go"}))
	assert.Equal(t, "Go\nhttps://go.dev\nfast\n", out.String())

	r, out = newTestRunner(t, f, Options{Backend: config.BackendImages})
	require.NoError(t, r.Run(context.Background(), search.Request{Query: "go"}))
	assert.Equal(t, "Gopher\nhttps://go.dev\nhttps://img/g.png\n", out.String())

	r, out = newTestRunner(t, f, Options{Backend: config.BackendNews, Output: OutputMarkdown})
	require.NoError(t, r.Run(context.Background(), search.Request{Query: "go"}))
	assert.Equal(t, "- 2024-01-01T00:00:00Z [Go 1.22](https://go.dev/blog)\n", out.String())

	assert.Equal(t, []string{"Lite", "Images", "News"}, f.calls)
}

func TestRun_LiteJSON(t *testing.T) {
	f := &fakeSearcher{lite: []search.LiteResult{{Title: "Go", URL: "https://go.dev"}}}
	r, out := newTestRunner(t, f, Options{Backend: config.BackendLite, Output: OutputJSON})

	require.NoError(t, r.Run(context.Background(), search.Request{Query: "go"}))
	assert.JSONEq(t, `[{"title":"Go","url":"https://go.dev","snippet":""}]`, out.String())
}

func TestRun_ErrorWrapped(t *testing.T) {
	upstream := &search.UpstreamStatusError{URL: "https://duckduckgo.com/news.js", StatusCode: 403}
	f := &fakeSearcher{err: upstream}
	r, out := newTestRunner(t, f, Options{Backend: config.BackendNews})

	err := r.Run(context.Background(), search.Request{Query: "go"})
	require.Error(t, err)

	var statusErr *search.UpstreamStatusError
	assert.True(t, errors.As(err, &statusErr))
	assert.Contains(t, err.Error(), "news search failed")
	assert.Empty(t, out.String())
}

func TestRun_UnknownBackend(t *testing.T) {
	r, _ := newTestRunner(t, &fakeSearcher{}, Options{Backend: "video"})
	assert.EqualError(t, r.Run(context.Background(), search.Request{Query: "go"}), "unknown backend: video")
}

func TestListUserAgents(t *testing.T) {
	table := useragents.New([]useragents.Agent{{Alias: "firefox", Value: "FF"}, {Alias: "chrome", Value: "CR"}})

	r, out := newTestRunner(t, &fakeSearcher{}, Options{})
	require.NoError(t, r.ListUserAgents(table))
	assert.Equal(t, "firefox  FF\nchrome   CR\n", out.String())

	r, out = newTestRunner(t, &fakeSearcher{}, Options{Output: OutputJSON})
	require.NoError(t, r.ListUserAgents(table))
	assert.JSONEq(t, `[{"alias":"firefox","user_agent":"FF"},{"alias":"chrome","user_agent":"CR"}]`, out.String())
}
