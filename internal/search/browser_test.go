package search

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_SendsFixedHeaders(t *testing.T) {
	var got http.Header
	var gotQuery string
	b, srv := newTestBrowser(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte("ok"))
	}))

	body, err := b.Request(context.Background(), http.MethodGet, srv.URL+"/api/", "custom-agent", NewParams("q", "a b"))
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))

	assert.Equal(t, "custom-agent", got.Get("User-Agent"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, srv.URL+"/", got.Get("Referer"))
	assert.Equal(t, DefaultAcceptLanguage, got.Get("Accept-Language"))
	assert.Equal(t, "q=a+b", gotQuery)
}

func TestRequest_PostCarriesQueryString(t *testing.T) {
	var method, query string
	b, srv := newTestBrowser(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		query = r.URL.RawQuery
	}))

	_, err := b.Request(context.Background(), http.MethodPost, srv.URL+"/lite/?x=1", testUserAgent, NewParams("q", "go"))
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "x=1&q=go", query)
}

func TestRequest_UpstreamStatusError(t *testing.T) {
	b, srv := newTestBrowser(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(strings.Repeat("x", 2000)))
	}))

	_, err := b.Request(context.Background(), http.MethodGet, srv.URL+"/api/", testUserAgent, nil)
	require.Error(t, err)

	var statusErr *UpstreamStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.LessOrEqual(t, len(statusErr.Body), maxErrorBodyLength+len("..."))
	assert.True(t, strings.HasSuffix(statusErr.Body, "..."))
}

func TestRequest_TransportError(t *testing.T) {
	b, srv := newTestBrowser(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL + "/api/"
	srv.Close()

	_, err := b.Request(context.Background(), http.MethodGet, url, testUserAgent, nil)
	require.Error(t, err)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.MethodGet, transportErr.Method)
	assert.NotNil(t, transportErr.Unwrap())
}

func TestRequest_CancelledContext(t *testing.T) {
	b, srv := newTestBrowser(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Request(ctx, http.MethodGet, srv.URL+"/api/", testUserAgent, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewBrowser_Defaults(t *testing.T) {
	b := NewBrowser(nil, nil, Options{})
	assert.Equal(t, DefaultEndpoints(), b.Endpoints())
	assert.Equal(t, DefaultMaxPages, b.maxPages)
	assert.Equal(t, DefaultAcceptLanguage, b.acceptLanguage)
	assert.Equal(t, "https://duckduckgo.com", b.Endpoints().Origin())
}

func TestExcerpt_RuneSafe(t *testing.T) {
	body := []byte(strings.Repeat("a", maxErrorBodyLength-1) + "é" + "tail")
	out := excerpt(body)
	assert.Equal(t, strings.Repeat("a", maxErrorBodyLength-1)+"...", out)
}
