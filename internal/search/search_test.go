package search

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
)

const testUserAgent = "ddg-test/1.0"

// newTestBrowser starts a server for handler and points every endpoint at it.
func newTestBrowser(t *testing.T, handler http.Handler) (*Browser, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	b := NewBrowser(srv.Client(), logger, Options{
		UserAgent: testUserAgent,
		Endpoints: Endpoints{
			API:    srv.URL + "/api/",
			Site:   srv.URL + "/",
			Lite:   srv.URL + "/lite/",
			Images: srv.URL + "/i.js",
			News:   srv.URL + "/news.js",
		},
	})
	return b, srv
}
