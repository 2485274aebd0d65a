package github

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	gogithub "github.com/google/go-github/v68/github"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/urizennnn/gh-email-finder/cache"
	"github.com/urizennnn/gh-email-finder/config"
	"github.com/urizennnn/gh-email-finder/ratelimit"
)

// newTestClient points the wrapper at a local test server.
func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	gh := gogithub.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	gh.BaseURL = base

	store, err := cache.New(1000)
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := config.Config{PerPage: 100, CacheTTL: time.Hour}
	return NewWithGithub(gh, cfg, ratelimit.New(6000), store, log)
}

func writeJSON(t *testing.T, w http.ResponseWriter, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	_, err := io.WriteString(w, body)
	require.NoError(t, err)
}

// linkNext emits the pagination Link header go-github follows.
func linkNext(w http.ResponseWriter, r *http.Request, page int) {
	next := fmt.Sprintf("<http://%s%s?page=%d>; rel=\"next\"", r.Host, r.URL.Path, page)
	w.Header().Set("Link", next)
}

func rateLimitExceeded(w http.ResponseWriter) {
	reset := time.Now().Add(30 * time.Minute).Unix()
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-RateLimit-Limit", "60")
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", reset))
	w.WriteHeader(http.StatusForbidden)
	_, _ = io.WriteString(w, `{"message":"API rate limit exceeded"}`)
}
