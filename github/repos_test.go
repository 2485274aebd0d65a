package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOwnedFollowsPagination(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/alice/repos", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "", "1":
			linkNext(w, r, 2)
			writeJSON(t, w, `[{"full_name":"alice/r1"},{"full_name":"alice/r2"}]`)
		case "2":
			writeJSON(t, w, `[{"full_name":"alice/r3"}]`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})

	c := newTestClient(t, mux)
	repos, err := c.ListOwned(context.Background(), "alice")
	require.NoError(t, err)

	want := []Repository{
		{FullName: "alice/r1", Owned: true},
		{FullName: "alice/r2", Owned: true},
		{FullName: "alice/r3", Owned: true},
	}
	assert.Equal(t, want, repos)
}

func TestListOwnedUnknownUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/ghost/repos", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	})

	c := newTestClient(t, mux)
	_, err := c.ListOwned(context.Background(), "ghost")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Contains(t, nf.Error(), "ghost")
}

func TestListOwnedRateLimited(t *testing.T) {
	requests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/users/alice/repos", func(w http.ResponseWriter, r *http.Request) {
		requests++
		rateLimitExceeded(w)
	})

	c := newTestClient(t, mux)
	_, err := c.ListOwned(context.Background(), "alice")
	var rl *RateLimitedError
	require.ErrorAs(t, err, &rl)
	assert.False(t, rl.Reset.IsZero())
	assert.Equal(t, 1, requests, "no further requests after a rate-limit failure")
}

func TestListContributedCapsAtHundred(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/commits", func(w http.ResponseWriter, r *http.Request) {
		items := make([]string, 0, 150)
		for i := 0; i < 150; i++ {
			items = append(items, fmt.Sprintf(`{"repository":{"full_name":"org/repo-%03d"}}`, i))
		}
		writeJSON(t, w, fmt.Sprintf(`{"total_count":150,"incomplete_results":false,"items":[%s]}`, strings.Join(items, ",")))
	})

	c := newTestClient(t, mux)
	repos, err := c.ListContributed(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, repos, ContributedRepoCap)
	// First-encountered in response order.
	assert.Equal(t, "org/repo-000", repos[0].FullName)
	assert.Equal(t, "org/repo-099", repos[99].FullName)
	assert.False(t, repos[0].Owned)
}

func TestListContributedSkipsOwnedRepos(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/alice/repos", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, `[{"full_name":"alice/r1"}]`)
	})
	mux.HandleFunc("/search/commits", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("q"), "author:alice")
		writeJSON(t, w, `{"total_count":2,"incomplete_results":false,"items":[
			{"repository":{"full_name":"alice/r1"}},
			{"repository":{"full_name":"org/other"}}
		]}`)
	})

	c := newTestClient(t, mux)
	owned, err := c.ListOwned(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, owned, 1)

	contributed, err := c.ListContributed(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, contributed, 1)
	assert.Equal(t, "org/other", contributed[0].FullName)
}

func TestListOwnedContextCancelled(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/alice/repos", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, `[]`)
	})

	c := newTestClient(t, mux)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ListOwned(ctx, "alice")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled) || strings.Contains(err.Error(), "context canceled"))
}
