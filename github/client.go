package github

import (
	"context"
	"net/http"

	"github.com/google/go-github/v68/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/urizennnn/gh-email-finder/cache"
	"github.com/urizennnn/gh-email-finder/config"
	"github.com/urizennnn/gh-email-finder/ratelimit"
)

// New builds a GitHub API client. With a token configured the underlying
// transport attaches it as a bearer credential; without one requests go
// out unauthenticated.
func New(cfg config.Config, limiter *ratelimit.Limiter, store *cache.Cache, log logrus.FieldLogger) *Client {
	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	if cfg.Token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), src)
		httpClient.Timeout = cfg.HTTPClientTimeout
	}
	return &Client{
		gh:      github.NewClient(httpClient),
		limiter: limiter,
		cache:   store,
		cfg:     cfg,
		log:     log,
	}
}

// NewWithGithub wires a prebuilt go-github client, letting tests point
// the wrapper at a local HTTP server.
func NewWithGithub(gh *github.Client, cfg config.Config, limiter *ratelimit.Limiter, store *cache.Cache, log logrus.FieldLogger) *Client {
	return &Client{gh: gh, limiter: limiter, cache: store, cfg: cfg, log: log}
}

// wait blocks on the request pacer before an outbound call.
func (c *Client) wait(ctx context.Context) error {
	return c.limiter.WaitGithub(ctx)
}

func repoKey(fullName string) string {
	return "repo:" + fullName
}

// markSeen records a repository in the in-run dedupe cache, reporting
// whether it was already there.
func (c *Client) markSeen(fullName string) bool {
	return c.cache.Seen(repoKey(fullName), c.cfg.CacheTTL)
}
