package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v68/github"
)

// ContributedRepoCap bounds how many repositories commit search may
// contribute to a scan. First-encountered in API response order wins.
const ContributedRepoCap = 100

// repoPages walks a user's repository listing one page at a time, so the
// caller only fetches what it consumes.
type repoPages struct {
	c    *Client
	user string
	opts *github.RepositoryListByUserOptions
	done bool
}

func (c *Client) ownedPages(user string) *repoPages {
	return &repoPages{
		c:    c,
		user: user,
		opts: &github.RepositoryListByUserOptions{
			ListOptions: github.ListOptions{PerPage: c.cfg.PerPage},
		},
	}
}

// Next returns the next page of repositories, or nil once exhausted.
func (p *repoPages) Next(ctx context.Context) ([]*github.Repository, error) {
	if p.done {
		return nil, nil
	}
	if err := p.c.wait(ctx); err != nil {
		return nil, err
	}
	repos, resp, err := p.c.gh.Repositories.ListByUser(ctx, p.user, p.opts)
	if err != nil {
		p.done = true
		return nil, classify(err, "user "+p.user)
	}
	if len(repos) == 0 || resp.NextPage == 0 {
		p.done = true
	} else {
		p.opts.Page = resp.NextPage
	}
	return repos, nil
}

// ListOwned enumerates the repositories a user owns.
func (c *Client) ListOwned(ctx context.Context, username string) ([]Repository, error) {
	pages := c.ownedPages(username)
	var out []Repository
	for {
		page, err := pages.Next(ctx)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			return out, nil
		}
		for _, r := range page {
			name := r.GetFullName()
			if name == "" || c.markSeen(name) {
				continue
			}
			out = append(out, Repository{FullName: name, Owned: true})
		}
	}
}

// ListContributed discovers repositories the user has committed to via
// commit search. Repositories already seen during owned enumeration are
// skipped, and the result is capped at ContributedRepoCap.
func (c *Client) ListContributed(ctx context.Context, username string) ([]Repository, error) {
	query := fmt.Sprintf("author:%s", username)
	opts := &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: c.cfg.PerPage},
	}

	var out []Repository
	for {
		if err := c.wait(ctx); err != nil {
			return nil, err
		}
		result, resp, err := c.gh.Search.Commits(ctx, query, opts)
		if err != nil {
			return nil, classify(err, "commits by "+username)
		}
		for _, item := range result.Commits {
			name := item.GetRepository().GetFullName()
			if name == "" || c.markSeen(name) {
				continue
			}
			out = append(out, Repository{FullName: name, Owned: false})
			if len(out) >= ContributedRepoCap {
				return out, nil
			}
		}
		if resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}
