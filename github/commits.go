package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v68/github"
)

// commitPages walks a repository's commit listing for one author, one
// page at a time.
type commitPages struct {
	c           *Client
	owner, repo string
	opts        *github.CommitsListOptions
	done        bool
}

func (c *Client) commitPagesFor(owner, repo, author string) *commitPages {
	return &commitPages{
		c:     c,
		owner: owner,
		repo:  repo,
		opts: &github.CommitsListOptions{
			Author:      author,
			ListOptions: github.ListOptions{PerPage: c.cfg.PerPage},
		},
	}
}

// Next returns the next page of commits, or nil once exhausted.
func (p *commitPages) Next(ctx context.Context) ([]*github.RepositoryCommit, error) {
	if p.done {
		return nil, nil
	}
	if err := p.c.wait(ctx); err != nil {
		return nil, err
	}
	commits, resp, err := p.c.gh.Repositories.ListCommits(ctx, p.owner, p.repo, p.opts)
	if err != nil {
		p.done = true
		return nil, classify(err, "repository "+p.owner+"/"+p.repo)
	}
	if len(commits) == 0 || resp.NextPage == 0 {
		p.done = true
	} else {
		p.opts.Page = resp.NextPage
	}
	return commits, nil
}

// ScanCommits lists the commits a user authored in one repository and
// extracts the author/committer email pair of each. A repository that
// turns out to be private, empty or gone yields the records collected so
// far instead of an error, so one bad repository cannot sink the run.
func (c *Client) ScanCommits(ctx context.Context, repo Repository, username string) ([]CommitRecord, error) {
	owner, name, err := splitFullName(repo.FullName)
	if err != nil {
		return nil, err
	}

	pages := c.commitPagesFor(owner, name, username)
	var records []CommitRecord
	for {
		commits, err := pages.Next(ctx)
		if err != nil {
			if ia, ok := asInaccessible(err, repo.FullName); ok {
				c.log.WithField("repo", repo.FullName).Debugf("skipping: %v", ia)
				return records, nil
			}
			return nil, err
		}
		if len(commits) == 0 {
			return records, nil
		}
		for _, commit := range commits {
			records = append(records, CommitRecord{
				Repo:           repo,
				AuthorEmail:    commit.GetCommit().GetAuthor().GetEmail(),
				CommitterEmail: commit.GetCommit().GetCommitter().GetEmail(),
			})
		}
	}
}

func splitFullName(fullName string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", fmt.Errorf("malformed repository name %q", fullName)
	}
	return owner, repo, nil
}
