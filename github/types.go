package github

import (
	"github.com/google/go-github/v68/github"
	"github.com/sirupsen/logrus"

	"github.com/urizennnn/gh-email-finder/cache"
	"github.com/urizennnn/gh-email-finder/config"
	"github.com/urizennnn/gh-email-finder/ratelimit"
)

// Repository identifies a repository to scan. Owned is false for
// repositories discovered through commit search.
type Repository struct {
	FullName string
	Owned    bool
}

// CommitRecord carries the email pair extracted from one commit. Either
// address may be empty when the API omits it.
type CommitRecord struct {
	Repo           Repository
	AuthorEmail    string
	CommitterEmail string
}

type Client struct {
	gh      *github.Client
	limiter *ratelimit.Limiter
	cache   *cache.Cache
	cfg     config.Config
	log     logrus.FieldLogger
}
