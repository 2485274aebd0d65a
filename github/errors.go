package github

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v68/github"
)

// RateLimitedError reports an exhausted API quota. Reset is zero when the
// API did not say when the quota comes back.
type RateLimitedError struct {
	Reset time.Time
}

func (e *RateLimitedError) Error() string {
	if e.Reset.IsZero() {
		return "github: rate limit exceeded"
	}
	return fmt.Sprintf("github: rate limit exceeded, resets at %s", e.Reset.Format(time.RFC1123))
}

// NotFoundError reports a missing resource, typically an unknown username.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("github: %s not found", e.Resource)
}

type UnauthorizedError struct{}

func (e *UnauthorizedError) Error() string {
	return "github: bad credentials"
}

// APIError covers any remaining non-2xx response or transport failure.
// StatusCode is 0 when the request never produced a response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("github: request failed: %s", e.Message)
	}
	return fmt.Sprintf("github: unexpected status %d: %s", e.StatusCode, e.Message)
}

// RepoInaccessibleError marks a repository that cannot be scanned
// (private, empty, or gone). It is absorbed during the scan rather than
// aborting the run.
type RepoInaccessibleError struct {
	Repo       string
	StatusCode int
}

func (e *RepoInaccessibleError) Error() string {
	return fmt.Sprintf("github: repository %s inaccessible (status %d)", e.Repo, e.StatusCode)
}

// classify maps go-github errors onto the client's error taxonomy.
// resource names what was being fetched, for NotFound messages.
func classify(err error, resource string) error {
	var rl *github.RateLimitError
	if errors.As(err, &rl) {
		return &RateLimitedError{Reset: rl.Rate.Reset.Time}
	}
	var abuse *github.AbuseRateLimitError
	if errors.As(err, &abuse) {
		var reset time.Time
		if abuse.RetryAfter != nil {
			reset = time.Now().Add(*abuse.RetryAfter)
		}
		return &RateLimitedError{Reset: reset}
	}
	var er *github.ErrorResponse
	if errors.As(err, &er) && er.Response != nil {
		switch er.Response.StatusCode {
		case http.StatusNotFound:
			return &NotFoundError{Resource: resource}
		case http.StatusUnauthorized:
			return &UnauthorizedError{}
		default:
			return &APIError{StatusCode: er.Response.StatusCode, Message: er.Message}
		}
	}
	return &APIError{Message: err.Error()}
}

// asInaccessible reports whether a classified scan error only concerns a
// single repository. 404 covers deleted or private repos, 403 a
// forbidden one (rate-limit 403s are already RateLimitedError by now),
// 409 an empty repository and 451 a DMCA takedown.
func asInaccessible(err error, repo string) (*RepoInaccessibleError, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return &RepoInaccessibleError{Repo: repo, StatusCode: http.StatusNotFound}, true
	}
	var api *APIError
	if errors.As(err, &api) {
		switch api.StatusCode {
		case http.StatusForbidden, http.StatusConflict, http.StatusUnavailableForLegalReasons:
			return &RepoInaccessibleError{Repo: repo, StatusCode: api.StatusCode}, true
		}
	}
	return nil, false
}
