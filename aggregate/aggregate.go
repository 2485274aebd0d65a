package aggregate

import (
	"sort"
	"strings"

	"github.com/urizennnn/gh-email-finder/github"
)

// noReplyPatterns are GitHub's privacy-preserving address forms. Any
// address containing one of these is dropped from the results.
var noReplyPatterns = []string{
	"@users.noreply.github.com",
	"noreply@github.com",
	"@noreply.github.com",
	"@noreply.githubassets.com",
}

// IsNoReply reports whether addr is a GitHub no-reply address.
func IsNoReply(addr string) bool {
	for _, p := range noReplyPatterns {
		if strings.Contains(addr, p) {
			return true
		}
	}
	return false
}

// EmailEntry aggregates one discovered address. Repos maps each
// contributing repository to the number of occurrences seen there;
// Count is always the sum of those values.
type EmailEntry struct {
	Address string
	Count   int
	Repos   map[string]int
}

// Repositories returns the contributing repository names, highest
// occurrence count first, ties broken by name.
func (e *EmailEntry) Repositories() []string {
	names := make([]string, 0, len(e.Repos))
	for name := range e.Repos {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if e.Repos[names[i]] != e.Repos[names[j]] {
			return e.Repos[names[i]] > e.Repos[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// Aggregator folds commit records into per-address entries. Addresses
// are compared case-sensitively, exactly as the API returned them.
type Aggregator struct {
	entries map[string]*EmailEntry
}

func New() *Aggregator {
	return &Aggregator{entries: make(map[string]*EmailEntry)}
}

// Add folds one commit record in. Empty and no-reply addresses are
// discarded; the author and committer fields count independently.
func (a *Aggregator) Add(rec github.CommitRecord) {
	a.add(rec.AuthorEmail, rec.Repo.FullName)
	a.add(rec.CommitterEmail, rec.Repo.FullName)
}

func (a *Aggregator) add(addr, repo string) {
	if addr == "" || IsNoReply(addr) {
		return
	}
	e, ok := a.entries[addr]
	if !ok {
		e = &EmailEntry{Address: addr, Repos: make(map[string]int)}
		a.entries[addr] = e
	}
	e.Count++
	e.Repos[repo]++
}

// Len returns the number of distinct addresses seen so far.
func (a *Aggregator) Len() int {
	return len(a.entries)
}

// Result returns the aggregated entries sorted by count descending, then
// address ascending, so output is deterministic regardless of fold order.
func (a *Aggregator) Result() []EmailEntry {
	out := make([]EmailEntry, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Address < out[j].Address
	})
	return out
}

// Fold is the one-shot form: aggregate a record slice into a map keyed
// by address. Pure with respect to its input.
func Fold(records []github.CommitRecord) map[string]*EmailEntry {
	a := New()
	for _, rec := range records {
		a.Add(rec)
	}
	return a.entries
}
