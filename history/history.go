// Package history reads conventional commits from a git repository.
package history

import (
	"errors"
	"fmt"
	"slices"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/shu-go/git-cc/commit"
	"github.com/shu-go/git-cc/semver"
)

// Entry is a conventional commit of the history.
type Entry struct {
	Hash      plumbing.Hash
	Timestamp time.Time
	Commit    commit.Commit
}

// Skipped is a commit whose message could not be parsed.
type Skipped struct {
	Hash    plumbing.Hash
	Subject string
	Err     error
}

// History is a range of commits, oldest first.
type History struct {
	Entries []Entry
	Skipped []Skipped
}

// Read collects the commits reachable from HEAD but not from since.
// A zero since reads the whole history.
func Read(repo *git.Repository, since plumbing.Hash) (History, error) {
	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return History{}, nil
		}
		return History{}, fmt.Errorf("resolve HEAD: %w", err)
	}

	released := make(map[plumbing.Hash]struct{})
	if !since.IsZero() {
		if err := walk(repo, since, func(c *object.Commit) {
			released[c.Hash] = struct{}{}
		}); err != nil {
			return History{}, fmt.Errorf("walk %s: %w", since, err)
		}
	}

	var h History
	err = walk(repo, head.Hash(), func(c *object.Commit) {
		if _, found := released[c.Hash]; found {
			return
		}

		cc, err := commit.Parse(c.Message)
		if err != nil {
			h.Skipped = append(h.Skipped, Skipped{
				Hash:    c.Hash,
				Subject: subjectOf(c.Message),
				Err:     err,
			})
			return
		}

		h.Entries = append(h.Entries, Entry{
			Hash:      c.Hash,
			Timestamp: c.Committer.When,
			Commit:    cc,
		})
	})
	if err != nil {
		return History{}, fmt.Errorf("walk HEAD: %w", err)
	}

	slices.Reverse(h.Entries)
	slices.SortStableFunc(h.Entries, func(a, b Entry) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	slices.Reverse(h.Skipped)

	return h, nil
}

// Walk applies every entry to base, oldest first, and calls fn with each
// entry and the version it leads to. fn may be nil.
func (h History) Walk(base semver.Version, fn func(Entry, semver.Version)) (semver.Version, error) {
	v := base
	for _, e := range h.Entries {
		next, err := v.TryBump(semver.LevelOf(e.Commit))
		if err != nil {
			return v, fmt.Errorf("commit %s: %w", e.Hash, err)
		}
		v = next

		if fn != nil {
			fn(e, v)
		}
	}
	return v, nil
}

// Apply applies every entry to base, oldest first.
func (h History) Apply(base semver.Version) (semver.Version, error) {
	return h.Walk(base, nil)
}

// Level returns the largest increment of the history.
func (h History) Level() semver.Level {
	level := semver.None
	for _, e := range h.Entries {
		level = max(level, semver.LevelOf(e.Commit))
	}
	return level
}

func walk(repo *git.Repository, from plumbing.Hash, fn func(*object.Commit)) error {
	iter, err := repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return err
	}

	return iter.ForEach(func(c *object.Commit) error {
		fn(c)
		return nil
	})
}

func subjectOf(message string) string {
	m := commit.NewMessage(message)
	if p, ok := m.Paragraph(0); ok {
		if l, ok := p.Line(0); ok {
			return l
		}
	}
	return ""
}
