package main

import (
	"fmt"
	"io"
	"os"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/shu-go/git-cc/history"
	"github.com/shu-go/git-cc/semver"
)

type nextCmd struct {
	From    string `cli:"from" help:"base version (default: the latest version tag, or 0.0.0)"`
	Prefix  string `cli:"prefix" help:"prefix of the output, e.g. v"`
	Verbose bool   `cli:"verbose,v" help:"print each commit and the version it leads to"`
}

func (c nextCmd) Run(g globalCmd, args []string) error {
	g.setup()

	repos, err := openRepository()
	if err != nil {
		return err
	}

	next, err := c.next(repos, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Println(c.Prefix + next.String())
	return nil
}

func (c nextCmd) next(repos *git.Repository, w io.Writer) (semver.Version, error) {
	base, since, err := c.base(repos)
	if err != nil {
		return semver.Version{}, err
	}
	logger.Debug("base", "version", base, "since", since)

	h, err := history.Read(repos, since)
	if err != nil {
		return semver.Version{}, err
	}

	for _, s := range h.Skipped {
		logger.Warn("not a conventional commit", "commit", s.Hash.String()[:7], "subject", s.Subject)
	}
	logger.Debug("history", "commits", len(h.Entries), "bump", h.Level())

	return h.Walk(base, func(e history.Entry, v semver.Version) {
		if c.Verbose {
			fmt.Fprintf(w, "%s %s %-5s %s\n",
				e.Hash.String()[:7],
				e.Timestamp.Local().Format("2006-01-02"),
				semver.LevelOf(e.Commit),
				v,
			)
		}
	})
}

// base returns the version to start from and the commit of the latest
// release. History before that commit is released already, so --from only
// replaces the version.
func (c nextCmd) base(repos *git.Repository) (semver.Version, plumbing.Hash, error) {
	rel, err := history.LatestRelease(repos)
	if err != nil {
		return semver.Version{}, plumbing.ZeroHash, err
	}

	var base semver.Version
	since := plumbing.ZeroHash
	if rel != nil {
		base = rel.Version
		since = rel.Commit
	}

	if c.From != "" {
		base, err = semver.Parse(c.From)
		if err != nil {
			return semver.Version{}, plumbing.ZeroHash, err
		}
	}

	return base, since, nil
}
