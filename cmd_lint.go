package main

import (
	"errors"
	"fmt"
	"os"

	git "github.com/go-git/go-git/v5"

	"github.com/shu-go/git-cc/commit"
	"github.com/shu-go/git-cc/semver"
)

type lintCmd struct {
}

func (c lintCmd) Run(g globalCmd, args []string) error {
	g.setup()

	if len(args) < 1 {
		return errors.New("missing commit message file")
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read commit message: %w", err)
	}

	var repos *git.Repository
	if r, err := openRepository(); err == nil {
		repos = r
	} else {
		logger.Debug("no repository, default rule is used", "err", err)
	}
	rule, _ := readRuleFile(repos)

	cc, err := lintMessage(rule, string(content))
	if err != nil {
		return err
	}

	logger.Debug("ok",
		"type", cc.Type,
		"scopes", cc.Scopes,
		"breaking", cc.IsBreakingChange,
		"bump", semver.LevelOf(cc),
	)
	return nil
}

func lintMessage(rule *Rule, text string) (commit.Commit, error) {
	cc, err := commit.Parse(text)
	if err != nil {
		var fe *commit.FormatError
		if errors.As(err, &fe) {
			return commit.Commit{}, fmt.Errorf("not a conventional commit: %w", fe)
		}
		return commit.Commit{}, err
	}

	if err := rule.check(cc); err != nil {
		return commit.Commit{}, err
	}

	return cc, nil
}
