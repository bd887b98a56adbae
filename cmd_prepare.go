package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kyokomi/emoji/v2"

	"github.com/shu-go/git-cc/commit"
	"github.com/shu-go/git-cc/semver"
)

type prepareCmd struct {
}

// Run is called by git as prepare-commit-msg FILE [SOURCE [SHA]].
func (c prepareCmd) Run(g globalCmd, args []string) error {
	g.setup()

	if len(args) < 1 {
		return errors.New("missing commit message file")
	}
	filename := args[0]

	var source, sha string
	if len(args) > 1 {
		source = args[1]
	}
	if len(args) > 2 {
		sha = args[2]
	}

	content, err := os.ReadFile(filename)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read commit message: %w", err)
	}

	if !canUseTemplate(sha, string(content)) {
		logger.Debug("template skipped", "source", source, "sha", sha)
		return nil
	}

	var rule *Rule
	if repos, err := openRepository(); err == nil {
		rule, _ = readRuleFile(repos)
	} else {
		rule, _ = readRuleFile(nil)
	}

	out := renderTemplate(rule)
	if len(content) > 0 {
		out += "\n" + string(content)
	}

	return os.WriteFile(filename, []byte(out), 0o644)
}

// canUseTemplate reports whether the message is still to be written.
// With a commit SHA, an existing commit is being amended.
func canUseTemplate(sha, content string) bool {
	if sha != "" {
		return false
	}
	return commit.NewMessage(content).Len() == 0
}

func renderTemplate(rule *Rule) string {
	var b strings.Builder

	b.WriteString(`# <type>[(<scope>)][!]: <description>
#
# [optional body]
#
# [optional footer(s)]
#
# type can be one of:
`)

	for _, k := range rule.typeNames() {
		ct, _ := rule.Types.Get(k)

		line := "#   - " + k
		if e := strings.TrimSpace(emoji.Emojize(ct.Emoji)); e != "" {
			line += " " + e
		}
		if ct.Desc != "" {
			line += ": " + ct.Desc
		}
		if level := semver.LevelOf(commit.Commit{Type: commit.ParseType(k)}); level != semver.None {
			line += " (" + strings.ToUpper(level.String()) + " in semver)"
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(`#
# Note: if you add ! after type/scope, or write BREAKING CHANGE: in
# the footer, the commit introduces a breaking API change (MAJOR in
# semver).
`)

	return b.String()
}
