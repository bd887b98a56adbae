package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	git "github.com/go-git/go-git/v5"
	"github.com/shu-go/gli"

	"github.com/shu-go/git-cc/commit"
	"github.com/shu-go/git-cc/semver"
)

const (
	userConfigFolder = "git-cc"

	defaultRuleFileName   = ".cc"
	defaultScopesFileName = ".scope-history"

	configSection      = "cc"
	configRule         = "rule"
	configScopeHistory = "scopes"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "git-cc",
})

type globalCmd struct {
	All bool `cli:"all,a" help:"commit all changed files"`

	Debug bool `cli:"debug" default:"false" help:"do not commit, do output to stdout, and log verbosely"`

	Gen     genCmd     `cli:"generate,gen" help:"generate rule file"`
	Lint    lintCmd    `cli:"lint" help:"check a commit message file (commit-msg hook)"`
	Prepare prepareCmd `cli:"prepare" help:"write the message template (prepare-commit-msg hook)"`
	Next    nextCmd    `cli:"next" help:"print the next version"`
	Install installCmd `cli:"install" help:"install the git hooks"`
}

func (c globalCmd) Run() error {
	c.setup()

	repos, err := openRepository()
	if err != nil {
		return err
	}

	wt, err := repos.Worktree()
	if err != nil {
		return err
	}

	logger.Debug("worktree", "root", wt.Filesystem.Root())

	if !c.Debug && c.All {
		st, err := wt.Status()
		if err != nil {
			return err
		}
		for f, s := range st {
			switch s.Worktree {
			case git.Modified, git.Added, git.Deleted, git.Renamed, git.Copied, git.UpdatedButUnmerged:
				if _, err := wt.Add(f); err != nil {
					return fmt.Errorf("try git gc: adding %s %s: %w", s.Worktree, f, err)
				}
			default:
				//nop
			}
		}
	}

	st, err := wt.Status()
	if err != nil {
		return err
	}
	staged := false
	for _, s := range st {
		staged = staged || (s.Staging != git.Unmodified && s.Staging != git.Untracked)
	}
	if !staged {
		fmt.Fprintln(os.Stderr, "no changes")

		if !c.Debug {
			return nil
		}
	}

	comp := newComposer(repos)
	msg := comp.buildupCommitMessage()

	cc, err := commit.Parse(msg)
	if err != nil {
		return fmt.Errorf("not a conventional commit: %w", err)
	}
	if err := comp.rule.check(cc); err != nil {
		return err
	}
	logger.Debug("composed", "type", cc.Type, "breaking", cc.IsBreakingChange, "bump", semver.LevelOf(cc))

	if c.Debug {
		fmt.Println("----------")
		fmt.Println(msg)
		return nil
	}

	f, err := os.CreateTemp("", "")
	if err != nil {
		return err
	}
	_, err = f.WriteString(msg)
	if err != nil {
		f.Close()
		return err
	}
	f.Close()

	cmd := exec.Command("git", "commit", "-F", f.Name())
	err = cmd.Run()
	os.Remove(f.Name())
	if err != nil {
		return err
	}

	return nil
}

func (c globalCmd) setup() {
	if c.Debug {
		logger.SetLevel(log.DebugLevel)
	}
}

func openRepository() (*git.Repository, error) {
	repos, err := git.PlainOpenWithOptions(".", &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	return repos, nil
}

// Version is app version
var Version string

func main() {
	rule, scope := getPathToHelp()
	if rule != "" {
		rule = "\nrule: " + rule + "\n"
	}
	if scope != "" {
		scope = "scope: " + scope + "\n"
	}

	app := gli.NewWith(&globalCmd{})
	app.Name = "git-cc"
	app.Desc = "A conventional commits tool"
	app.Version = Version
	app.Usage = `
# prepare
# Put git-cc to PATH.

# basic usage
git cc

# check messages on every commit
git cc install

# next release
git cc next
git cc next --from v1.2.0

# customize
git cc gen
(edit .cc.yaml)
git cc
` + rule + scope + `

# record and complete scope history
(gitconfig: [cc] scopes=.scopes.yaml)`
	app.Copyright = "(C) 2024 Shuhei Kubota"
	app.SuppressErrorOutput = true
	if err := app.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func getPathToHelp() (rule string, scope string) {
	repos, err := git.PlainOpenWithOptions(".", &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", ""
	}

	_, rule = readRuleFile(repos)
	_, scope = readScopesFile(repos)

	return rule, scope
}

func in(s string, choices ...string) bool {
	if len(choices) == 0 {
		return false
	}

	for i := 0; i < len(choices); i++ {
		if strings.EqualFold(s, choices[i]) {
			return true
		}
	}

	return false
}
