package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/plumbing/format/config"
	"github.com/shu-go/findcfg"
	"github.com/shu-go/orderedmap"
	"gopkg.in/yaml.v3"

	"github.com/shu-go/git-cc/commit"
)

type CommitType struct {
	Desc  string `json:"description,omitempty" yaml:"description,omitempty"`
	Emoji string `json:"emoji,omitempty" yaml:"emoji,omitempty"`
}

type Rule struct {
	HeaderFormat     string `json:"headerFormat" yaml:"headerFormat"`
	HeaderFormatHint string `json:"headerFormatHint" yaml:"headerFormatHint"`

	Types *orderedmap.OrderedMap[string, CommitType] `json:"types" yaml:"types"` //map[string]CommitType

	DenyAdlibType bool `json:"denyAdlibType" yaml:"denyAdlibType"`

	UseBreakingChange bool `json:"useBreakingChange" yaml:"useBreakingChange"`
}

type Scopes map[string]time.Time

func defaultRule(emoji bool) Rule {
	return Rule{
		Types:             defaultCommitTypes(emoji),
		DenyAdlibType:     false,
		UseBreakingChange: false,
		HeaderFormat:      "{{.type}}{{.scope_with_parens}}{{.bang}}: {{.emoji_unicode}}{{.description}}",
		HeaderFormatHint:  ".type, .scope, .scope_with_parens, .bang(if BREAKING CHANGE), .emoji, .emoji_unicode, .description",
	}
}

func defaultCommitTypes(emoji bool) *orderedmap.OrderedMap[string, CommitType] {
	iif := func(cond bool, t, f string) string {
		if cond {
			return t
		}
		return f
	}

	ct := orderedmap.New[string, CommitType]()
	ct.Set("# comment1", commitTypeOf(
		"comment starts with #",
		"",
	))
	ct.Set("# comment2", commitTypeOf(
		"fix bumps PATCH, feat bumps MINOR, a breaking change (! or BREAKING CHANGE:) bumps MAJOR",
		"",
	))

	ct.Set("feat", commitTypeOf(
		"A new feature",
		iif(emoji, ":sparkles:", ""),
	))
	ct.Set("fix", commitTypeOf(
		"A bug fix",
		iif(emoji, ":bug:", ""),
	))
	ct.Set("docs", commitTypeOf(
		"Documentation only changes",
		iif(emoji, ":memo:", ""),
	))
	ct.Set("style", commitTypeOf(
		"Changes that do not affect the meaning of the code",
		iif(emoji, ":art:", ""),
	))
	ct.Set("refactor", commitTypeOf(
		"A code change that neither fixes a bug nor adds a feature",
		iif(emoji, ":recycle:", ""),
	))
	ct.Set("perf", commitTypeOf(
		"A code change that improves performance",
		iif(emoji, ":zap:", ""),
	))
	ct.Set("test", commitTypeOf(
		"Adding missing tests or correcting existing tests",
		iif(emoji, ":test_tube:", ""),
	))
	ct.Set("build", commitTypeOf(
		"Changes that affect the build system or external dependencies",
		iif(emoji, ":package:", ""),
	))
	ct.Set("ci", commitTypeOf(
		"Changes to our CI configuration files and scripts",
		iif(emoji, ":hammer:", ""),
	))
	ct.Set("chore", commitTypeOf(
		"Other changes that don't modify src or test files",
		iif(emoji, ":wrench:", ""),
	))
	ct.Set("revert", commitTypeOf(
		"Reverts a previous commit",
		iif(emoji, ":rewind:", ""),
	))
	return ct
}

func commitTypeOf(desc string, emoji string) CommitType {
	return CommitType{
		Desc:  desc,
		Emoji: emoji,
	}
}

// typeNames returns the declared types, comments excluded.
func (r Rule) typeNames() []string {
	names := make([]string, 0, len(r.Types.Keys()))
	for _, k := range r.Types.Keys() {
		if strings.HasPrefix(k, "#") {
			continue
		}
		names = append(names, k)
	}
	return names
}

func (r Rule) declares(typ string) bool {
	for _, k := range r.typeNames() {
		if strings.EqualFold(k, typ) {
			return true
		}
	}
	return false
}

// check applies the restrictions of r that the grammar itself does not.
func (r Rule) check(c commit.Commit) error {
	if r.DenyAdlibType && c.Type.Kind() == commit.KindCustom && !r.declares(c.Type.String()) {
		return fmt.Errorf("ad-lib type %q is not allowed (allowed: %s)", c.Type, strings.Join(r.typeNames(), ", "))
	}
	return nil
}

func readRuleFile(repos *git.Repository) (*Rule, string) {
	rootDir := worktreeRoot(repos)

	var exactPath string
	if rootDir != "" {
		// config
		if cfg := getGitConfig(repos, configRule); cfg != nil {
			exactPath = filepath.Join(rootDir, *cfg)
		}
	}

	finder := findcfg.New(
		findcfg.Name(defaultRuleFileName),
		findcfg.ExactPath(exactPath),
		findcfg.YAML(),
		findcfg.JSON(),
		findcfg.Dir(rootDir),
		findcfg.UserConfigDir(userConfigFolder),
		findcfg.ExecutableDir(),
	)
	found := finder.Find()
	if found != nil {
		r, err := tryReadRuleFile(found.Path)
		if err == nil {
			return r, found.Path
		}
		logger.Warn("rule file ignored", "path", found.Path, "err", err)
	}

	r := defaultRule(false)
	return &r, finder.FallbackPath()
}

func tryReadRuleFile(filename string) (*Rule, error) {
	content, err := readConfigFile(filename)
	if err != nil {
		return nil, err
	}

	r := Rule{
		Types: orderedmap.New[string, CommitType](),
	}
	if err := decodeConfig(filename, content, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func readScopesFile(repos *git.Repository) (scopes Scopes, fileName string) {
	rootDir := worktreeRoot(repos)

	var exactPath string
	if rootDir != "" {
		// config
		if cfg := getGitConfig(repos, configScopeHistory); cfg != nil {
			exactPath = filepath.Join(rootDir, *cfg)
		}
	}

	finder := findcfg.New(
		findcfg.Name(defaultScopesFileName),
		findcfg.ExactPath(exactPath),
		findcfg.YAML(),
		findcfg.JSON(),
		findcfg.Dir(rootDir),
		findcfg.UserConfigDir(userConfigFolder),
		findcfg.ExecutableDir(),
	)
	found := finder.Find()
	if found != nil {
		if sc, err := tryReadScopesFile(found.Path); err == nil {
			return sc, found.Path
		}
	}

	return nil, finder.FallbackPath()
}

func tryReadScopesFile(filename string) (Scopes, error) {
	content, err := readConfigFile(filename)
	if err != nil {
		return nil, err
	}

	sc := make(Scopes)
	if err := decodeConfig(filename, content, &sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func readConfigFile(filename string) ([]byte, error) {
	if s, err := os.Stat(filename); err != nil {
		return nil, err
	} else if s.IsDir() {
		return nil, fmt.Errorf("%s is a directory", filename)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

// decodeConfig decodes by extension. Unknown extensions are tried as YAML,
// then as JSON.
func decodeConfig(filename string, content []byte, v any) error {
	if in(filepath.Ext(filename), ".yaml", ".yml") {
		return yaml.Unmarshal(content, v)
	}
	if in(filepath.Ext(filename), ".json") {
		return json.Unmarshal(content, v)
	}
	if err := yaml.Unmarshal(content, v); err != nil {
		return json.Unmarshal(content, v)
	}
	return nil
}

func encodeConfig(filename string, v any) ([]byte, error) {
	if in(filepath.Ext(filename), ".json") {
		return json.MarshalIndent(v, "", "  ")
	}
	return yaml.Marshal(v)
}

func getGitConfig(repos *git.Repository, key string) *string {
	config, err := repos.Config()
	if err != nil {
		return nil
	}

	var ss *gitconfig.Section
	for _, s := range config.Raw.Sections {
		if s.Name == configSection {
			ss = s
		}
	}
	if ss == nil {
		return nil
	}

	if ctp := ss.Options.Get(key); ctp != "" {
		return &ctp
	}
	return nil
}

func worktreeRoot(repos *git.Repository) string {
	if repos == nil {
		return ""
	}
	if wt, err := repos.Worktree(); err == nil {
		return wt.Filesystem.Root()
	}
	return ""
}
