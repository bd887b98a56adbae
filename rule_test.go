package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shu-go/git-cc/commit"
)

func TestRule_TypeNames(t *testing.T) {
	r := defaultRule(false)

	names := r.typeNames()
	assert.Equal(t, "feat", names[0])
	assert.Equal(t, "fix", names[1])
	assert.NotContains(t, names, "# comment1")
}

func TestRule_Check(t *testing.T) {
	r := defaultRule(false)

	docs := commit.Commit{Type: commit.Custom("Docs")}
	wip := commit.Commit{Type: commit.Custom("wip")}
	fix := commit.Commit{Type: commit.Fix}

	assert.NoError(t, r.check(wip))

	r.DenyAdlibType = true
	assert.NoError(t, r.check(docs))
	assert.NoError(t, r.check(fix))
	assert.ErrorContains(t, r.check(wip), `ad-lib type "wip" is not allowed`)
}

func TestTryReadRuleFile_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".cc.json")

	content, err := encodeConfig(path, defaultRule(true))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	r, err := tryReadRuleFile(path)
	require.NoError(t, err)

	assert.Equal(t, defaultRule(true).HeaderFormat, r.HeaderFormat)
	assert.Equal(t, defaultRule(true).typeNames(), r.typeNames())

	feat, ok := r.Types.Get("feat")
	require.True(t, ok)
	assert.Equal(t, ":sparkles:", feat.Emoji)
}

func TestTryReadRuleFile_Missing(t *testing.T) {
	_, err := tryReadRuleFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	_, err = tryReadRuleFile(t.TempDir())
	assert.Error(t, err)
}

func TestReadRuleFile_NoRepository(t *testing.T) {
	r, _ := readRuleFile(nil)
	require.NotNil(t, r)
	assert.NotEmpty(t, r.HeaderFormat)
}

func TestTryReadScopesFile(t *testing.T) {
	dir := t.TempDir()
	when := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for _, name := range []string{"scopes.yaml", "scopes.json", "scopes"} {
		path := filepath.Join(dir, name)

		content, err := encodeConfig(path, Scopes{"cli": when})
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, content, 0o644))

		sc, err := tryReadScopesFile(path)
		require.NoError(t, err, name)
		assert.True(t, when.Equal(sc["cli"]), name)
	}
}
