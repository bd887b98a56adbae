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

func newTestComposer(emoji bool) *composer {
	r := defaultRule(emoji)
	return &composer{
		rule:   &r,
		scopes: make(Scopes),
	}
}

func TestComposer_FormatMessage(t *testing.T) {
	c := newTestComposer(false)

	msg := c.formatMessage(messageParts{
		typ:            "feat",
		scope:          "cli",
		desc:           "add next command",
		body:           "Prints the version the next release gets.",
		breakingChange: "the old version command is gone",
	})

	assert.Equal(t, "feat(cli)!: add next command\n\n"+
		"Prints the version the next release gets.\n\n"+
		"BREAKING CHANGE: the old version command is gone", msg)

	cc, err := commit.Parse(msg)
	require.NoError(t, err)
	assert.Equal(t, commit.Feat, cc.Type)
	assert.True(t, cc.IsBreakingChange)
	require.NotNil(t, cc.Body)
	require.NotNil(t, cc.Footer)
	assert.True(t, cc.Footer.HasBreakingChangeMarker)
}

func TestComposer_FormatMessage_Emoji(t *testing.T) {
	c := newTestComposer(true)

	msg := c.formatMessage(messageParts{typ: "fix", desc: "crash"})
	assert.Equal(t, "fix: 🐛crash", msg)

	cc, err := commit.Parse(msg)
	require.NoError(t, err)
	assert.Equal(t, "🐛crash", cc.Description)
}

func TestComposer_FormatMessage_BadTemplate(t *testing.T) {
	c := newTestComposer(false)
	c.rule.HeaderFormat = "{{.type"

	msg := c.formatMessage(messageParts{typ: "docs", scope: "readme", desc: "typo"})
	assert.Equal(t, "docs(readme): typo", msg)
}

func TestComposer_RecordScope(t *testing.T) {
	c := newTestComposer(false)
	c.scopesFileName = filepath.Join(t.TempDir(), "history", ".scope-history.json")

	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.scopes["parser"] = old
	c.recordScope("cli", old.Add(time.Hour))

	_, err := os.Stat(c.scopesFileName)
	require.NoError(t, err)

	sc, err := tryReadScopesFile(c.scopesFileName)
	require.NoError(t, err)
	assert.Len(t, sc, 2)
	assert.True(t, old.Add(time.Hour).Equal(sc["cli"]))
}
