package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallHooks(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".git", "hooks")

	require.NoError(t, installHooks(dir, false))

	content, err := os.ReadFile(filepath.Join(dir, "commit-msg"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `git-cc lint "$1"`)

	st, err := os.Stat(filepath.Join(dir, "prepare-commit-msg"))
	require.NoError(t, err)
	assert.NotZero(t, st.Mode().Perm()&0o100)

	custom := []byte("#!/bin/sh\necho mine\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "commit-msg"), custom, 0o755))

	require.NoError(t, installHooks(dir, false))
	content, err = os.ReadFile(filepath.Join(dir, "commit-msg"))
	require.NoError(t, err)
	assert.Equal(t, custom, content)

	require.NoError(t, installHooks(dir, true))
	content, err = os.ReadFile(filepath.Join(dir, "commit-msg"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "git-cc lint")
}

func TestHooksDir(t *testing.T) {
	dir := t.TempDir()

	repos, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	got, err := hooksDir(repos)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".git", "hooks"), got)

	cfg, err := repos.Config()
	require.NoError(t, err)
	cfg.Raw.Section("core").SetOption("hooksPath", ".githooks")
	require.NoError(t, repos.SetConfig(cfg))

	got, err = hooksDir(repos)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".githooks"), got)
}

func TestHooksDir_InMemory(t *testing.T) {
	repos, err := git.Init(memory.NewStorage(), memfs.New())
	require.NoError(t, err)

	_, err = hooksDir(repos)
	assert.Error(t, err)
}

func TestResolveHooksDir(t *testing.T) {
	mainGit := filepath.Join(t.TempDir(), "repo", ".git")
	linked := filepath.Join(mainGit, "worktrees", "feature")
	require.NoError(t, os.MkdirAll(linked, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(linked, "commondir"), []byte("../..\n"), 0o644))

	assert.Equal(t, filepath.Join(mainGit, "hooks"), resolveHooksDir(mainGit, "/wt", ""))
	assert.Equal(t, filepath.Join(mainGit, "hooks"), resolveHooksDir(linked, "/wt", ""))
	assert.Equal(t, filepath.Join("/wt", "hooks"), resolveHooksDir(linked, "/wt", "hooks"))
	assert.Equal(t, "/etc/git-hooks", resolveHooksDir(linked, "/wt", "/etc/git-hooks"))
}
