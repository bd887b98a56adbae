package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

type installCmd struct {
	Force bool `cli:"force,f" help:"overwrite existing hooks"`
}

var hookScripts = []struct {
	name   string
	script string
}{
	{"commit-msg", "#!/bin/sh\nexec git-cc lint \"$1\"\n"},
	{"prepare-commit-msg", "#!/bin/sh\nexec git-cc prepare \"$@\"\n"},
}

func (c installCmd) Run(g globalCmd, args []string) error {
	g.setup()

	repos, err := openRepository()
	if err != nil {
		return err
	}

	dir, err := hooksDir(repos)
	if err != nil {
		return err
	}
	logger.Debug("hooks", "dir", dir)

	return installHooks(dir, c.Force)
}

// hooksDir returns where git looks for hooks: core.hooksPath if set,
// otherwise the hooks directory of the (common) git directory.
func hooksDir(repos *git.Repository) (string, error) {
	st, ok := repos.Storer.(*filesystem.Storage)
	if !ok {
		return "", errors.New("repository is not stored on disk")
	}

	var hooksPath string
	if cfg, err := repos.Config(); err == nil {
		hooksPath = cfg.Raw.Section("core").Option("hooksPath")
	}

	return resolveHooksDir(st.Filesystem().Root(), worktreeRoot(repos), hooksPath), nil
}

func resolveHooksDir(gitDir, worktree, hooksPath string) string {
	if hooksPath != "" {
		if rest, found := strings.CutPrefix(hooksPath, "~/"); found {
			if home, err := os.UserHomeDir(); err == nil {
				return filepath.Join(home, rest)
			}
		}
		if filepath.IsAbs(hooksPath) || worktree == "" {
			return hooksPath
		}
		return filepath.Join(worktree, hooksPath)
	}

	return filepath.Join(commonDir(gitDir), "hooks")
}

// commonDir follows the commondir file of a linked worktree's git directory.
func commonDir(gitDir string) string {
	content, err := os.ReadFile(filepath.Join(gitDir, "commondir"))
	if err != nil {
		return gitDir
	}

	dir := strings.TrimSpace(string(content))
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(gitDir, dir)
	}
	return filepath.Clean(dir)
}

func installHooks(dir string, force bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for _, h := range hookScripts {
		path := filepath.Join(dir, h.name)

		if _, err := os.Stat(path); err == nil && !force {
			logger.Warn("hook exists, skipped (--force to overwrite)", "path", path)
			continue
		}

		if err := os.WriteFile(path, []byte(h.script), 0o755); err != nil {
			return fmt.Errorf("write %s: %w", h.name, err)
		}
		if err := os.Chmod(path, 0o755); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "installed: %v\n", path)
	}

	return nil
}
