package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// git runs a git command in the specified directory and returns stdout.
// An empty dir runs git in the current directory. On failure the error
// carries git's stderr.
func git(ctx context.Context, log *logger, dir string, args ...string) (string, error) {
	if dir != "" {
		args = append([]string{"-C", dir}, args...)
	}
	log.Command("git", args...)

	cmd := exec.CommandContext(ctx, "git", args...)
	// Never block on a credential prompt, only ambient credentials are used
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s", msg)
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// gitAvailable checks that the git executable can be found on PATH
func gitAvailable() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git executable not found: %w", err)
	}
	return nil
}

// isGitRepo checks if a directory is the root of a git working tree.
// .git may be a directory, or a file for worktrees and submodules.
func isGitRepo(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir() || info.Mode().IsRegular()
}

// clone makes a shallow clone of the template into path
func clone(ctx context.Context, log *logger, src TemplateSource, path string) error {
	args := []string{"clone", "--depth", "1", "--quiet"}
	if src.Ref != "" {
		args = append(args, "--branch", src.Ref)
	}
	args = append(args, "--", src.URL, path)
	_, err := git(ctx, log, "", args...)
	return err
}

// setHooksPath points core.hooksPath of the repository at hooksPath.
// Only the repository's local config is written.
func setHooksPath(ctx context.Context, log *logger, repo, hooksPath string) error {
	_, err := git(ctx, log, repo, "config", "--local", "core.hooksPath", hooksPath)
	return err
}
