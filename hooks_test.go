package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no execute bits on windows")
	}

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pre-commit"), "#!/bin/sh\n", 0o644)
	writeFile(t, filepath.Join(dir, "private"), "#!/bin/sh\n", 0o600)
	writeFile(t, filepath.Join(dir, "done"), "#!/bin/sh\n", 0o755)
	writeFile(t, filepath.Join(dir, "lib", "helper.sh"), "x=1\n", 0o644)
	require.NoError(t, os.Symlink("pre-commit", filepath.Join(dir, "pre-push")))

	errs := makeExecutable(dir)
	assert.Empty(t, errs)

	modes := map[string]os.FileMode{
		"pre-commit":    0o755,
		"private":       0o711,
		"done":          0o755,
		"lib/helper.sh": 0o644,
	}
	for name, want := range modes {
		info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name)))
		require.NoError(t, err)
		assert.Equal(t, want, info.Mode().Perm(), name)
	}
}

func TestMakeExecutableMissingDirectory(t *testing.T) {
	errs := makeExecutable(filepath.Join(t.TempDir(), "missing"))
	require.Len(t, errs, 1)
	var permErr *PermissionError
	assert.ErrorAs(t, errs[0], &permErr)
}

func TestActivateHooksMissingDirectory(t *testing.T) {
	var buf strings.Builder
	err := activateHooks(context.Background(), newLogger(&buf, false), t.TempDir(), "tools/git-hooks")
	assert.NoError(t, err)
	assert.Equal(t, "warning: hooks directory tools/git-hooks not found, core.hooksPath not set\n", buf.String())
}

func TestActivateHooksFileInsteadOfDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "hooks"), "not a directory\n", 0o644)

	var buf strings.Builder
	err := activateHooks(context.Background(), newLogger(&buf, false), dir, "hooks")
	assert.NoError(t, err)
	assert.Equal(t, "warning: hooks directory hooks not found, core.hooksPath not set\n", buf.String())
}

func TestActivateHooksSetsHooksPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, exec.Command("git", "init", "--quiet", dir).Run())
	writeFile(t, filepath.Join(dir, "tools", "git-hooks", "pre-commit"), "#!/bin/sh\n", 0o644)

	var buf strings.Builder
	log := newLogger(&buf, false)
	err := activateHooks(context.Background(), log, dir, "tools/git-hooks")
	require.NoError(t, err)
	assert.Equal(t, "hooks enabled: core.hooksPath = tools/git-hooks\n", buf.String())

	got, err := git(context.Background(), log, dir, "config", "--local", "core.hooksPath")
	require.NoError(t, err)
	assert.Equal(t, "tools/git-hooks", got)
}

func TestActivateHooksConfigError(t *testing.T) {
	dir := t.TempDir()
	// Keep git from discovering a repository above the temp dir
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))
	writeFile(t, filepath.Join(dir, "tools", "git-hooks", "pre-commit"), "#!/bin/sh\n", 0o644)

	err := activateHooks(context.Background(), discardLogger(), dir, "tools/git-hooks")
	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "core.hooksPath", configErr.Key)
	assert.Equal(t, 1, exitCode(err))
}

func TestActivateHooksPermissionErrorContinues(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no execute bits on windows")
	}

	dir := t.TempDir()
	require.NoError(t, exec.Command("git", "init", "--quiet", dir).Run())
	writeFile(t, filepath.Join(dir, "tools", "git-hooks", "pre-commit"), "#!/bin/sh\n", 0o644)
	writeFile(t, filepath.Join(dir, "tools", "git-hooks", "pre-push"), "#!/bin/sh\n", 0o644)

	failing := filepath.Join(dir, "tools", "git-hooks", "pre-commit")
	orig := chmod
	chmod = func(name string, mode os.FileMode) error {
		if name == failing {
			return os.ErrPermission
		}
		return orig(name, mode)
	}
	t.Cleanup(func() { chmod = orig })

	var buf strings.Builder
	log := newLogger(&buf, false)
	err := activateHooks(context.Background(), log, dir, "tools/git-hooks")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf(`warning: failed to make %s executable: permission denied
hooks enabled: core.hooksPath = tools/git-hooks
`, failing), buf.String())

	info, err := os.Stat(filepath.Join(dir, "tools", "git-hooks", "pre-push"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	got, err := git(context.Background(), log, dir, "config", "--local", "core.hooksPath")
	require.NoError(t, err)
	assert.Equal(t, "tools/git-hooks", got)
}

func TestActivateHooksSymlinkOutsideRepository(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "pre-commit"), "#!/bin/sh\n", 0o644)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tools"), 0o755))
	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "tools", "git-hooks")))

	var buf strings.Builder
	err := activateHooks(context.Background(), newLogger(&buf, false), dir, "tools/git-hooks")
	assert.NoError(t, err)
	assert.Equal(t, "warning: hooks directory tools/git-hooks is outside the repository, core.hooksPath not set\n", buf.String())

	info, err := os.Stat(filepath.Join(outside, "pre-commit"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestActivateHooksSymlinkInsideRepository(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, exec.Command("git", "init", "--quiet", dir).Run())
	writeFile(t, filepath.Join(dir, "hooks", "pre-commit"), "#!/bin/sh\n", 0o644)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tools"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join("..", "hooks"), filepath.Join(dir, "tools", "git-hooks")))

	err := activateHooks(context.Background(), discardLogger(), dir, "tools/git-hooks")
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "hooks", "pre-commit"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}
