package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// activateHooks makes the hook scripts in the target's hooks directory
// executable and registers the directory as core.hooksPath. The directory
// may have been copied by this run or may have existed before.
func activateHooks(ctx context.Context, log *logger, targetRoot, hooksPath string) error {
	dir, err := resolveHooksDir(targetRoot, hooksPath)
	if err != nil {
		log.Warnf("%v, core.hooksPath not set", err)
		return nil
	}

	if runtime.GOOS != "windows" {
		for _, err := range makeExecutable(dir) {
			log.Warnf("%v", err)
		}
	}

	if err := setHooksPath(ctx, log, targetRoot, hooksPath); err != nil {
		return &ConfigError{Key: "core.hooksPath", Err: err}
	}

	log.Printf("hooks enabled: core.hooksPath = %s", hooksPath)
	return nil
}

// resolveHooksDir returns the hooks directory with symlinks resolved. It
// must be a directory inside the repository.
func resolveHooksDir(targetRoot, hooksPath string) (string, error) {
	notFound := fmt.Errorf("hooks directory %s not found", hooksPath)

	dir, err := filepath.EvalSymlinks(filepath.Join(targetRoot, filepath.FromSlash(hooksPath)))
	if err != nil {
		return "", notFound
	}
	root, err := filepath.EvalSymlinks(targetRoot)
	if err != nil {
		return "", notFound
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("hooks directory %s is outside the repository", hooksPath)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", notFound
	}
	return dir, nil
}

// chmod is replaced in tests
var chmod = os.Chmod

// makeExecutable adds the execute bits to every regular file directly in
// dir. Subdirectories and symlinks are left alone.
func makeExecutable(dir string) []error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []error{&PermissionError{Path: dir, Err: err}}
	}

	var errs []error
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		p := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			errs = append(errs, &PermissionError{Path: p, Err: err})
			continue
		}
		mode := info.Mode().Perm()
		if mode&0o111 == 0o111 {
			continue
		}
		if err := chmod(p, mode|0o111); err != nil {
			errs = append(errs, &PermissionError{Path: p, Err: err})
		}
	}
	return errs
}
