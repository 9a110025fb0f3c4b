package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// checkTarget verifies the target is a git repository root. It runs before
// anything touches the network or the filesystem.
func checkTarget(target string) error {
	if !isGitRepo(target) {
		return &NotAGitRepoError{Path: target}
	}
	return nil
}

// checkGit verifies git is installed before the template is fetched
func checkGit(src TemplateSource) error {
	if err := gitAvailable(); err != nil {
		return &FetchError{URL: src.URL, Ref: src.Ref, Err: err}
	}
	return nil
}

// apply fetches the template into a temporary workspace, merges the copy
// list into the target and activates the hooks. The workspace is removed
// on every return path.
func apply(ctx context.Context, opts Options, log *logger) (*Result, error) {
	workspace, err := os.MkdirTemp("", "scaffold-template-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary workspace: %w", err)
	}
	log.Verbosef("created workspace %s", workspace)
	defer func() {
		if err := os.RemoveAll(workspace); err != nil {
			log.Warnf("failed to remove temporary workspace %s: %v", workspace, err)
			return
		}
		log.Verbosef("removed workspace %s", workspace)
	}()

	templateRoot := filepath.Join(workspace, "template")
	if err := fetch(ctx, log, opts.Template, templateRoot); err != nil {
		return nil, err
	}

	outcomes, err := merge(ctx, log, templateRoot, opts.Target, opts.Paths)
	result := &Result{Outcomes: outcomes}
	if err != nil {
		return result, err
	}

	if err := activateHooks(ctx, log, opts.Target, opts.HooksPath); err != nil {
		return result, err
	}
	return result, nil
}

// fetch makes a shallow clone of the template at path
func fetch(ctx context.Context, log *logger, src TemplateSource, path string) error {
	if src.Ref != "" {
		log.Printf("fetching template %s (ref %s)", src.URL, src.Ref)
	} else {
		log.Printf("fetching template %s", src.URL)
	}

	if err := clone(ctx, log, src, path); err != nil {
		return &FetchError{URL: src.URL, Ref: src.Ref, Err: err}
	}
	return nil
}
