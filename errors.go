package main

import (
	"errors"
	"fmt"
	"os/exec"
)

// FetchError is returned when the template repository cannot be cloned
type FetchError struct {
	URL string
	Ref string
	Err error
}

func (e *FetchError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("failed to fetch template %s at ref %s: %v", e.URL, e.Ref, e.Err)
	}
	return fmt.Sprintf("failed to fetch template %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NotAGitRepoError is returned when the target has no .git entry
type NotAGitRepoError struct {
	Path string
}

func (e *NotAGitRepoError) Error() string {
	return fmt.Sprintf("%s is not a git repository root (no .git found)", e.Path)
}

// CopyError is returned for a single copy list entry that could not be copied
type CopyError struct {
	Entry string
	Err   error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("failed to copy %s: %v", e.Entry, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }

// PermissionError is returned when a hook script cannot be made executable
type PermissionError struct {
	Path string
	Err  error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("failed to make %s executable: %v", e.Path, e.Err)
}

func (e *PermissionError) Unwrap() error { return e.Err }

// ConfigError is returned when configuration cannot be read or written.
// Key is either a git config key or the name of a config file.
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("failed to configure %s: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// exitCode maps an error returned by the root command to a process exit code.
// Precondition failures exit with 2, everything else with 1.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var notRepo *NotAGitRepoError
	if errors.As(err, &notRepo) || errors.Is(err, exec.ErrNotFound) {
		return 2
	}
	return 1
}
