package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	defaultTemplateURL = "https://github.com/mrWheel/templateRepo"
	defaultHooksPath   = "tools/git-hooks"

	// repoConfigFileName is the optional per-repository config file
	repoConfigFileName = ".scaffold.toml"
)

// defaultPaths is the copy list used when neither a flag nor the repository
// config overrides it
var defaultPaths = []string{
	".github/workflows",
	"tools/git-hooks",
	".clang-format",
}

// repoConfig holds per-repository defaults from .scaffold.toml.
// Zero values mean "not set".
type repoConfig struct {
	TemplateURL string   `toml:"template_url"`
	Ref         string   `toml:"ref"`
	Paths       []string `toml:"paths"`
	HooksPath   string   `toml:"hooks_path"`
}

// loadRepoConfig reads .scaffold.toml from the repository root.
// Returns nil (no error) if the file doesn't exist.
func loadRepoConfig(root string) (*repoConfig, error) {
	configFile := filepath.Join(root, repoConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &ConfigError{Key: repoConfigFileName, Err: err}
	}

	var cfg repoConfig
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, &ConfigError{Key: repoConfigFileName, Err: err}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, &ConfigError{Key: repoConfigFileName, Err: fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))}
	}
	return &cfg, nil
}

// applyTo fills the options that were not set explicitly on the command line.
// changed reports whether the named flag was set.
func (c *repoConfig) applyTo(opts *Options, changed func(name string) bool) {
	if c == nil {
		return
	}
	if c.TemplateURL != "" && !changed("template-url") {
		opts.Template.URL = c.TemplateURL
	}
	if c.Ref != "" && !changed("ref") {
		opts.Template.Ref = c.Ref
	}
	if len(c.Paths) > 0 && !changed("paths") {
		opts.Paths = dedupePaths(c.Paths)
	}
	if c.HooksPath != "" && !changed("hooks-path") {
		opts.HooksPath = c.HooksPath
	}
}

// parsePaths splits a comma separated copy list
func parsePaths(s string) []string {
	return dedupePaths(strings.Split(s, ","))
}

// dedupePaths trims entries, drops empty ones and removes duplicates,
// keeping the first occurrence.
func dedupePaths(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		key := p
		if clean, err := cleanEntry(p); err == nil {
			key = clean
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}
