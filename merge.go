package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// merge copies each entry from the template into the target if the target
// doesn't have it yet. Entries are independent, a failed entry is recorded
// and the remaining entries are still processed.
func merge(ctx context.Context, log *logger, templateRoot, targetRoot string, entries []string) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		outcome := mergeEntry(log, templateRoot, targetRoot, entry)
		if outcome.Status == StatusFailed {
			log.Errorf("%v", outcome.Err)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

// mergeEntry copies a single entry
func mergeEntry(log *logger, templateRoot, targetRoot, entry string) Outcome {
	rel, err := cleanEntry(entry)
	if err != nil {
		return Outcome{Entry: entry, Status: StatusFailed, Err: &CopyError{Entry: entry, Err: err}}
	}
	failed := func(err error) Outcome {
		return Outcome{Entry: rel, Status: StatusFailed, Err: &CopyError{Entry: rel, Err: err}}
	}

	src := filepath.Join(templateRoot, filepath.FromSlash(rel))
	dst := filepath.Join(targetRoot, filepath.FromSlash(rel))

	if _, err := os.Lstat(src); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warnf("%s not found in template, skipping", rel)
			return Outcome{Entry: rel, Status: StatusMissing}
		}
		return failed(err)
	}

	// Existence only, the contents of the destination are never inspected
	if _, err := os.Lstat(dst); err == nil {
		log.Warnf("%s already exists, skipping", rel)
		return Outcome{Entry: rel, Status: StatusSkipped}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return failed(err)
	}

	n, err := copyEntry(src, dst)
	if err != nil {
		return failed(err)
	}

	log.Printf("copied %s", rel)
	log.Verbosef("  %d files", n)
	return Outcome{Entry: rel, Status: StatusCopied}
}

// cleanEntry normalizes a copy list entry to a clean slash separated path
// and rejects entries that would resolve outside the repository root.
func cleanEntry(entry string) (string, error) {
	e := strings.TrimSpace(entry)
	if e == "" {
		return "", fmt.Errorf("empty path")
	}
	if filepath.IsAbs(e) || path.IsAbs(filepath.ToSlash(e)) {
		return "", fmt.Errorf("path %q must be relative", entry)
	}
	e = path.Clean(filepath.ToSlash(e))
	if e == "." || e == ".." || strings.HasPrefix(e, "../") {
		return "", fmt.Errorf("path %q is outside the repository", entry)
	}
	return e, nil
}

// copyEntry copies the file or tree at src to dst, which must not exist.
// The copy is staged next to dst and renamed into place, so dst is either
// complete or absent. Returns the number of files copied.
func copyEntry(src, dst string) (int, error) {
	parent := filepath.Dir(dst)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create parent directory: %w", err)
	}

	staging, err := os.MkdirTemp(parent, ".scaffold-tmp-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	tmp := filepath.Join(staging, filepath.Base(dst))
	n, err := copyTree(src, tmp)
	if err != nil {
		return 0, err
	}

	if err := os.Rename(tmp, dst); err != nil {
		return 0, fmt.Errorf("failed to move into place: %w", err)
	}

	// Moving a directory needs write access to it, so its mode comes last
	info, err := os.Lstat(src)
	if err != nil {
		return 0, err
	}
	if info.IsDir() {
		if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
			return 0, err
		}
	}
	return n, nil
}

// copyTree recursively copies src to dst preserving mode bits, except for
// the mode of dst itself when src is a directory. Symlinks are recreated,
// not followed.
func copyTree(src, dst string) (int, error) {
	type dirMode struct {
		path string
		mode fs.FileMode
	}
	// Directory modes are applied last so read-only directories can be filled
	var dirs []dirMode
	files := 0

	err := filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(p)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		case d.IsDir():
			if err := os.Mkdir(target, 0o700); err != nil {
				return err
			}
			if p != src {
				dirs = append(dirs, dirMode{path: target, mode: info.Mode().Perm()})
			}
			return nil
		case d.Type().IsRegular():
			if err := copyFile(p, target, info.Mode().Perm()); err != nil {
				return err
			}
			files++
			return nil
		default:
			return fmt.Errorf("%s: unsupported file type %s", p, d.Type())
		}
	})
	if err != nil {
		return 0, err
	}

	for i := len(dirs) - 1; i >= 0; i-- {
		if err := os.Chmod(dirs[i].path, dirs[i].mode); err != nil {
			return 0, err
		}
	}
	return files, nil
}

// copyFile copies a regular file byte for byte and sets mode on the copy
func copyFile(src, dst string, mode fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	// Chmod explicitly, the mode passed to OpenFile is subject to umask
	return os.Chmod(dst, mode)
}
