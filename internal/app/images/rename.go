// Package images normalises sprite file names so they can be derived from a
// species name.
package images

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// Extensions are the image file extensions RenameDir touches.
var Extensions = []string{".jfif", ".png", ".jpg", ".jpeg", ".gif"}

var (
	disallowed  = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRuns  = regexp.MustCompile(`-+`)
	errEmpty    = errors.New("sanitized name is empty")
	errConflict = errors.New("target already exists")
)

// SanitizeName lowercases name, turns spaces into hyphens, drops anything
// outside [a-z0-9-] and collapses hyphen runs.
func SanitizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")
	name = disallowed.ReplaceAllString(name, "")
	return hyphenRuns.ReplaceAllString(name, "-")
}

// IsImage reports whether filename has one of Extensions, ignoring case.
func IsImage(filename string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(filename)))
}

// TargetName returns the sanitized form of filename with its extension
// lowercased.
func TargetName(filename string) string {
	ext := filepath.Ext(filename)
	return SanitizeName(strings.TrimSuffix(filename, ext)) + strings.ToLower(ext)
}

// Result counts what RenameDir did.
type Result struct {
	Found   int
	Renamed int
	Skipped int
	Failed  int
}

// RenameDir renames every image file directly inside dir to its TargetName.
// Files already correctly named are skipped. A per-file failure (empty
// sanitized name, existing target, rename error) is logged and counted; only
// failing to list dir is returned as an error.
func RenameDir(ctx context.Context, dir string, logger *slog.Logger) (Result, error) {
	log := logger.With("component", "images", "dir", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Result{}, fmt.Errorf("images: read dir %s: %w", dir, err)
	}

	var res Result
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if !e.Type().IsRegular() || !IsImage(e.Name()) {
			continue
		}
		res.Found++

		from := e.Name()
		to := TargetName(from)
		if to == from {
			log.Debug("already correctly named", slog.String("file", from))
			res.Skipped++
			continue
		}

		if err := renameOne(dir, from, to); err != nil {
			log.Warn("rename failed", slog.String("file", from), slog.String("target", to), slog.String("error", err.Error()))
			res.Failed++
			continue
		}
		log.Info("renamed", slog.String("file", from), slog.String("target", to))
		res.Renamed++
	}

	if res.Found == 0 {
		log.Info("no image files found")
	}
	return res, nil
}

func renameOne(dir, from, to string) error {
	if to == "" || strings.HasPrefix(to, ".") {
		return errEmpty
	}
	target := filepath.Join(dir, to)
	if _, err := os.Lstat(target); err == nil {
		return errConflict
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Rename(filepath.Join(dir, from), target)
}
