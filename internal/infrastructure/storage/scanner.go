// Package storage holds the filesystem side of the back office: the
// usage scanner and uploaded files.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ExcludedDirs are skipped entirely when measuring a client folder.
var ExcludedDirs = map[string]struct{}{
	"node_modules": {},
	".next":        {},
	"dist":         {},
	".git":         {},
	"cache":        {},
	".cache":       {},
	"__pycache__":  {},
	"vendor":       {},
	"tmp":          {},
	"temp":         {},
}

// ExcludedExtensions are files that do not count against the quota.
var ExcludedExtensions = map[string]struct{}{
	".log": {},
}

// ErrFolderNotFound is returned when the configured folder does not exist.
var ErrFolderNotFound = errors.New("folder not found")

// Usage is the outcome of one walk.
type Usage struct {
	TotalBytes    int64
	FileCount     int64
	ExcludedCount int64
	Elapsed       time.Duration
}

// Scanner measures folder trees on the local disk.
type Scanner struct{}

func NewScanner() *Scanner {
	return &Scanner{}
}

// Measure sums the size of every regular file under root. Unreadable
// entries are skipped. The walk stops early when ctx is cancelled.
func (s *Scanner) Measure(ctx context.Context, root string) (*Usage, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrFolderNotFound, root)
	}

	start := time.Now()
	usage := &Usage{}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := ExcludedDirs[d.Name()]; skip {
				usage.ExcludedCount++
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if _, skip := ExcludedExtensions[strings.ToLower(filepath.Ext(d.Name()))]; skip {
			usage.ExcludedCount++
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return nil
		}
		usage.TotalBytes += fi.Size()
		usage.FileCount++
		return nil
	})
	if err != nil {
		return nil, err
	}

	usage.Elapsed = time.Since(start)
	return usage, nil
}
