// Package resolver turns a caller-supplied path into the ordered list of
// .mp4 files to convert.
package resolver

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Input errors.
var (
	ErrPathNotFound = errors.New("input path not found")
	ErrInvalidInput = errors.New("input file is not an .mp4")
)

// inputExtension is the only extension accepted, compared case-insensitively.
// The check applies to explicit single-file inputs as well as directory
// entries.
const inputExtension = ".mp4"

// Resolver discovers convertible input files.
type Resolver struct {
	Recursive bool
}

// New creates a resolver. Recursive enables walking a directory input's
// whole tree instead of its immediate entries.
func New(recursive bool) *Resolver {
	return &Resolver{Recursive: recursive}
}

// Resolve maps path to zero or more input files in lexicographic order.
// A regular file must carry the .mp4 extension; a directory yields its
// matching entries; a missing path or one that is neither file nor
// directory fails with ErrPathNotFound.
func (r *Resolver) Resolve(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat input path: %w", err)
	}

	switch {
	case info.Mode().IsRegular():
		if !hasInputExtension(path) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidInput, path)
		}
		return []string{path}, nil
	case info.IsDir():
		if r.Recursive {
			return walkDirectory(path)
		}
		return listDirectory(path)
	default:
		return nil, fmt.Errorf("%w: %s is neither a file nor a directory", ErrPathNotFound, path)
	}
}

// listDirectory returns the directory's immediate .mp4 entries.
func listDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !hasInputExtension(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	sort.Strings(files)
	return files, nil
}

// walkDirectory returns every .mp4 file under dir, at any depth.
func walkDirectory(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("Error accessing path", "path", path, "error", err)
			return nil // Continue scanning despite errors
		}
		if d.IsDir() {
			return nil
		}
		if !hasInputExtension(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

func hasInputExtension(path string) bool {
	return strings.EqualFold(filepath.Ext(path), inputExtension)
}
