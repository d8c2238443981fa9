// Package fs holds the small filesystem helpers the pipelines share.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Crawl returns every regular file below dir, depth first, in name order.
func Crawl(ctx context.Context, dir string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var files []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			logger.Debug().Str("dir", path).Msg("crawling")
			children, err := Crawl(ctx, path)
			if err != nil {
				return nil, err
			}
			files = append(files, children...)
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

// WriteFile writes data to path, creating missing parent directories.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Mirror maps file, found below inputRoot, to the same relative location
// below outputRoot with its extension replaced by ext.
func Mirror(inputRoot, outputRoot, file, ext string) (string, error) {
	rel, err := filepath.Rel(inputRoot, file)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s against %s: %w", file, inputRoot, err)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ext
	return filepath.Join(outputRoot, rel), nil
}

// Relative returns file relative to inputRoot with forward slashes.
func Relative(inputRoot, file string) (string, error) {
	rel, err := filepath.Rel(inputRoot, file)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s against %s: %w", file, inputRoot, err)
	}
	return filepath.ToSlash(rel), nil
}

// HasExt reports whether path ends with ext, ignoring case.
func HasExt(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), ext)
}
