package source

import (
	"fmt"
	"log/slog"
	"os"
	"unicode/utf8"

	"miren.dev/fixme/internal/extract"
)

// ReadFile returns the contents of path as text.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("read %s: not valid UTF-8 text", path)
	}
	return string(data), nil
}

// ExtractFiles extracts issues from each path. Files that cannot be read are
// reported in errs and skipped; the rest are still returned in order.
func ExtractFiles(paths []string) (lists []*extract.IssueList, errs []error) {
	for _, path := range paths {
		text, err := ReadFile(path)
		if err != nil {
			slog.Warn("skipping file", "path", path, "error", err)
			errs = append(errs, err)
			continue
		}

		list := extract.Extract(text, path)
		slog.Debug("extracted issues", "path", path, "issues", list.Len())
		lists = append(lists, list)
	}
	return lists, errs
}
