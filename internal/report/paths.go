package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TimestampLayout is appended to rotated artifacts
const TimestampLayout = "20060102_150405"

// UniquePath returns base when nothing exists there, otherwise the first of
// name_1.ext, name_2.ext, ... that is unused.
func UniquePath(base string) string {
	if !exists(base) {
		return base
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if !exists(candidate) {
			return candidate
		}
	}
}

// RotateExisting moves a file occupying path aside to name_<timestamp>.ext
// and returns the new location. It returns "" when path is free.
func RotateExisting(path string, now time.Time) (string, error) {
	if !exists(path) {
		return "", nil
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	rotated := UniquePath(fmt.Sprintf("%s_%s%s", stem, now.Format(TimestampLayout), ext))
	if err := os.Rename(path, rotated); err != nil {
		return "", fmt.Errorf("failed to rename existing file %s: %w", path, err)
	}
	return rotated, nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}
