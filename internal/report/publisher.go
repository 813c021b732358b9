// Package report writes accepted flights to a spreadsheet or CSV artifact
// without ever overwriting an earlier one.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"flight_report/internal/models"
)

// ConflictPolicy decides where a new artifact goes when the base path is taken
type ConflictPolicy string

const (
	// ConflictSuffix writes to name_1.ext, name_2.ext, ...
	ConflictSuffix ConflictPolicy = "suffix"
	// ConflictRotate renames the old artifact to name_<timestamp>.ext and
	// writes to the base path
	ConflictRotate ConflictPolicy = "rotate"
)

// Writer serializes a whole batch of flights to path
type Writer interface {
	Write(flights []models.AcceptedFlight, path string) error
}

// Publisher resolves the output path and writes the artifact once
type Publisher struct {
	writer Writer
	policy ConflictPolicy
	now    func() time.Time
}

func NewPublisher(writer Writer, policy ConflictPolicy) *Publisher {
	if policy == "" {
		policy = ConflictSuffix
	}
	return &Publisher{writer: writer, policy: policy, now: time.Now}
}

// Publish writes flights next to basePath and returns the path used
func (p *Publisher) Publish(flights []models.AcceptedFlight, basePath string) (string, error) {
	if dir := filepath.Dir(basePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	path := basePath
	if p.policy == ConflictSuffix {
		path = UniquePath(basePath)
	}

	// The chosen path may have been taken since it was resolved
	rotated, err := RotateExisting(path, p.now())
	if err != nil {
		return "", err
	}
	if rotated != "" {
		slog.Info("Renamed existing file", "from", path, "to", rotated)
	}

	if err := p.writeAtomic(flights, path); err != nil {
		return "", err
	}
	return path, nil
}

// writeAtomic writes to a temp file beside path and renames it into place,
// so a failed write leaves no artifact behind.
func (p *Publisher) writeAtomic(flights []models.AcceptedFlight, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".report-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("failed to create temp report: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := p.writer.Write(flights, tmpPath); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move report into place: %w", err)
	}
	return nil
}
