// Package pipeline runs one extract, filter, enrich and report pass over a
// fixed list of pages.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"flight_report/internal/extract"
	"flight_report/internal/filter"
	"flight_report/internal/models"
	"flight_report/internal/source"
)

// ImageFetcher resolves an image URL to a local file, or "" when unavailable
type ImageFetcher interface {
	Fetch(ctx context.Context, imageURL string) string
}

// Publisher writes the whole batch once and returns the artifact path
type Publisher interface {
	Publish(flights []models.AcceptedFlight, basePath string) (string, error)
}

// RunRecorder keeps a history of completed runs
type RunRecorder interface {
	Record(ctx context.Context, run *models.Run, flights []models.AcceptedFlight) (int64, error)
}

// Config holds pipeline configuration
type Config struct {
	Variant    string // "departures" or "registrations"
	ReportPath string // Base path of the artifact
	ImageDir   string // Image cache directory, reported in the summary
}

// Summary describes a finished run
type Summary struct {
	Documents    int // pages loaded and scanned
	Failed       int // pages that could not be loaded
	Candidates   int // entries with every required field
	Matched      int // entries admitted by the filter
	ArtifactPath string
	ImageDir     string
	Flights      []models.AcceptedFlight
}

// Pipeline processes pages strictly in the order given
type Pipeline struct {
	cfg       Config
	loader    source.Loader
	extractor extract.Extractor
	admitter  filter.Admitter
	publisher Publisher
	fetcher   ImageFetcher
	ledger    RunRecorder
	now       func() time.Time
}

func New(cfg Config, loader source.Loader, extractor extract.Extractor, admitter filter.Admitter, publisher Publisher) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		loader:    loader,
		extractor: extractor,
		admitter:  admitter,
		publisher: publisher,
		now:       time.Now,
	}
}

// WithImages enables logo downloads for flights that reference one
func (p *Pipeline) WithImages(fetcher ImageFetcher) *Pipeline {
	p.fetcher = fetcher
	return p
}

// WithLedger records each completed run
func (p *Pipeline) WithLedger(ledger RunRecorder) *Pipeline {
	p.ledger = ledger
	return p
}

// Run scans every location, then writes the accepted flights in one go.
// Per-page and per-entry failures are logged and skipped; only a failure to
// write the artifact is returned.
func (p *Pipeline) Run(ctx context.Context, locations []string) (*Summary, error) {
	started := p.now()
	summary := &Summary{ImageDir: p.cfg.ImageDir}
	batch := make([]models.AcceptedFlight, 0)

	for _, location := range locations {
		slog.Info("Processing document", "location", location)

		doc, err := p.loader.Load(ctx, location)
		if err != nil {
			slog.Error("Failed to load document", "location", location, "error", err)
			summary.Failed++
			continue
		}
		summary.Documents++

		candidates := p.extractor.Extract(doc, location)
		summary.Candidates += len(candidates)

		for _, candidate := range candidates {
			if !p.admitter.Admit(candidate) {
				continue
			}
			batch = append(batch, p.accept(ctx, candidate))
		}
	}

	summary.Matched = len(batch)
	summary.Flights = batch

	path, err := p.publisher.Publish(batch, p.cfg.ReportPath)
	if err != nil {
		return nil, fmt.Errorf("failed to publish report: %w", err)
	}
	summary.ArtifactPath = path

	if p.ledger != nil {
		run := &models.Run{
			Variant:      p.cfg.Variant,
			StartedAt:    started,
			FinishedAt:   p.now(),
			Documents:    summary.Documents,
			Candidates:   summary.Candidates,
			Matched:      summary.Matched,
			ArtifactPath: path,
			ImageDir:     p.cfg.ImageDir,
		}
		if _, err := p.ledger.Record(ctx, run, batch); err != nil {
			slog.Error("Failed to record run", "error", err)
		}
	}

	slog.Info("Extraction complete",
		"documents", summary.Documents,
		"failed_documents", summary.Failed,
		"candidates", summary.Candidates,
		"matched", summary.Matched,
		"report", summary.ArtifactPath,
		"images", summary.ImageDir,
	)

	return summary, nil
}

func (p *Pipeline) accept(ctx context.Context, f models.Flight) models.AcceptedFlight {
	slog.Info("Found matching entry",
		"source", f.SourceURL,
		"date", f.Date,
		"aircraft_model", f.AircraftModel,
		"flight_number", f.FlightNumber,
		"origin", f.Origin,
		"destination", f.Destination,
		"std", f.ScheduledDeparture,
		"sta", f.ScheduledArrival,
	)

	accepted := models.AcceptedFlight{Flight: f}
	if p.fetcher != nil && f.ImageURL != "" {
		accepted.ImagePath = p.fetcher.Fetch(ctx, f.ImageURL)
	}
	return accepted
}
