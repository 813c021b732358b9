package database

import (
	"context"
	"database/sql"
	"fmt"

	"flight_report/internal/models"
)

type RunRepository interface {
	Record(ctx context.Context, run *models.Run, flights []models.AcceptedFlight) (int64, error)
	Recent(ctx context.Context, limit int) ([]models.Run, error)
	Flights(ctx context.Context, runID int64) ([]models.AcceptedFlight, error)
}

type runRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) RunRepository {
	return &runRepository{db: db}
}

// Record stores a run and its accepted flights in a single transaction
func (r *runRepository) Record(ctx context.Context, run *models.Run, flights []models.AcceptedFlight) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `INSERT INTO runs (
		variant, started_at, finished_at, documents, candidates, matched, artifact_path, image_dir
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Variant, run.StartedAt, run.FinishedAt,
		run.Documents, run.Candidates, run.Matched,
		run.ArtifactPath, run.ImageDir,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO flights (
		run_id, position, origin, destination, scheduled_departure, scheduled_arrival,
		date, aircraft_model, flight_number, image_url, image_path, source_url
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, f := range flights {
		if _, err := stmt.ExecContext(ctx,
			runID, i,
			f.Origin, f.Destination, f.ScheduledDeparture, f.ScheduledArrival,
			f.Date, f.AircraftModel, f.FlightNumber, f.ImageURL, f.ImagePath, f.SourceURL,
		); err != nil {
			return 0, fmt.Errorf("failed to insert flight: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	run.ID = runID
	return runID, nil
}

// Recent returns the latest runs, newest first
func (r *runRepository) Recent(ctx context.Context, limit int) ([]models.Run, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT
		id, variant, started_at, finished_at, documents, candidates, matched, artifact_path, COALESCE(image_dir, '')
	FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		var run models.Run
		if err := rows.Scan(
			&run.ID, &run.Variant, &run.StartedAt, &run.FinishedAt,
			&run.Documents, &run.Candidates, &run.Matched,
			&run.ArtifactPath, &run.ImageDir,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

// Flights returns the accepted flights of a run in report order
func (r *runRepository) Flights(ctx context.Context, runID int64) ([]models.AcceptedFlight, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT
		origin, destination, scheduled_departure, scheduled_arrival, date,
		aircraft_model, flight_number, image_url, image_path, source_url
	FROM flights WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query flights: %w", err)
	}
	defer rows.Close()

	var flights []models.AcceptedFlight
	for rows.Next() {
		var f models.AcceptedFlight
		if err := rows.Scan(
			&f.Origin, &f.Destination, &f.ScheduledDeparture, &f.ScheduledArrival, &f.Date,
			&f.AircraftModel, &f.FlightNumber, &f.ImageURL, &f.ImagePath, &f.SourceURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan flight: %w", err)
		}
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate flights: %w", err)
	}
	return flights, nil
}
