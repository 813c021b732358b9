package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"flight_report/internal/models"
)

// CSVHeader is the fixed column order of the CSV report
var CSVHeader = []string{"URL", "Date", "From", "To", "STD", "STA"}

// CSVWriter writes aircraft history flights as plain UTF-8 CSV
type CSVWriter struct{}

func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

func (w *CSVWriter) Write(flights []models.AcceptedFlight, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, fl := range flights {
		if err := cw.Write([]string{
			fl.SourceURL,
			fl.Date,
			fl.Origin,
			fl.Destination,
			fl.ScheduledDeparture,
			fl.ScheduledArrival,
		}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return file.Close()
}
