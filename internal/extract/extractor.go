// Package extract turns parsed flight pages into candidate flights.
package extract

import (
	"errors"
	"log/slog"
	"strings"

	"flight_report/internal/dom"
	"flight_report/internal/models"
)

// Extractor pulls candidate flights out of one parsed page. It never fails:
// entries missing a required field are logged and skipped.
type Extractor interface {
	Extract(doc *dom.Document, source string) []models.Flight
}

// entryFunc resolves one entry container into a flight
type entryFunc func(entry dom.Element, source string) (models.Flight, error)

// extractEntries applies resolve to every container matched by sel,
// keeping only entries whose required fields all resolved.
func extractEntries(doc *dom.Document, source string, sel dom.Selector, resolve entryFunc) []models.Flight {
	if doc == nil {
		return nil
	}

	entries := doc.Root().FindAll(sel)
	slog.Debug("Found entry containers", "source", source, "selector", sel.String(), "count", len(entries))

	flights := make([]models.Flight, 0, len(entries))
	for i, entry := range entries {
		flight, err := resolve(entry, source)
		if err != nil {
			var fieldErr *FieldError
			field := ""
			if errors.As(err, &fieldErr) {
				field = fieldErr.Field
			}
			slog.Warn("Skipping entry",
				"source", source,
				"entry", i+1,
				"field", field,
				"error", err,
			)
			continue
		}
		flights = append(flights, flight)
	}
	return flights
}

// firstToken returns the first whitespace separated token of s
func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// beforeParen returns the trimmed text before the first "(" of s,
// turning "Shenzhen (SZX)" into "Shenzhen".
func beforeParen(s string) string {
	if i := strings.Index(s, "("); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
