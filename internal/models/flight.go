package models

import "time"

// Flight represents one flight entry extracted from a departures board or an
// aircraft history page. Optional values that the page did not carry are empty.
type Flight struct {
	Origin             string // Departure city, without the airport code
	Destination        string // Arrival city, without the airport code
	ScheduledDeparture string // HH:MM, or the board's own time text
	ScheduledArrival   string // HH:MM
	Date               string // Date as printed on the page
	AircraftModel      string // ICAO type code (e.g. B789)
	FlightNumber       string // Flight number (e.g. CZ3456)
	ImageURL           string // Airline logo URL
	SourceURL          string // Page the entry was read from
}

// AcceptedFlight is a Flight that passed admission, with its logo resolved
// to a local file. ImagePath is empty when no image was available.
type AcceptedFlight struct {
	Flight
	ImagePath string
}

// Run describes one completed pipeline run
type Run struct {
	ID           int64
	Variant      string
	StartedAt    time.Time
	FinishedAt   time.Time
	Documents    int
	Candidates   int
	Matched      int
	ArtifactPath string
	ImageDir     string
}
