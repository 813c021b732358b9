package cmd

import (
	"io"
	"time"

	"flight_report/internal/models"

	"github.com/jedib0t/go-pretty/v6/table"
)

// renderFlights prints accepted flights in the columns of the variant's report
func renderFlights(w io.Writer, variant string, flights []models.AcceptedFlight) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	switch variant {
	case "departures":
		t.AppendHeader(table.Row{"Aircraft Model", "Scheduled Departure", "Date", "Flight Number", "Image"})
		for _, f := range flights {
			t.AppendRow(table.Row{f.AircraftModel, f.ScheduledDeparture, f.Date, f.FlightNumber, f.ImagePath})
		}
	case "registrations":
		t.AppendHeader(table.Row{"URL", "Date", "From", "To", "STD", "STA"})
		for _, f := range flights {
			t.AppendRow(table.Row{f.SourceURL, f.Date, f.Origin, f.Destination, f.ScheduledDeparture, f.ScheduledArrival})
		}
	default:
		t.AppendHeader(table.Row{"Date", "Flight Number", "Aircraft Model", "From", "To", "STD", "STA", "Source"})
		for _, f := range flights {
			t.AppendRow(table.Row{f.Date, f.FlightNumber, f.AircraftModel, f.Origin, f.Destination, f.ScheduledDeparture, f.ScheduledArrival, f.SourceURL})
		}
	}
	t.AppendFooter(table.Row{"Total", len(flights)})
	t.Render()
}

func renderRuns(w io.Writer, runs []models.Run) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Variant", "Started", "Duration", "Documents", "Candidates", "Matched", "Report"})
	for _, r := range runs {
		t.AppendRow(table.Row{
			r.ID,
			r.Variant,
			r.StartedAt.Local().Format(time.DateTime),
			r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond),
			r.Documents,
			r.Candidates,
			r.Matched,
			r.ArtifactPath,
		})
	}
	t.Render()
}
