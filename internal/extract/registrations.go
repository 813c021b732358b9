package extract

import (
	"log/slog"

	"flight_report/internal/dom"
	"flight_report/internal/models"
)

// Markup of the aircraft flight history table
var (
	registrationEntry = dom.TagClass("tr", "data-row")
	registrationDate  = dom.TagAttr("td", dom.Attr{Key: "data-time-format", Val: "DD MMM YYYY"}).WithClass("hidden-xs hidden-sm")
	registrationValue = dom.TagClass("span", "details")
)

// Registrations extracts flights from an aircraft's flight history page
type Registrations struct{}

// NewRegistrations creates an extractor for aircraft history pages
func NewRegistrations() *Registrations {
	return &Registrations{}
}

func (r *Registrations) Extract(doc *dom.Document, source string) []models.Flight {
	return extractEntries(doc, source, registrationEntry, r.entry)
}

func (r *Registrations) entry(row dom.Element, source string) (models.Flight, error) {
	if source == "" {
		return models.Flight{}, missing("source_url", "document has no location")
	}
	date, err := r.date(row)
	if err != nil {
		return models.Flight{}, err
	}
	origin, err := r.place(row, "FROM", "origin")
	if err != nil {
		return models.Flight{}, err
	}
	destination, err := r.place(row, "TO", "destination")
	if err != nil {
		return models.Flight{}, err
	}

	std, err := r.scheduled(row, "STD", "scheduled_departure")
	if err != nil {
		slog.Warn("Could not read scheduled departure", "source", source, "date", date, "error", err)
	}
	sta, err := r.scheduled(row, "STA", "scheduled_arrival")
	if err != nil {
		slog.Warn("Could not read scheduled arrival", "source", source, "date", date, "error", err)
	}

	return models.Flight{
		Origin:             origin,
		Destination:        destination,
		ScheduledDeparture: std,
		ScheduledArrival:   sta,
		Date:               date,
		SourceURL:          source,
	}, nil
}

func (r *Registrations) date(row dom.Element) (string, error) {
	el, ok := row.FindFirst(registrationDate)
	if !ok {
		return "", missing("date", registrationDate.String())
	}
	text := el.Text()
	if text == "" {
		return "", malformed("date", "empty text")
	}
	return text, nil
}

// labelled finds the value node that follows a label such as "FROM"
func (r *Registrations) labelled(row dom.Element, label, field string) (dom.Element, error) {
	sel := dom.Label("label", label)
	l, ok := row.FindFirst(sel)
	if !ok {
		return nil, missing(field, sel.String())
	}
	value, ok := l.NextSibling(registrationValue)
	if !ok {
		return nil, missing(field, registrationValue.String()+" after "+sel.String())
	}
	return value, nil
}

func (r *Registrations) place(row dom.Element, label, field string) (string, error) {
	value, err := r.labelled(row, label, field)
	if err != nil {
		return "", err
	}
	place := beforeParen(value.Text())
	if place == "" {
		return "", malformed(field, "empty place name")
	}
	return place, nil
}

func (r *Registrations) scheduled(row dom.Element, label, field string) (string, error) {
	value, err := r.labelled(row, label, field)
	if err != nil {
		return "", err
	}
	epoch, ok := value.Attr("data-timestamp")
	if !ok {
		return "", missing(field, "no data-timestamp")
	}
	offset, ok := value.Attr("data-offset")
	if !ok {
		return "", missing(field, "no data-offset")
	}
	hhmm := NormalizeTimestamp(epoch, offset)
	if hhmm == "" {
		return "", malformed(field, "timestamp "+epoch+" offset "+offset)
	}
	return hhmm, nil
}
