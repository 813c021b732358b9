package extract

import (
	"log/slog"
	"regexp"

	"flight_report/internal/dom"
	"flight_report/internal/models"
)

// Markup of the airport departures board
var (
	departureEntry    = dom.TagClass("li", "airport__flight-list-item")
	departureTime     = dom.TagAttr("div", dom.Attr{Key: "data-testid", Val: "base-day-period-formatter"})
	departureModel    = dom.TagClass("span", "inline-flex h-4 items-center rounded px-1 text-2xs font-semibold bg-blue-200 text-blue-600")
	departureDate     = dom.TagClass("h3", "inline-flex items-center text-sm uppercase")
	departureFlightNo = dom.TagClass("span", "truncate text-sm text-gray-900")
	departureLogo     = dom.TagAttr("div", dom.Attr{Key: "aria-label", Val: "logo"}, dom.Attr{Key: "role", Val: "img"})

	styleURL = regexp.MustCompile(`url\("([^"]+)"\)`)
)

// Departures extracts flights from a saved airport departures board
type Departures struct{}

// NewDepartures creates an extractor for departures boards
func NewDepartures() *Departures {
	return &Departures{}
}

func (d *Departures) Extract(doc *dom.Document, source string) []models.Flight {
	return extractEntries(doc, source, departureEntry, d.entry)
}

func (d *Departures) entry(item dom.Element, source string) (models.Flight, error) {
	model, err := d.aircraftModel(item)
	if err != nil {
		return models.Flight{}, err
	}
	date, err := d.date(item)
	if err != nil {
		return models.Flight{}, err
	}
	flightNo, err := d.flightNumber(item)
	if err != nil {
		return models.Flight{}, err
	}

	departure, err := d.scheduledDeparture(item)
	if err != nil {
		slog.Debug("No scheduled departure", "source", source, "flight_number", flightNo, "error", err)
	}
	imageURL, err := d.imageURL(item)
	if err != nil {
		slog.Debug("No logo image", "source", source, "flight_number", flightNo, "error", err)
	}

	return models.Flight{
		ScheduledDeparture: departure,
		Date:               date,
		AircraftModel:      model,
		FlightNumber:       flightNo,
		ImageURL:           imageURL,
		SourceURL:          source,
	}, nil
}

func (d *Departures) scheduledDeparture(item dom.Element) (string, error) {
	el, ok := item.FindFirst(departureTime)
	if !ok {
		return "", missing("scheduled_departure", departureTime.String())
	}
	return el.Text(), nil
}

func (d *Departures) aircraftModel(item dom.Element) (string, error) {
	el, ok := item.FindFirst(departureModel)
	if !ok {
		return "", missing("aircraft_model", departureModel.String())
	}
	model := firstToken(el.Text())
	if model == "" {
		return "", malformed("aircraft_model", "empty text")
	}
	return model, nil
}

// date reads the day header that precedes the entry on the board
func (d *Departures) date(item dom.Element) (string, error) {
	el, ok := item.FindPrevious(departureDate)
	if !ok {
		return "", missing("date", departureDate.String())
	}
	text := el.Text()
	if text == "" {
		return "", malformed("date", "empty text")
	}
	return text, nil
}

func (d *Departures) flightNumber(item dom.Element) (string, error) {
	el, ok := item.FindFirst(departureFlightNo)
	if !ok {
		return "", missing("flight_number", departureFlightNo.String())
	}
	number := firstToken(el.Text())
	if number == "" {
		return "", malformed("flight_number", "empty text")
	}
	return number, nil
}

func (d *Departures) imageURL(item dom.Element) (string, error) {
	el, ok := item.FindFirst(departureLogo)
	if !ok {
		return "", missing("image_url", departureLogo.String())
	}
	style, ok := el.Attr("style")
	if !ok || style == "" {
		return "", missing("image_url", "no style attribute")
	}
	match := styleURL.FindStringSubmatch(style)
	if match == nil {
		return "", malformed("image_url", "no url() in style")
	}
	return match[1], nil
}
