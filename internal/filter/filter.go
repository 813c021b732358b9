// Package filter decides which extracted flights are kept for the report.
package filter

import (
	"strings"

	"flight_report/internal/models"
)

// Admitter decides whether a flight is in scope. Implementations are pure.
type Admitter interface {
	Admit(f models.Flight) bool
}

// RouteFilter admits flights whose origin or destination contains a place
// name, ignoring case.
type RouteFilter struct {
	keyword string
}

func NewRouteFilter(keyword string) *RouteFilter {
	return &RouteFilter{keyword: strings.ToLower(keyword)}
}

func (r *RouteFilter) Admit(f models.Flight) bool {
	return strings.Contains(strings.ToLower(f.Origin), r.keyword) ||
		strings.Contains(strings.ToLower(f.Destination), r.keyword)
}

// AircraftFilter admits flights whose aircraft model contains any include
// token and none of the exclude fragments. This picks type families such as
// "73" while leaving out individual codes such as "738".
type AircraftFilter struct {
	include []string
	exclude []string
}

func NewAircraftFilter(include, exclude []string) *AircraftFilter {
	return &AircraftFilter{
		include: append([]string(nil), include...),
		exclude: append([]string(nil), exclude...),
	}
}

func (a *AircraftFilter) Admit(f models.Flight) bool {
	if !containsAny(f.AircraftModel, a.include) {
		return false
	}
	return !containsAny(f.AircraftModel, a.exclude)
}

func containsAny(s string, fragments []string) bool {
	for _, frag := range fragments {
		if strings.Contains(s, frag) {
			return true
		}
	}
	return false
}
