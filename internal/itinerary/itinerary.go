// Package itinerary turns an ordered station sequence into a
// distance-annotated route suitable for rendering on a map.
package itinerary

import (
	"github.com/twpayne/go-polyline"

	"cheminot.railnav.org/internal/stations"
	"cheminot.railnav.org/internal/utils"
)

// Step labels.
const (
	LabelDeparture = "departure"
	LabelStop      = "stop"
	LabelArrival   = "arrival"
)

// Step is one station along the route with the great-circle distance from
// the previous step. The first step's distance is always 0.
type Step struct {
	Label      string           `json:"label"`
	Station    stations.Station `json:"station"`
	DistanceKm float64          `json:"distanceKmFromPrev"`
}

// Route is the full ordered itinerary.
type Route struct {
	Steps    []Step  `json:"steps"`
	TotalKm  float64 `json:"totalKm"`
	Polyline string  `json:"polyline"`
}

// Build produces [departure] + via + [arrival] with haversine distances
// between consecutive stations. It is pure and preserves input order.
func Build(departure stations.Station, via []stations.Station, arrival stations.Station) Route {
	ordered := make([]stations.Station, 0, len(via)+2)
	ordered = append(ordered, departure)
	ordered = append(ordered, via...)
	ordered = append(ordered, arrival)

	steps := make([]Step, 0, len(ordered))
	coords := make([][]float64, 0, len(ordered))
	total := 0.0
	for i, st := range ordered {
		label := LabelStop
		distance := 0.0
		switch i {
		case 0:
			label = LabelDeparture
		case len(ordered) - 1:
			label = LabelArrival
		}
		if i > 0 {
			prev := ordered[i-1]
			distance = utils.HaversineKm(prev.Latitude, prev.Longitude, st.Latitude, st.Longitude)
			total += distance
		}
		steps = append(steps, Step{Label: label, Station: st, DistanceKm: distance})
		coords = append(coords, []float64{st.Latitude, st.Longitude})
	}

	return Route{
		Steps:    steps,
		TotalKm:  total,
		Polyline: string(polyline.EncodeCoords(coords)),
	}
}
