package stations

import (
	"sort"

	"cheminot.railnav.org/internal/utils"
)

// NearbyStation pairs a station with its distance from a query point.
type NearbyStation struct {
	Station  Station `json:"station"`
	Distance float64 `json:"distanceMeters"`
}

// Near returns up to limit stations within radiusMeters of the point,
// closest first. The rtree narrows the search to a bounding box; exact
// distances filter and order the result.
func (idx *Index) Near(lat, lon, radiusMeters float64, limit int) []NearbyStation {
	if radiusMeters <= 0 {
		return nil
	}
	bounds := utils.CalculateBounds(lat, lon, radiusMeters)

	var out []NearbyStation
	idx.tree.Search(
		[2]float64{bounds.MinLon, bounds.MinLat},
		[2]float64{bounds.MaxLon, bounds.MaxLat},
		func(_, _ [2]float64, i int) bool {
			s := idx.stations[i]
			d := utils.Distance(lat, lon, s.Latitude, s.Longitude)
			if d <= radiusMeters {
				out = append(out, NearbyStation{Station: s, Distance: d})
			}
			return true
		},
	)

	sort.SliceStable(out, func(a, b int) bool { return out[a].Distance < out[b].Distance })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
