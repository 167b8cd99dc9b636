// Package geo clusters pickup and dropoff coordinates into S2 cells.
package geo

import (
	"sort"

	"github.com/golang/geo/s2"
)

// DefaultLevel is the S2 cell level used when none is configured.
// Level 13 cells are roughly 1 km across.
const DefaultLevel = 13

// Hotspot is one S2 cell and the number of points that fell in it.
type Hotspot struct {
	Token string  `json:"token"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Count int     `json:"count"`
}

// Hotspots buckets [lat, lng] points into S2 cells at the given level and
// returns the busiest cells, most points first and ties by token. Points
// outside the valid lat/lng range are skipped. limit <= 0 returns all cells.
func Hotspots(points [][2]float64, level, limit int) []Hotspot {
	if level <= 0 || level > s2.MaxLevel {
		level = DefaultLevel
	}

	counts := make(map[s2.CellID]int)
	for _, p := range points {
		ll := s2.LatLngFromDegrees(p[0], p[1])
		if !ll.IsValid() {
			continue
		}
		counts[s2.CellIDFromLatLng(ll).Parent(level)]++
	}

	spots := make([]Hotspot, 0, len(counts))
	for id, n := range counts {
		centre := id.LatLng()
		spots = append(spots, Hotspot{
			Token: id.ToToken(),
			Lat:   centre.Lat.Degrees(),
			Lng:   centre.Lng.Degrees(),
			Count: n,
		})
	}

	sort.Slice(spots, func(i, j int) bool {
		if spots[i].Count != spots[j].Count {
			return spots[i].Count > spots[j].Count
		}
		return spots[i].Token < spots[j].Token
	})

	if limit > 0 && len(spots) > limit {
		spots = spots[:limit]
	}
	return spots
}

// DistanceKm returns the great-circle distance between two points.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lng1)
	p2 := s2.LatLngFromDegrees(lat2, lng2)
	return p1.Distance(p2).Radians() * earthRadiusKm
}

const earthRadiusKm = 6371.0
