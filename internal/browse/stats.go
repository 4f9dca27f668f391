package browse

import (
	"math"
	"sort"

	"github.com/faithmap/faithmap/internal/model"
)

// Stats holds per-type counts.
type Stats struct {
	Total  int
	ByType map[model.FacilityType]int
	Cults  int
}

// Count tallies list by type. Flagged facilities are counted under their
// type and again in Cults.
func Count(list []model.Facility) Stats {
	s := Stats{Total: len(list), ByType: make(map[model.FacilityType]int, len(model.AllTypes))}
	for _, t := range model.AllTypes {
		s.ByType[t] = 0
	}
	for _, f := range list {
		s.ByType[f.Type]++
		if f.Flagged() {
			s.Cults++
		}
	}
	return s
}

const earthRadiusKm = 6371

// Distance returns the great-circle distance in kilometres.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLng := (lng2 - lng1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Ranked is a facility with its distance from a reference point.
type Ranked struct {
	model.Facility
	DistanceKm float64
}

// Nearest returns up to n facilities ordered by distance from (lat, lng).
// Ties keep list order.
func Nearest(list []model.Facility, lat, lng float64, n int) []Ranked {
	ranked := make([]Ranked, len(list))
	for i, f := range list {
		ranked[i] = Ranked{Facility: f, DistanceKm: Distance(lat, lng, f.Lat, f.Lng)}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].DistanceKm < ranked[j].DistanceKm })
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
