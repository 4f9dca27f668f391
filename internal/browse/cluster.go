package browse

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/faithmap/faithmap/internal/model"
)

// Clustering defaults.
const (
	DefaultClusterThreshold = 500
	DefaultMaxMarkers       = 200
	ClusterMaxZoom          = 14
)

// Viewport is a lat/lng bounding box.
type Viewport struct {
	bounds *geom.Bounds
}

// NewViewport builds a viewport from its south, west, north and east edges.
func NewViewport(south, west, north, east float64) (Viewport, error) {
	if south > north || west > east {
		return Viewport{}, eris.Errorf("browse: invalid viewport (%f,%f,%f,%f)", south, west, north, east)
	}
	return Viewport{bounds: geom.NewBounds(geom.XY).Set(west, south, east, north)}, nil
}

// KoreaViewport covers the whole accepted coordinate range.
func KoreaViewport() Viewport {
	vp, _ := NewViewport(model.MinLat, model.MinLng, model.MaxLat, model.MaxLng)
	return vp
}

// ParseBBox parses "south,west,north,east".
func ParseBBox(s string) (Viewport, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Viewport{}, eris.Errorf("browse: bbox %q must be south,west,north,east", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Viewport{}, eris.Wrapf(err, "browse: parse bbox %q", s)
		}
		v[i] = f
	}
	return NewViewport(v[0], v[1], v[2], v[3])
}

// Contains reports whether the coordinate lies inside the viewport. A zero
// Viewport contains everything.
func (v Viewport) Contains(lat, lng float64) bool {
	if v.bounds == nil {
		return true
	}
	return v.bounds.OverlapsPoint(geom.XY, geom.Coord{lng, lat})
}

// Cluster is a grid cell aggregating several facilities.
type Cluster struct {
	Key    string
	Lat    float64
	Lng    float64
	Count  int
	Counts map[model.FacilityType]int
}

// View is what the map shows for a viewport: either markers or clusters.
type View struct {
	Markers  []model.Facility
	Clusters []Cluster
	Visible  int
	Zoom     float64
}

// Clustered reports whether the view aggregates facilities.
func (v View) Clustered() bool { return v.Clusters != nil }

// ViewOptions tunes Visible.
type ViewOptions struct {
	Threshold  int
	MaxMarkers int
}

// GridSize returns the cluster cell size in degrees for a zoom level.
func GridSize(zoom float64) float64 {
	switch {
	case zoom < 10:
		return 1
	case zoom < 12:
		return 0.5
	default:
		return 0.2
	}
}

// Visible computes the map view for the facilities inside vp. Above the
// threshold and below ClusterMaxZoom facilities are grouped into grid
// cells; otherwise the first MaxMarkers visible facilities are returned.
func Visible(list []model.Facility, vp Viewport, zoom float64, opts ViewOptions) View {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultClusterThreshold
	}
	if opts.MaxMarkers <= 0 {
		opts.MaxMarkers = DefaultMaxMarkers
	}

	in := make([]model.Facility, 0, len(list))
	for _, f := range list {
		if vp.Contains(f.Lat, f.Lng) {
			in = append(in, f)
		}
	}

	view := View{Visible: len(in), Zoom: zoom}
	if len(in) > opts.Threshold && zoom < ClusterMaxZoom {
		view.Clusters = clusterize(in, GridSize(zoom))
		return view
	}
	view.Markers = in[:min(len(in), opts.MaxMarkers)]
	return view
}

type cell struct {
	latSum, lngSum float64
	c              Cluster
}

// clusterize groups facilities by floor(lat/g), floor(lng/g). Clusters are
// returned in first-seen order.
func clusterize(list []model.Facility, g float64) []Cluster {
	cells := make(map[string]*cell)
	var order []string
	for _, f := range list {
		key := strconv.Itoa(int(math.Floor(f.Lat/g))) + "_" + strconv.Itoa(int(math.Floor(f.Lng/g)))
		c, ok := cells[key]
		if !ok {
			c = &cell{c: Cluster{Key: key, Counts: map[model.FacilityType]int{}}}
			cells[key] = c
			order = append(order, key)
		}
		c.latSum += f.Lat
		c.lngSum += f.Lng
		c.c.Count++
		c.c.Counts[f.Type]++
	}

	out := make([]Cluster, 0, len(order))
	for _, k := range order {
		c := cells[k]
		c.c.Lat = c.latSum / float64(c.c.Count)
		c.c.Lng = c.lngSum / float64(c.c.Count)
		out = append(out, c.c)
	}
	return out
}
