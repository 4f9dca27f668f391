// Package boundary locates points inside 시군구 boundary polygons read from
// a WGS84 shapefile.
package boundary

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"go.uber.org/zap"

	"github.com/faithmap/faithmap/internal/fetcher"
	"github.com/faithmap/faithmap/internal/model"
	"github.com/faithmap/faithmap/internal/region"
)

// LoadOptions names the attribute columns and their encoding.
type LoadOptions struct {
	NameField string
	CodeField string
	Charset   string
}

// Area is one boundary polygon with its attributes.
type Area struct {
	Code   string
	Name   string
	shape  *geom.MultiPolygon
	bounds *geom.Bounds
}

// NewArea builds an Area from a multipolygon.
func NewArea(code, name string, mp *geom.MultiPolygon) Area {
	return Area{Code: code, Name: name, shape: mp, bounds: mp.Bounds()}
}

// Label returns "<시도> <시군구>" when the code prefix is known, else the
// bare name.
func (a Area) Label() string {
	if sido := region.SidoName(a.Code); sido != "" && !strings.HasPrefix(a.Name, sido) {
		return sido + " " + a.Name
	}
	return a.Name
}

// Contains reports whether the point lies inside the area. Rings are
// evaluated with the even-odd rule so holes are excluded.
func (a Area) Contains(lat, lng float64) bool {
	pt := geom.Coord{lng, lat}
	if !a.bounds.OverlapsPoint(geom.XY, pt) {
		return false
	}
	inside := false
	for i := 0; i < a.shape.NumPolygons(); i++ {
		poly := a.shape.Polygon(i)
		for j := 0; j < poly.NumLinearRings(); j++ {
			if xy.IsPointInRing(geom.XY, pt, poly.LinearRing(j).FlatCoords()) {
				inside = !inside
			}
		}
	}
	return inside
}

// Index holds every area for lookups.
type Index struct {
	areas []Area
}

// NewIndex creates an Index over areas.
func NewIndex(areas []Area) *Index {
	return &Index{areas: areas}
}

// Len returns the number of areas.
func (ix *Index) Len() int { return len(ix.areas) }

// Locate returns the first area containing the point.
func (ix *Index) Locate(lat, lng float64) (Area, bool) {
	for _, a := range ix.areas {
		if a.Contains(lat, lng) {
			return a, true
		}
	}
	return Area{}, false
}

// Assign rewrites the region of every located facility to its area label.
// It returns the number of facilities located and an id → area code map.
func (ix *Index) Assign(list []model.Facility) (int, map[string]string) {
	codes := make(map[string]string, len(list))
	n := 0
	for i := range list {
		a, ok := ix.Locate(list[i].Lat, list[i].Lng)
		if !ok {
			continue
		}
		list[i].Region = a.Label()
		codes[list[i].ID] = a.Code
		n++
	}
	return n, codes
}

// Load reads polygon records from a shapefile. Coordinates must be WGS84
// longitude/latitude; projected shapefiles are rejected.
func Load(shpPath string, opts LoadOptions) (*Index, error) {
	reader, err := shp.Open(shpPath)
	if err != nil {
		return nil, eris.Wrapf(err, "boundary: open shapefile %s", shpPath)
	}
	defer func() { _ = reader.Close() }()

	fieldIdx := make(map[string]int)
	for i, f := range reader.Fields() {
		name := strings.TrimRight(f.String(), "\x00")
		fieldIdx[strings.ToLower(name)] = i
	}
	nameIdx, ok := fieldIdx[strings.ToLower(opts.NameField)]
	if !ok {
		return nil, eris.Errorf("boundary: name field %q not found", opts.NameField)
	}
	codeIdx, hasCode := fieldIdx[strings.ToLower(opts.CodeField)]

	var (
		areas   []Area
		skipped int
	)
	for reader.Next() {
		row, shape := reader.Shape()

		poly, isPoly := shape.(*shp.Polygon)
		if !isPoly {
			skipped++
			continue
		}
		mp := toMultiPolygon(poly)
		if mp == nil {
			skipped++
			continue
		}
		if b := mp.Bounds(); !model.InKorea(b.Min(1), b.Min(0)) || !model.InKorea(b.Max(1), b.Max(0)) {
			return nil, eris.Errorf("boundary: record %d is outside WGS84 Korea bounds; reproject the shapefile to EPSG:4326", row)
		}

		name, err := attribute(reader, row, nameIdx, opts.Charset)
		if err != nil {
			return nil, err
		}
		var code string
		if hasCode {
			if code, err = attribute(reader, row, codeIdx, opts.Charset); err != nil {
				return nil, err
			}
		}
		areas = append(areas, NewArea(code, name, mp))
	}

	if skipped > 0 {
		zap.L().Debug("boundary: skipped shapefile records", zap.Int("skipped", skipped))
	}
	zap.L().Info("boundary: loaded areas", zap.String("path", shpPath), zap.Int("areas", len(areas)))
	return NewIndex(areas), nil
}

func attribute(reader *shp.Reader, row, field int, charset string) (string, error) {
	raw := strings.TrimSpace(strings.TrimRight(reader.Attribute(field), "\x00"))
	val, err := fetcher.DecodeString(raw, charset)
	if err != nil {
		return "", eris.Wrapf(err, "boundary: decode attribute of record %d", row)
	}
	return strings.TrimSpace(val), nil
}

// toMultiPolygon converts a shapefile polygon into one go-geom polygon per
// ring so every ring takes part in the even-odd test.
func toMultiPolygon(p *shp.Polygon) *geom.MultiPolygon {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY).SetSRID(4326)
	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}
		if end-start < 4 {
			continue
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}
		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(geom.NewLinearRingFlat(geom.XY, flat)); err != nil {
			zap.L().Debug("boundary: skipping malformed ring", zap.Int32("part", i), zap.Error(err))
			continue
		}
		if err := mp.Push(poly); err != nil {
			zap.L().Debug("boundary: skipping malformed part", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}
	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}
