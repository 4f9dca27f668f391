package boundary

import (
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/faithmap/faithmap/internal/model"
)

// square returns a closed ring around (lng, lat) with half-width d.
func square(lng, lat, d float64) []shp.Point {
	return []shp.Point{
		{X: lng - d, Y: lat - d},
		{X: lng - d, Y: lat + d},
		{X: lng + d, Y: lat + d},
		{X: lng + d, Y: lat - d},
		{X: lng - d, Y: lat - d},
	}
}

func polygon(rings ...[]shp.Point) *shp.Polygon {
	p := &shp.Polygon{NumParts: int32(len(rings))}
	for _, r := range rings {
		p.Parts = append(p.Parts, int32(len(p.Points)))
		p.Points = append(p.Points, r...)
	}
	return p
}

func writeShapefile(t *testing.T, records []struct {
	code, name string
	poly       *shp.Polygon
}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sig.shp")
	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{
		shp.StringField("SIG_CD", 10),
		shp.StringField("SIG_KOR_NM", 60),
	}))
	for i, r := range records {
		w.Write(r.poly)
		require.NoError(t, w.WriteAttribute(i, 0, r.code))
		require.NoError(t, w.WriteAttribute(i, 1, r.name))
	}
	w.Close()
	return path
}

func TestLoadAndLocate(t *testing.T) {
	path := writeShapefile(t, []struct {
		code, name string
		poly       *shp.Polygon
	}{
		{"11110", "종로구", polygon(square(126.98, 37.59, 0.05))},
		// 중구 with a hole where 종로구 would be if it overlapped.
		{"11140", "중구", polygon(square(127.10, 37.56, 0.05), square(127.10, 37.56, 0.01))},
	})

	ix, err := Load(path, LoadOptions{NameField: "SIG_KOR_NM", CodeField: "SIG_CD", Charset: "utf-8"})
	require.NoError(t, err)
	assert.Equal(t, 2, ix.Len())

	a, ok := ix.Locate(37.59, 126.98)
	require.True(t, ok)
	assert.Equal(t, "종로구", a.Name)
	assert.Equal(t, "11110", a.Code)
	assert.Equal(t, "서울특별시 종로구", a.Label())

	a, ok = ix.Locate(37.53, 127.07)
	require.True(t, ok)
	assert.Equal(t, "중구", a.Name)

	_, ok = ix.Locate(37.56, 127.10)
	assert.False(t, ok, "point inside the hole")

	_, ok = ix.Locate(35.1, 129.0)
	assert.False(t, ok)
}

func TestLoad_MissingField(t *testing.T) {
	path := writeShapefile(t, []struct {
		code, name string
		poly       *shp.Polygon
	}{{"11110", "종로구", polygon(square(126.98, 37.59, 0.05))}})

	_, err := Load(path, LoadOptions{NameField: "NAME"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name field")
}

func TestLoad_ProjectedRejected(t *testing.T) {
	path := writeShapefile(t, []struct {
		code, name string
		poly       *shp.Polygon
	}{{"11110", "종로구", polygon(square(953000, 1954000, 1000))}})

	_, err := Load(path, LoadOptions{NameField: "SIG_KOR_NM", CodeField: "SIG_CD"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EPSG:4326")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.shp"), LoadOptions{NameField: "SIG_KOR_NM"})
	require.Error(t, err)
}

func TestAssign(t *testing.T) {
	mp := geom.NewMultiPolygon(geom.XY)
	poly := geom.NewPolygon(geom.XY)
	require.NoError(t, poly.Push(geom.NewLinearRingFlat(geom.XY, []float64{
		129.0, 35.1, 129.0, 35.3, 129.2, 35.3, 129.2, 35.1, 129.0, 35.1,
	})))
	require.NoError(t, mp.Push(poly))

	ix := NewIndex([]Area{NewArea("26350", "해운대구", mp)})
	list := []model.Facility{
		{ID: "in", Lat: 35.16, Lng: 129.15, Region: "부산"},
		{ID: "out", Lat: 37.5, Lng: 127.0, Region: "서울"},
	}
	n, codes := ix.Assign(list)
	assert.Equal(t, 1, n)
	assert.Equal(t, "부산광역시 해운대구", list[0].Region)
	assert.Equal(t, "서울", list[1].Region)
	assert.Equal(t, map[string]string{"in": "26350"}, codes)
}

func TestArea_LabelWithoutCode(t *testing.T) {
	a := Area{Name: "해운대구"}
	assert.Equal(t, "해운대구", a.Label())
	a = Area{Code: "26350", Name: "부산광역시 해운대구"}
	assert.Equal(t, "부산광역시 해운대구", a.Label())
}
