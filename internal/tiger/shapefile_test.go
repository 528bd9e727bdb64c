package tiger

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/wavemap/internal/fetcher"
)

func square(x, y, size float64, clockwise bool) []shp.Point {
	if clockwise {
		return []shp.Point{{X: x, Y: y}, {X: x, Y: y + size}, {X: x + size, Y: y + size}, {X: x + size, Y: y}, {X: x, Y: y}}
	}
	return []shp.Point{{X: x, Y: y}, {X: x + size, Y: y}, {X: x + size, Y: y + size}, {X: x, Y: y + size}, {X: x, Y: y}}
}

type testCounty struct {
	statefp, countyfp, name string
	parts                   [][]shp.Point
}

// writeShapefile writes a county shapefile, optionally without the GEOID column.
func writeShapefile(t *testing.T, dir string, withGEOID bool, counties []testCounty) string {
	t.Helper()
	path := filepath.Join(dir, "cb_2018_us_county_20m.shp")

	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)

	fields := []shp.Field{
		shp.StringField("STATEFP", 2),
		shp.StringField("COUNTYFP", 3),
		shp.StringField("NAME", 40),
	}
	if withGEOID {
		fields = append(fields, shp.StringField("GEOID", 5))
	}
	require.NoError(t, w.SetFields(fields))

	for _, c := range counties {
		row := int(w.Write((*shp.Polygon)(shp.NewPolyLine(c.parts))))
		require.NoError(t, w.WriteAttribute(row, 0, c.statefp))
		require.NoError(t, w.WriteAttribute(row, 1, c.countyfp))
		require.NoError(t, w.WriteAttribute(row, 2, c.name))
		if withGEOID {
			require.NoError(t, w.WriteAttribute(row, 3, c.statefp+c.countyfp))
		}
	}
	w.Close()
	return path
}

func wisconsin() []testCounty {
	return []testCounty{
		{statefp: "55", countyfp: "025", name: "Dane", parts: [][]shp.Point{
			square(0, 0, 10, true),
			square(2, 2, 2, false),
			square(20, 20, 1, true),
		}},
		{statefp: "55", countyfp: "027", name: "Dodge", parts: [][]shp.Point{square(30, 30, 5, true)}},
	}
}

func TestReadCounties(t *testing.T) {
	path := writeShapefile(t, t.TempDir(), true, wisconsin())

	features, err := ReadCounties(path)
	require.NoError(t, err)
	require.Len(t, features, 2)

	dane := features[0]
	assert.Equal(t, "55025", dane.ID)
	assert.Equal(t, "Dane", dane.Name())
	assert.Equal(t, "55", dane.Properties["STATEFP"])

	mp, ok := dane.Geometry.(*geom.MultiPolygon)
	require.True(t, ok)
	assert.Equal(t, 2, mp.NumPolygons())
	assert.Equal(t, 2, mp.Polygon(0).NumLinearRings())
	assert.Equal(t, 1, mp.Polygon(1).NumLinearRings())

	assert.Equal(t, "55027", features[1].ID)
}

func TestReadCounties_FallsBackToStateAndCounty(t *testing.T) {
	path := writeShapefile(t, t.TempDir(), false, wisconsin())

	features, err := ReadCounties(path)
	require.NoError(t, err)
	require.Len(t, features, 2)
	assert.Equal(t, "55025", features[0].ID)
	assert.Equal(t, "55025", features[0].Properties["GEOID"])
}

func TestReadCounties_MissingFile(t *testing.T) {
	_, err := ReadCounties(filepath.Join(t.TempDir(), "nope.shp"))
	assert.Error(t, err)
}

func TestShapeToGeom(t *testing.T) {
	assert.Nil(t, ShapeToGeom(nil))
	assert.Nil(t, ShapeToGeom(&shp.Point{X: 1, Y: 2}))
	assert.Nil(t, ShapeToGeom(&shp.Polygon{}))

	// A lone counter-clockwise ring still becomes an outer ring.
	mp := ShapeToGeom((*shp.Polygon)(shp.NewPolyLine([][]shp.Point{square(0, 0, 1, false)})))
	require.NotNil(t, mp)
	assert.Equal(t, 1, mp.NumPolygons())
}

func TestSignedArea(t *testing.T) {
	cw := []float64{0, 0, 0, 10, 10, 10, 10, 0, 0, 0}
	ccw := []float64{0, 0, 10, 0, 10, 10, 0, 10, 0, 0}
	assert.InDelta(t, -100, signedArea(cw), 1e-9)
	assert.InDelta(t, 100, signedArea(ccw), 1e-9)
}

func zipDir(t *testing.T, dir, zipPath string) {
	t.Helper()
	out, err := os.Create(zipPath)
	require.NoError(t, err)
	defer out.Close() //nolint:errcheck

	zw := zip.NewWriter(out)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		w, err := zw.Create(e.Name())
		require.NoError(t, err)
		in, err := os.Open(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		_, err = io.Copy(w, in)
		require.NoError(t, err)
		_ = in.Close()
	}
	require.NoError(t, zw.Close())
}

func TestLoad_ZipArchive(t *testing.T) {
	shpDir := t.TempDir()
	writeShapefile(t, shpDir, true, wisconsin())
	zipPath := filepath.Join(t.TempDir(), "cb_2018_us_county_20m.zip")
	zipDir(t, shpDir, zipPath)

	tempDir := t.TempDir()
	features, err := Load(context.Background(), fetcher.NewSource(nil, nil), zipPath, tempDir)
	require.NoError(t, err)
	assert.Len(t, features, 2)

	left, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, left, "scratch directory should be removed")
}

func TestLoad_LocalShapefile(t *testing.T) {
	path := writeShapefile(t, t.TempDir(), true, wisconsin())

	features, err := Load(context.Background(), fetcher.NewSource(nil, nil), "file://"+path, t.TempDir())
	require.NoError(t, err)
	assert.Len(t, features, 2)
}

func TestLoad_RemoteShapefileRejected(t *testing.T) {
	_, err := Load(context.Background(), fetcher.NewSource(nil, nil), "https://example.com/cb.shp", t.TempDir())
	assert.Error(t, err)
}
