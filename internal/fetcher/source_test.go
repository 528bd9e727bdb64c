package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheme(t *testing.T) {
	assert.Equal(t, "", Scheme("www/county_predictions.json"))
	assert.Equal(t, "", Scheme("/srv/data/county_map.json"))
	assert.Equal(t, "", Scheme(`C:\data\county_map.json`))
	assert.Equal(t, "file", Scheme("file:///srv/data/county_map.json"))
	assert.Equal(t, "https", Scheme("HTTPS://example.com/x.json"))
	assert.Equal(t, "ftp", Scheme("ftp://ftp2.census.gov/geo/cb.zip"))
}

func TestExt(t *testing.T) {
	assert.Equal(t, ".json", Ext("www/county_map.json"))
	assert.Equal(t, ".zip", Ext("https://www2.census.gov/geo/cb_2018_us_county_20m.ZIP?x=1"))
	assert.Equal(t, ".shp", Ext("file:///tmp/cb.shp"))
	assert.Equal(t, "", Ext("https://example.com/data"))
}

func TestSource_Local(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "county_predictions.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	s := NewSource(nil, nil)
	for _, loc := range []string{path, "file://" + path} {
		body, err := s.Download(context.Background(), loc)
		require.NoError(t, err, loc)
		data, err := io.ReadAll(body)
		require.NoError(t, err)
		_ = body.Close()
		assert.Equal(t, "[]", string(data))
	}

	_, err := s.Download(context.Background(), filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestSource_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("remote"))
	}))
	defer srv.Close()

	s := NewSource(newTestFetcher(1), nil)
	path := filepath.Join(t.TempDir(), "copy")
	n, err := s.DownloadToFile(context.Background(), srv.URL+"/x", path)
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
}

func TestSource_MissingFetcher(t *testing.T) {
	s := NewSource(nil, nil)

	_, err := s.Download(context.Background(), "https://example.com/x.json")
	assert.Error(t, err)

	_, err = s.Download(context.Background(), "ftp://example.com/x.json")
	assert.Error(t, err)

	_, err = s.Download(context.Background(), "s3://bucket/x.json")
	assert.Error(t, err)
}
