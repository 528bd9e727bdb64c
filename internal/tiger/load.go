package tiger

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/wavemap/internal/fetcher"
	"github.com/sells-group/wavemap/internal/model"
)

// shapefileParts are the archive members a shapefile read needs.
var shapefileParts = []string{".shp", ".shx", ".dbf"}

// Load reads county features from a .shp path, or from a .zip archive at any
// location src can download (local, HTTP or FTP). Downloads and extractions
// go to a scratch directory under tempDir that is removed before returning.
func Load(ctx context.Context, src fetcher.Fetcher, loc, tempDir string) ([]model.GeoFeature, error) {
	log := zap.L().With(
		zap.String("component", "tiger.load"),
		zap.String("source", loc),
	)

	if fetcher.Ext(loc) == ".shp" {
		switch fetcher.Scheme(loc) {
		case "":
			return ReadCounties(loc)
		case "file":
			u, err := url.Parse(loc)
			if err != nil {
				return nil, eris.Wrap(err, "tiger: parse file url")
			}
			return ReadCounties(u.Path)
		default:
			return nil, eris.Errorf("tiger: remote %s needs its .shx and .dbf; point at the .zip instead", loc)
		}
	}

	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return nil, eris.Wrap(err, "tiger: create temp dir")
	}
	scratch, err := os.MkdirTemp(tempDir, "boundaries-")
	if err != nil {
		return nil, eris.Wrap(err, "tiger: create scratch dir")
	}
	defer func() { _ = os.RemoveAll(scratch) }()

	name := path.Base(strings.SplitN(loc, "?", 2)[0])
	archive := filepath.Join(scratch, name)
	n, err := src.DownloadToFile(ctx, loc, archive)
	if err != nil {
		return nil, eris.Wrap(err, "tiger: download boundaries")
	}
	log.Debug("downloaded boundaries", zap.Int64("bytes", n))

	extracted, err := fetcher.ExtractZIP(archive, filepath.Join(scratch, "extract"), shapefileParts...)
	if err != nil {
		return nil, eris.Wrap(err, "tiger: extract boundaries")
	}
	shpPath, err := fetcher.FindByExt(extracted, ".shp")
	if err != nil {
		return nil, eris.Wrap(err, "tiger: find .shp file")
	}

	return ReadCounties(shpPath)
}
