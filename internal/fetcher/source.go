package fetcher

import (
	"context"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Source routes a dataset location to the fetcher for its scheme. Locations
// without a scheme, or with file://, are read from the local filesystem.
type Source struct {
	HTTP Fetcher
	FTP  Fetcher
}

// NewSource creates a Source backed by the given HTTP and FTP fetchers.
func NewSource(httpFetcher, ftpFetcher Fetcher) *Source {
	return &Source{HTTP: httpFetcher, FTP: ftpFetcher}
}

// Scheme returns the lowercase URL scheme of loc, or "" for local paths.
func Scheme(loc string) string {
	u, err := url.Parse(loc)
	if err != nil || len(u.Scheme) <= 1 {
		// Treat Windows drive letters and unparsable paths as local.
		return ""
	}
	return strings.ToLower(u.Scheme)
}

// Ext returns the lowercase extension of the location's path.
func Ext(loc string) string {
	if u, err := url.Parse(loc); err == nil && len(u.Scheme) > 1 {
		return strings.ToLower(path.Ext(u.Path))
	}
	return strings.ToLower(filepath.Ext(loc))
}

// Download opens loc for reading.
func (s *Source) Download(ctx context.Context, loc string) (io.ReadCloser, error) {
	switch Scheme(loc) {
	case "":
		return openLocal(loc)
	case "file":
		u, err := url.Parse(loc)
		if err != nil {
			return nil, eris.Wrap(err, "source: parse file url")
		}
		return openLocal(u.Path)
	case "http", "https":
		if s.HTTP == nil {
			return nil, eris.Errorf("source: no http fetcher for %s", loc)
		}
		return s.HTTP.Download(ctx, loc)
	case "ftp":
		if s.FTP == nil {
			return nil, eris.Errorf("source: no ftp fetcher for %s", loc)
		}
		return s.FTP.Download(ctx, loc)
	default:
		return nil, eris.Errorf("source: unsupported scheme in %q", loc)
	}
}

// DownloadToFile copies loc to path.
func (s *Source) DownloadToFile(ctx context.Context, loc string, path string) (int64, error) {
	body, err := s.Download(ctx, loc)
	if err != nil {
		return 0, err
	}
	defer body.Close() //nolint:errcheck

	return copyToFile(body, path)
}

func openLocal(p string) (io.ReadCloser, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, eris.Wrapf(err, "source: open %s", p)
	}
	return f, nil
}
