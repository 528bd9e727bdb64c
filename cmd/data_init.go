package main

import (
	"context"

	"github.com/charmbracelet/lipgloss"

	"github.com/sells-group/wavemap/internal/dataset"
	"github.com/sells-group/wavemap/internal/fetcher"
)

// newSource builds the fetcher that resolves local, HTTP and FTP locations.
func newSource() *fetcher.Source {
	httpFetcher := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:    cfg.Fetch.UserAgent,
		Timeout:      cfg.Fetch.Timeout(),
		MaxAttempts:  cfg.Fetch.MaxAttempts,
		RateLimiters: fetcher.DefaultRateLimiters(),
	})
	ftpFetcher := fetcher.NewFTPFetcher(fetcher.FTPOptions{Timeout: cfg.Fetch.Timeout()})
	return fetcher.NewSource(httpFetcher, ftpFetcher)
}

// initDataset validates the data settings and loads both datasets.
func initDataset(ctx context.Context, mode string) (*dataset.Dataset, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}
	opts, err := dataset.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return dataset.Load(ctx, newSource(), opts)
}

// swatch renders a colored block for terminal output.
func swatch(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

