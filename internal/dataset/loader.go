package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/emmanuelprah/Tidytuesday/internal/config"
	"github.com/emmanuelprah/Tidytuesday/internal/errors"
)

// Loader fetches a grant dataset table for a date key from the TidyTuesday
// raw-content repository, caching the downloaded CSV locally. When a cached
// copy exists the network is not touched at all.
type Loader struct {
	baseURL string
	date    string
	table   string
	client  *http.Client
	paths   *config.Paths
	logger  *slog.Logger
}

// NewLoader creates a loader for the dataset identified by cfg
func NewLoader(cfg config.DatasetConfig, paths *config.Paths, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		baseURL: cfg.BaseURL,
		date:    cfg.Date,
		table:   cfg.Table,
		client:  &http.Client{Timeout: cfg.FetchTimeout},
		paths:   paths,
		logger:  logger,
	}
}

// Load returns the raw dataset table, from cache if available.
// It fails with a DataUnavailable error when the dataset cannot be
// resolved, fetched, or parsed.
func (l *Loader) Load(ctx context.Context) (*Table, error) {
	cachePath := l.paths.DatasetCacheFile(l.date, l.table)

	if data, err := os.ReadFile(cachePath); err == nil {
		l.logger.Info("Loading dataset from cache",
			slog.String("path", cachePath),
			slog.String("date", l.date),
			slog.String("table", l.table))
		return parseCSV(data)
	}

	url := l.datasetURL()
	l.logger.Info("Fetching dataset",
		slog.String("url", url),
		slog.String("date", l.date),
		slog.String("table", l.table))

	data, err := l.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	// Cache failures are not fatal; the run still has the data in memory
	if err := os.WriteFile(cachePath, data, 0644); err != nil {
		l.logger.Warn("Failed to cache dataset", slog.String("path", cachePath), slog.Any("error", err))
	}

	return parseCSV(data)
}

// datasetURL builds the raw-content URL for the dataset table,
// e.g. <base>/2026/2026-02-24/sfi_grants.csv
func (l *Loader) datasetURL() string {
	year := l.date[:4]
	return fmt.Sprintf("%s/%s/%s/%s.csv", l.baseURL, year, l.date, l.table)
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewDataUnavailableError("build dataset request", err).WithContext("url", url)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, errors.NewDataUnavailableError("fetch dataset", err).WithContext("url", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewDataUnavailableError(
			fmt.Sprintf("dataset %s/%s not resolvable (HTTP %d)", l.date, l.table, resp.StatusCode), nil).
			WithContext("url", url).
			WithContext("status", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewDataUnavailableError("read dataset response", err).WithContext("url", url)
	}

	return data, nil
}

// parseCSV converts raw CSV bytes into a Table. Rows with fewer fields than
// the header are accepted; the cleaner pads them on projection.
func parseCSV(data []byte) (*Table, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewDataUnavailableError("parse dataset CSV", err)
	}
	if len(records) == 0 {
		return nil, errors.NewDataUnavailableError("dataset is empty", nil)
	}

	return &Table{
		Columns: records[0],
		Rows:    records[1:],
	}, nil
}
