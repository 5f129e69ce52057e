package fetchers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"

	"airimpact/internal/logger"
)

// DatasetFetcher downloads the raw city_day CSV when it is not already on
// disk. It is only consulted when a dataset URL is configured; without one a
// missing file stays a fatal condition.
type DatasetFetcher struct {
	client *resty.Client
}

// NewDatasetFetcher creates a new dataset fetcher instance
func NewDatasetFetcher() *DatasetFetcher {
	client := resty.New()
	client.SetTimeout(60 * time.Second)
	client.SetRetryCount(3)
	client.SetRetryWaitTime(2 * time.Second)

	return &DatasetFetcher{client: client}
}

// Fetch downloads the dataset from url and returns the raw bytes.
func (f *DatasetFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/csv").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("dataset download returned status %d", resp.StatusCode())
	}
	return resp.Body(), nil
}

// EnsureLocal downloads the dataset to path unless the file already exists.
func (f *DatasetFetcher) EnsureLocal(ctx context.Context, path, url string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	logger.Infof("Dataset %s not found, downloading from %s", path, url)
	data, err := f.Fetch(ctx, url)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write dataset %s: %w", path, err)
	}

	logger.Infof("Downloaded dataset to %s (%d bytes)", path, len(data))
	return nil
}
