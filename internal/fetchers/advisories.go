package fetchers

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"

	"airimpact/internal/models"
)

// maxAdvisories caps how many feed items end up in the report.
const maxAdvisories = 5

// AdvisoryFetcher pulls recent items from an air quality advisory RSS feed.
// Everything about it is optional context for the report: failures are for
// the caller to log and shrug off.
type AdvisoryFetcher struct {
	client *resty.Client
	parser *gofeed.Parser
}

// NewAdvisoryFetcher creates a new advisory fetcher instance
func NewAdvisoryFetcher() *AdvisoryFetcher {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetRetryCount(2)
	client.SetRetryWaitTime(2 * time.Second)

	return &AdvisoryFetcher{
		client: client,
		parser: gofeed.NewParser(),
	}
}

// Fetch retrieves the feed and returns the newest items, newest first.
func (f *AdvisoryFetcher) Fetch(ctx context.Context, url string) ([]models.Advisory, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch advisory feed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("advisory feed returned status %d", resp.StatusCode())
	}

	feed, err := f.parser.ParseString(string(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse advisory feed: %w", err)
	}

	source := feed.Title
	if source == "" {
		source = url
	}

	var advisories []models.Advisory
	for _, item := range feed.Items {
		advisory := models.Advisory{
			Source: source,
			Title:  item.Title,
			Link:   item.Link,
		}
		if item.PublishedParsed != nil {
			advisory.Published = *item.PublishedParsed
		}
		advisories = append(advisories, advisory)
		if len(advisories) >= maxAdvisories {
			break
		}
	}
	return advisories, nil
}
