package urls

import (
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// FeedFetcher discovers entry links from an RSS/Atom feed instead of a
// daily listing page. TheyWorkForYou publishes feeds for most of its
// sections, which makes this a useful alternative when a listing page
// is unavailable.
type FeedFetcher struct {
	parser *gofeed.Parser
}

// NewFeedFetcher creates a feed fetcher.
func NewFeedFetcher() *FeedFetcher {
	return &FeedFetcher{parser: gofeed.NewParser()}
}

// Fetch parses the feed at feedURL and returns the entry links it
// carries, in feed order.
func (f *FeedFetcher) Fetch(ctx context.Context, feedURL string) ([]string, error) {
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", feedURL, err)
	}

	if feed == nil || len(feed.Items) == 0 {
		return nil, fmt.Errorf("feed %s contains no items", feedURL)
	}

	links := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link != "" {
			links = append(links, item.Link)
		}
	}

	return links, nil
}
