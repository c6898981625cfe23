// Package readers turns TheyWorkForYou transcript pages into
// structured records, summarises them and renders them to Markdown.
//
// Each reader owns the markup coupling for one page shape. Site markup
// changes should only ever require touching this package.
package readers

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/datasciencecampus/parliai-public/pkg/domain"
	"github.com/datasciencecampus/parliai-public/pkg/httpclient"
	"github.com/datasciencecampus/parliai-public/pkg/summarise"
	"github.com/datasciencecampus/parliai-public/pkg/terms"
	"github.com/datasciencecampus/parliai-public/pkg/urls"
)

// SiteURL is the root of the source site. Entry and speaker links on
// its pages are relative to it.
const SiteURL = "https://www.theyworkforyou.com"

// Reader is one page-shape pipeline: discover entry URLs for the
// reporting period, read a page into a record, summarise the record's
// relevant speeches and render it to Markdown.
//
// Read returns (nil, nil) when a page mentions none of the search
// terms; such pages are filtered out before extraction even runs.
type Reader interface {
	LatestEntries(ctx context.Context) ([]string, error)
	Read(ctx context.Context, url string) (domain.Record, error)
	Analyse(ctx context.Context, rec domain.Record) error
	Render(rec domain.Record) (string, error)
}

// Config carries the collaborators shared by every reader.
type Config struct {
	// URLs are the top-level section URLs to gather content from,
	// such as "https://www.theyworkforyou.com/debates".
	URLs []string
	// Dates is the reporting period, one daily listing per date.
	Dates []time.Time
	// FeedURL, when set, switches entry discovery to an RSS feed
	// instead of the daily listing pages.
	FeedURL string

	Matcher    *terms.Matcher
	Client     *httpclient.Client
	Summariser *summarise.Summariser
}

// reader holds the state common to the concrete readers.
type reader struct {
	urls       []string
	dates      []time.Time
	feedURL    string
	matcher    *terms.Matcher
	client     *httpclient.Client
	summariser *summarise.Summariser
	feed       *urls.FeedFetcher
}

func newReader(cfg Config) reader {
	client := cfg.Client
	if client == nil {
		client = httpclient.NewClient()
	}

	return reader{
		urls:       cfg.URLs,
		dates:      cfg.Dates,
		feedURL:    cfg.FeedURL,
		matcher:    cfg.Matcher,
		client:     client,
		summariser: cfg.Summariser,
		feed:       urls.NewFeedFetcher(),
	}
}

// URLs returns the section URLs the reader gathers content from.
func (r *reader) URLs() []string {
	return r.urls
}

// get fetches a page and parses it into a queryable document. With
// check set, a page mentioning none of the search terms comes back as
// (nil, nil) so the caller can skip it without extracting anything.
func (r *reader) get(ctx context.Context, url string, check bool) (*goquery.Document, error) {
	body, err := r.client.GetBody(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", url, err)
	}

	if check && !r.matcher.ContainsAny(doc.Text()) {
		return nil, nil
	}

	return doc, nil
}

// deref unwraps an optional string for display.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// markdownLink renders the name as a link when a URL is known, and as
// plain text when it is not, so renderings never carry empty link
// targets.
func markdownLink(name string, url *string) string {
	if url == nil {
		return name
	}
	return fmt.Sprintf("[%s](%s)", name, *url)
}
