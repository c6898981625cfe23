package readers

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/datasciencecampus/parliai-public/pkg/domain"
	"github.com/datasciencecampus/parliai-public/pkg/urls"
)

// speechPrefix is the CSS class prefix TheyWorkForYou uses on every
// element of a speech block.
const speechPrefix = "debate-speech__"

// multiLinkSuffix marks listing links that bundle several statements
// filtered to a departmental page. The individual statements already
// appear in the same daily listing, so these links only duplicate.
const multiLinkSuffix = ".mh"

var (
	// titlePattern captures a page title ahead of its trailing
	// ": 12 Mar 2024" date.
	titlePattern = regexp.MustCompile(`^(.*):\s*\d{1,2} \w{3} \d{4}`)

	// entryDatePattern captures the entry date from the URL's query
	// parameter, e.g. "?id=2024-03-12a.3.1".
	entryDatePattern = regexp.MustCompile(`=(\d{4}-\d{2}-\d{2})[\w.]`)

	// categoryPattern captures the venue path segment of an entry URL.
	categoryPattern = regexp.MustCompile(`theyworkforyou\.com/(\w+)/\?id=`)
)

// parliamentLabels maps URL categories to display names for report
// headings.
var parliamentLabels = map[string]string{
	"debates": "House of Commons",
	"lords":   "House of Lords",
	"whall":   "Westminster Hall",
	"wms":     "UK Ministerial statement",
	"senedd":  "Senedd / Welsh Parliament",
	"sp":      "Scottish Parliament",
	"ni":      "Northern Ireland Assembly",
}

// Debates summarises activity in parliamentary debate transcripts.
type Debates struct {
	reader
}

// NewDebates creates a debates reader.
func NewDebates(cfg Config) *Debates {
	return &Debates{reader: newReader(cfg)}
}

// Source describes where the reader's content comes from, for report
// headers.
func (d *Debates) Source() string {
	return "transcripts taken from [TheyWorkForYou](https://www.theyworkforyou.com/)"
}

// LatestEntries pulls down the individual entry URLs for the reporting
// period, one daily listing page per configured date, and drops
// duplicate multi-statement links. With a feed URL configured, the
// entries come from the feed instead.
func (d *Debates) LatestEntries(ctx context.Context) ([]string, error) {
	var entries []string

	if d.feedURL != "" {
		links, err := d.feed.Fetch(ctx, d.feedURL)
		if err != nil {
			return nil, err
		}
		entries = links
	} else {
		for _, base := range d.urls {
			for _, date := range d.dates {
				listing := fmt.Sprintf("%s/?d=%s", base, date.Format("2006-01-02"))
				links, err := d.listEntries(ctx, listing)
				if err != nil {
					return nil, err
				}
				entries = append(entries, links...)
			}
		}
	}

	return urls.Apply(entries, urls.NewSuffixFilter(multiLinkSuffix)), nil
}

// listEntries collects the entry links from one daily listing page.
func (d *Debates) listEntries(ctx context.Context, listing string) ([]string, error) {
	doc, err := d.get(ctx, listing, false)
	if err != nil {
		return nil, err
	}

	var links []string
	doc.Find("a.business-list__title").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			links = append(links, SiteURL+href)
		}
	})

	log.Printf("Found %d entries on %s", len(links), listing)
	return links, nil
}

// Read fetches an entry page and extracts it into a transcript.
// Pages mentioning none of the search terms return (nil, nil).
func (d *Debates) Read(ctx context.Context, url string) (domain.Record, error) {
	doc, err := d.get(ctx, url, true)
	if err != nil || doc == nil {
		return nil, err
	}

	meta, err := readMetadata(url, doc)
	if err != nil {
		return nil, err
	}

	speeches, err := readSpeeches(url, doc)
	if err != nil {
		return nil, err
	}

	return &domain.Transcript{Metadata: meta, Speeches: speeches}, nil
}

// Analyse summarises every relevant speech in the transcript in place.
func (d *Debates) Analyse(ctx context.Context, rec domain.Record) error {
	transcript, ok := rec.(*domain.Transcript)
	if !ok {
		return fmt.Errorf("debates reader cannot analyse a %T", rec)
	}

	for _, speech := range transcript.Speeches {
		if err := d.summariser.Speech(ctx, speech); err != nil {
			return err
		}
	}

	return nil
}

// Render converts an analysed transcript into Markdown. Speeches that
// were never summarised are omitted entirely.
func (d *Debates) Render(rec domain.Record) (string, error) {
	transcript, ok := rec.(*domain.Transcript)
	if !ok {
		return "", fmt.Errorf("debates reader cannot render a %T", rec)
	}

	title := fmt.Sprintf("## %s: [%s](%s)",
		ParliamentLabel(transcript.URL), transcript.Title, transcript.URL)

	sections := []string{title}
	for _, speech := range transcript.Speeches {
		if speech.Response == nil {
			continue
		}

		speaker := "### No speaker assigned"
		if speech.Attributed() {
			speaker = fmt.Sprintf("### %s (%s)",
				markdownLink(*speech.Name, speech.URL), deref(speech.Position))
		}

		sections = append(sections, speaker+"\n\n"+*speech.Response)
	}

	return strings.Join(sections, "\n\n"), nil
}

// ParliamentLabel names the parliament or chamber an entry URL belongs
// to, falling back to "Unclassified" for anything unrecognised.
func ParliamentLabel(url string) string {
	match := categoryPattern.FindStringSubmatch(url)
	if match == nil {
		return "Unclassified"
	}

	label, ok := parliamentLabels[match[1]]
	if !ok {
		return "Unclassified"
	}

	return label
}

// readMetadata extracts an entry's identifying metadata. The category
// and ID are the last two path segments of the URL once the query
// marker is collapsed, the title comes from the page <title> with its
// trailing date trimmed, and the date comes from the URL query.
func readMetadata(url string, doc *goquery.Document) (domain.Metadata, error) {
	var meta domain.Metadata

	trimmed := strings.Replace(url, "?id=", "", 1)
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 {
		return meta, domain.NewMalformedPageError(url, "category and id in URL")
	}
	category, id := parts[len(parts)-2], parts[len(parts)-1]

	block := doc.Find("title").First().Text()
	titleMatch := titlePattern.FindStringSubmatch(block)
	if titleMatch == nil {
		return meta, domain.NewMalformedPageError(url, "title block")
	}

	dateMatch := entryDatePattern.FindStringSubmatch(url)
	if dateMatch == nil {
		return meta, domain.NewMalformedPageError(url, "date in URL")
	}
	date, err := time.Parse("2006-01-02", dateMatch[1])
	if err != nil {
		return meta, domain.NewMalformedPageError(url, "parseable date in URL")
	}

	meta = domain.Metadata{
		Category: category,
		ID:       id,
		Title:    titleMatch[1],
		Date:     date,
		URL:      url,
	}

	return meta, nil
}

// readSpeeches extracts the ordered speech blocks from an entry page.
// A page with no speech blocks is malformed, not empty: every
// transcript page carries at least one.
func readSpeeches(url string, doc *goquery.Document) ([]*domain.Speech, error) {
	var speeches []*domain.Speech
	doc.Find("div." + speechPrefix + "speaker-and-content").Each(
		func(_ int, sel *goquery.Selection) {
			speeches = append(speeches, processSpeech(sel))
		})

	if len(speeches) == 0 {
		return nil, domain.NewMalformedPageError(url, "speech blocks")
	}

	return speeches, nil
}

// processSpeech extracts one speech block. A block without a speaker
// header yields a speech with no speaker details at all.
func processSpeech(sel *goquery.Selection) *domain.Speech {
	speech := &domain.Speech{
		Text: strings.TrimSpace(sel.Find("div." + speechPrefix + "content").Text()),
	}

	speaker := sel.Find("h2." + speechPrefix + "speaker").First()
	if speaker.Length() == 0 {
		return speech
	}

	if name := strings.TrimSpace(speaker.Find("strong." + speechPrefix + "speaker__name").Text()); name != "" {
		speech.Name = &name
	}
	if position := strings.TrimSpace(speaker.Find("small." + speechPrefix + "speaker__position").Text()); position != "" {
		speech.Position = &position
	}
	if href, ok := speaker.Find("a[href]").First().Attr("href"); ok {
		speakerURL := SiteURL + href
		speech.URL = &speakerURL
	}

	return speech
}
