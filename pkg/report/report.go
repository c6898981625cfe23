// Package report assembles the Markdown digest and names the output
// directory a run writes into.
package report

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/datasciencecampus/parliai-public/pkg/dates"
)

// headerForm is the date layout used in report headers.
const headerForm = "Mon, 02 Jan 2006"

// emptySection is rendered when a reader found nothing relevant.
const emptySection = "No relevant content found for this period."

// Header builds the top block of a digest: publication date, period
// covered, search terms, model used, and the source links.
func Header(period []time.Time, terms []string, model, source string, links []string) string {
	today := dates.Today().Format(headerForm)

	covered := ""
	if len(period) == 1 {
		covered = period[0].Format(headerForm)
	} else if len(period) > 1 {
		covered = fmt.Sprintf("%s to %s",
			period[0].Format(headerForm),
			period[len(period)-1].Format(headerForm))
	}

	lines := []string{
		fmt.Sprintf("Publication date: %s", today),
		fmt.Sprintf("Period covered: %s", covered),
		fmt.Sprintf("Search terms: %s", strings.Join(terms, ", ")),
		fmt.Sprintf("Model used: %s", model),
		fmt.Sprintf("Based on information from %s:\n", source),
	}
	for _, link := range links {
		lines = append(lines, fmt.Sprintf("- [%s](%s)", stripScheme(link), link))
	}

	return strings.Join(lines, "\n")
}

// stripScheme drops the scheme from a URL for display.
func stripScheme(link string) string {
	parsed, err := url.Parse(link)
	if err != nil || parsed.Scheme == "" {
		return link
	}
	return strings.Replace(link, parsed.Scheme+"://", "", 1)
}

// Section joins a reader's renderings under a heading, falling back to
// a fixed line when nothing relevant was found.
func Section(heading string, renderings []string) string {
	kept := make([]string, 0, len(renderings))
	for _, rendering := range renderings {
		if rendering != "" {
			kept = append(kept, rendering)
		}
	}

	content := strings.Join(kept, "\n\n")
	if content == "" {
		content = emptySection
	}

	return heading + "\n\n" + content
}

// OutDir creates and returns the run's output directory under root,
// named "<start>.<end>.<model>". An existing directory gets an
// incremental numeric tag appended so reruns never clobber earlier
// output.
func OutDir(root string, period []time.Time, model string) (string, error) {
	if len(period) == 0 {
		return "", fmt.Errorf("reporting period is empty")
	}

	start := period[0].Format("2006-01-02")
	end := period[len(period)-1].Format("2006-01-02")
	name := strings.Join([]string{start, end, model}, ".")

	outdir := tag(filepath.Join(root, name))
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	return outdir, nil
}

// tag finds an unused variant of the directory name by appending an
// incremental number when it already exists.
func tag(outdir string) string {
	if _, err := os.Stat(outdir); os.IsNotExist(err) {
		return outdir
	}

	for n := 1; ; n++ {
		updated := fmt.Sprintf("%s.%d", outdir, n)
		if _, err := os.Stat(updated); os.IsNotExist(err) {
			return updated
		}
	}
}
