package readers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datasciencecampus/parliai-public/pkg/domain"
	"github.com/datasciencecampus/parliai-public/pkg/summarise"
	"github.com/datasciencecampus/parliai-public/pkg/terms"
)

const debatePage = `<html>
<head><title>Economic Statistics: 12 Mar 2024: House of Commons debates</title></head>
<body>
<div class="debate-speech__speaker-and-content">
  <h2 class="debate-speech__speaker">
    <a href="/mp/10001/jane_smith"><strong class="debate-speech__speaker__name">Jane Smith</strong>
    <small class="debate-speech__speaker__position">Minister for Statistics</small></a>
  </h2>
  <div class="debate-speech__content"><p>The ONS publishes labour market figures monthly.</p></div>
</div>
<div class="debate-speech__speaker-and-content">
  <div class="debate-speech__content"><p>Order. We move to the next question.</p></div>
</div>
</body>
</html>`

// stubClient returns canned responses so no model calls happen in tests.
type stubClient struct {
	response string
}

func (s *stubClient) Invoke(_ context.Context, _ string) (string, error) {
	return s.response, nil
}

func serve(t *testing.T, page string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(page))
		}))
	t.Cleanup(server.Close)

	return server
}

func document(t *testing.T, page string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(page)))
	require.NoError(t, err)

	return doc
}

func TestDebatesRead(t *testing.T) {
	server := serve(t, debatePage)
	url := server.URL + "/debates/?id=2024-03-12a.100.1"

	debates := NewDebates(Config{Matcher: terms.NewMatcher([]string{"ONS"})})

	rec, err := debates.Read(context.Background(), url)
	require.NoError(t, err)
	require.NotNil(t, rec)

	transcript, ok := rec.(*domain.Transcript)
	require.True(t, ok)

	assert.Equal(t, "debates", transcript.Category)
	assert.Equal(t, "2024-03-12a.100.1", transcript.ID)
	assert.Equal(t, "Economic Statistics", transcript.Title)
	assert.Equal(t, time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), transcript.Date)
	assert.Equal(t, url, transcript.URL)

	require.Len(t, transcript.Speeches, 2)

	first := transcript.Speeches[0]
	require.True(t, first.Attributed())
	assert.Equal(t, "Jane Smith", *first.Name)
	assert.Equal(t, "Minister for Statistics", *first.Position)
	assert.Equal(t, SiteURL+"/mp/10001/jane_smith", *first.URL)
	assert.Equal(t, "The ONS publishes labour market figures monthly.", first.Text)

	second := transcript.Speeches[1]
	assert.False(t, second.Attributed())
	assert.Nil(t, second.Position)
	assert.Nil(t, second.URL)
	assert.Equal(t, "Order. We move to the next question.", second.Text)
}

func TestDebatesReadSkipsIrrelevantPages(t *testing.T) {
	server := serve(t, debatePage)
	url := server.URL + "/debates/?id=2024-03-12a.100.1"

	debates := NewDebates(Config{Matcher: terms.NewMatcher([]string{"unmentioned"})})

	rec, err := debates.Read(context.Background(), url)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestDebatesLatestEntries(t *testing.T) {
	listing := `<html><body>
	<a class="business-list__title" href="/debates/?id=2024-03-12a.1.0">One</a>
	<a class="business-list__title" href="/wms/?id=2024-03-12.2.wms.mh">Bundled</a>
	<a class="business-list__title" href="/debates/?id=2024-03-12a.3.0">Three</a>
	</body></html>`
	server := serve(t, listing)

	debates := NewDebates(Config{
		URLs:    []string{server.URL + "/debates"},
		Dates:   []time.Time{time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)},
		Matcher: terms.NewMatcher(nil),
	})

	entries, err := debates.LatestEntries(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		SiteURL + "/debates/?id=2024-03-12a.1.0",
		SiteURL + "/debates/?id=2024-03-12a.3.0",
	}, entries)
}

func TestDebatesAnalyse(t *testing.T) {
	matcher := terms.NewMatcher([]string{"ONS"})
	summariser := summarise.New(summarise.Config{
		Client:  &stubClient{response: "The ONS publishes labour market figures monthly."},
		Matcher: matcher,
	})
	debates := NewDebates(Config{Matcher: matcher, Summariser: summariser})

	text := "The ONS publishes labour market figures monthly."
	aside := "Order. We move to the next question."
	transcript := &domain.Transcript{Speeches: []*domain.Speech{
		{Text: text},
		{Text: aside},
	}}

	require.NoError(t, debates.Analyse(context.Background(), transcript))

	require.NotNil(t, transcript.Speeches[0].Response)
	assert.Equal(t, text, *transcript.Speeches[0].Response)
	assert.Nil(t, transcript.Speeches[1].Response)
}

func TestDebatesRender(t *testing.T) {
	name := "Jane Smith"
	position := "Minister for Statistics"
	speakerURL := SiteURL + "/mp/10001/jane_smith"
	response := "The ONS publishes labour market figures monthly."
	unattributed := "Points of order were raised about the ONS."

	transcript := &domain.Transcript{
		Metadata: domain.Metadata{
			Title: "Economic Statistics",
			URL:   SiteURL + "/debates/?id=2024-03-12a.100.1",
		},
		Speeches: []*domain.Speech{
			{Name: &name, Position: &position, URL: &speakerURL, Response: &response},
			{Text: "Never summarised."},
			{Response: &unattributed},
		},
	}

	debates := NewDebates(Config{})
	rendered, err := debates.Render(transcript)
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"## House of Commons: [Economic Statistics](" + SiteURL + "/debates/?id=2024-03-12a.100.1)",
		"### [Jane Smith](" + speakerURL + ") (Minister for Statistics)",
		response,
		"### No speaker assigned",
		unattributed,
	}, "\n\n"), rendered)
}

func TestDebatesRenderSpeakerWithoutURL(t *testing.T) {
	name := "Jane Smith"
	position := "Minister for Statistics"
	response := "The ONS publishes labour market figures monthly."

	transcript := &domain.Transcript{
		Metadata: domain.Metadata{
			Title: "Economic Statistics",
			URL:   SiteURL + "/debates/?id=2024-03-12a.100.1",
		},
		Speeches: []*domain.Speech{
			{Name: &name, Position: &position, Response: &response},
		},
	}

	debates := NewDebates(Config{})
	rendered, err := debates.Render(transcript)
	require.NoError(t, err)

	assert.Contains(t, rendered, "### Jane Smith (Minister for Statistics)")
	assert.NotContains(t, rendered, "]()", "no empty link targets")
}

func TestDebatesRenderRejectsOtherRecords(t *testing.T) {
	debates := NewDebates(Config{})

	_, err := debates.Render(&domain.WrittenAnswer{})
	require.Error(t, err)
}

func TestParliamentLabel(t *testing.T) {
	cases := map[string]string{
		SiteURL + "/debates/?id=2024-03-12a.1.0": "House of Commons",
		SiteURL + "/lords/?id=2024-03-12a.1.0":   "House of Lords",
		SiteURL + "/whall/?id=2024-03-12a.1.0":   "Westminster Hall",
		SiteURL + "/wms/?id=2024-03-12.1.wms":    "UK Ministerial statement",
		SiteURL + "/senedd/?id=2024-03-12.1.0":   "Senedd / Welsh Parliament",
		SiteURL + "/sp/?id=2024-03-12.1.0":       "Scottish Parliament",
		SiteURL + "/ni/?id=2024-03-12.1.0":       "Northern Ireland Assembly",
		SiteURL + "/unknown/?id=2024-03-12.1.0":  "Unclassified",
		"https://example.com/debates/?id=1":      "Unclassified",
	}

	for url, label := range cases {
		assert.Equal(t, label, ParliamentLabel(url), url)
	}
}

func TestReadMetadataMalformedTitle(t *testing.T) {
	doc := document(t, `<html><head><title>No date here</title></head><body></body></html>`)

	_, err := readMetadata(SiteURL+"/debates/?id=2024-03-12a.1.0", doc)

	var malformed *domain.MalformedPageError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "title block", malformed.Missing)
}

func TestReadMetadataMissingURLDate(t *testing.T) {
	doc := document(t, debatePage)

	_, err := readMetadata(SiteURL+"/debates/untagged", doc)

	var malformed *domain.MalformedPageError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "date in URL", malformed.Missing)
}

func TestReadSpeechesEmptyPage(t *testing.T) {
	doc := document(t, `<html><body><p>Nothing here.</p></body></html>`)

	_, err := readSpeeches(SiteURL+"/debates/?id=2024-03-12a.1.0", doc)

	var malformed *domain.MalformedPageError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "speech blocks", malformed.Missing)
}
