package readers

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/datasciencecampus/parliai-public/pkg/domain"
)

// SupportedWrittenURLs lists the endpoints the written answers reader
// knows how to handle.
var SupportedWrittenURLs = []string{SiteURL + "/wrans"}

// noMentionPlaceholder is rendered for an answer that was never
// summarised.
const noMentionPlaceholder = "Answer does not mention any search terms."

var (
	// leadRecipientPattern captures the question's recipient from the
	// lead block, e.g. "Cabinet Office written question ...".
	leadRecipientPattern = regexp.MustCompile(`^(.*) written question`)

	// leadAnsweredPattern captures the answer date from the lead
	// block, e.g. "... answered on 12 March 2024".
	leadAnsweredPattern = regexp.MustCompile(`on\s+(\d{1,2} \w+ \d{4})`)
)

// WrittenAnswers summarises written question and answer entries. It
// reuses the debates extraction and re-slices the speech blocks: the
// final block on a written answer page is always the answer, everything
// before it is a question.
type WrittenAnswers struct {
	Debates
}

// NewWrittenAnswers creates a written answers reader. Unsupported base
// URLs get a warning rather than a failure; the reader still runs,
// degraded, so one odd configuration entry never blocks a report.
func NewWrittenAnswers(cfg Config) *WrittenAnswers {
	for _, url := range cfg.URLs {
		if !supportedWrittenURL(url) {
			log.Printf("URLs must be a list of supported endpoints. "+
				"Currently, the only acceptable URLs are: %s",
				strings.Join(SupportedWrittenURLs, ", "))
			break
		}
	}

	return &WrittenAnswers{Debates: Debates{reader: newReader(cfg)}}
}

func supportedWrittenURL(url string) bool {
	for _, supported := range SupportedWrittenURLs {
		if url == supported {
			return true
		}
	}
	return false
}

// Read fetches a written answer page and extracts it into a record.
// Pages mentioning none of the search terms return (nil, nil).
func (w *WrittenAnswers) Read(ctx context.Context, url string) (domain.Record, error) {
	doc, err := w.get(ctx, url, true)
	if err != nil || doc == nil {
		return nil, err
	}

	meta, err := readMetadata(url, doc)
	if err != nil {
		return nil, err
	}

	lead := strings.TrimSpace(doc.Find("p.lead").First().Text())
	if lead == "" {
		return nil, domain.NewMalformedPageError(url, "lead block")
	}
	recipient, answered, err := parseLead(url, lead)
	if err != nil {
		return nil, err
	}

	speeches, err := readSpeeches(url, doc)
	if err != nil {
		return nil, err
	}

	return &domain.WrittenAnswer{
		Metadata:  meta,
		Recipient: recipient,
		Answered:  answered,
		Questions: speeches[:len(speeches)-1],
		Answer:    speeches[len(speeches)-1],
	}, nil
}

// parseLead extracts the recipient department and the answer date from
// the lead block text.
func parseLead(url, lead string) (string, time.Time, error) {
	recipientMatch := leadRecipientPattern.FindStringSubmatch(lead)
	if recipientMatch == nil {
		return "", time.Time{}, domain.NewMalformedPageError(url, "recipient in lead block")
	}

	answeredMatch := leadAnsweredPattern.FindStringSubmatch(lead)
	if answeredMatch == nil {
		return "", time.Time{}, domain.NewMalformedPageError(url, "answer date in lead block")
	}

	answered, err := time.Parse("2 January 2006", answeredMatch[1])
	if err != nil {
		return "", time.Time{}, domain.NewMalformedPageError(url, "parseable answer date in lead block")
	}

	return recipientMatch[1], answered, nil
}

// Analyse summarises the answer in place. The questions are kept
// verbatim, so only the answer goes to the model.
func (w *WrittenAnswers) Analyse(ctx context.Context, rec domain.Record) error {
	answer, ok := rec.(*domain.WrittenAnswer)
	if !ok {
		return fmt.Errorf("written answers reader cannot analyse a %T", rec)
	}

	return w.summariser.Speech(ctx, answer.Answer)
}

// Render converts an analysed written answer into Markdown: the
// questions verbatim, a metadata line, then the summarised answer. The
// answer is always rendered, with a placeholder when it was never
// summarised.
func (w *WrittenAnswers) Render(rec domain.Record) (string, error) {
	answer, ok := rec.(*domain.WrittenAnswer)
	if !ok {
		return "", fmt.Errorf("written answers reader cannot render a %T", rec)
	}

	title := fmt.Sprintf("## [%s](%s)", answer.Title, answer.URL)

	sections := []string{title}
	for _, question := range answer.Questions {
		header := fmt.Sprintf("### Asked by %s (%s)",
			markdownLink(deref(question.Name), question.URL), deref(question.Position))
		sections = append(sections, header+"\n\n"+strings.TrimSpace(question.Text))
	}

	metadata := fmt.Sprintf("Addressed to: %s. Asked on: %s. Answered on: %s.",
		answer.Recipient,
		answer.Date.Format("2006-01-02"),
		answer.Answered.Format("2006-01-02"))
	sections = append(sections, metadata)

	sections = append(sections, renderAnswer(answer.Answer))

	return strings.Join(sections, "\n\n"), nil
}

// renderAnswer styles the answer block for the summary.
func renderAnswer(answer *domain.Speech) string {
	header := fmt.Sprintf("### Answered by %s (%s)",
		markdownLink(deref(answer.Name), answer.URL), deref(answer.Position))

	response := noMentionPlaceholder
	if answer.Response != nil {
		response = *answer.Response
	}

	return header + "\n\n" + response
}
