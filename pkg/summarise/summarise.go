// Package summarise drives the per-speech summarisation loop: chunk
// the text, filter the chunks, invoke the model and verify what comes
// back.
package summarise

import (
	"context"
	"log"
	"strings"

	"github.com/datasciencecampus/parliai-public/pkg/chunk"
	"github.com/datasciencecampus/parliai-public/pkg/domain"
	"github.com/datasciencecampus/parliai-public/pkg/llm"
	"github.com/datasciencecampus/parliai-public/pkg/terms"
)

// Config assembles the collaborators and knobs for a Summariser. Chunk
// settings fall back to the chunk package defaults when unset.
type Config struct {
	Client     llm.Client
	Matcher    *terms.Matcher
	Model      string
	Prompt     string
	Disclaimer string

	ChunkSeparator string
	ChunkSize      int
	ChunkOverlap   int
}

// Summariser summarises individual speeches with a language model.
// It is immutable after construction and safe to share across workers.
type Summariser struct {
	client     llm.Client
	matcher    *terms.Matcher
	model      string
	prompt     string
	disclaimer string

	chunkSep     string
	chunkSize    int
	chunkOverlap int
}

// New creates a Summariser from the given configuration.
func New(cfg Config) *Summariser {
	if cfg.ChunkSeparator == "" {
		cfg.ChunkSeparator = chunk.DefaultSeparator
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = chunk.DefaultSize
	}
	if cfg.ChunkOverlap <= 0 {
		cfg.ChunkOverlap = chunk.DefaultOverlap
	}

	return &Summariser{
		client:       cfg.Client,
		matcher:      cfg.Matcher,
		model:        cfg.Model,
		prompt:       cfg.Prompt,
		disclaimer:   cfg.Disclaimer,
		chunkSep:     cfg.ChunkSeparator,
		chunkSize:    cfg.ChunkSize,
		chunkOverlap: cfg.ChunkOverlap,
	}
}

// Speech summarises one speech in place.
//
// A speech that mentions no search terms is left untouched, so its
// Response stays nil. Otherwise the text is split into chunks,
// irrelevant chunks are skipped, and the surviving chunk responses are
// joined with blank lines into the speech's Response. That can
// legitimately be the empty string when every chunk was filtered out.
//
// A model invocation failure is returned to the caller unretried.
func (s *Summariser) Speech(ctx context.Context, speech *domain.Speech) error {
	if !s.matcher.ContainsAny(speech.Text) {
		return nil
	}

	chunks := chunk.Split(speech.Text, s.chunkSep, s.chunkSize, s.chunkOverlap)

	responses := make([]string, 0, len(chunks))
	for _, text := range chunks {
		if !s.matcher.ContainsAny(text) {
			continue
		}

		response, err := s.analyseChunk(ctx, text)
		if err != nil {
			return err
		}
		responses = append(responses, response)
	}

	joined := strings.Join(responses, "\n\n")
	speech.Response = &joined

	return nil
}

// analyseChunk sends one chunk to the model and post-processes the
// response. An ungrounded response is kept but flagged with the
// configured disclaimer; that degrades the output, never the run.
func (s *Summariser) analyseChunk(ctx context.Context, text string) (string, error) {
	response, err := s.client.Invoke(ctx, s.buildPrompt(text))
	if err != nil {
		return "", err
	}

	response = strings.TrimSpace(response)
	if llm.HasPreamble(s.model) {
		response = llm.CleanResponse(response)
	}

	if !llm.Grounded(response, text) {
		log.Printf("LLM response inconsistent with source (model %s).", s.model)
		response += "\n\n" + s.disclaimer
	}

	return response, nil
}

// buildPrompt fills the prompt template's {keywords} and {text}
// placeholders.
func (s *Summariser) buildPrompt(text string) string {
	keywords := strings.Join(s.matcher.Terms(), ", ")
	return strings.NewReplacer(
		"{keywords}", keywords,
		"{text}", text,
	).Replace(s.prompt)
}
