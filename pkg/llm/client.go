// Package llm wraps access to the language model and the checks we run
// on its output.
package llm

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Defaults target a local Ollama server through its OpenAI-compatible
// endpoint. Ollama ignores the API key but the client requires one.
const (
	DefaultBaseURL = "http://localhost:11434/v1"
	DefaultAPIKey  = "ollama"
	DefaultModel   = "gemma"
)

// Client is the model interface the summariser depends on. Invoke
// sends one prompt and returns the completion text. Failures are
// returned as-is; callers decide whether to abort or skip, and nothing
// here retries.
type Client interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Config holds the connection details for a chat model.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

// ChatClient talks to any OpenAI-compatible chat endpoint, which in
// practice means a locally-served Ollama model.
type ChatClient struct {
	api   *openai.Client
	model string
}

// NewChatClient creates a chat client from the given configuration,
// filling in local-Ollama defaults for anything unset.
func NewChatClient(cfg Config) *ChatClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.APIKey == "" {
		cfg.APIKey = DefaultAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	apiConfig := openai.DefaultConfig(cfg.APIKey)
	apiConfig.BaseURL = cfg.BaseURL

	return &ChatClient{
		api:   openai.NewClientWithConfig(apiConfig),
		model: cfg.Model,
	}
}

// Model returns the model name the client invokes.
func (c *ChatClient) Model() string {
	return c.model
}

// Invoke sends the prompt as a single user message at temperature zero
// and returns the completion text.
func (c *ChatClient) Invoke(ctx context.Context, prompt string) (string, error) {
	// The request's Temperature field is marshalled with omitempty, so
	// a literal 0 never reaches the server and it falls back to its own
	// default. The smallest positive float32 survives marshalling and
	// is zero for any practical purpose.
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: math.SmallestNonzeroFloat32,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("model invocation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no completion choices")
	}

	return resp.Choices[0].Message.Content, nil
}

var gemmaPreamble = regexp.MustCompile(`^Sure(.*?:)\s*`)

// CleanResponse strips the "Sure...:" preamble that gemma models like
// to prepend before the content we asked for.
func CleanResponse(response string) string {
	return gemmaPreamble.ReplaceAllString(response, "")
}

// HasPreamble reports whether responses from the named model need
// cleaning with CleanResponse.
func HasPreamble(model string) bool {
	return strings.HasPrefix(model, "gemma")
}
