// Package config loads run configuration: TOML files for the reader
// settings and the environment for model connection details.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Store selects and configures the persistence backend for extracted
// records.
type Store struct {
	// Backend is one of "file", "postgres" or "mongo". The file
	// backend writes JSON under the run's output directory.
	Backend string `toml:"backend"`

	// DSN is the Postgres connection string for the postgres backend.
	DSN string `toml:"dsn"`

	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Config holds the settings for one reader. It is loaded once per run
// and passed by value, never mutated afterwards.
type Config struct {
	URLs                   []string `toml:"urls"`
	Keywords               []string `toml:"keywords"`
	Prompt                 string   `toml:"prompt"`
	LLMName                string   `toml:"llm_name"`
	InconsistencyStatement string   `toml:"inconsistency_statement"`
	Outdir                 string   `toml:"outdir"`

	// Reporting period; the command line can override these.
	Start  string `toml:"start"`
	End    string `toml:"end"`
	Window int    `toml:"window"`
	Form   string `toml:"form"`

	// FeedURL switches entry discovery to an RSS feed when set.
	FeedURL string `toml:"feed_url"`

	Store Store `toml:"store"`
}

const defaultPrompt = `You are reviewing a transcript from the UK Parliament. ` +
	`Extract, word for word, every sentence that mentions any of the ` +
	`following keywords: {keywords}. Quote the transcript exactly and do ` +
	`not add anything of your own. If no sentence mentions them, say ` +
	`nothing.

Transcript:
{text}`

const defaultInconsistency = "NB: this excerpt could not be verified " +
	"against the original transcript and may be inaccurate."

// base returns the settings shared by every reader.
func base() Config {
	return Config{
		Keywords:               []string{"Office for National Statistics", "ONS"},
		Prompt:                 defaultPrompt,
		LLMName:                "gemma",
		InconsistencyStatement: defaultInconsistency,
		Outdir:                 "out",
		Form:                   "2006-01-02",
		Store:                  Store{Backend: "file"},
	}
}

// Debates returns the default configuration for the debates reader.
func Debates() Config {
	cfg := base()
	cfg.URLs = []string{
		"https://www.theyworkforyou.com/debates",
		"https://www.theyworkforyou.com/lords",
		"https://www.theyworkforyou.com/whall",
		"https://www.theyworkforyou.com/wms",
	}
	return cfg
}

// WrittenAnswers returns the default configuration for the written
// answers reader.
func WrittenAnswers() Config {
	cfg := base()
	cfg.URLs = []string{"https://www.theyworkforyou.com/wrans"}
	return cfg
}

// Load reads a TOML file over the given defaults. An empty path
// returns the defaults untouched, so a missing flag just means "use
// the built-in configuration".
func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Env carries model connection details from the environment. The
// defaults point at a local Ollama server.
type Env struct {
	LLMBaseURL string `envconfig:"LLM_BASE_URL" default:"http://localhost:11434/v1"`
	LLMAPIKey  string `envconfig:"LLM_API_KEY" default:"ollama"`
}

// LoadEnv reads the environment, with a .env file applied first when
// one exists.
func LoadEnv() (Env, error) {
	_ = godotenv.Load()

	var env Env
	if err := envconfig.Process("PARLIAI", &env); err != nil {
		return env, fmt.Errorf("failed to process environment: %w", err)
	}

	return env, nil
}
