// Command parliai summarises the latest communications in the UK
// Parliament: it gathers debate and written answer transcripts from
// TheyWorkForYou, extracts passages mentioning the configured search
// terms with a language model, and writes a Markdown digest.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/datasciencecampus/parliai-public/pkg/config"
	"github.com/datasciencecampus/parliai-public/pkg/dates"
	"github.com/datasciencecampus/parliai-public/pkg/llm"
	"github.com/datasciencecampus/parliai-public/pkg/readers"
	"github.com/datasciencecampus/parliai-public/pkg/report"
	"github.com/datasciencecampus/parliai-public/pkg/store"
	"github.com/datasciencecampus/parliai-public/pkg/summarise"
	"github.com/datasciencecampus/parliai-public/pkg/terms"
	"github.com/datasciencecampus/parliai-public/pkg/worker"
)

type options struct {
	start   string
	end     string
	window  int
	form    string
	weekly  bool
	noSave  bool
	workers int

	debatesTOML string
	writtenTOML string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "parliai",
		Short: "Summarise mentions of the ONS in UK parliamentary transcripts",
		Long: `parliai gathers parliamentary debate and written answer transcripts
from TheyWorkForYou, pulls out passages mentioning the configured search
terms with a language model, and writes a Markdown digest.

Environment variables:
  PARLIAI_LLM_BASE_URL   OpenAI-compatible endpoint (default: local Ollama)
  PARLIAI_LLM_API_KEY    API key for the endpoint`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.start, "start", "s", "", "start of reporting period (default format YYYY-MM-DD)")
	cmd.Flags().StringVarP(&opts.end, "end", "d", "", "end of reporting period (default format YYYY-MM-DD)")
	cmd.Flags().IntVarP(&opts.window, "window", "n", 0, "length of reporting period (inclusive of end)")
	cmd.Flags().StringVarP(&opts.form, "form", "f", dates.DefaultForm, "date string format")
	cmd.Flags().BoolVarP(&opts.weekly, "weekly", "w", false, "trigger a weekly report from today")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "do not save data from collected pages")
	cmd.Flags().IntVar(&opts.workers, "workers", 1, "number of pages to process concurrently")
	cmd.Flags().StringVar(&opts.debatesTOML, "debates-toml", "", "path to debates TOML configuration file")
	cmd.Flags().StringVar(&opts.writtenTOML, "written-toml", "", "path to written answers TOML configuration file")

	return cmd
}

func run(ctx context.Context, opts options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	env, err := config.LoadEnv()
	if err != nil {
		return err
	}

	debatesCfg, err := config.Load(opts.debatesTOML, config.Debates())
	if err != nil {
		return err
	}
	writtenCfg, err := config.Load(opts.writtenTOML, config.WrittenAnswers())
	if err != nil {
		return err
	}

	period, err := reportingPeriod(opts, debatesCfg)
	if err != nil {
		return err
	}

	client := llm.NewChatClient(llm.Config{
		BaseURL: env.LLMBaseURL,
		APIKey:  env.LLMAPIKey,
		Model:   debatesCfg.LLMName,
	})

	outdir, err := report.OutDir(debatesCfg.Outdir, period, debatesCfg.LLMName)
	if err != nil {
		return err
	}
	log.Printf("Writing outputs to %s", outdir)

	sink, err := buildStore(ctx, debatesCfg.Store, outdir, opts.noSave)
	if err != nil {
		return err
	}
	defer sink.Close(ctx)

	debates := readers.NewDebates(readerConfig(debatesCfg, period, client))
	written := readers.NewWrittenAnswers(readerConfig(writtenCfg, period, client))

	header := report.Header(period, debatesCfg.Keywords, debatesCfg.LLMName,
		debates.Source(), append(debatesCfg.URLs, writtenCfg.URLs...))

	debatesRenderings, err := runReader(ctx, debates, sink, opts.workers)
	if err != nil {
		return err
	}
	writtenRenderings, err := runReader(ctx, written, sink, opts.workers)
	if err != nil {
		return err
	}

	summary := strings.Join([]string{
		header,
		report.Section("# Debates", debatesRenderings),
		report.Section("# Written answers (UK Parliament only)", writtenRenderings),
	}, "\n\n")

	path := filepath.Join(outdir, "summary.md")
	if err := os.WriteFile(path, []byte(summary), 0o644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	log.Printf("Saved summary to %s", path)
	return nil
}

// reportingPeriod works out which dates the run covers. Command-line
// flags beat the configuration file; with neither, only yesterday is
// covered. The weekly flag means the last eight days up to today.
func reportingPeriod(opts options, cfg config.Config) ([]time.Time, error) {
	start, end, window := opts.start, opts.end, opts.window
	if opts.weekly {
		start, end, window = "", "", 8
	}

	if start == "" && end == "" && window == 0 {
		start, end, window = cfg.Start, cfg.End, cfg.Window
	}

	if start == "" && end == "" && window == 0 {
		yesterday := dates.Today().AddDate(0, 0, -1)
		return []time.Time{yesterday}, nil
	}

	return dates.List(start, end, window, opts.form)
}

// readerConfig wires one reader's configuration into its collaborators.
func readerConfig(cfg config.Config, period []time.Time, client llm.Client) readers.Config {
	matcher := terms.NewMatcher(cfg.Keywords)

	return readers.Config{
		URLs:    cfg.URLs,
		Dates:   period,
		FeedURL: cfg.FeedURL,
		Matcher: matcher,
		Summariser: summarise.New(summarise.Config{
			Client:     client,
			Matcher:    matcher,
			Model:      cfg.LLMName,
			Prompt:     cfg.Prompt,
			Disclaimer: cfg.InconsistencyStatement,
		}),
	}
}

// buildStore picks the persistence backend for extracted records.
func buildStore(ctx context.Context, cfg config.Store, outdir string, noSave bool) (store.Store, error) {
	if noSave {
		return store.Discard{}, nil
	}

	switch cfg.Backend {
	case "", "file":
		return store.NewFileStore(outdir), nil
	case "postgres":
		pg := store.NewPostgresStore(store.PostgresConfig{DSN: cfg.DSN})
		if err := pg.Connect(ctx); err != nil {
			return nil, err
		}
		return pg, nil
	case "mongo":
		return store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// runReader discovers a reader's entries for the period and processes
// each one: read, summarise, render, save. Failed pages are logged by
// the worker pool and contribute nothing to the digest; their siblings
// are unaffected.
func runReader(ctx context.Context, r readers.Reader, sink store.Store, workers int) ([]string, error) {
	entries, err := r.LatestEntries(ctx)
	if err != nil {
		return nil, err
	}
	log.Printf("Processing %d entries", len(entries))

	results := worker.Map(ctx, workers, entries, func(ctx context.Context, url string) (string, error) {
		rec, err := r.Read(ctx, url)
		if err != nil || rec == nil {
			return "", err
		}

		analyseErr := r.Analyse(ctx, rec)

		// Extracted pages are always saved, with whatever responses
		// analysis managed to attach before failing.
		if err := sink.Save(ctx, rec); err != nil {
			return "", err
		}
		if analyseErr != nil {
			return "", analyseErr
		}

		return r.Render(rec)
	})

	renderings := make([]string, 0, len(results))
	for _, result := range results {
		if result.Err != nil {
			continue
		}
		renderings = append(renderings, result.Rendering)
	}

	return renderings, nil
}
