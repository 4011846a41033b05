package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/newsquote"
	"github.com/fwojciec/newsquote/diffbot"
	"github.com/fwojciec/newsquote/extract"
	"github.com/fwojciec/newsquote/gemini"
	"github.com/fwojciec/newsquote/goquery"
	"github.com/fwojciec/newsquote/htmltomarkdown"
	nqhttp "github.com/fwojciec/newsquote/http"
	"github.com/fwojciec/newsquote/openai"
	"github.com/fwojciec/newsquote/parse"
	"github.com/fwojciec/newsquote/readability"
	"github.com/fwojciec/newsquote/retry"
	nqslog "github.com/fwojciec/newsquote/slog"
	"github.com/fwojciec/newsquote/sqlite"
	"github.com/fwojciec/newsquote/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database for run checkpoints. Nil unless --db is set.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("newsquote"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'newsquote --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)

	if cli.DB != "" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()
		deps.Runs = sqlite.NewRunService(m.DB)
	}

	// Wire stage runners based on the command.
	if cmd == "extract" || cmd == "run" {
		var flags ExtractFlags
		var input string
		if cmd == "extract" {
			flags, input = cli.Extract.ExtractFlags, cli.Extract.Input
		} else {
			flags, input = cli.Run.ExtractFlags, cli.Run.Input
		}

		cfg := extractConfig(flags)
		if err := cfg.ValidateExtraction(); err != nil {
			fmt.Fprintln(stderr, "Hint: Set DIFFBOT_TOKEN or pass --diffbot-token")
			return err
		}

		deps.Extract = buildExtractRunner(cfg, deps.Logger,
			extractCheckpoint(ctx, deps.Runs, input))
	}

	if cmd == "parse" || cmd == "run" {
		var flags ParseFlags
		var input string
		if cmd == "parse" {
			flags, input = cli.Parse.ParseFlags, cli.Parse.Input
		} else {
			flags, input = cli.Run.ParseFlags, cli.Run.Input
		}

		cfg := parseConfig(flags)
		if err := cfg.ValidateParsing(); err != nil {
			fmt.Fprintln(stderr, "Hint: Set GEMINI_API_KEY or OPENAI_API_KEY, or pass --api-key")
			return err
		}

		completer, err := buildCompleter(ctx, cfg, deps.Logger)
		if err != nil {
			return err
		}
		deps.Parse = buildParseRunner(completer, cfg, deps.Logger,
			parseCheckpoint(ctx, deps.Runs, input))
	}

	return kongCtx.Run(deps)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// extractConfig builds the extraction stage configuration from CLI flags.
func extractConfig(flags ExtractFlags) newsquote.Config {
	cfg := newsquote.DefaultConfig()
	cfg.DiffbotToken = flags.DiffbotToken
	cfg.MaxPages = flags.MaxPages
	cfg.MaxRetries = flags.MaxRetries
	cfg.RetryDelay = flags.RetryDelay
	cfg.DelayBetweenURLs = flags.URLDelay
	cfg.DelayBetweenPages = flags.PageDelay
	return cfg
}

// parseConfig builds the parsing stage configuration from CLI flags. The
// API key falls back to the provider's conventional environment variable.
func parseConfig(flags ParseFlags) newsquote.Config {
	cfg := newsquote.DefaultConfig()
	cfg.Provider = flags.Provider
	cfg.Model = flags.Model
	cfg.APIKey = flags.APIKey
	cfg.Temperature = flags.Temperature
	cfg.MaxContent = flags.MaxContent
	cfg.AIDelay = flags.AIDelay
	cfg.AITimeout = flags.AITimeout
	cfg.AIMaxRetries = flags.AIMaxRetries
	cfg.ParsingThreads = flags.Threads

	if cfg.APIKey == "" {
		switch cfg.Provider {
		case newsquote.ProviderGemini:
			cfg.APIKey = os.Getenv("GEMINI_API_KEY")
		case newsquote.ProviderOpenAI:
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}
	return cfg
}

// buildExtractRunner wires the extractor chain, paginators and pacing for
// the extraction stage.
func buildExtractRunner(cfg newsquote.Config, logger *slog.Logger, checkpoint extract.CheckpointFunc) *extract.Runner {
	converter := htmltomarkdown.NewConverter()
	fetcher := nqhttp.NewFetcher()

	extractors := []newsquote.Extractor{
		nqslog.NewLoggingExtractor(diffbot.NewExtractor(cfg.DiffbotToken), logger),
		nqslog.NewLoggingExtractor(trafilatura.NewExtractor(fetcher, converter), logger),
		nqslog.NewLoggingExtractor(readability.NewExtractor(fetcher, converter), logger),
	}

	registry := goquery.NewRegistry(goquery.NewGenericPaginator())
	registry.Register("tribunnews.com", goquery.NewTribunPaginator())

	return &extract.Runner{
		Extractors: extractors,
		Paginators: registry,
		URLGate:    extract.NewFixedGate(cfg.DelayBetweenURLs),
		PageGate:   extract.NewFixedGate(cfg.DelayBetweenPages),
		Retry:      retry.Policy{MaxAttempts: cfg.MaxRetries, Delay: cfg.RetryDelay},
		MaxPages:   cfg.MaxPages,
		Checkpoint: checkpoint,
		Logger:     logger,
	}
}

// buildCompleter selects the provider once at startup.
func buildCompleter(ctx context.Context, cfg newsquote.Config, logger *slog.Logger) (newsquote.Completer, error) {
	var completer newsquote.Completer
	switch cfg.Provider {
	case newsquote.ProviderGemini:
		client, err := gemini.NewClient(ctx, cfg.APIKey)
		if err != nil {
			return nil, err
		}
		completer = gemini.NewCompleter(client, cfg.Model, float32(cfg.Temperature))
	case newsquote.ProviderOpenAI:
		completer = openai.NewCompleter(cfg.APIKey, cfg.Model, cfg.Temperature)
	default:
		return nil, newsquote.Errorf(newsquote.EINVALID, "unknown AI provider %q", cfg.Provider)
	}
	return nqslog.NewLoggingCompleter(completer, logger), nil
}

// buildParseRunner wires the parser and worker pool for the parsing stage.
func buildParseRunner(completer newsquote.Completer, cfg newsquote.Config, logger *slog.Logger, checkpoint parse.CheckpointFunc) *parse.Runner {
	return &parse.Runner{
		Parser: &parse.Parser{
			Completer:  completer,
			Gate:       extract.NewFixedGate(cfg.AIDelay),
			Retry:      retry.Policy{MaxAttempts: cfg.AIMaxRetries, Delay: cfg.AIDelay, Exponential: true},
			MaxContent: cfg.MaxContent,
			Timeout:    cfg.AITimeout,
			Logger:     logger,
		},
		Threads:    cfg.ParsingThreads,
		Checkpoint: checkpoint,
		Logger:     logger,
	}
}

// extractCheckpoint returns a checkpoint function persisting extraction
// records against a new run, or nil when no database is configured.
func extractCheckpoint(ctx context.Context, runs newsquote.RunService, input string) extract.CheckpointFunc {
	if runs == nil {
		return nil
	}
	run := &newsquote.Run{Kind: newsquote.RunKindExtract, Input: input}
	created := false
	return func(ctx context.Context, recs []*newsquote.ExtractionRecord) error {
		if !created {
			if err := runs.CreateRun(ctx, run); err != nil {
				return err
			}
			created = true
		}
		return runs.SaveExtractions(ctx, run.ID, recs)
	}
}

// parseCheckpoint returns a checkpoint function persisting parsed rows
// against a new run, or nil when no database is configured.
func parseCheckpoint(ctx context.Context, runs newsquote.RunService, input string) parse.CheckpointFunc {
	if runs == nil {
		return nil
	}
	run := &newsquote.Run{Kind: newsquote.RunKindParse, Input: input}
	created := false
	return func(ctx context.Context, rows []newsquote.ParsedRow) error {
		if !created {
			if err := runs.CreateRun(ctx, run); err != nil {
				return err
			}
			created = true
		}
		return runs.SaveRows(ctx, run.ID, rows)
	}
}
