package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/newsquote"
	"github.com/fwojciec/newsquote/extract"
	"github.com/fwojciec/newsquote/parse"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Runs    newsquote.RunService // nil unless --db is set
	Extract *extract.Runner
	Parse   *parse.Runner
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Extract ExtractCmd `cmd:"" help:"Fetch article content for a batch of URLs"`
	Parse   ParseCmd   `cmd:"" help:"Extract quotes from fetched articles with an AI model"`
	Run     RunCmd     `cmd:"" help:"Run extraction and parsing end to end"`

	Verbose bool   `short:"v" help:"Enable debug logging"`
	DB      string `env:"NEWSQUOTE_DB" help:"SQLite database for run checkpoints (optional)"`
}

// ExtractFlags configures the content retrieval stage.
type ExtractFlags struct {
	DiffbotToken string        `env:"DIFFBOT_TOKEN" help:"Diffbot API token"`
	MaxPages     int           `default:"5" help:"Maximum pages fetched per article"`
	MaxRetries   int           `default:"3" help:"Attempts per extractor per page"`
	RetryDelay   time.Duration `default:"5s" help:"Pause between retry attempts"`
	URLDelay     time.Duration `default:"13s" help:"Pause between consecutive articles"`
	PageDelay    time.Duration `default:"8s" help:"Pause between pages of one article"`
}

// ParseFlags configures the AI parsing stage.
type ParseFlags struct {
	Provider     string        `default:"gemini" enum:"gemini,openai" help:"AI provider"`
	Model        string        `help:"Model identifier (provider default when empty)"`
	APIKey       string        `help:"Provider API key (defaults to GEMINI_API_KEY or OPENAI_API_KEY)"`
	Temperature  float64       `default:"0.1" help:"Sampling temperature"`
	MaxContent   int           `default:"6000" help:"Article characters sent per prompt"`
	AIDelay      time.Duration `default:"1s" help:"Pause between model calls"`
	AITimeout    time.Duration `default:"60s" help:"Timeout per model call"`
	AIMaxRetries int           `default:"3" help:"Attempts per record"`
	Threads      int           `default:"1" help:"Parallel parsing workers"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Input  string `arg:"" help:"Input CSV with columns ID,date,source"`
	Output string `short:"o" default:"extractions.csv" help:"Output CSV path"`

	ExtractFlags `embed:""`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	Input  string `arg:"" help:"Extraction CSV produced by the extract command"`
	Output string `short:"o" default:"quotes.csv" help:"Output CSV path"`

	ParseFlags `embed:""`
}

// RunCmd is the "run" subcommand: extract and parse in one invocation.
type RunCmd struct {
	Input        string `arg:"" help:"Input CSV with columns ID,date,source"`
	Output       string `short:"o" default:"quotes.csv" help:"Output CSV path"`
	Intermediate string `help:"Also write the extraction CSV to this path"`

	ExtractFlags `embed:""`
	ParseFlags   `embed:""`
}
