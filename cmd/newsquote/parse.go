package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/newsquote"
	"github.com/fwojciec/newsquote/csv"
	"github.com/fwojciec/newsquote/parse"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	recs, err := readExtractions(c.Input)
	if err != nil {
		return err
	}

	result, rows, err := deps.Parse.Run(deps.Ctx, recs, parseProgress(deps))
	if err != nil {
		return err
	}

	if err := writeRows(c.Output, rows); err != nil {
		return err
	}

	printParseStats(deps, result, c.Output)
	return nil
}

// readExtractions loads the intermediate extraction file.
func readExtractions(path string) ([]*newsquote.ExtractionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open extraction file %q: %w", path, err)
	}
	defer f.Close()

	return csv.ReadExtractions(f)
}

// writeRows writes the final quote rows to an output CSV.
func writeRows(path string, rows []newsquote.ParsedRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	if err := csv.WriteRows(f, rows); err != nil {
		return err
	}
	return f.Close()
}

// parseProgress prints a line per parsed record.
func parseProgress(deps *Dependencies) parse.ProgressFunc {
	return func(ev parse.ProgressEvent) {
		switch ev.Type {
		case parse.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Parsing %d records\n", ev.Total)
		case parse.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s: %d quotes\n", ev.Completed, ev.Total, ev.ID, ev.Rows)
		}
	}
}

func printParseStats(deps *Dependencies, result *parse.Result, output string) {
	fmt.Fprintf(deps.Stdout, "Parsing complete: %d parsed, %d empty, %d skipped, %d quote rows\n",
		result.Parsed, result.Empty, result.Skipped, result.Rows)
	fmt.Fprintf(deps.Stdout, "Wrote %s\n", output)
}
