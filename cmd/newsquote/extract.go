package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/newsquote"
	"github.com/fwojciec/newsquote/csv"
	"github.com/fwojciec/newsquote/extract"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	inputs, err := readInputs(deps, c.Input)
	if err != nil {
		return err
	}

	result, recs, err := deps.Extract.Run(deps.Ctx, inputs, extractProgress(deps))
	if err != nil {
		return err
	}

	if err := writeExtractions(c.Output, recs); err != nil {
		return err
	}

	printExtractStats(deps, result, c.Output)
	return nil
}

// readInputs loads and validates the batch input file.
func readInputs(deps *Dependencies, path string) ([]newsquote.ArticleInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file %q: %w", path, err)
	}
	defer f.Close()

	inputs, skipped, err := csv.ReadInputs(f)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		fmt.Fprintf(deps.Stdout, "Skipped %d invalid rows\n", skipped)
	}
	if len(inputs) == 0 {
		return nil, newsquote.Errorf(newsquote.EINVALID, "input file %q has no valid rows", path)
	}
	return inputs, nil
}

// writeExtractions writes extraction records to an output CSV.
func writeExtractions(path string, recs []*newsquote.ExtractionRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	if err := csv.WriteExtractions(f, recs); err != nil {
		return err
	}
	return f.Close()
}

// extractProgress prints a line per processed article.
func extractProgress(deps *Dependencies) extract.ProgressFunc {
	return func(ev extract.ProgressEvent) {
		switch ev.Type {
		case extract.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Extracting %d articles\n", ev.Total)
		case extract.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s\n", ev.Completed, ev.Total, ev.URL)
		case extract.ProgressFailed:
			fmt.Fprintf(deps.Stdout, "[%d/%d] FAILED %s: %v\n", ev.Completed, ev.Total, ev.URL, ev.Err)
		}
	}
}

func printExtractStats(deps *Dependencies, result *extract.Result, output string) {
	fmt.Fprintf(deps.Stdout, "Extraction complete: %d succeeded, %d empty, %d duplicates, %d pages fetched\n",
		result.Succeeded, result.Empty, result.Duplicates, result.Pages)
	if output != "" {
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", output)
	}
}
