// Package csv reads and writes the batch pipeline's file formats: input
// article lists, intermediate extraction records, and final quote rows.
package csv

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/newsquote"
)

// Column layouts. Headers are written and validated exactly.
var (
	inputHeader      = []string{"ID", "date", "source"}
	extractionHeader = []string{"ID", "date_article", "ingestion_time", "source", "content", "pages", "method"}
	rowHeader        = []string{"id", "date", "source", "quote", "speaker", "province", "city"}
)

// timeLayout is the serialization format for ingestion timestamps.
const timeLayout = time.RFC3339

// ReadInputs reads the batch input file. Rows whose source is not an
// absolute http(s) URL are skipped rather than failing the batch; the
// count of skipped rows is returned alongside the inputs.
func ReadInputs(r io.Reader) ([]newsquote.ArticleInput, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, 0, newsquote.Errorf(newsquote.EINVALID, "input file has no header: %v", err)
	}
	if err := checkHeader(header, inputHeader); err != nil {
		return nil, 0, err
	}

	var inputs []newsquote.ArticleInput
	skipped := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, newsquote.Errorf(newsquote.EINVALID, "input file: %v", err)
		}
		if len(rec) < 3 {
			skipped++
			continue
		}

		input := newsquote.ArticleInput{
			ID:        strings.TrimSpace(rec[0]),
			Date:      strings.TrimSpace(rec[1]),
			SourceURL: strings.TrimSpace(rec[2]),
		}
		if input.Validate() != nil {
			skipped++
			continue
		}
		inputs = append(inputs, input)
	}

	return inputs, skipped, nil
}

// WriteExtractions writes extraction records in batch order.
func WriteExtractions(w io.Writer, recs []*newsquote.ExtractionRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(extractionHeader); err != nil {
		return err
	}
	for _, rec := range recs {
		row := []string{
			rec.ID,
			rec.DateArticle,
			rec.IngestionTime.Format(timeLayout),
			rec.SourceURL,
			rec.Content,
			strconv.Itoa(rec.Pages),
			rec.Method,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadExtractions reads an extraction file produced by WriteExtractions.
func ReadExtractions(r io.Reader) ([]*newsquote.ExtractionRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(extractionHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, newsquote.Errorf(newsquote.EINVALID, "extraction file has no header: %v", err)
	}
	if err := checkHeader(header, extractionHeader); err != nil {
		return nil, err
	}

	var recs []*newsquote.ExtractionRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, newsquote.Errorf(newsquote.EINVALID, "extraction file: %v", err)
		}

		rec := &newsquote.ExtractionRecord{
			ID:          row[0],
			DateArticle: row[1],
			SourceURL:   row[3],
			Content:     row[4],
			Method:      row[6],
		}
		if t, err := time.Parse(timeLayout, row[2]); err == nil {
			rec.IngestionTime = t
		}
		if n, err := strconv.Atoi(row[5]); err == nil {
			rec.Pages = n
		}
		recs = append(recs, rec)
	}

	return recs, nil
}

// WriteRows writes the final quote rows.
func WriteRows(w io.Writer, rows []newsquote.ParsedRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rowHeader); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.ID,
			row.Date,
			row.SourceURL,
			row.Quote,
			row.Speaker,
			row.Province,
			row.City,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// checkHeader validates a file's header row against the expected layout.
// Comparison is case-insensitive and tolerates a UTF-8 BOM on the first
// column, which spreadsheet exports routinely add.
func checkHeader(got, want []string) error {
	if len(got) < len(want) {
		return newsquote.Errorf(newsquote.EINVALID, "expected columns %v, got %v", want, got)
	}
	for i, name := range want {
		col := strings.TrimSpace(strings.TrimPrefix(got[i], "\uFEFF"))
		if !strings.EqualFold(col, name) {
			return newsquote.Errorf(newsquote.EINVALID, "expected column %q at position %d, got %q", name, i, got[i])
		}
	}
	return nil
}
