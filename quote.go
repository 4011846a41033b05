package newsquote

// StructuredResult is the schema-validated output of the language-model
// stage for one article. After Normalize, len(Quotes) == len(Speakers).
// The zero value (all fields empty) is the empty-result sentinel used to
// keep batch processing alive through per-record failures.
type StructuredResult struct {
	Quotes   []string `json:"quotes"`
	Speakers []string `json:"speakers"`
	Province string   `json:"province"`
	City     string   `json:"city"`
}

// EmptyResult returns the canonical "nothing extracted" sentinel.
func EmptyResult() *StructuredResult {
	return &StructuredResult{}
}

// IsEmpty reports whether the result carries no extracted data.
func (r *StructuredResult) IsEmpty() bool {
	return len(r.Quotes) == 0 && len(r.Speakers) == 0 && r.Province == "" && r.City == ""
}

// Normalize enforces the quotes/speakers pairing invariant by truncating
// both sequences to the shorter length. Truncation is the defined
// tie-break for mismatched provider output, not an error.
func (r *StructuredResult) Normalize() {
	if len(r.Quotes) == len(r.Speakers) {
		return
	}
	n := min(len(r.Quotes), len(r.Speakers))
	r.Quotes = r.Quotes[:n]
	r.Speakers = r.Speakers[:n]
}

// Rows expands the result into one ParsedRow per (quote, speaker) pair,
// each carrying the same province/city. A result with zero quotes
// produces zero rows.
func (r *StructuredResult) Rows(id, date, sourceURL string) []ParsedRow {
	rows := make([]ParsedRow, 0, len(r.Quotes))
	for i, quote := range r.Quotes {
		if i >= len(r.Speakers) {
			break
		}
		rows = append(rows, ParsedRow{
			ID:        id,
			Date:      date,
			SourceURL: sourceURL,
			Quote:     quote,
			Speaker:   r.Speakers[i],
			Province:  r.Province,
			City:      r.City,
		})
	}
	return rows
}

// ParsedRow is one extracted quote with its provenance. Province and City
// are empty when absent; display-time placeholders like "N/A" are a
// downstream concern.
type ParsedRow struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	SourceURL string `json:"sourceUrl"`
	Quote     string `json:"quote"`
	Speaker   string `json:"speaker"`
	Province  string `json:"province"`
	City      string `json:"city"`
}
