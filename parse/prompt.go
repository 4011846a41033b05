package parse

import (
	"fmt"
	"strings"
)

// DefaultMaxContent caps how many characters of article text are sent to
// the model. Articles longer than this are truncated, not split.
const DefaultMaxContent = 6000

// promptTemplate instructs the model to return one JSON object with a
// fixed schema. Quotes and speakers must stay aligned by index; location
// fields are empty strings when the article does not name them.
const promptTemplate = `Analyze the following Indonesian news article and extract every direct quotation.

Rules:
- Extract only direct quotations (text inside quotation marks).
- For each quotation, identify the person who said it. Use the person's name and title as written in the article.
- The i-th speaker must correspond to the i-th quote.
- Identify the Indonesian province and city/regency where the reported event took place.
- If a field cannot be determined, use an empty string "" (or an empty list for quotes/speakers). Never invent values.

Respond with a single JSON object and nothing else, in exactly this shape:
{"quotes": ["..."], "speakers": ["..."], "province": "...", "city": "..."}

Article:
%s`

// BuildPrompt renders the extraction prompt for one article's content,
// truncated to maxContent characters. A non-positive maxContent selects
// DefaultMaxContent.
func BuildPrompt(content string, maxContent int) string {
	if maxContent <= 0 {
		maxContent = DefaultMaxContent
	}
	return fmt.Sprintf(promptTemplate, truncate(content, maxContent))
}

// truncate cuts s to at most n characters without splitting a rune.
func truncate(s string, n int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n])
}
