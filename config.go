package newsquote

import "time"

// Provider identifiers recognized by the parsing stage.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config collects every recognized option into one immutable struct built
// at process start and passed explicitly into constructors. No component
// reads ambient environment state directly.
type Config struct {
	// Extraction stage.
	DiffbotToken      string
	MaxPages          int
	MaxRetries        int
	RetryDelay        time.Duration
	DelayBetweenURLs  time.Duration
	DelayBetweenPages time.Duration

	// Parsing stage.
	Provider       string // ProviderGemini or ProviderOpenAI
	Model          string
	APIKey         string
	Temperature    float64
	MaxContent     int
	AIDelay        time.Duration
	AITimeout      time.Duration
	AIMaxRetries   int
	ParsingThreads int
}

// DefaultConfig returns a Config with the defaults of the batch pipeline.
func DefaultConfig() Config {
	return Config{
		MaxPages:          5,
		MaxRetries:        3,
		RetryDelay:        5 * time.Second,
		DelayBetweenURLs:  13 * time.Second,
		DelayBetweenPages: 8 * time.Second,
		Provider:          ProviderGemini,
		Temperature:       0.1,
		MaxContent:        6000,
		AIDelay:           time.Second,
		AITimeout:         60 * time.Second,
		AIMaxRetries:      3,
		ParsingThreads:    1,
	}
}

// ValidateExtraction returns an error if the extraction stage cannot run.
// Configuration errors abort the run before any record is processed.
func (c *Config) ValidateExtraction() error {
	if c.DiffbotToken == "" {
		return Errorf(EINVALID, "diffbot token required")
	}
	if c.MaxPages < 1 {
		return Errorf(EINVALID, "max pages must be at least 1")
	}
	return nil
}

// ValidateParsing returns an error if the parsing stage cannot run.
func (c *Config) ValidateParsing() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return Errorf(EINVALID, "unknown AI provider %q", c.Provider)
	}
	if c.APIKey == "" {
		return Errorf(EINVALID, "%s API key required", c.Provider)
	}
	if c.ParsingThreads < 1 {
		return Errorf(EINVALID, "parsing threads must be at least 1")
	}
	return nil
}
