// Package newsquote turns batches of news article URLs into structured
// quote/speaker/location records. It retrieves article text with a primary
// extraction API and local fallback extractors, follows pagination across
// multi-page articles, and uses a language-model provider to extract quotes
// as validated JSON.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., diffbot/, trafilatura/, gemini/).
package newsquote
