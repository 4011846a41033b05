// Package bloom provides URL deduplication for batch runs using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Dedup tracks URLs already processed within a batch so duplicate input
// rows are fetched only once. False positives are possible (a never-seen
// URL may be skipped); false negatives are not.
type Dedup struct {
	f *bloom.BloomFilter
}

// NewDedup creates a deduplicator sized for n expected URLs with the
// given false positive rate.
func NewDedup(n uint, fpRate float64) *Dedup {
	return &Dedup{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen reports whether the URL was already recorded and records it.
// The first call for a URL returns false, subsequent calls return true.
func (d *Dedup) Seen(url string) bool {
	return d.f.TestAndAddString(url)
}

// EstimatedCount returns the approximate number of distinct URLs recorded.
func (d *Dedup) EstimatedCount() uint {
	return uint(d.f.ApproximatedSize())
}
