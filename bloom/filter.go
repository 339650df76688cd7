// Package bloom narrows lookups of notes already in storage, using a Bloom
// filter so memory stays flat as the store grows. A positive test only
// means the note may be stored.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter records note keys. It is safe for concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected keys
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records key.
func (f *Filter) Add(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(key)
}

// Test returns true if key might have been recorded.
// False positives are possible; false negatives are not.
func (f *Filter) Test(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(key)
}

// Seen records key and reports whether it might have been recorded
// before. Concurrent callers racing on the same key see exactly one false.
func (f *Filter) Seen(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestAndAddString(key)
}

// EstimatedCount returns the approximate number of keys recorded.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}
