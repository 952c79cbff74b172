package transport

import (
	"strings"
	"sync"
)

// Endpoint identifies a target API endpoint for block-list tracking: the
// base URL plus the provider kind it is spoken to with. It is a pure lookup
// key with no behavior of its own.
type Endpoint struct {
	BaseURL  string
	Provider string
}

// Key returns the stable block-list key for the endpoint. Trailing slashes
// and URL casing are normalized so that configuration variants of the same
// endpoint share one entry.
func (e Endpoint) Key() string {
	base := strings.TrimRight(strings.TrimSpace(e.BaseURL), "/")
	return e.Provider + "|" + strings.ToLower(base)
}

// BlockList is the set of endpoints known to fail under the default
// transport due to origin/connectivity restrictions. It starts empty,
// entries are added only by the selector upon failure classification and
// never expire, and it is safe for concurrent use. Membership is monotonic;
// re-adding an entry is a no-op.
//
// The list is an explicit, injectable component rather than a process
// global: share one instance across selectors that should share failover
// state, or give each test its own for hermetic runs.
type BlockList struct {
	mu      sync.RWMutex
	entries map[string]struct{}
}

// NewBlockList returns an empty block list.
func NewBlockList() *BlockList {
	return &BlockList{entries: make(map[string]struct{})}
}

// Add marks the endpoint as restricted for the lifetime of this list.
func (b *BlockList) Add(endpoint Endpoint) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[endpoint.Key()] = struct{}{}
}

// Contains reports whether the endpoint has been marked restricted.
func (b *BlockList) Contains(endpoint Endpoint) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.entries[endpoint.Key()]
	return ok
}

// Clear removes every entry. Intended for tests and operational resets.
func (b *BlockList) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = make(map[string]struct{})
}

// Len returns the number of blocked endpoints.
func (b *BlockList) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}
