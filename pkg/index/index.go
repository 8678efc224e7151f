// Package index serializes concurrent access to one category's prefix tree
// and implements the zero-downtime reload protocol. Reads take the shared
// side of a sync.RWMutex and run in parallel; batch inserts and the reload
// swap take the exclusive side. The swap itself only exchanges the live tree
// pointer, so writers block readers for O(1), never for the duration of a
// rebuild.
package index

import (
	"sync"

	"github.com/suppserve/suppserve/pkg/trie"
)

// Index owns exactly one live Trie at a time.
type Index struct {
	mu    sync.RWMutex
	trie  *trie.Trie
	cache *resultCache
}

// New returns an Index with an empty tree and no result cache.
func New() *Index {
	return &Index{trie: trie.New()}
}

// NewCached returns an Index whose searches are memoized in a patricia-trie
// result cache. maxLimit bounds the result count a cache entry can answer;
// requests above it bypass the cache. maxEntries bounds cache growth.
func NewCached(maxEntries, maxLimit int) *Index {
	return &Index{
		trie:  trie.New(),
		cache: newResultCache(maxEntries, maxLimit),
	}
}

// Search returns up to limit entries starting with prefix. Many searches
// proceed in parallel; none is ever blocked by another search.
func (ix *Index) Search(prefix string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	p := trie.Normalize(prefix)
	if p == "" {
		return nil
	}

	if ix.cache == nil || limit > ix.cache.maxLimit {
		ix.mu.RLock()
		defer ix.mu.RUnlock()
		return ix.trie.SearchPrefix(p, limit)
	}

	if cached, ok := ix.cache.get(p); ok {
		// callers may hold on to result slices, so hand out a copy
		return clamp(append([]string(nil), cached...), limit)
	}

	// The cache is filled under the read lock on purpose: Replace clears it
	// while holding the write lock, so a stale fill can never survive a swap.
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	results := ix.trie.SearchPrefix(p, ix.cache.maxLimit)
	ix.cache.put(p, results)
	return clamp(results, limit)
}

// Insert adds a single entry under the exclusive lock.
func (ix *Index) Insert(word string) {
	ix.InsertBatch([]string{word})
}

// InsertBatch adds words under the exclusive lock. Meant for small
// incremental additions; full refreshes go through the Reloader.
func (ix *Index) InsertBatch(words []string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for _, w := range words {
		ix.trie.Insert(w)
		ix.cache.invalidateWord(trie.Normalize(w))
	}
}

// Replace swaps the live tree for newTrie. The exclusive lock is held just
// long enough for the pointer exchange; the old tree is released once the
// last in-flight reader returns.
func (ix *Index) Replace(newTrie *trie.Trie) {
	if newTrie == nil {
		return
	}
	ix.mu.Lock()
	ix.trie = newTrie
	ix.cache.reset()
	ix.mu.Unlock()
}

// Contains reports whether word is a complete entry.
func (ix *Index) Contains(word string) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.trie.Contains(word)
}

// Snapshot returns the full entry list, for persistence.
func (ix *Index) Snapshot() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.trie.Words()
}

// CacheStats reports result-cache hits and misses. Both are zero when the
// cache is disabled.
func (ix *Index) CacheStats() (hits, misses uint64) {
	return ix.cache.stats()
}

// Len returns the number of live entries.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.trie.Len()
}

func clamp(results []string, limit int) []string {
	if len(results) == 0 {
		return nil
	}
	if len(results) > limit {
		return results[:limit:limit]
	}
	return results
}
