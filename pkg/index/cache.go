package index

import (
	"sync"

	"github.com/tchap/go-patricia/v2/patricia"
)

// resultCache memoizes search results per normalized prefix. Entries are
// keyed in a patricia trie rather than a plain map so that an incremental
// insert can invalidate exactly the cached prefixes lying on the new word's
// path (VisitPrefixes), instead of dumping everything.
//
// Every entry holds the result list computed at maxLimit, so it can answer
// any request with limit <= maxLimit by slicing.
type resultCache struct {
	mu         sync.Mutex
	entries    *patricia.Trie
	count      int
	maxEntries int
	maxLimit   int
	hits       uint64
	misses     uint64
}

func newResultCache(maxEntries, maxLimit int) *resultCache {
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	if maxLimit <= 0 {
		maxLimit = 64
	}
	return &resultCache{
		entries:    patricia.NewTrie(),
		maxEntries: maxEntries,
		maxLimit:   maxLimit,
	}
}

func (rc *resultCache) get(prefix string) ([]string, bool) {
	if rc == nil {
		return nil, false
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	item := rc.entries.Get(patricia.Prefix(prefix))
	if item == nil {
		rc.misses++
		return nil, false
	}
	rc.hits++
	return item.([]string), true
}

func (rc *resultCache) put(prefix string, results []string) {
	if rc == nil {
		return
	}
	// Keep a private copy: callers receive the slice the search produced,
	// and an empty answer must stay a non-nil item or patricia would treat
	// the entry as absent.
	cp := make([]string, len(results))
	copy(cp, results)
	results = cp

	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.count >= rc.maxEntries {
		// Cheap full dump instead of LRU bookkeeping; the cache refills from
		// live traffic within a few queries.
		rc.entries = patricia.NewTrie()
		rc.count = 0
	}
	if rc.entries.Insert(patricia.Prefix(prefix), results) {
		rc.count++
	}
}

// invalidateWord drops every cached prefix that is a prefix of word, since
// such entries may now be missing the freshly inserted word.
func (rc *resultCache) invalidateWord(word string) {
	if rc == nil || word == "" {
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	var stale []patricia.Prefix
	_ = rc.entries.VisitPrefixes(patricia.Prefix(word), func(p patricia.Prefix, _ patricia.Item) error {
		stale = append(stale, append(patricia.Prefix(nil), p...))
		return nil
	})
	for _, p := range stale {
		if rc.entries.Delete(p) {
			rc.count--
		}
	}
}

// reset drops all entries. Called under the Index write lock during a swap.
func (rc *resultCache) reset() {
	if rc == nil {
		return
	}
	rc.mu.Lock()
	rc.entries = patricia.NewTrie()
	rc.count = 0
	rc.mu.Unlock()
}

func (rc *resultCache) stats() (hits, misses uint64) {
	if rc == nil {
		return 0, 0
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.hits, rc.misses
}
