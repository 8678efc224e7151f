package index

import (
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/suppserve/suppserve/pkg/trie"
)

// Reloader rebuilds a category's dataset from scratch without blocking
// readers. At most one rebuild runs per category: a request arriving while
// one is in flight is rejected, never queued. The state machine is
// Idle -> Building -> Swapping -> Idle, with the in-flight flag cleared on
// both success and failure.
type Reloader struct {
	category string
	idx      *Index
	inFlight atomic.Bool

	// onDone, when set, is invoked after every finished attempt with the
	// outcome. Runs on the build goroutine.
	onDone func(ok bool)

	// buildHook runs between build and swap; tests use it to hold a reload
	// in the Building state.
	buildHook func()
}

// NewReloader returns a Reloader for idx. onDone may be nil.
func NewReloader(category string, idx *Index, onDone func(ok bool)) *Reloader {
	return &Reloader{category: category, idx: idx, onDone: onDone}
}

// Start begins an asynchronous rebuild-and-swap against words. It returns
// false immediately when a reload for this category is already running;
// callers that need a fresh rebuild must wait and retry.
func (r *Reloader) Start(words []string) bool {
	if !r.inFlight.CompareAndSwap(false, true) {
		log.Warnf("reload already in progress for %q, rejecting request", r.category)
		return false
	}
	log.Debugf("reload started for %q with %d entries", r.category, len(words))
	go r.rebuild(words)
	return true
}

// InProgress reports whether a rebuild is currently running.
func (r *Reloader) InProgress() bool {
	return r.inFlight.Load()
}

// rebuild inserts the full dataset into a private, unshared tree, then
// publishes it with a single pointer swap under the exclusive lock. The new
// tree is invisible to readers until the swap, so the build needs no
// locking. A failed build leaves the live tree untouched.
func (r *Reloader) rebuild(words []string) {
	defer r.inFlight.Store(false)

	ok := false
	defer func() {
		if p := recover(); p != nil {
			log.Errorf("reload build failed for %q, keeping previous dataset: %v", r.category, p)
		}
		if r.onDone != nil {
			r.onDone(ok)
		}
	}()

	fresh := trie.New()
	for _, w := range words {
		fresh.Insert(w)
	}

	if r.buildHook != nil {
		r.buildHook()
	}

	r.idx.Replace(fresh)
	ok = true
	log.Infof("reload complete for %q: %d entries live", r.category, fresh.Len())
}
