// Package autocomplete is the public facade of the prefix-search service.
// It owns one concurrent index per category (products, brands, and whatever
// else the config declares), loads each from its on-disk cache at startup,
// and dispatches searches, incremental inserts, and zero-downtime reloads.
//
// The surrounding application sources the word lists (from its product and
// brand database) and calls StartReload on a schedule or after data changes;
// this package performs no database access of its own.
package autocomplete

import (
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/suppserve/suppserve/internal/metrics"
	"github.com/suppserve/suppserve/internal/utils"
	"github.com/suppserve/suppserve/pkg/config"
	"github.com/suppserve/suppserve/pkg/index"
	"github.com/suppserve/suppserve/pkg/store"
)

// Stats describes one category's live state.
type Stats struct {
	Entries     int
	DataDir     string
	Reloading   bool
	CacheHits   uint64
	CacheMisses uint64
}

type category struct {
	name     string
	limit    int
	idx      *index.Index
	reloader *index.Reloader
}

// Service owns every category index. Construct with New, then call Init
// before serving.
type Service struct {
	cfg     *config.Config
	dataDir string // empty when running in-memory only
	cats    map[string]*category
	m       *metrics.Metrics // optional, may be nil
}

// New builds a Service from cfg. m may be nil to run without Prometheus
// collectors.
func New(cfg *config.Config, m *metrics.Metrics) *Service {
	s := &Service{
		cfg:  cfg,
		cats: make(map[string]*category),
		m:    m,
	}
	for _, cc := range cfg.Categories {
		var ix *index.Index
		if cfg.Cache.Enabled {
			ix = index.NewCached(cfg.Cache.MaxEntries, cfg.Server.MaxLimit)
		} else {
			ix = index.New()
		}
		cat := &category{
			name:  cc.Name,
			limit: cc.Limit,
			idx:   ix,
		}
		cat.reloader = index.NewReloader(cc.Name, ix, s.reloadDone(cat))
		s.cats[cc.Name] = cat
	}
	return s
}

// Init brings every category up: load the on-disk cache, or fall back to the
// built-in seed dataset and persist it immediately. A data directory that
// cannot be created drops the service into in-memory-only mode with a
// warning; startup never fails outright.
func (s *Service) Init() {
	dir := s.cfg.Data.Dir
	if check := utils.CheckDirStatus(dir); !check.Writable {
		log.Warnf("data dir %s unusable, running in-memory only with seed data", dir)
	} else {
		s.dataDir = dir
	}

	for _, cat := range s.cats {
		if s.dataDir != "" {
			t, err := store.Load(s.categoryPath(cat.name))
			if err == nil {
				cat.idx.Replace(t)
				log.Infof("category %q: %d entries loaded from cache", cat.name, t.Len())
				s.setEntriesGauge(cat)
				continue
			}
			log.Infof("category %q: no usable cache, seeding", cat.name)
		}
		cat.idx.InsertBatch(seedWords(cat.name))
		s.setEntriesGauge(cat)
		if s.dataDir != "" {
			if err := store.Save(cat.idx.Snapshot(), s.categoryPath(cat.name)); err != nil {
				log.Warnf("category %q: persisting seed data: %v", cat.name, err)
			}
		}
	}
}

// Search returns up to limit suggestions for prefix in category. A
// non-positive limit uses the category default; limits are capped at the
// configured maximum. Unknown categories and empty prefixes yield an empty
// list, never an error.
func (s *Service) Search(categoryName, prefix string, limit int) []string {
	cat := s.cats[categoryName]
	if cat == nil {
		log.Debugf("search on unknown category %q", categoryName)
		return nil
	}
	if limit <= 0 {
		limit = cat.limit
	}
	if limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}

	start := time.Now()
	results := cat.idx.Search(prefix, limit)

	if s.m != nil {
		s.m.SearchesTotal.WithLabelValues(cat.name).Inc()
		s.m.SearchDuration.WithLabelValues(cat.name).Observe(time.Since(start).Seconds())
		s.m.SuggestionsReturned.Observe(float64(len(results)))
	}
	return results
}

// Insert adds a single word to category. Unknown categories and input that
// normalizes to nothing are ignored.
func (s *Service) Insert(categoryName, word string) {
	s.InsertBatch(categoryName, []string{word})
}

// InsertBatch adds words to category under the exclusive lock. Meant for
// small incremental additions; full refreshes go through StartReload.
func (s *Service) InsertBatch(categoryName string, words []string) {
	cat := s.cats[categoryName]
	if cat == nil {
		log.Debugf("insert on unknown category %q", categoryName)
		return
	}
	cat.idx.InsertBatch(words)
	s.setEntriesGauge(cat)
}

// Contains reports whether word is a complete entry in category.
func (s *Service) Contains(categoryName, word string) bool {
	cat := s.cats[categoryName]
	return cat != nil && cat.idx.Contains(word)
}

// StartReload begins an asynchronous rebuild of category from words and
// returns immediately: true when the reload was accepted, false when one is
// already in flight (or the category is unknown). Readers keep hitting the
// previous dataset until the O(1) swap.
func (s *Service) StartReload(categoryName string, words []string) bool {
	cat := s.cats[categoryName]
	if cat == nil {
		log.Debugf("reload on unknown category %q", categoryName)
		return false
	}
	accepted := cat.reloader.Start(words)
	if !accepted && s.m != nil {
		s.m.ReloadsTotal.WithLabelValues(cat.name, "rejected").Inc()
	}
	return accepted
}

// ReloadInProgress reports whether category has a rebuild running.
func (s *Service) ReloadInProgress(categoryName string) bool {
	cat := s.cats[categoryName]
	return cat != nil && cat.reloader.InProgress()
}

// Stats returns live statistics for category; ok is false when the category
// is unknown.
func (s *Service) Stats(categoryName string) (st Stats, ok bool) {
	cat := s.cats[categoryName]
	if cat == nil {
		return Stats{}, false
	}
	hits, misses := cat.idx.CacheStats()
	return Stats{
		Entries:     cat.idx.Len(),
		DataDir:     s.dataDir,
		Reloading:   cat.reloader.InProgress(),
		CacheHits:   hits,
		CacheMisses: misses,
	}, true
}

// Categories lists the configured category names.
func (s *Service) Categories() []string {
	names := make([]string, 0, len(s.cats))
	for name := range s.cats {
		names = append(names, name)
	}
	return names
}

// Save persists every category to disk. A no-op in in-memory mode.
func (s *Service) Save() error {
	if s.dataDir == "" {
		return nil
	}
	var firstErr error
	for _, cat := range s.cats {
		if err := store.Save(cat.idx.Snapshot(), s.categoryPath(cat.name)); err != nil {
			log.Errorf("saving category %q: %v", cat.name, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Close persists current state (when configured) and shuts the service down.
func (s *Service) Close() error {
	if !s.cfg.Data.SaveOnClose {
		return nil
	}
	return s.Save()
}

func (s *Service) categoryPath(name string) string {
	return filepath.Join(s.dataDir, name+".json")
}

// reloadDone builds the completion hook handed to a category's Reloader.
func (s *Service) reloadDone(cat *category) func(ok bool) {
	return func(ok bool) {
		s.setEntriesGauge(cat)
		if s.m == nil {
			return
		}
		outcome := "completed"
		if !ok {
			outcome = "failed"
		}
		s.m.ReloadsTotal.WithLabelValues(cat.name, outcome).Inc()
	}
}

func (s *Service) setEntriesGauge(cat *category) {
	if s.m != nil {
		s.m.Entries.WithLabelValues(cat.name).Set(float64(cat.idx.Len()))
	}
}
