package adaptors

import (
	"context"
	"sort"
	"sync"
	"time"

	"seo_meta_analyzer/internal/domain/models"
	"seo_meta_analyzer/internal/pkg/errors"

	log "github.com/sirupsen/logrus"
)

// MemoryHistory keeps analyses in memory under auto-increment ids.
// It is safe for concurrent use. Results go in and come out as deep copies.
type MemoryHistory struct {
	mu         sync.RWMutex
	store      map[int64]*models.AnalysisResult
	nextID     int64
	maxEntries int
	now        func() time.Time
	log        *log.Logger
}

func NewMemoryHistory(maxEntries int, log *log.Logger) *MemoryHistory {
	return &MemoryHistory{
		store:      make(map[int64]*models.AnalysisResult),
		nextID:     1,
		maxEntries: maxEntries,
		now:        time.Now,
		log:        log,
	}
}

// Save stores a copy of result with a fresh id and creation time and returns it.
// When the store is full the oldest entry is evicted.
func (h *MemoryHistory) Save(ctx context.Context, result *models.AnalysisResult) (*models.AnalysisResult, error) {
	if result == nil {
		return nil, errors.E(errors.InvalidInput, `analysis result is nil`, nil)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.store) >= h.maxEntries {
		h.evictOldest()
	}

	stored := result.Clone()
	stored.ID = h.nextID
	stored.CreatedAt = h.now().UTC()
	h.nextID++
	h.store[stored.ID] = stored

	h.log.WithContext(ctx).WithFields(log.Fields{
		`id`:  stored.ID,
		`url`: stored.Metadata.URL,
	}).Debug(`analysis saved`)

	return stored.Clone(), nil
}

// evictOldest drops the entry with the lowest id. Caller holds the lock.
func (h *MemoryHistory) evictOldest() {
	var oldest int64
	for id := range h.store {
		if oldest == 0 || id < oldest {
			oldest = id
		}
	}
	if oldest != 0 {
		delete(h.store, oldest)
		h.log.WithField(`id`, oldest).Debug(`history full, evicted oldest analysis`)
	}
}

func (h *MemoryHistory) Get(_ context.Context, id int64) (*models.AnalysisResult, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	r, ok := h.store[id]
	if !ok {
		return nil, errors.E(errors.NotFound, `analysis not found`, nil)
	}
	return r.Clone(), nil
}

// GetByURL returns the latest analysis whose requested or final url is url.
func (h *MemoryHistory) GetByURL(_ context.Context, url string) (*models.AnalysisResult, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var latest *models.AnalysisResult
	for _, r := range h.store {
		if r.Metadata.URL != url && r.RequestedURL != url {
			continue
		}
		if latest == nil || r.ID > latest.ID {
			latest = r
		}
	}
	if latest == nil {
		return nil, errors.E(errors.NotFound, `no analysis for url`, nil)
	}
	return latest.Clone(), nil
}

// Recent returns up to limit analyses, newest first.
func (h *MemoryHistory) Recent(_ context.Context, limit int) ([]*models.AnalysisResult, error) {
	if limit <= 0 {
		return []*models.AnalysisResult{}, nil
	}

	h.mu.RLock()
	results := make([]*models.AnalysisResult, 0, len(h.store))
	for _, r := range h.store {
		results = append(results, r.Clone())
	}
	h.mu.RUnlock()

	sort.Slice(results, func(i, j int) bool {
		if !results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].CreatedAt.After(results[j].CreatedAt)
		}
		return results[i].ID > results[j].ID
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
