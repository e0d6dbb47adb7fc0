package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"github.com/slangscope/slangscope/pkg/models"
)

const DefaultMaxRecords = 500

var _ models.AnalysisStore = &MemoryAnalysisStore{}

// MemoryAnalysisStore keeps the most recent analyses in process memory.
// Once MaxRecords is reached the oldest analysis is evicted.
type MemoryAnalysisStore struct {
	mu         sync.RWMutex
	maxRecords int
	records    map[uuid.UUID]*models.Analysis
	// order holds UUIDs oldest first
	order []uuid.UUID
}

func NewMemoryAnalysisStore(maxRecords int) *MemoryAnalysisStore {
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}
	return &MemoryAnalysisStore{
		maxRecords: maxRecords,
		records:    make(map[uuid.UUID]*models.Analysis),
	}
}

func (s *MemoryAnalysisStore) Put(_ context.Context, analysis *models.Analysis) error {
	if analysis.UUID == uuid.Nil {
		return models.NewBadRequestError("analysis UUID cannot be empty")
	}

	record, err := copyAnalysis(analysis)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	record.UpdatedAt = now

	if existing, ok := s.records[record.UUID]; ok {
		record.CreatedAt = existing.CreatedAt
		record.Metadata, err = MergeMetadata(existing.Metadata, record.Metadata)
		if err != nil {
			return err
		}
		s.records[record.UUID] = record
		return nil
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	s.records[record.UUID] = record
	s.order = append(s.order, record.UUID)

	for len(s.order) > s.maxRecords {
		delete(s.records, s.order[0])
		s.order = s.order[1:]
	}

	return nil
}

func (s *MemoryAnalysisStore) Get(_ context.Context, analysisUUID uuid.UUID) (*models.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[analysisUUID]
	if !ok {
		return nil, models.NewNotFoundError(fmt.Sprintf("analysis %s", analysisUUID))
	}

	return copyAnalysis(record)
}

func (s *MemoryAnalysisStore) List(_ context.Context, limit int) ([]models.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.order) {
		limit = len(s.order)
	}

	analyses := make([]models.Analysis, 0, limit)
	for i := len(s.order) - 1; i >= 0 && len(analyses) < limit; i-- {
		record, err := copyAnalysis(s.records[s.order[i]])
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, *record)
	}

	return analyses, nil
}

func (s *MemoryAnalysisStore) Close() error {
	return nil
}

func copyAnalysis(analysis *models.Analysis) (*models.Analysis, error) {
	out := &models.Analysis{}
	if err := copier.CopyWithOption(out, analysis, copier.Option{DeepCopy: true}); err != nil {
		return nil, NewStorageError("failed to copy analysis", err)
	}
	return out, nil
}

var _ models.TermCache = &MemoryTermCache{}

type cachedTerm struct {
	info      models.TermInfo
	expiresAt time.Time
}

// MemoryTermCache is an in-process TermCache. Expired entries are dropped lazily.
type MemoryTermCache struct {
	mu    sync.RWMutex
	terms map[string]cachedTerm
	now   func() time.Time
}

func NewMemoryTermCache() *MemoryTermCache {
	return &MemoryTermCache{
		terms: make(map[string]cachedTerm),
		now:   time.Now,
	}
}

func (c *MemoryTermCache) Get(_ context.Context, term string) (*models.TermInfo, error) {
	c.mu.RLock()
	entry, ok := c.terms[term]
	c.mu.RUnlock()

	if !ok {
		return nil, models.NewNotFoundError(fmt.Sprintf("term %q", term))
	}
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.mu.Lock()
		// a concurrent Put may have refreshed the entry
		if current, ok := c.terms[term]; ok && !current.expiresAt.IsZero() && c.now().After(current.expiresAt) {
			delete(c.terms, term)
		}
		c.mu.Unlock()
		return nil, models.NewNotFoundError(fmt.Sprintf("term %q", term))
	}

	info := entry.info
	return &info, nil
}

// Put stores info for term. A zero ttl never expires.
func (c *MemoryTermCache) Put(_ context.Context, term string, info *models.TermInfo, ttl time.Duration) error {
	entry := cachedTerm{info: *info}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	c.terms[term] = entry
	c.mu.Unlock()

	return nil
}

func (c *MemoryTermCache) Close() error {
	return nil
}
