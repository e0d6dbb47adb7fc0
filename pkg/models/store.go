package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AnalysisStore keeps analyses so that queued scans can be polled and
// past analyses listed.
type AnalysisStore interface {
	// Put creates or replaces the analysis with the same UUID.
	Put(ctx context.Context, analysis *Analysis) error
	// Get returns a NotFoundError if no analysis with the UUID exists.
	Get(ctx context.Context, analysisUUID uuid.UUID) (*Analysis, error)
	// List returns the most recent analyses, newest first.
	List(ctx context.Context, limit int) ([]Analysis, error)
	Close() error
}

// TermCache caches single-term lookups keyed by normalized term.
type TermCache interface {
	// Get returns ErrNotFound on a miss.
	Get(ctx context.Context, term string) (*TermInfo, error)
	Put(ctx context.Context, term string, info *TermInfo, ttl time.Duration) error
	Close() error
}
