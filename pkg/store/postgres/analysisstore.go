package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/uptrace/bun"

	"github.com/slangscope/slangscope/pkg/models"
	"github.com/slangscope/slangscope/pkg/store"
)

var _ models.AnalysisStore = &AnalysisStore{}

// NewAnalysisStore returns a new AnalysisStore backed by db and creates the
// schema if it does not exist.
func NewAnalysisStore(ctx context.Context, db *bun.DB) (*AnalysisStore, error) {
	if db == nil {
		return nil, store.NewStorageError("nil db provided", nil)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, store.NewStorageError("failed to connect to postgres", err)
	}

	if err := checkServerVersion(ctx, db); err != nil {
		return nil, store.NewStorageError("unsupported postgres server", err)
	}

	if err := CreateSchema(ctx, db); err != nil {
		return nil, store.NewStorageError("failed to create schema", err)
	}

	return &AnalysisStore{db: db}, nil
}

type AnalysisStore struct {
	db *bun.DB
}

// Put upserts the analysis. Metadata is merged into any existing metadata and
// the original CreatedAt is kept.
func (s *AnalysisStore) Put(ctx context.Context, analysis *models.Analysis) error {
	if analysis.UUID == uuid.Nil {
		return models.NewBadRequestError("analysis UUID cannot be empty")
	}

	row := &AnalysisSchema{}
	if err := copier.Copy(row, analysis); err != nil {
		return store.NewStorageError("failed to copy analysis", err)
	}
	if row.Terms == nil {
		row.Terms = []models.SlangTerm{}
	}

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		existing := &AnalysisSchema{}
		err := tx.NewSelect().
			Model(existing).
			Column("metadata").
			Where("uuid = ?", row.UUID).
			For("UPDATE").
			Scan(ctx)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return store.NewStorageError("failed to get analysis", err)
		default:
			row.Metadata, err = store.MergeMetadata(existing.Metadata, row.Metadata)
			if err != nil {
				return err
			}
		}

		insert := tx.NewInsert().
			Model(row).
			On("CONFLICT (uuid) DO UPDATE").
			Set("text = EXCLUDED.text").
			Set("terms = EXCLUDED.terms").
			Set("summary = EXCLUDED.summary").
			Set("status = EXCLUDED.status").
			Set("error = EXCLUDED.error").
			Set("metadata = EXCLUDED.metadata").
			Set("updated_at = current_timestamp")
		// let the database default created_at for new rows
		if row.CreatedAt.IsZero() {
			insert = insert.ExcludeColumn("created_at", "updated_at")
		}
		if _, err := insert.Exec(ctx); err != nil {
			return store.NewStorageError("failed to put analysis", err)
		}

		return nil
	})
}

func (s *AnalysisStore) Get(ctx context.Context, analysisUUID uuid.UUID) (*models.Analysis, error) {
	row := &AnalysisSchema{}
	err := s.db.NewSelect().
		Model(row).
		Where("uuid = ?", analysisUUID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewNotFoundError(fmt.Sprintf("analysis %s", analysisUUID))
		}
		return nil, store.NewStorageError("failed to get analysis", err)
	}

	analysis := &models.Analysis{}
	if err := copier.Copy(analysis, row); err != nil {
		return nil, store.NewStorageError("failed to copy analysis", err)
	}

	return analysis, nil
}

func (s *AnalysisStore) List(ctx context.Context, limit int) ([]models.Analysis, error) {
	var rows []AnalysisSchema
	query := s.db.NewSelect().
		Model(&rows).
		Order("created_at DESC", "id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, store.NewStorageError("failed to list analyses", err)
	}

	analyses := make([]models.Analysis, 0, len(rows))
	if err := copier.Copy(&analyses, &rows); err != nil {
		return nil, store.NewStorageError("failed to copy analyses", err)
	}

	return analyses, nil
}

// DB exposes the underlying connection so the task queue can share it.
func (s *AnalysisStore) DB() *bun.DB {
	return s.db
}

func (s *AnalysisStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
