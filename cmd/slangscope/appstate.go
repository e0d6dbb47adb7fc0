package cmd

import (
	"context"
	"fmt"

	"github.com/slangscope/slangscope/config"
	"github.com/slangscope/slangscope/pkg/analyzer"
	"github.com/slangscope/slangscope/pkg/llms"
	"github.com/slangscope/slangscope/pkg/models"
	"github.com/slangscope/slangscope/pkg/store"
	"github.com/slangscope/slangscope/pkg/store/postgres"
	"github.com/slangscope/slangscope/pkg/store/rediscache"
	"github.com/slangscope/slangscope/pkg/tasks"
)

const (
	StoreTypeMemory   = "memory"
	StoreTypePostgres = "postgres"
	CacheTypeNone     = "none"
	CacheTypeMemory   = "memory"
	CacheTypeRedis    = "redis"
)

// NewAppState creates the LLM client, stores, analyzer and, when enabled, the
// task router from cfg.
func NewAppState(ctx context.Context, cfg *config.Config) (*models.AppState, error) {
	llm, err := llms.NewLLMClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	appState := &models.AppState{
		LLM:    llm,
		Config: cfg,
	}

	if err := initializeAnalysisStore(ctx, appState); err != nil {
		return nil, err
	}
	if err := initializeTermCache(ctx, appState); err != nil {
		closeAppState(appState)
		return nil, err
	}

	a, err := analyzer.NewAnalyzer(appState)
	if err != nil {
		closeAppState(appState)
		return nil, err
	}
	appState.Analyzer = a

	if cfg.Tasks.Enabled {
		if err := initializeTasks(ctx, appState); err != nil {
			closeAppState(appState)
			return nil, err
		}
	}

	return appState, nil
}

// newOneShotAppState wires only what the CLI flows need: no history, no queue.
func newOneShotAppState(ctx context.Context, cfg *config.Config) (*models.AppState, error) {
	llm, err := llms.NewLLMClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	appState := &models.AppState{
		LLM:    llm,
		Config: cfg,
	}
	a, err := analyzer.NewAnalyzer(appState)
	if err != nil {
		return nil, err
	}
	appState.Analyzer = a

	return appState, nil
}

func initializeAnalysisStore(ctx context.Context, appState *models.AppState) error {
	cfg := appState.Config
	switch cfg.Store.Type {
	case StoreTypeMemory, "":
		appState.AnalysisStore = store.NewMemoryAnalysisStore(cfg.Store.MaxRecords)
	case StoreTypePostgres:
		db := postgres.NewPostgresConn(cfg.Store.Postgres.DSN)
		if cfg.Log.Level == "debug" {
			postgres.EnableDebugLogging(db, log)
		}
		analysisStore, err := postgres.NewAnalysisStore(ctx, db)
		if err != nil {
			return fmt.Errorf("failed to create postgres analysis store: %w", err)
		}
		appState.AnalysisStore = analysisStore
	default:
		return fmt.Errorf("store.type (%s) is not supported", cfg.Store.Type)
	}

	log.Info("Using analysis store: ", cfg.Store.Type)
	return nil
}

func initializeTermCache(ctx context.Context, appState *models.AppState) error {
	cfg := appState.Config
	switch cfg.TermCache.Type {
	case CacheTypeNone:
		log.Info("Term cache disabled")
		return nil
	case CacheTypeMemory, "":
		appState.TermCache = store.NewMemoryTermCache()
	case CacheTypeRedis:
		cache, err := rediscache.NewTermCache(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to create redis term cache: %w", err)
		}
		appState.TermCache = cache
	default:
		return fmt.Errorf("term_cache.type (%s) is not supported", cfg.TermCache.Type)
	}

	log.Info("Using term cache: ", cfg.TermCache.Type)
	return nil
}

// initializeTasks starts the page scan queue. Scans are queued in postgres
// when the analysis store is postgres, otherwise in process.
func initializeTasks(ctx context.Context, appState *models.AppState) error {
	var pubsub *tasks.PubSub
	if appState.Config.Store.Type == StoreTypePostgres {
		db, err := tasks.NewPostgresConnForQueue(appState.Config.Store.Postgres.DSN)
		if err != nil {
			return fmt.Errorf("failed to open queue database: %w", err)
		}
		pubsub, err = tasks.NewSQLPubSub(db, tasks.NewLogger())
		if err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to create SQL queue: %w", err)
		}
	} else {
		pubsub = tasks.NewGoChannelPubSub(tasks.NewLogger())
	}

	return tasks.RunTaskRouter(ctx, appState, pubsub)
}

// closeAppState releases the stores and stops the task router.
func closeAppState(appState *models.AppState) {
	if appState.TaskRouter != nil {
		if err := appState.TaskRouter.Close(); err != nil {
			log.Errorf("Error closing task router: %v", err)
		}
	}
	if appState.TaskPublisher != nil {
		if err := appState.TaskPublisher.Close(); err != nil {
			log.Errorf("Error closing task publisher: %v", err)
		}
	}
	if appState.AnalysisStore != nil {
		if err := appState.AnalysisStore.Close(); err != nil {
			log.Errorf("Error closing analysis store: %v", err)
		}
	}
	if appState.TermCache != nil {
		if err := appState.TermCache.Close(); err != nil {
			log.Errorf("Error closing term cache: %v", err)
		}
	}
}
