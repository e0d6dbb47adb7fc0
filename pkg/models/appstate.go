package models

import (
	"context"

	"github.com/slangscope/slangscope/config"
)

// AppState is a struct that holds the state of the application
// Use cmd.NewAppState to create a new instance
type AppState struct {
	LLM           SlangLLM
	Analyzer      Analyzer
	AnalysisStore AnalysisStore
	TermCache     TermCache
	TaskRouter    TaskRouter
	TaskPublisher TaskPublisher
	Config        *config.Config
}

// Analyzer exposes the server-side slang actions.
type Analyzer interface {
	AnalyzeSlang(ctx context.Context, req AnalysisRequest) ([]SlangTerm, error)
	GetSlangSummary(ctx context.Context, req AnalysisRequest) (*SummaryResult, error)
	LookupTerm(ctx context.Context, req LookupRequest) (*TermInfo, error)
	Analyze(ctx context.Context, req AnalysisRequest, opts AnalyzeOptions) (*Analysis, error)
}
