package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/slangscope/slangscope/config"
	"github.com/slangscope/slangscope/internal"
	"github.com/slangscope/slangscope/pkg/flows"
	"github.com/slangscope/slangscope/pkg/highlight"
	"github.com/slangscope/slangscope/pkg/models"
)

// User-facing messages for upstream failures. The cause is logged, never returned.
const (
	AnalyzeFailedMessage = "Failed to analyze slang. The AI model may be temporarily unavailable."
	SummaryFailedMessage = "Failed to get slang summary."
	LookupFailedMessage  = "Failed to look up slang term."
)

const (
	EmptyTextMessage = "text must not be empty"
	EmptyTermMessage = "slang term must not be empty"
)

var log = internal.GetLogger()

var _ models.Analyzer = &Analyzer{}

// Analyzer runs the slang flows on behalf of the HTTP handlers, the web UI,
// the task queue and the CLI.
type Analyzer struct {
	flows *flows.SlangFlows
	llm   models.SlangLLM
	store models.AnalysisStore
	cache models.TermCache
	cfg   *config.Config
}

// NewAnalyzer creates an Analyzer from the LLM, stores and config in appState.
// AnalysisStore and TermCache are optional.
func NewAnalyzer(appState *models.AppState) (*Analyzer, error) {
	if appState.LLM == nil {
		return nil, errors.New("analyzer requires an LLM client")
	}

	f, err := flows.NewSlangFlows(appState.LLM, appState.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to create flows: %w", err)
	}

	return &Analyzer{
		flows: f,
		llm:   appState.LLM,
		store: appState.AnalysisStore,
		cache: appState.TermCache,
		cfg:   appState.Config,
	}, nil
}

// AnalyzeSlang identifies the slang terms in req.Text. The returned terms have
// indices that point into req.Text, or -1 when a term could not be located.
func (a *Analyzer) AnalyzeSlang(
	ctx context.Context,
	req models.AnalysisRequest,
) ([]models.SlangTerm, error) {
	if err := a.validateText(req.Text); err != nil {
		return nil, err
	}

	return a.identify(ctx, req)
}

func (a *Analyzer) identify(
	ctx context.Context,
	req models.AnalysisRequest,
) ([]models.SlangTerm, error) {
	out, err := a.flows.IdentifySlang.Run(ctx, req)
	if err != nil {
		return nil, upstreamError(AnalyzeFailedMessage, err)
	}

	// The prompt trims the text, so the model's indices are relative to the trimmed text.
	offset := leadingSpaceRunes(req.Text)
	terms := make([]models.SlangTerm, len(out.Terms))
	for i, term := range out.Terms {
		term.StartIndex += offset
		term.EndIndex += offset
		terms[i] = term
	}

	return highlight.Normalize(req.Text, terms), nil
}

// GetSlangSummary summarizes the likely origin and age demographic of the slang in req.Text.
func (a *Analyzer) GetSlangSummary(
	ctx context.Context,
	req models.AnalysisRequest,
) (*models.SummaryResult, error) {
	if err := a.validateText(req.Text); err != nil {
		return nil, err
	}

	return a.summarize(ctx, req)
}

func (a *Analyzer) summarize(
	ctx context.Context,
	req models.AnalysisRequest,
) (*models.SummaryResult, error) {
	summary, err := a.flows.SummarizeSlangUsage.Run(ctx, req)
	if err != nil {
		return nil, upstreamError(SummaryFailedMessage, err)
	}

	return summary, nil
}

// LookupTerm describes a single slang term. Results are cached by normalized term.
func (a *Analyzer) LookupTerm(
	ctx context.Context,
	req models.LookupRequest,
) (*models.TermInfo, error) {
	key := internal.NormalizeTerm(req.Slang)
	if key == "" {
		return nil, models.NewBadRequestError(EmptyTermMessage)
	}
	if utf8.RuneCountInString(key) > maxTermChars {
		return nil, models.NewBadRequestError(
			fmt.Sprintf("slang term is too long: maximum is %d characters", maxTermChars),
		)
	}

	if a.cache != nil {
		info, err := a.cache.Get(ctx, key)
		switch {
		case err == nil:
			log.Debugf("term cache hit for %q", key)
			return info, nil
		case !errors.Is(err, models.ErrNotFound):
			log.Warnf("term cache get failed for %q: %v", key, err)
		}
	}

	info, err := a.flows.DisplaySlangInfo.Run(ctx, models.LookupRequest{Slang: strings.TrimSpace(req.Slang)})
	if err != nil {
		return nil, upstreamError(LookupFailedMessage, err)
	}

	if a.cache != nil {
		ttl := time.Duration(a.cfg.TermCache.TTL) * time.Minute
		if err := a.cache.Put(ctx, key, info, ttl); err != nil {
			log.Warnf("term cache put failed for %q: %v", key, err)
		}
	}

	return info, nil
}

// Analyze identifies the slang in req.Text and, if opts.Summarize is set,
// summarizes it concurrently. With opts.Persist the result, successful or not,
// is written to the analysis store. A failed analysis carries no terms.
func (a *Analyzer) Analyze(
	ctx context.Context,
	req models.AnalysisRequest,
	opts models.AnalyzeOptions,
) (*models.Analysis, error) {
	if err := a.validateText(req.Text); err != nil {
		return nil, err
	}

	analysis := &models.Analysis{
		UUID:     opts.UUID,
		Text:     req.Text,
		Terms:    []models.SlangTerm{},
		Status:   models.AnalysisPending,
		Metadata: opts.Metadata,
	}
	if analysis.UUID == uuid.Nil {
		analysis.UUID = uuid.New()
	}

	var (
		wg         sync.WaitGroup
		terms      []models.SlangTerm
		summary    *models.SummaryResult
		termsErr   error
		summaryErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		terms, termsErr = a.identify(ctx, req)
	}()

	if opts.Summarize {
		wg.Add(1)
		go func() {
			defer wg.Done()
			summary, summaryErr = a.summarize(ctx, req)
		}()
	}

	wg.Wait()

	err := termsErr
	if err == nil {
		err = summaryErr
	}

	if err != nil {
		analysis.Status = models.AnalysisFailed
		analysis.Error = err.Error()
	} else {
		analysis.Status = models.AnalysisComplete
		analysis.Terms = terms
		analysis.Summary = summary
	}

	if opts.Persist && a.store != nil {
		// the request may already be cancelled; a failed result is still recorded
		putCtx := context.WithoutCancel(ctx)
		if putErr := a.store.Put(putCtx, analysis); putErr != nil {
			log.Errorf("failed to store analysis %s: %v", analysis.UUID, putErr)
		}
	}

	if err != nil {
		return nil, err
	}

	return analysis, nil
}

const maxTermChars = 100

func (a *Analyzer) validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return models.NewBadRequestError(EmptyTextMessage)
	}

	if limit := a.cfg.Analysis.MaxInputChars; limit > 0 {
		if n := utf8.RuneCountInString(text); n > limit {
			return models.NewBadRequestError(
				fmt.Sprintf("text is too long: %d characters, maximum is %d", n, limit),
			)
		}
	}

	if limit := a.cfg.Analysis.MaxInputTokens; limit > 0 {
		count, err := a.llm.GetTokenCount(text)
		if err != nil {
			log.Warnf("failed to count tokens: %v", err)
			return nil
		}
		// 0 means the model doesn't report token counts
		if count > limit {
			return models.NewBadRequestError(
				fmt.Sprintf("text is too long: %d tokens, maximum is %d", count, limit),
			)
		}
	}

	return nil
}

// upstreamError logs the cause and returns a generic error safe to show to users.
// Bad requests pass through unchanged.
func upstreamError(message string, err error) error {
	if errors.Is(err, models.ErrBadRequest) {
		return err
	}
	log.Errorf("%s: %v", message, err)
	return models.NewUpstreamError(message, err)
}

func leadingSpaceRunes(s string) int {
	return utf8.RuneCountInString(s) - utf8.RuneCountInString(strings.TrimLeftFunc(s, unicode.IsSpace))
}
