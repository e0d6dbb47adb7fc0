package analyzer

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slangscope/slangscope/pkg/flows"
	"github.com/slangscope/slangscope/pkg/models"
	"github.com/slangscope/slangscope/pkg/store"
	"github.com/slangscope/slangscope/pkg/testutils"
)

type testDeps struct {
	llm   *testutils.FakeLLM
	store *store.MemoryAnalysisStore
	cache *store.MemoryTermCache
}

func newTestAnalyzer(t *testing.T, llm *testutils.FakeLLM) (*Analyzer, testDeps) {
	t.Helper()
	deps := testDeps{
		llm:   llm,
		store: store.NewMemoryAnalysisStore(10),
		cache: store.NewMemoryTermCache(),
	}
	a, err := NewAnalyzer(&models.AppState{
		LLM:           llm,
		AnalysisStore: deps.store,
		TermCache:     deps.cache,
		Config:        testutils.NewTestConfig(),
	})
	require.NoError(t, err)
	return a, deps
}

// routeByFlow answers each flow's prompt with the matching canned response.
func routeByFlow(identify, summary, info string) func(context.Context, string) (string, error) {
	return func(_ context.Context, prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "sociolinguistics"):
			return summary, nil
		case strings.Contains(prompt, "slang dictionary"):
			return info, nil
		default:
			return identify, nil
		}
	}
}

func TestAnalyzeSlang(t *testing.T) {
	a, _ := newTestAnalyzer(t, testutils.NewFakeLLM(testutils.IdentifyResponse))

	terms, err := a.AnalyzeSlang(context.Background(), models.AnalysisRequest{Text: testutils.DefaultText})
	require.NoError(t, err)
	require.Len(t, terms, 3)
	for _, term := range terms {
		runes := []rune(testutils.DefaultText)
		assert.Equal(t, term.Term, string(runes[term.StartIndex:term.EndIndex]))
	}
}

func TestAnalyzeSlang_RepairsIndices(t *testing.T) {
	a, _ := newTestAnalyzer(t, testutils.NewFakeLLM(testutils.IdentifyResponse))

	// leading whitespace is trimmed from the prompt, so the model's indices are shifted back
	text := "\n  " + testutils.DefaultText
	terms, err := a.AnalyzeSlang(context.Background(), models.AnalysisRequest{Text: text})
	require.NoError(t, err)
	assert.Equal(t, 21, terms[0].StartIndex)
	assert.Equal(t, 25, terms[0].EndIndex)

	a, _ = newTestAnalyzer(t, testutils.NewFakeLLM(testutils.IdentifyResponseFenced))
	terms, err = a.AnalyzeSlang(context.Background(), models.AnalysisRequest{Text: testutils.DefaultText})
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, 34, terms[0].StartIndex)
	assert.Equal(t, 39, terms[0].EndIndex)
}

func TestAnalyzeSlang_InvalidInput(t *testing.T) {
	llm := testutils.NewFakeLLM(testutils.IdentifyResponse)
	llm.CountTokens = true
	a, _ := newTestAnalyzer(t, llm)
	a.cfg.Analysis.MaxInputChars = 50
	a.cfg.Analysis.MaxInputTokens = 5

	tests := []struct {
		name    string
		text    string
		wantErr string
	}{
		{name: "empty", text: "", wantErr: EmptyTextMessage},
		{name: "whitespace", text: " \n\t ", wantErr: EmptyTextMessage},
		{name: "too many chars", text: strings.Repeat("a", 51), wantErr: "51 characters, maximum is 50"},
		{name: "too many tokens", text: "one two three four five six", wantErr: "6 tokens, maximum is 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.AnalyzeSlang(context.Background(), models.AnalysisRequest{Text: tt.text})
			assert.ErrorIs(t, err, models.ErrBadRequest)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
	assert.Equal(t, 0, llm.Calls())
}

func TestAnalyzeSlang_UpstreamFailure(t *testing.T) {
	tests := []struct {
		name  string
		llm   *testutils.FakeLLM
		cause error
	}{
		{
			name:  "llm error",
			llm:   &testutils.FakeLLM{Err: errors.New("connection refused")},
			cause: nil,
		},
		{
			name:  "malformed output",
			llm:   testutils.NewFakeLLM(testutils.MalformedResponse),
			cause: flows.ErrMalformedOutput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestAnalyzer(t, tt.llm)

			terms, err := a.AnalyzeSlang(context.Background(), models.AnalysisRequest{Text: testutils.DefaultText})
			assert.Nil(t, terms)
			assert.EqualError(t, err, AnalyzeFailedMessage)
			assert.ErrorIs(t, err, models.ErrUpstream)
			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			}

			var upstream *models.UpstreamError
			require.ErrorAs(t, err, &upstream)
			assert.Error(t, upstream.Cause)
		})
	}
}

func TestGetSlangSummary(t *testing.T) {
	a, _ := newTestAnalyzer(t, testutils.NewFakeLLM(testutils.SummaryResponse))

	summary, err := a.GetSlangSummary(context.Background(), models.AnalysisRequest{Text: testutils.DefaultText})
	require.NoError(t, err)
	assert.Equal(t, "Likely Gen Z (16-28 years old).", summary.SummaryEstimatedAgeRange)

	a, _ = newTestAnalyzer(t, &testutils.FakeLLM{Err: errors.New("boom")})
	_, err = a.GetSlangSummary(context.Background(), models.AnalysisRequest{Text: testutils.DefaultText})
	assert.EqualError(t, err, SummaryFailedMessage)

	_, err = a.GetSlangSummary(context.Background(), models.AnalysisRequest{Text: "  "})
	assert.ErrorIs(t, err, models.ErrBadRequest)
}

func TestLookupTerm_Cached(t *testing.T) {
	llm := testutils.NewFakeLLM(testutils.TermInfoResponse)
	a, deps := newTestAnalyzer(t, llm)
	ctx := context.Background()

	info, err := a.LookupTerm(ctx, models.LookupRequest{Slang: "Fire"})
	require.NoError(t, err)
	assert.Equal(t, "Something excellent.", info.Definition)

	// normalized to the same key
	again, err := a.LookupTerm(ctx, models.LookupRequest{Slang: "  FIRE "})
	require.NoError(t, err)
	assert.Equal(t, info, again)
	assert.Equal(t, 1, llm.Calls())

	cached, err := deps.cache.Get(ctx, "fire")
	require.NoError(t, err)
	assert.Equal(t, info, cached)
}

func TestLookupTerm_KeepsTypedCasing(t *testing.T) {
	llm := testutils.NewFakeLLM(testutils.TermInfoResponse)
	a, deps := newTestAnalyzer(t, llm)
	ctx := context.Background()

	_, err := a.LookupTerm(ctx, models.LookupRequest{Slang: "  GOAT "})
	require.NoError(t, err)

	prompts := llm.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], `"GOAT"`)
	assert.NotContains(t, prompts[0], `"goat"`)

	_, err = deps.cache.Get(ctx, "goat")
	assert.NoError(t, err)
}

func TestLookupTerm_Errors(t *testing.T) {
	a, deps := newTestAnalyzer(t, &testutils.FakeLLM{Err: errors.New("timeout")})

	_, err := a.LookupTerm(context.Background(), models.LookupRequest{Slang: " "})
	assert.ErrorIs(t, err, models.ErrBadRequest)

	_, err = a.LookupTerm(context.Background(), models.LookupRequest{Slang: strings.Repeat("x", 101)})
	assert.ErrorIs(t, err, models.ErrBadRequest)

	_, err = a.LookupTerm(context.Background(), models.LookupRequest{Slang: "rizz"})
	assert.EqualError(t, err, LookupFailedMessage)

	// failures are not cached
	_, err = deps.cache.Get(context.Background(), "rizz")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestLookupTerm_NoCache(t *testing.T) {
	llm := testutils.NewFakeLLM(testutils.TermInfoResponse)
	a, err := NewAnalyzer(&models.AppState{LLM: llm, Config: testutils.NewTestConfig()})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := a.LookupTerm(context.Background(), models.LookupRequest{Slang: "bet"})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, llm.Calls())
}

func TestAnalyze(t *testing.T) {
	llm := &testutils.FakeLLM{
		Handler: routeByFlow(testutils.IdentifyResponse, testutils.SummaryResponse, testutils.TermInfoResponse),
	}
	a, deps := newTestAnalyzer(t, llm)
	ctx := context.Background()

	analysis, err := a.Analyze(
		ctx,
		models.AnalysisRequest{Text: testutils.DefaultText},
		models.AnalyzeOptions{Summarize: true, Persist: true, Metadata: map[string]interface{}{"source": "test"}},
	)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, analysis.UUID)
	assert.Equal(t, models.AnalysisComplete, analysis.Status)
	assert.Len(t, analysis.Terms, 3)
	require.NotNil(t, analysis.Summary)
	assert.Equal(t, 2, llm.Calls())

	stored, err := deps.store.Get(ctx, analysis.UUID)
	require.NoError(t, err)
	assert.Equal(t, models.AnalysisComplete, stored.Status)
	assert.Equal(t, "test", stored.Metadata["source"])
}

func TestAnalyze_ValidatesOnce(t *testing.T) {
	llm := &testutils.FakeLLM{
		Handler:     routeByFlow(testutils.IdentifyResponse, testutils.SummaryResponse, testutils.TermInfoResponse),
		CountTokens: true,
	}
	a, _ := newTestAnalyzer(t, llm)

	_, err := a.Analyze(
		context.Background(),
		models.AnalysisRequest{Text: testutils.DefaultText},
		models.AnalyzeOptions{Summarize: true},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, llm.TokenCounts())
	assert.Equal(t, 2, llm.Calls())
}

func TestAnalyze_WithoutSummaryOrPersist(t *testing.T) {
	llm := testutils.NewFakeLLM(testutils.EmptyIdentifyResponse)
	a, deps := newTestAnalyzer(t, llm)

	analysis, err := a.Analyze(
		context.Background(),
		models.AnalysisRequest{Text: "Nothing to see here."},
		models.AnalyzeOptions{},
	)
	require.NoError(t, err)
	assert.NotNil(t, analysis.Terms)
	assert.Empty(t, analysis.Terms)
	assert.Nil(t, analysis.Summary)
	assert.Equal(t, 1, llm.Calls())

	list, err := deps.store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAnalyze_FailureIsRecordedWithoutTerms(t *testing.T) {
	var calls atomic.Int32
	llm := &testutils.FakeLLM{
		Handler: func(ctx context.Context, prompt string) (string, error) {
			calls.Add(1)
			if strings.Contains(prompt, "sociolinguistics") {
				return "", errors.New("summary backend down")
			}
			return testutils.IdentifyResponse, nil
		},
	}
	a, deps := newTestAnalyzer(t, llm)
	ctx := context.Background()

	id := uuid.New()
	analysis, err := a.Analyze(
		ctx,
		models.AnalysisRequest{Text: testutils.DefaultText},
		models.AnalyzeOptions{Summarize: true, Persist: true, UUID: id},
	)
	assert.Nil(t, analysis)
	assert.EqualError(t, err, SummaryFailedMessage)
	assert.Equal(t, int32(2), calls.Load())

	stored, err := deps.store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.AnalysisFailed, stored.Status)
	assert.Equal(t, SummaryFailedMessage, stored.Error)
	assert.Empty(t, stored.Terms)
	assert.Nil(t, stored.Summary)
}

func TestAnalyze_InvalidInputNotPersisted(t *testing.T) {
	a, deps := newTestAnalyzer(t, testutils.NewFakeLLM(testutils.IdentifyResponse))

	_, err := a.Analyze(context.Background(), models.AnalysisRequest{Text: ""}, models.AnalyzeOptions{Persist: true})
	assert.ErrorIs(t, err, models.ErrBadRequest)

	list, err := deps.store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}
