package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slangscope/slangscope/pkg/analyzer"
	"github.com/slangscope/slangscope/pkg/models"
	"github.com/slangscope/slangscope/pkg/store"
	"github.com/slangscope/slangscope/pkg/testutils"
)

// routeByFlow answers the summarize and lookup prompts with their canned
// responses and every other prompt with identify.
func routeByFlow(identify string) func(context.Context, string) (string, error) {
	return func(_ context.Context, prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "sociolinguistics"):
			return testutils.SummaryResponse, nil
		case strings.Contains(prompt, "slang dictionary"):
			return testutils.TermInfoResponse, nil
		default:
			return identify, nil
		}
	}
}

type publishedTask struct {
	Topic    models.TaskTopic
	Metadata map[string]string
	Payload  any
}

type fakePublisher struct {
	mu    sync.Mutex
	tasks []publishedTask
	err   error
}

func (f *fakePublisher) Publish(topic models.TaskTopic, metadata map[string]string, payload any) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, publishedTask{topic, metadata, payload})
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func newTestAppState(t *testing.T, llm *testutils.FakeLLM) *models.AppState {
	t.Helper()
	if llm.Handler == nil && llm.Err == nil && len(llm.Responses) == 0 {
		llm.Handler = routeByFlow(testutils.IdentifyResponse)
	}

	appState := &models.AppState{
		LLM:           llm,
		AnalysisStore: store.NewMemoryAnalysisStore(10),
		TermCache:     store.NewMemoryTermCache(),
		Config:        testutils.NewTestConfig(),
	}
	a, err := analyzer.NewAnalyzer(appState)
	require.NoError(t, err)
	appState.Analyzer = a

	return appState
}

func newTestServer(t *testing.T, appState *models.AppState) *httptest.Server {
	t.Helper()
	router, err := setupRouter(appState)
	require.NoError(t, err)
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	res, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func decodeBody[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))
	return v
}
