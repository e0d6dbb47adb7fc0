package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slangscope/slangscope/pkg/models"
)

func render(t *testing.T, page *Page, partial bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, page.Path, nil)
	if partial {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	page.Render(rec, req)
	return rec
}

func TestAnalyzerPage_Initial(t *testing.T) {
	page := NewAnalyzerPage(&AnalyzerResult{Form: NewAnalyzerForm()})

	rec := render(t, page, false)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "<title>Slang Analyzer · SlangScope</title>")
	assert.Contains(t, body, DefaultText)
	assert.Contains(t, body, "checked")
	assert.NotContains(t, body, "Glossary")
}

func TestAnalyzerPage_Result(t *testing.T) {
	term := models.SlangTerm{
		Term:              "slaps",
		Meaning:           "is excellent",
		CountryOfOrigin:   "United States",
		EstimatedAgeRange: "16-28",
		StartIndex:        4,
		EndIndex:          9,
	}
	page := NewAnalyzerPage(&AnalyzerResult{
		Form:      AnalyzerForm{Text: "it slaps <b>", Enabled: true},
		Submitted: true,
		Segments: []models.Segment{
			{Text: "it "},
			{Text: "slaps", Term: &term},
			{Text: " <b>"},
		},
		Terms: []models.SlangTerm{term},
		Summary: &models.SummaryResult{
			SummaryCountryOfOrigin:   "Primarily American (US).",
			SummaryEstimatedAgeRange: "Likely Gen Z.",
		},
	})

	rec := render(t, page, false)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `<mark class="slang" title="is excellent">slaps</mark>`)
	assert.Contains(t, body, "&lt;b&gt;")
	assert.NotContains(t, body, " <b>")
	assert.Contains(t, body, "1 term")
	assert.Contains(t, body, "United States")
	assert.Contains(t, body, "Primarily American (US).")
}

func TestAnalyzerPage_Error(t *testing.T) {
	page := NewAnalyzerPage(&AnalyzerResult{
		Form:      AnalyzerForm{Text: "no cap", Enabled: true},
		Submitted: true,
		Segments:  UnanalyzedSegments("no cap"),
		Error:     "Failed to analyze slang.",
	})

	body := render(t, page, false).Body.String()
	assert.Contains(t, body, `role="alert"`)
	assert.Contains(t, body, "Failed to analyze slang.")
	assert.NotContains(t, body, "Glossary")
}

func TestAnalyzerPage_Partial(t *testing.T) {
	page := NewAnalyzerPage(&AnalyzerResult{Form: NewAnalyzerForm()})

	rec := render(t, page, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, AnalyzerPath, rec.Header().Get("HX-Push"))
	assert.NotContains(t, rec.Body.String(), "<html")
	assert.Contains(t, rec.Body.String(), DefaultText)
}

func TestHistoryPage(t *testing.T) {
	id := uuid.New()
	page := NewHistoryPage(&HistoryList{
		Analyses: []models.Analysis{
			{
				UUID:      id,
				Text:      "That new track is fire",
				Status:    models.AnalysisComplete,
				Terms:     []models.SlangTerm{{Term: "fire"}},
				CreatedAt: time.Now().Add(-2 * time.Hour),
			},
		},
		Limit: DefaultHistoryLimit,
	})

	body := render(t, page, false).Body.String()
	assert.Contains(t, body, "/history/"+id.String())
	assert.Contains(t, body, "2 hours ago")
	assert.Contains(t, body, "badge-complete")
}

func TestAnalysisDetailsPage(t *testing.T) {
	analysis := &models.Analysis{
		UUID:   uuid.New(),
		Text:   "no cap",
		Status: models.AnalysisFailed,
		Error:  "Failed to analyze slang.",
	}
	js, err := JSONHighlight(analysis)
	require.NoError(t, err)

	page := NewAnalysisDetailsPage(&AnalysisDetails{
		Analysis: analysis,
		Segments: UnanalyzedSegments(analysis.Text),
		JSON:     js,
	})

	body := render(t, page, false).Body.String()
	assert.Contains(t, body, analysis.UUID.String())
	assert.Contains(t, body, `<pre class="code"`)
	assert.Contains(t, body, "Failed to analyze slang.")
}

func TestNotFoundHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFoundHandler()(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestCodeHighlight(t *testing.T) {
	out, err := CodeHighlight(`{"a": 1}`, "json")
	require.NoError(t, err)
	assert.Contains(t, out, `<pre class="code"`)

	out, err = CodeHighlight("plain <text>", "no-such-lexer")
	require.NoError(t, err)
	assert.Contains(t, out, "&lt;text&gt;")
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "slanganalyzer", slugify("Slang Analyzer"))
	assert.Equal(t, "notfound", slugify("Not Found!"))
}
