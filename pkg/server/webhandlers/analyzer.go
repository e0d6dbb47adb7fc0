package webhandlers

import (
	"net/http"
	"strings"

	"github.com/slangscope/slangscope/pkg/highlight"
	"github.com/slangscope/slangscope/pkg/models"
	"github.com/slangscope/slangscope/pkg/web"
)

// GetAnalyzerHandler renders the empty analyzer form.
func GetAnalyzerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		web.NewAnalyzerPage(&web.AnalyzerResult{Form: web.NewAnalyzerForm()}).Render(w, r)
	}
}

// PostAnalyzerHandler analyzes the submitted text and renders it highlighted,
// with a glossary of the slang found. Any failure clears the results and shows
// an alert instead.
func PostAnalyzerHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			handleError(w, models.NewBadRequestError(err.Error()), "failed to parse form")
			return
		}

		form := web.AnalyzerForm{
			Text:    r.PostForm.Get("text"),
			Enabled: isChecked(r.PostForm.Get("enabled")),
		}
		result := &web.AnalyzerResult{Form: form}
		page := web.NewAnalyzerPage(result)

		if strings.TrimSpace(form.Text) == "" {
			result.ValidationError = web.ValidationMessage
			page.Render(w, r)
			return
		}

		result.Submitted = true
		if !form.Enabled {
			result.Segments = web.UnanalyzedSegments(form.Text)
			page.Render(w, r)
			return
		}

		analysis, err := appState.Analyzer.Analyze(
			r.Context(),
			models.AnalysisRequest{Text: form.Text},
			models.AnalyzeOptions{
				Summarize: appState.Config.Analysis.Summarize,
				Persist:   appState.Config.Store.History,
				Metadata:  map[string]interface{}{"source": "web"},
			},
		)
		if err != nil {
			// the error message is safe to show; causes are logged by the analyzer
			result.Error = err.Error()
			result.Segments = web.UnanalyzedSegments(form.Text)
			page.Render(w, r)
			return
		}

		result.Terms = analysis.Terms
		result.Summary = analysis.Summary
		result.Segments = highlight.Highlight(analysis.Text, analysis.Terms)
		page.Render(w, r)
	}
}

func isChecked(v string) bool {
	switch strings.ToLower(v) {
	case "on", "true", "1":
		return true
	default:
		return false
	}
}
