package webhandlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/slangscope/slangscope/pkg/highlight"
	"github.com/slangscope/slangscope/pkg/models"
	"github.com/slangscope/slangscope/pkg/server/handlertools"
	"github.com/slangscope/slangscope/pkg/web"
)

func GetHistoryHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := handlertools.IntFromQuery[int](r, "limit")
		if err != nil || limit <= 0 {
			limit = web.DefaultHistoryLimit
		}

		analyses, err := appState.AnalysisStore.List(r.Context(), limit)
		if err != nil {
			handleError(w, err, "failed to list analyses")
			return
		}

		web.NewHistoryPage(&web.HistoryList{Analyses: analyses, Limit: limit}).Render(w, r)
	}
}

func GetAnalysisDetailsHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		analysisUUID, err := uuid.Parse(chi.URLParam(r, "analysisUUID"))
		if err != nil {
			web.NotFoundHandler()(w, r)
			return
		}

		analysis, err := appState.AnalysisStore.Get(r.Context(), analysisUUID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				web.NotFoundHandler()(w, r)
				return
			}
			handleError(w, err, "failed to get analysis")
			return
		}

		js, err := web.JSONHighlight(analysis)
		if err != nil {
			handleError(w, err, "failed to render analysis")
			return
		}

		web.NewAnalysisDetailsPage(&web.AnalysisDetails{
			Analysis: analysis,
			Segments: highlight.Highlight(analysis.Text, analysis.Terms),
			JSON:     js,
		}).Render(w, r)
	}
}
