package apihandlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/slangscope/slangscope/pkg/analyzer"
	"github.com/slangscope/slangscope/pkg/highlight"
	"github.com/slangscope/slangscope/pkg/models"
	"github.com/slangscope/slangscope/pkg/server/handlertools"
)

// decodeTextRequest reads a body of the form {"text": "..."}. The text must be
// a non-blank string.
func decodeTextRequest(w http.ResponseWriter, r *http.Request) (models.AnalysisRequest, bool) {
	var body any
	if err := handlertools.DecodeJSON(r, &body); err != nil {
		if handlertools.IsRequestTooLarge(err) {
			handlertools.RenderError(w, err)
		} else {
			handlertools.RenderErrorMessage(w, http.StatusBadRequest, InvalidJSONMessage, "")
		}
		return models.AnalysisRequest{}, false
	}

	obj, _ := body.(map[string]any)
	text, ok := obj["text"].(string)
	if !ok || strings.TrimSpace(text) == "" {
		handlertools.RenderErrorMessage(w, http.StatusBadRequest, TextRequiredMessage, "")
		return models.AnalysisRequest{}, false
	}

	return models.AnalysisRequest{Text: text}, true
}

// renderFlowError renders bad requests with their own message and every other
// failure as a 500 with the generic message and the cause in details.
func renderFlowError(w http.ResponseWriter, err error, message string) {
	status := handlertools.StatusFromError(err)
	if status < http.StatusInternalServerError {
		handlertools.RenderError(w, err)
		return
	}
	handlertools.RenderErrorMessage(w, status, message, handlertools.ErrorDetails(err))
}

// SummarizeHandler godoc
//
//	@Summary		Summarize slang usage
//	@Description	Summarizes the likely country of origin and age demographic of the slang in a text
//	@Tags			slang
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.AnalysisRequest	true	"Text to summarize"
//	@Success		200		{object}	models.SummaryResult
//	@Failure		400		{object}	APIError	"Bad Request"
//	@Failure		500		{object}	APIError	"Internal Server Error"
//	@Security		Bearer
//	@Router			/api/summarize [post]
func SummarizeHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeTextRequest(w, r)
		if !ok {
			return
		}

		summary, err := appState.Analyzer.GetSlangSummary(r.Context(), req)
		if err != nil {
			renderFlowError(w, err, analyzer.SummaryFailedMessage)
			return
		}

		if err := handlertools.EncodeJSON(w, http.StatusOK, summary); err != nil {
			log.Errorf("failed to write summary response: %v", err)
		}
	}
}

// AnalyzeHandler godoc
//
//	@Summary		Identify slang
//	@Description	Identifies the slang terms in a text and returns them with the text split into highlight segments
//	@Tags			slang
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.AnalysisRequest	true	"Text to analyze"
//	@Success		200		{object}	models.AnalyzeResponse
//	@Failure		400		{object}	APIError	"Bad Request"
//	@Failure		500		{object}	APIError	"Internal Server Error"
//	@Security		Bearer
//	@Router			/api/analyze [post]
func AnalyzeHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeTextRequest(w, r)
		if !ok {
			return
		}

		analysis, err := appState.Analyzer.Analyze(r.Context(), req, models.AnalyzeOptions{
			Persist:  appState.Config.Store.History,
			Metadata: map[string]interface{}{"source": "api"},
		})
		if err != nil {
			renderFlowError(w, err, analyzer.AnalyzeFailedMessage)
			return
		}

		resp := models.AnalyzeResponse{
			Terms:    analysis.Terms,
			Segments: highlight.Highlight(analysis.Text, analysis.Terms),
		}
		if err := handlertools.EncodeJSON(w, http.StatusOK, resp); err != nil {
			log.Errorf("failed to write analyze response: %v", err)
		}
	}
}

// LookupHandler godoc
//
//	@Summary		Look up a slang term
//	@Description	Returns the definition, origin and age range of a single slang term
//	@Tags			slang
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.LookupRequest	true	"Term to look up"
//	@Success		200		{object}	models.TermInfo
//	@Failure		400		{object}	APIError	"Bad Request"
//	@Failure		500		{object}	APIError	"Internal Server Error"
//	@Security		Bearer
//	@Router			/api/lookup [post]
func LookupHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LookupRequest
		if err := handlertools.DecodeJSON(r, &req); err != nil {
			var typeErr *json.UnmarshalTypeError
			switch {
			case handlertools.IsRequestTooLarge(err):
				handlertools.RenderError(w, err)
			case errors.As(err, &typeErr):
				handlertools.RenderErrorMessage(w, http.StatusBadRequest, analyzer.EmptyTermMessage, "")
			default:
				handlertools.RenderErrorMessage(w, http.StatusBadRequest, InvalidJSONMessage, "")
			}
			return
		}

		info, err := appState.Analyzer.LookupTerm(r.Context(), req)
		if err != nil {
			renderFlowError(w, err, analyzer.LookupFailedMessage)
			return
		}

		if err := handlertools.EncodeJSON(w, http.StatusOK, info); err != nil {
			log.Errorf("failed to write lookup response: %v", err)
		}
	}
}
