package apihandlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/slangscope/slangscope/pkg/models"
	"github.com/slangscope/slangscope/pkg/server/handlertools"
	"github.com/slangscope/slangscope/pkg/store"
)

var validate = models.NewValidator()

// CreateScanHandler godoc
//
//	@Summary		Queue a page scan
//	@Description	Stores the text relayed by the browser extension and queues it for analysis
//	@Tags			scans
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.ScanRequest	true	"Page text"
//	@Success		202		{object}	models.ScanResponse
//	@Failure		400		{object}	APIError	"Bad Request"
//	@Failure		500		{object}	APIError	"Internal Server Error"
//	@Failure		503		{object}	APIError	"Service Unavailable"
//	@Security		Bearer
//	@Router			/api/scans [post]
func CreateScanHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if appState.TaskPublisher == nil {
			handlertools.RenderErrorMessage(w, http.StatusServiceUnavailable, ScansDisabledMessage, "")
			return
		}

		var req models.ScanRequest
		if err := handlertools.DecodeJSON(r, &req); err != nil {
			if handlertools.IsRequestTooLarge(err) {
				handlertools.RenderError(w, err)
				return
			}
			handlertools.RenderErrorMessage(w, http.StatusBadRequest, InvalidJSONMessage, "")
			return
		}
		if err := validate.Struct(req); err != nil {
			handlertools.RenderError(w, models.NewBadRequestError(fmt.Sprintf("invalid scan request: %s", err)))
			return
		}

		metadata := req.Metadata
		if req.URL != "" {
			var err error
			metadata, err = store.MergeMetadata(metadata, map[string]interface{}{"url": req.URL})
			if err != nil {
				handlertools.RenderError(w, err)
				return
			}
		}

		analysis := &models.Analysis{
			UUID:     uuid.New(),
			Text:     req.Text,
			Terms:    []models.SlangTerm{},
			Status:   models.AnalysisPending,
			Metadata: metadata,
		}
		if err := appState.AnalysisStore.Put(r.Context(), analysis); err != nil {
			handlertools.RenderError(w, err)
			return
		}

		err := appState.TaskPublisher.Publish(
			models.PageScanTopic,
			map[string]string{"analysis_uuid": analysis.UUID.String()},
			models.PageScanTask{UUID: analysis.UUID},
		)
		if err != nil {
			handlertools.RenderError(w, fmt.Errorf("failed to queue page scan: %w", err))
			return
		}

		resp := models.ScanResponse{UUID: analysis.UUID, Status: analysis.Status}
		if err := handlertools.EncodeJSON(w, http.StatusAccepted, resp); err != nil {
			log.Errorf("failed to write scan response: %v", err)
		}
	}
}

// GetScanHandler godoc
//
//	@Summary		Get a page scan
//	@Description	Returns the analysis of a queued page scan
//	@Tags			scans
//	@Produce		json
//	@Param			scanUUID	path		string	true	"Scan UUID"
//	@Success		200			{object}	models.Analysis
//	@Failure		400			{object}	APIError	"Bad Request"
//	@Failure		404			{object}	APIError	"Not Found"
//	@Failure		500			{object}	APIError	"Internal Server Error"
//	@Security		Bearer
//	@Router			/api/scans/{scanUUID} [get]
func GetScanHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scanUUID := handlertools.UUIDFromURL(r, w, "scanUUID")
		if scanUUID == uuid.Nil {
			return
		}

		analysis, err := appState.AnalysisStore.Get(r.Context(), scanUUID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				handlertools.RenderErrorMessage(w, http.StatusNotFound, "scan not found", "")
				return
			}
			handlertools.RenderError(w, err)
			return
		}

		if err := handlertools.EncodeJSON(w, http.StatusOK, analysis); err != nil {
			log.Errorf("failed to write scan response: %v", err)
		}
	}
}
