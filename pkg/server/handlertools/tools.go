package handlertools

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/slangscope/slangscope/internal"
	"github.com/slangscope/slangscope/pkg/models"
)

var log = internal.GetLogger()

const RequestTooLargeMessage = "request body too large"

// ErrorResponse is the body of every API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// IntFromQuery extracts a query string value and converts it to an int
// if it is not empty. If the value is empty, it returns 0.
func IntFromQuery[T ~int | int32 | int64](
	r *http.Request,
	param string,
) (T, error) {
	bitsize := 0

	p := r.URL.Query().Get(param)
	var pInt T
	if p != "" {
		switch any(pInt).(type) {
		case int:
		case int32:
			bitsize = 32
		case int64:
			bitsize = 64
		default:
			return 0, errors.New("unsupported type")
		}

		pInt, err := strconv.ParseInt(p, 10, bitsize)
		if err != nil {
			return 0, err
		}
		return T(pInt), nil
	}
	return 0, nil
}

// EncodeJSON writes data as JSON with the given status code.
func EncodeJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// DecodeJSON decodes a JSON request body into the provided data struct.
func DecodeJSON(r *http.Request, data interface{}) error {
	return json.NewDecoder(r.Body).Decode(data)
}

// IsRequestTooLarge reports whether err came from a body over the
// http.MaxBytesReader limit.
func IsRequestTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr)
}

// StatusFromError maps an error to the status code it should be rendered with.
func StatusFromError(err error) int {
	switch {
	case IsRequestTooLarge(err):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, models.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// RenderError renders err as {"error": msg}. The status is derived from err.
func RenderError(w http.ResponseWriter, err error) {
	status := StatusFromError(err)
	message := err.Error()
	if status == http.StatusRequestEntityTooLarge {
		message = RequestTooLargeMessage
	}
	RenderErrorMessage(w, status, message, "")
	if status >= http.StatusInternalServerError {
		log.Error(err)
	}
}

// RenderErrorMessage renders a fixed message with an optional details field.
func RenderErrorMessage(w http.ResponseWriter, status int, message, details string) {
	if err := EncodeJSON(w, status, ErrorResponse{Error: message, Details: details}); err != nil {
		log.Errorf("failed to write error response: %v", err)
	}
}

// ErrorDetails returns the underlying cause of an upstream error, or the error
// message itself.
func ErrorDetails(err error) string {
	var upstream *models.UpstreamError
	if errors.As(err, &upstream) && upstream.Cause != nil {
		return upstream.Cause.Error()
	}
	return err.Error()
}

// UUIDFromURL parses a UUID from a Path parameter. If the UUID is invalid, an error is
// rendered and uuid.Nil is returned.
func UUIDFromURL(r *http.Request, w http.ResponseWriter, paramName string) uuid.UUID {
	uuidStr := chi.URLParam(r, paramName)
	parsed, err := uuid.Parse(uuidStr)
	if err != nil {
		RenderError(
			w,
			models.NewBadRequestError(fmt.Sprintf("unable to parse UUID: %s", err)),
		)
		return uuid.Nil
	}
	return parsed
}
