package apihandlers

import (
	"github.com/slangscope/slangscope/internal"
)

var log = internal.GetLogger()

const (
	InvalidJSONMessage   = "Invalid JSON in request body."
	TextRequiredMessage  = `A non-empty "text" field is required in the request body.`
	ScansDisabledMessage = "page scans are disabled"
)

// APIError represents an error response. Used for swagger documentation.
type APIError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
