package models

import (
	"time"

	"github.com/google/uuid"
)

// SlangTerm is a single slang term identified in a piece of text.
// StartIndex and EndIndex are rune offsets into the analysed text, EndIndex exclusive.
// Both are -1 when the term could not be located in the text.
type SlangTerm struct {
	Term              string `json:"term"              validate:"notblank" jsonschema:"description=The slang term exactly as it appears in the text."`
	Meaning           string `json:"meaning"           validate:"notblank" jsonschema:"description=The meaning of the slang term in this context."`
	CountryOfOrigin   string `json:"countryOfOrigin"   validate:"notblank" jsonschema:"description=The country or region where the slang term originated."`
	EstimatedAgeRange string `json:"estimatedAgeRange" validate:"notblank" jsonschema:"description=The estimated age range of people who typically use the term."`
	StartIndex        int    `json:"startIndex"                            jsonschema:"description=Zero-based character index where the term starts in the text."`
	EndIndex          int    `json:"endIndex"                              jsonschema:"description=Zero-based character index just past the end of the term in the text."`
}

// Located reports whether the term has a valid span in its source text.
func (s SlangTerm) Located() bool {
	return s.StartIndex >= 0 && s.EndIndex > s.StartIndex
}

type AnalysisRequest struct {
	Text string `json:"text" validate:"notblank"`
}

type SummaryResult struct {
	SummaryCountryOfOrigin   string `json:"summaryCountryOfOrigin"   validate:"notblank" jsonschema:"description=A summary of the most likely country or region of origin for the slang used in the text."`
	SummaryEstimatedAgeRange string `json:"summaryEstimatedAgeRange" validate:"notblank" jsonschema:"description=A summary of the estimated age range of the people who typically use the slang in the text."`
}

type LookupRequest struct {
	Slang string `json:"slang" validate:"notblank"`
}

// TermInfo describes a single slang term looked up out of context.
type TermInfo struct {
	Definition        string `json:"definition"        validate:"notblank" jsonschema:"description=The definition of the slang term."`
	CountryOfOrigin   string `json:"countryOfOrigin"   validate:"notblank" jsonschema:"description=The country of origin of the slang term."`
	EstimatedAgeRange string `json:"estimatedAgeRange" validate:"notblank" jsonschema:"description=The estimated age range of people who use the slang term."`
}

type AnalysisStatus string

const (
	AnalysisPending  AnalysisStatus = "pending"
	AnalysisComplete AnalysisStatus = "complete"
	AnalysisFailed   AnalysisStatus = "failed"
)

// Analysis is a persisted analysis of one piece of text.
type Analysis struct {
	UUID      uuid.UUID              `json:"uuid"`
	Text      string                 `json:"text"`
	Terms     []SlangTerm            `json:"terms"`
	Summary   *SummaryResult         `json:"summary,omitempty"`
	Status    AnalysisStatus         `json:"status"`
	Error     string                 `json:"error,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// AnalyzeOptions controls which flows Analyze runs and whether the result is stored.
type AnalyzeOptions struct {
	Summarize bool
	Persist   bool
	// UUID reuses an existing analysis record, e.g. a pending scan. A new UUID is generated when unset.
	UUID     uuid.UUID
	Metadata map[string]interface{}
}

// ScanRequest is sent by the browser extension with the text scraped from a page.
type ScanRequest struct {
	Text     string                 `json:"text"               validate:"notblank"`
	URL      string                 `json:"url,omitempty"      validate:"omitempty,url"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type ScanResponse struct {
	UUID   uuid.UUID      `json:"uuid"`
	Status AnalysisStatus `json:"status"`
}

// Segment is one piece of highlighted text. Term is nil for plain text.
type Segment struct {
	Text string     `json:"text"`
	Term *SlangTerm `json:"term,omitempty"`
}

type AnalyzeResponse struct {
	Terms    []SlangTerm `json:"terms"`
	Segments []Segment   `json:"segments"`
}
