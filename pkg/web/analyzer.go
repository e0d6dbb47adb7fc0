package web

import (
	"github.com/slangscope/slangscope/pkg/models"
)

const (
	DefaultText       = "That new track is fire, it really slaps. No cap."
	ValidationMessage = "Please enter some text to analyze."
	AnalyzerPath      = "/"
)

var analyzerTemplates = []string{
	"templates/pages/analyzer.html",
}

// AnalyzerForm holds the submitted form values.
type AnalyzerForm struct {
	Text    string
	Enabled bool
}

// AnalyzerResult is the data rendered by the analyzer page. Segments is set
// once the form has been submitted. Terms is only set for a successful
// analysis.
type AnalyzerResult struct {
	Form            AnalyzerForm
	Submitted       bool
	Segments        []models.Segment
	Terms           []models.SlangTerm
	Summary         *models.SummaryResult
	Error           string
	ValidationError string
}

// NewAnalyzerForm returns the form as first shown to a visitor.
func NewAnalyzerForm() AnalyzerForm {
	return AnalyzerForm{
		Text:    DefaultText,
		Enabled: true,
	}
}

// UnanalyzedSegments returns the text as a single plain segment.
func UnanalyzedSegments(text string) []models.Segment {
	if text == "" {
		return []models.Segment{}
	}
	return []models.Segment{{Text: text}}
}

func NewAnalyzerPage(result *AnalyzerResult) *Page {
	return NewPage(
		"Slang Analyzer",
		"Paste some text to find and explain the slang in it",
		AnalyzerPath,
		analyzerTemplates,
		result,
	)
}
