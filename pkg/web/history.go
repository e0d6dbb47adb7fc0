package web

import (
	"fmt"
	"html/template"

	"github.com/slangscope/slangscope/pkg/models"
)

const (
	HistoryPath         = "/history"
	DefaultHistoryLimit = 50
)

type HistoryList struct {
	Analyses []models.Analysis
	Limit    int
}

func NewHistoryPage(list *HistoryList) *Page {
	return NewPage(
		"History",
		"Recent analyses",
		HistoryPath,
		[]string{"templates/pages/history.html"},
		list,
	)
}

type AnalysisDetails struct {
	Analysis *models.Analysis
	Segments []models.Segment
	JSON     template.HTML
}

func NewAnalysisDetailsPage(details *AnalysisDetails) *Page {
	return NewPage(
		"Analysis",
		details.Analysis.UUID.String(),
		fmt.Sprintf("%s/%s", HistoryPath, details.Analysis.UUID),
		[]string{"templates/pages/analysis.html"},
		details,
	)
}
