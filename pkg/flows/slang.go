package flows

import (
	"github.com/slangscope/slangscope/config"
	"github.com/slangscope/slangscope/pkg/models"
)

const (
	IdentifySlangFlowName       = "identify-slang"
	SummarizeSlangUsageFlowName = "summarize-slang-usage"
	DisplaySlangInfoFlowName    = "display-slang-info"
)

// IdentifySlangOutput wraps the identified terms so the output schema is an object.
type IdentifySlangOutput struct {
	Terms []models.SlangTerm `json:"terms" validate:"dive" jsonschema:"description=The slang terms found in the text in order of appearance."`
}

// SlangFlows holds the prompt flows used by the analyzer.
type SlangFlows struct {
	IdentifySlang       *Flow[models.AnalysisRequest, IdentifySlangOutput]
	SummarizeSlangUsage *Flow[models.AnalysisRequest, models.SummaryResult]
	DisplaySlangInfo    *Flow[models.LookupRequest, models.TermInfo]
}

func NewSlangFlows(llm models.SlangLLM, cfg *config.Config) (*SlangFlows, error) {
	identify, err := NewFlow[models.AnalysisRequest, IdentifySlangOutput](
		IdentifySlangFlowName,
		identifySlangPromptTemplate,
		llm,
		cfg,
	)
	if err != nil {
		return nil, err
	}

	summarize, err := NewFlow[models.AnalysisRequest, models.SummaryResult](
		SummarizeSlangUsageFlowName,
		summarizeSlangUsagePromptTemplate,
		llm,
		cfg,
	)
	if err != nil {
		return nil, err
	}

	info, err := NewFlow[models.LookupRequest, models.TermInfo](
		DisplaySlangInfoFlowName,
		displaySlangInfoPromptTemplate,
		llm,
		cfg,
	)
	if err != nil {
		return nil, err
	}

	return &SlangFlows{
		IdentifySlang:       identify,
		SummarizeSlangUsage: summarize,
		DisplaySlangInfo:    info,
	}, nil
}
