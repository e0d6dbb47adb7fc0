package web

import (
	"html/template"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/getzep/sprig/v3"

	"github.com/slangscope/slangscope/internal"
	"github.com/slangscope/slangscope/pkg/models"
)

func add(a, b int) int {
	return a + b
}

// humanizeTime renders t relative to now, e.g. "3 minutes ago".
func humanizeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}

func pluralize(n int, singular string) string {
	return english.Plural(n, singular, "")
}

func statusClass(status models.AnalysisStatus) string {
	switch status {
	case models.AnalysisComplete:
		return "badge-complete"
	case models.AnalysisFailed:
		return "badge-failed"
	default:
		return "badge-pending"
	}
}

// templateFuncs returns sprig's html functions plus our own.
func templateFuncs() template.FuncMap {
	funcs := sprig.FuncMap()
	for name, fn := range map[string]any{
		"ToLower":      strings.ToLower,
		"Add":          add,
		"HumanizeTime": humanizeTime,
		"Pluralize":    pluralize,
		"Truncate":     internal.Truncate,
		"StatusClass":  statusClass,
	} {
		funcs[name] = fn
	}
	return funcs
}
