package tools

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"github.com/coderefinery/pyrefine/domain"
)

// radonEntry is one function record in radon's JSON output
type radonEntry struct {
	Name       string `json:"name"`
	Complexity int    `json:"complexity"`
	LineNo     int    `json:"lineno"`
}

// RunRadon measures cyclomatic complexity with radon. An execution or
// parse failure returns an error so the caller can fall back to the
// AST-based analyzer.
func (r *Runner) RunRadon(ctx context.Context, content string) (domain.ComplexityReport, error) {
	report := domain.ComplexityReport{Functions: []domain.FunctionMetric{}}

	var output string
	err := withTempFile(content, func(path string) error {
		out, runErr := r.run(ctx, ToolRadon, "cc", "--json", path)
		output = out
		return runErr
	})
	if err != nil {
		return report, err
	}

	return parseRadonOutput(output)
}

// parseRadonOutput parses radon's map of file path to function records
func parseRadonOutput(output string) (domain.ComplexityReport, error) {
	report := domain.ComplexityReport{Functions: []domain.FunctionMetric{}}

	output = strings.TrimSpace(output)
	if output == "" {
		return report, nil
	}

	var byFile map[string][]radonEntry
	if err := json.Unmarshal([]byte(output), &byFile); err != nil {
		return report, err
	}

	total := 0
	for _, entries := range byFile {
		for _, entry := range entries {
			report.Functions = append(report.Functions, domain.FunctionMetric{
				Name:       entry.Name,
				Complexity: entry.Complexity,
				Line:       entry.LineNo,
			})
			total += entry.Complexity
		}
	}

	if len(report.Functions) > 0 {
		avg := float64(total) / float64(len(report.Functions))
		report.Average = math.Round(avg*100) / 100
	}

	return report, nil
}
