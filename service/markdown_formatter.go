package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/coderefinery/pyrefine/domain"
)

// GenerateExports renders the requested derived report artifacts
func GenerateExports(response *domain.AnalyzeResponse, formats []domain.ExportFormat) (map[domain.ExportFormat]string, error) {
	exports := make(map[domain.ExportFormat]string)

	for _, format := range formats {
		switch format {
		case domain.ExportFormatMarkdown:
			exports[domain.ExportFormatMarkdown] = GenerateMarkdownReport(response)
		case domain.ExportFormatJSON:
			data, err := json.MarshalIndent(response, "", "  ")
			if err != nil {
				return nil, domain.NewOutputError("failed to serialize report", err)
			}
			exports[domain.ExportFormatJSON] = string(data)
		default:
			return nil, domain.NewUnsupportedFormatError(string(format))
		}
	}

	return exports, nil
}

// GenerateMarkdownReport renders the full analysis as a markdown document
func GenerateMarkdownReport(response *domain.AnalyzeResponse) string {
	lines := []string{
		"# Code Analysis Report\n",
		fmt.Sprintf("## Summary\n%s\n", response.Summary),
		"## Overall Metrics",
		fmt.Sprintf("- Files analyzed: %d", response.Metrics.FilesAnalyzed),
		fmt.Sprintf("- Total issues: %d", response.Metrics.TotalIssues),
		fmt.Sprintf("- High severity issues: %d", response.Metrics.HighSeverity),
		fmt.Sprintf("- Complexity violations: %d\n", response.Metrics.ComplexityViolations),
	}

	for _, file := range response.Files {
		lines = append(lines,
			fmt.Sprintf("## File: %s", file.Path),
			fmt.Sprintf("### Style Issues (%d)", len(file.StyleIssues)),
		)

		for _, issue := range file.StyleIssues {
			lines = append(lines, fmt.Sprintf("- Line %d: %s (%s)", issue.Line, issue.Message, issue.Code))
		}

		if len(file.Bugs) > 0 {
			lines = append(lines, fmt.Sprintf("\n### Potential Bugs (%d)", len(file.Bugs)))
			for _, bug := range file.Bugs {
				lines = append(lines, fmt.Sprintf("- Line %d: %s [%s]", bug.Line, bug.Message, bug.Severity))
			}
		}

		if len(file.Complexity.Functions) > 0 {
			lines = append(lines, "\n### Complexity Metrics")
			for _, fn := range file.Complexity.Functions {
				lines = append(lines, fmt.Sprintf("- %s (line %d): CCN = %d", fn.Name, fn.Line, fn.Complexity))
			}
			lines = append(lines, fmt.Sprintf("- Average CCN: %g", file.Complexity.Average))
		}

		if len(file.Suggestions) > 0 {
			lines = append(lines, fmt.Sprintf("\n### Refactoring Suggestions (%d)", len(file.Suggestions)))
			for _, suggestion := range file.Suggestions {
				lines = append(lines, fmt.Sprintf("- Line %d: %s", suggestion.Line, suggestion.Message))
			}
		}

		lines = append(lines, "")
	}

	if response.ToolStatus != "all tools available" {
		lines = append(lines, fmt.Sprintf("\n---\n*Note: %s*", response.ToolStatus))
	}

	return strings.Join(lines, "\n")
}
