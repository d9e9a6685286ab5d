package service

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/coderefinery/pyrefine/domain"
	"gopkg.in/yaml.v3"
)

// OutputFormatterImpl renders analysis responses in the supported
// output formats. Formatting never alters findings.
type OutputFormatterImpl struct {
	showDetails bool
}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter(showDetails bool) *OutputFormatterImpl {
	return &OutputFormatterImpl{showDetails: showDetails}
}

// Write renders the response in the requested format
func (f *OutputFormatterImpl) Write(response *domain.AnalyzeResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return f.writeText(response, writer)
	case domain.OutputFormatJSON:
		return f.writeJSON(response, writer)
	case domain.OutputFormatYAML:
		return f.writeYAML(response, writer)
	case domain.OutputFormatMarkdown:
		_, err := io.WriteString(writer, GenerateMarkdownReport(response))
		return err
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *OutputFormatterImpl) writeJSON(response *domain.AnalyzeResponse, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return domain.NewOutputError("failed to encode JSON", err)
	}
	return nil
}

func (f *OutputFormatterImpl) writeYAML(response *domain.AnalyzeResponse, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	defer encoder.Close()
	if err := encoder.Encode(response); err != nil {
		return domain.NewOutputError("failed to encode YAML", err)
	}
	return nil
}

func (f *OutputFormatterImpl) writeText(response *domain.AnalyzeResponse, writer io.Writer) error {
	var sb strings.Builder

	sb.WriteString("Code Analysis Report\n")
	sb.WriteString("====================\n\n")
	sb.WriteString(response.Summary)
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Files analyzed:        %d\n", response.Metrics.FilesAnalyzed))
	sb.WriteString(fmt.Sprintf("Total issues:          %d\n", response.Metrics.TotalIssues))
	sb.WriteString(fmt.Sprintf("High severity:         %d\n", response.Metrics.HighSeverity))
	sb.WriteString(fmt.Sprintf("Complexity violations: %d\n", response.Metrics.ComplexityViolations))
	sb.WriteString(fmt.Sprintf("Tool status:           %s\n", response.ToolStatus))

	if f.showDetails {
		for _, file := range response.Files {
			f.writeFileDetails(&sb, file)
		}
	}

	if len(response.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, warning := range response.Warnings {
			sb.WriteString("  - " + warning + "\n")
		}
	}

	_, err := io.WriteString(writer, sb.String())
	if err != nil {
		return domain.NewOutputError("failed to write text output", err)
	}
	return nil
}

func (f *OutputFormatterImpl) writeFileDetails(sb *strings.Builder, file domain.FileAnalysis) {
	sb.WriteString(fmt.Sprintf("\n%s\n", file.Path))
	sb.WriteString(strings.Repeat("-", len(file.Path)) + "\n")

	if len(file.StyleIssues) > 0 {
		sb.WriteString(fmt.Sprintf("  Style issues (%d):\n", len(file.StyleIssues)))
		for _, issue := range sortedIssues(file.StyleIssues) {
			sb.WriteString(fmt.Sprintf("    line %d: [%s] %s\n", issue.Line, issue.Code, issue.Message))
		}
	}

	if len(file.Bugs) > 0 {
		sb.WriteString(fmt.Sprintf("  Potential bugs (%d):\n", len(file.Bugs)))
		for _, bug := range file.Bugs {
			sb.WriteString(fmt.Sprintf("    line %d: %s [%s]\n", bug.Line, bug.Message, bug.Severity))
		}
	}

	if len(file.Complexity.Functions) > 0 {
		sb.WriteString("  Complexity:\n")
		for _, fn := range file.Complexity.Functions {
			sb.WriteString(fmt.Sprintf("    %s (line %d): CCN = %d\n", fn.Name, fn.Line, fn.Complexity))
		}
		sb.WriteString(fmt.Sprintf("    average: %.2f\n", file.Complexity.Average))
	}

	if len(file.Suggestions) > 0 {
		sb.WriteString(fmt.Sprintf("  Suggestions (%d):\n", len(file.Suggestions)))
		for _, suggestion := range file.Suggestions {
			sb.WriteString(fmt.Sprintf("    line %d: %s\n", suggestion.Line, suggestion.Message))
		}
	}
}

// sortedIssues orders issues by line, then code, for stable display
func sortedIssues(issues []domain.StyleIssue) []domain.StyleIssue {
	out := make([]domain.StyleIssue, len(issues))
	copy(out, issues)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Code < out[j].Code
	})
	return out
}
