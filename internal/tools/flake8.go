package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/coderefinery/pyrefine/domain"
	"github.com/coderefinery/pyrefine/internal/analyzer"
)

// flake8Format makes each finding machine-splittable on colons
const flake8Format = "--format=%(row)d:%(col)d:%(code)s:%(text)s"

// RunFlake8 lints the content with flake8 and maps the findings to
// style issues. An execution failure returns an error so the caller
// can fall back to heuristics.
func (r *Runner) RunFlake8(ctx context.Context, content string) ([]domain.StyleIssue, error) {
	var output string
	err := withTempFile(content, func(path string) error {
		out, runErr := r.run(ctx, ToolFlake8, flake8Format, path)
		output = out
		return runErr
	})
	if err != nil {
		return nil, err
	}
	return parseFlake8Output(output)
}

// parseFlake8Output parses row:col:code:text lines. Lines without
// enough fields are skipped; a line with four fields but a non-numeric
// row means the output format is broken and the whole result is
// rejected so the caller falls back to heuristics.
func parseFlake8Output(output string) ([]domain.StyleIssue, error) {
	var issues []domain.StyleIssue

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ":", 4)
		if len(parts) < 4 {
			continue
		}
		row, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("malformed flake8 output line: %q", line)
		}
		code := parts[2]
		issues = append(issues, domain.StyleIssue{
			Line:       row,
			Code:       code,
			Message:    strings.TrimSpace(parts[3]),
			Suggestion: analyzer.SuggestionFor(code),
			Severity:   analyzer.SeverityFor(code),
		})
	}

	return issues, nil
}
