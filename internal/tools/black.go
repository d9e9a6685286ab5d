package tools

import (
	"context"
	"os"
	"strings"

	"github.com/coderefinery/pyrefine/domain"
)

// BlackResult holds the outcome of a black run
type BlackResult struct {
	// Issue is set when black would change the file
	Issue *domain.StyleIssue

	// Content is the formatted content when formatting was applied,
	// otherwise the original
	Content string
}

// RunBlack checks the content against black. When the diff is
// non-empty a single low-severity issue is reported; with apply set
// the rewritten content is returned as well.
func (r *Runner) RunBlack(ctx context.Context, content string, apply bool) (*BlackResult, error) {
	result := &BlackResult{Content: content}

	err := withTempFile(content, func(path string) error {
		diff, runErr := r.run(ctx, ToolBlack, "--diff", path)
		if runErr != nil {
			return runErr
		}
		if strings.TrimSpace(diff) == "" {
			return nil
		}

		result.Issue = &domain.StyleIssue{
			Line:       1,
			Code:       "BLACK",
			Message:    "code formatting can be improved",
			Suggestion: "run black formatter",
			Severity:   domain.SeverityLow,
		}

		if !apply {
			return nil
		}
		if _, runErr := r.run(ctx, ToolBlack, path); runErr != nil {
			return runErr
		}
		formatted, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		result.Content = string(formatted)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
