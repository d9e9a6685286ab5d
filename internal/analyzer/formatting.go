package analyzer

import (
	"strings"

	"github.com/coderefinery/pyrefine/domain"
)

// FormattingAnalyzer finds indentation deviations without invoking an
// external formatter
type FormattingAnalyzer struct{}

// NewFormattingAnalyzer creates a new formatting analyzer
func NewFormattingAnalyzer() *FormattingAnalyzer {
	return &FormattingAnalyzer{}
}

// Analyze reports lines whose leading indentation is not a multiple of
// four spaces. Blank lines are skipped; two, six, and eight space
// indents are tolerated as continuation styles.
func (a *FormattingAnalyzer) Analyze(content string) []domain.StyleIssue {
	var issues []domain.StyleIssue

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.HasPrefix(line, " ") || strings.HasPrefix(line, "    ") {
			continue
		}
		if hasAnyIndent(line, 2, 6, 8) {
			continue
		}
		issues = append(issues, domain.StyleIssue{
			Line:       i + 1,
			Code:       "E111",
			Message:    "indentation is not a multiple of four",
			Suggestion: SuggestionFor("E111"),
			Severity:   SeverityFor("E111"),
		})
	}

	return issues
}

func hasAnyIndent(line string, widths ...int) bool {
	for _, w := range widths {
		if strings.HasPrefix(line, strings.Repeat(" ", w)) {
			return true
		}
	}
	return false
}
