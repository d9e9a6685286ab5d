package analyzer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/coderefinery/pyrefine/domain"
)

// MaxLineLength is the PEP8 line length limit
const MaxLineLength = 79

var (
	multiSpaceAfterComma = regexp.MustCompile(`,\s{2,}`)
	tightOperator        = regexp.MustCompile(`\w[=+\-*/]\w`)
)

// styleSuggestions maps issue codes reported by external tools to fix
// suggestions
var styleSuggestions = map[string]string{
	"E501": "break line into multiple lines or increase line length limit",
	"E225": "add spaces around operators",
	"E241": "use single space after comma",
	"W291": "remove trailing whitespace",
	"E111": "use 4-space indentation",
	"E301": "add blank line before function/class definition",
}

// SuggestionFor returns the fix suggestion for a style issue code
func SuggestionFor(code string) string {
	if s, ok := styleSuggestions[code]; ok {
		return s
	}
	return "refer to PEP8 style guide"
}

// SeverityFor maps a style issue code to its severity. Syntax errors
// are high, pure whitespace issues low, everything else medium.
func SeverityFor(code string) domain.Severity {
	switch code {
	case "E901", "E999":
		return domain.SeverityHigh
	case "W291", "W292", "W293":
		return domain.SeverityLow
	}
	return domain.SeverityMedium
}

// StyleAnalyzer finds PEP8-style issues by scanning source lines
type StyleAnalyzer struct{}

// NewStyleAnalyzer creates a new style analyzer
func NewStyleAnalyzer() *StyleAnalyzer {
	return &StyleAnalyzer{}
}

// Analyze scans the content line by line and reports style issues in
// line order. Checks per line run in a fixed order so repeated runs
// produce identical output.
func (a *StyleAnalyzer) Analyze(content string) []domain.StyleIssue {
	var issues []domain.StyleIssue

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lineNo := i + 1

		if width := utf8.RuneCountInString(line); width > MaxLineLength {
			issues = append(issues, newStyleIssue(lineNo, "E501",
				fmt.Sprintf("line too long (%d > %d characters)", width, MaxLineLength),
				"break line into multiple lines"))
		}

		if multiSpaceAfterComma.MatchString(line) {
			issues = append(issues, newStyleIssue(lineNo, "E241",
				"multiple spaces after ','",
				"use single space after comma"))
		}

		// def lines legitimately contain name=default
		if tightOperator.MatchString(line) && !strings.Contains(line, "def ") {
			issues = append(issues, newStyleIssue(lineNo, "E225",
				"missing whitespace around operator",
				"add spaces around operators"))
		}

		if strings.HasSuffix(line, " ") || strings.HasSuffix(line, "\t") {
			issues = append(issues, newStyleIssue(lineNo, "W291",
				"trailing whitespace",
				"remove trailing whitespace"))
		}
	}

	return issues
}

func newStyleIssue(line int, code, message, suggestion string) domain.StyleIssue {
	return domain.StyleIssue{
		Line:       line,
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Severity:   SeverityFor(code),
	}
}
