package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/coderefinery/pyrefine/domain"
	"github.com/coderefinery/pyrefine/internal/parser"
)

var simpleAssignment = regexp.MustCompile(`^\s*(\w+)\s*=`)

// BugDetector finds likely bugs and unsafe patterns in Python source
type BugDetector struct{}

// NewBugDetector creates a new bug detector
func NewBugDetector() *BugDetector {
	return &BugDetector{}
}

// Detect runs all bug checks against the parsed file. When the parse
// failed, only the syntax finding is reported and the tree checks are
// skipped. Findings come out grouped by check, each group in line order.
func (d *BugDetector) Detect(result *parser.Result, content string) []domain.BugFinding {
	if result == nil || !result.OK() {
		return []domain.BugFinding{syntaxFinding(result)}
	}

	var bugs []domain.BugFinding
	bugs = append(bugs, d.checkMutableDefaults(result.AST)...)
	bugs = append(bugs, d.checkBareExcept(result.AST)...)
	bugs = append(bugs, d.checkUnusedVariables(content)...)
	bugs = append(bugs, d.checkSecurityIssues(content)...)
	return bugs
}

func syntaxFinding(result *parser.Result) domain.BugFinding {
	line := 1
	message := "Syntax error: invalid syntax"
	if result != nil && result.Failure != nil {
		line = result.Failure.Line
		message = fmt.Sprintf("Syntax error: %s", result.Failure.Message)
	}
	return domain.BugFinding{
		Line:     line,
		Category: "syntax",
		Message:  message,
		Severity: domain.SeverityHigh,
	}
}

// checkMutableDefaults reports list, dict, and set display literals
// used as parameter defaults
func (d *BugDetector) checkMutableDefaults(ast *parser.Node) []domain.BugFinding {
	var bugs []domain.BugFinding

	ast.Walk(func(n *parser.Node) bool {
		if !n.IsFunction() {
			return true
		}
		for _, param := range defaultParameters(n) {
			for _, value := range param.Children {
				if !value.IsMutableLiteral() {
					continue
				}
				bugs = append(bugs, domain.BugFinding{
					Line:     n.Location.StartLine,
					Category: "mutable_default",
					Message: fmt.Sprintf("Dangerous default value %s (mutable default argument)",
						mutableLiteralDisplay(value)),
					Severity: domain.SeverityHigh,
				})
			}
		}
		return true
	})

	return bugs
}

func defaultParameters(fn *parser.Node) []*parser.Node {
	var params []*parser.Node
	for _, child := range fn.Children {
		if child.Type != parser.NodeParameters {
			continue
		}
		for _, param := range child.Children {
			if param.Type == parser.NodeDefaultParameter {
				params = append(params, param)
			}
		}
	}
	return params
}

func mutableLiteralDisplay(n *parser.Node) string {
	switch n.Type {
	case parser.NodeListLiteral:
		return "[]"
	case parser.NodeDictLiteral:
		return "{}"
	}
	return "set()"
}

// checkBareExcept reports except clauses with no declared exception type
func (d *BugDetector) checkBareExcept(ast *parser.Node) []domain.BugFinding {
	var bugs []domain.BugFinding

	ast.Walk(func(n *parser.Node) bool {
		if n.IsBareExcept() {
			bugs = append(bugs, domain.BugFinding{
				Line:     n.Location.StartLine,
				Category: "exception_handling",
				Message:  "Bare except clause - catches all exceptions including KeyboardInterrupt",
				Severity: domain.SeverityMedium,
			})
		}
		return true
	})

	return bugs
}

// checkUnusedVariables is a textual approximation: a lowercase name
// assigned on a line and absent from all later lines is reported.
// Names appearing only in strings or comments later still count as
// used, which keeps false positives down at the cost of misses.
func (d *BugDetector) checkUnusedVariables(content string) []domain.BugFinding {
	var bugs []domain.BugFinding

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if !strings.Contains(line, "=") || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		match := simpleAssignment.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		name := match[1]
		if name == "_" || name == "__" || !isLowerIdentifier(name) {
			continue
		}
		remaining := strings.Join(lines[i+1:], "\n")
		if !strings.Contains(remaining, name) {
			bugs = append(bugs, domain.BugFinding{
				Line:     i + 1,
				Category: "unused_variable",
				Message:  fmt.Sprintf("Variable '%s' assigned but never used", name),
				Severity: domain.SeverityLow,
			})
		}
	}

	return bugs
}

// isLowerIdentifier mirrors str.islower: at least one cased character
// and no uppercase ones
func isLowerIdentifier(name string) bool {
	hasCased := false
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			return false
		}
		if r >= 'a' && r <= 'z' {
			hasCased = true
		}
	}
	return hasCased
}

// checkSecurityIssues reports eval and exec usage by substring, one
// finding per construct at its first occurrence
func (d *BugDetector) checkSecurityIssues(content string) []domain.BugFinding {
	var bugs []domain.BugFinding

	for _, construct := range []string{"eval(", "exec("} {
		if !strings.Contains(content, construct) {
			continue
		}
		bugs = append(bugs, domain.BugFinding{
			Line:     firstLineContaining(content, construct),
			Category: "security",
			Message: fmt.Sprintf("Use of %s() is dangerous and should be avoided",
				strings.TrimSuffix(construct, "(")),
			Severity: domain.SeverityHigh,
		})
	}

	return bugs
}

func firstLineContaining(content, substr string) int {
	for i, line := range strings.Split(content, "\n") {
		if strings.Contains(line, substr) {
			return i + 1
		}
	}
	return 1
}
