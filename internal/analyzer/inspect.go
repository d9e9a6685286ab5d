package analyzer

import (
	"fmt"
	"strings"

	"github.com/coderefinery/pyrefine/domain"
	"github.com/coderefinery/pyrefine/internal/parser"
)

// Suggestion type tags
const (
	SuggestionParameterList = "parameter_list"
	SuggestionDocumentation = "documentation"
	SuggestionClassSize     = "class_size"
	SuggestionFileSize      = "file_size"
)

// Organization limits beyond which refactoring is suggested
const (
	maxParameters   = 5
	maxClassMethods = 20
	maxFileLines    = 500
)

// Inspector suggests refactoring opportunities from code organization
type Inspector struct{}

// NewInspector creates a new inspector
func NewInspector() *Inspector {
	return &Inspector{}
}

// Analyze walks the AST and reports advisory suggestions: long
// parameter lists, missing docstrings, oversized classes, and
// oversized files. Nothing is reported for unparseable files.
func (ins *Inspector) Analyze(content string, ast *parser.Node) []domain.RefactorSuggestion {
	if ast == nil {
		return nil
	}

	var suggestions []domain.RefactorSuggestion

	for _, fn := range ast.Functions() {
		if n := parameterCount(fn); n > maxParameters {
			suggestions = append(suggestions, domain.RefactorSuggestion{
				Type:   SuggestionParameterList,
				Target: fn.Name,
				Line:   fn.Location.StartLine,
				Message: fmt.Sprintf("Function '%s' has %d parameters. Consider using a configuration object or reducing parameters.",
					fn.Name, n),
				Severity: domain.SeverityMedium,
			})
		}
		if !hasDocstring(fn) {
			suggestions = append(suggestions, domain.RefactorSuggestion{
				Type:   SuggestionDocumentation,
				Target: fn.Name,
				Line:   fn.Location.StartLine,
				Message: fmt.Sprintf("Function '%s' lacks a docstring. Consider adding documentation.",
					fn.Name),
				Severity: domain.SeverityLow,
			})
		}
	}

	ast.Walk(func(n *parser.Node) bool {
		if n.Type != parser.NodeClassDef {
			return true
		}
		if !hasDocstring(n) {
			suggestions = append(suggestions, domain.RefactorSuggestion{
				Type:   SuggestionDocumentation,
				Target: n.Name,
				Line:   n.Location.StartLine,
				Message: fmt.Sprintf("Class '%s' lacks a docstring. Consider adding documentation.",
					n.Name),
				Severity: domain.SeverityLow,
			})
		}
		if methods := methodCount(n); methods > maxClassMethods {
			suggestions = append(suggestions, domain.RefactorSuggestion{
				Type:   SuggestionClassSize,
				Target: n.Name,
				Line:   n.Location.StartLine,
				Message: fmt.Sprintf("Class '%s' has %d methods. Consider splitting into smaller classes.",
					n.Name, methods),
				Severity: domain.SeverityMedium,
			})
		}
		return true
	})

	if lines := len(strings.Split(content, "\n")); lines > maxFileLines {
		suggestions = append(suggestions, domain.RefactorSuggestion{
			Type:     SuggestionFileSize,
			Line:     1,
			Message:  fmt.Sprintf("File has %d lines. Consider splitting into multiple modules.", lines),
			Severity: domain.SeverityMedium,
		})
	}

	return suggestions
}

func parameterCount(fn *parser.Node) int {
	for _, child := range fn.Children {
		if child.Type == parser.NodeParameters {
			return len(child.Children)
		}
	}
	return 0
}

// hasDocstring reports whether the definition's body starts with a
// string expression
func hasDocstring(def *parser.Node) bool {
	for _, child := range def.Children {
		if child.Type != parser.NodeBlock {
			continue
		}
		if len(child.Children) == 0 {
			return false
		}
		first := child.Children[0]
		if first.Type != parser.NodeExpression || len(first.Children) == 0 {
			return false
		}
		return first.Children[0].Type == parser.NodeString
	}
	return false
}

// methodCount counts function definitions in the class body, looking
// through decorators
func methodCount(class *parser.Node) int {
	count := 0
	for _, child := range class.Children {
		if child.Type != parser.NodeBlock {
			continue
		}
		for _, stmt := range child.Children {
			switch stmt.Type {
			case parser.NodeFunctionDef:
				count++
			case parser.NodeDecorated:
				for _, inner := range stmt.Children {
					if inner.Type == parser.NodeFunctionDef {
						count++
					}
				}
			}
		}
	}
	return count
}
