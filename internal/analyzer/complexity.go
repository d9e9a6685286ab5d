package analyzer

import (
	"math"

	"github.com/coderefinery/pyrefine/domain"
	"github.com/coderefinery/pyrefine/internal/parser"
)

// ComplexityAnalyzer computes cyclomatic complexity per function by
// counting decision points in the AST
type ComplexityAnalyzer struct{}

// NewComplexityAnalyzer creates a new complexity analyzer
func NewComplexityAnalyzer() *ComplexityAnalyzer {
	return &ComplexityAnalyzer{}
}

// Analyze computes per-function complexity for the given module AST.
// Nested function definitions are reported separately, and their
// decision points also count toward the enclosing function.
func (a *ComplexityAnalyzer) Analyze(ast *parser.Node) domain.ComplexityReport {
	report := domain.ComplexityReport{
		Functions: []domain.FunctionMetric{},
	}
	if ast == nil {
		return report
	}

	for _, fn := range ast.Functions() {
		report.Functions = append(report.Functions, domain.FunctionMetric{
			Name:       fn.Name,
			Complexity: complexityOf(fn),
			Line:       fn.Location.StartLine,
		})
	}

	report.Average = averageComplexity(report.Functions)
	return report
}

// complexityOf counts decision points across the entire function
// subtree, nested definitions included. Base complexity is 1.
func complexityOf(fn *parser.Node) int {
	complexity := 1

	fn.Walk(func(n *parser.Node) bool {
		switch n.Type {
		case parser.NodeIf, parser.NodeElifClause, parser.NodeFor, parser.NodeWhile:
			complexity++
		case parser.NodeExceptClause:
			complexity++
		case parser.NodeBoolOp:
			// tree-sitter nests chained and/or pairwise, so one node
			// per operator equals operands minus one
			complexity++
		case parser.NodeCompFor, parser.NodeCompIf:
			complexity++
		}
		return true
	})

	return complexity
}

// averageComplexity is the arithmetic mean rounded to 2 decimal places,
// 0.0 when there are no functions
func averageComplexity(functions []domain.FunctionMetric) float64 {
	if len(functions) == 0 {
		return 0.0
	}

	total := 0
	for _, fn := range functions {
		total += fn.Complexity
	}

	avg := float64(total) / float64(len(functions))
	return math.Round(avg*100) / 100
}

// CountViolations returns how many functions strictly exceed the
// threshold
func (a *ComplexityAnalyzer) CountViolations(report domain.ComplexityReport, threshold int) int {
	if threshold <= 0 {
		threshold = domain.DefaultComplexityThreshold
	}
	violations := 0
	for _, fn := range report.Functions {
		if fn.Complexity > threshold {
			violations++
		}
	}
	return violations
}
