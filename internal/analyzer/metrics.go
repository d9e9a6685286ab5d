package analyzer

import (
	"math"
	"strings"

	"github.com/coderefinery/pyrefine/domain"
	"github.com/coderefinery/pyrefine/internal/parser"
)

// MetricsAnalyzer computes line-level metrics and a maintainability
// score for a file
type MetricsAnalyzer struct{}

// NewMetricsAnalyzer creates a new metrics analyzer
func NewMetricsAnalyzer() *MetricsAnalyzer {
	return &MetricsAnalyzer{}
}

// Analyze classifies each line as code, comment, or blank and derives
// percentages. Lines inside triple-quoted strings count as neither
// code nor comments.
func (a *MetricsAnalyzer) Analyze(content string, ast *parser.Node) domain.CodeMetrics {
	lines := strings.Split(content, "\n")

	metrics := domain.CodeMetrics{
		TotalLines: len(lines),
	}

	inString := false
	delimiter := ""

	for _, line := range lines {
		stripped := strings.TrimSpace(line)

		switch {
		case stripped == "":
			metrics.BlankLines++
		case strings.HasPrefix(stripped, "#"):
			metrics.CommentLines++
		case !inString:
			switch {
			case strings.Contains(line, `"""`):
				delimiter = `"""`
				inString = strings.Count(line, `"""`) < 2
			case strings.Contains(line, "'''"):
				delimiter = "'''"
				inString = strings.Count(line, "'''") < 2
			default:
				metrics.CodeLines++
			}
		default:
			if strings.Contains(line, delimiter) {
				inString = false
				delimiter = ""
			}
		}
	}

	if metrics.TotalLines > 0 {
		metrics.CodePercentage = roundOne(float64(metrics.CodeLines) / float64(metrics.TotalLines) * 100)
		metrics.CommentPercentage = roundOne(float64(metrics.CommentLines) / float64(metrics.TotalLines) * 100)
	}

	metrics.MaintainabilityIndex = maintainabilityIndex(content, ast)
	return metrics
}

// maintainabilityIndex is a 0-100 heuristic score. Large files are
// penalized, functions and classes rewarded, and a comment ratio above
// ten percent earns a bonus. Unparseable files score 0.
func maintainabilityIndex(content string, ast *parser.Node) float64 {
	if ast == nil {
		return 0.0
	}

	lines := strings.Split(content, "\n")
	nonBlank := 0
	commentLines := 0
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		nonBlank++
		if strings.HasPrefix(stripped, "#") {
			commentLines++
		}
	}

	if nonBlank == 0 {
		return 100.0
	}

	functions := 0
	classes := 0
	ast.Walk(func(n *parser.Node) bool {
		switch n.Type {
		case parser.NodeFunctionDef:
			functions++
		case parser.NodeClassDef:
			classes++
		}
		return true
	})

	score := 100.0
	if nonBlank > 500 {
		score -= float64(nonBlank-500) / 50
	}
	if functions > 0 {
		score += math.Min(float64(functions)*2, 20)
	}
	if classes > 0 {
		score += math.Min(float64(classes)*5, 25)
	}
	if float64(commentLines)/float64(nonBlank) > 0.1 {
		score += 10
	}

	return math.Max(0, math.Min(100, score))
}

func roundOne(v float64) float64 {
	return math.Round(v*10) / 10
}
