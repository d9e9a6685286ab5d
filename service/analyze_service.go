package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/coderefinery/pyrefine/domain"
	"github.com/coderefinery/pyrefine/internal/analyzer"
	"github.com/coderefinery/pyrefine/internal/config"
	"github.com/coderefinery/pyrefine/internal/parser"
	"github.com/coderefinery/pyrefine/internal/tools"
	"github.com/coderefinery/pyrefine/internal/version"
)

// AnalyzeServiceImpl implements the full analysis pipeline: style,
// formatting, complexity, and bug detection over a set of Python files
type AnalyzeServiceImpl struct {
	cfg      *config.Config
	runner   *tools.Runner
	executor *ParallelExecutorImpl
	progress domain.ProgressManager

	style      *analyzer.StyleAnalyzer
	formatting *analyzer.FormattingAnalyzer
	complexity *analyzer.ComplexityAnalyzer
	bugs       *analyzer.BugDetector
	metrics    *analyzer.MetricsAnalyzer
	inspector  *analyzer.Inspector

	probeOnce sync.Once
	available tools.Availability
}

// NewAnalyzeService creates a new analysis service
func NewAnalyzeService(cfg *config.Config, progress domain.ProgressManager) *AnalyzeServiceImpl {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	timeout := time.Duration(cfg.Tools.TimeoutSeconds) * time.Second

	return &AnalyzeServiceImpl{
		cfg:        cfg,
		runner:     tools.NewRunner(timeout),
		executor:   NewParallelExecutorWithProgress(&cfg.Performance, progress),
		progress:   progress,
		style:      analyzer.NewStyleAnalyzer(),
		formatting: analyzer.NewFormattingAnalyzer(),
		complexity: analyzer.NewComplexityAnalyzer(),
		bugs:       analyzer.NewBugDetector(),
		metrics:    analyzer.NewMetricsAnalyzer(),
		inspector:  analyzer.NewInspector(),
	}
}

// availability probes the external tools once per service lifetime and
// masks tools the configuration disables
func (s *AnalyzeServiceImpl) availability(ctx context.Context) tools.Availability {
	s.probeOnce.Do(func() {
		probed := s.runner.Probe(ctx)
		s.available = tools.Availability{
			Flake8: probed.Flake8 && s.cfg.Tools.UseFlake8,
			Black:  probed.Black && s.cfg.Tools.UseBlack,
			Radon:  probed.Radon && s.cfg.Tools.UseRadon,
		}
	})
	return s.available
}

// fileTask adapts one file analysis to the executor's task interface
type fileTask struct {
	service *AnalyzeServiceImpl
	file    domain.SourceFile
	req     domain.AnalyzeRequest
	result  *domain.FileAnalysis
	err     error
}

func (t *fileTask) Name() string    { return t.file.Path }
func (t *fileTask) IsEnabled() bool { return true }

func (t *fileTask) Execute(ctx context.Context) (interface{}, error) {
	t.result, t.err = t.service.AnalyzeFile(ctx, t.file, t.req)
	return t.result, t.err
}

// Analyze runs the full pipeline over the request's files. Files not
// tagged as python are skipped. Results come back in input order
// regardless of completion order.
func (s *AnalyzeServiceImpl) Analyze(ctx context.Context, req domain.AnalyzeRequest) (*domain.AnalyzeResponse, error) {
	if req.ComplexityThreshold <= 0 {
		req.ComplexityThreshold = domain.DefaultComplexityThreshold
	}

	available := s.availability(ctx)

	tasks := make([]domain.ExecutableTask, 0, len(req.Files))
	for _, file := range req.Files {
		if file.Language != domain.LanguagePython {
			continue
		}
		tasks = append(tasks, &fileTask{service: s, file: file, req: req})
	}

	var warnings []string
	if err := s.executor.Execute(ctx, tasks); err != nil {
		var aggregated *AggregatedError
		if errors.As(err, &aggregated) {
			for _, taskErr := range aggregated.Errors {
				warnings = append(warnings, taskErr.Error())
			}
		} else {
			return nil, domain.NewAnalysisError("analysis failed", err)
		}
	}

	response := &domain.AnalyzeResponse{
		Files:       []domain.FileAnalysis{},
		ToolStatus:  available.Status(),
		Warnings:    warnings,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Version:     version.GetVersion(),
	}

	metrics := domain.OverallMetrics{}
	for _, task := range tasks {
		ft := task.(*fileTask)
		if ft.err != nil || ft.result == nil {
			continue
		}
		fa := *ft.result
		response.Files = append(response.Files, fa)

		metrics.FilesAnalyzed++
		metrics.TotalIssues += len(fa.StyleIssues) + len(fa.Bugs)
		for _, issue := range fa.StyleIssues {
			if issue.Severity == domain.SeverityHigh {
				metrics.HighSeverity++
			}
		}
		for _, bug := range fa.Bugs {
			if bug.Severity == domain.SeverityHigh {
				metrics.HighSeverity++
			}
		}
		metrics.ComplexityViolations += s.complexity.CountViolations(fa.Complexity, req.ComplexityThreshold)
	}

	response.Metrics = metrics
	response.Summary = generateSummary(metrics)

	if len(req.ExportFormats) > 0 {
		exports, err := GenerateExports(response, req.ExportFormats)
		if err != nil {
			return nil, err
		}
		response.Exports = exports
	}

	return response, nil
}

// AnalyzeFile runs the per-file pipeline: style, formatting,
// complexity, bug detection, metrics, and snippets
func (s *AnalyzeServiceImpl) AnalyzeFile(ctx context.Context, file domain.SourceFile, req domain.AnalyzeRequest) (*domain.FileAnalysis, error) {
	if file.Language != domain.LanguagePython {
		return nil, domain.NewValidationError(fmt.Sprintf("unsupported language: %s", file.Language))
	}

	available := s.availability(ctx)
	content := file.Content

	p := parser.NewParser()
	parsed, err := p.ParseString(ctx, file.Path, content)
	if err != nil {
		return nil, domain.NewParseError(file.Path, err)
	}

	analysis := &domain.FileAnalysis{
		Path:     file.Path,
		Language: domain.LanguagePython,
	}

	// Style: flake8 when available, heuristics otherwise
	analysis.StyleIssues = s.analyzeStyle(ctx, content, available)

	// Formatting: black when available, indentation heuristics otherwise
	formatted, formattingIssues := s.analyzeFormatting(ctx, content, req.ApplyFormatting, available)
	analysis.StyleIssues = append(analysis.StyleIssues, formattingIssues...)

	// Complexity: radon when available, AST decision points otherwise.
	// Files that fail to parse report an empty complexity section.
	analysis.Complexity = s.analyzeComplexity(ctx, content, parsed, available)

	// Bug detection
	analysis.Bugs = s.bugs.Detect(parsed, content)

	// Metrics and refactoring suggestions skip unparseable files
	if parsed.OK() {
		analysis.Metrics = s.metrics.Analyze(content, parsed.AST)
		analysis.Suggestions = s.inspector.Analyze(content, parsed.AST)
	} else {
		analysis.Metrics = s.metrics.Analyze(content, nil)
	}

	analysis.BeforeSnippet = analyzer.ExtractSnippet(content)
	if formatted != content {
		analysis.AfterSnippet = analyzer.ExtractSnippet(formatted)
		analysis.Patch = analyzer.GeneratePatch(content, formatted, file.Path)
	} else {
		analysis.AfterSnippet = analysis.BeforeSnippet
	}

	return analysis, nil
}

func (s *AnalyzeServiceImpl) analyzeStyle(ctx context.Context, content string, available tools.Availability) []domain.StyleIssue {
	if available.Flake8 {
		issues, err := s.runner.RunFlake8(ctx, content)
		if err == nil {
			return issues
		}
	}
	return s.style.Analyze(content)
}

func (s *AnalyzeServiceImpl) analyzeFormatting(ctx context.Context, content string, apply bool, available tools.Availability) (string, []domain.StyleIssue) {
	if available.Black {
		result, err := s.runner.RunBlack(ctx, content, apply)
		if err == nil {
			if result.Issue != nil {
				return result.Content, []domain.StyleIssue{*result.Issue}
			}
			return result.Content, nil
		}
	}
	return content, s.formatting.Analyze(content)
}

func (s *AnalyzeServiceImpl) analyzeComplexity(ctx context.Context, content string, parsed *parser.Result, available tools.Availability) domain.ComplexityReport {
	if available.Radon {
		report, err := s.runner.RunRadon(ctx, content)
		if err == nil {
			return report
		}
	}
	if !parsed.OK() {
		return domain.ComplexityReport{Functions: []domain.FunctionMetric{}}
	}
	return s.complexity.Analyze(parsed.AST)
}

// generateSummary builds the executive summary sentence list
func generateSummary(metrics domain.OverallMetrics) string {
	parts := []string{
		fmt.Sprintf("Analyzed %d Python files", metrics.FilesAnalyzed),
		fmt.Sprintf("Found %d total issues", metrics.TotalIssues),
	}

	if metrics.HighSeverity > 0 {
		parts = append(parts, fmt.Sprintf("%d high-severity issues require immediate attention", metrics.HighSeverity))
	}
	if metrics.ComplexityViolations > 0 {
		parts = append(parts, fmt.Sprintf("%d functions exceed complexity threshold", metrics.ComplexityViolations))
	}
	if metrics.TotalIssues == 0 {
		parts = append(parts, "Code quality looks good!")
	}

	return strings.Join(parts, ". ") + "."
}
