package domain

import (
	"context"
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText     OutputFormat = "text"
	OutputFormatJSON     OutputFormat = "json"
	OutputFormatYAML     OutputFormat = "yaml"
	OutputFormatMarkdown OutputFormat = "markdown"
)

// ExportFormat represents a derived report artifact format
type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatJSON     ExportFormat = "json"
)

// Severity represents the ordinal severity of a finding
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// LanguagePython is the language tag for entries this analyzer accepts.
// Entries carrying any other tag are silently skipped.
const LanguagePython = "python"

// SourceFile is one input unit: a path, a language tag, and the file content.
// It is owned by the caller and never mutated during analysis.
type SourceFile struct {
	Path     string `json:"path"`
	Language string `json:"language"`
	Content  string `json:"content"`
}

// StyleIssue is a single style or formatting finding
type StyleIssue struct {
	Line       int      `json:"line"`
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
	Severity   Severity `json:"severity"`
}

// BugFinding is a single likely-bug finding
type BugFinding struct {
	Line     int      `json:"line"`
	Category string   `json:"category"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// FunctionMetric holds the cyclomatic complexity of one function definition.
// Nested definitions get their own metric.
type FunctionMetric struct {
	Name       string `json:"name"`
	Complexity int    `json:"complexity"`
	Line       int    `json:"line"`
}

// ComplexityReport aggregates per-function complexity for one file
type ComplexityReport struct {
	Functions []FunctionMetric `json:"functions"`

	// Average is the arithmetic mean of all function complexities,
	// rounded to 2 decimal places. 0.0 when the file has no functions
	// or failed to parse.
	Average float64 `json:"average"`
}

// CodeMetrics holds basic line-level metrics for one file
type CodeMetrics struct {
	TotalLines        int     `json:"total_lines"`
	CodeLines         int     `json:"code_lines"`
	CommentLines      int     `json:"comment_lines"`
	BlankLines        int     `json:"blank_lines"`
	CodePercentage    float64 `json:"code_percentage"`
	CommentPercentage float64 `json:"comment_percentage"`

	// MaintainabilityIndex is a 0-100 heuristic score; higher is better.
	MaintainabilityIndex float64 `json:"maintainability_index"`
}

// RefactorSuggestion is an advisory finding about code organization
type RefactorSuggestion struct {
	Type     string   `json:"type"` // parameter_list, documentation, class_size, file_size
	Target   string   `json:"target,omitempty"`
	Line     int      `json:"line"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// FileAnalysis is the complete analysis result for a single file.
// It is fully populated before being folded into the overall result and
// immutable afterwards.
type FileAnalysis struct {
	Path     string `json:"path"`
	Language string `json:"language"`

	StyleIssues []StyleIssue     `json:"style_issues"`
	Bugs        []BugFinding     `json:"bugs"`
	Complexity  ComplexityReport `json:"complexity"`

	Metrics     CodeMetrics          `json:"metrics"`
	Suggestions []RefactorSuggestion `json:"suggestions,omitempty"`

	BeforeSnippet string `json:"before_snippet"`
	AfterSnippet  string `json:"after_snippet"`

	// Patch is a unified diff between the original and the rewritten
	// content. Empty when formatting left the file unchanged.
	Patch string `json:"patch,omitempty"`
}

// OverallMetrics are the aggregate counts across all analyzed files
type OverallMetrics struct {
	TotalIssues          int `json:"total_issues"`
	HighSeverity         int `json:"high_severity"`
	FilesAnalyzed        int `json:"files_analyzed"`
	ComplexityViolations int `json:"complexity_violations"`
}

// AnalyzeRequest represents a request for code analysis
type AnalyzeRequest struct {
	// Files to analyze; entries not tagged as python are skipped
	Files []SourceFile

	// ComplexityThreshold marks a function as a violation when its
	// complexity strictly exceeds it. Defaults to 10 when <= 0.
	ComplexityThreshold int

	// ApplyFormatting rewrites content through the formatter when the
	// formatting tool is available
	ApplyFormatting bool

	// ExportFormats selects derived artifacts to generate
	ExportFormats []ExportFormat

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer

	// ConfigPath is an optional path to a configuration file
	ConfigPath string
}

// DefaultComplexityThreshold is used when a request does not set one
const DefaultComplexityThreshold = 10

// AnalyzeResponse is the overall result of one analysis run
type AnalyzeResponse struct {
	Summary string         `json:"summary"`
	Files   []FileAnalysis `json:"files"`
	Metrics OverallMetrics `json:"overall_metrics"`

	// ToolStatus names any missing external tools; analysis proceeds via
	// heuristics regardless
	ToolStatus string `json:"tool_status"`

	// Exports holds derived artifacts keyed by format name
	Exports map[ExportFormat]string `json:"export,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty"`

	GeneratedAt string `json:"generated_at"`
	Version     string `json:"version"`
}

// AnalyzeService defines the core business logic for code analysis
type AnalyzeService interface {
	// Analyze runs the full pipeline over the request's files
	Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error)

	// AnalyzeFile analyzes a single source file
	AnalyzeFile(ctx context.Context, file SourceFile, req AnalyzeRequest) (*FileAnalysis, error)
}

// OutputFormatter defines the interface for rendering analysis results.
// Formatters only format; they never alter findings.
type OutputFormatter interface {
	Write(response *AnalyzeResponse, format OutputFormat, writer io.Writer) error
}

// ConfigurationLoader defines the interface for loading configuration
type ConfigurationLoader interface {
	LoadConfig(path string) (*AnalyzeRequest, error)
	LoadDefaultConfig() *AnalyzeRequest
	MergeConfig(base *AnalyzeRequest, override *AnalyzeRequest) *AnalyzeRequest
}

// ProgressManager creates progress tasks for long-running operations
type ProgressManager interface {
	StartTask(description string, total int) TaskProgress
	IsInteractive() bool
	Close()
}

// TaskProgress tracks progress of a single task
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}

// ExecutableTask is a unit of work the parallel executor can run
type ExecutableTask interface {
	Name() string
	IsEnabled() bool
	Execute(ctx context.Context) (interface{}, error)
}

// FileReader defines file collection and reading operations
type FileReader interface {
	CollectPythonFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)
	ReadFile(path string) ([]byte, error)
	IsValidPythonFile(path string) bool
	FileExists(path string) (bool, error)
}
