package domain

import (
	"errors"
	"testing"
)

// Error tests

func TestDomainError_Error(t *testing.T) {
	// Without cause
	err := DomainError{
		Code:    "TEST_ERROR",
		Message: "Test message",
	}
	expected := "[TEST_ERROR] Test message"
	if err.Error() != expected {
		t.Errorf("Expected '%s', got '%s'", expected, err.Error())
	}

	// With cause
	cause := errors.New("underlying error")
	errWithCause := DomainError{
		Code:    "TEST_ERROR",
		Message: "Test message",
		Cause:   cause,
	}
	expectedWithCause := "[TEST_ERROR] Test message: underlying error"
	if errWithCause.Error() != expectedWithCause {
		t.Errorf("Expected '%s', got '%s'", expectedWithCause, errWithCause.Error())
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := DomainError{
		Code:    "TEST_ERROR",
		Message: "Test message",
		Cause:   cause,
	}

	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	errNoCause := DomainError{
		Code:    "TEST_ERROR",
		Message: "Test message",
	}
	if errNoCause.Unwrap() != nil {
		t.Error("Unwrap should return nil when no cause")
	}
}

func TestNewDomainError(t *testing.T) {
	cause := errors.New("cause")
	err := NewDomainError("CODE", "message", cause)

	domainErr, ok := err.(DomainError)
	if !ok {
		t.Fatal("Should return DomainError type")
	}
	if domainErr.Code != "CODE" {
		t.Errorf("Expected code 'CODE', got '%s'", domainErr.Code)
	}
	if domainErr.Message != "message" {
		t.Errorf("Expected message 'message', got '%s'", domainErr.Message)
	}
	if domainErr.Cause != cause {
		t.Error("Cause should be set")
	}
}

func TestNewInvalidInputError(t *testing.T) {
	cause := errors.New("invalid")
	err := NewInvalidInputError("bad input", cause)

	domainErr := err.(DomainError)
	if domainErr.Code != ErrCodeInvalidInput {
		t.Errorf("Expected code '%s', got '%s'", ErrCodeInvalidInput, domainErr.Code)
	}
}

func TestNewFileNotFoundError(t *testing.T) {
	err := NewFileNotFoundError("/path/to/file", nil)

	domainErr := err.(DomainError)
	if domainErr.Code != ErrCodeFileNotFound {
		t.Errorf("Expected code '%s', got '%s'", ErrCodeFileNotFound, domainErr.Code)
	}
	if domainErr.Message != "file not found: /path/to/file" {
		t.Errorf("Unexpected message: %s", domainErr.Message)
	}
}

func TestNewAnalysisError(t *testing.T) {
	err := NewAnalysisError("analysis failed", nil)

	domainErr := err.(DomainError)
	if domainErr.Code != ErrCodeAnalysisError {
		t.Errorf("Expected code '%s', got '%s'", ErrCodeAnalysisError, domainErr.Code)
	}
}

func TestNewUnsupportedFormatError(t *testing.T) {
	err := NewUnsupportedFormatError("xml")

	domainErr := err.(DomainError)
	if domainErr.Code != ErrCodeUnsupportedFormat {
		t.Errorf("Expected code '%s', got '%s'", ErrCodeUnsupportedFormat, domainErr.Code)
	}
	if domainErr.Message != "unsupported format: xml" {
		t.Errorf("Unexpected message: %s", domainErr.Message)
	}
}

// Severity tests

func TestSeverity_Constants(t *testing.T) {
	severities := map[Severity]string{
		SeverityLow:    "low",
		SeverityMedium: "medium",
		SeverityHigh:   "high",
	}

	for severity, expected := range severities {
		if string(severity) != expected {
			t.Errorf("Severity %s should equal '%s'", severity, expected)
		}
	}
}

// Output format tests

func TestOutputFormat_Constants(t *testing.T) {
	formats := map[OutputFormat]string{
		OutputFormatText:     "text",
		OutputFormatJSON:     "json",
		OutputFormatYAML:     "yaml",
		OutputFormatMarkdown: "markdown",
	}

	for format, expected := range formats {
		if string(format) != expected {
			t.Errorf("OutputFormat %s should equal '%s'", format, expected)
		}
	}
}

// Request and result shape tests

func TestAnalyzeRequest_Fields(t *testing.T) {
	req := AnalyzeRequest{
		Files: []SourceFile{
			{Path: "main.py", Language: LanguagePython, Content: "x = 1\n"},
		},
		ComplexityThreshold: 10,
		ApplyFormatting:     true,
		ExportFormats:       []ExportFormat{ExportFormatMarkdown},
		OutputFormat:        OutputFormatJSON,
	}

	if len(req.Files) != 1 {
		t.Error("Files should have 1 element")
	}
	if req.Files[0].Language != LanguagePython {
		t.Error("Language tag should be python")
	}
	if req.ComplexityThreshold != 10 {
		t.Error("ComplexityThreshold should be 10")
	}
	if !req.ApplyFormatting {
		t.Error("ApplyFormatting should be true")
	}
}

func TestFileAnalysis_Fields(t *testing.T) {
	fa := FileAnalysis{
		Path:     "src/app.py",
		Language: LanguagePython,
		StyleIssues: []StyleIssue{
			{Line: 3, Code: "E501", Message: "line too long", Severity: SeverityMedium},
		},
		Bugs: []BugFinding{
			{Line: 1, Category: "mutable_default", Message: "mutable default", Severity: SeverityHigh},
		},
		Complexity: ComplexityReport{
			Functions: []FunctionMetric{{Name: "run", Complexity: 4, Line: 1}},
			Average:   4.0,
		},
	}

	if fa.Path != "src/app.py" {
		t.Errorf("Path should be 'src/app.py', got '%s'", fa.Path)
	}
	if len(fa.StyleIssues) != 1 || fa.StyleIssues[0].Code != "E501" {
		t.Error("StyleIssues not preserved")
	}
	if len(fa.Bugs) != 1 || fa.Bugs[0].Severity != SeverityHigh {
		t.Error("Bugs not preserved")
	}
	if fa.Complexity.Average != 4.0 {
		t.Errorf("Average should be 4.0, got %f", fa.Complexity.Average)
	}
}

func TestOverallMetrics_Fields(t *testing.T) {
	metrics := OverallMetrics{
		TotalIssues:          12,
		HighSeverity:         2,
		FilesAnalyzed:        3,
		ComplexityViolations: 1,
	}

	if metrics.TotalIssues != 12 {
		t.Errorf("TotalIssues should be 12, got %d", metrics.TotalIssues)
	}
	if metrics.ComplexityViolations != 1 {
		t.Errorf("ComplexityViolations should be 1, got %d", metrics.ComplexityViolations)
	}
}

func TestFunctionMetric_Fields(t *testing.T) {
	metric := FunctionMetric{Name: "process", Complexity: 7, Line: 42}

	if metric.Name != "process" {
		t.Errorf("Name should be 'process', got '%s'", metric.Name)
	}
	if metric.Complexity != 7 {
		t.Errorf("Complexity should be 7, got %d", metric.Complexity)
	}
	if metric.Line != 42 {
		t.Errorf("Line should be 42, got %d", metric.Line)
	}
}

// Error code constants tests

func TestErrorCodeConstants(t *testing.T) {
	codes := map[string]string{
		ErrCodeInvalidInput:      "INVALID_INPUT",
		ErrCodeFileNotFound:      "FILE_NOT_FOUND",
		ErrCodeParseError:        "PARSE_ERROR",
		ErrCodeAnalysisError:     "ANALYSIS_ERROR",
		ErrCodeConfigError:       "CONFIG_ERROR",
		ErrCodeOutputError:       "OUTPUT_ERROR",
		ErrCodeUnsupportedFormat: "UNSUPPORTED_FORMAT",
	}

	for code, expected := range codes {
		if code != expected {
			t.Errorf("Error code should be '%s', got '%s'", expected, code)
		}
	}
}
