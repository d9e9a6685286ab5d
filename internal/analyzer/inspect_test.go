package analyzer

import (
	"strings"
	"testing"

	"github.com/coderefinery/pyrefine/domain"
)

func suggestionsByType(suggestions []domain.RefactorSuggestion, suggestionType string) []domain.RefactorSuggestion {
	var out []domain.RefactorSuggestion
	for _, s := range suggestions {
		if s.Type == suggestionType {
			out = append(out, s)
		}
	}
	return out
}

func TestInspect_LongParameterList(t *testing.T) {
	source := `def configure(a, b, c, d, e, f):
    """Configured."""
    pass
`
	result := parsePython(t, source)
	suggestions := NewInspector().Analyze(source, result.AST)
	found := suggestionsByType(suggestions, SuggestionParameterList)

	if len(found) != 1 {
		t.Fatalf("Expected 1 parameter list suggestion, got %d", len(found))
	}
	expected := "Function 'configure' has 6 parameters. Consider using a configuration object or reducing parameters."
	if found[0].Message != expected {
		t.Errorf("Expected '%s', got '%s'", expected, found[0].Message)
	}
	if found[0].Severity != domain.SeverityMedium {
		t.Errorf("Expected medium severity, got %s", found[0].Severity)
	}
}

func TestInspect_FiveParametersClean(t *testing.T) {
	source := `def ok(a, b, c, d, e):
    """Fine."""
    pass
`
	result := parsePython(t, source)
	suggestions := NewInspector().Analyze(source, result.AST)

	if found := suggestionsByType(suggestions, SuggestionParameterList); len(found) != 0 {
		t.Errorf("Five parameters should not be flagged, got %d suggestions", len(found))
	}
}

func TestInspect_MissingDocstrings(t *testing.T) {
	source := `def documented():
    """Has a docstring."""
    pass

def undocumented():
    pass

class Widget:
    pass
`
	result := parsePython(t, source)
	suggestions := NewInspector().Analyze(source, result.AST)
	found := suggestionsByType(suggestions, SuggestionDocumentation)

	if len(found) != 2 {
		t.Fatalf("Expected 2 documentation suggestions, got %d", len(found))
	}
	if found[0].Target != "undocumented" {
		t.Errorf("Expected target 'undocumented', got '%s'", found[0].Target)
	}
	if !strings.Contains(found[0].Message, "Function 'undocumented' lacks a docstring") {
		t.Errorf("Unexpected message: %s", found[0].Message)
	}
	if found[1].Target != "Widget" {
		t.Errorf("Expected target 'Widget', got '%s'", found[1].Target)
	}
	if !strings.Contains(found[1].Message, "Class 'Widget' lacks a docstring") {
		t.Errorf("Unexpected message: %s", found[1].Message)
	}
	if found[0].Severity != domain.SeverityLow {
		t.Errorf("Expected low severity, got %s", found[0].Severity)
	}
}

func TestInspect_LargeFile(t *testing.T) {
	source := strings.Repeat("x = 1\n", 501)
	result := parsePython(t, source)
	suggestions := NewInspector().Analyze(source, result.AST)
	found := suggestionsByType(suggestions, SuggestionFileSize)

	if len(found) != 1 {
		t.Fatalf("Expected 1 file size suggestion, got %d", len(found))
	}
	if found[0].Line != 1 {
		t.Errorf("Expected line 1, got %d", found[0].Line)
	}
	if !strings.Contains(found[0].Message, "Consider splitting into multiple modules") {
		t.Errorf("Unexpected message: %s", found[0].Message)
	}
}

func TestInspect_UnparseableFile(t *testing.T) {
	if suggestions := NewInspector().Analyze("x = 1\n", nil); suggestions != nil {
		t.Errorf("Unparseable file should yield no suggestions, got %d", len(suggestions))
	}
}
