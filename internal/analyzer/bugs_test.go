package analyzer

import (
	"strings"
	"testing"

	"github.com/coderefinery/pyrefine/domain"
)

func bugsByCategory(bugs []domain.BugFinding, category string) []domain.BugFinding {
	var out []domain.BugFinding
	for _, bug := range bugs {
		if bug.Category == category {
			out = append(out, bug)
		}
	}
	return out
}

func TestBugs_MutableDefaultList(t *testing.T) {
	source := `def add_item(item, items=[]):
    items.append(item)
    return items
`
	result := parsePython(t, source)
	bugs := NewBugDetector().Detect(result, source)
	found := bugsByCategory(bugs, "mutable_default")

	if len(found) != 1 {
		t.Fatalf("Expected 1 mutable default finding, got %d", len(found))
	}
	if found[0].Message != "Dangerous default value [] (mutable default argument)" {
		t.Errorf("Unexpected message: %s", found[0].Message)
	}
	if found[0].Severity != domain.SeverityHigh {
		t.Errorf("Expected high severity, got %s", found[0].Severity)
	}
	if found[0].Line != 1 {
		t.Errorf("Expected line 1, got %d", found[0].Line)
	}
}

func TestBugs_MutableDefaultDictAndSet(t *testing.T) {
	source := `def f(cache={}):
    pass

def g(seen={1}):
    pass
`
	result := parsePython(t, source)
	bugs := bugsByCategory(NewBugDetector().Detect(result, source), "mutable_default")

	if len(bugs) != 2 {
		t.Fatalf("Expected 2 findings, got %d", len(bugs))
	}
	if !strings.Contains(bugs[0].Message, "{}") {
		t.Errorf("Expected dict display in message: %s", bugs[0].Message)
	}
	if !strings.Contains(bugs[1].Message, "set()") {
		t.Errorf("Expected set display in message: %s", bugs[1].Message)
	}
}

func TestBugs_ImmutableDefaultClean(t *testing.T) {
	source := `def f(x=1, name="a", flag=None):
    pass
`
	result := parsePython(t, source)
	if found := bugsByCategory(NewBugDetector().Detect(result, source), "mutable_default"); len(found) != 0 {
		t.Errorf("Immutable defaults should not be flagged, got %d findings", len(found))
	}
}

func TestBugs_BareExcept(t *testing.T) {
	source := `try:
    risky()
except:
    pass
`
	result := parsePython(t, source)
	found := bugsByCategory(NewBugDetector().Detect(result, source), "exception_handling")

	if len(found) != 1 {
		t.Fatalf("Expected 1 bare except finding, got %d", len(found))
	}
	if found[0].Message != "Bare except clause - catches all exceptions including KeyboardInterrupt" {
		t.Errorf("Unexpected message: %s", found[0].Message)
	}
	if found[0].Severity != domain.SeverityMedium {
		t.Errorf("Expected medium severity, got %s", found[0].Severity)
	}
	if found[0].Line != 3 {
		t.Errorf("Expected line 3, got %d", found[0].Line)
	}
}

func TestBugs_TypedExceptClean(t *testing.T) {
	source := `try:
    risky()
except ValueError as e:
    raise
`
	result := parsePython(t, source)
	if found := bugsByCategory(NewBugDetector().Detect(result, source), "exception_handling"); len(found) != 0 {
		t.Errorf("Typed except should not be flagged, got %d findings", len(found))
	}
}

func TestBugs_UnusedVariable(t *testing.T) {
	source := `def f():
    unused = compute()
    result = 1
    return result
`
	result := parsePython(t, source)
	found := bugsByCategory(NewBugDetector().Detect(result, source), "unused_variable")

	if len(found) != 1 {
		t.Fatalf("Expected 1 unused variable finding, got %d", len(found))
	}
	if found[0].Message != "Variable 'unused' assigned but never used" {
		t.Errorf("Unexpected message: %s", found[0].Message)
	}
	if found[0].Severity != domain.SeverityLow {
		t.Errorf("Expected low severity, got %s", found[0].Severity)
	}
	if found[0].Line != 2 {
		t.Errorf("Expected line 2, got %d", found[0].Line)
	}
}

func TestBugs_UnderscoreAndConstantsSkipped(t *testing.T) {
	source := `_ = ignore()
TOTAL = 10
CamelCase = 1
`
	result := parsePython(t, source)
	if found := bugsByCategory(NewBugDetector().Detect(result, source), "unused_variable"); len(found) != 0 {
		t.Errorf("Underscore and non-lowercase names should be skipped, got %d findings", len(found))
	}
}

func TestBugs_EvalAndExec(t *testing.T) {
	source := `x = eval(user_input)
y = 2
exec(command)
`
	result := parsePython(t, source)
	found := bugsByCategory(NewBugDetector().Detect(result, source), "security")

	if len(found) != 2 {
		t.Fatalf("Expected 2 security findings, got %d", len(found))
	}
	if found[0].Message != "Use of eval() is dangerous and should be avoided" {
		t.Errorf("Unexpected eval message: %s", found[0].Message)
	}
	if found[0].Line != 1 {
		t.Errorf("Expected eval at line 1, got %d", found[0].Line)
	}
	if found[1].Message != "Use of exec() is dangerous and should be avoided" {
		t.Errorf("Unexpected exec message: %s", found[1].Message)
	}
	if found[1].Line != 3 {
		t.Errorf("Expected exec at line 3, got %d", found[1].Line)
	}
	if found[0].Severity != domain.SeverityHigh {
		t.Errorf("Expected high severity, got %s", found[0].Severity)
	}
}

func TestBugs_SyntaxErrorShortCircuits(t *testing.T) {
	source := `def broken(
eval(x)
`
	result := parsePython(t, source)
	bugs := NewBugDetector().Detect(result, source)

	if len(bugs) != 1 {
		t.Fatalf("Parse failure should yield exactly 1 finding, got %d", len(bugs))
	}
	if bugs[0].Category != "syntax" {
		t.Errorf("Expected syntax category, got %s", bugs[0].Category)
	}
	if !strings.HasPrefix(bugs[0].Message, "Syntax error: ") {
		t.Errorf("Unexpected message: %s", bugs[0].Message)
	}
	if bugs[0].Severity != domain.SeverityHigh {
		t.Errorf("Expected high severity, got %s", bugs[0].Severity)
	}
}

func TestBugs_CleanSource(t *testing.T) {
	source := `def add(a, b):
    return a + b
`
	result := parsePython(t, source)
	if bugs := NewBugDetector().Detect(result, source); len(bugs) != 0 {
		t.Errorf("Clean source should produce no findings, got %d", len(bugs))
	}
}

func TestBugs_FindingOrderIsStable(t *testing.T) {
	source := `def f(items=[]):
    try:
        pass
    except:
        pass
    leftover = 1
    return eval("2")
`
	result := parsePython(t, source)
	bugs := NewBugDetector().Detect(result, source)

	categories := make([]string, len(bugs))
	for i, bug := range bugs {
		categories[i] = bug.Category
	}
	expected := []string{"mutable_default", "exception_handling", "unused_variable", "security"}
	if len(categories) != len(expected) {
		t.Fatalf("Expected %d findings, got %d: %v", len(expected), len(categories), categories)
	}
	for i := range expected {
		if categories[i] != expected[i] {
			t.Errorf("Position %d: expected %s, got %s", i, expected[i], categories[i])
		}
	}
}
