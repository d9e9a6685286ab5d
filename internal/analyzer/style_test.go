package analyzer

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/coderefinery/pyrefine/domain"
)

func issuesByCode(issues []domain.StyleIssue, code string) []domain.StyleIssue {
	var out []domain.StyleIssue
	for _, issue := range issues {
		if issue.Code == code {
			out = append(out, issue)
		}
	}
	return out
}

func TestStyle_LineTooLong(t *testing.T) {
	long := "x = " + strings.Repeat("1 + ", 25) + "1"
	if len(long) <= MaxLineLength {
		t.Fatal("test line is not long enough")
	}

	issues := NewStyleAnalyzer().Analyze(long + "\n")
	found := issuesByCode(issues, "E501")

	if len(found) != 1 {
		t.Fatalf("Expected 1 E501, got %d", len(found))
	}
	expected := fmt.Sprintf("line too long (%d > 79 characters)", len(long))
	if found[0].Message != expected {
		t.Errorf("Expected message '%s', got '%s'", expected, found[0].Message)
	}
	if found[0].Suggestion != "break line into multiple lines" {
		t.Errorf("Unexpected suggestion: %s", found[0].Suggestion)
	}
	if found[0].Severity != domain.SeverityMedium {
		t.Errorf("E501 should be medium severity, got %s", found[0].Severity)
	}
}

func TestStyle_ExactLimitIsClean(t *testing.T) {
	line := strings.Repeat("a", MaxLineLength)
	issues := NewStyleAnalyzer().Analyze(line + "\n")

	if len(issuesByCode(issues, "E501")) != 0 {
		t.Error("A 79-character line should not be flagged")
	}
}

func TestStyle_LineLengthCountsCharactersNotBytes(t *testing.T) {
	// 79 characters but well over 79 bytes in UTF-8
	line := "s = '" + strings.Repeat("é", 73) + "'"
	if utf8.RuneCountInString(line) != MaxLineLength {
		t.Fatalf("test line should be %d characters, got %d", MaxLineLength, utf8.RuneCountInString(line))
	}
	if len(line) <= MaxLineLength {
		t.Fatal("test line should exceed the limit in bytes")
	}

	issues := NewStyleAnalyzer().Analyze(line + "\n")
	if len(issuesByCode(issues, "E501")) != 0 {
		t.Error("A 79-character non-ASCII line should not be flagged")
	}

	over := line + "x"
	found := issuesByCode(NewStyleAnalyzer().Analyze(over+"\n"), "E501")
	if len(found) != 1 {
		t.Fatalf("Expected 1 E501, got %d", len(found))
	}
	expected := fmt.Sprintf("line too long (%d > 79 characters)", MaxLineLength+1)
	if found[0].Message != expected {
		t.Errorf("Expected message '%s', got '%s'", expected, found[0].Message)
	}
}

func TestStyle_MultipleSpacesAfterComma(t *testing.T) {
	issues := NewStyleAnalyzer().Analyze("f(a,  b)\n")
	found := issuesByCode(issues, "E241")

	if len(found) != 1 {
		t.Fatalf("Expected 1 E241, got %d", len(found))
	}
	if found[0].Message != "multiple spaces after ','" {
		t.Errorf("Unexpected message: %s", found[0].Message)
	}
	if found[0].Line != 1 {
		t.Errorf("Expected line 1, got %d", found[0].Line)
	}
}

func TestStyle_SingleSpaceAfterCommaIsClean(t *testing.T) {
	issues := NewStyleAnalyzer().Analyze("f(a, b)\n")
	if len(issuesByCode(issues, "E241")) != 0 {
		t.Error("Single space after comma should not be flagged")
	}
}

func TestStyle_MissingWhitespaceAroundOperator(t *testing.T) {
	issues := NewStyleAnalyzer().Analyze("x=1\n")
	found := issuesByCode(issues, "E225")

	if len(found) != 1 {
		t.Fatalf("Expected 1 E225, got %d", len(found))
	}
	if found[0].Message != "missing whitespace around operator" {
		t.Errorf("Unexpected message: %s", found[0].Message)
	}
}

func TestStyle_DefLineOperatorNotFlagged(t *testing.T) {
	issues := NewStyleAnalyzer().Analyze("def f(x=1):\n    pass\n")
	if len(issuesByCode(issues, "E225")) != 0 {
		t.Error("Keyword defaults on def lines should not be flagged")
	}
}

func TestStyle_TrailingWhitespace(t *testing.T) {
	issues := NewStyleAnalyzer().Analyze("x = 1 \ny = 2\t\nz = 3\n")
	found := issuesByCode(issues, "W291")

	if len(found) != 2 {
		t.Fatalf("Expected 2 W291, got %d", len(found))
	}
	if found[0].Line != 1 || found[1].Line != 2 {
		t.Errorf("Expected lines 1 and 2, got %d and %d", found[0].Line, found[1].Line)
	}
	if found[0].Severity != domain.SeverityLow {
		t.Errorf("W291 should be low severity, got %s", found[0].Severity)
	}
}

func TestStyle_MultipleIssuesSameLine(t *testing.T) {
	// long line with tight operator and trailing space
	line := "x=" + strings.Repeat("1+", 45) + "1 "
	issues := NewStyleAnalyzer().Analyze(line + "\n")

	if len(issuesByCode(issues, "E501")) != 1 {
		t.Error("Expected E501")
	}
	if len(issuesByCode(issues, "E225")) != 1 {
		t.Error("Expected E225")
	}
	if len(issuesByCode(issues, "W291")) != 1 {
		t.Error("Expected W291")
	}
}

func TestStyle_CleanSourceNoIssues(t *testing.T) {
	source := `def add(a, b):
    return a + b
`
	issues := NewStyleAnalyzer().Analyze(source)
	if len(issues) != 0 {
		t.Errorf("Clean source should produce no issues, got %d", len(issues))
	}
}

func TestStyle_Deterministic(t *testing.T) {
	source := "x=1  \nf(a,  b)\n"
	first := NewStyleAnalyzer().Analyze(source)
	second := NewStyleAnalyzer().Analyze(source)

	if len(first) != len(second) {
		t.Fatalf("Repeated runs differ: %d vs %d issues", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Issue %d differs between runs", i)
		}
	}
}

func TestSeverityFor(t *testing.T) {
	cases := map[string]domain.Severity{
		"E901": domain.SeverityHigh,
		"E999": domain.SeverityHigh,
		"W291": domain.SeverityLow,
		"W292": domain.SeverityLow,
		"W293": domain.SeverityLow,
		"E501": domain.SeverityMedium,
		"E225": domain.SeverityMedium,
		"X999": domain.SeverityMedium,
	}

	for code, expected := range cases {
		if got := SeverityFor(code); got != expected {
			t.Errorf("SeverityFor(%s) = %s, expected %s", code, got, expected)
		}
	}
}

func TestSuggestionFor_UnknownCode(t *testing.T) {
	if got := SuggestionFor("E777"); got != "refer to PEP8 style guide" {
		t.Errorf("Unknown code should get the default suggestion, got '%s'", got)
	}
}

func TestFormatting_OddIndentFlagged(t *testing.T) {
	source := "def f():\n x = 1\n"
	issues := NewFormattingAnalyzer().Analyze(source)

	if len(issues) != 1 {
		t.Fatalf("Expected 1 E111, got %d", len(issues))
	}
	if issues[0].Code != "E111" {
		t.Errorf("Expected E111, got %s", issues[0].Code)
	}
	if issues[0].Message != "indentation is not a multiple of four" {
		t.Errorf("Unexpected message: %s", issues[0].Message)
	}
	if issues[0].Line != 2 {
		t.Errorf("Expected line 2, got %d", issues[0].Line)
	}
}

func TestFormatting_FourSpaceIndentClean(t *testing.T) {
	source := "def f():\n    x = 1\n"
	if issues := NewFormattingAnalyzer().Analyze(source); len(issues) != 0 {
		t.Errorf("Four-space indent should be clean, got %d issues", len(issues))
	}
}

func TestFormatting_ToleratedIndents(t *testing.T) {
	// two-space continuation indents are tolerated
	source := "def f():\n  x = 1\n"
	if issues := NewFormattingAnalyzer().Analyze(source); len(issues) != 0 {
		t.Errorf("Two-space indent should be tolerated, got %d issues", len(issues))
	}
}

func TestFormatting_BlankLinesIgnored(t *testing.T) {
	source := "def f():\n \n    x = 1\n"
	if issues := NewFormattingAnalyzer().Analyze(source); len(issues) != 0 {
		t.Errorf("Whitespace-only lines should be ignored, got %d issues", len(issues))
	}
}
