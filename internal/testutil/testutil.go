// Package testutil provides helper functions for testing pyrefine components
package testutil

import (
	"context"
	"testing"

	"github.com/coderefinery/pyrefine/domain"
	"github.com/coderefinery/pyrefine/internal/parser"
)

// ParsePython parses Python source and fails the test on error
func ParsePython(t *testing.T, source string) *parser.Result {
	t.Helper()
	p := parser.NewParser()
	result, err := p.ParseString(context.Background(), "test.py", source)
	if err != nil {
		t.Fatalf("Failed to parse test code: %v", err)
	}
	return result
}

// PythonFile wraps source content as an analyzable source file
func PythonFile(path, content string) domain.SourceFile {
	return domain.SourceFile{
		Path:     path,
		Language: domain.LanguagePython,
		Content:  content,
	}
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertEqual fails the test if expected != actual
func AssertEqual(t *testing.T, expected, actual any) {
	t.Helper()
	if expected != actual {
		t.Errorf("Expected %v, got %v", expected, actual)
	}
}

// FindFunctionInAST finds a function node by name in the AST
func FindFunctionInAST(ast *parser.Node, name string) *parser.Node {
	var found *parser.Node
	ast.Walk(func(n *parser.Node) bool {
		if n.IsFunction() && n.Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// CountNodesOfType counts nodes of a specific type in an AST
func CountNodesOfType(ast *parser.Node, nodeType parser.NodeType) int {
	count := 0
	ast.Walk(func(n *parser.Node) bool {
		if n.Type == nodeType {
			count++
		}
		return true
	})
	return count
}
