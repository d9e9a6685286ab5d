package parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ParseFailure describes why a file could not be parsed. Line is the
// 1-based line of the first syntax error, 1 when it cannot be located.
type ParseFailure struct {
	Line    int
	Message string
}

func (f *ParseFailure) Error() string {
	return fmt.Sprintf("line %d: %s", f.Line, f.Message)
}

// Result holds the outcome of parsing a single Python source file
type Result struct {
	AST     *Node
	Failure *ParseFailure
}

// OK reports whether the file parsed without syntax errors
func (r *Result) OK() bool {
	return r.Failure == nil
}

// Parser parses Python source into an AST
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a new Python parser
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Parser{parser: p}
}

// Parse parses Python source code and returns the AST. The same input
// always produces the same result, and malformed input never panics:
// syntax errors are reported through Result.Failure with the AST built
// from whatever the grammar could recover.
func (p *Parser) Parse(ctx context.Context, filename string, source []byte) (*Result, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	result := &Result{}

	if root.HasError() {
		result.Failure = p.locateError(root, source)
	}

	builder := NewASTBuilder(filename, source)
	result.AST = builder.Build(root)
	if result.AST != nil {
		result.AST.Location.File = filename
	}

	return result, nil
}

// ParseString is a convenience wrapper for string input
func (p *Parser) ParseString(ctx context.Context, filename, source string) (*Result, error) {
	return p.Parse(ctx, filename, []byte(source))
}

// locateError finds the first ERROR or MISSING node in the CST and
// describes it. Falls back to line 1 when the grammar reports an error
// without producing either marker.
func (p *Parser) locateError(root *sitter.Node, source []byte) *ParseFailure {
	var failure *ParseFailure

	var visit func(n *sitter.Node) bool
	visit = func(n *sitter.Node) bool {
		if n.IsError() {
			failure = &ParseFailure{
				Line:    int(n.StartPoint().Row) + 1,
				Message: fmt.Sprintf("invalid syntax near %q", errorContext(n, source)),
			}
			return true
		}
		if n.IsMissing() {
			failure = &ParseFailure{
				Line:    int(n.StartPoint().Row) + 1,
				Message: fmt.Sprintf("missing %s", n.Type()),
			}
			return true
		}
		if !n.HasError() {
			return false
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			if visit(n.Child(i)) {
				return true
			}
		}
		return false
	}
	visit(root)

	if failure == nil {
		failure = &ParseFailure{Line: 1, Message: "invalid syntax"}
	}
	return failure
}

// errorContext extracts a short snippet of the offending source text
func errorContext(n *sitter.Node, source []byte) string {
	start, end := int(n.StartByte()), int(n.EndByte())
	if start > len(source) {
		return ""
	}
	if end > len(source) {
		end = len(source)
	}
	snippet := string(source[start:end])
	snippet = strings.TrimSpace(snippet)
	if len(snippet) > 40 {
		snippet = snippet[:40]
	}
	if idx := strings.IndexByte(snippet, '\n'); idx >= 0 {
		snippet = snippet[:idx]
	}
	return snippet
}
