package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// nodeTypeMap maps tree-sitter grammar node types to internal AST node types
var nodeTypeMap = map[string]NodeType{
	"module": NodeModule,

	"function_definition":  NodeFunctionDef,
	"class_definition":     NodeClassDef,
	"decorated_definition": NodeDecorated,
	"lambda":               NodeLambda,

	"parameters":              NodeParameters,
	"default_parameter":       NodeDefaultParameter,
	"typed_default_parameter": NodeDefaultParameter,
	"typed_parameter":         NodeParameter,

	"if_statement":       NodeIf,
	"elif_clause":        NodeElifClause,
	"else_clause":        NodeElseClause,
	"for_statement":      NodeFor,
	"while_statement":    NodeWhile,
	"break_statement":    NodeBreak,
	"continue_statement": NodeContinue,
	"return_statement":   NodeReturn,
	"raise_statement":    NodeRaise,
	"assert_statement":   NodeAssert,
	"with_statement":     NodeWith,
	"match_statement":    NodeMatch,
	"case_clause":        NodeCaseClause,
	"block":              NodeBlock,
	"expression_statement": NodeExpression,
	"pass_statement":     NodePass,

	"try_statement":  NodeTry,
	"except_clause":  NodeExceptClause,
	"finally_clause": NodeFinallyClause,

	"boolean_operator":       NodeBoolOp,
	"not_operator":           NodeNotOp,
	"comparison_operator":    NodeCompare,
	"binary_operator":        NodeBinaryOp,
	"conditional_expression": NodeConditional,
	"call":                   NodeCall,
	"attribute":              NodeAttribute,
	"subscript":              NodeSubscript,
	"assignment":             NodeAssign,
	"augmented_assignment":   NodeAugAssign,
	"await":                  NodeAwait,
	"yield":                  NodeYield,
	"identifier":             NodeIdentifier,

	"list_comprehension":       NodeListComp,
	"set_comprehension":        NodeSetComp,
	"dictionary_comprehension": NodeDictComp,
	"generator_expression":     NodeGeneratorExp,
	"for_in_clause":            NodeCompFor,
	"if_clause":                NodeCompIf,

	"list":       NodeListLiteral,
	"dictionary": NodeDictLiteral,
	"set":        NodeSetLiteral,
	"tuple":      NodeTupleLiteral,
	"string":     NodeString,
	"integer":    NodeNumber,
	"float":      NodeNumber,
	"true":       NodeBoolean,
	"false":      NodeBoolean,
	"none":       NodeNone,

	"import_statement":      NodeImport,
	"import_from_statement": NodeImportFrom,
}

// rawCaptureLimit bounds how much source text is copied onto leaf nodes
const rawCaptureLimit = 256

// ASTBuilder converts a tree-sitter CST into the internal Python AST
type ASTBuilder struct {
	filename string
	source   []byte
}

// NewASTBuilder creates a new AST builder for the given file
func NewASTBuilder(filename string, source []byte) *ASTBuilder {
	return &ASTBuilder{
		filename: filename,
		source:   source,
	}
}

// Build converts the CST rooted at cstNode into an AST
func (b *ASTBuilder) Build(cstNode *sitter.Node) *Node {
	if cstNode == nil {
		return nil
	}
	return b.convert(cstNode)
}

// convert maps a single CST node and recurses into its named children
func (b *ASTBuilder) convert(cst *sitter.Node) *Node {
	cstType := cst.Type()
	if cstType == "comment" {
		return nil
	}

	nodeType, ok := nodeTypeMap[cstType]
	if !ok {
		nodeType = NodeUnknown
	}

	node := NewNode(nodeType)
	node.Location = b.location(cst)
	node.Raw = b.rawText(cst)

	switch nodeType {
	case NodeFunctionDef, NodeClassDef:
		if name := cst.ChildByFieldName("name"); name != nil {
			node.Name = b.text(name)
		}
		node.Async = b.hasKeyword(cst, "async")
	case NodeFor, NodeCompFor:
		node.Async = b.hasKeyword(cst, "async")
	case NodeDefaultParameter:
		if name := cst.ChildByFieldName("name"); name != nil {
			node.Name = b.text(name)
		}
	case NodeIdentifier:
		node.Name = b.text(cst)
	}

	for i := 0; i < int(cst.NamedChildCount()); i++ {
		child := b.convert(cst.NamedChild(i))
		node.AddChild(child)
	}

	return node
}

// hasKeyword reports whether the node carries the given anonymous keyword
// token, e.g. "async" on function and for nodes
func (b *ASTBuilder) hasKeyword(cst *sitter.Node, keyword string) bool {
	for i := 0; i < int(cst.ChildCount()); i++ {
		child := cst.Child(i)
		if !child.IsNamed() && child.Type() == keyword {
			return true
		}
	}
	return false
}

func (b *ASTBuilder) location(cst *sitter.Node) Location {
	return Location{
		File:      b.filename,
		StartLine: int(cst.StartPoint().Row) + 1,
		StartCol:  int(cst.StartPoint().Column),
		EndLine:   int(cst.EndPoint().Row) + 1,
		EndCol:    int(cst.EndPoint().Column),
	}
}

func (b *ASTBuilder) text(cst *sitter.Node) string {
	start, end := cst.StartByte(), cst.EndByte()
	if int(end) > len(b.source) || start > end {
		return ""
	}
	return string(b.source[start:end])
}

// rawText captures leaf source text, bounded so large blocks are not copied
func (b *ASTBuilder) rawText(cst *sitter.Node) string {
	if cst.EndByte()-cst.StartByte() > rawCaptureLimit {
		return ""
	}
	return b.text(cst)
}
