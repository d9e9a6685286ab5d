package parser

import "fmt"

// NodeType represents the type of AST node
type NodeType string

// Python AST node types
const (
	// Program structure
	NodeModule NodeType = "Module"

	// Definitions
	NodeFunctionDef NodeType = "FunctionDef"
	NodeClassDef    NodeType = "ClassDef"
	NodeDecorated   NodeType = "Decorated"
	NodeLambda      NodeType = "Lambda"

	// Parameters
	NodeParameters       NodeType = "Parameters"
	NodeParameter        NodeType = "Parameter"
	NodeDefaultParameter NodeType = "DefaultParameter"

	// Control flow statements
	NodeIf         NodeType = "If"
	NodeElifClause NodeType = "ElifClause"
	NodeElseClause NodeType = "ElseClause"
	NodeFor        NodeType = "For"
	NodeWhile      NodeType = "While"
	NodeBreak      NodeType = "Break"
	NodeContinue   NodeType = "Continue"
	NodeReturn     NodeType = "Return"
	NodeRaise      NodeType = "Raise"
	NodeAssert     NodeType = "Assert"
	NodeWith       NodeType = "With"
	NodeMatch      NodeType = "Match"
	NodeCaseClause NodeType = "CaseClause"
	NodeBlock      NodeType = "Block"
	NodeExpression NodeType = "ExpressionStatement"
	NodePass       NodeType = "Pass"

	// Exception handling
	NodeTry           NodeType = "Try"
	NodeExceptClause  NodeType = "ExceptClause"
	NodeFinallyClause NodeType = "FinallyClause"

	// Expressions
	NodeBoolOp      NodeType = "BoolOp"
	NodeNotOp       NodeType = "NotOp"
	NodeCompare     NodeType = "Compare"
	NodeBinaryOp    NodeType = "BinaryOp"
	NodeConditional NodeType = "Conditional"
	NodeCall        NodeType = "Call"
	NodeAttribute   NodeType = "Attribute"
	NodeSubscript   NodeType = "Subscript"
	NodeAssign      NodeType = "Assign"
	NodeAugAssign   NodeType = "AugAssign"
	NodeAwait       NodeType = "Await"
	NodeYield       NodeType = "Yield"
	NodeIdentifier  NodeType = "Identifier"

	// Comprehensions
	NodeListComp     NodeType = "ListComp"
	NodeSetComp      NodeType = "SetComp"
	NodeDictComp     NodeType = "DictComp"
	NodeGeneratorExp NodeType = "GeneratorExp"
	NodeCompFor      NodeType = "CompFor"
	NodeCompIf       NodeType = "CompIf"

	// Literals
	NodeListLiteral  NodeType = "ListLiteral"
	NodeDictLiteral  NodeType = "DictLiteral"
	NodeSetLiteral   NodeType = "SetLiteral"
	NodeTupleLiteral NodeType = "TupleLiteral"
	NodeString       NodeType = "String"
	NodeNumber       NodeType = "Number"
	NodeBoolean      NodeType = "Boolean"
	NodeNone         NodeType = "None"

	// Module system
	NodeImport     NodeType = "Import"
	NodeImportFrom NodeType = "ImportFrom"

	// Anything the builder does not map explicitly
	NodeUnknown NodeType = "Unknown"
)

// Location represents the position of a node in the source code
type Location struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// String returns a string representation of the location
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.StartLine, l.StartCol)
}

// Node represents a Python AST node
type Node struct {
	Type     NodeType
	Children []*Node
	Location Location
	Parent   *Node

	// Name holds function/class/identifier names where applicable
	Name string

	// Async marks async function and async for nodes
	Async bool

	// Raw holds the source text for identifier and small literal nodes
	Raw string
}

// NewNode creates a new AST node
func NewNode(nodeType NodeType) *Node {
	return &Node{
		Type:     nodeType,
		Children: []*Node{},
	}
}

// AddChild adds a child node
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Walk traverses the AST depth-first and calls the visitor function for each
// node. If the visitor returns false, traversal of that branch is stopped.
func (n *Node) Walk(visitor func(*Node) bool) {
	if n == nil {
		return
	}

	if !visitor(n) {
		return
	}

	for _, child := range n.Children {
		child.Walk(visitor)
	}
}

// String returns a string representation of the node
func (n *Node) String() string {
	if n.Name != "" {
		return fmt.Sprintf("%s(%s) at %s", n.Type, n.Name, n.Location)
	}
	return fmt.Sprintf("%s at %s", n.Type, n.Location)
}

// IsFunction returns true if the node is a function definition
func (n *Node) IsFunction() bool {
	return n.Type == NodeFunctionDef
}

// IsBranch returns true if the node adds a decision point to the
// enclosing function's control flow
func (n *Node) IsBranch() bool {
	switch n.Type {
	case NodeIf, NodeElifClause, NodeFor, NodeWhile:
		return true
	}
	return false
}

// IsMutableLiteral returns true for list, dict, and set display literals
func (n *Node) IsMutableLiteral() bool {
	switch n.Type {
	case NodeListLiteral, NodeDictLiteral, NodeSetLiteral:
		return true
	}
	return false
}

// IsBareExcept returns true for an except clause with no declared
// exception type
func (n *Node) IsBareExcept() bool {
	if n.Type != NodeExceptClause {
		return false
	}
	for _, child := range n.Children {
		if child.Type != NodeBlock {
			return false
		}
	}
	return true
}

// Functions collects every function definition in the subtree, in source
// order, recursing into nested scopes
func (n *Node) Functions() []*Node {
	var funcs []*Node
	n.Walk(func(node *Node) bool {
		if node.IsFunction() {
			funcs = append(funcs, node)
		}
		return true
	})
	return funcs
}
