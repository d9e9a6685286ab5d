package parser

import (
	"context"
	"testing"
)

func parseSource(t *testing.T, source string) *Result {
	t.Helper()
	p := NewParser()
	result, err := p.ParseString(context.Background(), "test.py", source)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return result
}

func countType(root *Node, nodeType NodeType) int {
	count := 0
	root.Walk(func(n *Node) bool {
		if n.Type == nodeType {
			count++
		}
		return true
	})
	return count
}

func TestParse_SimpleFunction(t *testing.T) {
	source := `def greet(name):
    return "Hello, " + name
`
	result := parseSource(t, source)

	if !result.OK() {
		t.Fatalf("Expected successful parse, got failure: %v", result.Failure)
	}
	if result.AST == nil {
		t.Fatal("Expected AST, got nil")
	}
	if result.AST.Type != NodeModule {
		t.Errorf("Expected Module root, got %s", result.AST.Type)
	}

	funcs := result.AST.Functions()
	if len(funcs) != 1 {
		t.Fatalf("Expected 1 function, got %d", len(funcs))
	}
	if funcs[0].Name != "greet" {
		t.Errorf("Expected function name 'greet', got '%s'", funcs[0].Name)
	}
	if funcs[0].Location.StartLine != 1 {
		t.Errorf("Expected function at line 1, got %d", funcs[0].Location.StartLine)
	}
}

func TestParse_NestedFunctions(t *testing.T) {
	source := `def outer():
    def inner():
        pass
    return inner
`
	result := parseSource(t, source)

	funcs := result.AST.Functions()
	if len(funcs) != 2 {
		t.Fatalf("Expected 2 functions, got %d", len(funcs))
	}
	if funcs[0].Name != "outer" {
		t.Errorf("Expected first function 'outer', got '%s'", funcs[0].Name)
	}
	if funcs[1].Name != "inner" {
		t.Errorf("Expected second function 'inner', got '%s'", funcs[1].Name)
	}
}

func TestParse_AsyncFunction(t *testing.T) {
	source := `async def fetch(url):
    return await get(url)
`
	result := parseSource(t, source)

	funcs := result.AST.Functions()
	if len(funcs) != 1 {
		t.Fatalf("Expected 1 function, got %d", len(funcs))
	}
	if !funcs[0].Async {
		t.Error("Expected async flag on async def")
	}
}

func TestParse_ClassWithMethods(t *testing.T) {
	source := `class Greeter:
    def __init__(self, name):
        self.name = name

    def greet(self):
        return self.name
`
	result := parseSource(t, source)

	classes := 0
	var className string
	result.AST.Walk(func(n *Node) bool {
		if n.Type == NodeClassDef {
			classes++
			className = n.Name
		}
		return true
	})
	if classes != 1 {
		t.Fatalf("Expected 1 class, got %d", classes)
	}
	if className != "Greeter" {
		t.Errorf("Expected class name 'Greeter', got '%s'", className)
	}

	funcs := result.AST.Functions()
	if len(funcs) != 2 {
		t.Errorf("Expected 2 methods, got %d", len(funcs))
	}
}

func TestParse_MutableDefaultParameter(t *testing.T) {
	source := `def add_item(item, items=[]):
    items.append(item)
    return items
`
	result := parseSource(t, source)

	var defaults []*Node
	result.AST.Walk(func(n *Node) bool {
		if n.Type == NodeDefaultParameter {
			defaults = append(defaults, n)
		}
		return true
	})
	if len(defaults) != 1 {
		t.Fatalf("Expected 1 default parameter, got %d", len(defaults))
	}
	if defaults[0].Name != "items" {
		t.Errorf("Expected parameter name 'items', got '%s'", defaults[0].Name)
	}

	hasMutable := false
	for _, child := range defaults[0].Children {
		if child.IsMutableLiteral() {
			hasMutable = true
		}
	}
	if !hasMutable {
		t.Error("Expected mutable literal child under default parameter")
	}
}

func TestParse_TypedDefaultParameter(t *testing.T) {
	source := `def add_item(item, items: list = []):
    return items
`
	result := parseSource(t, source)

	count := countType(result.AST, NodeDefaultParameter)
	if count != 1 {
		t.Errorf("Expected 1 default parameter for typed default, got %d", count)
	}
}

func TestParse_BareExcept(t *testing.T) {
	source := `try:
    risky()
except:
    pass
`
	result := parseSource(t, source)

	var clauses []*Node
	result.AST.Walk(func(n *Node) bool {
		if n.Type == NodeExceptClause {
			clauses = append(clauses, n)
		}
		return true
	})
	if len(clauses) != 1 {
		t.Fatalf("Expected 1 except clause, got %d", len(clauses))
	}
	if !clauses[0].IsBareExcept() {
		t.Error("Expected bare except to be detected")
	}
}

func TestParse_TypedExceptIsNotBare(t *testing.T) {
	source := `try:
    risky()
except ValueError:
    pass
`
	result := parseSource(t, source)

	result.AST.Walk(func(n *Node) bool {
		if n.Type == NodeExceptClause && n.IsBareExcept() {
			t.Error("Typed except should not be reported as bare")
		}
		return true
	})
}

func TestParse_BranchNodes(t *testing.T) {
	source := `def check(x):
    if x > 10:
        return "big"
    elif x > 5:
        return "medium"
    else:
        return "small"
`
	result := parseSource(t, source)

	ifCount := countType(result.AST, NodeIf)
	elifCount := countType(result.AST, NodeElifClause)
	elseCount := countType(result.AST, NodeElseClause)

	if ifCount != 1 {
		t.Errorf("Expected 1 if, got %d", ifCount)
	}
	if elifCount != 1 {
		t.Errorf("Expected 1 elif clause, got %d", elifCount)
	}
	if elseCount != 1 {
		t.Errorf("Expected 1 else clause, got %d", elseCount)
	}
}

func TestParse_BooleanOperators(t *testing.T) {
	// a and b or c nests as (a and b) or c: two boolean_operator nodes
	source := `flag = a and b or c
`
	result := parseSource(t, source)

	count := countType(result.AST, NodeBoolOp)
	if count != 2 {
		t.Errorf("Expected 2 boolean operator nodes, got %d", count)
	}
}

func TestParse_ComprehensionClauses(t *testing.T) {
	source := `values = [x * y for x in xs for y in ys if x != y]
`
	result := parseSource(t, source)

	forCount := countType(result.AST, NodeCompFor)
	ifCount := countType(result.AST, NodeCompIf)

	if forCount != 2 {
		t.Errorf("Expected 2 comprehension for clauses, got %d", forCount)
	}
	if ifCount != 1 {
		t.Errorf("Expected 1 comprehension if clause, got %d", ifCount)
	}
}

func TestParse_SyntaxError(t *testing.T) {
	source := `def broken(
    return 1
`
	result := parseSource(t, source)

	if result.OK() {
		t.Fatal("Expected parse failure for malformed source")
	}
	if result.Failure.Line < 1 {
		t.Errorf("Expected positive failure line, got %d", result.Failure.Line)
	}
	if result.Failure.Message == "" {
		t.Error("Expected non-empty failure message")
	}
	// Partial AST is still produced for recovery
	if result.AST == nil {
		t.Error("Expected partial AST alongside failure")
	}
}

func TestParse_EmptySource(t *testing.T) {
	result := parseSource(t, "")

	if !result.OK() {
		t.Errorf("Empty source should parse cleanly, got %v", result.Failure)
	}
	if result.AST == nil || result.AST.Type != NodeModule {
		t.Error("Expected empty Module root")
	}
}

func TestParse_Deterministic(t *testing.T) {
	source := `def f(x):
    if x:
        return 1
    return 0
`
	p := NewParser()
	first, err := p.ParseString(context.Background(), "test.py", source)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	second, err := p.ParseString(context.Background(), "test.py", source)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if countType(first.AST, NodeIf) != countType(second.AST, NodeIf) {
		t.Error("Repeated parses should produce identical structure")
	}
	if len(first.AST.Functions()) != len(second.AST.Functions()) {
		t.Error("Repeated parses should find the same functions")
	}
}

func TestParse_CommentsSkipped(t *testing.T) {
	source := `# leading comment
x = 1  # trailing comment
`
	result := parseSource(t, source)

	unknowns := 0
	result.AST.Walk(func(n *Node) bool {
		if n.Raw == "# leading comment" {
			unknowns++
		}
		return true
	})
	if unknowns != 0 {
		t.Error("Comments should not appear in the AST")
	}
}
