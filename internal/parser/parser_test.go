package parser_test

import (
	"testing"

	"graft/internal/diag"
	"graft/internal/parser"
	"graft/internal/source"
	"graft/internal/syntax"
)

func parse(t *testing.T, src string) (*syntax.Builder, parser.Result) {
	t.Helper()
	fs := source.NewFileSet()
	b := syntax.NewBuilder(128)
	res := parser.Parse(fs, b, "test.gr", []byte(src))
	return b, res
}

func TestParseRoundTrip(t *testing.T) {
	cases := []string{
		"let x = 1;\n",
		"let x = 1 + 2 * 3;\n",
		"// comment\nlet x = foo(1, 2); // tail\n",
		"fn add(a, b) {\n    a + b;\n}\n",
		"#stringify(x + y)\n",
		"#makeConstants;\n",
		"let t = (1, 2, 3);\n",
		"let n = -x / 2;\n",
		"print(\"hi\");\n",
		"",
	}
	for _, src := range cases {
		b, res := parse(t, src)
		if res.Bag.HasErrors() {
			t.Errorf("%q: unexpected parse errors:\n%v", src, res.Bag.Items())
			continue
		}
		if got := b.Description(res.File); got != src {
			t.Errorf("round trip mismatch:\nwant %q\ngot  %q", src, got)
		}
	}
}

func TestParseErrorsKeepRendering(t *testing.T) {
	// A missing semicolon produces a diagnostic but still a usable tree.
	_, res := parse(t, "let x = 1\nlet y = 2;\n")
	if !res.Bag.HasErrors() {
		t.Fatal("expected a parse error")
	}
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.SynExpectSemicolon {
			found = true
		}
	}
	if !found {
		t.Errorf("expected SynExpectSemicolon, got %v", res.Bag.Items())
	}
	if !res.File.IsValid() {
		t.Fatal("tree must be produced despite errors")
	}
}

func TestBinaryPrecedence(t *testing.T) {
	b, res := parse(t, "let x = 1 + 2 * 3;")
	items := b.Items(res.File)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	let := b.Get(items[0])
	if let.Kind != syntax.KindLetItem {
		t.Fatalf("expected LetItem, got %v", let.Kind)
	}
	// let children: let, x, =, expr, ;
	expr := b.Get(let.Children[3])
	if expr.Kind != syntax.KindBinaryExpr {
		t.Fatalf("expected BinaryExpr, got %v", expr.Kind)
	}
	// Right operand of '+' must be the multiplication.
	rhs := b.Get(expr.Children[2])
	if rhs.Kind != syntax.KindBinaryExpr {
		t.Fatalf("expected nested BinaryExpr on the right, got %v", rhs.Kind)
	}
	if got := b.TrimmedDescription(expr.Children[2]); got != "2 * 3" {
		t.Errorf("rhs = %q, want %q", got, "2 * 3")
	}
}

func TestMacroQueries(t *testing.T) {
	b, res := parse(t, "let r = #stringify(x + y, 3);")
	items := b.Items(res.File)
	let := b.Get(items[0])
	mac := let.Children[3]
	if b.Get(mac).Kind != syntax.KindMacroExpr {
		t.Fatalf("expected MacroExpr, got %v", b.Get(mac).Kind)
	}
	if got := b.MacroName(mac); got != "stringify" {
		t.Errorf("MacroName = %q", got)
	}
	args := b.MacroArgs(mac)
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(args))
	}
	if got := b.TrimmedDescription(args[0]); got != "x + y" {
		t.Errorf("arg 0 = %q", got)
	}
	if got := b.TrimmedDescription(args[1]); got != "3" {
		t.Errorf("arg 1 = %q", got)
	}
}

func TestMacroItem(t *testing.T) {
	b, res := parse(t, "#makeConstants(2);\n")
	items := b.Items(res.File)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	item := items[0]
	if b.Get(item).Kind != syntax.KindMacroItem {
		t.Fatalf("expected MacroItem, got %v", b.Get(item).Kind)
	}
	if got := b.MacroName(item); got != "makeConstants" {
		t.Errorf("MacroName = %q", got)
	}
	if len(b.MacroArgs(item)) != 1 {
		t.Errorf("expected 1 arg")
	}
}

func TestNestedBlocksAndCalls(t *testing.T) {
	src := "fn main() {\n    let a = f(g(1), 2);\n    a * -3;\n}\n"
	b, res := parse(t, src)
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Bag.Items())
	}
	if got := b.Description(res.File); got != src {
		t.Errorf("round trip mismatch:\nwant %q\ngot  %q", src, got)
	}
}
