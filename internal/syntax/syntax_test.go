package syntax

import (
	"strings"
	"testing"

	"svfmt/internal/source"
)

func parseVirtual(t *testing.T, src string) *Tree {
	t.Helper()

	fs := source.NewFileSet()
	fileID, err := fs.AddVirtual("test.sv", []byte(src))
	if err != nil {
		t.Fatalf("AddVirtual: %v", err)
	}
	tree, err := Parse(fs.Get(fileID))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return tree
}

func leafTexts(tree *Tree) []string {
	var out []string
	tree.Walk(func(ev Event) {
		if ev.Enter && ev.Node.Kind == NodeLeaf && len(ev.Node.Children) == 0 {
			out = append(out, tree.Text(ev.Node.Span))
		}
	})
	return out
}

// codeLeaves drops whitespace and comment leaves.
func codeLeaves(tree *Tree) []string {
	var out []string
	var inRegion int
	tree.Walk(func(ev Event) {
		switch ev.Node.Kind {
		case NodeWhitespace, NodeComment:
			if ev.Enter {
				inRegion++
			} else {
				inRegion--
			}
		case NodeLeaf:
			if ev.Enter && inRegion == 0 {
				out = append(out, tree.Text(ev.Node.Span))
			}
		}
	})
	return out
}

func TestParseLeafBoundaries(t *testing.T) {
	tree := parseVirtual(t, "module top; assign y = a <= 8'hF0; endmodule\n")
	got := strings.Join(codeLeaves(tree), "|")
	want := "module|top|;|assign|y|=|a|<=|8'hF0|;|endmodule"
	if got != want {
		t.Fatalf("leaf boundaries mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestParseScopeColonsStaySplit(t *testing.T) {
	tree := parseVirtual(t, "import pkg::*;\n")
	got := strings.Join(codeLeaves(tree), "|")
	want := "import|pkg|:|:|*|;"
	if got != want {
		t.Fatalf("scope operator split mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestParseDirectiveOwnsLine(t *testing.T) {
	tree := parseVirtual(t, "`ifdef FOO\n`include \"pkg.svh\"\n`endif\n")
	var directives []string
	tree.Walk(func(ev Event) {
		if ev.Enter && ev.Node.Kind == NodeDirective {
			directives = append(directives, tree.Text(ev.Node.Span))
		}
	})
	want := []string{"`ifdef FOO", "`include \"pkg.svh\"", "`endif"}
	if len(directives) != len(want) {
		t.Fatalf("directive count: want %d, got %d (%q)", len(want), len(directives), directives)
	}
	for i := range want {
		if directives[i] != want[i] {
			t.Fatalf("directive %d: want %q, got %q", i, want[i], directives[i])
		}
	}
}

func TestParseMacroUsageSpansNameOnly(t *testing.T) {
	tree := parseVirtual(t, "assign y = `WIDTH + 1;\n")
	var directives []string
	tree.Walk(func(ev Event) {
		if ev.Enter && ev.Node.Kind == NodeDirective {
			directives = append(directives, tree.Text(ev.Node.Span))
		}
	})
	if len(directives) != 1 || directives[0] != "`WIDTH" {
		t.Fatalf("macro usage: want [`WIDTH], got %q", directives)
	}
}

func TestParseUnterminatedBlockComment(t *testing.T) {
	fs := source.NewFileSet()
	fileID, err := fs.AddVirtual("broken.sv", []byte("module m;\n/* never closed\nendmodule\n"))
	if err != nil {
		t.Fatalf("AddVirtual: %v", err)
	}
	_, err = Parse(fs.Get(fileID))
	if err == nil {
		t.Fatal("expected parse error")
	}
	parseErr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if parseErr.Line != 2 || parseErr.Col != 1 {
		t.Fatalf("error position: want 2:1, got %d:%d", parseErr.Line, parseErr.Col)
	}
	if parseErr.Path != "broken.sv" {
		t.Fatalf("error path: want broken.sv, got %q", parseErr.Path)
	}
}

func TestParseUnterminatedString(t *testing.T) {
	tree, err := parseAttempt("x = \"oops;\n")
	if tree != nil || err == nil {
		t.Fatal("expected parse error for unterminated string")
	}
	if !strings.Contains(err.Error(), "unterminated string") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func parseAttempt(src string) (*Tree, error) {
	fs := source.NewFileSet()
	fileID, err := fs.AddVirtual("test.sv", []byte(src))
	if err != nil {
		return nil, err
	}
	return Parse(fs.Get(fileID))
}

func controlAt(t *testing.T, tree *Tree, keyword uint32) Control {
	t.Helper()
	for _, ctrl := range tree.Controls() {
		if ctrl.Keyword == keyword {
			return ctrl
		}
	}
	t.Fatalf("no control recorded at offset %d (have %+v)", keyword, tree.Controls())
	return Control{}
}

func TestControlsIfBody(t *testing.T) {
	src := "if (a)\n  b <= 1;\nc <= 2;\n"
	tree := parseVirtual(t, src)

	ctrl := controlAt(t, tree, 0)
	if got, want := tree.Text(ctrl.Body), "b <= 1;"; got != want {
		t.Fatalf("if body: want %q, got %q", want, got)
	}
}

func TestControlsElseChain(t *testing.T) {
	src := "if (a) x = 1; else if (b) y = 2; else z = 3;\n"
	tree := parseVirtual(t, src)

	first := controlAt(t, tree, uint32(strings.Index(src, "if")))
	if got := tree.Text(first.Body); got != "x = 1;" {
		t.Fatalf("then body: got %q", got)
	}

	innerIf := uint32(strings.Index(src, "if (b)"))
	second := controlAt(t, tree, innerIf)
	if got := tree.Text(second.Body); got != "y = 2;" {
		t.Fatalf("else-if body: got %q", got)
	}

	lastElse := uint32(strings.LastIndex(src, "else"))
	third := controlAt(t, tree, lastElse)
	if got := tree.Text(third.Body); got != "z = 3;" {
		t.Fatalf("else body: got %q", got)
	}

	// The else of the else-if arm must not carry its own entry.
	firstElse := uint32(strings.Index(src, "else"))
	for _, ctrl := range tree.Controls() {
		if ctrl.Keyword == firstElse {
			t.Fatalf("else-if arm recorded at the else keyword: %+v", ctrl)
		}
	}
}

func TestControlsBodyIncludesBlock(t *testing.T) {
	src := "if (a) begin\n  x = 1;\n  y = 2;\nend\n"
	tree := parseVirtual(t, src)

	ctrl := controlAt(t, tree, 0)
	if got := tree.Text(ctrl.Body); !strings.HasPrefix(got, "begin") || !strings.HasSuffix(got, "end") {
		t.Fatalf("block body extent: got %q", got)
	}
}

func TestControlsDoWhile(t *testing.T) {
	src := "do begin\n  x = x + 1;\nend while (x < 4);\n"
	tree := parseVirtual(t, src)

	ctrl := controlAt(t, tree, 0)
	if got := tree.Text(ctrl.Body); !strings.HasSuffix(got, "end") {
		t.Fatalf("do body should stop at the block: got %q", got)
	}

	whileOff := uint32(strings.Index(src, "while"))
	for _, c := range tree.Controls() {
		if c.Keyword == whileOff {
			t.Fatalf("trailing while of do-while must not be recorded: %+v", c)
		}
	}
}

func TestControlsLoops(t *testing.T) {
	src := "for (i = 0; i < 4; i++)\n  q[i] <= 0;\nforeach (arr[k]) arr[k] = 0;\nforever #5 clk = ~clk;\n"
	tree := parseVirtual(t, src)

	forCtrl := controlAt(t, tree, uint32(strings.Index(src, "for")))
	if got := tree.Text(forCtrl.Body); got != "q[i] <= 0;" {
		t.Fatalf("for body: got %q", got)
	}

	foreachCtrl := controlAt(t, tree, uint32(strings.Index(src, "foreach")))
	if got := tree.Text(foreachCtrl.Body); got != "arr[k] = 0;" {
		t.Fatalf("foreach body: got %q", got)
	}

	foreverCtrl := controlAt(t, tree, uint32(strings.Index(src, "forever")))
	if got := tree.Text(foreverCtrl.Body); got != "#5 clk = ~clk;" {
		t.Fatalf("forever body: got %q", got)
	}
}

func TestCasesLabelGeometry(t *testing.T) {
	src := "case (sel)\n  2'b00: y = a;\n  2'b01, 2'b10: y = b;\n  default: y = 0;\nendcase\n"
	tree := parseVirtual(t, src)

	blocks := tree.Cases()
	if len(blocks) != 1 {
		t.Fatalf("case blocks: want 1, got %d", len(blocks))
	}
	items := blocks[0].Items
	if len(items) != 3 {
		t.Fatalf("case items: want 3, got %d", len(items))
	}

	widths := make([]int, len(items))
	for i, item := range items {
		widths[i] = int(item.LabelEnd - item.LabelStart)
	}
	// "2'b00", "2'b01, 2'b10", "default"
	wantWidths := []int{5, 12, 7}
	for i := range wantWidths {
		if widths[i] != wantWidths[i] {
			t.Fatalf("item %d width: want %d, got %d", i, wantWidths[i], widths[i])
		}
	}
	for i, item := range items {
		if src[item.Colon] != ':' {
			t.Fatalf("item %d colon offset %d points at %q", i, item.Colon, src[item.Colon])
		}
	}
}

func TestCasesInsideSkipped(t *testing.T) {
	src := "case (x) inside\n  [0:3]: y = 1;\n  default: y = 0;\nendcase\n"
	tree := parseVirtual(t, src)
	if len(tree.Cases()) != 0 {
		t.Fatalf("case inside must not be collected, got %+v", tree.Cases())
	}
}

func TestCasesDefaultWithoutColon(t *testing.T) {
	src := "case (x)\n  1: y = 1;\n  default y = 0;\nendcase\n"
	tree := parseVirtual(t, src)
	blocks := tree.Cases()
	if len(blocks) != 1 || len(blocks[0].Items) != 1 {
		t.Fatalf("default without colon must be skipped: %+v", blocks)
	}
}

func TestCasesRandcase(t *testing.T) {
	src := "randcase\n  3: x = 1;\n  1: x = 2;\nendcase\n"
	tree := parseVirtual(t, src)
	blocks := tree.Cases()
	if len(blocks) != 1 || len(blocks[0].Items) != 2 {
		t.Fatalf("randcase items: %+v", blocks)
	}
}

func TestCasesNested(t *testing.T) {
	src := "case (a)\n  0: case (b)\n    1: y = 1;\n    2: y = 2;\n  endcase\n  1: y = 3;\nendcase\n"
	tree := parseVirtual(t, src)
	blocks := tree.Cases()
	if len(blocks) != 2 {
		t.Fatalf("nested case blocks: want 2, got %d", len(blocks))
	}
	// Outer scan order: the outer block is visited first.
	if len(blocks[0].Items) != 2 || len(blocks[1].Items) != 2 {
		t.Fatalf("nested case item counts: %+v", blocks)
	}
}

func TestLeafTextsCoverWholeFile(t *testing.T) {
	src := "module m; // c\n  wire w;\nendmodule\n"
	tree := parseVirtual(t, src)
	if got := strings.Join(leafTexts(tree), ""); got != src {
		t.Fatalf("leaves must tile the file:\nwant %q\ngot  %q", src, got)
	}
}
