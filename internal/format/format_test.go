package format

import (
	"strings"
	"testing"

	"svfmt/internal/config"
	"svfmt/internal/syntax"
)

func formatString(t *testing.T, input string, cfg config.Config) string {
	t.Helper()
	out, err := Source("test.sv", []byte(input), &cfg)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	return out
}

func TestFormatsBasicStructure(t *testing.T) {
	input := "module top;\n" +
		"initial begin\n" +
		"if(a)b<=c;\n" +
		"else\n" +
		"c<=d;\n" +
		"end\n" +
		"endmodule\n"
	want := "module top;\n" +
		"  initial begin\n" +
		"    if (a) b <= c;\n" +
		"    else\n" +
		"    c <= d;\n" +
		"  end\n" +
		"endmodule\n"

	got := formatString(t, input, config.Default())
	if got != want {
		t.Fatalf("output mismatch:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestAlignsPreprocessorLeft(t *testing.T) {
	input := "module x;\n" +
		"  `ifdef FOO\n" +
		"    assign a = b,c,d;\n" +
		"  `else\n" +
		"foo ( bar );\n" +
		"  `endif\n" +
		"endmodule\n"

	got := formatString(t, input, config.Default())
	for _, line := range strings.Split(got, "\n") {
		if strings.HasPrefix(line, "`") {
			continue
		}
		if strings.Contains(line, "`") && strings.HasPrefix(line, " ") {
			t.Fatalf("directive must be left aligned: %q\nfull output:\n%s", line, got)
		}
	}
}

func TestIndentsPreprocessorWhenAlignmentDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.AlignPreprocessor = false
	input := "module x;\n`ifdef FOO\nassign a = 1;\n`endif\nendmodule\n"

	got := formatString(t, input, cfg)
	if !strings.Contains(got, "\n  `ifdef FOO\n") {
		t.Fatalf("directive should follow block indentation:\n%s", got)
	}
}

func TestCallAndCommaSpacing(t *testing.T) {
	input := "module x;\ninitial begin\nfoo (a,b ,c);\nend\nendmodule\n"
	got := formatString(t, input, config.Default())
	if !strings.Contains(got, "foo(a, b, c);") {
		t.Fatalf("expected normalized call spacing:\n%s", got)
	}
}

func TestCallSpaceKeptWhenDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.RemoveCallSpace = false
	input := "module x;\ninitial begin\nfoo (a,b);\nend\nendmodule\n"
	got := formatString(t, input, cfg)
	if !strings.Contains(got, "foo (a, b)") {
		t.Fatalf("call paren should keep its separating space:\n%s", got)
	}
}

func TestInlineEndElseOneLine(t *testing.T) {
	input := "module x;\n" +
		"initial begin\n" +
		"if (a) begin\n" +
		"  do_something();\n" +
		"end\n" +
		"else begin\n" +
		"  other();\n" +
		"end\n" +
		"end\n" +
		"endmodule\n"

	got := formatString(t, input, config.Default())
	if !strings.Contains(got, "end else begin") {
		t.Fatalf("expected inline end else, got:\n%s", got)
	}
}

func TestInlineEndElseDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.InlineEndElse = false
	input := "module x;\ninitial begin\nif (a) begin\nend\nelse begin\nend\nend\nendmodule\n"
	got := formatString(t, input, cfg)
	if strings.Contains(got, "end else") {
		t.Fatalf("end and else must stay on separate lines:\n%s", got)
	}
}

func TestWrapsMultilineBlocksWhenEnabled(t *testing.T) {
	input := "module x;\n" +
		"initial begin\n" +
		"if (cond)\n" +
		"  a <= 1;\n" +
		"  b <= 2;\n" +
		"end\n" +
		"endmodule\n"
	want := "module x;\n" +
		"  initial begin\n" +
		"    if (cond)\n" +
		"    begin\n" +
		"      a <= 1;\n" +
		"      b <= 2;\n" +
		"    end\n" +
		"  end\n" +
		"endmodule\n"

	got := formatString(t, input, config.Default())
	if got != want {
		t.Fatalf("output mismatch:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestDoesNotWrapSingleStatementBody(t *testing.T) {
	input := "module x;\n" +
		"initial begin\n" +
		"if (cond)\n" +
		"  a <= 1;\n" +
		"end\n" +
		"endmodule\n"

	got := formatString(t, input, config.Default())
	if strings.Contains(got, "begin\n      a") {
		t.Fatalf("single statement body must not be wrapped:\n%s", got)
	}
}

func TestDoesNotWrapCaseStatementBody(t *testing.T) {
	input := "module x;\n" +
		"always_comb begin\n" +
		"if (cond)\n" +
		"  case(sel)\n" +
		"    0: foo <= 1;\n" +
		"    default: foo <= 0;\n" +
		"  endcase\n" +
		"end\n" +
		"endmodule\n"

	got := formatString(t, input, config.Default())
	if strings.Contains(got, "if (cond)\n    begin") {
		t.Fatalf("case body should not trigger auto begin:\n%s", got)
	}
}

func TestKeepsBodyWhenWrapDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.WrapMultilineBlocks = false
	input := "module x;\n" +
		"initial begin\n" +
		"if (cond)\n" +
		"  a <= 1;\n" +
		"  b <= 2;\n" +
		"end\n" +
		"endmodule\n"

	got := formatString(t, input, cfg)
	if strings.Contains(got, "if (cond)\n    begin") {
		t.Fatalf("unexpected begin insertion:\n%s", got)
	}
}

func TestCommentSpacingRules(t *testing.T) {
	input := "module x;\n" +
		"initial begin\n" +
		"//leading\n" +
		"assign a = 1;   //  trailing\n" +
		"/* block comment */\n" +
		"assign b = 2;\n" +
		"end\n" +
		"endmodule\n"

	got := formatString(t, input, config.Default())
	if !strings.Contains(got, "  //leading") {
		t.Fatalf("leading comment should only have indent:\n%s", got)
	}
	if !strings.Contains(got, "assign a = 1; //  trailing") {
		t.Fatalf("inline comment should have a single separator space:\n%s", got)
	}
	if !strings.Contains(got, "\n\n    /* block comment */\n\n") {
		t.Fatalf("block comment should be surrounded by blank lines:\n%s", got)
	}
}

func TestAlignsCaseColons(t *testing.T) {
	input := "module x;\n" +
		"always_comb begin\n" +
		"case(sel)\n" +
		"  2'b0: foo = 0;\n" +
		"  4'b1010: foo = 1;\n" +
		"  default: foo = 2;\n" +
		"endcase\n" +
		"end\n" +
		"endmodule\n"

	got := formatString(t, input, config.Default())
	var short string
	for _, line := range strings.Split(got, "\n") {
		if strings.Contains(line, "foo = 0;") {
			short = line
			break
		}
	}
	if short == "" {
		t.Fatalf("missing short case item:\n%s", got)
	}
	if !strings.Contains(short, "0    :") {
		t.Fatalf("short label should be padded before colon:\n%s", got)
	}
}

func TestCaseAlignmentDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.AlignCaseColon = false
	input := "module x;\ncase(sel)\n  2'b0: a = 0;\n  4'b1010: a = 1;\nendcase\nendmodule\n"
	got := formatString(t, input, cfg)
	if strings.Contains(got, "0    :") {
		t.Fatalf("colons must not be padded when alignment is off:\n%s", got)
	}
}

func TestSingleBranchCaseNotAligned(t *testing.T) {
	input := "module x;\ncase(sel)\n  2'b0: a = 0;\nendcase\nendmodule\n"
	got := formatString(t, input, config.Default())
	if !strings.Contains(got, "2'b0 : a = 0;") {
		t.Fatalf("single branch gets no padding:\n%s", got)
	}
	if strings.Contains(got, "2'b0  :") {
		t.Fatalf("single branch must not be padded:\n%s", got)
	}
}

func TestAddsBlankLinesAroundDeclarations(t *testing.T) {
	input := "package demo;\n" +
		"class foo;\n" +
		"endclass\n" +
		"class bar;\n" +
		"endclass\n" +
		"endpackage\n" +
		"interface baz();\n" +
		"endinterface\n"
	want := "package demo;\n" +
		"\n" +
		"  class foo;\n" +
		"  endclass\n" +
		"\n" +
		"  class bar;\n" +
		"  endclass\n" +
		"endpackage\n" +
		"\n" +
		"interface baz();\n" +
		"  endinterface\n"

	got := formatString(t, input, config.Default())
	if got != want {
		t.Fatalf("output mismatch:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestAutoWrapsLongLinesWhenEnabled(t *testing.T) {
	cfg := config.Default()
	cfg.AutoWrapLongLines = true
	cfg.MaxLineLength = 20
	input := "module x;\nassign data = {foo, bar, baz, quux};\nendmodule\n"

	got := formatString(t, input, cfg)
	var assignLine, continuation string
	for _, line := range strings.Split(got, "\n") {
		if strings.Contains(line, "assign data") {
			assignLine = line
		}
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), "bar, baz") {
			continuation = line
		}
	}
	if !strings.Contains(assignLine, "{foo,") {
		t.Fatalf("first line should hold the start of the concatenation:\n%s", got)
	}
	if continuation == "" {
		t.Fatalf("missing continuation line:\n%s", got)
	}
	if !strings.HasPrefix(continuation, "  ") && !strings.HasPrefix(continuation, "\t") {
		t.Fatalf("continuation line should be indented:\n%s", got)
	}
}

func TestUseTabsIndentation(t *testing.T) {
	cfg := config.Default()
	cfg.UseTabs = true
	input := "module x;\ninitial begin\na = 1;\nend\nendmodule\n"
	got := formatString(t, input, cfg)
	if !strings.Contains(got, "\n\t\ta = 1;\n") {
		t.Fatalf("expected tab indentation:\n%s", got)
	}
}

func TestEmptyInputYieldsNewline(t *testing.T) {
	got := formatString(t, "", config.Default())
	if got != "\n" {
		t.Fatalf("empty input: want %q, got %q", "\n", got)
	}
}

func TestOutputEndsWithSingleNewline(t *testing.T) {
	inputs := []string{
		"module m; endmodule",
		"module m; endmodule\n\n\n",
		"// just a comment",
	}
	for _, input := range inputs {
		got := formatString(t, input, config.Default())
		if !strings.HasSuffix(got, "\n") || strings.HasSuffix(got, "\n\n") {
			t.Fatalf("input %q: output must end with exactly one newline, got %q", input, got)
		}
	}
}

func TestFormattingIsIdempotent(t *testing.T) {
	inputs := []string{
		"module top;\ninitial begin\nif(a)b<=c;\nelse\nc<=d;\nend\nendmodule\n",
		"module x;\ncase(sel)\n  2'b0: a = 0;\n  4'b1010: a = 1;\n  default: a = 2;\nendcase\nendmodule\n",
		"package demo;\nclass foo;\nendclass\nclass bar;\nendclass\nendpackage\n",
		"module x;\ninitial begin\nif (cond)\n  a <= 1;\n  b <= 2;\nend\nendmodule\n",
	}
	cfg := config.Default()
	for _, input := range inputs {
		once := formatString(t, input, cfg)
		twice := formatString(t, once, cfg)
		if once != twice {
			t.Fatalf("not idempotent for %q:\nfirst:\n%s\nsecond:\n%s", input, once, twice)
		}
	}
}

func TestParseErrorPropagates(t *testing.T) {
	cfg := config.Default()
	_, err := Source("bad.sv", []byte("module m; /* open\n"), &cfg)
	if err == nil {
		t.Fatal("expected error for unterminated comment")
	}
	if _, ok := err.(*syntax.ParseError); !ok {
		t.Fatalf("expected *syntax.ParseError, got %T: %v", err, err)
	}
}

func TestWrapLineNoBreakPointKeptWhole(t *testing.T) {
	cfg := config.Default()
	cfg.MaxLineLength = 10
	line := "abcdefghijklmnopqrstuvwxyz"
	got := wrapLine(line, &cfg)
	if len(got) != 1 || got[0] != line {
		t.Fatalf("line without break points must pass through, got %q", got)
	}
}

func TestWrapOutputSkipsCommentLines(t *testing.T) {
	cfg := config.Default()
	cfg.MaxLineLength = 10
	text := "// a very long comment line that stays whole\n"
	if got := wrapOutput(text, &cfg); got != text {
		t.Fatalf("comment lines must not be wrapped:\nwant %q\ngot  %q", text, got)
	}
}

func TestZeroIndentWidthFallsBackToDefault(t *testing.T) {
	cfg := config.Default()
	cfg.IndentWidth = 0
	cfg = cfg.Normalized()
	got := formatString(t, "module m;\nwire w;\nendmodule\n", cfg)
	if !strings.Contains(got, "\n  wire w;\n") {
		t.Fatalf("zero indent width should format with two spaces:\n%s", got)
	}
}
