package token

import "strings"

// keywords is the fixed set of structural keywords the formatter reacts to.
// Everything else identifier-shaped stays an Identifier, so declarations
// like `assign` or `always_comb` pass through with generic spacing.
var keywords = map[string]struct{}{
	"module":       {},
	"endmodule":    {},
	"class":        {},
	"endclass":     {},
	"function":     {},
	"endfunction":  {},
	"task":         {},
	"endtask":      {},
	"package":      {},
	"endpackage":   {},
	"begin":        {},
	"end":          {},
	"case":         {},
	"endcase":      {},
	"casex":        {},
	"casez":        {},
	"randcase":     {},
	"randsequence": {},
	"endsequence":  {},
	"fork":         {},
	"join":         {},
	"join_any":     {},
	"join_none":    {},
	"generate":     {},
	"endgenerate":  {},
	"interface":    {},
	"endinterface": {},
	"covergroup":   {},
	"endgroup":     {},
	"if":           {},
	"else":         {},
	"for":          {},
	"foreach":      {},
	"while":        {},
	"do":           {},
	"forever":      {},
}

// IsKeywordText reports whether text is a structural keyword,
// case-insensitively.
func IsKeywordText(text string) bool {
	_, ok := keywords[strings.ToLower(text)]
	return ok
}
