// Package format renders a parsed SystemVerilog file back to text with
// normalized indentation, spacing, and block structure. It projects the
// parse tree into a flat token stream, runs two structural passes (governed
// statement extents and case label alignment), and feeds the stream through
// a single-pass emission engine. An optional post-pass wraps lines that
// exceed the configured length.
package format
