// Package syntax is the grammar-level collaborator of the formatter. It
// turns raw SystemVerilog text into a tree traversable as enter/leave
// events over whitespace runs, comments, compiler directives, and code leaf
// spans, and exposes structured views of control statements and selection
// blocks for the structural analysis passes.
//
// The package recognizes exactly as much grammar as the formatter needs:
// byte-located leaves, the governed-statement extent of conditionals and
// loops, and the label/colon geometry of case items. It is not a compiler
// front end and accepts any token soup that lexes cleanly.
package syntax
