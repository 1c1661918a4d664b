// Package token defines the classified token stream the formatter consumes:
// the token record itself, the kind taxonomy, and the fixed keyword and
// punctuation tables used for classification.
package token
