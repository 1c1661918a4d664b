package format

import (
	"svfmt/internal/config"
	"svfmt/internal/source"
	"svfmt/internal/syntax"
)

// File parses and formats one source file. The result always ends with
// exactly one newline; empty input formats to a single newline.
func File(sf *source.File, cfg *config.Config) (string, error) {
	tree, err := syntax.Parse(sf)
	if err != nil {
		return "", err
	}
	return Tree(tree, cfg), nil
}

// Tree formats an already parsed file.
func Tree(tree *syntax.Tree, cfg *config.Config) string {
	eng := newEngine(cfg, Tokens(tree), collectBodySpans(tree), collectCaseAlignment(tree))
	return eng.run()
}

// Source formats a raw buffer under the given display name. The name only
// appears in diagnostics.
func Source(name string, src []byte, cfg *config.Config) (string, error) {
	fs := source.NewFileSet()
	fileID, err := fs.AddVirtual(name, src)
	if err != nil {
		return "", err
	}
	return File(fs.Get(fileID), cfg)
}
