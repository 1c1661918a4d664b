package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CollectFiles expands the given files and directories into a sorted,
// deduplicated list of SystemVerilog sources. Directories are walked
// recursively; extensions are matched case-insensitively.
func CollectFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if d.IsDir() {
					return nil
				}
				if isSourceFile(path) {
					addFile(path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		if isSourceFile(p) {
			addFile(p)
		}
	}

	sort.Strings(files)
	return files, nil
}

func isSourceFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sv", ".svh", ".v", ".vh":
		return true
	}
	return false
}
