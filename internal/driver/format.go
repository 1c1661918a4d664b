package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"svfmt/internal/config"
	"svfmt/internal/format"
	"svfmt/internal/source"
)

// FormatOptions configures a batch formatting run.
type FormatOptions struct {
	// Config is normalized before use; a zero IndentWidth gets the default.
	Config config.Config
	// Check reports what would change without touching any file.
	Check bool
	// Stdout returns formatted content in the results instead of writing
	// files.
	Stdout bool
	// Jobs caps worker parallelism; zero or negative means GOMAXPROCS.
	Jobs int
	// Cache, when set, is consulted before formatting and updated after.
	Cache *DiskCache
	// Events, when set, receives per-file progress updates.
	Events chan<- Event
}

// FormatResult captures the outcome of formatting a single file.
type FormatResult struct {
	Path       string
	Changed    bool
	FromCache  bool
	Formatted  []byte
	Violations []Violation
	Err        error
}

// FormatPaths formats the files and directories in paths. In check mode
// files are left untouched and Changed reports whether formatting would
// rewrite them; in stdout mode the formatted bytes come back in the
// results; otherwise changed files are rewritten in place.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := CollectFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no SystemVerilog files found")
	}

	cfg := opts.Config.Normalized()
	cfgDigest := cfg.Digest()

	// Load everything up front; the FileSet is read-only once workers run.
	fileSet := source.NewFileSet()
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, loadErr := fileSet.Load(path)
		if loadErr != nil {
			loadErrors[path] = loadErr
			continue
		}
		fileIDs[path] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]FormatResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			emit(opts.Events, Event{File: path, Status: StatusFormatting})
			results[i] = formatOne(path, fileSet, fileIDs, loadErrors, &cfg, cfgDigest, opts)

			status := StatusDone
			switch {
			case results[i].Err != nil:
				status = StatusError
			case results[i].FromCache:
				status = StatusCached
			}
			emit(opts.Events, Event{File: path, Status: status})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatOne(
	path string,
	fileSet *source.FileSet,
	fileIDs map[string]source.FileID,
	loadErrors map[string]error,
	cfg *config.Config,
	cfgDigest Digest,
	opts FormatOptions,
) FormatResult {
	result := FormatResult{Path: path}
	if loadErr, ok := loadErrors[path]; ok {
		result.Err = loadErr
		return result
	}
	sf := fileSet.Get(fileIDs[path])

	var formatted []byte
	var changed, hit bool
	key := CacheKey(sf.Hash, cfgDigest)
	if opts.Cache != nil {
		var payload DiskPayload
		if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
			formatted = payload.Formatted
			changed = payload.Changed
			hit = true
		}
	}

	if !hit {
		out, err := format.File(sf, cfg)
		if err != nil {
			result.Err = err
			return result
		}
		formatted = []byte(out)
		// The comparison baseline gets the trailing newline the formatter
		// guarantees, so a file missing only that is considered formatted.
		changed = !bytes.Equal(formatted, withTrailingNewline(sf.Content))
		if opts.Cache != nil {
			_ = opts.Cache.Put(key, &DiskPayload{
				Schema:    diskCacheSchemaVersion,
				Formatted: formatted,
				Changed:   changed,
			})
		}
	}

	result.FromCache = hit
	result.Changed = changed

	if opts.Check {
		result.Violations = LineLengthViolations(string(formatted), cfg.MaxLineLength)
		return result
	}
	if opts.Stdout {
		result.Formatted = formatted
		return result
	}
	if changed {
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(path, formatted, mode.Perm()); err != nil {
			result.Err = err
		}
	}
	return result
}

func withTrailingNewline(content []byte) []byte {
	if len(content) > 0 && content[len(content)-1] == '\n' {
		return content
	}
	out := make([]byte, 0, len(content)+1)
	out = append(out, content...)
	return append(out, '\n')
}

func emit(ch chan<- Event, ev Event) {
	if ch == nil {
		return
	}
	ch <- ev
}
