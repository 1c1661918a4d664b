package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"svfmt/internal/driver"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format SystemVerilog source files",
	Long: `Fmt rewrites SystemVerilog sources into canonical form. A single file
prints to stdout by default; use --in-place to rewrite files or --check
to report which files need formatting without touching them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "report files that need formatting without rewriting them")
	fmtCmd.Flags().BoolP("in-place", "i", false, "rewrite files instead of printing to stdout")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("no-cache", false, "skip the on-disk formatting cache")
	fmtCmd.Flags().Bool("progress", false, "show live per-file progress (requires a terminal)")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	inPlace, err := cmd.Flags().GetBool("in-place")
	if err != nil {
		return err
	}
	stdoutFlag, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	showProgress, err := cmd.Flags().GetBool("progress")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return err
	}

	if check && inPlace {
		return fmt.Errorf("fmt: --check cannot be used with --in-place")
	}
	if stdoutFlag && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if stdoutFlag && inPlace {
		return fmt.Errorf("fmt: --stdout cannot be used with --in-place")
	}
	toStdout := stdoutFlag || (!check && !inPlace)
	if toStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: stdout output is only supported with text format")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	files, err := driver.CollectFiles(cmd.Context(), args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("fmt: no SystemVerilog files found")
	}
	if toStdout && len(files) > 1 {
		return fmt.Errorf("fmt: formatting multiple files requires --in-place or --check")
	}

	var cache *driver.DiskCache
	if !noCache {
		// A broken cache directory must not block formatting.
		cache, _ = driver.OpenDiskCache("svfmt")
	}

	opts := driver.FormatOptions{
		Config: cfg,
		Check:  check,
		Stdout: toStdout,
		Jobs:   jobs,
		Cache:  cache,
	}

	var results []driver.FormatResult
	if showProgress && !toStdout && !quiet && isTerminal(os.Stdout) {
		results, err = runFormatWithUI(cmd.Context(), "formatting", files, opts)
	} else {
		results, err = driver.FormatPaths(cmd.Context(), files, opts)
	}
	if err != nil {
		return err
	}

	switch outputFormat {
	case "text":
		return renderFmtText(results, cfg.MaxLineLength, check, toStdout, quiet)
	case "json":
		return renderFmtJSON(results, check)
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}
}

func renderFmtText(results []driver.FormatResult, maxLineLength int, check, toStdout, quiet bool) error {
	var hasErrors, hasChanges bool
	warn := color.New(color.FgYellow)

	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}

		if toStdout {
			_, _ = os.Stdout.Write(res.Formatted)
			continue
		}

		if check {
			if res.Changed {
				hasChanges = true
				warn.Fprintf(os.Stderr, "needs formatting: %s\n", res.Path)
			}
			for _, v := range res.Violations {
				hasChanges = true
				warn.Fprintf(os.Stderr, "line %d has %d columns (max %d) in %s\n",
					v.Line, v.Columns, maxLineLength, res.Path)
			}
			continue
		}

		if res.Changed && !quiet {
			fmt.Fprintf(os.Stdout, "reformatted %s\n", res.Path)
		}
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

func renderFmtJSON(results []driver.FormatResult, check bool) error {
	type jsonViolation struct {
		Line    int `json:"line"`
		Columns int `json:"columns"`
	}
	type jsonResult struct {
		Path       string          `json:"path"`
		Changed    bool            `json:"changed"`
		FromCache  bool            `json:"from_cache"`
		Error      string          `json:"error,omitempty"`
		Violations []jsonViolation `json:"violations,omitempty"`
		CheckRun   bool            `json:"check"`
	}

	var hasErrors, hasChanges bool
	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{
			Path:      res.Path,
			Changed:   res.Changed,
			FromCache: res.FromCache,
			CheckRun:  check,
		}
		if res.Err != nil {
			hasErrors = true
			jr.Error = res.Err.Error()
		}
		if res.Changed || len(res.Violations) > 0 {
			hasChanges = true
		}
		for _, v := range res.Violations {
			jr.Violations = append(jr.Violations, jsonViolation{Line: v.Line, Columns: v.Columns})
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}
