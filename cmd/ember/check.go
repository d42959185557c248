package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ember/internal/diag"
	"ember/internal/diagfmt"
	"ember/internal/driver"
	"ember/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.hir.json|directory>",
	Short: "Check attribute usage in HIR dumps",
	Long:  `Check attribute placement and combinations in a single HIR dump or in every *.hir.json file within a directory`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

// init registers CLI flags for the check command used by runCheck.
// It configures output format, target selection, warning handling,
// concurrency, caching and the progress UI.
func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	checkCmd.Flags().String("target", "", "target triple, overrides ember.toml")
	checkCmd.Flags().Bool("require-wasm-import-module", false, "require @wasm_import_module on foreign modules, overrides ember.toml")
	checkCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("disk-cache", false, "enable persistent disk cache for check results")
	checkCmd.Flags().String("cache-dir", "", "override disk cache location")
	checkCmd.Flags().String("ui", "auto", "progress UI for directory runs (auto|on|off)")
}

// runCheck executes the "check" command: it merges ember.toml settings with
// command flags, runs the attribute pass for the provided path (single dump
// or directory), renders the results in the chosen output format and exits
// with a non-zero status when any diagnostics contain errors.
func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	triple, err := cmd.Flags().GetString("target")
	if err != nil {
		return fmt.Errorf("failed to get target flag: %w", err)
	}

	requireWasm, err := cmd.Flags().GetBool("require-wasm-import-module")
	if err != nil {
		return fmt.Errorf("failed to get require-wasm-import-module flag: %w", err)
	}

	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}

	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}

	if noWarnings && warningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}

	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}

	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	diskCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return fmt.Errorf("failed to get disk-cache flag: %w", err)
	}

	cacheDir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return fmt.Errorf("failed to get cache-dir flag: %w", err)
	}

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	// Манифест задаёт умолчания, явные флаги его перекрывают.
	manifest, err := loadManifestFor(manifestStartDir(path, st.IsDir()))
	if err != nil {
		return err
	}
	opts := resolveDriverOptions(manifest, checkSettings{
		triple:           triple,
		requireWasmSet:   cmd.Flags().Changed("require-wasm-import-module"),
		requireWasm:      requireWasm,
		maxDiagnostics:   maxDiagnostics,
		ignoreWarnings:   noWarnings,
		warningsAsErrors: warningsAsErrors,
		enableTimings:    showTimings,
		jobs:             jobs,
	})

	if diskCache {
		cache, cacheErr := openCheckCache(cacheDir)
		if cacheErr != nil {
			// Кэш не обязателен: проверка продолжается без него.
			if !quiet {
				fmt.Fprintf(os.Stderr, "warning: disk cache disabled: %v\n", cacheErr)
			}
		} else {
			opts.Cache = cache
		}
	}

	output := checkOutput{
		format:    format,
		useColor:  colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout)),
		pathMode:  diagfmt.PathModeAuto,
		withNotes: withNotes,
		showFixes: suggest,
		quiet:     quiet,
	}
	if fullPath {
		output.pathMode = diagfmt.PathModeAbsolute
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}

	var (
		exitCode  int
		resultErr error
	)
	if !st.IsDir() {
		exitCode, resultErr = checkSingleFile(path, opts, output)
	} else {
		exitCode, resultErr = checkDirectory(cmd, path, opts, output, uiValue)
	}

	// Always cleanup profiler
	cleanup()

	if resultErr != nil {
		return resultErr
	}
	if exitCode != 0 {
		// Suppress cobra usage output on diagnostic errors
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // Silent error - diagnostics already printed
	}
	return nil
}

func checkSingleFile(path string, opts driver.Options, o checkOutput) (int, error) {
	res := driver.CheckFile(path, opts)

	exit := 0
	if res.Bag.HasErrors() {
		exit = 1
	}
	if err := printFileResult(os.Stdout, res, o); err != nil {
		return 0, err
	}
	return exit, nil
}

func checkDirectory(cmd *cobra.Command, dir string, opts driver.Options, o checkOutput, uiValue string) (int, error) {
	mode, err := readUIMode(uiValue)
	if err != nil {
		return 0, err
	}
	// TUI рисует в stdout, поэтому включаем его только для pretty-формата.
	useTUI := o.format == "pretty" && shouldUseTUI(mode)

	var results []driver.Result
	if useTUI {
		files, listErr := driver.ListDumps(dir)
		if listErr != nil {
			return 0, fmt.Errorf("check failed: %w", listErr)
		}
		if len(files) > 0 {
			results, err = runCheckDirWithUI(cmd.Context(), "ember check "+dir, dir, files, opts)
		}
	} else {
		results, err = driver.CheckDir(cmd.Context(), dir, opts)
	}
	if err != nil {
		return 0, fmt.Errorf("check failed: %w", err)
	}

	exit := 0
	for i := range results {
		if results[i].Bag.HasErrors() {
			exit = 1
			break
		}
	}
	if err := printDirResults(os.Stdout, results, o); err != nil {
		return 0, err
	}
	return exit, nil
}

// checkOutput keeps the flag values that shape diagnostic rendering.
type checkOutput struct {
	format    string
	useColor  bool
	pathMode  diagfmt.PathMode
	withNotes bool
	showFixes bool
	quiet     bool
}

func (o checkOutput) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     o.useColor,
		Context:   2,
		PathMode:  o.pathMode,
		ShowNotes: o.withNotes,
		ShowFixes: o.showFixes,
	}
}

func (o checkOutput) jsonOpts() diagfmt.JSONOpts {
	return diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         o.pathMode,
		IncludeNotes:     o.withNotes,
		IncludeFixes:     o.showFixes,
	}
}

func (o checkOutput) sarifMeta() diagfmt.SarifRunMeta {
	// version.Version содержит ANSI-коды, в SARIF идёт чистая строка.
	return diagfmt.SarifRunMeta{
		ToolName:       "ember",
		ToolVersion:    "0.1.0",
		InvocationArgs: os.Args[1:],
	}
}

func printFileResult(out io.Writer, res *driver.Result, o checkOutput) error {
	switch o.format {
	case "pretty":
		diagfmt.Pretty(out, res.Bag, res.FileSet, o.prettyOpts())
	case "short":
		text := diag.FormatShortDiagnostics(res.Bag.Items(), res.FileSet, o.withNotes)
		if text != "" {
			fmt.Fprintln(out, text)
		}
	case "json":
		if err := diagfmt.JSON(out, res.Bag, res.FileSet, o.jsonOpts()); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	case "sarif":
		if err := diagfmt.Sarif(out, res.Bag, res.FileSet, o.sarifMeta()); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", o.format)
	}
	return nil
}

func printDirResults(out io.Writer, results []driver.Result, o checkOutput) error {
	switch o.format {
	case "pretty":
		printed := 0
		for i := range results {
			r := &results[i]
			if o.quiet && len(r.Bag.Items()) == 0 {
				continue
			}
			if printed > 0 {
				fmt.Fprintln(out)
			}
			printed++
			fmt.Fprintf(out, "== %s ==\n", displayPath(r.Path, o.pathMode))
			diagfmt.Pretty(out, r.Bag, r.FileSet, o.prettyOpts())
		}
	case "short":
		// Результаты уже отсортированы по пути, конкатенация сохраняет
		// порядок глобальной сортировки.
		parts := make([]string, 0, len(results))
		for i := range results {
			r := &results[i]
			text := diag.FormatShortDiagnostics(r.Bag.Items(), r.FileSet, o.withNotes)
			if text != "" {
				parts = append(parts, text)
			}
		}
		if len(parts) > 0 {
			fmt.Fprintln(out, strings.Join(parts, "\n"))
		}
	case "json":
		output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
		for i := range results {
			r := &results[i]
			output[displayPath(r.Path, o.pathMode)] = diagfmt.BuildDiagnosticsOutput(r.Bag, r.FileSet, o.jsonOpts())
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("failed to encode diagnostics output: %w", err)
		}
	case "sarif":
		meta := o.sarifMeta()
		for i := range results {
			r := &results[i]
			if err := diagfmt.Sarif(out, r.Bag, r.FileSet, meta); err != nil {
				return fmt.Errorf("failed to format diagnostics: %w", err)
			}
		}
	default:
		return fmt.Errorf("unknown format: %s", o.format)
	}
	return nil
}

// displayPath форматирует путь дампа для заголовков и ключей вывода.
func displayPath(path string, mode diagfmt.PathMode) string {
	if mode == diagfmt.PathModeAbsolute {
		if abs, err := source.AbsolutePath(path); err == nil {
			return abs
		}
	}
	return path
}
