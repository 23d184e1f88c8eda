// archdoc compiles architecture annotations into a portable IR and keeps the
// generated documentation honest: merge, schema validation, file-catalog
// reconciliation, drift detection, pattern promotion, fitness checks.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/phobologic/archdoc/internal/catalog"
	"github.com/phobologic/archdoc/internal/config"
	"github.com/phobologic/archdoc/internal/drift"
	"github.com/phobologic/archdoc/internal/fitness"
	"github.com/phobologic/archdoc/internal/health"
	"github.com/phobologic/archdoc/internal/ir"
	"github.com/phobologic/archdoc/internal/merge"
	"github.com/phobologic/archdoc/internal/promote"
	"github.com/phobologic/archdoc/internal/render"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return fmt.Errorf("no command given")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "validate":
		return runValidate(rest, stdout, stderr)
	case "merge":
		return runMerge(rest, stdout, stderr)
	case "files":
		return runFiles(rest, stdout, stderr)
	case "check":
		return runCheck(rest, stdout, stderr)
	case "promote":
		return runPromote(rest, stdout, stderr)
	case "fitness":
		return runFitness(rest, stdout, stderr)
	case "health":
		return runHealth(rest, stdout, stderr)
	case "render":
		return runRender(rest, stdout, stderr)
	case "init":
		return runInit(rest, stdout, stderr)
	case "version", "-V", "--version":
		_, _ = fmt.Fprintf(stdout, "archdoc %s\n", version)
		return nil
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	}

	usage(stderr)
	return fmt.Errorf("unknown command %q", cmd)
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `Usage: archdoc <command> [flags] [ir-file...]

Commands:
  validate   check serialized IR against the schema
  merge      merge IR sets from multiple adapters into one
  files      reconcile declared file catalogs against the filesystem
  check      detect drift between the IR and persisted documentation
  promote    upgrade pattern claims with structural evidence
  fitness    run architectural fitness functions
  health     aggregate file maturity and pattern confidence
  render     write documentation artifacts from the IR
  init       write a starter .archdoc.yml
  version    print the version
`)
}

func newLogger(stderr io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).Level(level)
}

// irPaths resolves a command's IR inputs: positional arguments win, then the
// project config's ir_files.
func irPaths(args []string, cfg *config.Config) []string {
	if len(args) > 0 {
		return args
	}
	return cfg.IRFiles
}

// loadSets reads and decodes one IR set per path, preserving input order.
func loadSets(paths []string) ([][]ir.ModuleDoc, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no IR files given")
	}
	var sets [][]ir.ModuleDoc
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		docs, err := ir.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		sets = append(sets, docs)
	}
	return sets, nil
}

func loadMerged(paths []string, logger zerolog.Logger) ([]ir.ModuleDoc, error) {
	sets, err := loadSets(paths)
	if err != nil {
		return nil, err
	}
	return merge.Merge(sets, logger)
}

func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func runValidate(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("archdoc validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cfgPath string
	fs.StringVar(&cfgPath, "config", config.DefaultPath, "project config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return err
	}
	paths := irPaths(fs.Args(), cfg)
	if len(paths) == 0 {
		return fmt.Errorf("no IR files given")
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if err := ir.Validate(data); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		_, _ = fmt.Fprintf(stdout, "%s: ok\n", path)
	}
	return nil
}

func runMerge(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("archdoc merge", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var out, cfgPath string
	var verbose bool
	fs.StringVar(&out, "o", "", "write merged IR to this file instead of stdout")
	fs.StringVar(&cfgPath, "config", config.DefaultPath, "project config file")
	fs.BoolVar(&verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return err
	}
	merged, err := loadMerged(irPaths(fs.Args(), cfg), newLogger(stderr, verbose))
	if err != nil {
		return err
	}
	data, err := ir.Encode(merged)
	if err != nil {
		return err
	}
	return writeOutput(out, data, stdout)
}

func runFiles(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("archdoc files", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var root, cfgPath string
	var strict, verbose bool
	fs.StringVar(&root, "root", "", "project root used for .gitignore lookup")
	fs.StringVar(&cfgPath, "config", config.DefaultPath, "project config file")
	fs.BoolVar(&strict, "strict", false, "exit non-zero when the report is not clean")
	fs.BoolVar(&verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return err
	}
	if root == "" {
		root = cfg.Root
	}

	docs, err := loadMerged(irPaths(fs.Args(), cfg), newLogger(stderr, verbose))
	if err != nil {
		return err
	}

	report := catalog.Validate(docs, catalog.Options{Root: root})
	_, _ = io.WriteString(stdout, catalog.FormatReport(&report))
	if strict && !report.IsClean() {
		return fmt.Errorf("file validation found %d ghost(s) and %d orphan(s)",
			len(report.Ghosts), len(report.Orphans))
	}
	return nil
}

func runCheck(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("archdoc check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cfgPath, docsPath, strategyFlag string
	var strict, verbose bool
	fs.StringVar(&cfgPath, "config", config.DefaultPath, "project config file")
	fs.StringVar(&docsPath, "docs", "", "persisted document file or docs directory")
	fs.StringVar(&strategyFlag, "strategy", "", "drift strategy: document or tree")
	fs.BoolVar(&strict, "strict", false, "exit non-zero when drift is detected")
	fs.BoolVar(&verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return err
	}
	if strategyFlag == "" {
		strategyFlag = cfg.DriftStrategy
	}
	strategy, err := drift.ParseStrategy(strategyFlag)
	if err != nil {
		return err
	}
	if docsPath == "" {
		if strategy == drift.StrategyTree {
			docsPath = cfg.DocsDir
		} else {
			docsPath = cfg.ArchitectureFile
		}
	}

	docs, err := loadMerged(irPaths(fs.Args(), cfg), newLogger(stderr, verbose))
	if err != nil {
		return err
	}

	report, err := drift.Check(docs, render.Markdown{}, docsPath, strategy)
	if err != nil {
		return err
	}
	_, _ = io.WriteString(stdout, drift.FormatReport(&report))
	if strict && report.HasDrift() {
		return fmt.Errorf("documentation drift detected")
	}
	return nil
}

func runPromote(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("archdoc promote", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var out, cfgPath string
	var verbose bool
	fs.StringVar(&out, "o", "", "write promoted IR to this file instead of stdout")
	fs.StringVar(&cfgPath, "config", config.DefaultPath, "project config file")
	fs.BoolVar(&verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return err
	}
	logger := newLogger(stderr, verbose)
	docs, err := loadMerged(irPaths(fs.Args(), cfg), logger)
	if err != nil {
		return err
	}

	promoted, count := promote.Run(docs, logger)
	_, _ = fmt.Fprintf(stderr, "promoted %d module(s)\n", count)

	data, err := ir.Encode(promoted)
	if err != nil {
		return err
	}
	return writeOutput(out, data, stdout)
}

func runFitness(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("archdoc fitness", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var name, cfgPath string
	var strict, verbose bool
	fs.StringVar(&name, "name", "", "run a single fitness function (default: config list, then all)")
	fs.StringVar(&cfgPath, "config", config.DefaultPath, "project config file")
	fs.BoolVar(&strict, "strict", false, "exit non-zero when any check fails")
	fs.BoolVar(&verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return err
	}
	docs, err := loadMerged(irPaths(fs.Args(), cfg), newLogger(stderr, verbose))
	if err != nil {
		return err
	}

	names := cfg.Fitness
	if name != "" {
		names = []string{name}
	}

	var results []fitness.Result
	if len(names) > 0 {
		for _, n := range names {
			result, ok := fitness.Run(n, docs)
			if !ok {
				return fmt.Errorf("fitness function %q not found (known: %s)",
					n, strings.Join(fitness.Names(), ", "))
			}
			results = append(results, result)
		}
	} else {
		results = fitness.RunAll(docs)
	}

	failed := 0
	for i := range results {
		_, _ = io.WriteString(stdout, fitness.FormatResult(&results[i]))
		if !results[i].Passed {
			failed++
		}
	}
	if strict && failed > 0 {
		return fmt.Errorf("%d fitness check(s) failed", failed)
	}
	return nil
}

func runHealth(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("archdoc health", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cfgPath string
	var verbose bool
	fs.StringVar(&cfgPath, "config", config.DefaultPath, "project config file")
	fs.BoolVar(&verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return err
	}
	docs, err := loadMerged(irPaths(fs.Args(), cfg), newLogger(stderr, verbose))
	if err != nil {
		return err
	}

	report := health.Aggregate(docs)
	_, _ = io.WriteString(stdout, health.FormatReport(&report))
	return nil
}

func runRender(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("archdoc render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var out, strategyFlag, cfgPath string
	var verbose bool
	fs.StringVar(&out, "o", "", "output file (document) or directory (tree)")
	fs.StringVar(&strategyFlag, "strategy", "document", "render strategy: document or tree")
	fs.StringVar(&cfgPath, "config", config.DefaultPath, "project config file")
	fs.BoolVar(&verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	strategy, err := drift.ParseStrategy(strategyFlag)
	if err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return err
	}
	docs, err := loadMerged(irPaths(fs.Args(), cfg), newLogger(stderr, verbose))
	if err != nil {
		return err
	}

	if strategy == drift.StrategyDocument {
		return writeOutput(out, []byte(render.Markdown{}.Document(docs)), stdout)
	}

	if out == "" {
		return fmt.Errorf("tree rendering requires -o <directory>")
	}
	artifacts := render.Markdown{}.Tree(docs)
	for relPath, content := range artifacts {
		target := filepath.Join(out, filepath.FromSlash(relPath))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
		}
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", target, err)
		}
	}
	return nil
}
