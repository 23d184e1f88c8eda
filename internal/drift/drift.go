// Package drift proves that previously published documentation still matches
// what the current IR renders to. It is read-only and idempotent: checking
// twice against unchanged inputs yields the same report.
package drift

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/phobologic/archdoc/internal/ir"
)

// Renderer is the rendering collaborator drift regenerates artifacts with.
type Renderer interface {
	// Document renders the canonical single architecture document.
	Document(docs []ir.ModuleDoc) string
	// Tree renders all artifacts, keyed by path relative to the docs root.
	Tree(docs []ir.ModuleDoc) map[string]string
}

// Strategy selects how persisted artifacts are compared.
type Strategy string

const (
	// StrategyDocument byte-compares the single canonical document. Default.
	StrategyDocument Strategy = "document"
	// StrategyTree renders the full artifact tree and diffs it recursively
	// against the persisted output tree.
	StrategyTree Strategy = "tree"
)

// ParseStrategy returns the strategy for a config/flag token.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategyDocument:
		return StrategyDocument, nil
	case StrategyTree:
		return StrategyTree, nil
	}
	return "", fmt.Errorf("unknown drift strategy %q", s)
}

// Check compares the documentation derivable from docs against what is
// persisted at docsPath. For StrategyDocument, docsPath is the canonical
// document file; for StrategyTree it is the documentation root directory.
// Findings are reported, never raised: a non-empty report is not an error.
func Check(docs []ir.ModuleDoc, r Renderer, docsPath string, strategy Strategy) (ir.DriftReport, error) {
	switch strategy {
	case StrategyTree:
		return checkTree(docs, r, docsPath)
	case StrategyDocument, "":
		return checkDocument(docs, r, docsPath)
	}
	return ir.DriftReport{}, fmt.Errorf("unknown drift strategy %q", strategy)
}

func checkDocument(docs []ir.ModuleDoc, r Renderer, docPath string) (ir.DriftReport, error) {
	expected := r.Document(docs)

	var report ir.DriftReport

	data, err := os.ReadFile(docPath)
	if errors.Is(err, fs.ErrNotExist) {
		report.MissingFiles = append(report.MissingFiles, filepath.Base(docPath))
		return report, nil
	}
	if err != nil {
		return ir.DriftReport{}, fmt.Errorf("reading persisted docs: %w", err)
	}

	actual := string(data)
	if expected != actual {
		report.DriftedFiles = append(report.DriftedFiles, ir.DriftedFile{
			Path:          filepath.Base(docPath),
			ExpectedLines: lineCount(expected),
			ActualLines:   lineCount(actual),
		})
	}

	return report, nil
}

func checkTree(docs []ir.ModuleDoc, r Renderer, docsDir string) (ir.DriftReport, error) {
	expected := r.Tree(docs)

	actual, err := readTree(docsDir)
	if err != nil {
		return ir.DriftReport{}, fmt.Errorf("reading persisted docs: %w", err)
	}

	var report ir.DriftReport

	for relPath, want := range expected {
		got, ok := actual[relPath]
		if !ok {
			report.MissingFiles = append(report.MissingFiles, relPath)
			continue
		}
		if want != got {
			report.DriftedFiles = append(report.DriftedFiles, ir.DriftedFile{
				Path:          relPath,
				ExpectedLines: lineCount(want),
				ActualLines:   lineCount(got),
			})
		}
	}

	for relPath := range actual {
		if _, ok := expected[relPath]; !ok {
			report.ExtraFiles = append(report.ExtraFiles, relPath)
		}
	}

	sort.Slice(report.DriftedFiles, func(i, j int) bool {
		return report.DriftedFiles[i].Path < report.DriftedFiles[j].Path
	})
	sort.Strings(report.MissingFiles)
	sort.Strings(report.ExtraFiles)

	return report, nil
}

// readTree collects every markdown artifact under root, keyed by
// slash-separated relative path.
func readTree(root string) (map[string]string, error) {
	tree := make(map[string]string)

	if _, err := os.Stat(root); err != nil {
		// A missing tree means every expected artifact is missing, not a
		// failed check.
		return tree, nil
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tree[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tree, nil
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

// FormatReport renders a drift report as human-readable text.
func FormatReport(report *ir.DriftReport) string {
	var b strings.Builder

	if !report.HasDrift() {
		b.WriteString("Documentation is up to date.\n")
		return b.String()
	}

	b.WriteString("Documentation drift detected.\n")

	if len(report.DriftedFiles) > 0 {
		fmt.Fprintf(&b, "Changed files (%d):\n", len(report.DriftedFiles))
		for _, f := range report.DriftedFiles {
			fmt.Fprintf(&b, "  %s (expected %d lines, got %d)\n", f.Path, f.ExpectedLines, f.ActualLines)
		}
	}
	if len(report.MissingFiles) > 0 {
		fmt.Fprintf(&b, "Missing files (%d):\n", len(report.MissingFiles))
		for _, f := range report.MissingFiles {
			fmt.Fprintf(&b, "  %s\n", f)
		}
	}
	if len(report.ExtraFiles) > 0 {
		fmt.Fprintf(&b, "Extra files (%d):\n", len(report.ExtraFiles))
		for _, f := range report.ExtraFiles {
			fmt.Fprintf(&b, "  %s\n", f)
		}
	}

	b.WriteString("\nRun `archdoc render` to regenerate.\n")
	return b.String()
}
