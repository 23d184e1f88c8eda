// Package catalog cross-references declared file catalogs against the
// filesystem, reporting ghosts (cataloged but absent) and orphans (present
// but uncataloged).
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/phobologic/archdoc/internal/ir"
)

// structuralFiles are module entry points excluded from orphan detection:
// they carry the annotation, not cataloged implementation.
var structuralFiles = map[string]struct{}{
	"mod.rs":      {},
	"lib.rs":      {},
	"main.rs":     {},
	"main.go":     {},
	"doc.go":      {},
	"__init__.py": {},
}

// Options scope a validation run.
type Options struct {
	// Root, when set, locates a .gitignore whose matches are excluded from
	// orphan detection, and anchors the relative paths matched against it.
	Root string
}

// Validate reconciles each module's declared file catalog against the files
// actually present in its source directory (derived from source_file's
// parent). Modules with empty catalogs are skipped. The report is complete:
// validation never aborts on findings.
func Validate(docs []ir.ModuleDoc, opts Options) ir.ValidationReport {
	var report ir.ValidationReport

	gi := loadGitignore(opts.Root)

	for i := range docs {
		doc := &docs[i]
		if len(doc.Files) == 0 {
			continue
		}

		sourceDir := filepath.Dir(doc.SourceFile)

		cataloged := make(map[string]struct{}, len(doc.Files))
		for _, f := range doc.Files {
			cataloged[f.Name] = struct{}{}
		}

		// Ghosts: catalog entries pointing at files that do not exist.
		for _, f := range doc.Files {
			if _, err := os.Stat(filepath.Join(sourceDir, f.Name)); err != nil {
				report.Ghosts = append(report.Ghosts, ir.GhostEntry{
					Element:   doc.ModulePath,
					Filename:  f.Name,
					SourceDir: sourceDir,
				})
			}
		}

		// Orphans: source files on disk missing from the catalog. Scoped to
		// the extension of the module's own entry file so unrelated assets
		// in the directory are not flagged.
		ext := filepath.Ext(doc.SourceFile)
		entries, err := os.ReadDir(sourceDir)
		if err != nil {
			continue
		}
		entryName := filepath.Base(doc.SourceFile)
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || strings.HasPrefix(name, ".") {
				continue
			}
			if filepath.Ext(name) != ext {
				continue
			}
			if _, structural := structuralFiles[name]; structural || name == entryName {
				continue
			}
			if _, ok := cataloged[name]; ok {
				continue
			}
			if ignored(gi, opts.Root, filepath.Join(sourceDir, name)) {
				continue
			}
			report.Orphans = append(report.Orphans, ir.OrphanEntry{
				Element:   doc.ModulePath,
				Filename:  name,
				SourceDir: sourceDir,
			})
		}
	}

	sortEntries(report.Ghosts, func(g ir.GhostEntry) (string, string) { return g.Element, g.Filename })
	sortEntries(report.Orphans, func(o ir.OrphanEntry) (string, string) { return o.Element, o.Filename })

	return report
}

func loadGitignore(root string) *ignore.GitIgnore {
	if root == "" {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

func ignored(gi *ignore.GitIgnore, root, path string) bool {
	if gi == nil {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return gi.MatchesPath(rel)
}

func sortEntries[T any](entries []T, key func(T) (string, string)) {
	sort.Slice(entries, func(i, j int) bool {
		ei, fi := key(entries[i])
		ej, fj := key(entries[j])
		if ei != ej {
			return ei < ej
		}
		return fi < fj
	})
}

// FormatReport renders a validation report as human-readable text.
func FormatReport(report *ir.ValidationReport) string {
	var b strings.Builder

	if report.IsClean() {
		b.WriteString("File validation: all clear\n")
		return b.String()
	}

	if len(report.Ghosts) > 0 {
		fmt.Fprintf(&b, "Ghost entries (%d found):\n", len(report.Ghosts))
		for _, ghost := range report.Ghosts {
			fmt.Fprintf(&b, "  %s: %q listed in catalog but not found in %s\n",
				ghost.Element, ghost.Filename, ghost.SourceDir)
		}
	}

	if len(report.Orphans) > 0 {
		fmt.Fprintf(&b, "Orphan files (%d found):\n", len(report.Orphans))
		for _, orphan := range report.Orphans {
			fmt.Fprintf(&b, "  %s: %q exists in %s but not in catalog\n",
				orphan.Element, orphan.Filename, orphan.SourceDir)
		}
	}

	return b.String()
}
