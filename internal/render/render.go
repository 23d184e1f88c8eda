// Package render produces the markdown documentation artifacts the drift
// detector compares against. Output is a pure, deterministic function of the
// IR: same docs in, same bytes out.
package render

import (
	"fmt"
	"path"
	"strings"

	"github.com/phobologic/archdoc/internal/ir"
)

// DocumentName is the canonical single-document artifact.
const DocumentName = "ARCHITECTURE.md"

// Markdown renders ModuleDoc lists to markdown. The zero value is ready to use.
type Markdown struct{}

// Document renders the canonical single architecture document.
func (Markdown) Document(docs []ir.ModuleDoc) string {
	sorted := sortedCopy(docs)

	var b strings.Builder
	b.WriteString("# Architecture\n")
	fmt.Fprintf(&b, "\n%d elements.\n", len(sorted))

	for i := range sorted {
		writeModule(&b, &sorted[i])
	}

	return b.String()
}

// Tree renders one page per module plus the canonical document, keyed by
// artifact path relative to the documentation root.
func (Markdown) Tree(docs []ir.ModuleDoc) map[string]string {
	sorted := sortedCopy(docs)

	artifacts := make(map[string]string, len(sorted)+1)
	artifacts[DocumentName] = Markdown{}.Document(sorted)

	for i := range sorted {
		doc := &sorted[i]
		var b strings.Builder
		fmt.Fprintf(&b, "# %s\n", doc.ModulePath)
		writeModule(&b, doc)
		artifacts[path.Join("modules", doc.ModulePath+".md")] = b.String()
	}

	return artifacts
}

func writeModule(b *strings.Builder, doc *ir.ModuleDoc) {
	fmt.Fprintf(b, "\n## %s (%s)\n\n", doc.ModulePath, doc.C4Level)

	if doc.Description != "" {
		fmt.Fprintf(b, "%s\n\n", doc.Description)
	}
	if parent := ir.ParentOf(doc.ModulePath); parent != "" {
		fmt.Fprintf(b, "Parent container: %s\n\n", parent)
	}
	if doc.HasPattern() {
		fmt.Fprintf(b, "Pattern: %s (%s)\n\n", doc.Pattern, doc.PatternStatus)
	}

	if len(doc.Relationships) > 0 {
		b.WriteString("Relationships:\n\n")
		for _, rel := range doc.Relationships {
			fmt.Fprintf(b, "- %s — %s (%s)\n", rel.Target, rel.Label, rel.Protocol)
		}
		b.WriteString("\n")
	}

	if len(doc.Files) > 0 {
		b.WriteString("| File | Pattern | Status | Purpose | Health |\n")
		b.WriteString("|------|---------|--------|---------|--------|\n")
		for _, f := range doc.Files {
			fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
				f.Name, f.Pattern, f.PatternStatus, f.Purpose, f.Health)
		}
	}
}

func sortedCopy(docs []ir.ModuleDoc) []ir.ModuleDoc {
	sorted := make([]ir.ModuleDoc, len(docs))
	copy(sorted, docs)
	ir.Sort(sorted)
	return sorted
}
