package promote

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/phobologic/archdoc/internal/ir"
)

// moduleDir writes a Go source file into a fresh temp dir and returns the
// path the module's source_file should carry.
func moduleDir(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.go")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunPromotesWithEvidence(t *testing.T) {
	t.Parallel()
	source := moduleDir(t, "package engine\n\ntype Runner interface {\n\tRun() error\n}\n")
	docs := []ir.ModuleDoc{{
		ModulePath:    "engine",
		SourceFile:    source,
		C4Level:       ir.Component,
		Pattern:       "Strategy",
		PatternStatus: ir.Planned,
	}}

	out, promoted := Run(docs, zerolog.Nop())
	if promoted != 1 {
		t.Fatalf("promoted = %d, want 1", promoted)
	}
	if out[0].PatternStatus != ir.Verified {
		t.Errorf("status = %q, want verified", out[0].PatternStatus)
	}
}

func TestRunLeavesPlannedWithoutEvidence(t *testing.T) {
	t.Parallel()
	source := moduleDir(t, "package engine\n\nfunc helper() int { return 1 }\n")
	docs := []ir.ModuleDoc{{
		ModulePath:    "engine",
		SourceFile:    source,
		C4Level:       ir.Component,
		Pattern:       "Strategy",
		PatternStatus: ir.Planned,
	}}

	out, promoted := Run(docs, zerolog.Nop())
	if promoted != 0 {
		t.Fatalf("promoted = %d, want 0", promoted)
	}
	if out[0].PatternStatus != ir.Planned {
		t.Errorf("status = %q, want planned", out[0].PatternStatus)
	}
}

func TestRunNeverDemotes(t *testing.T) {
	t.Parallel()
	// No structural evidence on disk, but the module is already verified.
	source := moduleDir(t, "package engine\n\nfunc helper() int { return 1 }\n")
	docs := []ir.ModuleDoc{{
		ModulePath:    "engine",
		SourceFile:    source,
		C4Level:       ir.Component,
		Pattern:       "Strategy",
		PatternStatus: ir.Verified,
	}}

	out, promoted := Run(docs, zerolog.Nop())
	if promoted != 0 {
		t.Fatalf("promoted = %d, want 0", promoted)
	}
	if out[0].PatternStatus != ir.Verified {
		t.Errorf("status = %q, verified must be sticky", out[0].PatternStatus)
	}
}

func TestRunSkipsUnknownPatterns(t *testing.T) {
	t.Parallel()
	source := moduleDir(t, "package engine\n\ntype Runner interface{ Run() }\n")
	docs := []ir.ModuleDoc{
		{
			ModulePath:    "engine",
			SourceFile:    source,
			C4Level:       ir.Component,
			Pattern:       "Visitor",
			PatternStatus: ir.Planned,
		},
		{
			ModulePath:    "api",
			SourceFile:    source,
			C4Level:       ir.Container,
			Pattern:       ir.PatternNone,
			PatternStatus: ir.Planned,
		},
	}

	out, promoted := Run(docs, zerolog.Nop())
	if promoted != 0 {
		t.Fatalf("promoted = %d, want 0", promoted)
	}
	for _, doc := range out {
		if doc.PatternStatus != ir.Planned {
			t.Errorf("%s: status = %q, want planned", doc.ModulePath, doc.PatternStatus)
		}
	}
}

func TestRunDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	source := moduleDir(t, "package engine\n\ntype Runner interface{ Run() }\n")
	docs := []ir.ModuleDoc{{
		ModulePath:    "engine",
		SourceFile:    source,
		C4Level:       ir.Component,
		Pattern:       "Strategy",
		PatternStatus: ir.Planned,
	}}

	_, _ = Run(docs, zerolog.Nop())
	if docs[0].PatternStatus != ir.Planned {
		t.Error("Run mutated its input")
	}
}

func TestRunMissingSourceDir(t *testing.T) {
	t.Parallel()
	docs := []ir.ModuleDoc{{
		ModulePath:    "engine",
		SourceFile:    filepath.Join(t.TempDir(), "absent", "mod.rs"),
		C4Level:       ir.Component,
		Pattern:       "Strategy",
		PatternStatus: ir.Planned,
	}}

	out, promoted := Run(docs, zerolog.Nop())
	if promoted != 0 || out[0].PatternStatus != ir.Planned {
		t.Errorf("missing source dir must yield no promotion: %+v", out[0])
	}
}
