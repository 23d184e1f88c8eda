package fitness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phobologic/archdoc/internal/ir"
)

func strategyModule(t *testing.T, source string) ir.ModuleDoc {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.go")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}
	return ir.ModuleDoc{
		ModulePath:    "engine",
		SourceFile:    path,
		C4Level:       ir.Component,
		Pattern:       "Strategy",
		PatternStatus: ir.Planned,
	}
}

func TestRunPasses(t *testing.T) {
	t.Parallel()
	docs := []ir.ModuleDoc{strategyModule(t, "package engine\n\ntype Runner interface{ Run() error }\n")}

	result, ok := Run("all_strategy_modules_define_an_interface", docs)
	if !ok {
		t.Fatal("registered check reported as unknown")
	}
	if !result.Passed || result.Checked != 1 || len(result.Failures) != 0 {
		t.Errorf("result = %+v", result)
	}
}

func TestRunNamesFailingModule(t *testing.T) {
	t.Parallel()
	docs := []ir.ModuleDoc{strategyModule(t, "package engine\n\nfunc helper() int { return 1 }\n")}

	result, ok := Run("all_strategy_modules_define_an_interface", docs)
	if !ok {
		t.Fatal("registered check reported as unknown")
	}
	if result.Passed || len(result.Failures) != 1 {
		t.Fatalf("result = %+v", result)
	}
	failure := result.Failures[0]
	if failure.ModulePath != "engine" {
		t.Errorf("failure names %q, want engine", failure.ModulePath)
	}
	if failure.SourceFile != docs[0].SourceFile {
		t.Errorf("failure source = %q, want %q", failure.SourceFile, docs[0].SourceFile)
	}
	if failure.Reason == "" {
		t.Error("failure has no reason")
	}
}

func TestRunSkipsOtherPatterns(t *testing.T) {
	t.Parallel()
	docs := []ir.ModuleDoc{
		{
			ModulePath:    "api",
			SourceFile:    "src/api/mod.rs",
			C4Level:       ir.Container,
			Pattern:       ir.PatternNone,
			PatternStatus: ir.Planned,
		},
	}

	result, ok := Run("all_strategy_modules_define_an_interface", docs)
	if !ok {
		t.Fatal("registered check reported as unknown")
	}
	if !result.Passed || result.Checked != 0 {
		t.Errorf("vacuous pass expected, got %+v", result)
	}
}

func TestRunUnknownName(t *testing.T) {
	t.Parallel()
	if _, ok := Run("all_modules_are_beautiful", nil); ok {
		t.Error("unknown fitness function must report not-found, not failure")
	}
}

func TestNamesSorted(t *testing.T) {
	t.Parallel()
	names := Names()
	if len(names) == 0 {
		t.Fatal("no fitness functions registered")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}

func TestRunAll(t *testing.T) {
	t.Parallel()
	docs := []ir.ModuleDoc{strategyModule(t, "package engine\n\ntype Runner interface{ Run() error }\n")}

	results := RunAll(docs)
	if len(results) != len(Names()) {
		t.Fatalf("got %d results, want %d", len(results), len(Names()))
	}
	for _, result := range results {
		if !result.Passed {
			t.Errorf("%s failed: %+v", result.Name, result.Failures)
		}
	}
}

func TestFormatResult(t *testing.T) {
	t.Parallel()
	pass := Result{Name: "all_strategy_modules_define_an_interface", Passed: true, Checked: 2}
	if out := FormatResult(&pass); !strings.HasPrefix(out, "PASS:") || !strings.Contains(out, "checked 2") {
		t.Errorf("pass output: %q", out)
	}

	fail := Result{
		Name:    "all_strategy_modules_define_an_interface",
		Checked: 1,
		Failures: []Failure{
			{ModulePath: "engine", SourceFile: "src/engine/mod.rs", Reason: "no interface definition found"},
		},
	}
	out := FormatResult(&fail)
	for _, want := range []string{"FAIL:", "engine", "src/engine/mod.rs", "no interface definition found"} {
		if !strings.Contains(out, want) {
			t.Errorf("fail output missing %q:\n%s", want, out)
		}
	}
}
