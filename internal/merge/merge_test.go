package merge

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/phobologic/archdoc/internal/ir"
)

func makeDoc(path string, level ir.C4Level) ir.ModuleDoc {
	return ir.ModuleDoc{
		ModulePath:    path,
		SourceFile:    "src/" + path + "/mod.rs",
		C4Level:       level,
		Pattern:       ir.PatternNone,
		PatternStatus: ir.Planned,
		Description:   "Module " + path,
	}
}

func TestMergeCombinesDisjointSets(t *testing.T) {
	t.Parallel()
	set1 := []ir.ModuleDoc{makeDoc("api", ir.Container), makeDoc("core", ir.Container)}
	set2 := []ir.ModuleDoc{makeDoc("database", ir.Component), makeDoc("ui", ir.Component)}

	result, err := Merge([][]ir.ModuleDoc{set1, set2}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	want := []string{"api", "core", "database", "ui"}
	if len(result) != len(want) {
		t.Fatalf("got %d docs, want %d", len(result), len(want))
	}
	for i, path := range want {
		if result[i].ModulePath != path {
			t.Errorf("result[%d] = %q, want %q", i, result[i].ModulePath, path)
		}
	}
}

func TestMergeLastSourceWins(t *testing.T) {
	t.Parallel()
	set1 := []ir.ModuleDoc{makeDoc("api", ir.Container)}
	set2 := []ir.ModuleDoc{makeDoc("api", ir.Container)}
	set1[0].Description = "A"
	set2[0].Description = "B"

	result, err := Merge([][]ir.ModuleDoc{set1, set2}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("got %d docs, want 1", len(result))
	}
	if result[0].Description != "B" {
		t.Errorf("description = %q, want B (last source wins)", result[0].Description)
	}
}

func TestMergeWarnsOnDuplicate(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	sets := [][]ir.ModuleDoc{
		{makeDoc("api", ir.Container)},
		{makeDoc("api", ir.Container)},
	}
	if _, err := Merge(sets, logger); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if !strings.Contains(buf.String(), "duplicate module") {
		t.Errorf("no duplicate warning logged, got %q", buf.String())
	}
}

func TestMergeRejectsConflictingC4Levels(t *testing.T) {
	t.Parallel()
	sets := [][]ir.ModuleDoc{
		{makeDoc("api", ir.Container)},
		{makeDoc("api", ir.Component)},
	}

	_, err := Merge(sets, zerolog.Nop())
	if err == nil {
		t.Fatal("expected conflict error")
	}

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("error type %T, want *ConflictError", err)
	}
	if conflict.ModulePath != "api" {
		t.Errorf("module path = %q, want api", conflict.ModulePath)
	}
	if conflict.Existing != ir.Container || conflict.Incoming != ir.Component {
		t.Errorf("levels = %q/%q, want container/component", conflict.Existing, conflict.Incoming)
	}
	for _, token := range []string{"api", "container", "component"} {
		if !strings.Contains(err.Error(), token) {
			t.Errorf("error %q missing %q", err, token)
		}
	}
}

func TestMergeSortsByModulePath(t *testing.T) {
	t.Parallel()
	sets := [][]ir.ModuleDoc{
		{makeDoc("zebra", ir.Container), makeDoc("alpha", ir.Container)},
		{makeDoc("middle", ir.Component)},
	}

	result, err := Merge(sets, zerolog.Nop())
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	want := []string{"alpha", "middle", "zebra"}
	for i, path := range want {
		if result[i].ModulePath != path {
			t.Errorf("result[%d] = %q, want %q", i, result[i].ModulePath, path)
		}
	}
}

func TestMergeEmptyInputs(t *testing.T) {
	t.Parallel()
	for _, sets := range [][][]ir.ModuleDoc{nil, {{}, {}}} {
		result, err := Merge(sets, zerolog.Nop())
		if err != nil {
			t.Fatalf("Merge: %v", err)
		}
		if len(result) != 0 {
			t.Errorf("got %d docs, want 0", len(result))
		}
	}
}

func TestMergeDeterminism(t *testing.T) {
	t.Parallel()
	sets := [][]ir.ModuleDoc{
		{makeDoc("api", ir.Container), makeDoc("core", ir.Container)},
		{makeDoc("api", ir.Container), makeDoc("ui", ir.Component)},
	}

	first, err := Merge(sets, zerolog.Nop())
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	second, err := Merge(sets, zerolog.Nop())
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	firstData, err := ir.Encode(first)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	secondData, err := ir.Encode(second)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(firstData, secondData) {
		t.Error("merging identical inputs twice produced different bytes")
	}
}
