// Package heuristic promotes design-pattern claims with structural evidence.
//
// Each check looks for structure consistent with a pattern, not proof of it:
// a heuristic returning true means "there is structural evidence consistent
// with this pattern", never "this code correctly implements it". Checks are
// intentionally permissive, and a file that cannot be parsed is simply no
// evidence.
//
// Concrete checks are language-specific (they inspect syntax trees), so they
// live behind the Analyzer interface with one implementation per supported
// language, registered by init() functions in per-language files. The
// engine itself only orchestrates the existential scan over a module's
// source files.
package heuristic

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// Patterns is the closed set of pattern names with registered checks.
var Patterns = []string{
	"Adapter", "Builder", "Command", "Decorator", "Facade",
	"Factory", "Observer", "Singleton", "Strategy",
}

// Known reports whether a pattern name has a registered structural check.
func Known(pattern string) bool {
	for _, p := range Patterns {
		if strings.EqualFold(p, pattern) {
			return true
		}
	}
	return false
}

// SourceFile pairs a filename with its raw source text.
type SourceFile struct {
	Name    string
	Content []byte
}

// Analyzer evaluates structural pattern evidence for one source language.
type Analyzer interface {
	Name() string
	Extensions() []string

	// Check reports whether source exhibits structural evidence for the
	// named pattern. Unknown patterns and unparsable input return false.
	Check(pattern string, source []byte) bool
}

// Analyzers maps language names to their analyzer.
// Populated by init() functions in per-language files.
var Analyzers = map[string]Analyzer{}

// extensionMap is built lazily after all init() functions have run.
var extensionMap map[string]Analyzer
var extensionOnce sync.Once

// ForExtension returns the analyzer for a file extension, or nil if the
// language is unsupported.
func ForExtension(ext string) Analyzer {
	extensionOnce.Do(func() {
		extensionMap = make(map[string]Analyzer)
		for _, a := range Analyzers {
			for _, e := range a.Extensions() {
				extensionMap[e] = a
			}
		}
	})
	return extensionMap[ext]
}

// CheckModule reports whether any source file in the set exhibits structural
// evidence for the pattern. Evidence is per-file and the module-level result
// is existential: one matching file is sufficient. Files with no registered
// analyzer contribute no evidence.
func CheckModule(pattern string, files []SourceFile) bool {
	for _, f := range files {
		a := ForExtension(filepath.Ext(f.Name))
		if a == nil {
			continue
		}
		if a.Check(pattern, f.Content) {
			return true
		}
	}
	return false
}

// CheckDir scans the analyzer-supported sources in a module's source
// directory for structural evidence.
func CheckDir(pattern, dir string) bool {
	return CheckModule(pattern, ReadSources(dir))
}

// ReadSources reads every analyzer-supported file directly in dir, sorted by
// name. Unreadable files are skipped; a missing directory yields no sources.
func ReadSources(dir string) []SourceFile {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var files []SourceFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if ForExtension(filepath.Ext(name)) == nil {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		files = append(files, SourceFile{Name: name, Content: content})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files
}

// observerMethods and commandMethods are the recognized interface method
// names, in snake form. Language analyzers normalize names before lookup.
var observerMethods = map[string]struct{}{
	"subscribe": {}, "unsubscribe": {}, "notify": {},
	"on_event": {}, "on_update": {}, "on_change": {},
	"emit": {}, "publish": {},
	"add_listener": {}, "remove_listener": {},
}

var commandMethods = map[string]struct{}{
	"execute": {}, "exec": {}, "run": {}, "invoke": {},
	"perform": {}, "undo": {}, "redo": {},
}

// snakeCase normalizes a CamelCase or mixedCase identifier to snake_case so
// Go method names compare against the recognized sets.
func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 && !strings.HasSuffix(b.String(), "_") {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func exported(name string) bool {
	if name == "" {
		return false
	}
	return unicode.IsUpper([]rune(name)[0])
}
