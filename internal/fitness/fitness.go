// Package fitness runs named architectural rules over the full module set:
// every module claiming a pattern must exhibit the matching structural
// evidence.
package fitness

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/phobologic/archdoc/internal/heuristic"
	"github.com/phobologic/archdoc/internal/ir"
)

// Result is the outcome of one fitness function over a module set.
type Result struct {
	Name     string
	Passed   bool
	Checked  int
	Failures []Failure
}

// Failure is a single module that failed a fitness check.
type Failure struct {
	ModulePath string
	SourceFile string
	Reason     string
}

// check ties a declared pattern to the heuristic that must hold for every
// module claiming it.
type check struct {
	pattern string
	reason  string
}

var checks = map[string]check{
	"all_strategy_modules_define_an_interface": {
		pattern: "Strategy",
		reason:  "no interface definition found",
	},
	"all_facade_modules_reexport_symbols": {
		pattern: "Facade",
		reason:  "no re-exports or public submodule declarations found",
	},
	"all_observer_modules_have_channels_or_callbacks": {
		pattern: "Observer",
		reason:  "no channel types or callback parameters found",
	},
	"all_command_modules_expose_an_invocation_method": {
		pattern: "Command",
		reason:  "no invocation-style interface method found",
	},
}

// Names returns the registered fitness function names, sorted.
func Names() []string {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes a named fitness function over docs. The second return is
// false when the name is unknown, which is distinct from a check that runs
// and fails.
func Run(name string, docs []ir.ModuleDoc) (Result, bool) {
	c, ok := checks[name]
	if !ok {
		return Result{}, false
	}

	result := Result{Name: name}
	for i := range docs {
		doc := &docs[i]
		if doc.Pattern != c.pattern {
			continue
		}
		result.Checked++

		sourceDir := filepath.Dir(doc.SourceFile)
		if !heuristic.CheckDir(c.pattern, sourceDir) {
			result.Failures = append(result.Failures, Failure{
				ModulePath: doc.ModulePath,
				SourceFile: doc.SourceFile,
				Reason:     c.reason,
			})
		}
	}

	result.Passed = len(result.Failures) == 0
	return result, true
}

// RunAll executes every registered fitness function, in name order.
func RunAll(docs []ir.ModuleDoc) []Result {
	var results []Result
	for _, name := range Names() {
		result, _ := Run(name, docs)
		results = append(results, result)
	}
	return results
}

// FormatResult renders a fitness result as human-readable text.
func FormatResult(result *Result) string {
	var b strings.Builder

	if result.Passed {
		fmt.Fprintf(&b, "PASS: %s (checked %d module(s))\n", result.Name, result.Checked)
		return b.String()
	}

	fmt.Fprintf(&b, "FAIL: %s (%d/%d module(s) failed)\n",
		result.Name, len(result.Failures), result.Checked)
	for _, failure := range result.Failures {
		fmt.Fprintf(&b, "  %s (%s): %s\n", failure.ModulePath, failure.SourceFile, failure.Reason)
	}
	return b.String()
}
