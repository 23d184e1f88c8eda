// Package promote upgrades design-pattern confidence from planned to
// verified when structural heuristics find evidence. The transition is
// one-way: a verified module never regresses, even if later evidence would
// not have supported promotion.
package promote

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/phobologic/archdoc/internal/heuristic"
	"github.com/phobologic/archdoc/internal/ir"
)

// Run applies the pattern heuristics to every module and returns a new list
// with updated pattern statuses plus the number of modules promoted. The
// input is never mutated.
//
// A module is considered only when its status is still planned and its
// declared pattern has a registered heuristic; evidence is the existential
// scan over the module's source directory (derived from source_file).
func Run(docs []ir.ModuleDoc, logger zerolog.Logger) ([]ir.ModuleDoc, int) {
	result := make([]ir.ModuleDoc, len(docs))
	copy(result, docs)

	promoted := 0
	for i := range result {
		doc := &result[i]

		if doc.PatternStatus != ir.Planned {
			continue
		}
		if !heuristic.Known(doc.Pattern) {
			continue
		}

		sourceDir := filepath.Dir(doc.SourceFile)
		if !heuristic.CheckDir(doc.Pattern, sourceDir) {
			logger.Debug().
				Str("module", doc.ModulePath).
				Str("pattern", doc.Pattern).
				Msg("no structural evidence, leaving planned")
			continue
		}

		doc.PatternStatus = ir.Verified
		promoted++
		logger.Info().
			Str("module", doc.ModulePath).
			Str("pattern", doc.Pattern).
			Msg("promoted to verified")
	}

	return result, promoted
}
