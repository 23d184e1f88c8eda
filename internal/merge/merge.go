// Package merge reconciles IR sets emitted by independent adapters into one
// consistent architecture graph.
package merge

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/phobologic/archdoc/internal/ir"
)

// ConflictError reports a module path claimed at incompatible C4 levels by
// different sources. A module cannot be both a container and a component.
type ConflictError struct {
	ModulePath string
	Existing   ir.C4Level
	Incoming   ir.C4Level
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("merge conflict at %q: conflicting C4 levels: existing %q vs incoming %q",
		e.ModulePath, e.Existing, e.Incoming)
}

// Merge combines multiple IR sets into a single unified ModuleDoc list.
//
// Sets are processed in input order. A module path seen for the first time is
// inserted; a duplicate at the same C4 level replaces the earlier value
// (last source wins, warned through logger); a duplicate at a different C4
// level fails the whole merge with a ConflictError. The result is sorted by
// module path, so merging the same inputs in the same order is
// byte-deterministic.
func Merge(sets [][]ir.ModuleDoc, logger zerolog.Logger) ([]ir.ModuleDoc, error) {
	merged := make(map[string]ir.ModuleDoc)

	for _, set := range sets {
		for _, doc := range set {
			if existing, ok := merged[doc.ModulePath]; ok {
				if existing.C4Level != doc.C4Level {
					return nil, &ConflictError{
						ModulePath: doc.ModulePath,
						Existing:   existing.C4Level,
						Incoming:   doc.C4Level,
					}
				}
				logger.Warn().
					Str("module", doc.ModulePath).
					Str("c4_level", string(doc.C4Level)).
					Msg("duplicate module, overwriting with later source")
			}
			merged[doc.ModulePath] = doc
		}
	}

	result := make([]ir.ModuleDoc, 0, len(merged))
	for _, doc := range merged {
		result = append(result, doc)
	}
	ir.Sort(result)

	return result, nil
}
