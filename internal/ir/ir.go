// Package ir defines the portable intermediate representation exchanged
// between language adapters and the documentation core: the ModuleDoc graph,
// its strict JSON wire codec, and the report shapes derived from it.
package ir

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// PatternNone is the sentinel pattern value meaning "no pattern assigned".
const PatternNone = "--"

// C4Level classifies a module in the C4 model.
type C4Level string

const (
	Container C4Level = "container"
	Component C4Level = "component"
	Unknown   C4Level = "unknown"
)

// UnmarshalJSON rejects tokens outside the wire contract.
func (l *C4Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("c4_level must be a string: %w", err)
	}
	switch C4Level(s) {
	case Container, Component, Unknown:
		*l = C4Level(s)
		return nil
	}
	return fmt.Errorf("unrecognized c4_level %q", s)
}

// PatternStatus is the two-tier confidence of a design-pattern claim.
// "planned" is developer intent; "verified" means a structural heuristic
// has confirmed the claim. Promotion is one-way.
type PatternStatus string

const (
	Planned  PatternStatus = "planned"
	Verified PatternStatus = "verified"
)

// UnmarshalJSON rejects tokens outside the wire contract.
func (p *PatternStatus) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("pattern_status must be a string: %w", err)
	}
	switch PatternStatus(s) {
	case Planned, Verified:
		*p = PatternStatus(s)
		return nil
	}
	return fmt.Errorf("unrecognized pattern_status %q", s)
}

// FileHealth is the implementation maturity of a cataloged file.
// Progression: planned -> active -> stable.
type FileHealth string

const (
	HealthPlanned FileHealth = "planned"
	HealthActive  FileHealth = "active"
	HealthStable  FileHealth = "stable"
)

// UnmarshalJSON rejects tokens outside the wire contract.
func (h *FileHealth) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("health must be a string: %w", err)
	}
	switch FileHealth(s) {
	case HealthPlanned, HealthActive, HealthStable:
		*h = FileHealth(s)
		return nil
	}
	return fmt.Errorf("unrecognized health %q", s)
}

// Relationship is a directed edge to another module. Target is a module
// path and is not required to resolve at parse time.
type Relationship struct {
	Target   string `json:"target"`
	Label    string `json:"label"`
	Protocol string `json:"protocol"`
}

// FileEntry is one row of a module's declared file catalog.
type FileEntry struct {
	Name          string        `json:"name"`
	Pattern       string        `json:"pattern"`
	PatternStatus PatternStatus `json:"pattern_status"`
	Purpose       string        `json:"purpose"`
	Health        FileHealth    `json:"health"`
}

// ModuleDoc is one architectural element: a container or a component.
// It is the unit every adapter produces and every back end consumes.
type ModuleDoc struct {
	ModulePath      string         `json:"module_path"`
	Content         string         `json:"content"`
	SourceFile      string         `json:"source_file"`
	C4Level         C4Level        `json:"c4_level"`
	Pattern         string         `json:"pattern"`
	PatternStatus   PatternStatus  `json:"pattern_status"`
	Description     string         `json:"description"`
	ParentContainer string         `json:"parent_container,omitempty"`
	Relationships   []Relationship `json:"relationships"`
	Files           []FileEntry    `json:"files"`
}

// HasPattern reports whether the module declares a design pattern.
func (d *ModuleDoc) HasPattern() bool {
	return d.Pattern != "" && d.Pattern != PatternNone
}

// ParentOf derives the parent container from a dot-separated module path:
// the first path segment, or "" for a top-level module.
func ParentOf(modulePath string) string {
	if i := strings.Index(modulePath, "."); i > 0 {
		return modulePath[:i]
	}
	return ""
}

// Sort orders docs lexicographically by module path, in place. The sorted
// ModuleDoc sequence is the unit of serialization, merge, and diffing.
func Sort(docs []ModuleDoc) {
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ModulePath < docs[j].ModulePath
	})
}
