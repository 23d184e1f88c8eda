package ir

// ValidationReport reconciles declared file catalogs against the filesystem.
type ValidationReport struct {
	Ghosts  []GhostEntry  `json:"ghosts"`
	Orphans []OrphanEntry `json:"orphans"`
}

// IsClean reports whether every module reconciled without findings.
func (r *ValidationReport) IsClean() bool {
	return len(r.Ghosts) == 0 && len(r.Orphans) == 0
}

// GhostEntry is a cataloged file that does not exist on disk.
type GhostEntry struct {
	Element   string `json:"element"`
	Filename  string `json:"filename"`
	SourceDir string `json:"source_dir"`
}

// OrphanEntry is a file on disk not listed in any catalog.
type OrphanEntry struct {
	Element   string `json:"element"`
	Filename  string `json:"filename"`
	SourceDir string `json:"source_dir"`
}

// DriftReport compares freshly rendered documentation against the persisted
// artifacts. All three collections empty means no drift.
type DriftReport struct {
	DriftedFiles []DriftedFile `json:"drifted_files"`
	MissingFiles []string      `json:"missing_files"`
	ExtraFiles   []string      `json:"extra_files"`
}

// HasDrift reports whether any artifact drifted, is missing, or is extra.
func (r *DriftReport) HasDrift() bool {
	return len(r.DriftedFiles) > 0 || len(r.MissingFiles) > 0 || len(r.ExtraFiles) > 0
}

// DriftedFile is a persisted artifact whose content no longer matches what
// the current IR renders to.
type DriftedFile struct {
	Path          string `json:"path"`
	ExpectedLines int    `json:"expected_lines"`
	ActualLines   int    `json:"actual_lines"`
}

// HealthReport aggregates maturity and pattern confidence across all
// architectural elements.
type HealthReport struct {
	TotalElements    int             `json:"total_elements"`
	ContainerCount   int             `json:"container_count"`
	ComponentCount   int             `json:"component_count"`
	TotalFiles       int             `json:"total_files"`
	FilesPlanned     int             `json:"files_planned"`
	FilesActive      int             `json:"files_active"`
	FilesStable      int             `json:"files_stable"`
	PatternsTotal    int             `json:"patterns_total"`
	PatternsPlanned  int             `json:"patterns_planned"`
	PatternsVerified int             `json:"patterns_verified"`
	PerElement       []ElementHealth `json:"per_element"`
}

// ElementHealth is the health summary for one architectural element.
type ElementHealth struct {
	Name              string `json:"name"`
	C4Level           string `json:"c4_level"`
	FileCount         int    `json:"file_count"`
	FilesPlanned      int    `json:"files_planned"`
	FilesActive       int    `json:"files_active"`
	FilesStable       int    `json:"files_stable"`
	Pattern           string `json:"pattern"`
	PatternConfidence string `json:"pattern_confidence"`
}
