// Package health aggregates file maturity and pattern confidence across the
// architecture graph.
package health

import (
	"fmt"
	"strings"

	"github.com/phobologic/archdoc/internal/ir"
)

// Aggregate tallies file health and pattern confidence, project-wide and
// per element. The per-element breakdown preserves input order.
func Aggregate(docs []ir.ModuleDoc) ir.HealthReport {
	report := ir.HealthReport{TotalElements: len(docs)}

	for i := range docs {
		doc := &docs[i]

		switch doc.C4Level {
		case ir.Container:
			report.ContainerCount++
		case ir.Component:
			report.ComponentCount++
		}

		elem := ir.ElementHealth{
			Name:              doc.ModulePath,
			C4Level:           string(doc.C4Level),
			FileCount:         len(doc.Files),
			Pattern:           doc.Pattern,
			PatternConfidence: string(doc.PatternStatus),
		}

		for _, f := range doc.Files {
			switch f.Health {
			case ir.HealthPlanned:
				report.FilesPlanned++
				elem.FilesPlanned++
			case ir.HealthActive:
				report.FilesActive++
				elem.FilesActive++
			case ir.HealthStable:
				report.FilesStable++
				elem.FilesStable++
			}
		}
		report.TotalFiles += len(doc.Files)

		if doc.HasPattern() {
			report.PatternsTotal++
			switch doc.PatternStatus {
			case ir.Planned:
				report.PatternsPlanned++
			case ir.Verified:
				report.PatternsVerified++
			}
		}

		report.PerElement = append(report.PerElement, elem)
	}

	return report
}

// FormatReport renders a health report as human-readable text.
func FormatReport(report *ir.HealthReport) string {
	var b strings.Builder

	b.WriteString("Architecture Health Report\n")
	b.WriteString("==========================\n")
	fmt.Fprintf(&b, "Elements:    %d total (%d containers, %d components)\n",
		report.TotalElements, report.ContainerCount, report.ComponentCount)
	fmt.Fprintf(&b, "Files:       %d total\n", report.TotalFiles)

	if report.TotalFiles > 0 {
		fmt.Fprintf(&b, "  planned:   %d (%.1f%%)\n", report.FilesPlanned, percent(report.FilesPlanned, report.TotalFiles))
		fmt.Fprintf(&b, "  active:    %d (%.1f%%)\n", report.FilesActive, percent(report.FilesActive, report.TotalFiles))
		fmt.Fprintf(&b, "  stable:    %d (%.1f%%)\n", report.FilesStable, percent(report.FilesStable, report.TotalFiles))
	}

	fmt.Fprintf(&b, "Patterns:    %d assigned\n", report.PatternsTotal)
	if report.PatternsTotal > 0 {
		fmt.Fprintf(&b, "  planned:   %d (%.1f%%)\n", report.PatternsPlanned, percent(report.PatternsPlanned, report.PatternsTotal))
		fmt.Fprintf(&b, "  verified:  %d (%.1f%%)\n", report.PatternsVerified, percent(report.PatternsVerified, report.PatternsTotal))
	}

	return b.String()
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
