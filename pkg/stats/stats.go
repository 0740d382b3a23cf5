// Package stats computes design statistics: metal weight from enclosed
// volume and localized report formatting.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"github.com/aurifex/aurifex/pkg/gem"
	"github.com/aurifex/aurifex/pkg/locale"
)

// Metal identifies an alloy. The names match the localization table
// keys.
type Metal string

const (
	Metal24kt       Metal = "24kt"
	Metal22kt       Metal = "22kt"
	Metal18ktWhite  Metal = "18kt_white"
	Metal14ktWhite  Metal = "14kt_white"
	Metal18ktYellow Metal = "18kt_yellow"
	Metal14ktYellow Metal = "14kt_yellow"
	MetalSilver     Metal = "silver"
	MetalPalladium  Metal = "palladium"
	MetalPlatinum   Metal = "platinum"
	MetalCustom     Metal = "custom"
)

// MetalDensity maps alloys to density in g/cm³.
var MetalDensity = map[Metal]float64{
	Metal24kt:       19.32,
	Metal22kt:       17.8,
	Metal18ktWhite:  15.8,
	Metal14ktWhite:  14.6,
	Metal18ktYellow: 15.53,
	Metal14ktYellow: 13.8,
	MetalSilver:     10.36,
	MetalPalladium:  12.0,
	MetalPlatinum:   21.45,
}

// Density returns the density of a metal in g/cm³. For MetalCustom the
// caller-provided custom density is used.
func Density(m Metal, customDensity float64) (float64, error) {
	if m == MetalCustom {
		if customDensity <= 0 {
			return 0, fmt.Errorf("stats: custom metal needs a positive density")
		}
		return customDensity, nil
	}
	d, ok := MetalDensity[m]
	if !ok {
		return 0, fmt.Errorf("stats: unknown metal %q", m)
	}
	return d, nil
}

// Weight converts an enclosed volume in mm³ and a density in g/cm³ to
// grams.
func Weight(volumeMM3, density float64) float64 {
	return volumeMM3 / 1000 * density
}

// GemLine is one row of the gem table in a report.
type GemLine struct {
	Stone gem.Stone
	Cut   gem.Cut
	Size  float64 // mm
	Qty   int
}

// Report is the material summary of a design.
type Report struct {
	VolumeMM3 float64
	Metal     Metal
	Density   float64 // g/cm³, resolved
	Gems      []GemLine
}

// WeightGrams returns the metal weight of the report in grams.
func (r Report) WeightGrams() float64 {
	return Weight(r.VolumeMM3, r.Density)
}

// Format renders the report in the given language.
func (r Report) Format(tag language.Tag) string {
	tr := func(key string) string { return locale.Lookup(tag, key) }

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", tr("export_stats"))
	fmt.Fprintf(&b, "%s: %s (%.2f %s)\n", tr("type"), tr(string(r.Metal)), r.Density, tr("g/cm"))
	fmt.Fprintf(&b, "%s: %.2f %s\n", tr("weight"), r.WeightGrams(), tr("g"))

	if len(r.Gems) == 0 {
		return b.String()
	}

	lines := make([]GemLine, len(r.Gems))
	copy(lines, r.Gems)
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Stone != lines[j].Stone {
			return lines[i].Stone < lines[j].Stone
		}
		if lines[i].Cut != lines[j].Cut {
			return lines[i].Cut < lines[j].Cut
		}
		return lines[i].Size < lines[j].Size
	})

	fmt.Fprintf(&b, "%s:\n", tr("items"))
	for _, g := range lines {
		spec := gem.Spec{Cut: g.Cut, Stone: g.Stone, Size: g.Size}
		fmt.Fprintf(&b, "  %s, %s, %.1f %s, %.3f %s, %s: %d\n",
			tr(string(g.Stone)), tr(string(g.Cut)),
			g.Size, tr("mm"),
			spec.Carats()*float64(g.Qty), tr("ct"),
			tr("qty"), g.Qty)
	}
	return b.String()
}
