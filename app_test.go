package main

import (
	"os"
	"strings"
	"testing"

	"github.com/aurifex/aurifex/pkg/config"
)

func newTestApp() *App {
	return NewApp(config.Default())
}

// TestE2ESolitaireExample exercises the full pipeline: design source →
// engine → scene → tessellate → meshes. This is the same path the
// Wails Evaluate binding takes, but without the Wails runtime.
func TestE2ESolitaireExample(t *testing.T) {
	if testing.Short() {
		t.Skip("full solid tessellation is slow")
	}
	app := newTestApp()

	source, err := os.ReadFile("examples/solitaire.aur")
	if err != nil {
		t.Fatalf("failed to read solitaire.aur: %v", err)
	}

	result := app.Evaluate(string(source))

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}

	// Band, center stone, seat cutter and four prongs.
	if len(result.Meshes) != 7 {
		t.Fatalf("expected 7 meshes, got %d", len(result.Meshes))
	}

	expected := map[string]bool{
		"band": false, "center": false, "seat": false,
		"prong-n": false, "prong-s": false, "prong-e": false, "prong-w": false,
	}
	for _, m := range result.Meshes {
		if _, ok := expected[m.Name]; !ok {
			t.Errorf("unexpected mesh name: %q", m.Name)
			continue
		}
		expected[m.Name] = true

		if len(m.Vertices) == 0 {
			t.Errorf("mesh %q: no vertices", m.Name)
		}
		if len(m.Normals) != len(m.Vertices) {
			t.Errorf("mesh %q: %d normals for %d vertices", m.Name, len(m.Normals), len(m.Vertices))
		}
		if len(m.Indices) == 0 {
			t.Errorf("mesh %q: no indices", m.Name)
		}
		if m.Color == "" {
			t.Errorf("mesh %q: no color assigned", m.Name)
		}
	}
	for name, found := range expected {
		if !found {
			t.Errorf("missing mesh %q", name)
		}
	}
}

// TestE2EEmptySource ensures the pipeline handles empty input
// gracefully.
func TestE2EEmptySource(t *testing.T) {
	app := newTestApp()
	result := app.Evaluate("")

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors for empty source: %v", result.Errors)
	}
	if len(result.Meshes) != 0 {
		t.Errorf("empty source produced %d meshes", len(result.Meshes))
	}
}

func TestEvaluateSurfacesParseErrors(t *testing.T) {
	app := newTestApp()
	result := app.Evaluate(`(shank "band"`)

	if len(result.Errors) == 0 {
		t.Fatal("expected parse errors")
	}
	if len(result.Meshes) != 0 {
		t.Error("parse failure should not produce meshes")
	}
}

func TestEstimateWeightBand(t *testing.T) {
	app := newTestApp()

	// A bare band keeps the estimate purely mesh-based, so no
	// marching cubes evaluation is involved.
	result := app.EstimateWeight(
		`(shank "band" :diameter 17 :width 4 :thickness 1.5 :segments 32)`,
		"14kt_white",
	)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Grams <= 0 {
		t.Errorf("band weight = %v g, want positive", result.Grams)
	}
	// A 17 mm band with a 4x1.5 mm profile holds roughly 320 mm³ of
	// metal; at 14.6 g/cm³ the weight lands in single-digit grams.
	if result.Grams < 1 || result.Grams > 20 {
		t.Errorf("band weight = %v g, outside plausible range", result.Grams)
	}
	if result.Report == "" {
		t.Error("report is empty")
	}
}

func TestEstimateWeightCountsGems(t *testing.T) {
	app := newTestApp()

	result := app.EstimateWeight(`
(gem "a" :cut :round :stone :diamond :size 5)
(gem "b" :cut :round :stone :diamond :size 5)
`, "silver")
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Carats <= 0 {
		t.Errorf("carats = %v, want positive", result.Carats)
	}
	if !strings.Contains(result.Report, "Diamond") {
		t.Errorf("report missing gem line:\n%s", result.Report)
	}
	if !strings.Contains(result.Report, "Qty: 2") {
		t.Errorf("report should aggregate identical gems:\n%s", result.Report)
	}
}

func TestEstimateWeightUnknownMetal(t *testing.T) {
	app := newTestApp()
	result := app.EstimateWeight(`(shank "band" :segments 8)`, "bronze")
	if len(result.Errors) == 0 {
		t.Error("expected error for unknown metal")
	}
}

func TestSetLanguage(t *testing.T) {
	app := newTestApp()

	if got := app.SetLanguage("ru-RU"); got != "ru" {
		t.Errorf("SetLanguage(ru-RU) = %q, want ru", got)
	}
	result := app.EstimateWeight(`(gem "a" :size 4)`, "silver")
	if !strings.Contains(result.Report, "Серебро") {
		t.Errorf("Russian report expected:\n%s", result.Report)
	}

	if got := app.SetLanguage("nonsense"); got != "en" {
		t.Errorf("SetLanguage(nonsense) = %q, want en", got)
	}
}
