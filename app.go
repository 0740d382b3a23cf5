package main

import (
	"context"

	"golang.org/x/text/language"

	"github.com/aurifex/aurifex/pkg/config"
	"github.com/aurifex/aurifex/pkg/engine"
	"github.com/aurifex/aurifex/pkg/gem"
	"github.com/aurifex/aurifex/pkg/kernel"
	"github.com/aurifex/aurifex/pkg/kernel/sdfx"
	"github.com/aurifex/aurifex/pkg/locale"
	"github.com/aurifex/aurifex/pkg/logging"
	"github.com/aurifex/aurifex/pkg/meshutil"
	"github.com/aurifex/aurifex/pkg/scene"
	"github.com/aurifex/aurifex/pkg/stats"
	"github.com/aurifex/aurifex/pkg/tessellate"
)

// colorPalette is a default palette used to assign distinct colors to
// objects in the viewport.
var colorPalette = []string{
	"#D9B84A", "#C0C0C8", "#4A90D9", "#E67E22",
	"#2ECC71", "#9B59B6", "#E74C3C", "#1ABC9C",
}

// App is the Wails backend. It exposes methods to the frontend via
// bindings.
type App struct {
	ctx    context.Context
	cfg    *config.Config
	engine *engine.Engine
	kernel kernel.Kernel
	lang   language.Tag
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of evaluating a design script.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// WeightResult is the material summary returned to the frontend.
type WeightResult struct {
	Grams  float64         `json:"grams"`
	Carats float64         `json:"carats"`
	Report string          `json:"report"`
	Errors []EvalErrorData `json:"errors"`
}

// NewApp creates a new App with an engine and the sdfx kernel.
func NewApp(cfg *config.Config) *App {
	k := sdfx.New()
	return &App{
		cfg:    cfg,
		engine: engine.NewEngine(k),
		kernel: k,
		lang:   locale.Match(cfg.Language),
	}
}

// startup is called by Wails on app startup. The context is saved so
// Wails runtime methods can be called later.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// SetLanguage switches the report language and returns the canonical
// tag of the language actually selected.
func (a *App) SetLanguage(lang string) string {
	a.lang = locale.Match(lang)
	logging.Sugar.Infow("language changed", "tag", a.lang.String())
	return a.lang.String()
}

// Evaluate takes design source and returns mesh data plus errors and
// advisory warnings. This is the primary binding called by the editor.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	sc, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		logging.Sugar.Errorw("evaluation failed", "error", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	for _, issue := range scene.Validate(sc) {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: issue.String()})
	}

	meshes, err := tessellate.Tessellate(sc, sc.EvaluatedDepsgraphGet())
	if err != nil {
		logging.Sugar.Errorw("tessellation failed", "error", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "tessellation failed: " + err.Error(),
		})
		return result
	}

	for i, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			Name:     m.Name,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}
	logging.Sugar.Debugw("evaluated design", "objects", len(sc.Objects()), "meshes", len(result.Meshes))
	return result
}

// EstimateWeight evaluates the design and estimates the metal weight
// for the given alloy, plus the total stone weight. Mesh and prong
// objects count as metal; cutter volumes are carved out of it.
func (a *App) EstimateWeight(source string, metal string) WeightResult {
	result := WeightResult{Errors: []EvalErrorData{}}

	sc, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	for _, e := range evalErrs {
		result.Errors = append(result.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
	}
	if len(result.Errors) > 0 {
		return result
	}

	density, err := stats.Density(stats.Metal(metal), a.cfg.Metal.CustomDensity)
	if err != nil {
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	dg := sc.EvaluatedDepsgraphGet()

	var metalObjects, cutterObjects []*scene.Object
	gemCounts := make(map[gem.Spec]int)
	for _, ob := range sc.Objects() {
		switch data := ob.Data.(type) {
		case scene.MeshData, scene.ProngData:
			metalObjects = append(metalObjects, ob)
		case scene.CutterData:
			cutterObjects = append(cutterObjects, ob)
		case scene.GemData:
			gemCounts[data.Spec]++
		}
	}

	volume, err := meshutil.EstVolume(dg, metalObjects)
	if err != nil {
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(cutterObjects) > 0 {
		carved, err := meshutil.EstVolume(dg, cutterObjects)
		if err != nil {
			result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
			return result
		}
		volume -= carved
		if volume < 0 {
			volume = 0
		}
	}

	report := stats.Report{
		VolumeMM3: volume,
		Metal:     stats.Metal(metal),
		Density:   density,
	}
	for spec, qty := range gemCounts {
		report.Gems = append(report.Gems, stats.GemLine{
			Stone: spec.Stone,
			Cut:   spec.Cut,
			Size:  spec.Size,
			Qty:   qty,
		})
		result.Carats += spec.Carats() * float64(qty)
	}

	result.Grams = report.WeightGrams()
	result.Report = report.Format(a.lang)
	logging.Sugar.Debugw("estimated weight",
		"metal", metal, "volume_mm3", volume, "grams", result.Grams, "carats", result.Carats)
	return result
}
