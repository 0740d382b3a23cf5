package engine

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/aurifex/aurifex/pkg/bmesh"
	"github.com/aurifex/aurifex/pkg/gem"
	"github.com/aurifex/aurifex/pkg/meshutil"
	"github.com/aurifex/aurifex/pkg/scene"
	"github.com/aurifex/aurifex/pkg/vmath"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms DSL source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals,
//     which would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: hole-depth -> hole_depth
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator).
//
// Both transformations respect string literal boundaries and line
// comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when the hyphen sits between identifier characters.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpObjRef wraps a scene object so it can be passed between builtins.
type sexpObjRef struct {
	ob *scene.Object
}

func (r *sexpObjRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(object %q)", r.ob.Name)
}
func (r *sexpObjRef) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a vmath.Vec3.
type sexpVec3 struct {
	vec vmath.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.1f %.1f %.1f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string. Returns the
// keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword
// argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_round) and plain strings
// ("round").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

func toObjRef(s zygo.Sexp) (*scene.Object, error) {
	if ref, ok := s.(*sexpObjRef); ok {
		return ref.ob, nil
	}
	return nil, fmt.Errorf("expected object reference, got %T (%s)", s, s.SexpString(nil))
}

func toVec3(s zygo.Sexp) (vmath.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return vmath.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// gemSpecFromArgs reads the shared :cut/:stone/:size keywords.
func gemSpecFromArgs(pa kwArgs) (gem.Spec, error) {
	spec := gem.Spec{Cut: gem.CutRound, Stone: gem.StoneDiamond}

	if v, ok := pa.kw["cut"]; ok {
		name, err := toKeywordString(v)
		if err != nil {
			return spec, fmt.Errorf("cut: %w", err)
		}
		spec.Cut = gem.Cut(name)
	}
	if v, ok := pa.kw["stone"]; ok {
		name, err := toKeywordString(v)
		if err != nil {
			return spec, fmt.Errorf("stone: %w", err)
		}
		spec.Stone = gem.Stone(name)
	}
	if v, ok := pa.kw["size"]; ok {
		f, err := toFloat64(v)
		if err != nil {
			return spec, fmt.Errorf("size: %w", err)
		}
		spec.Size = f
	}
	return spec, spec.Validate()
}

// ---------------------------------------------------------------------------
// Object naming
// ---------------------------------------------------------------------------

// objCounter provides unique suffixes for anonymous objects.
var objCounter uint64

func objectName(pa kwArgs, kind string) (string, error) {
	if len(pa.positional) > 0 {
		return toString(pa.positional[0])
	}
	n := atomic.AddUint64(&objCounter, 1)
	return fmt.Sprintf("%s_%d", kind, n), nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the design DSL builtins into a zygomys
// environment. The builtins populate the provided scene during
// evaluation.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens become recognizable string
// literals.
func registerBuiltins(env *zygo.Zlisp, sc *scene.Scene) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}
		return &sexpVec3{vec: vmath.Vec3{X: x, Y: y, Z: z}}, nil
	})

	// -----------------------------------------------------------------------
	// (gem "center" :cut :round :stone :diamond :size 4)
	// -----------------------------------------------------------------------
	env.AddFunction("gem", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		obName, err := objectName(pa, "gem")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("gem: name: %w", err)
		}
		spec, err := gemSpecFromArgs(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("gem: %w", err)
		}

		ob := scene.NewObject(obName, scene.GemData{Spec: spec})
		if err := sc.Add(ob); err != nil {
			return zygo.SexpNull, fmt.Errorf("gem: %w", err)
		}
		return &sexpObjRef{ob: ob}, nil
	})

	// -----------------------------------------------------------------------
	// (prong "p1" :diameter 0.8 :length 2.5)
	// -----------------------------------------------------------------------
	env.AddFunction("prong", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		obName, err := objectName(pa, "prong")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("prong: name: %w", err)
		}

		data := scene.ProngData{Diameter: 0.8, Length: 2.5}
		if v, ok := pa.kw["diameter"]; ok {
			if data.Diameter, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("prong: diameter: %w", err)
			}
		}
		if v, ok := pa.kw["length"]; ok {
			if data.Length, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("prong: length: %w", err)
			}
		}
		if data.Diameter <= 0 || data.Length <= 0 {
			return zygo.SexpNull, fmt.Errorf("prong: diameter and length must be positive")
		}

		ob := scene.NewObject(obName, data)
		if err := sc.Add(ob); err != nil {
			return zygo.SexpNull, fmt.Errorf("prong: %w", err)
		}
		return &sexpObjRef{ob: ob}, nil
	})

	// -----------------------------------------------------------------------
	// (cutter "c1" :cut :round :stone :diamond :size 4 :hole-depth 1.5)
	// -----------------------------------------------------------------------
	env.AddFunction("cutter", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		obName, err := objectName(pa, "cutter")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cutter: name: %w", err)
		}
		spec, err := gemSpecFromArgs(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cutter: %w", err)
		}

		data := scene.CutterData{Spec: spec, HoleDepth: 1.0}
		if v, ok := pa.kw["hole-depth"]; ok {
			if data.HoleDepth, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("cutter: hole-depth: %w", err)
			}
		}
		if data.HoleDepth < 0 {
			return zygo.SexpNull, fmt.Errorf("cutter: hole-depth must not be negative")
		}

		ob := scene.NewObject(obName, data)
		if err := sc.Add(ob); err != nil {
			return zygo.SexpNull, fmt.Errorf("cutter: %w", err)
		}
		return &sexpObjRef{ob: ob}, nil
	})

	// -----------------------------------------------------------------------
	// (shank "band" :diameter 17 :width 4 :thickness 1.5
	//               :profile :rect :segments 32)
	// -----------------------------------------------------------------------
	env.AddFunction("shank", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		obName, err := objectName(pa, "shank")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("shank: name: %w", err)
		}

		diameter := 17.0
		width := 4.0
		thickness := 1.5
		profile := "rect"
		segments := 32

		if v, ok := pa.kw["diameter"]; ok {
			if diameter, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("shank: diameter: %w", err)
			}
		}
		if v, ok := pa.kw["width"]; ok {
			if width, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("shank: width: %w", err)
			}
		}
		if v, ok := pa.kw["thickness"]; ok {
			if thickness, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("shank: thickness: %w", err)
			}
		}
		if v, ok := pa.kw["profile"]; ok {
			if profile, err = toKeywordString(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("shank: profile: %w", err)
			}
		}
		if v, ok := pa.kw["segments"]; ok {
			if segments, err = toInt(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("shank: segments: %w", err)
			}
		}

		if diameter <= 0 || width <= 0 || thickness <= 0 {
			return zygo.SexpNull, fmt.Errorf("shank: diameter, width and thickness must be positive")
		}
		if segments < 3 {
			return zygo.SexpNull, fmt.Errorf("shank: segments must be at least 3, got %d", segments)
		}

		bm, err := buildShank(diameter, width, thickness, profile, segments)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("shank: %w", err)
		}

		ob := scene.NewObject(obName, scene.MeshData{BM: bm})
		if err := sc.Add(ob); err != nil {
			return zygo.SexpNull, fmt.Errorf("shank: %w", err)
		}
		return &sexpObjRef{ob: ob}, nil
	})

	// -----------------------------------------------------------------------
	// (place (gem "center" ...) :at (vec3 0 0 10))
	// -----------------------------------------------------------------------
	env.AddFunction("place", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("place requires an object reference as first argument")
		}
		ob, err := toObjRef(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place: object: %w", err)
		}

		if v, ok := pa.kw["at"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: at: %w", err)
			}
			ob.MatrixWorld = vmath.Translation(vec)
		}

		return &sexpObjRef{ob: ob}, nil
	})
}

// buildShank constructs a ring band mesh. The cross-section profile is
// built flat at the origin, replicated once per segment, bent around
// the finger axis (Y) and lofted into a closed tube.
//
// Profile convention: local X is the radial (thickness) direction,
// local Y the finger axis (width). Bending maps a profile vertex at
// (x, y, 0) on segment i to ((R+x)·cos θᵢ, y, (R+x)·sin θᵢ).
func buildShank(diameter, width, thickness float64, profile string, segments int) (*bmesh.Mesh, error) {
	bm := bmesh.New()

	var base []*bmesh.Vert
	switch profile {
	case "rect":
		base = meshutil.MakeRect(bm, thickness/2, width/2, 0)
	case "tri":
		base = meshutil.MakeTri(bm, thickness/2, width, 0)
	default:
		bm.Free()
		return nil, fmt.Errorf("unknown profile %q, expected rect or tri", profile)
	}

	// Replicate before bending so every ring starts from the flat
	// profile coordinates.
	rings := make([][]*bmesh.Vert, segments)
	rings[0] = base
	for i := 1; i < segments; i++ {
		rings[i] = meshutil.DuplicateVerts(bm, base, nil)
	}

	r := diameter / 2
	for i, ring := range rings {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		sin, cos := math.Sincos(theta)
		for _, v := range ring {
			rad := r + v.Co.X
			v.Co = vmath.Vec3{X: rad * cos, Y: v.Co.Y, Z: rad * sin}
		}
	}

	for i := range rings {
		if _, _, err := meshutil.BridgeVerts(bm, rings[i], rings[(i+1)%segments]); err != nil {
			bm.Free()
			return nil, err
		}
	}
	return bm, nil
}
