package scene

import "fmt"

// Issue is one advisory finding from scene validation.
type Issue struct {
	Object  string
	Message string
}

func (i Issue) String() string {
	if i.Object == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Object, i.Message)
}

// Validate runs advisory checks over the scene and returns the
// findings. An empty slice means the scene looks evaluable.
func Validate(s *Scene) []Issue {
	var issues []Issue
	add := func(ob string, format string, args ...any) {
		issues = append(issues, Issue{Object: ob, Message: fmt.Sprintf(format, args...)})
	}

	for _, ob := range s.Objects() {
		switch data := ob.Data.(type) {
		case MeshData:
			if data.BM == nil {
				add(ob.Name, "mesh object has no mesh data")
			} else if err := data.BM.Validate(); err != nil {
				add(ob.Name, "mesh is inconsistent: %v", err)
			}
		case *CurveData:
			if len(data.Splines) == 0 {
				add(ob.Name, "curve has no splines")
			}
			for i, sp := range data.Splines {
				if b, ok := sp.(*BezierSpline); ok && len(b.Points) < 2 && !b.Cyclic {
					add(ob.Name, "spline %d has too few control points", i)
				}
				if p, ok := sp.(*PolySpline); ok && len(p.Points) < 2 {
					add(ob.Name, "spline %d has too few points", i)
				}
			}
			if data.BevelObject != nil {
				if _, ok := data.BevelObject.Data.(*CurveData); !ok {
					add(ob.Name, "bevel object %q is not a curve", data.BevelObject.Name)
				}
			}
		case GemData:
			if err := data.Spec.Validate(); err != nil {
				add(ob.Name, "%v", err)
			}
		case ProngData:
			if data.Diameter <= 0 || data.Length <= 0 {
				add(ob.Name, "prong needs positive diameter and length")
			}
		case CutterData:
			if err := data.Spec.Validate(); err != nil {
				add(ob.Name, "%v", err)
			}
			if data.HoleDepth < 0 {
				add(ob.Name, "cutter hole depth must not be negative")
			}
		case nil:
			add(ob.Name, "object has no data")
		}

		for _, mod := range ob.Modifiers {
			if a, ok := mod.(Array); ok && a.Count < 1 {
				add(ob.Name, "array modifier count must be >= 1")
			}
		}
	}
	return issues
}
