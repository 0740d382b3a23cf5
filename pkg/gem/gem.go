// Package gem builds parametric gemstone, prong and cutter solids on
// top of the abstract geometry kernel, and estimates stone weights.
//
// Gemstones are modeled as a crown above the girdle plane and a
// pavilion below it; the proportions are the standard ones used for
// weight estimation, not faceting-accurate geometry.
package gem

import (
	"fmt"

	"github.com/aurifex/aurifex/pkg/kernel"
)

// Cut enumerates the supported gemstone cuts. The names match the
// localization table keys.
type Cut string

const (
	CutRound    Cut = "round"
	CutOval     Cut = "oval"
	CutSquare   Cut = "square"
	CutBaguette Cut = "baguette"
	CutMarquise Cut = "marquise"
	CutPearl    Cut = "pearl"
)

// Stone identifies the gem material. The names match the localization
// table keys.
type Stone string

const (
	StoneDiamond  Stone = "diamond"
	StoneZircon   Stone = "zircon"
	StoneTopaz    Stone = "topaz"
	StoneEmerald  Stone = "emerald"
	StoneRuby     Stone = "ruby"
	StoneSapphire Stone = "sapphire"
)

// StoneDensity maps stones to density in g/cm³.
var StoneDensity = map[Stone]float64{
	StoneDiamond:  3.53,
	StoneZircon:   4.70,
	StoneTopaz:    3.57,
	StoneEmerald:  2.76,
	StoneRuby:     4.00,
	StoneSapphire: 4.00,
}

// elongation is the girdle length/width ratio of the non-round cuts.
var elongation = map[Cut]float64{
	CutRound:    1.0,
	CutOval:     1.35,
	CutSquare:   1.0,
	CutBaguette: 2.0,
	CutMarquise: 1.8,
	CutPearl:    1.5,
}

// volumeFactor approximates the gem volume as a fraction of its
// girdle-width × girdle-length × depth bounding box.
var volumeFactor = map[Cut]float64{
	CutRound:    0.39,
	CutOval:     0.39,
	CutSquare:   0.46,
	CutBaguette: 0.48,
	CutMarquise: 0.31,
	CutPearl:    0.36,
}

// Proportions of total depth above/below the girdle.
const (
	crownRatio    = 0.25
	pavilionRatio = 0.75
	depthRatio    = 0.60 // total depth relative to girdle width
	tableRatio    = 0.55 // table width relative to girdle width
)

// Spec describes one gemstone.
type Spec struct {
	Cut   Cut
	Stone Stone
	Size  float64 // girdle width in mm
}

// Validate reports an invalid cut, stone or size.
func (s Spec) Validate() error {
	if _, ok := elongation[s.Cut]; !ok {
		return fmt.Errorf("gem: unknown cut %q", s.Cut)
	}
	if _, ok := StoneDensity[s.Stone]; !ok {
		return fmt.Errorf("gem: unknown stone %q", s.Stone)
	}
	if s.Size <= 0 {
		return fmt.Errorf("gem: size must be positive, got %v", s.Size)
	}
	return nil
}

// Depth returns the total gem depth in mm.
func (s Spec) Depth() float64 {
	return s.Size * depthRatio
}

// Volume returns the approximate gem volume in mm³.
func (s Spec) Volume() float64 {
	return s.Size * s.Size * elongation[s.Cut] * s.Depth() * volumeFactor[s.Cut]
}

// Carats returns the estimated stone weight in carats (1 ct = 0.2 g).
func (s Spec) Carats() float64 {
	grams := s.Volume() / 1000 * StoneDensity[s.Stone]
	return grams / 0.2
}

// Solid builds the gemstone solid, girdle plane at z=0, pavilion tip
// pointing down.
func Solid(k kernel.Kernel, s Spec) (kernel.Solid, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	r := s.Size / 2
	crownH := s.Depth() * crownRatio
	pavH := s.Depth() * pavilionRatio

	// Crown: truncated cone from the girdle up to the table.
	crown := k.Cone(crownH, r, r*tableRatio, 64)
	crown = k.Translate(crown, 0, 0, crownH/2)

	// Pavilion: cone from the girdle down to the culet.
	pavilion := k.Cone(pavH, r*0.02, r, 64)
	pavilion = k.Translate(pavilion, 0, 0, -pavH/2)

	solid := k.Union(crown, pavilion)

	switch s.Cut {
	case CutRound:
		// Base shape as built.
	case CutOval, CutPearl:
		solid = k.Scale(solid, 1, elongation[s.Cut], 1)
	case CutSquare, CutBaguette:
		e := elongation[s.Cut]
		if e != 1 {
			solid = k.Scale(solid, 1, e, 1)
		}
		box := k.Box(s.Size, s.Size*e, s.Depth()*2.5)
		solid = k.Intersection(solid, box)
	case CutMarquise:
		// A lens: two copies of the round shape offset sideways and
		// intersected, then stretched along the girdle length.
		offset := r * 0.5
		lens := k.Intersection(
			k.Translate(solid, offset, 0, 0),
			k.Translate(solid, -offset, 0, 0),
		)
		solid = k.Scale(lens, s.Size/(s.Size-2*offset), elongation[s.Cut], 1)
	}

	return solid, nil
}

// Prong builds a single prong solid: a tapered post standing on the
// XY plane along +Z.
func Prong(k kernel.Kernel, diameter, length float64) kernel.Solid {
	p := k.Cone(length, diameter/2, diameter*0.35, 32)
	return k.Translate(p, 0, 0, length/2)
}

// Cutter builds the seat-cutter solid for a gem: the negative volume
// carved out of the metal under the stone. The girdle seat is slightly
// oversized; the hole continues below by holeDepth.
func Cutter(k kernel.Kernel, s Spec, holeDepth float64) (kernel.Solid, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	seat := s.Size/2 + 0.1
	pavH := s.Depth() * pavilionRatio

	cone := k.Cone(pavH, seat*0.3, seat, 64)
	cone = k.Translate(cone, 0, 0, -pavH/2)

	hole := k.Cylinder(holeDepth, seat*0.3, 32)
	hole = k.Translate(hole, 0, 0, -pavH-holeDepth/2)

	solid := k.Union(cone, hole)
	if e := elongation[s.Cut]; e != 1 {
		solid = k.Scale(solid, 1, e, 1)
	}
	return solid, nil
}
