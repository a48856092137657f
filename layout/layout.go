// Package layout places detector pixels on the unit sphere.
//
// The three layout engines project a hexagonal packing, a rhombus packing,
// or a hexagon composed of three rhombi onto the sphere near the Z axis
// and return one orientation quaternion per surviving position.
package layout

import (
	"fmt"
	"math"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/num/quat"

	"github.com/ccatp/fpsim/lattice"
	"github.com/ccatp/fpsim/pointing"
)

const (
	sixty  = math.Pi / 3
	thirty = math.Pi / 6
)

var rtThreeByTwo = math.Sqrt(3) / 2

func checkRotate(rotate []unit.Angle, npos int) error {
	if rotate != nil && len(rotate) != npos {
		return fmt.Errorf("layout: %d rotation angles for %d positions",
			len(rotate), npos)
	}
	return nil
}

// Hex places npos positions in concentric hexagonal rings centered on the
// Z axis.  Position 0 is at the center, positions then spiral outward:
//
//	Y ^             O O O
//	|              O O O O
//	|             O O + O O
//	+--> X         O O O O
//	                O O O
//
// width is the angle subtended from vertex to vertex along the X axis.
// rotate, if non-nil, must hold npos angles giving each position an extra
// rotation about its own axis.
func Hex(npos int, width unit.Angle, rotate []unit.Angle) ([]quat.Number, error) {
	nrings, err := lattice.HexRings(npos)
	if err != nil {
		return nil, err
	}
	if err := checkRotate(rotate, npos); err != nil {
		return nil, err
	}

	// angular packing diameter of one position
	var posdiam float64
	if nrings > 1 {
		posdiam = width.Rad() / float64(2*nrings-2)
	}

	zaxis := coord.Cart{Z: 1}
	result := make([]quat.Number, npos)
	for pos := range result {
		posrot := pointing.Ident
		if pos > 0 {
			test := pos - 1
			ring := 1
			for test-6*ring >= 0 {
				test -= 6 * ring
				ring++
			}
			sector := test / ring
			steps := test % ring

			// Each 60° sector of ring R is an equilateral triangle with R
			// equally spaced steps along the edge opposite the center.
			// Bisecting the sector gives polar coordinates for a step:
			// midline is the distance from the center to the midpoint of
			// that edge, edgedist the signed distance along the edge.
			midline := rtThreeByTwo * float64(ring)
			edgedist := float64(steps) - .5*float64(ring)
			relang := math.Atan2(edgedist, midline)
			posang := float64(sector)*sixty + thirty + relang
			posdist := rtThreeByTwo * posdiam * float64(ring) / math.Cos(relang)

			sd, cd := math.Sincos(posdist)
			sa, ca := math.Sincos(posang)
			posdir := coord.Cart{X: sd * ca, Y: sd * sa, Z: cd}
			posrot = pointing.FromVectors(zaxis, posdir)
		}
		if rotate != nil {
			posrot = quat.Mul(posrot, pointing.ZRot(rotate[pos]))
		}
		result[pos] = posrot
	}
	return result, nil
}

// Rhombus places npos positions in a rhombus centered on the Z axis.  The
// rhombus is a third of a hexagon: the long (Y) dimension is √3 times the
// short (X) dimension.
//
//	                  O
//	Y ^              O O
//	|               O O O
//	|              O O O O
//	+--> X          O O O
//	                 O O
//	                  O
//
// Position 0 is at the top; positions are numbered moving downward, left
// to right within a row.  width is the angle subtended along the X axis.
// rotate is as in Hex.
func Rhombus(npos int, width unit.Angle, rotate []unit.Angle) ([]quat.Number, error) {
	dim, err := lattice.RhombDim(npos)
	if err != nil {
		return nil, err
	}
	if err := checkRotate(rotate, npos); err != nil {
		return nil, err
	}

	var posdiam float64
	if dim > 1 {
		posdiam = width.Rad() / float64(dim-1)
	}

	zaxis := coord.Cart{Z: 1}
	result := make([]quat.Number, npos)
	for pos := range result {
		row, col, err := lattice.RhombRowCol(npos, pos)
		if err != nil {
			return nil, err
		}
		rowang := rtThreeByTwo * float64(dim-1-row) * posdiam
		relrow := row
		if row >= dim {
			relrow = 2*dim - 2 - row
		}
		colang := (float64(col) - .5*float64(relrow)) * posdiam
		distang := math.Hypot(rowang, colang)
		posdir := coord.Cart{X: colang, Y: rowang, Z: math.Cos(distang)}
		posrot := pointing.FromVectors(zaxis, posdir)
		if rotate != nil {
			posrot = quat.Mul(posrot, pointing.ZRot(rotate[pos]))
		}
		result[pos] = posrot
	}
	return result, nil
}

// RhombusHex builds a hexagonal wafer from three rhombi of rhombNPos
// positions each, rotated into place at 0°, 120° and 240° about the
// hexagon center and separated by the angular gap between rhombus edges.
// rotate, if non-nil, applies per-position rotations on each rhombus
// before the rhombus is rotated into place.
//
// kill lists positions (in the 3*rhombNPos output numbering) that are
// mechanically absent.  Killed positions are omitted from the result and
// surviving positions keep their relative order.  The slice is owned by
// the caller and is not modified.
func RhombusHex(rhombNPos int, width, gap unit.Angle, rotate []unit.Angle,
	kill []int) ([]quat.Number, error) {

	dim, err := lattice.RhombDim(rhombNPos)
	if err != nil {
		return nil, err
	}

	// lay out one rhombus, then place three rotated copies
	rquat, err := Rhombus(rhombNPos, width, rotate)
	if err != nil {
		return nil, err
	}

	radwidth := width.Rad()
	var pixwidth float64
	if dim > 1 {
		pixwidth = radwidth / float64(dim-1)
	}

	// Shift of origin in the X direction for the "vertical" rhombus.  The
	// other two centers follow by symmetry.
	shift := .5*radwidth + .5*pixwidth + .5*gap.Rad()/math.Cos(thirty)
	sSixty, cSixty := math.Sincos(sixty)
	centers := []pointing.Offset{
		{X: unit.Angle(shift)},
		{X: unit.Angle(-shift * cSixty), Y: unit.Angle(shift * sSixty),
			Rot: unit.Angle(2 * sixty)},
		{X: unit.Angle(-shift * cSixty), Y: unit.Angle(-shift * sSixty),
			Rot: unit.Angle(4 * sixty)},
	}
	qcenters, err := pointing.FromOffsets(centers)
	if err != nil {
		return nil, err
	}

	killset := make(map[int]bool, len(kill))
	for _, k := range kill {
		killset[k] = true
	}
	result := make([]quat.Number, 0, 3*rhombNPos-len(killset))
	px := 0
	for _, qc := range qcenters {
		for p := 0; p < rhombNPos; p++ {
			if !killset[px] {
				result = append(result, quat.Mul(qc, rquat[p]))
			}
			px++
		}
	}
	return result, nil
}
