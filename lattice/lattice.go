// Package lattice maps linear pixel indices to positions on the two focal
// plane tilings: hexagonal spiral packings and square-diamond rhombus
// packings.  All functions are pure integer arithmetic.
package lattice

import (
	"fmt"
	"math"
)

// HexRings returns the number of rings in a hexagonal spiral layout of
// npos positions.  Ring 0 is the single center position and ring k adds
// 6k positions, so valid counts are 1, 7, 19, 37, ...
func HexRings(npos int) (int, error) {
	test := npos - 1
	nrings := 1
	for test-6*nrings >= 0 {
		test -= 6 * nrings
		nrings++
	}
	if test != 0 {
		return 0, fmt.Errorf(
			"lattice: %d is not a valid number of positions for a hexagonal layout",
			npos)
	}
	return nrings, nil
}

// HexRowCol returns the row and column of a position in a hexagonal spiral
// layout.  Position 0 is the center, positions then spiral outward ring by
// ring in six 60° sectors.  The row is zero along the central
// vertex-vertex axis and positive or negative above and below it.
func HexRowCol(npos, pos int) (row, col int, err error) {
	if pos < 0 || pos >= npos {
		return 0, 0, fmt.Errorf(
			"lattice: position %d out of range for %d positions", pos, npos)
	}
	nrings, err := HexRings(npos)
	if err != nil {
		return 0, 0, err
	}
	if pos == 0 {
		return 0, nrings - 1, nil
	}
	test := pos - 1
	ring := 1
	for test-6*ring >= 0 {
		test -= 6 * ring
		ring++
	}
	sector := test / ring
	steps := test % ring
	coloff := nrings - ring - 1
	switch sector {
	case 0:
		row = steps
		col = coloff + 2*ring - steps
	case 1:
		row = ring
		col = coloff + ring - steps
	case 2:
		row = ring - steps
		col = coloff
	case 3:
		row = -steps
		col = coloff
	case 4:
		row = -ring
		col = coloff + steps
	case 5:
		row = -ring + steps
		col = coloff + ring + steps
	}
	return row, col, nil
}

// RhombDim returns the side dimension of a rhombus holding npos positions.
// The count must be a perfect square.
func RhombDim(npos int) (int, error) {
	if npos < 1 {
		return 0, fmt.Errorf(
			"lattice: %d is not a valid number of positions for a rhombus", npos)
	}
	dim := int(math.Sqrt(float64(npos)))
	if dim*dim != npos {
		return 0, fmt.Errorf(
			"lattice: the number of positions for a rhombus must be square, have %d",
			npos)
	}
	return dim, nil
}

// RhombRowCol returns the row and column of a position in a rhombus
// layout.  Position 0 is the top vertex; positions are then numbered
// moving downward, left to right within each row.  Row widths grow from 1
// to dim and shrink back to 1; the column starts at zero on the left side
// of each row.
func RhombRowCol(npos, pos int) (row, col int, err error) {
	if pos < 0 || pos >= npos {
		return 0, 0, fmt.Errorf(
			"lattice: position %d out of range for %d positions", pos, npos)
	}
	dim, err := RhombDim(npos)
	if err != nil {
		return 0, 0, err
	}
	col = pos
	rowcnt := 1
	for col-rowcnt >= 0 {
		col -= rowcnt
		row++
		if row >= dim {
			rowcnt--
		} else {
			rowcnt++
		}
	}
	return row, col, nil
}
