package detsim

import (
	"fmt"
	"math"

	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/num/quat"

	"github.com/ccatp/fpsim/hardware"
	"github.com/ccatp/fpsim/layout"
	"github.com/ccatp/fpsim/pointing"
)

const thirty = math.Pi / 6

// A large-aperture telescope arranges its tubes on a 19-position
// hexagonal grid; a single-tube telescope carries at most 7 wafers on a
// ring around the tube center.
const (
	latTubePositions = 19
	satWaferCenters  = 7
)

// Placement locates one wafer within a telescope: the wafer slot name and
// the orientation of the wafer center relative to the boresight.
type Placement struct {
	WaferSlot string
	Center    quat.Number
}

// TelescopePlacements computes the center orientation of every selected
// wafer of a telescope, in tube order then wafer order.  tubeSlots
// restricts the result to those tubes; nil selects all of the telescope's
// tubes.  Unknown tube slots are an error.
//
// Wafers are mutually independent once placed, so callers may partition
// detector synthesis by Placement.
func TelescopePlacements(hw *hardware.Hardware, tele string,
	tubeSlots []string) ([]Placement, error) {

	teleprops, ok := hw.Telescopes.Get(tele)
	if !ok {
		return nil, fmt.Errorf("detsim: unknown telescope %q", tele)
	}
	platescale := teleprops.PlateScale

	alltubes := teleprops.TubeSlots
	if tubeSlots == nil {
		tubeSlots = alltubes
	} else {
		for _, t := range tubeSlots {
			valid := false
			for _, a := range alltubes {
				if a == t {
					valid = true
					break
				}
			}
			if !valid {
				return nil, fmt.Errorf(
					"detsim: invalid tube slot %q for telescope %q", t, tele)
			}
		}
	}

	var placements []Placement
	if len(alltubes) == 1 {
		// Small aperture telescope: one tube at the boresight, wafers on
		// a hexagonal ring around the tube center.
		tprops, ok := hw.TubeSlots.Get(tubeSlots[0])
		if !ok {
			return nil, fmt.Errorf("detsim: unknown tube slot %q", tubeSlots[0])
		}
		shift := tprops.WaferSpace * platescale * math.Pi / 180
		sThirty, cThirty := math.Sincos(thirty)
		offs := []pointing.Offset{
			{},
			{X: unit.Angle(shift * cThirty), Y: unit.Angle(shift * sThirty)},
			{Y: unit.Angle(shift)},
			{X: unit.Angle(-shift * cThirty), Y: unit.Angle(shift * sThirty)},
			{X: unit.Angle(-shift * cThirty), Y: unit.Angle(-shift * sThirty)},
			{Y: unit.Angle(-shift)},
			{X: unit.Angle(shift * cThirty), Y: unit.Angle(-shift * sThirty)},
		}
		centers, err := pointing.FromOffsets(offs)
		if err != nil {
			return nil, err
		}
		if len(tprops.WaferSlots) > satWaferCenters {
			return nil, fmt.Errorf(
				"detsim: tube slot %q holds %d wafers, limit %d",
				tubeSlots[0], len(tprops.WaferSlots), satWaferCenters)
		}
		for i, w := range tprops.WaferSlots {
			placements = append(placements, Placement{w, centers[i]})
		}
		return placements, nil
	}

	// Large aperture telescope: tubes on a hexagonal grid, each rotated
	// 90° to point outward, three wafers at fixed triangular offsets
	// within each tube.
	tuberot := make([]unit.Angle, latTubePositions)
	for i := range tuberot {
		tuberot[i] = unit.AngleFromDeg(90)
	}
	tcenters, err := layout.Hex(latTubePositions,
		unit.AngleFromDeg(4*teleprops.TubeSpace*platescale), tuberot)
	if err != nil {
		return nil, err
	}

	for _, t := range tubeSlots {
		tprops, ok := hw.TubeSlots.Get(t)
		if !ok {
			return nil, fmt.Errorf("detsim: unknown tube slot %q", t)
		}
		if tprops.Location < 0 || tprops.Location >= latTubePositions {
			return nil, fmt.Errorf(
				"detsim: tube slot %q location %d outside the %d-position grid",
				t, tprops.Location, latTubePositions)
		}
		wradius := .5 * tprops.WaferSpace * platescale * math.Pi / 180
		offs := []pointing.Offset{
			{X: unit.Angle(math.Tan(thirty) * wradius), Y: unit.Angle(wradius),
				Rot: unit.Angle(4 * thirty)},
			{X: unit.Angle(-wradius / math.Cos(thirty)),
				Rot: unit.Angle(8 * thirty)},
			{X: unit.Angle(math.Tan(thirty) * wradius), Y: unit.Angle(-wradius)},
		}
		qwcenters, err := pointing.FromOffsets(offs)
		if err != nil {
			return nil, err
		}
		if len(tprops.WaferSlots) > len(qwcenters) {
			return nil, fmt.Errorf(
				"detsim: tube slot %q holds %d wafers, limit %d",
				t, len(tprops.WaferSlots), len(qwcenters))
		}
		for i, w := range tprops.WaferSlots {
			// composition order: tube grid placement, then wafer offset
			placements = append(placements,
				Placement{w, quat.Mul(tcenters[tprops.Location], qwcenters[i])})
		}
	}
	return placements, nil
}

// TelescopeDetectors generates detector records for every selected wafer
// of a telescope, merged in placement order.  tubeSlots is as in
// TelescopePlacements.
func TelescopeDetectors(hw *hardware.Hardware, tele string,
	tubeSlots []string) (*hardware.OrderedMap[hardware.Detector], error) {

	teleprops, ok := hw.Telescopes.Get(tele)
	if !ok {
		return nil, fmt.Errorf("detsim: unknown telescope %q", tele)
	}
	placements, err := TelescopePlacements(hw, tele, tubeSlots)
	if err != nil {
		return nil, err
	}

	alldets := new(hardware.OrderedMap[hardware.Detector])
	for _, pl := range placements {
		dets, err := WaferDetectors(hw, pl.WaferSlot, teleprops.PlateScale,
			&teleprops.FWHM, "", pl.Center)
		if err != nil {
			return nil, err
		}
		alldets.Merge(dets)
	}
	return alldets, nil
}
