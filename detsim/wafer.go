// Package detsim synthesizes detector records from a hardware
// configuration: it lays out each wafer's pixels on the sky, assigns
// polarization angles and readout channels, and composes wafers into
// tubes and telescopes.
package detsim

import (
	"fmt"
	"strconv"

	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/num/quat"

	"github.com/ccatp/fpsim/hardware"
	"github.com/ccatp/fpsim/lattice"
	"github.com/ccatp/fpsim/layout"
	"github.com/ccatp/fpsim/pointing"
)

// Readout channel geometry shared by all cards.
const (
	chanPerAMC = 910
	chanPerMux = 64
)

// feedhornKill returns the two pixel indices removed from a feedhorn
// wafer for mechanical reasons.  Both fall on the second rhombus; the
// formula is fixed by the wafer fabrication layout.
func feedhornKill(dim int) []int {
	kf := dim * (dim - 1) / 2
	return []int{dim*dim + kf, dim*dim + kf + dim - 2}
}

// waferLayouts computes the A and B detector orientation quaternions for
// every pixel of a wafer, the per-pixel handedness for sinuous wafers
// (nil otherwise), and the killed pixel indices for feedhorn wafers.
func waferLayouts(wprops hardware.WaferSlot, platescale float64) (
	layoutA, layoutB []quat.Number, handed []string, kill []int, err error) {

	npix := wprops.NPixel
	pixsep := platescale * wprops.PixSize
	switch wprops.Packing {
	case "F":
		// Feedhorn (NIST style) wafer: a hexagon of three rhombi.
		if npix%3 != 0 {
			return nil, nil, nil, nil, fmt.Errorf(
				"detsim: feedhorn wafer pixel count %d does not divide into three rhombi",
				npix)
		}
		gap := unit.AngleFromDeg(platescale * wprops.RhombusGap)
		nrhombus := npix / 3
		dim, err := lattice.RhombDim(nrhombus)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		// center-center distance along the short axis
		width := unit.AngleFromDeg(float64(dim-1) * pixsep)
		// The orientation within each rhombus alternates between 0 and 45
		// degrees by row, with an arbitrary fixed offset; the rotation of
		// the other two rhombi modulates it naturally.
		polA := make([]unit.Angle, nrhombus)
		polB := make([]unit.Angle, nrhombus)
		const polOff = 22.5
		for p := 0; p < nrhombus; p++ {
			row, _, err := lattice.RhombRowCol(nrhombus, p)
			if err != nil {
				return nil, nil, nil, nil, err
			}
			a := polOff
			if row%2 != 0 {
				a += 45
			}
			polA[p] = unit.AngleFromDeg(a)
			polB[p] = unit.AngleFromDeg(a + 90)
		}
		kill = feedhornKill(dim)
		layoutA, err = layout.RhombusHex(nrhombus, width, gap, polA, kill)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		layoutB, err = layout.RhombusHex(nrhombus, width, gap, polB, kill)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return layoutA, layoutB, nil, kill, nil

	case "S":
		// Sinuous (Berkeley style) wafer: plain hexagonal packing.
		nring, err := lattice.HexRings(npix)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		// center-center distance along the vertex-vertex axis
		width := unit.AngleFromDeg(float64(2*(nring-1)) * pixsep)
		polA := make([]unit.Angle, npix)
		polB := make([]unit.Angle, npix)
		handed = make([]string, npix)
		if npix == 37 {
			for p := range polA {
				polA[p] = unit.AngleFromDeg(sinuous37Pol[p])
				polB[p] = unit.AngleFromDeg(sinuous37Pol[p] + 90)
				handed[p] = sinuous37Handed[p]
			}
		} else {
			// Polarization alternates every other column pair, handedness
			// every column.
			for p := 0; p < npix; p++ {
				_, col, err := lattice.HexRowCol(npix, p)
				if err != nil {
					return nil, nil, nil, nil, err
				}
				if col%2 == 0 {
					handed[p] = "L"
				} else {
					handed[p] = "R"
				}
				var a float64
				if col%4 >= 2 {
					a = 45
				}
				polA[p] = unit.AngleFromDeg(a)
				polB[p] = unit.AngleFromDeg(a + 90)
			}
		}
		layoutA, err = layout.Hex(npix, width, polA)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		layoutB, err = layout.Hex(npix, width, polB)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return layoutA, layoutB, handed, nil, nil
	}
	return nil, nil, nil, nil,
		fmt.Errorf("detsim: unknown wafer packing %q", wprops.Packing)
}

// waferIDOffset derives the detector ID base from the trailing two digits
// of the wafer slot name.
func waferIDOffset(waferSlot string) (int, error) {
	if len(waferSlot) < 2 {
		return 0, fmt.Errorf("detsim: wafer slot name %q too short", waferSlot)
	}
	n, err := strconv.Atoi(waferSlot[len(waferSlot)-2:])
	if err != nil {
		return 0, fmt.Errorf(
			"detsim: wafer slot name %q does not end in two digits", waferSlot)
	}
	return n * 10000, nil
}

// WaferDetectors generates the detector records for one wafer of the
// given hardware configuration.
//
// platescale is the telescope plate scale in degrees per mm and fwhm the
// nominal beam FWHM in arcminutes by band.  band, if non-empty, restricts
// output to that band; it must be one of the wafer's bands.  center is
// the orientation of the wafer center relative to the boresight.
//
// Each surviving pixel yields two records per band, polarizations "A" and
// "B" 90° apart, keyed "<wafer>_p<pixel>_<band>_<pol>" in pixel, band,
// polarization order.  Readout channels are assigned by counting records.
func WaferDetectors(hw *hardware.Hardware, waferSlot string,
	platescale float64, fwhm *hardware.OrderedMap[float64], band string,
	center quat.Number) (*hardware.OrderedMap[hardware.Detector], error) {

	wprops, ok := hw.WaferSlots.Get(waferSlot)
	if !ok {
		return nil, fmt.Errorf("detsim: unknown wafer slot %q", waferSlot)
	}
	cardprops, ok := hw.CardSlots.Get(wprops.CardSlot)
	if !ok {
		return nil, fmt.Errorf(
			"detsim: wafer slot %q references unknown card slot %q",
			waferSlot, wprops.CardSlot)
	}
	bands := wprops.Bands
	if band != "" {
		valid := false
		for _, b := range bands {
			if b == band {
				valid = true
				break
			}
		}
		if !valid {
			return nil, fmt.Errorf("detsim: band %q not valid for wafer %q",
				band, waferSlot)
		}
		bands = []string{band}
	}

	layoutA, layoutB, handed, kill, err := waferLayouts(wprops, platescale)
	if err != nil {
		return nil, err
	}
	killset := make(map[int]bool, len(kill))
	for _, k := range kill {
		killset[k] = true
	}

	idoff, err := waferIDOffset(waferSlot)
	if err != nil {
		return nil, err
	}
	chanPerBias := cardprops.NChannel / cardprops.NBias

	dets := new(hardware.OrderedMap[hardware.Detector])
	doff := 0
	p := 0
	for px := 0; px < wprops.NPixel; px++ {
		if killset[px] {
			continue
		}
		pstr := fmt.Sprintf("%03d", p)
		for _, b := range bands {
			fw, ok := fwhm.Get(b)
			if !ok {
				return nil, fmt.Errorf("detsim: no FWHM for band %q", b)
			}
			for pi, pl := range [2]string{"A", "B"} {
				lq := layoutA
				if pi == 1 {
					lq = layoutB
				}
				d := hardware.Detector{
					WaferSlot:   waferSlot,
					ID:          idoff + doff,
					Pixel:       pstr,
					Band:        b,
					FWHM:        fw,
					Pol:         pl,
					CardSlot:    wprops.CardSlot,
					Channel:     doff,
					AMC:         doff / chanPerAMC,
					Bias:        doff / chanPerBias,
					Bondpad:     doff % chanPerMux,
					MuxPosition: doff / chanPerMux,
					Quat:        pointing.XYZW(quat.Mul(center, lq[p])),
				}
				if handed != nil {
					d.Handed = handed[p]
				}
				dets.Set(fmt.Sprintf("%s_p%s_%s_%s", waferSlot, pstr, b, pl), d)
				doff++
			}
		}
		p++
	}
	return dets, nil
}
