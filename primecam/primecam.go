// Package primecam provides the example Prime-Cam instrument description
// used as the default configuration and as a test fixture.
//
// Band sensitivities follow the CCAT-prime forecast in
// https://arxiv.org/abs/2107.10364 (Table 1, top panel).
package primecam

import (
	"fmt"
	"strings"

	"github.com/ccatp/fpsim/hardware"
)

var bandDefs = []struct {
	Name string
	Band hardware.Band
}{
	{"PC_specchip", hardware.Band{Center: 38.9, Low: 30.9, High: 46.9,
		NET: 281.5, FKnee: 50, FMin: .01, Alpha: 3.5,
		A: .16, C: .79, NETCorr: 1.02}},
	{"PC_eorspec", hardware.Band{Center: 92, Low: 79, High: 105,
		NET: 361, FKnee: 50, FMin: .01, Alpha: 3.5,
		A: .16, C: .80, NETCorr: 1.09}},
	{"PC_eor350", hardware.Band{Center: 92, Low: 79, High: 105,
		NET: 361, FKnee: 50, FMin: .01, Alpha: 3.5,
		A: .16, C: .80, NETCorr: 1.09}},
	{"PC_eor250", hardware.Band{Center: 92, Low: 79, High: 105,
		NET: 361, FKnee: 50, FMin: .01, Alpha: 3.5,
		A: .16, C: .80, NETCorr: 1.09}},
	{"PC_f850", hardware.Band{Center: 147.5, Low: 130, High: 165,
		NET: 352.4, FKnee: 50, FMin: .01, Alpha: 3.5,
		A: .17, C: .78, NETCorr: 1.01}},
	{"PC_f350", hardware.Band{Center: 225.7, Low: 196.7, High: 254.7,
		NET: 724.4, FKnee: 50, FMin: .01, Alpha: 3.5,
		A: .29, C: .62, NETCorr: 1.02}},
	{"PC_f280", hardware.Band{Center: 285.4, Low: 258.4, High: 312.4,
		NET: 1803.9, FKnee: 50, FMin: .01, Alpha: 3.5,
		A: .36, C: .53, NETCorr: 1.00}},
}

// Wafer types, three wafers of each.  NPixel counts feedhorns; PixSize is
// the feedhorn spacing in mm.
var waferDefs = []struct {
	Type       string
	Count      int
	NPixel     int
	PixSize    float64
	RhombusGap float64
	Bands      []string
}{
	{"PC_specchipT", 3, 867, 3.84, .71, []string{"PC_specchip"}},
	{"PC_eorspecT", 3, 1728, 2.75, .71, []string{"PC_eorspec"}},
	{"PC_f850T", 3, 3468, 1.97, .71, []string{"PC_f850"}},
	{"PC_f350T", 3, 1728, 2.75, .71, []string{"PC_f350"}},
	{"PC_f280T", 3, 1728, 2.75, .71, []string{"PC_f280"}},
}

// Instrument module positions within the cryostat, named by cryostat
// port.  Location indexes the 19-position hexagonal tube grid.
var tubeDefs = []struct {
	Name     string
	Type     string
	Location int
}{
	{"c1", "PC_f850T", 0},
	{"i5", "PC_f350T", 1},
	{"i6", "PC_f280T", 2},
	{"i2", "PC_eorspecT", 4},
	{"i3", "PC_specchipT", 5},
}

var fwhmDefs = []struct {
	Band string
	FWHM float64 // arcmin
}{
	{"PC_specchip", .78},
	{"PC_eorspec", .78},
	{"PC_f850", .25},
	{"PC_f350", .62},
	{"PC_f280", .78},
}

// Example returns the example Prime-Cam hardware configuration: seven
// bands, fifteen feedhorn wafers in five instrument modules, and the
// single LAT telescope with its readout card and crate assignment.
func Example() *hardware.Hardware {
	hw := new(hardware.Hardware)

	for _, bd := range bandDefs {
		hw.Bands.Set(bd.Name, bd.Band)
	}

	windx, cardindx := 0, 0
	for _, wd := range waferDefs {
		for i := 0; i < wd.Count; i++ {
			hw.WaferSlots.Set(fmt.Sprintf("w%02d", windx), hardware.WaferSlot{
				Type:       wd.Type,
				Packing:    "F",
				RhombusGap: wd.RhombusGap,
				NPixel:     wd.NPixel,
				PixSize:    wd.PixSize,
				Bands:      wd.Bands,
				CardSlot:   fmt.Sprintf("card_slot%02d", cardindx),
			})
			cardindx++
			windx++
		}
	}

	// Each tube takes the next three unassigned wafers of its type.
	woff := make(map[string]int)
	for _, td := range tubeDefs {
		tb := hardware.TubeSlot{
			Type:       td.Type,
			WaferSpace: 128.4,
			Location:   td.Location,
		}
		for tw := 0; tw < 3; tw++ {
			off := 0
			for _, w := range hw.WaferSlots.Keys() {
				ws, _ := hw.WaferSlots.Get(w)
				if ws.Type != td.Type {
					continue
				}
				if off == woff[td.Type] {
					tb.WaferSlots = append(tb.WaferSlots, w)
					woff[td.Type]++
					break
				}
				off++
			}
		}
		hw.TubeSlots.Set(td.Name, tb)
	}

	tele := hardware.Telescope{
		TubeSlots:  []string{"c1", "i5", "i6", "i2", "i3"},
		PlateScale: 0.00495,
		// 359.6 mm projects to 1.78 degrees on the sky at this plate
		// scale.
		TubeSpace: 359.6,
	}
	for _, f := range fwhmDefs {
		tele.FWHM.Set(f.Band, f.FWHM)
	}
	hw.Telescopes.Set("LAT", tele)

	// Assign every wafer's readout card to a crate.  A crate holds six
	// cards (four on a small aperture telescope) and each telescope
	// starts a fresh crate.
	crtIndx := 0
	for _, tel := range hw.Telescopes.Keys() {
		tprops, _ := hw.Telescopes.Get(tel)
		crn := fmt.Sprintf("crate_slot%02d", crtIndx)
		crt := hardware.CrateSlot{Telescope: tel}
		for _, t := range tprops.TubeSlots {
			ts, _ := hw.TubeSlots.Get(t)
			for _, w := range ts.WaferSlots {
				ws, _ := hw.WaferSlots.Get(w)
				hw.CardSlots.Set(ws.CardSlot, hardware.CardSlot{
					NBias:    12,
					NAMC:     2,
					NChannel: 1764,
				})
				crt.CardSlots = append(crt.CardSlots, ws.CardSlot)

				full := len(crt.CardSlots) >= 6
				if strings.Contains(tel, "S") {
					full = len(crt.CardSlots) >= 4
				}
				if full {
					hw.CrateSlots.Set(crn, crt)
					crtIndx++
					crn = fmt.Sprintf("crate_slot%02d", crtIndx)
					crt = hardware.CrateSlot{Telescope: tel}
				}
			}
		}
		hw.CrateSlots.Set(crn, crt)
		crtIndx++
	}

	// Placeholder detector entries demonstrating the record format.
	pols := [2]string{"A", "B"}
	hands := [2]string{"L", "R"}
	bandarr := [2]string{"SAT_f030", "SAT_f040"}
	for d := 0; d < 4; d++ {
		bindx := d % 2
		det := hardware.Detector{
			WaferSlot:      "w42",
			ID:             d,
			Pixel:          "000",
			Band:           bandarr[bindx],
			FWHM:           1,
			Pol:            pols[bindx],
			Handed:         hands[bindx],
			CardSlot:       "card_slot42",
			Channel:        d,
			ReadoutFreqGHz: 4,
			Quat:           [4]float64{0, 0, 0, 1},
		}
		hw.Detectors.Set(
			fmt.Sprintf("w42_p000_%s_%s", det.Band, det.Pol), det)
	}

	return hw
}
