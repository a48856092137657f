package hardware

import "fmt"

// Validate checks the cross references between configuration tables:
// every wafer must name a known card slot and known bands, every tube
// must name known wafer slots, and every telescope must name known tube
// slots with FWHM entries for every band its wafers observe.
func (hw *Hardware) Validate() error {
	for _, w := range hw.WaferSlots.Keys() {
		ws, _ := hw.WaferSlots.Get(w)
		if _, ok := hw.CardSlots.Get(ws.CardSlot); !ok {
			return fmt.Errorf(
				"hardware: wafer slot %q references unknown card slot %q",
				w, ws.CardSlot)
		}
		for _, b := range ws.Bands {
			if _, ok := hw.Bands.Get(b); !ok {
				return fmt.Errorf(
					"hardware: wafer slot %q references unknown band %q", w, b)
			}
		}
	}
	for _, t := range hw.TubeSlots.Keys() {
		ts, _ := hw.TubeSlots.Get(t)
		for _, w := range ts.WaferSlots {
			if _, ok := hw.WaferSlots.Get(w); !ok {
				return fmt.Errorf(
					"hardware: tube slot %q references unknown wafer slot %q",
					t, w)
			}
		}
	}
	for _, tel := range hw.Telescopes.Keys() {
		tp, _ := hw.Telescopes.Get(tel)
		for _, t := range tp.TubeSlots {
			ts, ok := hw.TubeSlots.Get(t)
			if !ok {
				return fmt.Errorf(
					"hardware: telescope %q references unknown tube slot %q",
					tel, t)
			}
			for _, w := range ts.WaferSlots {
				ws, _ := hw.WaferSlots.Get(w)
				for _, b := range ws.Bands {
					if _, ok := tp.FWHM.Get(b); !ok {
						return fmt.Errorf(
							"hardware: telescope %q has no FWHM for band %q of wafer %q",
							tel, b, w)
					}
				}
			}
		}
	}
	return nil
}
