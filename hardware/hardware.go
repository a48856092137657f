// Package hardware models an instrument as a nested configuration of
// bands, wafers, tubes, telescopes and readout electronics.
//
// A Hardware value is a set of ordered tables, each mapping a slot name to
// the static properties of whatever occupies that slot.  The tables
// cross-reference each other by name: wafers name their readout card,
// tubes name their wafers, telescopes name their tubes.  Configurations
// round-trip through YAML (optionally gzipped) with table order preserved.
package hardware

// Hardware is a full instrument description.
type Hardware struct {
	Bands      OrderedMap[Band]      `yaml:"bands"`
	WaferSlots OrderedMap[WaferSlot] `yaml:"wafer_slots"`
	TubeSlots  OrderedMap[TubeSlot]  `yaml:"tube_slots"`
	Telescopes OrderedMap[Telescope] `yaml:"telescopes"`
	CardSlots  OrderedMap[CardSlot]  `yaml:"card_slots"`
	CrateSlots OrderedMap[CrateSlot] `yaml:"crate_slots"`
	Detectors  OrderedMap[Detector]  `yaml:"detectors"`
}

// Band describes one observing frequency band.  Frequencies are GHz, NET
// is µK√s.
type Band struct {
	Center   float64 `yaml:"center"`
	Low      float64 `yaml:"low"`
	High     float64 `yaml:"high"`
	Bandpass string  `yaml:"bandpass"`
	NET      float64 `yaml:"NET"`
	FKnee    float64 `yaml:"fknee"`
	FMin     float64 `yaml:"fmin"`
	Alpha    float64 `yaml:"alpha"`
	A        float64 `yaml:"A"`
	C        float64 `yaml:"C"`
	NETCorr  float64 `yaml:"NET_corr"`
}

// WaferSlot describes one detector wafer.  Packing selects the pixel
// lattice: "F" for a feedhorn wafer built from three rhombi, "S" for a
// sinuous wafer on a plain hexagonal packing.  Dimensions are mm.
type WaferSlot struct {
	Type       string   `yaml:"type"`
	Packing    string   `yaml:"packing"`
	RhombusGap float64  `yaml:"rhombusgap"`
	NPixel     int      `yaml:"npixel"`
	PixSize    float64  `yaml:"pixsize"`
	Bands      []string `yaml:"bands"`
	CardSlot   string   `yaml:"card_slot"`
	WaferName  string   `yaml:"wafer_name"`
}

// TubeSlot describes one optics tube.  Location indexes the tube's
// position within a large-aperture telescope's hexagonal tube layout.
type TubeSlot struct {
	Type         string   `yaml:"type"`
	WaferSpace   float64  `yaml:"waferspace"`
	WaferSlots   []string `yaml:"wafer_slots"`
	Location     int      `yaml:"location"`
	TubeName     string   `yaml:"tube_name"`
	ReceiverName string   `yaml:"receiver_name"`
}

// Telescope describes one telescope.  PlateScale is degrees of sky per mm
// of focal plane; TubeSpace is the tube center spacing in mm; FWHM gives
// the nominal beam size in arcminutes by band.
type Telescope struct {
	TubeSlots    []string            `yaml:"tube_slots"`
	PlateScale   float64             `yaml:"platescale"`
	TubeSpace    float64             `yaml:"tubespace"`
	FWHM         OrderedMap[float64] `yaml:"fwhm"`
	PlatformName string              `yaml:"platform_name"`
}

// CardSlot describes one readout card.
type CardSlot struct {
	NBias    int    `yaml:"nbias"`
	NAMC     int    `yaml:"nAMC"`
	NChannel int    `yaml:"nchannel"`
	CardName string `yaml:"card_name"`
}

// CrateSlot describes one readout crate and the cards it hosts.
type CrateSlot struct {
	CardSlots []string `yaml:"card_slots"`
	Telescope string   `yaml:"telescope"`
	CrateName string   `yaml:"crate_name"`
}

// Detector identifies one polarization-sensitive sensor.  Quat is the
// detector orientation relative to the telescope boresight in
// (x, y, z, w) component order; it encodes both the pixel position on the
// sky and the polarization angle.  Records are immutable once synthesized.
type Detector struct {
	WaferSlot    string     `yaml:"wafer_slot"`
	ID           int        `yaml:"ID"`
	Pixel        string     `yaml:"pixel"`
	Band         string     `yaml:"band"`
	FWHM         float64    `yaml:"fwhm"`
	Pol          string     `yaml:"pol"`
	Handed       string     `yaml:"handed,omitempty"`
	CardSlot     string     `yaml:"card_slot"`
	Channel      int        `yaml:"channel"`
	AMC          int        `yaml:"AMC"`
	Bias         int        `yaml:"bias"`
	// ReadoutFreqGHz is only set on hand-written records; synthesized
	// detectors omit it because the frequency schedule is tied to one
	// particular readout channel count.
	ReadoutFreqGHz float64    `yaml:"readout_freq_GHz,omitempty"`
	Bondpad        int        `yaml:"bondpad"`
	MuxPosition    int        `yaml:"mux_position"`
	Quat           [4]float64 `yaml:"quat,flow"`
	DetectorName   string     `yaml:"detector_name"`
}
