package detsim

// As-built polarization angles and antenna handedness for the 37-pixel
// sinuous wafer, indexed by spiral pixel position.  This fixed fabrication
// layout overrides the general column-parity rule: A/B pairs keep the same
// nominal orientation but trail each other along the vertex-vertex axis of
// the hexagon.
var (
	sinuous37Pol = [37]float64{
		45, 0, 45, 45, 45, 45, 0, 0, 0, 45, 45, 0, 0, 0, 45, 45, 0, 0, 0,
		45, 0, 0, 45, 45, 0, 0, 0, 0, 0, 0, 45, 45, 0, 0, 45, 45, 45,
	}
	sinuous37Handed = [37]string{
		"R", "L", "R", "L", "L", "R", "L", "R", "L", "R", "L", "R", "R",
		"R", "L", "R", "L", "R", "R", "L", "R", "L", "R", "L", "R", "L",
		"L", "L", "L", "R", "L", "R", "L", "R", "L", "L", "L",
	}
)

// Sinuous37Pol returns the fixed A-detector polarization angle in degrees
// for pixel p of a 37-pixel sinuous wafer.
func Sinuous37Pol(p int) float64 { return sinuous37Pol[p] }

// Sinuous37Handed returns the fixed handedness ("L" or "R") for pixel p of
// a 37-pixel sinuous wafer.
func Sinuous37Handed(p int) string { return sinuous37Handed[p] }
