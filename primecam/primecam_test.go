package primecam_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccatp/fpsim/detsim"
	"github.com/ccatp/fpsim/hardware"
	"github.com/ccatp/fpsim/primecam"
)

func TestExample(t *testing.T) {
	hw := primecam.Example()
	require.NoError(t, hw.Validate())

	assert.Equal(t, 7, hw.Bands.Len())
	assert.Equal(t, 15, hw.WaferSlots.Len())
	assert.Equal(t, 5, hw.TubeSlots.Len())
	assert.Equal(t, 1, hw.Telescopes.Len())
	assert.Equal(t, 15, hw.CardSlots.Len())
	assert.Equal(t, 3, hw.CrateSlots.Len())
	assert.Equal(t, 2, hw.Detectors.Len())

	// tubes take three consecutive wafers of their type
	c1, ok := hw.TubeSlots.Get("c1")
	require.True(t, ok)
	assert.Equal(t, "PC_f850T", c1.Type)
	assert.Empty(t, cmp.Diff([]string{"w06", "w07", "w08"}, c1.WaferSlots))
	i3, _ := hw.TubeSlots.Get("i3")
	assert.Empty(t, cmp.Diff([]string{"w00", "w01", "w02"}, i3.WaferSlots))

	lat, ok := hw.Telescopes.Get("LAT")
	require.True(t, ok)
	assert.Empty(t, cmp.Diff([]string{"c1", "i5", "i6", "i2", "i3"},
		lat.TubeSlots))
	assert.InDelta(t, .00495, lat.PlateScale, 1e-12)
	assert.Equal(t, 5, lat.FWHM.Len())

	// fifteen cards fill two six card crates plus a partial third
	crates := hw.CrateSlots.Items()
	assert.Len(t, crates[0].Value.CardSlots, 6)
	assert.Len(t, crates[1].Value.CardSlots, 6)
	assert.Len(t, crates[2].Value.CardSlots, 3)
	for _, cr := range crates {
		assert.Equal(t, "LAT", cr.Value.Telescope)
	}

	// hand-written placeholder records carry a readout frequency
	ph, ok := hw.Detectors.Get("w42_p000_SAT_f030_A")
	require.True(t, ok)
	assert.InDelta(t, 4, ph.ReadoutFreqGHz, 1e-12)
}

func TestExampleRoundTrip(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "pc.yaml")
	p2 := filepath.Join(dir, "pc2.yaml")
	hw := primecam.Example()
	require.NoError(t, hw.Save(p1))

	got, err := hardware.Load(p1)
	require.NoError(t, err)
	require.NoError(t, got.Save(p2))

	b1, err := os.ReadFile(p1)
	require.NoError(t, err)
	b2, err := os.ReadFile(p2)
	require.NoError(t, err)
	assert.Equal(t, string(b1), string(b2))
}

func TestLATDetectors(t *testing.T) {
	hw := primecam.Example()
	dets, err := detsim.TelescopeDetectors(hw, "LAT", nil)
	require.NoError(t, err)

	// two detectors per surviving pixel, two pixels killed per wafer
	want := 0
	lat, _ := hw.Telescopes.Get("LAT")
	for _, tb := range lat.TubeSlots {
		ts, _ := hw.TubeSlots.Get(tb)
		for _, w := range ts.WaferSlots {
			ws, _ := hw.WaferSlots.Get(w)
			want += 2 * (ws.NPixel - 2) * len(ws.Bands)
		}
	}
	assert.Equal(t, 57054, want)
	assert.Equal(t, want, dets.Len())

	// wafer order follows tube order; pixels count from zero per wafer
	keys := dets.Keys()
	assert.Equal(t, "w06_p000_PC_f850_A", keys[0])
	assert.Equal(t, "w06_p000_PC_f850_B", keys[1])

	// detector IDs restart at the wafer base
	d, ok := dets.Get("w09_p000_PC_f350_A")
	require.True(t, ok)
	assert.Equal(t, 90000, d.ID)
	assert.Equal(t, 0, d.Channel)
	assert.InDelta(t, .62, d.FWHM, 1e-12)
	assert.Zero(t, d.ReadoutFreqGHz) // synthesized records leave it unset

	// synthesis is deterministic
	again, err := detsim.TelescopeDetectors(hw, "LAT", nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(keys, again.Keys()))
}

func TestLATTubeSubset(t *testing.T) {
	hw := primecam.Example()
	dets, err := detsim.TelescopeDetectors(hw, "LAT", []string{"i5"})
	require.NoError(t, err)
	assert.Equal(t, 10356, dets.Len()) // 3 wafers, 2*(1728-2) each

	for _, k := range dets.Keys() {
		switch {
		case strings.HasPrefix(k, "w09_"),
			strings.HasPrefix(k, "w10_"),
			strings.HasPrefix(k, "w11_"):
		default:
			t.Fatalf("detector %s outside tube i5", k)
		}
	}

	_, err = detsim.TelescopeDetectors(hw, "LAT", []string{"i9"})
	assert.ErrorContains(t, err, "invalid tube slot")
}
