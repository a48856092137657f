package pointing_test

import (
	"math"
	"testing"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/num/quat"

	"github.com/ccatp/fpsim/pointing"
)

const tol = 1e-12

// rotate applies q to v as q v q*.
func rotate(q quat.Number, v coord.Cart) coord.Cart {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return coord.Cart{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

func assertQuat(t *testing.T, want, got quat.Number) {
	t.Helper()
	assert.InDelta(t, want.Real, got.Real, tol)
	assert.InDelta(t, want.Imag, got.Imag, tol)
	assert.InDelta(t, want.Jmag, got.Jmag, tol)
	assert.InDelta(t, want.Kmag, got.Kmag, tol)
}

func TestZRot(t *testing.T) {
	q := pointing.ZRot(unit.AngleFromDeg(90))
	assertQuat(t, quat.Number{Real: math.Sqrt2 / 2, Kmag: math.Sqrt2 / 2}, q)
	got := pointing.XYZW(q)
	assert.InDelta(t, 0, got[0], tol)
	assert.InDelta(t, 0, got[1], tol)
	assert.InDelta(t, math.Sqrt2/2, got[2], tol)
	assert.InDelta(t, math.Sqrt2/2, got[3], tol)

	// a 90° turn about Z carries the X axis to the Y axis
	v := rotate(q, coord.Cart{X: 1})
	assert.InDelta(t, 0, v.X, tol)
	assert.InDelta(t, 1, v.Y, tol)
	assert.InDelta(t, 0, v.Z, tol)

	assertQuat(t, pointing.Ident, pointing.ZRot(0))
}

func TestZRotComposition(t *testing.T) {
	a := unit.AngleFromDeg(25)
	b := unit.AngleFromDeg(40)
	assertQuat(t, pointing.ZRot(a+b),
		quat.Mul(pointing.ZRot(a), pointing.ZRot(b)))
}

func TestFromVectors(t *testing.T) {
	z := coord.Cart{Z: 1}
	x := coord.Cart{X: 1}
	q := pointing.FromVectors(z, x)
	assert.InDelta(t, 1, quat.Abs(q), tol)
	v := rotate(q, z)
	assert.InDelta(t, 1, v.X, tol)
	assert.InDelta(t, 0, v.Y, tol)
	assert.InDelta(t, 0, v.Z, tol)
}

// Argument magnitudes must not matter, only directions.
func TestFromVectorsScale(t *testing.T) {
	a := coord.Cart{X: .3, Y: -.4, Z: .8}
	b := coord.Cart{X: -.1, Y: .7, Z: .2}
	var a3, b5 coord.Cart
	a3.MulScalar(&a, 3)
	b5.MulScalar(&b, 5)
	assertQuat(t, pointing.FromVectors(a, b), pointing.FromVectors(a3, b5))

	q := pointing.FromVectors(a, b)
	assert.InDelta(t, 1, quat.Abs(q), tol)
	got := rotate(q, a)
	// rotated a is parallel to b with a's length
	scale := math.Sqrt(a.Square() / b.Square())
	assert.InDelta(t, b.X*scale, got.X, tol)
	assert.InDelta(t, b.Y*scale, got.Y, tol)
	assert.InDelta(t, b.Z*scale, got.Z, tol)
}

func TestFromOffsets(t *testing.T) {
	x5 := unit.AngleFromDeg(5)
	offs := []pointing.Offset{
		{},
		{X: x5},
		{Y: unit.AngleFromDeg(-3), Rot: unit.AngleFromDeg(45)},
	}
	qs, err := pointing.FromOffsets(offs)
	require.NoError(t, err)
	require.Len(t, qs, len(offs))
	for i, q := range qs {
		assert.InDelta(t, 1, quat.Abs(q), tol, "offset %d", i)
	}
	assertQuat(t, pointing.Ident, qs[0])

	// offset 1 tilts the boresight toward +X by 5°
	v := rotate(qs[1], coord.Cart{Z: 1})
	assert.InDelta(t, math.Sin(x5.Rad()), v.X, tol)
	assert.InDelta(t, 0, v.Y, tol)
	assert.InDelta(t, math.Cos(x5.Rad()), v.Z, tol)
}

// Rot spins about the original Z axis before the tilt, so the tilted
// detector keeps its spun orientation.
func TestFromOffsetsRotOrder(t *testing.T) {
	off := pointing.Offset{
		X:   unit.AngleFromDeg(4),
		Y:   unit.AngleFromDeg(-2),
		Rot: unit.AngleFromDeg(30),
	}
	qs, err := pointing.FromOffsets([]pointing.Offset{off})
	require.NoError(t, err)

	noRot := off
	noRot.Rot = 0
	ps, err := pointing.FromOffsets([]pointing.Offset{noRot})
	require.NoError(t, err)
	assertQuat(t, quat.Mul(ps[0], pointing.ZRot(off.Rot)), qs[0])
}

func TestFromOffsetsDomain(t *testing.T) {
	_, err := pointing.FromOffsets([]pointing.Offset{
		{X: unit.AngleFromDeg(80), Y: unit.AngleFromDeg(80)},
	})
	assert.Error(t, err)
}

func TestMulOrder(t *testing.T) {
	a := pointing.ZRot(unit.AngleFromDeg(90))
	b := pointing.FromVectors(coord.Cart{Z: 1}, coord.Cart{X: 1})
	ab := quat.Mul(a, b)
	ba := quat.Mul(b, a)
	d := math.Abs(ab.Real-ba.Real) + math.Abs(ab.Imag-ba.Imag) +
		math.Abs(ab.Jmag-ba.Jmag) + math.Abs(ab.Kmag-ba.Kmag)
	assert.Greater(t, d, .1, "composition must not commute")
}
