// Package pointing converts focal plane angular offsets into pointing
// quaternions.
//
// All orientations are unit quaternions in the telescope frame, with the
// Z axis along the boresight.  Composition follows the usual Hamilton
// product convention: in quat.Mul(outer, inner) the inner rotation is
// applied first.
package pointing

import (
	"fmt"
	"math"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/num/quat"
)

// Ident is the identity orientation.
var Ident = quat.Number{Real: 1}

// Offset is an angular offset from the boresight.  X and Y are small-angle
// distances from the Z axis in two orthogonal directions.  Rot is a
// rotation about the Z axis, applied before the axis is tilted to the X/Y
// location.
type Offset struct {
	X, Y unit.Angle
	Rot  unit.Angle
}

// ZRot returns the rotation about the Z axis by angle a.
func ZRot(a unit.Angle) quat.Number {
	s, c := math.Sincos(.5 * a.Rad())
	return quat.Number{Real: c, Kmag: s}
}

// FromVectors returns the minimal rotation taking the direction of a to
// the direction of b.  Neither argument needs to be normalized.  The
// result is undefined for antiparallel arguments, which cannot arise from
// offsets inside the unit sphere.
func FromVectors(a, b coord.Cart) quat.Number {
	// Half-way construction: the quaternion with scalar part
	// |a||b| + a·b and vector part a×b rotates a onto b by twice the
	// half angle between them.
	var x coord.Cart
	x.Cross(&a, &b)
	w := math.Sqrt(a.Square()*b.Square()) + a.Dot(&b)
	q := quat.Number{Real: w, Imag: x.X, Jmag: x.Y, Kmag: x.Z}
	return quat.Scale(1/quat.Abs(q), q)
}

// FromOffsets converts angular offsets into pointing quaternions, one per
// offset.  Each result first rotates by Rot about the Z axis, then tilts
// the Z axis to the X/Y angle location.
//
// An offset with sin²(X)+sin²(Y) > 1 does not describe a direction on the
// unit sphere and is reported as an error rather than propagated as NaN.
func FromOffsets(offsets []Offset) ([]quat.Number, error) {
	zaxis := coord.Cart{Z: 1}
	out := make([]quat.Number, len(offsets))
	for i, off := range offsets {
		angrot := ZRot(off.Rot)
		wx := math.Sin(off.X.Rad())
		wy := math.Sin(off.Y.Rad())
		wsq := wx*wx + wy*wy
		if wsq > 1 {
			return nil, fmt.Errorf(
				"pointing: offset %d (%.6g, %.6g rad) leaves the unit sphere",
				i, off.X.Rad(), off.Y.Rad())
		}
		wdir := coord.Cart{X: wx, Y: wy, Z: math.Sqrt(1 - wsq)}
		out[i] = quat.Mul(FromVectors(zaxis, wdir), angrot)
	}
	return out, nil
}

// XYZW returns the components of q in (x, y, z, w) order, the layout used
// for detector records.
func XYZW(q quat.Number) [4]float64 {
	return [4]float64{q.Imag, q.Jmag, q.Kmag, q.Real}
}
