// Package xform implements the rigid Euler-angle transform spec.md §3
// describes for Vec3: rotation about x, then y, then z, followed by
// translation, composed as basis-rotation matrices via gonum.org/v1/gonum/mat
// rather than quaternion slerp (SPEC_FULL.md "Rodriguez-equivalent composed
// basis rotations").
package xform

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/dcrane/isofield/vec3"
)

// Transform is a rotation (Euler angles in radians, applied x then y then
// z) plus a translation.
type Transform struct {
	RX, RY, RZ float64
	Translate  vec3.Vec

	basis *mat.Dense // lazily composed on first Apply
}

func rotX(theta float64) *mat.Dense {
	c, s := math.Cos(theta), math.Sin(theta)
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	})
}

func rotY(theta float64) *mat.Dense {
	c, s := math.Cos(theta), math.Sin(theta)
	return mat.NewDense(3, 3, []float64{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	})
}

func rotZ(theta float64) *mat.Dense {
	c, s := math.Cos(theta), math.Sin(theta)
	return mat.NewDense(3, 3, []float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	})
}

// Basis returns the composed 3x3 rotation matrix R = Rz * Ry * Rx,
// computing it once and caching it.
func (t *Transform) Basis() *mat.Dense {
	if t.basis != nil {
		return t.basis
	}
	ryrx := new(mat.Dense)
	ryrx.Mul(rotY(t.RY), rotX(t.RX))
	rzryrx := new(mat.Dense)
	rzryrx.Mul(rotZ(t.RZ), ryrx)
	t.basis = rzryrx
	return t.basis
}

// Apply rotates v by the composed basis and then translates it.
func (t *Transform) Apply(v vec3.Vec) vec3.Vec {
	b := t.Basis()
	in := mat.NewVecDense(3, []float64{v.X, v.Y, v.Z})
	out := mat.NewVecDense(3, nil)
	out.MulVec(b, in)
	return vec3.Vec{
		X: out.AtVec(0) + t.Translate.X,
		Y: out.AtVec(1) + t.Translate.Y,
		Z: out.AtVec(2) + t.Translate.Z,
	}
}

// ApplyInverse undoes Apply: untranslate, then apply the transpose of the
// (orthonormal) rotation basis.
func (t *Transform) ApplyInverse(v vec3.Vec) vec3.Vec {
	b := t.Basis()
	u := vec3.Vec{X: v.X - t.Translate.X, Y: v.Y - t.Translate.Y, Z: v.Z - t.Translate.Z}
	in := mat.NewVecDense(3, []float64{u.X, u.Y, u.Z})
	out := mat.NewVecDense(3, nil)
	out.MulVec(b.T(), in)
	return vec3.Vec{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}
