package scene

import "github.com/go-gl/mathgl/mgl64"

// Vec3 is a point or direction in world units (metres).
type Vec3 struct {
	X, Y, Z float64
}

func V(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// FromVec converts an mgl64 vector.
func FromVec(v mgl64.Vec3) Vec3 { return Vec3{v[0], v[1], v[2]} }

func (v Vec3) Vec() mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

func (v Vec3) Add(o Vec3) Vec3      { return FromVec(v.Vec().Add(o.Vec())) }
func (v Vec3) Sub(o Vec3) Vec3      { return FromVec(v.Vec().Sub(o.Vec())) }
func (v Vec3) Scale(s float64) Vec3 { return FromVec(v.Vec().Mul(s)) }
func (v Vec3) Dot(o Vec3) float64   { return v.Vec().Dot(o.Vec()) }
func (v Vec3) Cross(o Vec3) Vec3    { return FromVec(v.Vec().Cross(o.Vec())) }
func (v Vec3) Length() float64      { return v.Vec().Len() }

func (v Vec3) Normalize() Vec3 {
	if v.Length() == 0 {
		return v
	}
	return FromVec(v.Vec().Normalize())
}

// Euler holds rotation angles in radians, applied in X, Y, Z order.
type Euler struct {
	X, Y, Z float64
}

// Mat4 is a column-major 4x4 transform.
type Mat4 = mgl64.Mat4

// Compose builds translation * rotation * scale, with the rotation Rx * Ry * Rz.
func Compose(pos Vec3, rot Euler, scale Vec3) Mat4 {
	r := mgl64.HomogRotate3DX(rot.X).
		Mul4(mgl64.HomogRotate3DY(rot.Y)).
		Mul4(mgl64.HomogRotate3DZ(rot.Z))
	return mgl64.Translate3D(pos.X, pos.Y, pos.Z).
		Mul4(r).
		Mul4(mgl64.Scale3D(scale.X, scale.Y, scale.Z))
}

// TransformPoint applies m to the point v.
func TransformPoint(m Mat4, v Vec3) Vec3 {
	return FromVec(m.Mul4x1(v.Vec().Vec4(1)).Vec3())
}

// Translation returns the translation column of m.
func Translation(m Mat4) Vec3 {
	return FromVec(m.Col(3).Vec3())
}

// Inverse returns the inverse of m, or the identity when m is singular.
func Inverse(m Mat4) Mat4 {
	if m.Det() == 0 {
		return mgl64.Ident4()
	}
	return m.Inv()
}
