package core

// degenerateLength is the cross product length below which two axes are
// treated as parallel when building a basis
const degenerateLength = 1e-6

var (
	axisX = Vec3{X: 1}
	axisY = Vec3{Y: 1}
	axisZ = Vec3{Z: 1}
)

// OrthonormalBasis is a right-handed local frame of three orthogonal axes.
// W is always unit length. Frames built from a view and up vector keep U and
// V at the length the cross product gives them, so they are unit only when
// up is perpendicular to the view direction.
type OrthonormalBasis struct {
	U, V, W Vec3
}

// NewBasisFromVW builds a frame whose W axis points along w, with V as close
// to v as possible. When v is parallel to w the world Y axis is tried as the
// up vector, then the world X axis. U keeps the length of the cross product
// and is not renormalized.
func NewBasisFromVW(v, w Vec3) OrthonormalBasis {
	w = w.Normalize()
	u := w.Cross(v.Normalize())

	if u.Length() < degenerateLength {
		u = w.Cross(axisY)
	}
	if u.Length() < degenerateLength {
		u = w.Cross(axisX)
	}

	v = u.Cross(w)

	return OrthonormalBasis{U: u, V: v, W: w}
}

// NewBasisFromU builds a frame whose U axis points along u.
// Used to orient hemisphere samples around a surface normal.
func NewBasisFromU(u Vec3) OrthonormalBasis {
	u = u.Normalize()
	v := u.Cross(axisZ)

	if v.Length() < degenerateLength {
		v = u.Cross(axisY)
	}

	v = v.Normalize()
	w := v.Cross(u)

	return OrthonormalBasis{U: u, V: v, W: w}
}

// Eval maps local coordinates into world space
func (b OrthonormalBasis) Eval(localX, localY, localZ float64) Vec3 {
	return b.U.Multiply(localX).Add(b.V.Multiply(localY)).Add(b.W.Multiply(localZ))
}
