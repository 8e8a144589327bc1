package renderer

import "github.com/go-gl/mathgl/mgl32"

// Transform places an object in the world. Rotation is in degrees.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Vec3
	Scale       mgl32.Vec3
}

func Identity() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

func Scaled(x, y, z float32) Transform {
	return Transform{Scale: mgl32.Vec3{x, y, z}}
}

// Model returns T * S * Rx * Ry * Rz.
func (t Transform) Model() mgl32.Mat4 {
	m := mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z())
	m = m.Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
	m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(t.Rotation.X())))
	m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(t.Rotation.Y())))
	m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(t.Rotation.Z())))
	return m
}

// MVP returns projection * view * model.
func MVP(projection, view mgl32.Mat4, t Transform) mgl32.Mat4 {
	return projection.Mul4(view).Mul4(t.Model())
}
