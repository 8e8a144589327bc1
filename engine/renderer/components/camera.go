package components

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/buddha/engine/config"
)

const twoPi = 6.2831852

/**
 * @brief A camera locked on a circular orbit around the origin. The
 * orbit angle advances with wall-clock time; the height bobs with a
 * phase supplied by the caller.
 */
type OrbitCamera struct {
	settings config.CameraSection
	/** @brief Orbit angle in degrees, always in [0, 360). */
	yaw float64
	/** @brief Timestamp of the previous Animate call in ms. Zero until the first call. */
	lastTime int64

	eye        mgl32.Vec3
	target     mgl32.Vec3
	view       mgl32.Mat4
	projection mgl32.Mat4
}

func NewOrbitCamera(settings config.CameraSection) *OrbitCamera {
	return &OrbitCamera{
		settings:   settings,
		view:       mgl32.Ident4(),
		projection: mgl32.Ident4(),
	}
}

// Apply swaps the tunables without resetting the orbit.
func (c *OrbitCamera) Apply(settings config.CameraSection) {
	c.settings = settings
}

// Animate advances the yaw by the time elapsed since the last call. The first
// call only records the baseline and returns false.
func (c *OrbitCamera) Animate(nowMillis int64) bool {
	defer func() { c.lastTime = nowMillis }()
	if c.lastTime == 0 {
		return false
	}
	elapsed := float64(nowMillis - c.lastTime)
	c.yaw = wrapDegrees(c.yaw + elapsed/c.settings.YawCoeff)
	return true
}

// PositionCamera rebuilds the view matrix. phase in [0, 1] moves the eye
// through one full vertical bob.
func (c *OrbitCamera) PositionCamera(phase float64) {
	z := math.Sin(phase*twoPi)*c.settings.EyeBob + c.settings.EyeHeight
	sina := math.Sin(c.yaw / 360.0 * twoPi)
	cosa := math.Cos(c.yaw / 360.0 * twoPi)
	x := sina * c.settings.OrbitRadius
	y := cosa * c.settings.OrbitRadius
	lookAtZ := c.settings.TargetHeight + c.settings.TargetSway*sina

	c.eye = mgl32.Vec3{float32(x), float32(y), float32(z)}
	c.target = mgl32.Vec3{0, 0, float32(lookAtZ)}
	c.view = mgl32.LookAtV(c.eye, c.target, mgl32.Vec3{0, 0, 1})
}

// SetCameraFOV rebuilds the projection for a width x height viewport. Portrait
// viewports get the wider field of view.
func (c *OrbitCamera) SetCameraFOV(multiplier float64, width, height uint32) {
	ratio := 1.0
	if height > 0 {
		ratio = float64(width) / float64(height)
	}
	fov := c.settings.FOVPortrait
	if width >= height {
		fov = c.settings.FOVLandscape
	}
	c.projection = mgl32.Perspective(
		mgl32.DegToRad(float32(fov*multiplier)),
		float32(ratio),
		float32(c.settings.Near),
		float32(c.settings.Far),
	)
}

func (c *OrbitCamera) FOV(width, height uint32) float64 {
	if width >= height {
		return c.settings.FOVLandscape
	}
	return c.settings.FOVPortrait
}

func (c *OrbitCamera) Yaw() float64 {
	return c.yaw
}

func (c *OrbitCamera) Eye() mgl32.Vec3 {
	return c.eye
}

func (c *OrbitCamera) Target() mgl32.Vec3 {
	return c.target
}

func (c *OrbitCamera) View() mgl32.Mat4 {
	return c.view
}

func (c *OrbitCamera) Projection() mgl32.Mat4 {
	return c.projection
}

func wrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360.0)
	if deg < 0 {
		deg += 360.0
	}
	if deg >= 360.0 {
		deg = 0
	}
	return deg
}
