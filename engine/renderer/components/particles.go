package components

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/rand"

	"github.com/spaghettifunk/buddha/engine/config"
	"github.com/spaghettifunk/buddha/engine/renderer"
)

type DustParticle struct {
	X, Y, Z float32
}

// RandomSource yields uniform values in [0, 1).
type RandomSource interface {
	Float64() float64
}

// NewRandomSource seeds a generator for FillParticles. Seed 0 picks one from
// the current time.
func NewRandomSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

// DustField is a handful of point-sprite patches scattered once through the
// scene, spinning and flickering over time.
type DustField struct {
	settings  config.DustSection
	particles []DustParticle
	// both in [0, 1)
	rotation  float64
	flicker   float64
	thickness float32
}

func NewDustField(settings config.DustSection) *DustField {
	return &DustField{
		settings: settings,
	}
}

// Apply swaps colors, periods and sizes. Positions are kept.
func (d *DustField) Apply(settings config.DustSection) {
	d.settings = settings
}

// FillParticles samples Count positions uniformly in the scene box, offset on Z.
func (d *DustField) FillParticles(rng RandomSource) {
	size := d.settings.SceneSize
	d.particles = make([]DustParticle, d.settings.Count)
	for i := range d.particles {
		d.particles[i] = DustParticle{
			X: float32((0.5 - rng.Float64()) * size[0]),
			Y: float32((0.5 - rng.Float64()) * size[1]),
			Z: float32((0.5-rng.Float64())*size[2] + d.settings.OffsetZ),
		}
	}
}

func (d *DustField) Particles() []DustParticle {
	return d.particles
}

// Advance derives both timers from the absolute time in ms.
func (d *DustField) Advance(nowMillis int64) {
	d.rotation = phase(nowMillis, d.settings.RotationPeriodMS)
	d.flicker = phase(nowMillis, d.settings.FlickerPeriodMS)
}

func (d *DustField) Rotation() float64 {
	return d.rotation
}

func (d *DustField) Flicker() float64 {
	return d.flicker
}

// Resize recomputes the sprite thickness for a viewport.
func (d *DustField) Resize(width, height uint32) {
	d.thickness = float32(float64(min(width, height)) * d.settings.SpriteSize)
}

func (d *DustField) Thickness() float32 {
	return d.thickness
}

// Transform places particle i. The first half spins (a, -a, a), the rest
// (-a, a, -a), with a the rotation timer in degrees.
func (d *DustField) Transform(i int) renderer.Transform {
	p := d.particles[i]
	a := float32(d.rotation * 360.0)
	b := -a
	rot := mgl32.Vec3{b, a, b}
	if 2*i < len(d.particles) {
		rot = mgl32.Vec3{a, b, a}
	}
	s := float32(d.settings.Scale)
	return renderer.Transform{
		Translation: mgl32.Vec3{p.X, p.Y, p.Z},
		Rotation:    rot,
		Scale:       mgl32.Vec3{s, s, s},
	}
}

// FlickerColors returns the color of the first group and of the rest. The two
// pulse a quarter period apart.
func (d *DustField) FlickerColors() (mgl32.Vec4, mgl32.Vec4) {
	cosa := 0.5 + 0.5*math.Cos(d.flicker*math.Pi*2)
	sina := 0.5 + 0.5*math.Sin(d.flicker*math.Pi*2)
	return d.tint(cosa), d.tint(sina)
}

func (d *DustField) tint(k float64) mgl32.Vec4 {
	c := d.settings.Color
	return mgl32.Vec4{float32(c[0] * k), float32(c[1] * k), float32(c[2] * k), float32(c[3])}
}

// ColorSwitchIndex is the particle after whose draw the second color applies,
// or -1 when the count is odd and the halves never meet on an index.
func (d *DustField) ColorSwitchIndex() int {
	n := len(d.particles)
	if n%2 != 0 {
		return -1
	}
	return n / 2
}

func phase(now, period int64) float64 {
	if period <= 0 {
		return 0
	}
	m := now % period
	if m < 0 {
		m += period
	}
	return float64(m) / float64(period)
}
