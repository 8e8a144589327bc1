package components

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/buddha/engine/config"
)

type fixedSource struct {
	values []float64
	i      int
}

func (f *fixedSource) Float64() float64 {
	v := f.values[f.i%len(f.values)]
	f.i++
	return v
}

func newDust() *DustField {
	return NewDustField(config.Default().Dust)
}

func TestFillParticlesBounds(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		d := newDust()
		d.FillParticles(NewRandomSource(seed))
		require.Len(t, d.Particles(), 8)
		for _, p := range d.Particles() {
			require.LessOrEqual(t, abs32(p.X), float32(175))
			require.LessOrEqual(t, abs32(p.Y), float32(175))
			require.GreaterOrEqual(t, p.Z, float32(100))
			require.LessOrEqual(t, p.Z, float32(300))
		}
	}
}

func TestFillParticlesFormula(t *testing.T) {
	d := newDust()
	d.FillParticles(&fixedSource{values: []float64{0, 0.5, 0.999999}})

	p := d.Particles()[0]
	assert.InDelta(t, 175.0, float64(p.X), 1e-4)
	assert.InDelta(t, 0.0, float64(p.Y), 1e-4)
	assert.InDelta(t, 100.0, float64(p.Z), 1e-3)
}

func TestFillParticlesSeedIsDeterministic(t *testing.T) {
	a, b := newDust(), newDust()
	a.FillParticles(NewRandomSource(7))
	b.FillParticles(NewRandomSource(7))
	assert.Equal(t, a.Particles(), b.Particles())
}

func TestAdvanceTimersInRange(t *testing.T) {
	d := newDust()
	for _, now := range []int64{0, 1, 9_999, 10_000, 20_999_999, 21_000_000, 1_700_000_000_000} {
		d.Advance(now)
		require.GreaterOrEqual(t, d.Rotation(), 0.0)
		require.Less(t, d.Rotation(), 1.0)
		require.GreaterOrEqual(t, d.Flicker(), 0.0)
		require.Less(t, d.Flicker(), 1.0)
	}

	d.Advance(10_500_000 + 2_500)
	assert.InDelta(t, 0.5, d.Rotation(), 1e-3)
	assert.InDelta(t, 0.25, d.Flicker(), 1e-9)
}

func TestResizeThickness(t *testing.T) {
	d := newDust()
	d.Resize(1280, 720)
	assert.InDelta(t, 129.6, float64(d.Thickness()), 1e-3)
	d.Resize(300, 1000)
	assert.InDelta(t, 54.0, float64(d.Thickness()), 1e-3)
}

func TestTransformRotationGroups(t *testing.T) {
	d := newDust()
	d.FillParticles(NewRandomSource(3))
	d.Advance(5_250_000) // rotation 0.25

	first := d.Transform(0)
	assert.Equal(t, mgl32.Vec3{90, -90, 90}, first.Rotation)
	assert.Equal(t, mgl32.Vec3{0.75, 0.75, 0.75}, first.Scale)
	p := d.Particles()[0]
	assert.Equal(t, mgl32.Vec3{p.X, p.Y, p.Z}, first.Translation)

	assert.Equal(t, mgl32.Vec3{90, -90, 90}, d.Transform(3).Rotation)
	assert.Equal(t, mgl32.Vec3{-90, 90, -90}, d.Transform(4).Rotation)
	assert.Equal(t, mgl32.Vec3{-90, 90, -90}, d.Transform(7).Rotation)
}

func TestFlickerColors(t *testing.T) {
	d := newDust()
	d.Advance(0)
	first, second := d.FlickerColors()
	assert.InDelta(t, 20.0/256.0, float64(first.X()), 1e-6)
	assert.InDelta(t, 9.0/256.0, float64(second.Y()), 1e-6)
	assert.Equal(t, float32(1), first.W())
	assert.Equal(t, float32(1), second.W())
}

func TestColorSwitchIndex(t *testing.T) {
	d := newDust()
	d.FillParticles(NewRandomSource(1))
	assert.Equal(t, 4, d.ColorSwitchIndex())

	settings := config.Default().Dust
	settings.Count = 7
	odd := NewDustField(settings)
	odd.FillParticles(NewRandomSource(1))
	assert.Equal(t, -1, odd.ColorSwitchIndex())
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, odd.Transform(3).Rotation)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
