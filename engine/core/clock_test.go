package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func TestClockElapsed(t *testing.T) {
	ft := &fakeTime{t: time.UnixMilli(1_000)}
	c := NewClockWithSource(ft.now)

	c.Update()
	assert.Zero(t, c.Elapsed(), "a clock that was never started does not advance")

	c.Start()
	ft.t = ft.t.Add(1500 * time.Millisecond)
	c.Update()
	assert.InDelta(t, 1.5, c.Elapsed(), 1e-9)

	c.Stop()
	ft.t = ft.t.Add(time.Second)
	c.Update()
	assert.InDelta(t, 1.5, c.Elapsed(), 1e-9, "stopping keeps the last elapsed value")

	c.Start()
	assert.Zero(t, c.Elapsed())
}

func TestClockNowMillis(t *testing.T) {
	ft := &fakeTime{t: time.UnixMilli(21_000_123)}
	c := NewClockWithSource(ft.now)
	assert.Equal(t, int64(21_000_123), c.NowMillis())
}

func TestMetricsAverage(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < int(AVG_COUNT); i++ {
		m.Update(0.016)
	}
	assert.InDelta(t, 16.0, m.FrameTime(), 1e-9)

	for i := 0; i < 70; i++ {
		m.Update(0.016)
	}
	fps, _ := m.Frame()
	assert.Greater(t, fps, 0.0)
}
