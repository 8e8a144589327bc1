package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBusFire(t *testing.T) {
	bus := NewEventBus()

	var order []int
	bus.Register(EVENT_CODE_RESIZED, func(ctx EventContext) {
		order = append(order, 1)
		ev, ok := ctx.Data.(*SystemEvent)
		require.True(t, ok)
		assert.Equal(t, uint32(640), ev.WindowWidth)
	})
	bus.Register(EVENT_CODE_RESIZED, func(ctx EventContext) {
		order = append(order, 2)
	})

	handled := bus.Fire(EventContext{
		Type: EVENT_CODE_RESIZED,
		Data: &SystemEvent{WindowWidth: 640, WindowHeight: 480},
	})
	assert.True(t, handled)
	assert.Equal(t, []int{1, 2}, order)

	assert.False(t, bus.Fire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}))
}

func TestEventBusShutdown(t *testing.T) {
	bus := NewEventBus()
	called := false
	bus.Register(EVENT_CODE_ASSETS_READY, func(EventContext) { called = true })

	require.NoError(t, bus.Shutdown())
	assert.False(t, bus.Fire(EventContext{Type: EVENT_CODE_ASSETS_READY}))
	assert.False(t, called)
}

func TestParseLogLevelEvents(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   DebugLevel,
		"":        InfoLevel,
		"INFO":    InfoLevel,
		"warning": WarnLevel,
		"error":   ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLogLevel("verbose")
	assert.Error(t, err)
}
