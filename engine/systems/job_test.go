package systems

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJobSystemValidation(t *testing.T) {
	_, err := NewJobSystem(0, 8)
	assert.Equal(t, ErrNoWorkers, err)

	_, err = NewJobSystem(2, -1)
	assert.Equal(t, ErrNegativeChannelSize, err)
}

func TestJobSystemRunsEveryJob(t *testing.T) {
	js, err := NewJobSystem(4, 64)
	require.NoError(t, err)

	var completed atomic.Int32
	var mu sync.Mutex
	results := make(map[int]bool)

	for i := 0; i < 50; i++ {
		i := i
		require.NoError(t, js.Submit(JobTask{
			Name:    "square",
			OnStart: func() (interface{}, error) { return i * i, nil },
			OnComplete: func(result interface{}) {
				completed.Add(1)
				mu.Lock()
				results[result.(int)] = true
				mu.Unlock()
			},
		}))
	}
	js.Wait()

	assert.Equal(t, int32(50), completed.Load())
	assert.True(t, results[49*49])
	require.NoError(t, js.Shutdown())
}

func TestJobSystemReportsFailures(t *testing.T) {
	js, err := NewJobSystem(1, 4)
	require.NoError(t, err)
	defer js.Shutdown()

	boom := errors.New("boom")
	var got []error
	var mu sync.Mutex
	onFailure := func(err error) {
		mu.Lock()
		got = append(got, err)
		mu.Unlock()
	}

	require.NoError(t, js.Submit(JobTask{
		Name:      "error",
		OnStart:   func() (interface{}, error) { return nil, boom },
		OnFailure: onFailure,
		OnComplete: func(interface{}) {
			t.Error("completion must not run after a failure")
		},
	}))
	require.NoError(t, js.Submit(JobTask{
		Name:      "panic",
		OnStart:   func() (interface{}, error) { panic("bad data") },
		OnFailure: onFailure,
	}))
	js.Wait()

	require.Len(t, got, 2)
	assert.Contains(t, got, boom)
}

func TestJobSystemClosed(t *testing.T) {
	js, err := NewJobSystem(1, 1)
	require.NoError(t, err)
	require.NoError(t, js.Shutdown())
	require.NoError(t, js.Shutdown())

	err = js.Submit(JobTask{Name: "late", OnStart: func() (interface{}, error) { return nil, nil }})
	assert.Equal(t, ErrJobSystemClosed, err)
}

func TestJobSystemRejectsEmptyJob(t *testing.T) {
	js, err := NewJobSystem(1, 1)
	require.NoError(t, err)
	defer js.Shutdown()

	assert.Error(t, js.Submit(JobTask{Name: "empty"}))
}
