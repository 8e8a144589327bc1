package systems

import (
	"github.com/pkg/errors"

	"github.com/spaghettifunk/buddha/engine/core"
	"github.com/spaghettifunk/buddha/engine/renderer"
)

type SystemManager struct {
	Events   *core.EventBus
	Jobs     *JobSystem
	Renderer *renderer.Renderer
}

// NewSystemManager wires the shared systems. workers sizes the job pool that
// decodes assets.
func NewSystemManager(r *renderer.Renderer, events *core.EventBus, workers int) (*SystemManager, error) {
	if r == nil {
		return nil, errors.New("system manager needs a renderer")
	}
	js, err := NewJobSystem(workers, workers*4)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		Events:   events,
		Jobs:     js,
		Renderer: r,
	}, nil
}

// Shutdown stops the job system first so no decode finishes after the
// renderer is gone.
func (sm *SystemManager) Shutdown() error {
	if err := sm.Jobs.Shutdown(); err != nil {
		return err
	}
	if err := sm.Events.Shutdown(); err != nil {
		return err
	}
	return nil
}
