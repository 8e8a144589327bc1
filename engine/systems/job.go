package systems

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/pkg/errors"

	"github.com/spaghettifunk/buddha/engine/core"
)

/**
 * @brief Describes a job to be run on one of the worker goroutines.
 * OnStart runs on the worker. Exactly one of OnComplete or OnFailure runs
 * afterwards, on the same worker.
 */
type JobTask struct {
	/** @brief Used in log lines only. */
	Name string
	/** @brief The work itself. A panic is reported as a failure. */
	OnStart func() (interface{}, error)
	/** @brief Receives the value returned by OnStart. Optional. */
	OnComplete func(result interface{})
	/** @brief Receives the error returned by OnStart. Optional. */
	OnFailure func(err error)
}

type JobSystem struct {
	numWorkers int
	pool       worker.DynamicWorkerPool
	wg         sync.WaitGroup
	nextID     atomic.Int64
	closed     atomic.Bool
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")
var ErrJobSystemClosed = fmt.Errorf("job system is shut down")

const workerIdleTimeout = 1 * time.Second

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		pool:       worker.NewDynamicWorkerPool(numWorkers, channelSize, workerIdleTimeout),
	}
	core.LogDebug("job system started with %d workers", numWorkers)
	return js, nil
}

/**
 * @brief Submits the provided job to be queued for execution. Blocks while
 * the queue is full.
 * @param jt The description of the job to be executed.
 */
func (js *JobSystem) Submit(jt JobTask) error {
	if js.closed.Load() {
		return ErrJobSystemClosed
	}
	if jt.OnStart == nil {
		return errors.Errorf("job %q has nothing to run", jt.Name)
	}

	js.wg.Add(1)
	js.pool.SubmitTask(worker.Task{
		ID:      int(js.nextID.Add(1)),
		Payload: jt.Name,
		Do: func() (any, error) {
			defer js.wg.Done()
			js.run(jt)
			// results travel through the job callbacks
			return nil, nil
		},
	})
	return nil
}

func (js *JobSystem) run(jt JobTask) {
	result, err := safeStart(jt)
	if err != nil {
		core.LogError("job %s failed: %s", jt.Name, err)
		if jt.OnFailure != nil {
			jt.OnFailure(err)
		}
		return
	}
	if jt.OnComplete != nil {
		jt.OnComplete(result)
	}
}

func safeStart(jt JobTask) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("job %s panicked: %v", jt.Name, r)
		}
	}()
	return jt.OnStart()
}

// Wait blocks until every submitted job finished, callbacks included.
func (js *JobSystem) Wait() {
	js.wg.Wait()
}

func (js *JobSystem) NumWorkers() int {
	return js.numWorkers
}

/**
 * @brief Shuts the job system down. Jobs already submitted are finished first.
 */
func (js *JobSystem) Shutdown() error {
	if js.closed.Swap(true) {
		return nil
	}
	js.wg.Wait()
	js.pool.Stop()
	return nil
}
