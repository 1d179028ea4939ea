package systems

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/spaghettifunk/stratum/engine/core"
)

// Job is a unit of work executed on one of the worker goroutines.
type Job struct {
	ID uuid.UUID
	// Name is used in logs only.
	Name string
	// Run is required.
	Run func() error
	// OnFailure is called on the worker goroutine when Run returns an error. Optional.
	OnFailure func(err error)
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan Job
	wg         sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")
var ErrJobSystemClosed = errors.New("job system is shut down")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan Job, channelSize),
	}

	js.start()
	core.LogInfo("Job system started with %d workers.", numWorkers)

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				if err := job.Run(); err != nil {
					core.LogError("job %s (%s) failed: %s", job.Name, job.ID, err)
					if job.OnFailure != nil {
						job.OnFailure(err)
					}
				}
			}
		}()
	}
}

// Shutdown stops accepting jobs and waits for the queued ones to finish.
func (js *JobSystem) Shutdown() error {
	js.mu.Lock()
	if js.closed {
		js.mu.Unlock()
		return nil
	}
	js.closed = true
	close(js.jobQueue)
	js.mu.Unlock()

	js.wg.Wait()
	core.LogInfo("Job system shut down.")
	return nil
}

func (js *JobSystem) Workers() int {
	return js.numWorkers
}

// Submit queues the job, blocking while the job channel is full. A job
// without an ID gets a fresh one, which is returned.
func (js *JobSystem) Submit(job Job) (uuid.UUID, error) {
	if job.Run == nil {
		return uuid.Nil, fmt.Errorf("job %q has no Run function", job.Name)
	}
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}

	js.mu.RLock()
	defer js.mu.RUnlock()
	if js.closed {
		return uuid.Nil, ErrJobSystemClosed
	}
	js.jobQueue <- job
	return job.ID, nil
}
