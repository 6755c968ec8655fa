// Package shadow runs shadow invocations off the caller's goroutine on a
// bounded worker pool, absorbing every failure at the pool boundary.
//
// Tasks are fire and forget: no result is retained, joined, or retried, and
// nothing that happens to a task can reach the goroutine that submitted it.
// Failures surface only through the configured Sink. No ordering is
// guaranteed between tasks, including multiple tasks for the same key.
package shadow

import (
	"fmt"
	"runtime"
	"sync"
)

// LabelSubmit is the failure-counter label for shadow submission and
// execution failures.
const LabelSubmit = "shadowPool_submit"

// Task is a single shadow invocation. Ownership transfers to the Executor on
// Submit; the task is discarded after it runs.
type Task struct {
	// Key is the operation key, carried for failure reporting only.
	Key string

	// Run invokes the origin-side command. Its error, if any, is recorded
	// and dropped.
	Run func() error
}

// ExecutorConfig sizes an Executor. The zero value is usable: Workers
// defaults to runtime.NumCPU and QueueSize to 64 slots per worker.
type ExecutorConfig struct {
	Workers   int
	QueueSize int
	Sink      Sink
}

// Executor is a fixed-size worker pool with an explicit lifecycle. One
// Executor is meant to be shared by every DualWriter in the process.
//
//	ex := shadow.NewExecutor(shadow.ExecutorConfig{Sink: sink})
//	ex.Start()
//	defer ex.Stop()
type Executor struct {
	workers int
	tasks   chan Task
	sink    Sink

	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
	stopped bool
}

// NewExecutor builds an Executor from conf. Call Start before submitting.
func NewExecutor(conf ExecutorConfig) *Executor {
	workers := conf.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	queueSize := conf.QueueSize
	if queueSize <= 0 {
		queueSize = workers * 64
	}
	sink := conf.Sink
	if sink == nil {
		sink = NopSink{}
	}

	return &Executor{
		workers: workers,
		tasks:   make(chan Task, queueSize),
		sink:    sink,
	}
}

// Start launches the workers. Starting twice is a no-op.
func (e *Executor) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return
	}
	e.started = true

	for i := 0; i < e.workers; i++ {
		e.wg.Add(1)
		go e.worker()
	}
}

// Submit enqueues a task. It never blocks beyond the cost of the enqueue and
// never reports failure to the caller: a saturated queue, or a Submit before
// Start or after Stop, is recorded to the sink and the task is dropped.
func (e *Executor) Submit(t Task) {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		e.sink.RecordFailure(LabelSubmit, fmt.Sprintf("executor not running, dropped task for key %q", t.Key))
		return
	}

	// Non-blocking send while holding the lock: Stop closes the channel only
	// after flipping stopped under the same lock, so the send can never race
	// a close.
	select {
	case e.tasks <- t:
		e.mu.Unlock()
	default:
		e.mu.Unlock()
		e.sink.RecordFailure(LabelSubmit, fmt.Sprintf("queue saturated, dropped task for key %q", t.Key))
	}
}

// Stop closes intake, drains already-queued tasks, and waits for the workers
// to exit. Stopping twice, or before Start, is a no-op.
func (e *Executor) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.tasks)
	e.mu.Unlock()

	e.wg.Wait()
}

func (e *Executor) worker() {
	defer e.wg.Done()
	for t := range e.tasks {
		e.run(t)
	}
}

// run is the absorption boundary: errors and panics end here, as sink events.
func (e *Executor) run(t Task) {
	defer func() {
		if r := recover(); r != nil {
			e.sink.RecordFailure(LabelSubmit, fmt.Sprintf("shadow task for key %q panicked: %v", t.Key, r))
		}
	}()

	if err := t.Run(); err != nil {
		e.sink.RecordFailure(LabelSubmit, err.Error())
	}
}
