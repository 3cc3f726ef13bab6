package common

import "sync"

type Job func() error

// EventLoop runs jobs one at a time on a single goroutine. It is the only place where UI state may be mutated:
// background workers hand their results over with Schedule instead of touching the state themselves.
type EventLoop struct {
	jobsChannel chan Job
	stopChannel chan struct{}
	waitGroup   sync.WaitGroup
	logger      Logger
}

func NewEventLoop(logger Logger) *EventLoop {
	loop := &EventLoop{
		jobsChannel: make(chan Job, 128),
		stopChannel: make(chan struct{}),
		logger:      logger,
	}
	loop.waitGroup.Add(1)
	go loop.run()
	return loop
}

// Schedule queues the job to run on the loop "soon". Jobs run in the order they were scheduled.
func (e *EventLoop) Schedule(job Job) {
	e.jobsChannel <- job
}

// Invoke schedules the job and waits until it has run. Never call it from a job (it deadlocks).
func (e *EventLoop) Invoke(job Job) error {
	done := make(chan error, 1)
	e.Schedule(func() error {
		err := job()
		done <- err
		return err
	})
	return <-done
}

// Stop finishes the job which is currently running and exits the loop. Jobs still queued are dropped.
func (e *EventLoop) Stop() {
	close(e.stopChannel)
	e.waitGroup.Wait()
}

func (e *EventLoop) run() {
	defer e.waitGroup.Done()
	for {
		select {
		case job := <-e.jobsChannel:
			err := job()
			if err != nil {
				e.logger.Log("failed to process a job: " + err.Error())
			}
		case <-e.stopChannel:
			return
		}
	}
}
