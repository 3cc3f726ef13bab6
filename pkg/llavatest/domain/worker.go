package domain

import (
	"context"
	"fmt"

	"kgeyst.com/llavatest/pkg/common"
)

// requestWorker performs one inference call away from the event loop and hands the outcome back to it.
type requestWorker struct {
	client     InferenceClient
	scheduler  Scheduler
	logger     common.Logger
	onResponse func(request *Request, text string)
	onFinished func(request *Request)
}

// run blocks until the server answers or the transport fails. Every kind of failure turns into response text, and
// both callbacks are scheduled exactly once whatever happens.
func (r *requestWorker) run(ctx context.Context, request *Request) {
	text := r.infer(ctx, request)
	r.scheduler.Schedule(func() error {
		r.onResponse(request, text)
		return nil
	})
	r.scheduler.Schedule(func() error {
		r.onFinished(request)
		return nil
	})
}

func (r *requestWorker) infer(ctx context.Context, request *Request) (text string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			r.logger.Logf("request %s panicked: %v", request.ID, recovered)
			text = describeRequestError(fmt.Errorf("%v", recovered))
		}
	}()
	response, err := r.client.Generate(ctx, request)
	if err != nil {
		r.logger.Logf("request %s failed: %s", request.ID, err)
		return describeRequestError(err)
	}
	return response
}
