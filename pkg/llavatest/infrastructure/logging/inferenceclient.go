package logging

import (
	"context"
	"time"

	"kgeyst.com/llavatest/pkg/common"
	"kgeyst.com/llavatest/pkg/llavatest/domain"
)

type inferenceClientDecorator struct {
	wrappedInferenceClient domain.InferenceClient
	logger                 common.Logger
}

func NewInferenceClientDecorator(wrappedInferenceClient domain.InferenceClient, logger common.Logger) domain.InferenceClient {
	return &inferenceClientDecorator{
		wrappedInferenceClient: wrappedInferenceClient,
		logger:                 logger,
	}
}

func (i *inferenceClientDecorator) Generate(ctx context.Context, request *domain.Request) (string, error) {
	i.logger.Logf("request %s: model=%s images=%d prompt=%q", request.ID, request.Model, len(request.Images), request.Prompt)
	t := time.Now()
	response, err := i.wrappedInferenceClient.Generate(ctx, request)
	took := time.Since(t).Milliseconds()
	if err != nil {
		i.logger.Logf("request %s: failed after %d ms: %s", request.ID, took, err)
		return "", err
	}
	i.logger.Logf("request %s: %d chars of response (took %d ms)", request.ID, len(response), took)
	return response, nil
}
