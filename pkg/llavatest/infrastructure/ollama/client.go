package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"kgeyst.com/llavatest/pkg/common"
	"kgeyst.com/llavatest/pkg/llavatest/domain"
)

// EndpointGenerate is the path of the single-shot generation API, relative to the configured base URL.
const EndpointGenerate = "/api/generate"

type generateRequest struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Stream bool     `json:"stream"`
	Images []string `json:"images,omitempty"`
}

type generateResponse struct {
	Response *string `json:"response"`
}

type client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates an inference client for an Ollama-compatible server. The HTTP client has no timeout of its own:
// a request lasts as long as the server needs (or until the transport gives up).
func NewClient(config *common.Config) domain.InferenceClient {
	return NewClientWithHTTPClient(config, &http.Client{})
}

func NewClientWithHTTPClient(config *common.Config, httpClient *http.Client) domain.InferenceClient {
	baseURL := config.GetStringOrDefault(domain.ConfigKeyInferenceURL, domain.DefaultInferenceURL)
	return &client{
		url:        strings.TrimRight(baseURL, "/") + EndpointGenerate,
		httpClient: httpClient,
	}
}

func (c *client) Generate(ctx context.Context, request *domain.Request) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  request.Model,
		Prompt: request.Prompt,
		Stream: request.Stream,
		Images: request.Images,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	res, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return "", &domain.TransportError{Err: err}
	}
	defer func() {
		_ = res.Body.Close()
	}()
	content, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &domain.TransportError{Err: err}
	}
	if res.StatusCode != http.StatusOK {
		return "", &domain.ServerError{StatusCode: res.StatusCode, Body: string(content)}
	}
	var parsed generateResponse
	err = json.Unmarshal(content, &parsed)
	if err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if parsed.Response == nil {
		return domain.NoResponsePlaceholder, nil
	}
	return *parsed.Response, nil
}
