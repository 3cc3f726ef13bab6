package domain

import "github.com/google/uuid"

// Request is a snapshot of the session taken at the moment of submission. Nobody modifies it after creation, so
// it can be handed over to a worker goroutine as is.
type Request struct {
	// ID identifies the request in logs.
	ID string
	// Sequence grows by one with every submission of the same controller. See Controller.handleResponse.
	Sequence uint64
	Model    string
	Prompt   string
	// Images holds zero or one base64-encoded images.
	Images []string
	// Stream is always false: the whole response arrives at once.
	Stream bool
}

func newRequest(sequence uint64, model string, state *SessionState) *Request {
	request := &Request{
		ID:       uuid.NewString(),
		Sequence: sequence,
		Model:    model,
		Prompt:   state.PromptText,
	}
	if state.SelectedImage != nil {
		request.Images = []string{state.SelectedImage.Base64}
	}
	return request
}
