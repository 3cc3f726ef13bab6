package domain

import (
	"errors"
	"fmt"
)

// NoResponsePlaceholder is shown when the server answered 200 but the body has no "response" field.
const NoResponsePlaceholder = "No response"

const (
	emptyPromptMessage      = "Please enter a prompt"
	imageLoadErrorFormat    = "Error loading image: %s"
	imageLoadPreviewMessage = "Error loading image"
	requestErrorFormat      = "Error: %s"
)

var ErrUnsupportedImageFormat = errors.New("unsupported image format")

// ServerError is returned when the inference server answers with a status other than 200.
type ServerError struct {
	StatusCode int
	Body       string
}

func (s *ServerError) Error() string {
	return fmt.Sprintf("%d - %s", s.StatusCode, s.Body)
}

// TransportError is returned when no HTTP response was received at all: connection refused, DNS failure, timeout
// and the like.
type TransportError struct {
	Err error
}

func (t *TransportError) Error() string {
	return t.Err.Error()
}

func (t *TransportError) Unwrap() error {
	return t.Err
}

// ImageLoadError is returned when an image file (or URL) cannot be read or decoded.
type ImageLoadError struct {
	Source string
	Err    error
}

func (i *ImageLoadError) Error() string {
	return i.Err.Error()
}

func (i *ImageLoadError) Unwrap() error {
	return i.Err
}

// describeRequestError converts any failure of a request into the text shown in place of the response.
func describeRequestError(err error) string {
	return fmt.Sprintf(requestErrorFormat, err.Error())
}
