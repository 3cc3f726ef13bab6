package domain

import (
	"context"

	"kgeyst.com/llavatest/pkg/common"
)

// InferenceClient performs one blocking, non-streaming generate call. On HTTP 200 it returns the "response" field
// (or NoResponsePlaceholder if the field is absent). Otherwise it returns a *ServerError, a *TransportError or a
// decoding error.
type InferenceClient interface {
	Generate(ctx context.Context, request *Request) (string, error)
}

// ImageLoader reads images and prepares them for sending and previewing. Errors are *ImageLoadError.
type ImageLoader interface {
	LoadFile(path string) (*SelectedImage, error)
	// LoadBytes is the same as LoadFile for content which was already fetched from `source` (for example, a URL).
	LoadBytes(source string, data []byte) (*SelectedImage, error)
}

// View is the visible part of the program: a window, a terminal, a chat. Only the event loop calls it.
type View interface {
	// ShowOutput replaces the whole output region with `text`.
	ShowOutput(text string)
	// AppendOutput adds a notice to the end of the output region.
	AppendOutput(text string)
	// ShowPreview shows the thumbnail of the image; nil means no image is selected.
	ShowPreview(image *SelectedImage)
	// ShowPreviewError replaces the preview with a short message.
	ShowPreviewError(message string)
	SetSubmitEnabled(enabled bool)
}

// Scheduler runs a job on the event loop soon. It is safe to call from any goroutine. See common.EventLoop.
type Scheduler interface {
	Schedule(job common.Job)
}
