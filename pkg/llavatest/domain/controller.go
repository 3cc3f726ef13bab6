package domain

import (
	"context"
	"fmt"
	"sync"

	"kgeyst.com/llavatest/pkg/common"
)

// Controller owns the session state and mediates between the user, the request workers and the view.
// All methods except Wait must be called on the event loop (see Scheduler).
//
// Several requests may be in flight at once: submitting never waits for, or cancels, a previous request. A response
// which arrives after a newer request has been submitted is dropped, so the output always belongs to the latest
// submission. The submit control is disabled while at least one request is in flight.
type Controller struct {
	context       context.Context
	state         SessionState
	client        InferenceClient
	imageLoader   ImageLoader
	view          View
	scheduler     Scheduler
	logger        common.Logger
	model         string
	lastSequence  uint64
	inFlightCount int
	workers       sync.WaitGroup
}

func NewController(
	ctx context.Context,
	client InferenceClient,
	imageLoader ImageLoader,
	view View,
	scheduler Scheduler,
	config *common.Config,
	logger common.Logger,
) *Controller {
	return &Controller{
		context:     ctx,
		client:      client,
		imageLoader: imageLoader,
		view:        view,
		scheduler:   scheduler,
		logger:      logger,
		model:       config.GetStringOrDefault(ConfigKeyModel, DefaultModel),
	}
}

// State returns a copy of the session state.
func (c *Controller) State() SessionState {
	return c.state
}

// SetPrompt remembers the text of the prompt input.
func (c *Controller) SetPrompt(text string) {
	c.state.PromptText = text
}

// SelectImage attaches the image file at `path` to subsequent prompts. If the file can't be read or decoded, the
// previously selected image is detached too, and the error is reported in the output region.
func (c *Controller) SelectImage(path string) {
	c.applyImage(c.imageLoader.LoadFile(path))
}

// SelectImageData is the same as SelectImage for content which was already fetched from `source`.
func (c *Controller) SelectImageData(source string, data []byte) {
	c.applyImage(c.imageLoader.LoadBytes(source, data))
}

// ReportImageError detaches the selected image and reports `err` the same way a failed SelectImage does.
// Used when the image couldn't even be fetched.
func (c *Controller) ReportImageError(source string, err error) {
	c.applyImage(nil, &ImageLoadError{Source: source, Err: err})
}

// ClearImage detaches the selected image, if any.
func (c *Controller) ClearImage() {
	c.state.SelectedImage = nil
	c.view.ShowPreview(nil)
}

func (c *Controller) applyImage(selectedImage *SelectedImage, err error) {
	if err != nil {
		c.state.SelectedImage = nil
		c.logger.Logf("failed to load image: %s", err)
		c.view.AppendOutput(fmt.Sprintf(imageLoadErrorFormat, err))
		c.view.ShowPreviewError(imageLoadPreviewMessage)
		return
	}
	c.state.SelectedImage = selectedImage
	c.logger.Logf("selected image %s (%s, %dx%d)", selectedImage.Source, selectedImage.Format, selectedImage.Width, selectedImage.Height)
	c.view.ShowPreview(selectedImage)
}

// Submit sends the current prompt (and the selected image, if any) to the inference server in the background and
// returns immediately. An empty prompt is reported in the output region and nothing is sent.
func (c *Controller) Submit() {
	if c.state.PromptText == "" {
		c.view.AppendOutput(emptyPromptMessage)
		return
	}
	c.lastSequence++
	request := newRequest(c.lastSequence, c.model, &c.state)
	c.inFlightCount++
	c.view.SetSubmitEnabled(false)
	worker := &requestWorker{
		client:     c.client,
		scheduler:  c.scheduler,
		logger:     c.logger,
		onResponse: c.handleResponse,
		onFinished: c.handleFinished,
	}
	c.logger.Logf("submitting request %s (#%d)", request.ID, request.Sequence)
	c.workers.Add(1)
	go func() {
		defer c.workers.Done()
		worker.run(c.context, request)
	}()
}

// RenderResponse replaces the output region with `text`.
func (c *Controller) RenderResponse(text string) {
	c.state.LastResponse = text
	c.view.ShowOutput(text)
}

// Wait blocks until every request worker has handed its results over to the scheduler. Must not be called on the
// event loop.
func (c *Controller) Wait() {
	c.workers.Wait()
}

func (c *Controller) handleResponse(request *Request, text string) {
	if request.Sequence < c.lastSequence {
		c.logger.Logf("dropping the response to request %s (#%d): request #%d was submitted after it", request.ID, request.Sequence, c.lastSequence)
		return
	}
	c.RenderResponse(text)
}

func (c *Controller) handleFinished(request *Request) {
	c.inFlightCount--
	if c.inFlightCount == 0 {
		c.view.SetSubmitEnabled(true)
	}
}
