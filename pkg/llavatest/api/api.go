package api

import (
	"context"

	"github.com/mvdan/xurls"

	"kgeyst.com/llavatest/pkg/common"
	"kgeyst.com/llavatest/pkg/llavatest/domain"
	"kgeyst.com/llavatest/pkg/llavatest/infrastructure/imaging"
	"kgeyst.com/llavatest/pkg/llavatest/infrastructure/logging"
	"kgeyst.com/llavatest/pkg/llavatest/infrastructure/ollama"
)

// See domain/config.go
const (
	ConfigKeyInferenceURL = domain.ConfigKeyInferenceURL
	ConfigKeyModel        = domain.ConfigKeyModel
	ConfigKeyLogPath      = domain.ConfigKeyLogPath
)

// App is the entrypoint to the program. It shouldn't contain any logic of its own; it glues all the components
// together and moves every call onto the event loop, so frontends (a terminal, an IRC bot) may call it from any
// goroutine. Calls return once the event loop has processed them; the inference itself runs in the background and
// its result shows up in the view later.
type App interface {
	// SelectImage attaches an image to subsequent prompts. `source` is a file path or an http(s) URL, optionally
	// quoted. URLs are downloaded on the calling goroutine, never on the event loop.
	SelectImage(source string)
	// ClearImage detaches the selected image.
	ClearImage()
	// Submit sends `prompt` together with the selected image (if any) to the inference server.
	Submit(prompt string)
	// Wait blocks until all submitted requests have finished and their results have been shown.
	Wait()
	// Stop stops the event loop. Requests still in flight are abandoned.
	Stop()
}

type app struct {
	loop                 *common.EventLoop
	controller           *domain.Controller
	logger               common.Logger
	maxImageDownloadSize int64
}

func NewApp(config *common.Config, view domain.View) App {
	logger := common.NewFileLogger(config.GetStringOrDefault(ConfigKeyLogPath, domain.DefaultLogPath))
	loop := common.NewEventLoop(logger)
	inferenceClient := logging.NewInferenceClientDecorator(ollama.NewClient(config), logger)
	controller := domain.NewController(
		context.Background(),
		inferenceClient,
		imaging.NewImageLoader(config),
		view,
		loop,
		config,
		logger,
	)
	return &app{
		loop:                 loop,
		controller:           controller,
		logger:               logger,
		maxImageDownloadSize: int64(config.GetIntOrDefault(domain.ConfigKeyMaxImageDownloadSize, domain.DefaultMaxImageDownloadSize)),
	}
}

func (a *app) SelectImage(source string) {
	source = common.Unquote(source)
	if url := xurls.Strict.FindString(source); url != "" && url == source {
		a.selectImageFromURL(url)
		return
	}
	a.invoke(func(controller *domain.Controller) {
		controller.SelectImage(source)
	})
}

func (a *app) selectImageFromURL(url string) {
	a.logger.Logf("downloading image %s", url)
	data, err := common.ReadAllFromURL(url, a.maxImageDownloadSize)
	a.invoke(func(controller *domain.Controller) {
		if err != nil {
			controller.ReportImageError(url, err)
			return
		}
		controller.SelectImageData(url, data)
	})
}

func (a *app) ClearImage() {
	a.invoke(func(controller *domain.Controller) {
		controller.ClearImage()
	})
}

func (a *app) Submit(prompt string) {
	a.invoke(func(controller *domain.Controller) {
		controller.SetPrompt(prompt)
		controller.Submit()
	})
}

func (a *app) Wait() {
	a.controller.Wait()
	a.invoke(func(*domain.Controller) {})
}

func (a *app) Stop() {
	a.loop.Stop()
}

func (a *app) invoke(action func(controller *domain.Controller)) {
	_ = a.loop.Invoke(func() error {
		action(a.controller)
		return nil
	})
}
