package console

import (
	"fmt"
	"io"
	"strings"

	"kgeyst.com/llavatest/pkg/llavatest/domain"
)

const (
	// PromptReady is shown while the submit control is enabled.
	PromptReady = "> "
	// PromptBusy is shown while a request is in flight.
	PromptBusy = "… "

	noImageSelectedMessage = "No image selected"
	previewColumns         = 32
	outputRulerWidth       = 60
)

// PromptSetter is the part of a readline instance which the view needs.
type PromptSetter interface {
	SetPrompt(prompt string)
	Refresh()
}

type view struct {
	writer       io.Writer
	promptSetter PromptSetter
	colorPreview bool
}

// NewView renders the program in a terminal. `writer` should be the readline's stdout so that the input line is
// redrawn under the output. If `colorPreview` is false, the preview is described with text only.
func NewView(writer io.Writer, promptSetter PromptSetter, colorPreview bool) domain.View {
	return &view{
		writer:       writer,
		promptSetter: promptSetter,
		colorPreview: colorPreview,
	}
}

func (v *view) ShowOutput(text string) {
	ruler := strings.Repeat("─", outputRulerWidth)
	v.print(fmt.Sprintf("Response:\n%s\n%s\n%s\n", ruler, strings.TrimRight(text, "\n"), ruler))
}

func (v *view) AppendOutput(text string) {
	v.print(text + "\n")
}

func (v *view) ShowPreview(selectedImage *domain.SelectedImage) {
	if selectedImage == nil {
		v.print(noImageSelectedMessage + "\n")
		return
	}
	description := fmt.Sprintf("Image: %s (%s, %dx%d)\n", selectedImage.Source, selectedImage.Format, selectedImage.Width, selectedImage.Height)
	if v.colorPreview && selectedImage.Preview != nil {
		description += RenderPreview(selectedImage.Preview, previewColumns)
	}
	v.print(description)
}

func (v *view) ShowPreviewError(message string) {
	v.print(message + "\n")
}

func (v *view) SetSubmitEnabled(enabled bool) {
	if enabled {
		v.promptSetter.SetPrompt(PromptReady)
	} else {
		v.promptSetter.SetPrompt(PromptBusy)
	}
	v.promptSetter.Refresh()
}

func (v *view) print(text string) {
	_, _ = io.WriteString(v.writer, text)
}
