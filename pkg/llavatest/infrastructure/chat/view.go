package chat

import (
	"fmt"
	"strings"

	"kgeyst.com/llavatest/pkg/llavatest/domain"
)

// maxLineLength keeps messages well under the 512-byte IRC line limit (which includes the command and the target).
const maxLineLength = 400

// Messenger sends one line of text to a channel or a user (hbot.Bot satisfies it).
type Messenger interface {
	Msg(who, text string)
}

type view struct {
	messenger Messenger
	target    string
}

// NewView posts everything the program shows to `target` (an IRC channel). A chat has no "replace" operation, so
// both ShowOutput and AppendOutput post new lines.
func NewView(messenger Messenger, target string) domain.View {
	return &view{
		messenger: messenger,
		target:    target,
	}
}

func (v *view) ShowOutput(text string) {
	v.send(text)
}

func (v *view) AppendOutput(text string) {
	v.send(text)
}

func (v *view) ShowPreview(selectedImage *domain.SelectedImage) {
	if selectedImage == nil {
		v.send("No image selected")
		return
	}
	v.send(fmt.Sprintf("Image attached: %s (%s, %dx%d)", selectedImage.Source, selectedImage.Format, selectedImage.Width, selectedImage.Height))
}

func (v *view) ShowPreviewError(message string) {
	v.send(message)
}

// SetSubmitEnabled does nothing: anyone in the channel may submit at any time.
func (v *view) SetSubmitEnabled(bool) {}

func (v *view) send(text string) {
	for _, line := range SplitLines(text, maxLineLength) {
		v.messenger.Msg(v.target, line)
	}
}

// SplitLines breaks `text` into non-empty lines no longer than `maxLength` bytes, cutting long lines at spaces
// where possible and never inside a UTF-8 sequence.
func SplitLines(text string, maxLength int) []string {
	var result []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		for len(line) > maxLength {
			cut := strings.LastIndex(line[:maxLength+1], " ")
			if cut <= 0 {
				cut = maxLength
				for cut > 0 && !isRuneStart(line[cut]) {
					cut--
				}
				if cut == 0 {
					cut = maxLength
				}
			}
			result = append(result, strings.TrimSpace(line[:cut]))
			line = strings.TrimSpace(line[cut:])
		}
		if line != "" {
			result = append(result, line)
		}
	}
	return result
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
