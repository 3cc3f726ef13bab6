package console

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"kgeyst.com/llavatest/pkg/llavatest/infrastructure/imaging"
)

const upperHalfBlock = "▀"

// RenderPreview draws `img` with 24-bit ANSI colors, `columns` characters wide. Every character cell shows two
// vertically stacked pixels (the foreground paints the upper half, the background the lower half).
func RenderPreview(img image.Image, columns int) string {
	bounds := img.Bounds()
	if columns <= 0 || bounds.Empty() {
		return ""
	}
	rows := columns * bounds.Dy() / bounds.Dx()
	if rows < 2 {
		rows = 2
	}
	rows += rows % 2
	scaled := imaging.Thumbnail(img, columns, rows)
	var sb strings.Builder
	for y := 0; y < rows; y += 2 {
		for x := 0; x < columns; x++ {
			top := color.RGBAModel.Convert(scaled.At(x, y)).(color.RGBA)
			bottom := color.RGBAModel.Convert(scaled.At(x, y+1)).(color.RGBA)
			fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%s", top.R, top.G, top.B, bottom.R, bottom.G, bottom.B, upperHalfBlock)
		}
		sb.WriteString("\x1b[0m\n")
	}
	return sb.String()
}
