package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"kgeyst.com/llavatest/pkg/common"
	"kgeyst.com/llavatest/pkg/llavatest/domain"
)

type imageLoader struct {
	thumbnailSize int
}

// NewImageLoader creates a loader for PNG, JPEG, GIF and BMP images. The preview is always a square of
// `thumbnailSize` pixels (see domain.ConfigKeyThumbnailSize) regardless of the aspect ratio of the original.
func NewImageLoader(config *common.Config) domain.ImageLoader {
	thumbnailSize := config.GetIntOrDefault(domain.ConfigKeyThumbnailSize, domain.DefaultThumbnailSize)
	if thumbnailSize <= 0 {
		thumbnailSize = domain.DefaultThumbnailSize
	}
	return &imageLoader{
		thumbnailSize: thumbnailSize,
	}
}

func (i *imageLoader) LoadFile(path string) (*domain.SelectedImage, error) {
	if !common.IsImageFormat(path) {
		return nil, &domain.ImageLoadError{Source: path, Err: fmt.Errorf("%w: %s", domain.ErrUnsupportedImageFormat, path)}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ImageLoadError{Source: path, Err: err}
	}
	return i.LoadBytes(path, data)
}

func (i *imageLoader) LoadBytes(source string, data []byte) (*domain.SelectedImage, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &domain.ImageLoadError{Source: source, Err: fmt.Errorf("cannot decode %s: %w", source, err)}
	}
	bounds := img.Bounds()
	return &domain.SelectedImage{
		Source:  source,
		Base64:  base64.StdEncoding.EncodeToString(data),
		Preview: Thumbnail(img, i.thumbnailSize, i.thumbnailSize),
		Format:  format,
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
	}, nil
}

// Thumbnail resamples `img` to exactly `width`x`height` with the Catmull-Rom filter.
func Thumbnail(img image.Image, width, height int) image.Image {
	thumbnail := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(thumbnail, thumbnail.Bounds(), img, img.Bounds(), draw.Src, nil)
	return thumbnail
}
