package common

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

var ErrContentTooLarge = errors.New("content too large")

// ReadAllFromURL reads all content from the URL, but no more than `maxSize` bytes: a dynamic page which streams
// output forever would otherwise exhaust memory.
func ReadAllFromURL(url string, maxSize int64) ([]byte, error) {
	res, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %d", url, res.StatusCode)
	}
	content, err := io.ReadAll(io.LimitReader(res.Body, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(content)) > maxSize {
		return nil, fmt.Errorf("GET %s: %w (more than %d bytes)", url, ErrContentTooLarge, maxSize)
	}
	return content, nil
}
