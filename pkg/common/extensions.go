package common

import (
	"path"
	"strings"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp"}

// IsImageFormat reports whether the path or URL ends with one of the supported image extensions (case-insensitive).
// The query string and the fragment of a URL are ignored.
func IsImageFormat(pathOrURL string) bool {
	if index := strings.IndexAny(pathOrURL, "?#"); index != -1 {
		pathOrURL = pathOrURL[:index]
	}
	extension := strings.ToLower(path.Ext(pathOrURL))
	return IsStringInSlice(extension, imageExtensions)
}
