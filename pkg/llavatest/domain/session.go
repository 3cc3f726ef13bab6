package domain

import "image"

// SelectedImage is an image attached to the next prompt.
type SelectedImage struct {
	// Source is the file path or the URL the image was loaded from.
	Source string
	// Base64 is the standard base64 encoding of the raw file bytes (not of the decoded pixels).
	Base64 string
	// Preview is a fixed-size thumbnail of the image.
	Preview image.Image
	// Format is the name of the decoder which recognized the file ("png", "jpeg", "gif" or "bmp").
	Format string
	Width  int
	Height int
}

// SessionState is everything the user has entered so far plus what the server answered last.
// It belongs to exactly one Controller and is only touched on the event loop.
type SessionState struct {
	PromptText    string
	SelectedImage *SelectedImage
	LastResponse  string
}
