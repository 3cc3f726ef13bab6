package domain

const (
	// ConfigKeyInferenceURL the base URL of the inference server (the generate path is appended to it)
	ConfigKeyInferenceURL = "inferenceURL"
	// ConfigKeyModel the name of the multimodal model which answers prompts
	ConfigKeyModel = "model"
	// ConfigKeyThumbnailSize the width and height of the image preview, in pixels
	ConfigKeyThumbnailSize = "thumbnailSize"
	// ConfigKeyMaxImageDownloadSize how many bytes an image URL is allowed to return
	ConfigKeyMaxImageDownloadSize = "maxImageDownloadSize"
	// ConfigKeyLogPath where to write logs
	ConfigKeyLogPath = "logPath"
)

const (
	DefaultInferenceURL         = "http://localhost:11434"
	DefaultModel                = "llava"
	DefaultThumbnailSize        = 100
	DefaultMaxImageDownloadSize = 20 << 20
	DefaultLogPath              = "log.txt"
)
