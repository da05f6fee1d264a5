package filestore

// Error codes for file store operations.
const (
	CodeEmptyFile              = "EMPTY_FILE"
	CodeUnsupportedContentType = "UNSUPPORTED_CONTENT_TYPE"
	CodeUnknownCategory        = "UNKNOWN_CATEGORY"
	CodeInvalidFileURL         = "INVALID_FILE_URL"
	CodeFileNotFound           = "FILE_NOT_FOUND"
	CodeStorageFailure         = "STORAGE_FAILURE"
)
