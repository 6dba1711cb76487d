package service

import (
	"context"
	"io"
)

// FileUploader stores a binary payload and returns a retrievable URL.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// RecordingUploader stores interview recordings with overwrite-by-reference
// semantics so a re-recorded interview replaces the previous blob.
type RecordingUploader interface {
	UploadVideo(ctx context.Context, publicID string, reader io.Reader) (string, error)
}

// RecordingFetcher retrieves a previously stored recording by its URL so the
// completion step can stream it to transcription.
type RecordingFetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}
