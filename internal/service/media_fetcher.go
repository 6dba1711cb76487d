package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPRecordingFetcher downloads stored recordings over HTTP for transcription.
type HTTPRecordingFetcher struct {
	client *http.Client
}

// NewHTTPRecordingFetcher builds a fetcher with a bounded request timeout.
func NewHTTPRecordingFetcher(timeout time.Duration) *HTTPRecordingFetcher {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	return &HTTPRecordingFetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch streams the recording at the given URL.
func (f *HTTPRecordingFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build recording request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch recording: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch recording: unexpected status %d", resp.StatusCode)
	}

	return resp.Body, nil
}
