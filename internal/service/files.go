package service

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	maxAnswerFileSize = 10 * 1024 * 1024
	maxAttachmentSize = 20 * 1024 * 1024
	minRecordingSize  = 100 * 1024
	maxRecordingSize  = 100 * 1024 * 1024
)

var (
	answerFileExtensions = []string{".pdf", ".jpg", ".jpeg", ".png", ".docx", ".doc", ".txt"}
	attachmentExtensions = []string{".pdf", ".jpg", ".jpeg", ".png", ".docx", ".doc"}
)

func validateAnswerFile(file *multipart.FileHeader) error {
	return validateExtensionAndSize(file, answerFileExtensions, maxAnswerFileSize)
}

func validateAttachmentFile(file *multipart.FileHeader) error {
	return validateExtensionAndSize(file, attachmentExtensions, maxAttachmentSize)
}

func validateExtensionAndSize(file *multipart.FileHeader, allowed []string, maxSize int64) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	permitted := false
	for _, candidate := range allowed {
		if ext == candidate {
			permitted = true
			break
		}
	}
	if !permitted {
		return fmt.Errorf("%w: %s (allowed: %s)", ErrInvalidFileType, ext, strings.Join(allowed, ", "))
	}

	if file.Size > maxSize {
		return fmt.Errorf("%w: maximum size is %dMB", ErrFileTooLarge, maxSize/(1024*1024))
	}

	return nil
}

// validateRecording enforces the capture side-channel contract: a declared
// video media type, confirmed by content sniffing, sized above 100KB and at
// most 100MB.
func validateRecording(file *multipart.FileHeader) error {
	if file.Size < minRecordingSize {
		return fmt.Errorf("%w: recording too short, minimum size is 100KB", ErrInvalidRecording)
	}

	if file.Size > maxRecordingSize {
		return fmt.Errorf("%w: recording too large, maximum size is 100MB", ErrInvalidRecording)
	}

	declared := file.Header.Get("Content-Type")
	if !strings.HasPrefix(declared, "video/") {
		return fmt.Errorf("%w: expected a video media type, got %q", ErrInvalidRecording, declared)
	}

	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("open recording: %w", err)
	}
	defer reader.Close()

	sniffed, err := mimetype.DetectReader(reader)
	if err != nil {
		return fmt.Errorf("detect recording type: %w", err)
	}

	if !strings.HasPrefix(sniffed.String(), "video/") && !strings.HasPrefix(sniffed.String(), "audio/") {
		return fmt.Errorf("%w: content does not look like media (%s)", ErrInvalidRecording, sniffed.String())
	}

	return nil
}
