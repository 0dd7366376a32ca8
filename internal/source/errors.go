package source

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCorruptedDocument reports a document that could not be decoded.
	ErrCorruptedDocument = errors.New("invalid or corrupted document")
	// ErrEncryptedDocument reports a password protected document.
	ErrEncryptedDocument = errors.New("document is password protected")
)

func documentLabel(t Type) string {
	return strings.ToUpper(string(t))
}

func imageBasedPlaceholder(t Type, size, pages int) string {
	if pages > 0 {
		return fmt.Sprintf("[Image-based %s - %d bytes, %d pages. Consider using OCR for better results.]",
			documentLabel(t), size, pages)
	}
	return fmt.Sprintf("[Image-based %s - %d bytes. Consider using OCR for better results.]",
		documentLabel(t), size)
}

func extractionPlaceholder(t Type, err error) string {
	switch {
	case errors.Is(err, ErrEncryptedDocument):
		return fmt.Sprintf("[Error: %s is password protected]", documentLabel(t))
	case errors.Is(err, ErrCorruptedDocument):
		return fmt.Sprintf("[Error: Invalid or corrupted %s file]", documentLabel(t))
	default:
		return fmt.Sprintf("[Error extracting %s content: %v]", documentLabel(t), err)
	}
}

func encodingPlaceholder(t Type) string {
	return fmt.Sprintf("[Error: %s content is not valid base64]", documentLabel(t))
}

func fetchPlaceholder(t Type, url string, err error) string {
	return fmt.Sprintf("[Error fetching %s profile %s: %v]", t, url, err)
}

var errFetchUnavailable = errors.New("profile fetching is not configured")
