package service

import (
	"fmt"
	"mime"
	"strings"

	"receipt-insights/internal/models"
)

// DefaultMaxUploadSize is 5 MiB.
const DefaultMaxUploadSize int64 = 5 * 1024 * 1024

var allowedContentTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"application/pdf": {},
	"text/plain":      {},
}

type ValidationError struct {
	Field      string
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Constraint)
}

// ValidateUpload checks the declared name, content type and size of an upload.
func ValidateUpload(file models.UploadedFile, maxSize int64) error {
	if strings.TrimSpace(file.Filename) == "" {
		return &ValidationError{Field: "filename", Constraint: "must not be empty"}
	}

	mediaType, _, err := mime.ParseMediaType(file.ContentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(file.ContentType))
	}
	if _, ok := allowedContentTypes[mediaType]; !ok {
		return &ValidationError{
			Field:      "content_type",
			Constraint: fmt.Sprintf("%q is not one of image/jpeg, image/png, application/pdf, text/plain", file.ContentType),
		}
	}

	if file.Size > maxSize {
		return &ValidationError{
			Field:      "size",
			Constraint: fmt.Sprintf("%d bytes exceeds the %d byte limit", file.Size, maxSize),
		}
	}

	return nil
}
