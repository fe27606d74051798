package models

import (
	"path/filepath"
	"strings"
)

// UploadedFile lives only for the duration of one upload.
type UploadedFile struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

type FileKind string

const (
	KindPDF         FileKind = "pdf"
	KindImage       FileKind = "image"
	KindPlainText   FileKind = "text"
	KindUnsupported FileKind = "unsupported"
)

// KindFromPath resolves the extraction strategy from the file extension.
func KindFromPath(path string) FileKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return KindPDF
	case ".jpg", ".jpeg", ".png":
		return KindImage
	case ".txt":
		return KindPlainText
	default:
		return KindUnsupported
	}
}

// ContentTypeFromPath maps a file extension to the content type a browser
// would declare for it. Unknown extensions map to application/octet-stream.
func ContentTypeFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
