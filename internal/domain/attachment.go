package domain

import (
	"fmt"
	"time"
)

// MaxAttachmentSize is the largest accepted attachment in bytes (5 MiB).
const MaxAttachmentSize int64 = 5 * 1024 * 1024

// Attachment is a file attached to a task. Content bytes are never stored;
// URL points at session-scoped content and is dropped on persist.
// Fields are ordered to minimize memory padding.
type Attachment struct {
	Uploaded time.Time `json:"uploaded" yaml:"uploaded"`
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Type     string    `json:"type" yaml:"type"` // Declared media type
	URL      string    `json:"url,omitempty" yaml:"url,omitempty"`
	Size     int64     `json:"size" yaml:"size"`
}

// FileUpload describes a file offered for attachment.
type FileUpload struct {
	Name string
	Type string
	URL  string
	Size int64
}

// allowedAttachmentTypes lists the accepted media types.
var allowedAttachmentTypes = map[string]struct{}{
	"image/jpeg":         {},
	"image/png":          {},
	"image/gif":          {},
	"image/webp":         {},
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.ms-excel": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {},
	"application/zip":              {},
	"application/x-zip-compressed": {},
	"text/plain":                   {},
}

// IsAllowedAttachmentType returns true if mediaType is on the allow-list.
func IsAllowedAttachmentType(mediaType string) bool {
	_, ok := allowedAttachmentTypes[mediaType]
	return ok
}

// IsOverSizeLimit returns true if size exceeds MaxAttachmentSize.
func IsOverSizeLimit(size int64) bool {
	return size > MaxAttachmentSize
}

// Validate checks the upload against the size bound and the type allow-list.
func (f FileUpload) Validate() error {
	if IsOverSizeLimit(f.Size) {
		return NewValidationError("file "+f.Name,
			fmt.Sprintf("is too large (%s), maximum size is 5 MB", FormatSize(f.Size)),
			ErrAttachmentTooLarge)
	}
	if !IsAllowedAttachmentType(f.Type) {
		return NewValidationError("file "+f.Name,
			fmt.Sprintf("type %q is not supported", f.Type),
			ErrAttachmentType)
	}
	return nil
}

// FormatSize renders a byte count with a binary unit, e.g. "1.5 KB".
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB"}
	value := float64(bytes)
	i := 0
	for value >= 1024 && i < len(units)-1 {
		value /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d Bytes", bytes)
	}
	s := fmt.Sprintf("%.2f", value)
	// Trim trailing zeros: "1.50" -> "1.5", "2.00" -> "2"
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s + " " + units[i]
}
