package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const (
	// MaxFileSize is 10MB in bytes
	MaxFileSize = 10 * 1024 * 1024
)

// AllowedAttachmentTypes maps permitted file extensions to their MIME type.
// Attachments cover the documents a property office actually exchanges:
// photos of the issue, leases, invoices and inspection reports.
var AllowedAttachmentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
	".csv":  "text/csv",
}

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateAttachmentFile validates the uploaded file format and size
func ValidateAttachmentFile(fileHeader *multipart.FileHeader) error {
	// Check file size
	if fileHeader.Size > MaxFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxFileSize/(1024*1024)),
		}
	}

	// Check file extension
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, ok := AllowedAttachmentTypes[ext]; !ok {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: fmt.Sprintf("File type %q is not allowed", ext),
		}
	}

	return nil
}

// AttachmentContentType returns the MIME type for a validated filename
func AttachmentContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if contentType, ok := AllowedAttachmentTypes[ext]; ok {
		return contentType
	}
	return "application/octet-stream"
}
