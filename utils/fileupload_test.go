package utils

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestFileHeader creates a mock multipart.FileHeader for testing
func createTestFileHeader(filename string, size int64, content []byte) *multipart.FileHeader {
	// Create a buffer to write our multipart form
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	// Create form file
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", "application/octet-stream")
	part, _ := writer.CreatePart(h)
	part.Write(content)
	writer.Close()

	// Parse the multipart form
	reader := multipart.NewReader(body, writer.Boundary())
	form, _ := reader.ReadForm(int64(len(content)) + 1024)
	defer form.RemoveAll()

	if len(form.File["file"]) > 0 {
		fileHeader := form.File["file"][0]
		// Override size for testing purposes
		fileHeader.Size = size
		return fileHeader
	}

	return nil
}

func TestValidateAttachmentFile_Success(t *testing.T) {
	tests := []string{"photo.png", "lease.pdf", "report.docx", "notes.txt", "scan.jpeg"}

	for _, filename := range tests {
		t.Run(filename, func(t *testing.T) {
			content := []byte("fake file content")
			fileHeader := createTestFileHeader(filename, int64(len(content)), content)
			require.NotNil(t, fileHeader)

			err := ValidateAttachmentFile(fileHeader)
			assert.NoError(t, err)
		})
	}
}

func TestValidateAttachmentFile_FileTooLarge(t *testing.T) {
	// Test with file exceeding size limit (11MB)
	content := []byte("fake png content")
	fileHeader := createTestFileHeader("large.png", 11*1024*1024, content)
	require.NotNil(t, fileHeader)

	err := ValidateAttachmentFile(fileHeader)
	assert.Error(t, err)

	fileErr, ok := err.(*FileUploadError)
	require.True(t, ok, "Error should be of type FileUploadError")
	assert.Equal(t, "FILE_TOO_LARGE", fileErr.Code)
	assert.Contains(t, fileErr.Message, "File size exceeds maximum allowed size")
}

func TestValidateAttachmentFile_InvalidFormat(t *testing.T) {
	tests := []string{"script.exe", "archive.zip", "video.mp4"}

	for _, filename := range tests {
		t.Run(filename, func(t *testing.T) {
			content := []byte("fake content")
			fileHeader := createTestFileHeader(filename, int64(len(content)), content)
			require.NotNil(t, fileHeader)

			err := ValidateAttachmentFile(fileHeader)
			assert.Error(t, err)

			fileErr, ok := err.(*FileUploadError)
			require.True(t, ok, "Error should be of type FileUploadError")
			assert.Equal(t, "INVALID_FILE_FORMAT", fileErr.Code)
		})
	}
}

func TestValidateAttachmentFile_InvalidFormat_NoExtension(t *testing.T) {
	// Test with file without extension
	content := []byte("fake content")
	fileHeader := createTestFileHeader("testfile", int64(len(content)), content)
	require.NotNil(t, fileHeader)

	err := ValidateAttachmentFile(fileHeader)
	assert.Error(t, err)

	fileErr, ok := err.(*FileUploadError)
	require.True(t, ok, "Error should be of type FileUploadError")
	assert.Equal(t, "INVALID_FILE_FORMAT", fileErr.Code)
}

func TestValidateAttachmentFile_CaseInsensitive(t *testing.T) {
	// Test with uppercase extension
	content := []byte("fake png content")
	fileHeader := createTestFileHeader("test.PNG", int64(len(content)), content)
	require.NotNil(t, fileHeader)

	err := ValidateAttachmentFile(fileHeader)
	assert.NoError(t, err, "Validation should be case-insensitive")
}

func TestAttachmentContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", AttachmentContentType("lease.pdf"))
	assert.Equal(t, "image/jpeg", AttachmentContentType("photo.JPG"))
	assert.Equal(t, "application/octet-stream", AttachmentContentType("unknown.bin"))
}

func TestFileUploadError_Error(t *testing.T) {
	err := &FileUploadError{
		Code:    "TEST_CODE",
		Message: "Test error message",
	}

	assert.Equal(t, "Test error message", err.Error())
}
