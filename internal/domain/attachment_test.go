package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAllowedAttachmentType(t *testing.T) {
	allowed := []string{
		"image/jpeg", "image/png", "image/gif", "image/webp",
		"application/pdf", "application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/zip", "application/x-zip-compressed", "text/plain",
	}
	for _, mt := range allowed {
		assert.True(t, IsAllowedAttachmentType(mt), mt)
	}

	for _, mt := range []string{"", "image/svg+xml", "application/x-msdownload", "text/html"} {
		assert.False(t, IsAllowedAttachmentType(mt), mt)
	}
}

func TestIsOverSizeLimit(t *testing.T) {
	assert.False(t, IsOverSizeLimit(0))
	assert.False(t, IsOverSizeLimit(MaxAttachmentSize))
	assert.True(t, IsOverSizeLimit(MaxAttachmentSize+1))
	assert.True(t, IsOverSizeLimit(6*1024*1024))
}

func TestFileUpload_Validate(t *testing.T) {
	ok := FileUpload{Name: "brief.pdf", Type: "application/pdf", Size: 1024}
	require.NoError(t, ok.Validate())

	big := FileUpload{Name: "video.zip", Type: "application/zip", Size: 6 * 1024 * 1024}
	err := big.Validate()
	assert.ErrorIs(t, err, ErrAttachmentTooLarge)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "file video.zip", ve.Field)
	assert.Contains(t, ve.Reason, "6 MB")

	exe := FileUpload{Name: "setup.exe", Type: "application/x-msdownload", Size: 10}
	err = exe.Validate()
	assert.ErrorIs(t, err, ErrAttachmentType)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5 MB"},
		{3 * 1024 * 1024 * 1024, "3 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.in))
	}
}
