package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanFilename(t *testing.T) {
	assert.Equal(t, "photo.jpg", cleanFilename("photo.jpg"))
	assert.Equal(t, "photo.jpg", cleanFilename("../../etc/photo.jpg"))
	assert.Equal(t, "myhouse.png", cleanFilename("my house!.png"))
	assert.Equal(t, "tour-1.mp4", cleanFilename("tour-1.mp4"))
}

func TestValidateFileType(t *testing.T) {
	assert.NoError(t, ValidateFileType("photo.jpg", "image"))
	assert.NoError(t, ValidateFileType("photo.WEBP", "image"))
	assert.NoError(t, ValidateFileType("tour.mp4", "video"))
	assert.NoError(t, ValidateFileType("localities.xlsx", "excel"))

	assert.Error(t, ValidateFileType("malware.exe", "image"))
	assert.Error(t, ValidateFileType("photo.jpg", "video"))
	assert.Error(t, ValidateFileType("tour.mp4", "excel"))
	assert.Error(t, ValidateFileType("photo.jpg", "audio"))
}
