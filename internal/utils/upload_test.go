package utils

import (
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedImage(t *testing.T) {
	assert.True(t, AllowedImage("photo.png"))
	assert.True(t, AllowedImage("photo.JPG"))
	assert.True(t, AllowedImage("photo.jpeg"))
	assert.True(t, AllowedImage("photo.gif"))

	assert.False(t, AllowedImage("script.exe"))
	assert.False(t, AllowedImage("notes.txt"))
	assert.False(t, AllowedImage("archive.png.zip"))
	assert.False(t, AllowedImage("noextension"))
}

func TestImageFilename(t *testing.T) {
	name := ImageFilename("My Photo.JPEG")
	assert.True(t, strings.HasSuffix(name, ".jpeg"))
	assert.NotContains(t, name, " ")

	// Collision resistance: repeated calls differ via the random suffix.
	other := ImageFilename("My Photo.JPEG")
	assert.NotEqual(t, name, other)
}

func TestSaveImageRejectsBadExtension(t *testing.T) {
	dir := t.TempDir()

	_, err := SaveImage(&multipart.FileHeader{Filename: "malware.exe"}, dir)
	assert.ErrorIs(t, err, ErrFileType)

	_, err = SaveImage(nil, dir)
	assert.Error(t, err)

	_, err = SaveImage(&multipart.FileHeader{}, dir)
	assert.Error(t, err)
}
