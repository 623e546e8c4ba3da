package utils

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// allowedImageExts is the extension allow-list for waste-log images.
var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// ErrFileType is returned when an upload does not carry an allowed image
// extension.
var ErrFileType = errors.New("file type not allowed, upload an image (PNG, JPG, JPEG, GIF)")

// AllowedImage reports whether the filename carries an allowed image
// extension. The check is case-insensitive.
func AllowedImage(filename string) bool {
	return allowedImageExts[strings.ToLower(filepath.Ext(filename))]
}

// ImageFilename builds a collision-resistant name for a stored upload:
// timestamp, a short random suffix and the original extension.
func ImageFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	stamp := time.Now().UTC().Format("20060102150405")
	suffix := uuid.New().String()[:8]
	return fmt.Sprintf("%s_%s%s", stamp, suffix, ext)
}

// SaveImage validates and writes an uploaded image into dir, returning the
// stored filename. The directory is created on demand. A rejected extension
// returns ErrFileType before anything touches disk.
func SaveImage(fh *multipart.FileHeader, dir string) (string, error) {
	if fh == nil || fh.Filename == "" {
		return "", errors.New("no file selected")
	}
	if !AllowedImage(fh.Filename) {
		return "", ErrFileType
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := ImageFilename(fh.Filename)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}
