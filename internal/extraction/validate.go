package extraction

import (
	"fmt"
	"path/filepath"
	"strings"

	"ai-doctor-server/internal/apperrors"
)

// allowedExtensions are the upload types the extraction pipeline supports.
var allowedExtensions = map[string]bool{
	"pdf":  true,
	"jpg":  true,
	"jpeg": true,
	"png":  true,
}

// ValidateUpload checks the declared filename and size before any bytes are
// stored or any database row is created. It returns the normalized file type.
func ValidateUpload(filename string, size, maxSize int64) (string, error) {
	if size > maxSize {
		return "", fmt.Errorf("%w: file size %d exceeds maximum of %.1fMB",
			apperrors.ErrPayloadTooLarge, size, float64(maxSize)/(1024*1024))
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !allowedExtensions[ext] {
		return "", apperrors.Validation("file type %q not allowed, allowed types: pdf, jpg, jpeg, png", ext)
	}

	return ext, nil
}
