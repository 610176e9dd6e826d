package extraction

import (
	"errors"
	"testing"

	"ai-doctor-server/internal/apperrors"
)

const maxSize = 10 * 1024 * 1024

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		wantType string
		wantErr  error
	}{
		{"pdf accepted", "labs.pdf", 2 * 1024 * 1024, "pdf", nil},
		{"jpeg accepted", "scan.JPEG", 500, "jpeg", nil},
		{"jpg accepted", "scan.jpg", 500, "jpg", nil},
		{"png accepted", "xray.png", 500, "png", nil},
		{"exe rejected", "virus.exe", 500, "", apperrors.ErrValidation},
		{"no extension rejected", "report", 500, "", apperrors.ErrValidation},
		{"docx rejected", "notes.docx", 500, "", apperrors.ErrValidation},
		{"oversized rejected", "big.pdf", maxSize + 1, "", apperrors.ErrPayloadTooLarge},
		{"exactly max accepted", "edge.pdf", maxSize, "pdf", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileType, err := ValidateUpload(tt.filename, tt.size, maxSize)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ValidateUpload(%s) error = %v, want %v", tt.filename, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateUpload(%s) failed: %v", tt.filename, err)
			}
			if fileType != tt.wantType {
				t.Errorf("fileType = %s, want %s", fileType, tt.wantType)
			}
		})
	}
}
