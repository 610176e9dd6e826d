package extraction

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/otiai10/gosseract/v2"

	"ai-doctor-server/internal/apperrors"
)

// Extractor pulls text out of uploaded medical documents: PDFs through the
// embedded text layer, images through Tesseract OCR. Failures are terminal per
// file; the caller records them and the user re-uploads.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the text content of the stored file for the given type.
func (e *Extractor) Extract(path, fileType string) (string, error) {
	switch strings.ToLower(fileType) {
	case "pdf":
		return e.extractPDF(path)
	case "jpg", "jpeg", "png":
		return e.extractImage(path)
	default:
		return "", fmt.Errorf("%w: unsupported file type %q", apperrors.ErrExtraction, fileType)
	}
}

func (e *Extractor) extractPDF(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: open pdf: %v", apperrors.ErrExtraction, err)
	}
	defer file.Close()

	var buf bytes.Buffer
	plainText, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: read pdf text: %v", apperrors.ErrExtraction, err)
	}
	if _, err := buf.ReadFrom(plainText); err != nil {
		return "", fmt.Errorf("%w: read pdf text: %v", apperrors.ErrExtraction, err)
	}

	return strings.TrimSpace(buf.String()), nil
}

func (e *Extractor) extractImage(path string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("%w: load image: %v", apperrors.ErrExtraction, err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("%w: ocr failed: %v", apperrors.ErrExtraction, err)
	}

	return strings.TrimSpace(text), nil
}
