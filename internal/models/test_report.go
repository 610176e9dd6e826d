package models

import (
	"time"

	"gorm.io/datatypes"
)

// ProcessingStatus represents the extraction state of an uploaded report
type ProcessingStatus string

const (
	ProcessingPending   ProcessingStatus = "pending"
	ProcessingActive    ProcessingStatus = "processing"
	ProcessingCompleted ProcessingStatus = "completed"
	ProcessingFailed    ProcessingStatus = "failed"
)

// TestReport represents an uploaded medical document (PDF or image).
// FilePath is the server-side storage location and is never exposed to
// clients; the file is always served through the download endpoint.
// A report is immutable once it reaches completed or failed: extraction
// failures are terminal and the user re-uploads.
type TestReport struct {
	BaseModel
	ConsultationID   string           `gorm:"size:36;index;not null" json:"consultationId"`
	FileName         string           `gorm:"size:255;not null" json:"fileName"`
	FilePath         string           `gorm:"size:500;not null" json:"-"`
	FileType         string           `gorm:"size:50;not null" json:"fileType"`
	FileSize         int64            `gorm:"not null" json:"fileSize"`
	ProcessingStatus ProcessingStatus `gorm:"size:20;default:'pending'" json:"processingStatus"`
	ExtractedText    string           `gorm:"type:text" json:"-"`
	ProcessedData    datatypes.JSON   `json:"processedData,omitempty"`
	ProcessingError  string           `gorm:"size:255" json:"processingError,omitempty"`
	ProcessedAt      *time.Time       `json:"processedAt,omitempty"`

	Consultation Consultation `gorm:"foreignKey:ConsultationID" json:"-"`
}

// IsTerminal reports whether the report can no longer change.
func (r *TestReport) IsTerminal() bool {
	return r.ProcessingStatus == ProcessingCompleted || r.ProcessingStatus == ProcessingFailed
}
