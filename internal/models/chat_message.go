package models

import (
	"gorm.io/datatypes"
)

// SenderType represents who authored a chat message
type SenderType string

const (
	SenderUser   SenderType = "user"
	SenderAI     SenderType = "ai"
	SenderSystem SenderType = "system"
)

// ChatMessage represents a message within a consultation
type ChatMessage struct {
	BaseModel
	ConsultationID string         `gorm:"size:36;index;not null" json:"consultationId"`
	SenderType     SenderType     `gorm:"size:10;not null" json:"senderType"`
	MessageContent string         `gorm:"type:text;not null" json:"messageContent"`
	Metadata       datatypes.JSON `json:"metadata,omitempty"`

	Consultation Consultation `gorm:"foreignKey:ConsultationID" json:"-"`
}
