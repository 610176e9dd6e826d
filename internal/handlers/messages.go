package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ai-doctor-server/internal/models"
	"ai-doctor-server/internal/utils"
)

// MessageHandler handles the chat log attached to a consultation.
type MessageHandler struct {
	DB *gorm.DB
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(db *gorm.DB) *MessageHandler {
	return &MessageHandler{DB: db}
}

// MessageRequest represents the request body for posting a chat message.
type MessageRequest struct {
	MessageContent string `json:"messageContent" binding:"required"`
}

// Send appends a user message to the consultation's chat log.
func (h *MessageHandler) Send(c *gin.Context) {
	consultation := findOwnedConsultation(c, h.DB)
	if consultation == nil {
		return
	}

	var req MessageRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	message := models.ChatMessage{
		ConsultationID: consultation.ID,
		SenderType:     models.SenderUser,
		MessageContent: req.MessageContent,
	}
	if err := h.DB.Create(&message).Error; err != nil {
		utils.InternalServerError(c, "Failed to store message: "+err.Error())
		return
	}

	utils.Created(c, "Message sent successfully", message)
}

// List returns the consultation's chat log, oldest first.
func (h *MessageHandler) List(c *gin.Context) {
	consultation := findOwnedConsultation(c, h.DB)
	if consultation == nil {
		return
	}

	var messages []models.ChatMessage
	if err := h.DB.Where("consultation_id = ?", consultation.ID).Order("created_at ASC").Find(&messages).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch messages: "+err.Error())
		return
	}

	utils.Success(c, "Messages fetched successfully", messages)
}
