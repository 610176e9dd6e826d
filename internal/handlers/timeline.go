package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ai-doctor-server/internal/models"
	"ai-doctor-server/internal/utils"
)

// TimelineHandler handles the append-only symptom timeline of a consultation.
type TimelineHandler struct {
	DB *gorm.DB
}

// NewTimelineHandler creates a new TimelineHandler.
func NewTimelineHandler(db *gorm.DB) *TimelineHandler {
	return &TimelineHandler{DB: db}
}

// TimelineEntryRequest represents the request body for adding a timeline entry.
// RecordedAt is caller supplied and may be in the past; out-of-order entries
// are accepted.
type TimelineEntryRequest struct {
	Symptom    string `json:"symptom" binding:"required"`
	Severity   int    `json:"severity" binding:"required,min=1,max=10"`
	Location   string `json:"location"`
	Quality    string `json:"quality"`
	Duration   string `json:"duration"`
	Notes      string `json:"notes"`
	RecordedAt string `json:"recordedAt" binding:"required"`
}

// Add appends one symptom observation to the consultation's timeline.
func (h *TimelineHandler) Add(c *gin.Context) {
	consultation := findOwnedConsultation(c, h.DB)
	if consultation == nil {
		return
	}

	var req TimelineEntryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	recordedAt, err := time.Parse(time.RFC3339, req.RecordedAt)
	if err != nil {
		utils.BadRequest(c, "Invalid recordedAt format. Please use RFC 3339, e.g. 2025-01-02T15:04:05Z")
		return
	}

	entry := models.SymptomTimelineEntry{
		ConsultationID: consultation.ID,
		Symptom:        req.Symptom,
		Severity:       req.Severity,
		Location:       req.Location,
		Quality:        req.Quality,
		Duration:       req.Duration,
		Notes:          req.Notes,
		RecordedAt:     recordedAt,
	}
	if err := h.DB.Create(&entry).Error; err != nil {
		utils.InternalServerError(c, "Failed to add timeline entry: "+err.Error())
		return
	}

	utils.Created(c, "Timeline entry added successfully", entry)
}

// List returns the consultation's timeline ordered by recorded time,
// timestamp ties broken by insertion order.
func (h *TimelineHandler) List(c *gin.Context) {
	consultation := findOwnedConsultation(c, h.DB)
	if consultation == nil {
		return
	}

	var entries []models.SymptomTimelineEntry
	if err := h.DB.Where("consultation_id = ?", consultation.ID).Order("recorded_at ASC, seq ASC").Find(&entries).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch timeline: "+err.Error())
		return
	}

	utils.Success(c, "Timeline fetched successfully", entries)
}
