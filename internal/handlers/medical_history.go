package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ai-doctor-server/internal/middleware"
	"ai-doctor-server/internal/models"
	"ai-doctor-server/internal/utils"
)

// MedicalHistoryHandler handles the authenticated user's medical history.
type MedicalHistoryHandler struct {
	DB *gorm.DB
}

// NewMedicalHistoryHandler creates a new MedicalHistoryHandler.
func NewMedicalHistoryHandler(db *gorm.DB) *MedicalHistoryHandler {
	return &MedicalHistoryHandler{DB: db}
}

// MedicalHistoryRequest represents the request body for replacing medical history.
type MedicalHistoryRequest struct {
	Allergies     []string `json:"allergies"`
	Medications   []string `json:"medications"`
	Conditions    []string `json:"conditions"`
	Surgeries     []string `json:"surgeries"`
	FamilyHistory []string `json:"familyHistory"`
}

// Get fetches the authenticated user's medical history. A user without a
// stored history gets an empty record rather than a 404.
func (h *MedicalHistoryHandler) Get(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var history models.MedicalHistory
	if err := h.DB.Where("user_id = ?", userID).First(&history).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Success(c, "Medical history fetched successfully", models.MedicalHistory{UserID: userID})
			return
		}
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	utils.Success(c, "Medical history fetched successfully", history)
}

// Update replaces the authenticated user's medical history. Entries are
// trimmed and deduplicated case-insensitively before storage.
func (h *MedicalHistoryHandler) Update(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req MedicalHistoryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var history models.MedicalHistory
	err := h.DB.Where("user_id = ?", userID).First(&history).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	history.UserID = userID
	applyHistory(&history, req)

	if err := h.DB.Save(&history).Error; err != nil {
		utils.InternalServerError(c, "Failed to save medical history: "+err.Error())
		return
	}

	utils.Success(c, "Medical history updated successfully", history)
}

// applyHistory copies the request lists onto the record, trimmed and
// deduplicated case-insensitively.
func applyHistory(history *models.MedicalHistory, req MedicalHistoryRequest) {
	history.Allergies = models.MarshalList(models.DedupeList(req.Allergies))
	history.Medications = models.MarshalList(models.DedupeList(req.Medications))
	history.Conditions = models.MarshalList(models.DedupeList(req.Conditions))
	history.Surgeries = models.MarshalList(models.DedupeList(req.Surgeries))
	history.FamilyHistory = models.MarshalList(models.DedupeList(req.FamilyHistory))
}
