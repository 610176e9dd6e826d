package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ai-doctor-server/internal/ai"
	"ai-doctor-server/internal/middleware"
	"ai-doctor-server/internal/models"
	"ai-doctor-server/internal/report"
	"ai-doctor-server/internal/utils"
)

// ConsultationHandler handles consultation lifecycle and AI analysis requests.
type ConsultationHandler struct {
	DB *gorm.DB
	AI *ai.Client
}

// NewConsultationHandler creates a new ConsultationHandler.
func NewConsultationHandler(db *gorm.DB, aiClient *ai.Client) *ConsultationHandler {
	return &ConsultationHandler{DB: db, AI: aiClient}
}

// findOwnedConsultation loads the consultation in the path and enforces
// ownership. It writes the error response itself and returns nil when the
// caller should bail out.
func findOwnedConsultation(c *gin.Context, db *gorm.DB) *models.Consultation {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil
	}

	var consultation models.Consultation
	if err := db.First(&consultation, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Consultation not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil
	}

	if consultation.UserID != userID {
		utils.Forbidden(c, "You do not have access to this consultation")
		return nil
	}

	return &consultation
}

// CreateConsultationRequest represents the request body for creating a consultation.
type CreateConsultationRequest struct {
	ChiefComplaint string `json:"chiefComplaint"`
}

// Create opens a new consultation in draft status.
func (h *ConsultationHandler) Create(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateConsultationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	consultation := models.Consultation{
		UserID:         userID,
		ChiefComplaint: req.ChiefComplaint,
		Status:         models.ConsultationDraft,
	}

	if err := h.DB.Create(&consultation).Error; err != nil {
		utils.InternalServerError(c, "Failed to create consultation: "+err.Error())
		return
	}

	utils.Created(c, "Consultation created successfully", consultation)
}

// List returns the authenticated user's consultations, newest first.
// Supports skip/limit pagination and an optional status filter.
func (h *ConsultationHandler) List(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	skip, limit := utils.Pagination(c, 100)

	query := h.DB.Where("user_id = ?", userID)
	if raw := c.Query("status"); raw != "" {
		status, err := models.ValidateStatus(raw)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		query = query.Where("status = ?", status)
	}

	var consultations []models.Consultation
	if err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&consultations).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch consultations: "+err.Error())
		return
	}

	utils.Success(c, "Consultations fetched successfully", consultations)
}

// Get returns one consultation with its reports, timeline and analyses.
func (h *ConsultationHandler) Get(c *gin.Context) {
	consultation := findOwnedConsultation(c, h.DB)
	if consultation == nil {
		return
	}

	if err := h.DB.
		Preload("TestReports").
		Preload("TimelineEntries").
		Preload("Analyses").
		First(consultation, "id = ?", consultation.ID).Error; err != nil {
		utils.InternalServerError(c, "Failed to load consultation details: "+err.Error())
		return
	}

	models.SortTimeline(consultation.TimelineEntries)

	utils.Success(c, "Consultation fetched successfully", consultation)
}

// SubmitSymptomsRequest carries the structured symptom payload. The payload is
// stored as-is; its shape is owned by the client.
type SubmitSymptomsRequest struct {
	ChiefComplaint string          `json:"chiefComplaint"`
	Symptoms       json.RawMessage `json:"symptoms" binding:"required"`
}

// SubmitSymptoms attaches a symptom payload to a draft or active consultation
// and activates it.
func (h *ConsultationHandler) SubmitSymptoms(c *gin.Context) {
	consultation := findOwnedConsultation(c, h.DB)
	if consultation == nil {
		return
	}

	var req SubmitSymptomsRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if !consultation.AcceptsSymptoms() {
		utils.UnprocessableEntity(c, fmt.Sprintf("cannot submit symptoms to a %s consultation", consultation.Status))
		return
	}

	consultation.Symptoms = []byte(req.Symptoms)
	if req.ChiefComplaint != "" {
		consultation.ChiefComplaint = req.ChiefComplaint
	}
	if consultation.Status == models.ConsultationDraft {
		consultation.Status = models.ConsultationActive
	}

	if err := h.DB.Save(consultation).Error; err != nil {
		utils.InternalServerError(c, "Failed to save symptoms: "+err.Error())
		return
	}

	utils.Success(c, "Symptoms submitted successfully", consultation)
}

// Complete marks an active consultation as completed.
func (h *ConsultationHandler) Complete(c *gin.Context) {
	h.transition(c, models.ConsultationCompleted, "Consultation completed successfully")
}

// Cancel cancels a draft or active consultation.
func (h *ConsultationHandler) Cancel(c *gin.Context) {
	h.transition(c, models.ConsultationCancelled, "Consultation cancelled successfully")
}

func (h *ConsultationHandler) transition(c *gin.Context, next models.ConsultationStatus, message string) {
	consultation := findOwnedConsultation(c, h.DB)
	if consultation == nil {
		return
	}

	if err := consultation.Transition(next); err != nil {
		utils.AppError(c, err)
		return
	}

	if err := h.DB.Save(consultation).Error; err != nil {
		utils.InternalServerError(c, "Failed to update consultation: "+err.Error())
		return
	}

	utils.Success(c, message, consultation)
}

// AnalysisResponse is the payload returned for a completed analysis.
type AnalysisResponse struct {
	AnalysisID          string                 `json:"analysisId"`
	ConsultationID      string                 `json:"consultationId"`
	Summary             string                 `json:"summary"`
	RiskLevel           string                 `json:"riskLevel"`
	KeyFindings         []string               `json:"keyFindings"`
	PossibleConditions  []ai.PossibleCondition `json:"possibleConditions"`
	Recommendations     []ai.Recommendation    `json:"recommendations"`
	EmergencyAlert      *ai.EmergencyAlert     `json:"emergencyAlert,omitempty"`
	FollowUpSuggestions []string               `json:"followUpSuggestions"`
	ConfidenceScore     int                    `json:"confidenceScore"`
	ModelVersion        string                 `json:"modelVersion"`
	Disclaimer          string                 `json:"disclaimer"`
}

// Analyze gathers everything known about an active consultation, runs the AI
// analysis and persists the result as a new Analysis row. The consultation
// stays active so the user can iterate: add data, re-analyze, then complete.
func (h *ConsultationHandler) Analyze(c *gin.Context) {
	consultation := findOwnedConsultation(c, h.DB)
	if consultation == nil {
		return
	}

	if consultation.Status != models.ConsultationActive {
		utils.UnprocessableEntity(c, fmt.Sprintf("cannot analyze a %s consultation; submit symptoms first", consultation.Status))
		return
	}

	input, err := h.gatherInput(consultation)
	if err != nil {
		utils.InternalServerError(c, "Failed to gather analysis input: "+err.Error())
		return
	}
	if !input.HasContent() {
		utils.UnprocessableEntity(c, "Consultation has no symptoms or processed test reports to analyze")
		return
	}

	result, err := h.AI.Analyze(c.Request.Context(), input)
	if err != nil {
		utils.AppError(c, err)
		return
	}

	analysis, err := buildAnalysisRecord(consultation.ID, result)
	if err != nil {
		utils.InternalServerError(c, "Failed to encode analysis: "+err.Error())
		return
	}
	if err := h.DB.Create(analysis).Error; err != nil {
		utils.InternalServerError(c, "Failed to store analysis: "+err.Error())
		return
	}

	utils.Success(c, "Analysis completed successfully", AnalysisResponse{
		AnalysisID:          analysis.ID,
		ConsultationID:      consultation.ID,
		Summary:             result.Summary,
		RiskLevel:           result.RiskLevel,
		KeyFindings:         result.KeyFindings,
		PossibleConditions:  result.PossibleConditions,
		Recommendations:     result.Recommendations,
		EmergencyAlert:      result.Alert(),
		FollowUpSuggestions: result.FollowUpSuggestions,
		ConfidenceScore:     result.ConfidenceScore,
		ModelVersion:        result.ModelUsed,
		Disclaimer:          result.Disclaimer,
	})
}

// gatherInput assembles the analysis input from the consultation's symptom
// payload, completed test reports, sorted timeline and the owner's medical
// history.
func (h *ConsultationHandler) gatherInput(consultation *models.Consultation) (*ai.AnalysisInput, error) {
	input := &ai.AnalysisInput{
		ChiefComplaint: consultation.ChiefComplaint,
		SymptomsJSON:   string(consultation.Symptoms),
	}

	var reports []models.TestReport
	if err := h.DB.
		Where("consultation_id = ? AND processing_status = ?", consultation.ID, models.ProcessingCompleted).
		Order("created_at ASC").
		Find(&reports).Error; err != nil {
		return nil, err
	}
	for _, r := range reports {
		if r.ExtractedText == "" {
			continue
		}
		input.ReportTexts = append(input.ReportTexts, ai.ReportText{FileName: r.FileName, Text: r.ExtractedText})
	}

	var timeline []models.SymptomTimelineEntry
	if err := h.DB.Where("consultation_id = ?", consultation.ID).Find(&timeline).Error; err != nil {
		return nil, err
	}
	models.SortTimeline(timeline)
	input.Timeline = timeline

	var history models.MedicalHistory
	err := h.DB.Where("user_id = ?", consultation.UserID).First(&history).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if err == nil {
		input.History = &ai.HistorySnapshot{
			Allergies:     models.UnmarshalList(history.Allergies),
			Medications:   models.UnmarshalList(history.Medications),
			Conditions:    models.UnmarshalList(history.Conditions),
			Surgeries:     models.UnmarshalList(history.Surgeries),
			FamilyHistory: models.UnmarshalList(history.FamilyHistory),
		}
	}

	return input, nil
}

// buildAnalysisRecord maps an AI result onto the append-only Analysis row.
// AIAnalysis retains the full structured result plus the raw upstream payload.
func buildAnalysisRecord(consultationID string, result *ai.AnalysisResult) (*models.Analysis, error) {
	full, err := json.Marshal(struct {
		*ai.AnalysisResult
		RawResponse string `json:"raw_response"`
		ModelUsed   string `json:"model_used"`
	}{result, result.RawResponse, result.ModelUsed})
	if err != nil {
		return nil, err
	}

	keyFindings, _ := json.Marshal(result.KeyFindings)
	recommendations, _ := json.Marshal(result.Recommendations)
	emergencyActions, _ := json.Marshal(result.EmergencyActions)
	followUps, _ := json.Marshal(result.FollowUpSuggestions)

	return &models.Analysis{
		ConsultationID:      consultationID,
		AIAnalysis:          full,
		RiskLevel:           models.RiskLevel(result.RiskLevel),
		Summary:             result.Summary,
		KeyFindings:         keyFindings,
		Recommendations:     recommendations,
		EmergencyActions:    emergencyActions,
		FollowUpSuggestions: followUps,
		ConfidenceScore:     result.ConfidenceScore,
		ModelVersion:        result.ModelUsed,
		Disclaimer:          result.Disclaimer,
	}, nil
}

// Screen runs rapid emergency screening over an active consultation. Unlike
// Analyze it uses the triage model chain and a terse schema, and nothing is
// persisted except a system chat message when an emergency is flagged.
func (h *ConsultationHandler) Screen(c *gin.Context) {
	consultation := findOwnedConsultation(c, h.DB)
	if consultation == nil {
		return
	}

	if consultation.Status != models.ConsultationActive {
		utils.UnprocessableEntity(c, fmt.Sprintf("cannot screen a %s consultation; submit symptoms first", consultation.Status))
		return
	}

	input, err := h.gatherInput(consultation)
	if err != nil {
		utils.InternalServerError(c, "Failed to gather screening input: "+err.Error())
		return
	}
	if !input.HasContent() {
		utils.UnprocessableEntity(c, "Consultation has no symptoms or processed test reports to screen")
		return
	}

	result, err := h.AI.Screen(c.Request.Context(), input)
	if err != nil {
		utils.AppError(c, err)
		return
	}

	if result.IsEmergency {
		message := models.ChatMessage{
			ConsultationID: consultation.ID,
			SenderType:     models.SenderSystem,
			MessageContent: fmt.Sprintf("Emergency screening flagged this consultation (%s, see a %s provider %s). Red flags: %s",
				result.EmergencyLevel, result.EmergencySpecialty, strings.ReplaceAll(result.TimeToCare, "_", " "), strings.Join(result.RedFlags, "; ")),
		}
		if err := h.DB.Create(&message).Error; err != nil {
			log.Printf("consultation %s: failed to record screening alert: %v", consultation.ID, err)
		}
	}

	utils.Success(c, "Emergency screening completed", result)
}

// ListAnalyses returns all analyses for a consultation, newest first.
func (h *ConsultationHandler) ListAnalyses(c *gin.Context) {
	consultation := findOwnedConsultation(c, h.DB)
	if consultation == nil {
		return
	}

	var analyses []models.Analysis
	if err := h.DB.Where("consultation_id = ?", consultation.ID).Order("created_at DESC").Find(&analyses).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch analyses: "+err.Error())
		return
	}

	utils.Success(c, "Analyses fetched successfully", analyses)
}

// GetReport renders a PDF summary of the consultation and streams it to the
// client.
func (h *ConsultationHandler) GetReport(c *gin.Context) {
	consultation := findOwnedConsultation(c, h.DB)
	if consultation == nil {
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", consultation.UserID).Error; err != nil {
		utils.InternalServerError(c, "Failed to load user: "+err.Error())
		return
	}

	var timeline []models.SymptomTimelineEntry
	if err := h.DB.Where("consultation_id = ?", consultation.ID).Find(&timeline).Error; err != nil {
		utils.InternalServerError(c, "Failed to load timeline: "+err.Error())
		return
	}
	models.SortTimeline(timeline)

	var latest *models.Analysis
	var analysis models.Analysis
	err := h.DB.Where("consultation_id = ?", consultation.ID).Order("created_at DESC").First(&analysis).Error
	if err == nil {
		latest = &analysis
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Failed to load analysis: "+err.Error())
		return
	}

	pdfBytes, err := report.GenerateConsultationPDF(consultation, &user, timeline, latest)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate report: "+err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="consultation-%s.pdf"`, consultation.ID))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
