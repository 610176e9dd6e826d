package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ai-doctor-server/internal/config"
	"ai-doctor-server/internal/extraction"
	"ai-doctor-server/internal/models"
	"ai-doctor-server/internal/utils"
)

// FileHandler handles test report uploads, listing and download.
type FileHandler struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Extractor *extraction.Extractor
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(db *gorm.DB, cfg *config.Config) *FileHandler {
	return &FileHandler{DB: db, Cfg: cfg, Extractor: extraction.NewExtractor()}
}

// Upload accepts one medical document for a consultation. Validation happens
// before anything is written: rejected uploads leave no file and no row. The
// stored report starts in pending status and is processed in the background.
func (h *FileHandler) Upload(c *gin.Context) {
	consultation := findOwnedConsultation(c, h.DB)
	if consultation == nil {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "No file provided in 'file' form field")
		return
	}

	ext, err := extraction.ValidateUpload(fileHeader.Filename, fileHeader.Size, h.Cfg.Upload.MaxFileSize)
	if err != nil {
		utils.AppError(c, err)
		return
	}

	storedName := uuid.New().String() + "." + ext
	storedPath := filepath.Join(h.Cfg.Upload.Directory, storedName)
	if err := c.SaveUploadedFile(fileHeader, storedPath); err != nil {
		utils.InternalServerError(c, "Failed to store file: "+err.Error())
		return
	}

	report := models.TestReport{
		ConsultationID:   consultation.ID,
		FileName:         fileHeader.Filename,
		FilePath:         storedPath,
		FileType:         ext,
		FileSize:         fileHeader.Size,
		ProcessingStatus: models.ProcessingPending,
	}
	if err := h.DB.Create(&report).Error; err != nil {
		os.Remove(storedPath)
		utils.InternalServerError(c, "Failed to record upload: "+err.Error())
		return
	}

	go h.processReport(report.ID)

	utils.Created(c, "File uploaded successfully, processing started", report)
}

// processReport runs text extraction for one uploaded report. It is detached
// from the request: the upload response has already been sent.
func (h *FileHandler) processReport(reportID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db := h.DB.WithContext(ctx)

	var report models.TestReport
	if err := db.First(&report, "id = ?", reportID).Error; err != nil {
		log.Printf("report %s: load failed: %v", reportID, err)
		return
	}
	if report.IsTerminal() {
		return
	}

	db.Model(&report).Update("processing_status", models.ProcessingActive)

	now := time.Now()
	text, err := h.Extractor.Extract(report.FilePath, report.FileType)
	if err != nil {
		log.Printf("report %s: extraction failed: %v", reportID, err)
		db.Model(&report).Updates(map[string]interface{}{
			"processing_status": models.ProcessingFailed,
			"processing_error":  err.Error(),
			"processed_at":      now,
		})
		return
	}

	mined, err := json.Marshal(extraction.MineMedicalData(text))
	if err != nil {
		mined = []byte("{}")
	}

	db.Model(&report).Updates(map[string]interface{}{
		"processing_status": models.ProcessingCompleted,
		"extracted_text":    text,
		"processed_data":    mined,
		"processed_at":      now,
	})
}

// List returns every test report of a consultation, newest first.
func (h *FileHandler) List(c *gin.Context) {
	consultation := findOwnedConsultation(c, h.DB)
	if consultation == nil {
		return
	}

	var reports []models.TestReport
	if err := h.DB.Where("consultation_id = ?", consultation.ID).Order("created_at DESC").Find(&reports).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch files: "+err.Error())
		return
	}

	utils.Success(c, "Files fetched successfully", reports)
}

// Download streams the original bytes of an uploaded report back to its
// owner under the original filename.
func (h *FileHandler) Download(c *gin.Context) {
	consultation := findOwnedConsultation(c, h.DB)
	if consultation == nil {
		return
	}

	var report models.TestReport
	if err := h.DB.Where("id = ? AND consultation_id = ?", c.Param("fileId"), consultation.ID).First(&report).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "File not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if _, err := os.Stat(report.FilePath); err != nil {
		utils.InternalServerError(c, "Stored file is missing")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.FileName))
	c.Header("Content-Type", contentTypeFor(report.FileType))
	c.File(report.FilePath)
}

func contentTypeFor(fileType string) string {
	switch fileType {
	case "pdf":
		return "application/pdf"
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
