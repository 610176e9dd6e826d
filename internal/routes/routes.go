package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ai-doctor-server/internal/ai"
	"ai-doctor-server/internal/config"
	"ai-doctor-server/internal/handlers"
	"ai-doctor-server/internal/middleware"
)

// SetupRoutes configures all API routes for the application.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, aiClient *ai.Client) {
	authHandler := handlers.NewAuthHandler(db, cfg)
	historyHandler := handlers.NewMedicalHistoryHandler(db)
	consultationHandler := handlers.NewConsultationHandler(db, aiClient)
	fileHandler := handlers.NewFileHandler(db, cfg)
	timelineHandler := handlers.NewTimelineHandler(db)
	messageHandler := handlers.NewMessageHandler(db)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh-token", authHandler.RefreshToken)
	}

	// Protected routes
	private := api.Group("")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		private.POST("/auth/logout", authHandler.Logout)
		private.GET("/auth/profile", authHandler.GetProfile)
		private.PUT("/auth/profile", authHandler.UpdateProfile)

		users := private.Group("/users/me")
		{
			users.GET("/medical-history", historyHandler.Get)
			users.PUT("/medical-history", historyHandler.Update)
		}

		consultations := private.Group("/consultations")
		{
			consultations.POST("", consultationHandler.Create)
			consultations.GET("", consultationHandler.List)
			consultations.GET("/:id", consultationHandler.Get)
			consultations.POST("/:id/symptoms", consultationHandler.SubmitSymptoms)
			consultations.POST("/:id/complete", consultationHandler.Complete)
			consultations.POST("/:id/cancel", consultationHandler.Cancel)
			consultations.POST("/:id/analyze", consultationHandler.Analyze)
			consultations.POST("/:id/screening", consultationHandler.Screen)
			consultations.GET("/:id/analyses", consultationHandler.ListAnalyses)
			consultations.GET("/:id/report", consultationHandler.GetReport)

			consultations.POST("/:id/files", fileHandler.Upload)
			consultations.GET("/:id/files", fileHandler.List)
			consultations.GET("/:id/files/:fileId/download", fileHandler.Download)

			consultations.POST("/:id/timeline", timelineHandler.Add)
			consultations.GET("/:id/timeline", timelineHandler.List)

			consultations.POST("/:id/messages", messageHandler.Send)
			consultations.GET("/:id/messages", messageHandler.List)
		}
	}
}
