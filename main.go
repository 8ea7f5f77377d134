package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Yasmir01/CRM-Platform-clean-sub004/config"
	"github.com/Yasmir01/CRM-Platform-clean-sub004/controllers"
	"github.com/Yasmir01/CRM-Platform-clean-sub004/middleware"
	"github.com/Yasmir01/CRM-Platform-clean-sub004/models"
	"github.com/Yasmir01/CRM-Platform-clean-sub004/services"
)

func main() {
	// Basic logging
	log.Println("Starting Property Office messaging API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Thread{},
		&models.Participant{},
		&models.Message{},
		&models.Attachment{},
		&models.ReadReceipt{},
		&models.Notification{},
		&models.Escalation{},
		&models.ThreadArchive{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Wire the messaging services and notification transports. Unconfigured
	// transports simply disable their channel.
	services.InitMessaging(cfg)
	if !cfg.EmailConfigured() {
		log.Println("SendGrid not configured, email notifications disabled")
	}
	if !cfg.SMSConfigured() {
		log.Println("Twilio not configured, SMS notifications disabled")
	}

	// Initialize S3 for attachment storage
	if cfg.AWSS3Bucket != "" {
		if _, err := services.InitS3Service(); err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
	} else {
		log.Println("AWS_S3_BUCKET not set, attachment uploads disabled")
	}

	// Initialize Gin router
	router := gin.Default()
	router.Use(cors.Default())

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		authorized := v1.Group("")
		authorized.Use(middleware.EnsureValidToken(cfg))
		{
			authorized.POST("/users", controllers.CreateUser)
			authorized.GET("/users/me", controllers.GetCurrentUser)

			authorized.POST("/threads", controllers.CreateThread)
			authorized.GET("/threads", controllers.ListThreads)
			authorized.GET("/threads/:id", controllers.GetThread)
			authorized.POST("/threads/:id/messages", controllers.PostMessage)
			authorized.POST("/threads/:id/messages/:messageId/read", controllers.MarkMessageRead)
			authorized.POST("/threads/:id/escalate", controllers.EscalateThread)
			authorized.POST("/threads/:id/archive", controllers.ArchiveThread)

			authorized.POST("/messages/:id/attachments", controllers.AttachFile)

			authorized.GET("/notifications", controllers.ListNotifications)
			authorized.POST("/notifications/:id/read", controllers.MarkNotificationRead)
		}
	}

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Property Office messaging API is running",
	})
}
