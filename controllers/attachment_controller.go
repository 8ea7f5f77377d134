package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yasmir01/CRM-Platform-clean-sub004/services"
	"github.com/Yasmir01/CRM-Platform-clean-sub004/utils"
)

// AttachFile handles POST /api/v1/messages/:id/attachments - uploads a file
// and records it on the message. The stored reference is the opaque S3 key;
// clients get a short-lived presigned URL for download.
func AttachFile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	messageID, ok := pathID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.PureJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "A file is required",
			},
		})
		return
	}

	if err := utils.ValidateAttachmentFile(fileHeader); err != nil {
		fileErr, ok := err.(*utils.FileUploadError)
		code := "INVALID_FILE"
		if ok {
			code = fileErr.Code
		}
		c.PureJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	s3Service := services.GetS3Service()
	if s3Service == nil {
		c.PureJSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_UNAVAILABLE",
				"message": "File storage is not configured",
			},
		})
		return
	}

	s3Key, err := s3Service.UploadFile(fileHeader)
	if err != nil {
		log.Printf("Failed to upload attachment: %v", err)
		c.PureJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Failed to upload file",
			},
		})
		return
	}

	fileType := utils.AttachmentContentType(fileHeader.Filename)
	attachment, err := services.GetMessaging().Messages.AttachFile(messageID, user.ID, s3Key, fileType, fileHeader.Filename)
	if err != nil {
		// The upload is orphaned if the record cannot be created; clean it up.
		if deleteErr := s3Service.DeleteFile(s3Key); deleteErr != nil {
			log.Printf("Failed to clean up orphaned attachment %s: %v", s3Key, deleteErr)
		}
		handleServiceError(c, err, "MESSAGE_NOT_FOUND")
		return
	}

	if url, urlErr := s3Service.GetPresignedURL(s3Key); urlErr == nil {
		attachment.FileURL = url
	}

	c.PureJSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    attachment,
	})
}
