package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sellerhub/marketplace-api/middleware"
	"github.com/sellerhub/marketplace-api/models"
	"github.com/sellerhub/marketplace-api/utils"
	"gorm.io/gorm"
)

type CreateHelpRequestRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// CreateHelpRequest files a support ticket for the user.
func CreateHelpRequest(db *gorm.DB, userID string, req CreateHelpRequestRequest) (*models.HelpRequest, error) {
	helpRequest := models.HelpRequest{
		UserID:  userID,
		Subject: req.Subject,
		Message: req.Message,
		Status:  models.HelpRequestStatusOpen,
	}
	if err := db.Create(&helpRequest).Error; err != nil {
		return nil, err
	}
	return &helpRequest, nil
}

// ListHelpRequests returns the user's tickets, newest first.
func ListHelpRequests(db *gorm.DB, userID string) ([]models.HelpRequest, error) {
	var requests []models.HelpRequest
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// POST /users/me/help-requests
func CreateHelpRequestHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateHelpRequestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		helpRequest, err := CreateHelpRequest(db, middleware.UserID(c), req)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpRequest)
	}
}

// GET /users/me/help-requests
func ListHelpRequestsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requests, err := ListHelpRequests(db, middleware.UserID(c))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, requests)
	}
}
