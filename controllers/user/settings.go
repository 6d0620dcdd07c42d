package userControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellerhub/marketplace-api/middleware"
	"github.com/sellerhub/marketplace-api/models"
	"github.com/sellerhub/marketplace-api/utils"
	"gorm.io/gorm"
)

type UpdateSettingsRequest struct {
	OrderMessageNotifications  *bool      `json:"order_message_notifications"`
	OrderActivityNotifications *bool      `json:"order_activity_notifications"`
	DoNotDisturbEnabled        *bool      `json:"do_not_disturb_enabled"`
	DoNotDisturbFrom           *time.Time `json:"do_not_disturb_from"`
	DoNotDisturbTo             *time.Time `json:"do_not_disturb_to"`
}

// GetSettings returns the user's settings, creating defaults on first read.
func GetSettings(db *gorm.DB, userID string) (*models.AccountSetting, error) {
	var settings models.AccountSetting
	err := db.Where("user_id = ?", userID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = models.AccountSetting{
		UserID:                     userID,
		OrderMessageNotifications:  true,
		OrderActivityNotifications: true,
	}
	if err := db.Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings patches the settings row. Enabling do-not-disturb requires
// both window bounds.
func UpdateSettings(db *gorm.DB, userID string, req UpdateSettingsRequest) (*models.AccountSetting, error) {
	if req.DoNotDisturbEnabled != nil && *req.DoNotDisturbEnabled &&
		(req.DoNotDisturbFrom == nil || req.DoNotDisturbTo == nil) {
		return nil, utils.BadRequestf("do_not_disturb_from and do_not_disturb_to are required when DND is enabled")
	}

	settings, err := GetSettings(db, userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.OrderMessageNotifications != nil {
		updates["order_message_notifications"] = *req.OrderMessageNotifications
	}
	if req.OrderActivityNotifications != nil {
		updates["order_activity_notifications"] = *req.OrderActivityNotifications
	}
	if req.DoNotDisturbEnabled != nil {
		updates["do_not_disturb_enabled"] = *req.DoNotDisturbEnabled
		if !*req.DoNotDisturbEnabled {
			updates["do_not_disturb_from"] = nil
			updates["do_not_disturb_to"] = nil
		}
	}
	if req.DoNotDisturbFrom != nil {
		updates["do_not_disturb_from"] = *req.DoNotDisturbFrom
	}
	if req.DoNotDisturbTo != nil {
		updates["do_not_disturb_to"] = *req.DoNotDisturbTo
	}

	if len(updates) == 0 {
		return settings, nil
	}
	if err := db.Model(settings).Updates(updates).Error; err != nil {
		return nil, err
	}

	return GetSettings(db, userID)
}

// -------- Handlers --------

// GET /users/me/settings
func GetSettingsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := GetSettings(db, middleware.UserID(c))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

// PUT /users/me/settings
func UpdateSettingsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateSettingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		settings, err := UpdateSettings(db, middleware.UserID(c), req)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}
