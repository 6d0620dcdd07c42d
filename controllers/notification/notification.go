package notificationControllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellerhub/marketplace-api/middleware"
	"github.com/sellerhub/marketplace-api/models"
	"github.com/sellerhub/marketplace-api/utils"
	"gorm.io/gorm"
)

// Input is one notification to insert: recipient plus type/title/message and
// optional order reference and metadata.
type Input struct {
	UserID   string
	Type     models.NotificationType
	Title    string
	Message  string
	OrderID  string
	Metadata map[string]interface{}
}

// Dispatch batch-inserts notification rows, one per input. No dedupe, no
// retry; a failed insert surfaces to the caller. Connected websocket clients
// are pushed to after the insert.
func Dispatch(db *gorm.DB, inputs []Input) error {
	if len(inputs) == 0 {
		return nil
	}

	rows := make([]models.Notification, 0, len(inputs))
	for _, in := range inputs {
		metadata := ""
		if in.Metadata != nil {
			raw, err := json.Marshal(in.Metadata)
			if err != nil {
				return err
			}
			metadata = string(raw)
		}
		rows = append(rows, models.Notification{
			UserID:   in.UserID,
			Type:     in.Type,
			Title:    in.Title,
			Message:  in.Message,
			OrderID:  in.OrderID,
			Metadata: metadata,
		})
	}

	if err := db.Create(&rows).Error; err != nil {
		return err
	}

	for i := range rows {
		pushToUser(rows[i].UserID, &rows[i])
	}
	return nil
}

// DispatchBestEffort logs a failed dispatch instead of propagating it. Used
// after a committed mutation, where the primary write is authoritative.
func DispatchBestEffort(db *gorm.DB, inputs []Input) {
	if err := Dispatch(db, inputs); err != nil {
		log.Printf("❌ Failed to dispatch %d notifications: %v", len(inputs), err)
	}
}

type ListQuery struct {
	Page   int
	Limit  int
	IsRead *bool
	Type   models.NotificationType
}

type ListResult struct {
	Data []models.Notification `json:"data"`
	Meta ListMeta              `json:"meta"`
}

type ListMeta struct {
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	UnreadCount int64 `json:"unread_count"`
}

// List returns a page of the user's notifications, newest first, with total
// and unread counts.
func List(db *gorm.DB, userID string, q ListQuery) (*ListResult, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 20
	}

	query := db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if q.IsRead != nil {
		query = query.Where("is_read = ?", *q.IsRead)
	}
	if q.Type != "" {
		query = query.Where("type = ?", q.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []models.Notification
	if err := query.
		Order("created_at DESC").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&items).Error; err != nil {
		return nil, err
	}

	var unread int64
	if err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&unread).Error; err != nil {
		return nil, err
	}

	if items == nil {
		items = []models.Notification{}
	}
	return &ListResult{
		Data: items,
		Meta: ListMeta{Total: total, Page: q.Page, Limit: q.Limit, UnreadCount: unread},
	}, nil
}

// MarkAsRead flips one owned notification to read. Idempotent.
func MarkAsRead(db *gorm.DB, userID, notificationID string) (*models.Notification, error) {
	var existing models.Notification
	err := db.Where("id = ? AND user_id = ?", notificationID, userID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundf("notification not found")
		}
		return nil, err
	}

	if existing.IsRead {
		return &existing, nil
	}

	now := time.Now()
	if err := db.Model(&existing).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": now,
	}).Error; err != nil {
		return nil, err
	}
	existing.IsRead = true
	existing.ReadAt = &now
	return &existing, nil
}

// MarkAllAsRead returns the number of rows flipped.
func MarkAllAsRead(db *gorm.DB, userID string) (int64, error) {
	result := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": time.Now()})
	return result.RowsAffected, result.Error
}

// -------- Handlers --------

func ListHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		q := ListQuery{}
		if v := c.Query("page"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				q.Page = n
			}
		}
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				q.Limit = n
			}
		}
		if v := c.Query("is_read"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid is_read"})
				return
			}
			q.IsRead = &b
		}
		if v := c.Query("type"); v != "" {
			q.Type = models.NotificationType(v)
		}

		result, err := List(db, userID, q)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func MarkAsReadHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		notification, err := MarkAsRead(db, middleware.UserID(c), c.Param("id"))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, notification)
	}
}

func MarkAllAsReadHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := MarkAllAsRead(db, middleware.UserID(c))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"marked_read": count})
	}
}
