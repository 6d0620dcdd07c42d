package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeOrderStatus   NotificationType = "ORDER_STATUS"
	NotificationTypeOrderActivity NotificationType = "ORDER_ACTIVITY"
)

type Notification struct {
	ID        string           `gorm:"primaryKey" json:"id"`
	UserID    string           `gorm:"index;not null" json:"user_id"`
	Type      NotificationType `gorm:"type:VARCHAR(30);not null" json:"type"`
	Title     string           `gorm:"not null" json:"title"`
	Message   string           `gorm:"not null" json:"message"`
	OrderID   string           `json:"order_id,omitempty"`
	Metadata  string           `json:"metadata,omitempty"` // JSON-encoded extras
	IsRead    bool             `gorm:"index" json:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
