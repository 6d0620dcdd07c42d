package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountSetting struct {
	ID                         string     `gorm:"primaryKey" json:"id"`
	UserID                     string     `gorm:"uniqueIndex;not null" json:"user_id"`
	OrderMessageNotifications  bool       `gorm:"default:true" json:"order_message_notifications"`
	OrderActivityNotifications bool       `gorm:"default:true" json:"order_activity_notifications"`
	DoNotDisturbEnabled        bool       `json:"do_not_disturb_enabled"`
	DoNotDisturbFrom           *time.Time `json:"do_not_disturb_from,omitempty"`
	DoNotDisturbTo             *time.Time `json:"do_not_disturb_to,omitempty"`
	CreatedAt                  time.Time  `json:"created_at"`
	UpdatedAt                  time.Time  `json:"updated_at"`
}

func (s *AccountSetting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
