package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HelpRequestStatus string

const (
	HelpRequestStatusOpen     HelpRequestStatus = "Open"
	HelpRequestStatusResolved HelpRequestStatus = "Resolved"
)

type HelpRequest struct {
	ID        string            `gorm:"primaryKey" json:"id"`
	UserID    string            `gorm:"index;not null" json:"user_id"`
	Subject   string            `gorm:"not null" json:"subject"`
	Message   string            `gorm:"not null" json:"message"`
	Status    HelpRequestStatus `gorm:"type:VARCHAR(20);default:'Open'" json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (h *HelpRequest) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
