package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "Active"
	ProductStatusInactive ProductStatus = "Inactive"
	ProductStatusSold     ProductStatus = "Sold"
)

type Product struct {
	ID          string        `gorm:"primaryKey" json:"id"`
	CreatorID   string        `gorm:"index;not null" json:"creator_id"`
	Creator     *User         `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Name        string        `gorm:"not null" json:"name"`
	Description string        `json:"description"`
	Categories  string        `json:"categories"` // comma-joined category names
	Price       float64       `gorm:"not null" json:"price"`
	Quantity    int           `json:"quantity"`
	Unit        string        `json:"unit"`
	Images      string        `json:"images"` // comma-joined image URLs
	Status      ProductStatus `gorm:"type:VARCHAR(20);default:'Active'" json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
