package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                       string  `gorm:"primaryKey" json:"id"`
	Email                    string  `gorm:"uniqueIndex;not null" json:"email"`
	Password                 string  `gorm:"not null" json:"-"`
	Name                     string  `json:"name"`
	Phone                    string  `json:"phone"`
	Location                 string  `json:"location"`
	Bio                      string  `json:"bio"`
	ProfileURL               string  `json:"profile_url"`
	IsEmailVerified          bool    `json:"is_email_verified"`
	EmailVerificationCode    *string `json:"-"`
	EmailVerificationExpires *time.Time `json:"-"`
	LoginOtpCode             *string    `json:"-"`
	LoginOtpExpires          *time.Time `json:"-"`
	Products                 []Product  `gorm:"foreignKey:CreatorID" json:"products,omitempty"`
	Addresses                []UserAddress `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
