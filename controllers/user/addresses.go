package userControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sellerhub/marketplace-api/middleware"
	"github.com/sellerhub/marketplace-api/models"
	"github.com/sellerhub/marketplace-api/utils"
	"gorm.io/gorm"
)

type CreateAddressRequest struct {
	Label         string `json:"label"`
	ContactName   string `json:"contact_name"`
	ContactNumber string `json:"contact_number"`
	AddressLine1  string `json:"address_line1" binding:"required"`
	AddressLine2  string `json:"address_line2"`
	City          string `json:"city"`
	State         string `json:"state"`
	Pincode       string `json:"pincode"`
	Landmark      string `json:"landmark"`
	IsDefault     bool   `json:"is_default"`
}

type UpdateAddressRequest struct {
	Label         *string `json:"label"`
	ContactName   *string `json:"contact_name"`
	ContactNumber *string `json:"contact_number"`
	AddressLine1  *string `json:"address_line1"`
	AddressLine2  *string `json:"address_line2"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	Pincode       *string `json:"pincode"`
	Landmark      *string `json:"landmark"`
	IsDefault     *bool   `json:"is_default"`
}

// ListAddresses returns the user's addresses, newest first.
func ListAddresses(db *gorm.DB, userID string) ([]models.UserAddress, error) {
	var addresses []models.UserAddress
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// CreateAddress inserts an address; marking it default clears the previous
// default in the same transaction.
func CreateAddress(db *gorm.DB, userID string, req CreateAddressRequest) (*models.UserAddress, error) {
	address := models.UserAddress{
		UserID:        userID,
		Label:         req.Label,
		ContactName:   req.ContactName,
		ContactNumber: req.ContactNumber,
		AddressLine1:  req.AddressLine1,
		AddressLine2:  req.AddressLine2,
		City:          req.City,
		State:         req.State,
		Pincode:       req.Pincode,
		Landmark:      req.Landmark,
		IsDefault:     req.IsDefault,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := tx.Model(&models.UserAddress{}).
				Where("user_id = ?", userID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// UpdateAddress patches an owned address, keeping at most one default.
func UpdateAddress(db *gorm.DB, userID, addressID string, req UpdateAddressRequest) (*models.UserAddress, error) {
	address, err := ownedAddress(db, userID, addressID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Label != nil {
		updates["label"] = *req.Label
	}
	if req.ContactName != nil {
		updates["contact_name"] = *req.ContactName
	}
	if req.ContactNumber != nil {
		updates["contact_number"] = *req.ContactNumber
	}
	if req.AddressLine1 != nil {
		updates["address_line1"] = *req.AddressLine1
	}
	if req.AddressLine2 != nil {
		updates["address_line2"] = *req.AddressLine2
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.State != nil {
		updates["state"] = *req.State
	}
	if req.Pincode != nil {
		updates["pincode"] = *req.Pincode
	}
	if req.Landmark != nil {
		updates["landmark"] = *req.Landmark
	}
	if req.IsDefault != nil {
		updates["is_default"] = *req.IsDefault
	}

	if len(updates) == 0 {
		return address, nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault != nil && *req.IsDefault {
			if err := tx.Model(&models.UserAddress{}).
				Where("user_id = ?", userID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Model(address).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

// DeleteAddress removes an owned address.
func DeleteAddress(db *gorm.DB, userID, addressID string) error {
	address, err := ownedAddress(db, userID, addressID)
	if err != nil {
		return err
	}
	return db.Delete(address).Error
}

func ownedAddress(db *gorm.DB, userID, addressID string) (*models.UserAddress, error) {
	var address models.UserAddress
	err := db.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundf("address not found")
		}
		return nil, err
	}
	return &address, nil
}

// -------- Handlers --------

// GET /users/me/addresses
func ListAddressesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		addresses, err := ListAddresses(db, middleware.UserID(c))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, addresses)
	}
}

// POST /users/me/addresses
func CreateAddressHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateAddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		address, err := CreateAddress(db, middleware.UserID(c), req)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, address)
	}
}

// PUT /users/me/addresses/:address_id
func UpdateAddressHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateAddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		address, err := UpdateAddress(db, middleware.UserID(c), c.Param("address_id"), req)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, address)
	}
}

// DELETE /users/me/addresses/:address_id
func DeleteAddressHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := DeleteAddress(db, middleware.UserID(c), c.Param("address_id")); err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
	}
}
