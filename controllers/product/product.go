package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sellerhub/marketplace-api/middleware"
	"github.com/sellerhub/marketplace-api/models"
	"github.com/sellerhub/marketplace-api/utils"
	"gorm.io/gorm"
)

type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Categories  string   `json:"categories"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Quantity    int      `json:"quantity" binding:"omitempty,min=0"`
	Unit        string   `json:"unit"`
	Images      []string `json:"images"`
}

type UpdateProductRequest struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Categories  *string               `json:"categories"`
	Price       *float64              `json:"price"`
	Quantity    *int                  `json:"quantity"`
	Unit        *string               `json:"unit"`
	Images      *[]string             `json:"images"`
	Status      *models.ProductStatus `json:"status"`
}

// Create registers a new listing owned by the caller.
func Create(db *gorm.DB, creatorID string, req CreateProductRequest) (*models.Product, error) {
	product := models.Product{
		CreatorID:   creatorID,
		Name:        req.Name,
		Description: req.Description,
		Categories:  req.Categories,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		Images:      joinImages(req.Images),
		Status:      models.ProductStatusActive,
	}
	if err := db.Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListByCreator returns a seller's listings.
func ListByCreator(db *gorm.DB, creatorID string) ([]models.Product, error) {
	var products []models.Product
	if err := db.Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Get returns one product with a creator preview. Public.
func Get(db *gorm.DB, productID string) (*models.Product, error) {
	var product models.Product
	err := db.Preload("Creator", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "profile_url", "location")
	}).First(&product, "id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundf("product not found")
		}
		return nil, err
	}
	return &product, nil
}

// Update edits a listing. A product owned by someone else reads as not
// found, same as an unknown id.
func Update(db *gorm.DB, productID, creatorID string, req UpdateProductRequest) (*models.Product, error) {
	product, err := ownedProduct(db, productID, creatorID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Categories != nil {
		updates["categories"] = *req.Categories
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, utils.BadRequestf("price must be greater than zero")
		}
		updates["price"] = *req.Price
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.Images != nil {
		updates["images"] = joinImages(*req.Images)
	}
	if req.Status != nil {
		switch *req.Status {
		case models.ProductStatusActive, models.ProductStatusInactive, models.ProductStatusSold:
		default:
			return nil, utils.BadRequestf("invalid product status")
		}
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := db.Model(product).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return product, nil
}

// Delete removes a listing the caller owns.
func Delete(db *gorm.DB, productID, creatorID string) error {
	product, err := ownedProduct(db, productID, creatorID)
	if err != nil {
		return err
	}
	return db.Delete(product).Error
}

func ownedProduct(db *gorm.DB, productID, creatorID string) (*models.Product, error) {
	var product models.Product
	err := db.Where("id = ? AND creator_id = ?", productID, creatorID).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundf("product not found")
		}
		return nil, err
	}
	return &product, nil
}

func joinImages(images []string) string {
	out := ""
	for i, img := range images {
		if i > 0 {
			out += ","
		}
		out += img
	}
	return out
}

// -------- Handlers --------

// POST /products
func CreateHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		product, err := Create(db, middleware.UserID(c), req)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// GET /products
func ListMineHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := ListByCreator(db, middleware.UserID(c))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /products/seller/:seller_id
func ListBySellerHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := ListByCreator(db, c.Param("seller_id"))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /products/:id
func GetHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := Get(db, c.Param("id"))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// PUT /products/:id
func UpdateHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		product, err := Update(db, c.Param("id"), middleware.UserID(c), req)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /products/:id
func DeleteHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := Delete(db, c.Param("id"), middleware.UserID(c)); err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
