package browseControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sellerhub/marketplace-api/models"
	"github.com/sellerhub/marketplace-api/utils"
	"gorm.io/gorm"
)

type Filters struct {
	Search string
	Page   int
	Limit  int
}

type ProductPreview struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Price      float64              `json:"price"`
	Categories string               `json:"categories"`
	Status     models.ProductStatus `json:"status"`
	ImageURL   string               `json:"image_url"`
}

type SellerResponse struct {
	SellerID     string           `json:"seller_id"`
	SellerName   string           `json:"seller_name"`
	BusinessName string           `json:"business_name"`
	ProfileURL   string           `json:"profile_url"`
	Location     string           `json:"location"`
	Pincode      string           `json:"pincode"`
	TopProducts  []ProductPreview `json:"top_products"`
	ProductCount int64            `json:"product_count"`
}

type sellerRow struct {
	models.User
	ProductCount int64
}

// GetSellers lists sellers with at least one active product, most-stocked
// storefronts first, each with up to three newest active listings.
func GetSellers(db *gorm.DB, filters Filters) ([]SellerResponse, error) {
	page := filters.Page
	if page <= 0 {
		page = 1
	}
	limit := filters.Limit
	if limit == 0 {
		limit = 12
	}
	if limit < 0 {
		return nil, utils.BadRequestf("limit must be greater than zero")
	}

	query := db.Model(&models.User{}).
		Select("users.*, COUNT(products.id) AS product_count").
		Joins("JOIN products ON products.creator_id = users.id AND products.status = ?", models.ProductStatusActive).
		Group("users.id")

	if search := strings.TrimSpace(filters.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(users.name) LIKE ? OR LOWER(users.bio) LIKE ? OR LOWER(users.location) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var rows []sellerRow
	if err := query.
		Order("product_count DESC, users.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	sellers := make([]SellerResponse, 0, len(rows))
	for _, row := range rows {
		var topProducts []models.Product
		if err := db.Where("creator_id = ? AND status = ?", row.ID, models.ProductStatusActive).
			Order("created_at DESC").
			Limit(3).
			Find(&topProducts).Error; err != nil {
			return nil, err
		}

		previews := make([]ProductPreview, 0, len(topProducts))
		for _, p := range topProducts {
			previews = append(previews, ProductPreview{
				ID:         p.ID,
				Name:       p.Name,
				Price:      p.Price,
				Categories: p.Categories,
				Status:     p.Status,
				ImageURL:   firstImage(p.Images),
			})
		}

		location := row.Location
		pincode := ""
		var primaryAddress models.UserAddress
		err := db.Where("user_id = ? AND is_default = ?", row.ID, true).
			Order("updated_at DESC").
			First(&primaryAddress).Error
		if err == nil {
			if location == "" {
				location = primaryAddress.City
			}
			pincode = primaryAddress.Pincode
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		businessName := row.Bio
		if businessName == "" {
			businessName = row.Name
		}

		sellers = append(sellers, SellerResponse{
			SellerID:     row.ID,
			SellerName:   row.Name,
			BusinessName: businessName,
			ProfileURL:   row.ProfileURL,
			Location:     location,
			Pincode:      pincode,
			TopProducts:  previews,
			ProductCount: row.ProductCount,
		})
	}
	return sellers, nil
}

func firstImage(images string) string {
	if images == "" {
		return ""
	}
	if idx := strings.Index(images, ","); idx >= 0 {
		return images[:idx]
	}
	return images
}

// -------- Handlers --------

// GET /browse/sellers (public)
func GetSellersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := Filters{Search: c.Query("search")}
		if v := c.Query("page"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page"})
				return
			}
			filters.Page = n
		}
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
				return
			}
			filters.Limit = n
		}

		sellers, err := GetSellers(db, filters)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, sellers)
	}
}
