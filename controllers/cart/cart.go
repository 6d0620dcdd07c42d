package cartControllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellerhub/marketplace-api/middleware"
	"github.com/sellerhub/marketplace-api/models"
	"github.com/sellerhub/marketplace-api/utils"
	"gorm.io/gorm"
)

type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

type ItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	SellerID  string          `json:"seller_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice float64         `json:"unit_price"`
	LineTotal float64         `json:"line_total"`
	Product   *models.Product `json:"product,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type CartResponse struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	TotalItems  int            `json:"total_items"`
	TotalAmount float64        `json:"total_amount"`
	Items       []ItemResponse `json:"items"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// EnsureCart returns the user's cart, creating it on first access.
func EnsureCart(db *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	log.Printf("🛒 Creating cart for user %s", userID)
	cart = models.Cart{UserID: userID}
	if err := db.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetCart loads the cart with items and product previews.
func GetCart(db *gorm.DB, userID string) (*CartResponse, error) {
	cart, err := EnsureCart(db, userID)
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	if err := db.Preload("Product").
		Where("cart_id = ?", cart.ID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	return toCartResponse(cart, items), nil
}

// AddItem upserts a cart line for the product. An existing line gets its
// quantity incremented and its captured unit price refreshed to the
// product's current price; prices are only locked at checkout.
func AddItem(db *gorm.DB, userID string, req AddItemRequest) (*CartResponse, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundf("product not found")
		}
		return nil, err
	}

	if product.CreatorID == userID {
		return nil, utils.BadRequestf("you cannot purchase your own product")
	}
	if product.Status != models.ProductStatusActive {
		return nil, utils.BadRequestf("product is not available for purchase")
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, utils.BadRequestf("quantity must be at least 1")
	}

	cart, err := EnsureCart(db, userID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	err = db.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&item).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			SellerID:  product.CreatorID,
			Quantity:  quantity,
			UnitPrice: product.Price,
		}
		if err := db.Create(&item).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := db.Model(&item).Updates(map[string]interface{}{
			"quantity":   item.Quantity + quantity,
			"unit_price": product.Price,
			"seller_id":  product.CreatorID,
		}).Error; err != nil {
			return nil, err
		}
	}

	return GetCart(db, userID)
}

// UpdateItem overwrites a line's quantity; zero or less removes the line.
func UpdateItem(db *gorm.DB, userID, itemID string, req UpdateItemRequest) (*CartResponse, error) {
	item, err := ownedItem(db, userID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Quantity <= 0 {
		if err := db.Delete(item).Error; err != nil {
			return nil, err
		}
	} else {
		if err := db.Model(item).Update("quantity", req.Quantity).Error; err != nil {
			return nil, err
		}
	}

	return GetCart(db, userID)
}

// RemoveItem deletes a line from the user's cart.
func RemoveItem(db *gorm.DB, userID, itemID string) (*CartResponse, error) {
	item, err := ownedItem(db, userID, itemID)
	if err != nil {
		return nil, err
	}
	if err := db.Delete(item).Error; err != nil {
		return nil, err
	}
	return GetCart(db, userID)
}

// ownedItem fetches a cart item and checks it belongs to the user's cart.
func ownedItem(db *gorm.DB, userID, itemID string) (*models.CartItem, error) {
	var item models.CartItem
	err := db.Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundf("cart item not found")
		}
		return nil, err
	}
	return &item, nil
}

func toCartResponse(cart *models.Cart, items []models.CartItem) *CartResponse {
	resp := &CartResponse{
		ID:        cart.ID,
		UserID:    cart.UserID,
		Items:     make([]ItemResponse, 0, len(items)),
		CreatedAt: cart.CreatedAt,
		UpdatedAt: cart.UpdatedAt,
	}
	for _, item := range items {
		lineTotal := float64(item.Quantity) * item.UnitPrice
		resp.Items = append(resp.Items, ItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			SellerID:  item.SellerID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: lineTotal,
			Product:   item.Product,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		})
		resp.TotalItems += item.Quantity
		resp.TotalAmount += lineTotal
	}
	return resp
}

// -------- Handlers --------

// GET /cart
func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := GetCart(db, middleware.UserID(c))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// POST /cart/items
func AddItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		cart, err := AddItem(db, middleware.UserID(c), req)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, cart)
	}
}

// PUT /cart/items/:item_id
func UpdateItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		cart, err := UpdateItem(db, middleware.UserID(c), c.Param("item_id"), req)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// DELETE /cart/items/:item_id
func RemoveItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := RemoveItem(db, middleware.UserID(c), c.Param("item_id"))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}
