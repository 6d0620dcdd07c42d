package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sellerhub/marketplace-api/middleware"
	"github.com/sellerhub/marketplace-api/models"
	"github.com/sellerhub/marketplace-api/utils"
	"gorm.io/gorm"
)

// -------- Request Structs --------

type CheckoutRequest struct {
	CartItemIDs []string `json:"cart_item_ids"` // empty means the whole cart
	BuyerNote   string   `json:"buyer_note"`
}

type AddActivityRequest struct {
	Message string `json:"message" binding:"required"`
}

type ListByRoleResponse struct {
	BuyerOrders  []*OrderResponse `json:"buyer_orders"`
	SellerOrders []*OrderResponse `json:"seller_orders"`
}

// LoadOrder fetches one order with items, previews and the activity
// timeline.
func LoadOrder(db *gorm.DB, orderID string) (*models.Order, error) {
	var order models.Order
	err := withOrderPreloads(db).First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundf("order not found")
		}
		return nil, err
	}
	return &order, nil
}

func withOrderPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at ASC") }).
		Preload("Items.Product").
		Preload("Items.Seller").
		Preload("Activities", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at ASC") }).
		Preload("Activities.Author")
}

// -------- Core Logic --------

// Checkout turns selected cart lines into one order. Order creation and
// cart-line deletion happen in a single transaction; total and subtotals are
// snapshotted from the cart lines. The buyer and every distinct seller are
// notified after commit.
func Checkout(db *gorm.DB, userID string, req CheckoutRequest) (*OrderResponse, error) {
	var cart models.Cart
	err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) || len(cart.Items) == 0 {
		return nil, utils.BadRequestf("cart is empty")
	}

	items := cart.Items
	if len(req.CartItemIDs) > 0 {
		wanted := make(map[string]bool, len(req.CartItemIDs))
		for _, id := range req.CartItemIDs {
			wanted[id] = true
		}
		items = nil
		for _, item := range cart.Items {
			if wanted[item.ID] {
				items = append(items, item)
			}
		}
		if len(items) != len(req.CartItemIDs) {
			return nil, utils.BadRequestf("some cart items were not found")
		}
	}
	if len(items) == 0 {
		return nil, utils.BadRequestf("no cart items selected for checkout")
	}

	var total float64
	var orderItems []models.OrderItem
	var consumedIDs []string
	for _, item := range items {
		subtotal := float64(item.Quantity) * item.UnitPrice
		total += subtotal
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			SellerID:  item.SellerID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  subtotal,
		})
		consumedIDs = append(consumedIDs, item.ID)
	}

	order := models.Order{
		BuyerID:     userID,
		Status:      models.OrderStatusReceived,
		TotalAmount: total,
		BuyerNote:   req.BuyerNote,
		Items:       orderItems,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		// Consume the cart lines that became order items
		if err := tx.Where("id IN ?", consumedIDs).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	NotifyOrderCreated(db, &order)

	hydrated, err := LoadOrder(db, order.ID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(hydrated, userID), nil
}

// ListBuyerOrders returns the user's purchases, newest first.
func ListBuyerOrders(db *gorm.DB, userID string) ([]*OrderResponse, error) {
	var orders []models.Order
	if err := withOrderPreloads(db).
		Where("buyer_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return toResponses(orders, userID), nil
}

// ListSales returns orders containing at least one of the user's items.
func ListSales(db *gorm.DB, userID string) ([]*OrderResponse, error) {
	var orders []models.Order
	if err := withOrderPreloads(db).
		Where("id IN (?)", db.Model(&models.OrderItem{}).
			Select("order_id").
			Where("seller_id = ?", userID)).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return toResponses(orders, userID), nil
}

// ListByRole returns both sides at once.
func ListByRole(db *gorm.DB, userID string) (*ListByRoleResponse, error) {
	buyerOrders, err := ListBuyerOrders(db, userID)
	if err != nil {
		return nil, err
	}
	sellerOrders, err := ListSales(db, userID)
	if err != nil {
		return nil, err
	}
	return &ListByRoleResponse{BuyerOrders: buyerOrders, SellerOrders: sellerOrders}, nil
}

// GetOrder returns one order; only the buyer or a seller on it may look.
func GetOrder(db *gorm.DB, userID, orderID string) (*OrderResponse, error) {
	order, err := LoadOrder(db, orderID)
	if err != nil {
		return nil, err
	}
	if viewerContext, _ := ResolveViewerContext(order, userID); viewerContext == "" {
		return nil, utils.Forbiddenf("you do not have access to this order")
	}
	return ToOrderResponse(order, userID), nil
}

// AddActivity appends a remark to the order timeline. Buyers and sellers may
// both remark at any status; everyone else on the order is notified.
func AddActivity(db *gorm.DB, userID, orderID string, req AddActivityRequest) (*OrderResponse, error) {
	order, err := LoadOrder(db, orderID)
	if err != nil {
		return nil, err
	}
	if viewerContext, _ := ResolveViewerContext(order, userID); viewerContext == "" {
		return nil, utils.Forbiddenf("you do not have access to this order")
	}

	activity := models.OrderActivity{
		OrderID:  orderID,
		AuthorID: userID,
		Message:  req.Message,
	}
	if err := db.Create(&activity).Error; err != nil {
		return nil, err
	}

	NotifyRemark(db, order, userID, req.Message)

	refreshed, err := LoadOrder(db, orderID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(refreshed, userID), nil
}

func toResponses(orders []models.Order, viewerID string) []*OrderResponse {
	responses := make([]*OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i], viewerID))
	}
	return responses
}

// -------- Handlers --------

// POST /orders/checkout
func CheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		order, err := Checkout(db, middleware.UserID(c), req)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// GET /orders
func ListBuyerOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := ListBuyerOrders(db, middleware.UserID(c))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/sales
func ListSalesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := ListSales(db, middleware.UserID(c))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/all
func ListByRoleHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := ListByRole(db, middleware.UserID(c))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// GET /orders/:order_id
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := GetOrder(db, middleware.UserID(c), c.Param("order_id"))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// POST /orders/:order_id/activities
func AddActivityHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddActivityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		order, err := AddActivity(db, middleware.UserID(c), c.Param("order_id"), req)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}
