package adminControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	orderControllers "github.com/sellerhub/marketplace-api/controllers/order"
	"github.com/sellerhub/marketplace-api/middleware"
	"github.com/sellerhub/marketplace-api/models"
	"github.com/sellerhub/marketplace-api/utils"
	"gorm.io/gorm"
)

// Seller-scoped order management. Every operation first checks the caller is
// a seller on at least one item of the order.

type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

func validStatus(status models.OrderStatus) bool {
	switch status {
	case models.OrderStatusReceived, models.OrderStatusAccepted, models.OrderStatusShipped,
		models.OrderStatusDelivered, models.OrderStatusCancelled:
		return true
	}
	return false
}

// ensureSellerAccess loads the order and fails unless the user sells on it.
func ensureSellerAccess(db *gorm.DB, orderID, userID string) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Items").First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundf("order not found")
		}
		return nil, err
	}

	for _, item := range order.Items {
		if item.SellerID == userID {
			return &order, nil
		}
	}
	return nil, utils.Forbiddenf("you do not have access to this order")
}

// ListReceivedOrders returns Received orders containing the seller's items.
func ListReceivedOrders(db *gorm.DB, userID string) ([]*orderControllers.OrderResponse, error) {
	var orders []models.Order
	err := db.
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at ASC") }).
		Preload("Items.Product").
		Preload("Activities", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at ASC") }).
		Preload("Activities.Author").
		Where("status = ?", models.OrderStatusReceived).
		Where("id IN (?)", db.Model(&models.OrderItem{}).
			Select("order_id").
			Where("seller_id = ?", userID)).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	responses := make([]*orderControllers.OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, orderControllers.ToOrderResponse(&orders[i], userID))
	}
	return responses, nil
}

// GetOrder returns one order after the seller-access check.
func GetOrder(db *gorm.DB, orderID, userID string) (*orderControllers.OrderResponse, error) {
	if _, err := ensureSellerAccess(db, orderID, userID); err != nil {
		return nil, err
	}
	order, err := orderControllers.LoadOrder(db, orderID)
	if err != nil {
		return nil, err
	}
	return orderControllers.ToOrderResponse(order, userID), nil
}

// AcceptOrder moves a Received order to Accepted. Any other starting status
// is rejected.
func AcceptOrder(db *gorm.DB, orderID, userID string) (*orderControllers.OrderResponse, error) {
	order, err := ensureSellerAccess(db, orderID, userID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusReceived {
		return nil, utils.BadRequestf("only received orders can be accepted")
	}
	return persistStatus(db, orderID, models.OrderStatusAccepted, userID)
}

// UpdateOrderStatus sets any valid status. No transition table is enforced
// beyond the accept precondition.
func UpdateOrderStatus(db *gorm.DB, orderID, userID string, status models.OrderStatus) (*orderControllers.OrderResponse, error) {
	if !validStatus(status) {
		return nil, utils.BadRequestf("invalid order status")
	}
	if _, err := ensureSellerAccess(db, orderID, userID); err != nil {
		return nil, err
	}
	return persistStatus(db, orderID, status, userID)
}

// AddOrderActivity appends a seller remark, same effect as the buyer path.
func AddOrderActivity(db *gorm.DB, orderID, userID, message string) (*orderControllers.OrderResponse, error) {
	if _, err := ensureSellerAccess(db, orderID, userID); err != nil {
		return nil, err
	}
	return orderControllers.AddActivity(db, userID, orderID, orderControllers.AddActivityRequest{Message: message})
}

func persistStatus(db *gorm.DB, orderID string, status models.OrderStatus, actorID string) (*orderControllers.OrderResponse, error) {
	if err := db.Model(&models.Order{}).Where("id = ?", orderID).
		Update("status", status).Error; err != nil {
		return nil, err
	}

	order, err := orderControllers.LoadOrder(db, orderID)
	if err != nil {
		return nil, err
	}

	orderControllers.NotifyStatusChange(db, order, actorID)

	return orderControllers.ToOrderResponse(order, actorID), nil
}

// -------- Handlers --------

// GET /admin/orders/received
func ListReceivedOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := ListReceivedOrders(db, middleware.UserID(c))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /admin/orders/:order_id
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := GetOrder(db, c.Param("order_id"), middleware.UserID(c))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// POST /admin/orders/:order_id/accept
func AcceptOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := AcceptOrder(db, c.Param("order_id"), middleware.UserID(c))
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /admin/orders/:order_id/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		order, err := UpdateOrderStatus(db, c.Param("order_id"), middleware.UserID(c), req.Status)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// POST /admin/orders/:order_id/activities
func AddOrderActivityHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderControllers.AddActivityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		order, err := AddOrderActivity(db, c.Param("order_id"), middleware.UserID(c), req.Message)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}
