package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/sellerhub/marketplace-api/controllers/cart"
	orderControllers "github.com/sellerhub/marketplace-api/controllers/order"
	"github.com/sellerhub/marketplace-api/middleware"
	"gorm.io/gorm"
)

// SetupOrderRoutes registers the cart and order endpoints. Requires JWT
// middleware.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	// ──────────────── Shopping Cart ────────────────
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.ValidateToken)
	{
		cartGroup.GET("", cartControllers.GetCartHandler(db))
		cartGroup.POST("/items", cartControllers.AddItemHandler(db))
		cartGroup.PUT("/items/:item_id", cartControllers.UpdateItemHandler(db))
		cartGroup.DELETE("/items/:item_id", cartControllers.RemoveItemHandler(db))
	}

	// ──────────────── Orders ────────────────
	orderGroup := r.Group("/orders")
	orderGroup.Use(middleware.ValidateToken)
	{
		orderGroup.POST("/checkout", orderControllers.CheckoutHandler(db))
		orderGroup.GET("", orderControllers.ListBuyerOrdersHandler(db))
		orderGroup.GET("/sales", orderControllers.ListSalesHandler(db))
		orderGroup.GET("/all", orderControllers.ListByRoleHandler(db))
		orderGroup.GET("/:order_id", orderControllers.GetOrderHandler(db))
		orderGroup.POST("/:order_id/activities", orderControllers.AddActivityHandler(db))
	}
}
