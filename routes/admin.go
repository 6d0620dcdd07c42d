package routes

import (
	"github.com/gin-gonic/gin"
	adminControllers "github.com/sellerhub/marketplace-api/controllers/admin"
	"github.com/sellerhub/marketplace-api/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers the seller-scoped "/admin/orders/*" endpoints.
// Requires JWT middleware; every handler re-checks the caller sells on the
// order.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin/orders")
	adminGroup.Use(middleware.ValidateToken)
	{
		adminGroup.GET("/received", adminControllers.ListReceivedOrdersHandler(db))
		adminGroup.GET("/:order_id", adminControllers.GetOrderHandler(db))
		adminGroup.POST("/:order_id/accept", adminControllers.AcceptOrderHandler(db))
		adminGroup.PUT("/:order_id/status", adminControllers.UpdateOrderStatusHandler(db))
		adminGroup.POST("/:order_id/activities", adminControllers.AddOrderActivityHandler(db))
	}
}
