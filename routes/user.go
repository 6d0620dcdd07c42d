package routes

import (
	"github.com/gin-gonic/gin"
	notificationControllers "github.com/sellerhub/marketplace-api/controllers/notification"
	productcontroller "github.com/sellerhub/marketplace-api/controllers/product"
	userControllers "github.com/sellerhub/marketplace-api/controllers/user"
	"github.com/sellerhub/marketplace-api/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers profile, product, and notification endpoints.
// Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	// ──────────────── User Profile ────────────────
	userGroup := r.Group("/users")
	userGroup.Use(middleware.ValidateToken)
	{
		userGroup.GET("/", userControllers.GetAllUsersHandler(db))
		userGroup.GET("/me", userControllers.GetProfileHandler(db))
		userGroup.PUT("/me", userControllers.UpdateProfileHandler(db))

		addressGroup := userGroup.Group("/me/addresses")
		{
			addressGroup.GET("", userControllers.ListAddressesHandler(db))
			addressGroup.POST("", userControllers.CreateAddressHandler(db))
			addressGroup.PUT("/:address_id", userControllers.UpdateAddressHandler(db))
			addressGroup.DELETE("/:address_id", userControllers.DeleteAddressHandler(db))
		}

		userGroup.GET("/me/settings", userControllers.GetSettingsHandler(db))
		userGroup.PUT("/me/settings", userControllers.UpdateSettingsHandler(db))

		userGroup.POST("/me/help-requests", userControllers.CreateHelpRequestHandler(db))
		userGroup.GET("/me/help-requests", userControllers.ListHelpRequestsHandler(db))
	}

	// ──────────────── Products ────────────────
	productGroup := r.Group("/products")
	{
		// Public product detail
		productGroup.GET("/:id", productcontroller.GetHandler(db))

		protected := productGroup.Group("")
		protected.Use(middleware.ValidateToken)
		{
			protected.POST("", productcontroller.CreateHandler(db))
			protected.GET("", productcontroller.ListMineHandler(db))
			protected.GET("/export", productcontroller.ExportToExcelHandler(db))
			protected.GET("/seller/:seller_id", productcontroller.ListBySellerHandler(db))
			protected.PUT("/:id", productcontroller.UpdateHandler(db))
			protected.DELETE("/:id", productcontroller.DeleteHandler(db))
		}
	}

	// ──────────────── Notifications ────────────────
	notificationGroup := r.Group("/notifications")
	notificationGroup.Use(middleware.ValidateToken)
	{
		notificationGroup.GET("", notificationControllers.ListHandler(db))
		notificationGroup.GET("/ws", notificationControllers.StreamHandler)
		notificationGroup.PUT("/read-all", notificationControllers.MarkAllAsReadHandler(db))
		notificationGroup.PUT("/:id/read", notificationControllers.MarkAsReadHandler(db))
	}
}
