package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sellerhub/marketplace-api/email"
	"github.com/sellerhub/marketplace-api/storage"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, sender email.Sender, uploader storage.Uploader) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db, sender)

	// Public browse routes
	SetupPublicRoutes(r, db)

	// JWT-protected user-facing routes
	SetupUserRoutes(r, db)

	// Cart, checkout and order routes
	SetupOrderRoutes(r, db)

	// Seller admin order routes
	SetupAdminRoutes(r, db)

	// Upload routes
	SetupUploadRoutes(r, uploader)
}
