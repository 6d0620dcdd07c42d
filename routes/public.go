package routes

import (
	"github.com/gin-gonic/gin"
	browseControllers "github.com/sellerhub/marketplace-api/controllers/browse"
	uploadControllers "github.com/sellerhub/marketplace-api/controllers/upload"
	"github.com/sellerhub/marketplace-api/middleware"
	"github.com/sellerhub/marketplace-api/storage"
	"gorm.io/gorm"
)

// SetupPublicRoutes registers endpoints that need no authentication.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB) {
	browseGroup := r.Group("/browse")
	{
		browseGroup.GET("/sellers", browseControllers.GetSellersHandler(db))
	}
}

// SetupUploadRoutes registers the image upload endpoint. Requires JWT
// middleware.
func SetupUploadRoutes(r *gin.Engine, uploader storage.Uploader) {
	uploadGroup := r.Group("/uploads")
	uploadGroup.Use(middleware.ValidateToken)
	{
		uploadGroup.POST("", uploadControllers.Handler(uploader))
	}
}
