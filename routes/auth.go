package routes

import (
	"github.com/gin-gonic/gin"
	authControllers "github.com/sellerhub/marketplace-api/controllers/auth"
	"github.com/sellerhub/marketplace-api/email"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, sender email.Sender) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authControllers.RegisterHandler(db, sender))
		authGroup.POST("/verify-email", authControllers.VerifyEmailHandler(db))
		authGroup.POST("/resend-verification", authControllers.ResendVerificationHandler(db, sender))
		authGroup.POST("/login", authControllers.LoginHandler(db))
		authGroup.POST("/login-otp/request", authControllers.RequestLoginOtpHandler(db, sender))
		authGroup.POST("/login-otp", authControllers.LoginWithOtpHandler(db))
	}
}
