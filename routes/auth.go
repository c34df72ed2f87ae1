package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hassaan1220/Ecommerce-Shopsy/auth"
	"github.com/hassaan1220/Ecommerce-Shopsy/config"
	userControllers "github.com/hassaan1220/Ecommerce-Shopsy/controllers/user"
)

// SetupAuthRoutes registers signup, login, logout and the Google OAuth flow.
func SetupAuthRoutes(r *gin.Engine, cfg *config.Config, db *gorm.DB) {
	r.GET("/login", userControllers.LoginPageHandler())
	r.GET("/signup", userControllers.SignupPageHandler())
	r.POST("/signup", userControllers.SignupHandler(db))
	r.POST("/login", userControllers.LoginHandler(cfg, db))
	r.GET("/logout", userControllers.LogoutHandler(cfg))

	authGroup := r.Group("/auth")
	{
		authGroup.GET("/google", auth.GoogleLoginHandler(cfg))
		authGroup.GET("/google/callback", auth.GoogleCallbackHandler(cfg, db))
	}
}
