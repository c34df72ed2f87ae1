package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hassaan1220/Ecommerce-Shopsy/config"
)

// SetupRoutes is the single entry-point that wires up the public, auth and
// protected route groups.
func SetupRoutes(r *gin.Engine, cfg *config.Config, db *gorm.DB) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, cfg, db)

	// Catalog + session-gated user routes
	SetupUserRoutes(r, cfg, db)

	// Cart checkout and order history
	SetupOrderRoutes(r, cfg, db)
}
