package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hassaan1220/Ecommerce-Shopsy/config"
	cartControllers "github.com/hassaan1220/Ecommerce-Shopsy/controllers/cart"
	productcontroller "github.com/hassaan1220/Ecommerce-Shopsy/controllers/product"
	userControllers "github.com/hassaan1220/Ecommerce-Shopsy/controllers/user"
	"github.com/hassaan1220/Ecommerce-Shopsy/middleware"
)

// SetupUserRoutes registers the catalog and the session-protected pages.
func SetupUserRoutes(r *gin.Engine, cfg *config.Config, db *gorm.DB) {
	// Public storefront
	r.GET("/", productcontroller.HomeHandler(cfg, db))
	r.GET("/products", productcontroller.GetProducts(db))

	protected := r.Group("/")
	protected.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		protected.GET("/dashboard", userControllers.DashboardHandler(db))
		protected.GET("/view-product/:id", productcontroller.GetProductByID(db))

		protected.GET("/cart", cartControllers.GetCartHandler(db))
		protected.POST("/add-to-cart/:id", cartControllers.AddToCartHandler(db))
		protected.GET("/removeItem/:id", cartControllers.RemoveItemHandler(db))
	}
}
