package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hassaan1220/Ecommerce-Shopsy/config"
	orderControllers "github.com/hassaan1220/Ecommerce-Shopsy/controllers/order"
	"github.com/hassaan1220/Ecommerce-Shopsy/middleware"
)

// SetupOrderRoutes registers checkout and order history endpoints.
func SetupOrderRoutes(r *gin.Engine, cfg *config.Config, db *gorm.DB) {
	orders := r.Group("/")
	orders.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		orders.GET("/checkout", orderControllers.CheckoutHandler(db))
		orders.POST("/place-order", orderControllers.PlaceOrderHandler(db))
		orders.GET("/orders", orderControllers.GetUserOrdersHandler(db))
	}
}
