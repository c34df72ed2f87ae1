package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hassaan1220/Ecommerce-Shopsy/auth"
	"github.com/hassaan1220/Ecommerce-Shopsy/config"
	"github.com/hassaan1220/Ecommerce-Shopsy/models"
)

// HomeHandler serves the public storefront. A visitor carrying a valid
// session goes straight to the dashboard; everyone else gets the catalog.
func HomeHandler(cfg *config.Config, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(auth.SessionCookie); err == nil && raw != "" {
			if _, err := auth.VerifyToken(cfg.JWTSecret, raw); err == nil {
				c.Redirect(http.StatusSeeOther, "/dashboard")
				return
			}
		}

		var products []models.Product
		if err := db.WithContext(c.Request.Context()).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products, "is_logged_in": false})
	}
}
