package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hassaan1220/Ecommerce-Shopsy/middleware"
	"github.com/hassaan1220/Ecommerce-Shopsy/models"
	"github.com/hassaan1220/Ecommerce-Shopsy/pkg/logger"
)

// CartLine is one cart row joined with the current catalog entry.
type CartLine struct {
	CartID    uint    `json:"cart_id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}

// AddToCart accumulates quantity into the user's cart line for a product.
// A single upsert keeps one row per (user, product) even under concurrent
// adds. Quantity is clamped to 1 when non-positive.
func AddToCart(db *gorm.DB, userID, productID uint, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrProductNotFound
		}
		return err
	}

	item := models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now(),
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart.quantity + excluded.quantity"),
			"added_at": time.Now(),
		}),
	}).Create(&item).Error
}

// RemoveFromCart deletes a cart line if it belongs to the user. Removing an
// absent or foreign-owned line is a silent no-op.
func RemoveFromCart(db *gorm.DB, userID, cartID uint) error {
	return db.Where("user_id = ? AND cart_id = ?", userID, cartID).
		Delete(&models.CartItem{}).Error
}

// GetCartLines reads the user's cart joined with current product name and
// price, one total per line.
func GetCartLines(db *gorm.DB, userID uint) ([]CartLine, error) {
	var lines []CartLine
	err := db.Table("cart").
		Select("cart.cart_id, cart.product_id, products.name, products.price, cart.quantity, products.price * cart.quantity AS total").
		Joins("JOIN products ON products.product_id = cart.product_id").
		Where("cart.user_id = ?", userID).
		Order("cart.cart_id").
		Scan(&lines).Error
	return lines, err
}

// POST /add-to-cart/:id
func AddToCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		productID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		// Missing or junk quantity means one.
		quantity, err := strconv.Atoi(c.PostForm("quantity"))
		if err != nil {
			quantity = 1
		}

		if err := AddToCart(db.WithContext(c.Request.Context()), userID, uint(productID), quantity); err != nil {
			if errors.Is(err, models.ErrProductNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			logger.Get().Error().Err(err).Msg("add to cart failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database Error"})
			return
		}

		c.Redirect(http.StatusSeeOther, "/cart")
	}
}

// GET /removeItem/:id
func RemoveItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		cartID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item ID"})
			return
		}

		if err := RemoveFromCart(db.WithContext(c.Request.Context()), userID, uint(cartID)); err != nil {
			logger.Get().Error().Err(err).Msg("remove cart item failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while deleting the product"})
			return
		}

		c.Redirect(http.StatusSeeOther, "/cart")
	}
}

// GET /cart
func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		lines, err := GetCartLines(db.WithContext(c.Request.Context()), userID)
		if err != nil {
			logger.Get().Error().Err(err).Msg("fetch cart failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching the cart items"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"cart_items": lines})
	}
}
