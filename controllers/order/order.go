package orderControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	cartControllers "github.com/hassaan1220/Ecommerce-Shopsy/controllers/cart"
	"github.com/hassaan1220/Ecommerce-Shopsy/middleware"
	"github.com/hassaan1220/Ecommerce-Shopsy/models"
	"github.com/hassaan1220/Ecommerce-Shopsy/pkg/logger"
)

type PlaceOrderRequest struct {
	FullName      string `form:"full_name" json:"full_name" binding:"required"`
	PhoneNumber   string `form:"phone_number" json:"phone_number" binding:"required"`
	Address       string `form:"address" json:"address" binding:"required"`
	City          string `form:"city" json:"city" binding:"required"`
	Province      string `form:"province" json:"province" binding:"required"`
	PaymentMethod string `form:"payment_method" json:"payment_method" binding:"required"`
}

// generateOrderRef builds a unique human-sortable order reference.
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// PlaceOrder turns the user's cart into an order. The whole sequence —
// read cart, compute total, insert order, insert order items, clear cart —
// runs in one transaction, so a failure anywhere leaves no partial order
// and the cart untouched. On Postgres the cart rows are locked for the
// duration, serialising concurrent checkouts for the same user; the loser
// then sees an empty cart.
func PlaceOrder(db *gorm.DB, userID uint, req PlaceOrderRequest) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		q := tx.Table("cart").
			Select("cart.cart_id, cart.product_id, products.name, products.price, cart.quantity").
			Joins("JOIN products ON products.product_id = cart.product_id").
			Where("cart.user_id = ?", userID).
			Order("cart.cart_id")
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "cart"}})
		}

		var lines []cartControllers.CartLine
		if err := q.Scan(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return models.ErrEmptyCart
		}

		var total float64
		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			total += line.Price * float64(line.Quantity)
			items = append(items, models.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     line.Price, // unit price snapshot
			})
		}

		order = models.Order{
			UserID:        userID,
			FullName:      req.FullName,
			PhoneNumber:   req.PhoneNumber,
			Address:       req.Address,
			City:          req.City,
			Province:      req.Province,
			TotalAmount:   total,
			PaymentMethod: req.PaymentMethod,
			OrderRef:      generateOrderRef(),
			Items:         items,
			CreatedAt:     time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GET /checkout
func CheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		lines, err := cartControllers.GetCartLines(db.WithContext(c.Request.Context()), userID)
		if err != nil {
			logger.Get().Error().Err(err).Msg("checkout read failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching the cart items"})
			return
		}

		var total float64
		for _, line := range lines {
			total += line.Total
		}

		c.JSON(http.StatusOK, gin.H{"cart_items": lines, "total": total})
	}
}

// POST /place-order
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		var req PlaceOrderRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if _, err := PlaceOrder(db.WithContext(c.Request.Context()), userID, req); err != nil {
			if errors.Is(err, models.ErrEmptyCart) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
				return
			}
			logger.Get().Error().Err(err).Msg("place order failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while placing the order"})
			return
		}

		c.Redirect(http.StatusSeeOther, "/")
	}
}

// GET /orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		var orders []models.Order
		if err := db.WithContext(c.Request.Context()).
			Preload("Items").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			logger.Get().Error().Err(err).Msg("fetch orders failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching user orders"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}
