package cartControllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hassaan1220/Ecommerce-Shopsy/auth"
	"github.com/hassaan1220/Ecommerce-Shopsy/middleware"
	"github.com/hassaan1220/Ecommerce-Shopsy/models"
)

const testSecret = "test-secret"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{}))
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) (models.Product, models.Product) {
	t.Helper()
	widget := models.Product{Name: "Widget", Price: 9.99}
	gadget := models.Product{Name: "Gadget", Price: 5.00}
	require.NoError(t, db.Create(&widget).Error)
	require.NoError(t, db.Create(&gadget).Error)
	return widget, gadget
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{FirstName: "Test", Email: email, Role: "user"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// Repeated adds for the same product end up in one row with the summed
// quantity.
func TestAddToCartAccumulates(t *testing.T) {
	db := setupTestDB(t)
	widget, _ := seedCatalog(t, db)
	user := seedUser(t, db, "cart@example.com")

	require.NoError(t, AddToCart(db, user.ID, widget.ProductID, 2))
	require.NoError(t, AddToCart(db, user.ID, widget.ProductID, 3))

	var items []models.CartItem
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

// Two simultaneous adds for the same (user, product) pair must converge on
// a single row with the summed quantity: the upsert is atomic, not
// read-then-branch.
func TestAddToCartConcurrent(t *testing.T) {
	db := setupTestDB(t)
	widget, _ := seedCatalog(t, db)
	user := seedUser(t, db, "race@example.com")

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- AddToCart(db, user.ID, widget.ProductID, 1)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var items []models.CartItem
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddToCartClampsQuantity(t *testing.T) {
	db := setupTestDB(t)
	widget, _ := seedCatalog(t, db)
	user := seedUser(t, db, "clamp@example.com")

	require.NoError(t, AddToCart(db, user.ID, widget.ProductID, 0))
	require.NoError(t, AddToCart(db, user.ID, widget.ProductID, -4))

	var item models.CartItem
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&item).Error)
	assert.Equal(t, 2, item.Quantity)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "ghost@example.com")

	err := AddToCart(db, user.ID, 999, 1)
	assert.ErrorIs(t, err, models.ErrProductNotFound)
}

// Deleting an absent or foreign-owned line is a silent no-op.
func TestRemoveFromCartIdempotent(t *testing.T) {
	db := setupTestDB(t)
	widget, _ := seedCatalog(t, db)
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")

	require.NoError(t, AddToCart(db, owner.ID, widget.ProductID, 1))
	var line models.CartItem
	require.NoError(t, db.Where("user_id = ?", owner.ID).First(&line).Error)

	// Foreign-owned: no-op, owner's line survives.
	require.NoError(t, RemoveFromCart(db, other.ID, line.CartID))
	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.EqualValues(t, 1, count)

	// Owner delete removes it; a second delete is still no error.
	require.NoError(t, RemoveFromCart(db, owner.ID, line.CartID))
	require.NoError(t, RemoveFromCart(db, owner.ID, line.CartID))
	db.Model(&models.CartItem{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestGetCartLinesTotals(t *testing.T) {
	db := setupTestDB(t)
	widget, gadget := seedCatalog(t, db)
	user := seedUser(t, db, "totals@example.com")

	require.NoError(t, AddToCart(db, user.ID, widget.ProductID, 2))
	require.NoError(t, AddToCart(db, user.ID, gadget.ProductID, 1))

	lines, err := GetCartLines(db, user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Widget", lines[0].Name)
	assert.InDelta(t, 19.98, lines[0].Total, 0.001)
	assert.InDelta(t, 5.00, lines[1].Total, 0.001)
}

func TestAddToCartHandlerFlow(t *testing.T) {
	db := setupTestDB(t)
	widget, _ := seedCatalog(t, db)
	user := seedUser(t, db, "handler@example.com")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := r.Group("/", middleware.RequireAuth(testSecret))
	authed.POST("/add-to-cart/:id", AddToCartHandler(db))
	authed.GET("/removeItem/:id", RemoveItemHandler(db))

	token, err := auth.IssueToken(testSecret, &user)
	require.NoError(t, err)

	// Quantity field missing entirely: clamps to 1.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/add-to-cart/"+itoa(widget.ProductID), strings.NewReader(url.Values{}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))

	var item models.CartItem
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&item).Error)
	assert.Equal(t, 1, item.Quantity)
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
