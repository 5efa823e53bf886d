package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techshop/techshop-api/initializers"
	"github.com/techshop/techshop-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Category{},
		&models.Notebook{},
		&models.Smartphone{},
		&models.SmartTV{},
		&models.Headphones{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
	))

	initializers.DB = db
	return db
}

// asCustomer stands in for the auth middleware in handler tests.
func asCustomer(customer *models.Customer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set("customer", customer)
		ctx.Next()
	}
}

func storefrontRouter(customer *models.Customer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))

	group := router.Group("/", asCustomer(customer))
	{
		group.GET("/cart", GetCart)
		group.GET("/add_to_cart/:productType/:slug", AddToCart)
		group.POST("/change_quantity/:productType/:slug", ChangeQuantity)
		group.GET("/delete_from_cart/:productType/:slug", DeleteFromCart)
		group.GET("/checkout", GetCheckout)
		group.POST("/make_order", MakeOrder)
	}
	return router
}

func seedStore(t *testing.T, db *gorm.DB) (*models.Customer, models.Notebook) {
	t.Helper()

	category := models.Category{Name: "Notebooks", Slug: "notebooks"}
	require.NoError(t, db.Create(&category).Error)

	notebook := models.Notebook{
		ProductBase: models.ProductBase{
			CategoryID:  category.ID,
			Slug:        "pixelbook",
			Title:       "Pixelbook",
			Description: "A notebook",
			Price:       1000,
		},
	}
	require.NoError(t, db.Create(&notebook).Error)

	user := models.User{Username: "shopper", Email: "shopper@example.com", Role: "user", AccountActivated: true}
	require.NoError(t, db.Create(&user).Error)
	customer := models.Customer{UserID: user.ID}
	require.NoError(t, db.Create(&customer).Error)

	return &customer, notebook
}

func TestAddToCartRedirectsAndCreatesLine(t *testing.T) {
	db := setupTestDB(t)
	customer, _ := seedStore(t, db)
	router := storefrontRouter(customer)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/add_to_cart/notebook/pixelbook", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/cart", recorder.Header().Get("Location"))

	var cart models.Cart
	require.NoError(t, db.Where("customer_id = ?", customer.ID).First(&cart).Error)
	assert.Equal(t, uint(1), cart.TotalProducts)
	assert.Equal(t, 1000.0, cart.FinalPrice)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	customer, _ := seedStore(t, db)
	router := storefrontRouter(customer)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/add_to_cart/notebook/does-not-exist", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusFound, recorder.Code)

	var lines int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&lines).Error)
	assert.Equal(t, int64(0), lines)
}

func TestChangeQuantityFlow(t *testing.T) {
	db := setupTestDB(t)
	customer, notebook := seedStore(t, db)
	router := storefrontRouter(customer)

	cart, err := models.OpenCartForCustomer(db, customer.ID)
	require.NoError(t, err)
	_, _, err = models.AddCartItem(db, cart, models.TypeNotebook, notebook.ID)
	require.NoError(t, err)

	form := url.Values{"quantity": {"3"}}
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/change_quantity/notebook/pixelbook", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusFound, recorder.Code)

	var got models.Cart
	require.NoError(t, db.First(&got, cart.ID).Error)
	assert.Equal(t, 3000.0, got.FinalPrice)
	assert.Equal(t, uint(3), got.TotalProducts)
}

func TestChangeQuantityRejectsZero(t *testing.T) {
	db := setupTestDB(t)
	customer, notebook := seedStore(t, db)
	router := storefrontRouter(customer)

	cart, err := models.OpenCartForCustomer(db, customer.ID)
	require.NoError(t, err)
	_, _, err = models.AddCartItem(db, cart, models.TypeNotebook, notebook.ID)
	require.NoError(t, err)

	form := url.Values{"quantity": {"0"}}
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/change_quantity/notebook/pixelbook", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusFound, recorder.Code)

	var got models.Cart
	require.NoError(t, db.First(&got, cart.ID).Error)
	assert.Equal(t, uint(1), got.TotalProducts)
	assert.Equal(t, 1000.0, got.FinalPrice)
}

func TestDeleteFromCartFlow(t *testing.T) {
	db := setupTestDB(t)
	customer, notebook := seedStore(t, db)
	router := storefrontRouter(customer)

	cart, err := models.OpenCartForCustomer(db, customer.ID)
	require.NoError(t, err)
	_, _, err = models.AddCartItem(db, cart, models.TypeNotebook, notebook.ID)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/delete_from_cart/notebook/pixelbook", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusFound, recorder.Code)

	var got models.Cart
	require.NoError(t, db.First(&got, cart.ID).Error)
	assert.Equal(t, uint(0), got.TotalProducts)
	assert.Equal(t, 0.0, got.FinalPrice)
}

func TestGetCartPayload(t *testing.T) {
	db := setupTestDB(t)
	customer, notebook := seedStore(t, db)
	router := storefrontRouter(customer)

	cart, err := models.OpenCartForCustomer(db, customer.ID)
	require.NoError(t, err)
	_, _, err = models.AddCartItem(db, cart, models.TypeNotebook, notebook.ID)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/cart", nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var payload struct {
		Cart       models.Cart           `json:"cart"`
		Items      []models.CartLineView `json:"items"`
		Categories []models.CategoryCount `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))

	assert.Equal(t, 1000.0, payload.Cart.FinalPrice)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, "Pixelbook", payload.Items[0].Product.Title)
	require.Len(t, payload.Categories, 1)
	assert.Equal(t, int64(1), payload.Categories[0].Count)
}

func TestMakeOrderFlow(t *testing.T) {
	db := setupTestDB(t)
	customer, notebook := seedStore(t, db)
	router := storefrontRouter(customer)

	cart, err := models.OpenCartForCustomer(db, customer.ID)
	require.NoError(t, err)
	_, _, err = models.AddCartItem(db, cart, models.TypeNotebook, notebook.ID)
	require.NoError(t, err)

	form := url.Values{
		"first_name":    {"Ada"},
		"last_name":     {"Lovelace"},
		"phone":         {"+15550100"},
		"address":       {"12 Analytical Lane"},
		"order_type":    {"delivery"},
		"delivery_date": {"2026-09-15"},
		"comment":       {"Ring twice"},
	}
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/make_order", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/", recorder.Header().Get("Location"))

	var order models.Order
	require.NoError(t, db.Where("customer_id = ?", customer.ID).First(&order).Error)
	assert.Equal(t, models.StatusNew, order.Status)
	assert.Equal(t, cart.ID, order.CartID)

	var got models.Cart
	require.NoError(t, db.First(&got, cart.ID).Error)
	assert.True(t, got.InOrder)
}

func TestMakeOrderInvalidForm(t *testing.T) {
	db := setupTestDB(t)
	customer, _ := seedStore(t, db)
	router := storefrontRouter(customer)

	// Missing required shipping fields sends the shopper back to the
	// checkout form and leaves everything untouched.
	form := url.Values{"first_name": {"Ada"}}
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/make_order", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/checkout/", recorder.Header().Get("Location"))

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Equal(t, int64(0), orders)
}
