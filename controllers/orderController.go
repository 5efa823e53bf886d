package controllers

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/techshop/techshop-api/initializers"
	"github.com/techshop/techshop-api/models"
	"github.com/techshop/techshop-api/utils"
)

const (
	msgOrderPlaced = "Thank you for your order! Our manager will contact you soon."
	msgOrderFailed = "Failed to place your order, there must be something wrong with order data."
)

func GetCheckout(ctx *gin.Context) {
	cart, err := currentCart(ctx)
	if err != nil {
		log.Println("Cart lookup error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgCartUnavailable)
		return
	}

	lines, err := models.CartLines(initializers.DB, cart)
	if err != nil {
		log.Println("Cart lines error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgCartUnavailable)
		return
	}

	categories, err := models.CategoryCounts(initializers.DB, models.DefaultCountConfig())
	if err != nil {
		log.Println("Category counts error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgCartUnavailable)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"cart":       cart,
		"items":      lines,
		"categories": categories,
		"messages":   utils.TakeFlashes(ctx),
	})
}

func MakeOrder(ctx *gin.Context) {
	value, exists := ctx.Get("customer")
	if !exists {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Sign in to place an order")
		return
	}
	customer := value.(*models.Customer)

	var details models.ShippingDetails
	if err := ctx.ShouldBind(&details); err != nil {
		flashAndRedirect(ctx, msgOrderFailed, "/checkout/")
		return
	}

	cart, err := models.OpenCartForCustomer(initializers.DB, customer.ID)
	if err != nil {
		log.Println("Cart lookup error:", err)
		flashAndRedirect(ctx, msgOrderFailed, "/checkout/")
		return
	}

	order, err := models.PlaceOrder(initializers.DB, customer, cart, details)
	if err != nil {
		log.Println("Place order error:", err)
		flashAndRedirect(ctx, msgOrderFailed, "/checkout/")
		return
	}

	sendOrderConfirmationEmail(customer, order)
	notifyOrderPlaced(order, cart)

	flashAndRedirect(ctx, msgOrderPlaced, "/")
}

// sendOrderConfirmationEmail mails the shopper; a mail failure never
// fails the order.
func sendOrderConfirmationEmail(customer *models.Customer, order *models.Order) {
	var user models.User
	if err := initializers.DB.First(&user, customer.UserID).Error; err != nil {
		log.Println("Order confirmation email skipped, user lookup failed:", err)
		return
	}

	emailData := utils.EmailData{
		Name:      order.FirstName,
		Message:   fmt.Sprintf("Your order #%d has been placed. Our manager will contact you soon.", order.ID),
		ActionURL: os.Getenv("FRONTEND_URL") + "/",
		LogoURL:   os.Getenv("FRONTEND_URL") + "/images/logo.jpg",
	}
	templatePath := filepath.Join("templates", "order_confirmation.html")
	if err := utils.SendEmail(user.Email, "Order Confirmation", emailData, templatePath); err != nil {
		log.Println("Error sending order confirmation email:", err)
	}
}

// notifyOrderPlaced posts the new order to the fulfillment webhook when
// one is configured. Delivery is best effort.
func notifyOrderPlaced(order *models.Order, cart *models.Cart) {
	webhookURL := os.Getenv("ORDER_WEBHOOK_URL")
	if webhookURL == "" {
		return
	}

	resp, err := resty.New().SetTimeout(10 * time.Second).R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"orderId":       order.ID,
			"customerId":    order.CustomerID,
			"cartId":        order.CartID,
			"orderType":     order.OrderType,
			"totalPrice":    cart.FinalPrice,
			"totalProducts": cart.TotalProducts,
		}).
		Post(webhookURL)

	if err != nil {
		log.Println("Order webhook error:", err)
		return
	}
	if resp.StatusCode() >= 300 {
		log.Printf("Order webhook responded with status %d: %s", resp.StatusCode(), resp.Body())
	}
}

func GetOrders(ctx *gin.Context) {
	var orders []models.Order

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	if limit < 1 {
		limit = 15
	}
	offset := (page - 1) * limit

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := initializers.DB.Model(&models.Order{})
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	result := query.Order("created_at " + sortOrder).Limit(limit).Offset(offset).Find(&orders)
	if result.Error != nil {
		log.Println("Order listing error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch orders")
		return
	}

	var count int64
	countQuery := initializers.DB.Model(&models.Order{})
	if status := ctx.Query("status"); status != "" {
		countQuery = countQuery.Where("status = ?", status)
	}
	countQuery.Count(&count)

	previousPage := page - 1
	nextPage := page + 1
	totalPages := math.Ceil(float64(count) / float64(limit))

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"orders": orders,
		"metadata": gin.H{
			"total":        count,
			"currentPage":  page,
			"limit":        limit,
			"hasPrevPage":  previousPage > 0,
			"hasNextPage":  int(totalPages) > page,
			"previousPage": previousPage,
			"nextPage":     nextPage,
		},
	})
}

func UpdateOrderStatus(ctx *gin.Context) {
	var orderStatusData struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&orderStatusData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var order models.Order
	if err := initializers.DB.First(&order, orderId).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	if !models.CanTransition(order.Status, orderStatusData.Status) {
		sendErrorResponse(ctx, http.StatusBadRequest,
			fmt.Sprintf("Order cannot move from %q to %q", order.Status, orderStatusData.Status))
		return
	}

	if result := initializers.DB.Model(&order).Update("status", orderStatusData.Status); result.Error != nil {
		log.Println("Order status update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order status updated successfully."})
}
