package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techshop/techshop-api/initializers"
	"github.com/techshop/techshop-api/models"
	"github.com/techshop/techshop-api/utils"
)

const (
	msgItemAdded        = "Item successfully added to your cart"
	msgQuantityChanged  = "Item's quantity changed"
	msgItemRemoved      = "Item successfully removed from your cart"
	msgProductNotFound  = "Product not found"
	msgCartItemNotFound = "Item not found in your cart"
	msgInvalidQuantity  = "Quantity must be a positive number"
	msgCartUnavailable  = "Unable to load your cart"
)

// currentCart resolves the request's cart: the customer's open cart
// when authenticated, otherwise the session's anonymous cart.
func currentCart(ctx *gin.Context) (*models.Cart, error) {
	if value, exists := ctx.Get("customer"); exists {
		customer := value.(*models.Customer)
		return models.OpenCartForCustomer(initializers.DB, customer.ID)
	}

	cart, err := models.AnonymousCart(initializers.DB, utils.SessionCartID(ctx))
	if err != nil {
		return nil, err
	}
	utils.SaveSessionCartID(ctx, cart.ID)
	return cart, nil
}

func flashAndRedirect(ctx *gin.Context, message, location string) {
	utils.Flash(ctx, message)
	ctx.Redirect(http.StatusFound, location)
}

func GetCart(ctx *gin.Context) {
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

func AddToCart(ctx *gin.Context) {
	cart, err := currentCart(ctx)
	if err != nil {
		log.Println("Cart lookup error:", err)
		flashAndRedirect(ctx, msgCartUnavailable, "/cart")
		return
	}

	productType := ctx.Param("productType")
	slug := ctx.Param("slug")

	ref, err := models.ResolveBySlug(initializers.DB, productType, slug)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			flashAndRedirect(ctx, msgProductNotFound, "/cart")
			return
		}
		log.Println("Product lookup error:", err)
		flashAndRedirect(ctx, msgCartUnavailable, "/cart")
		return
	}

	if _, _, err := models.AddCartItem(initializers.DB, cart, ref.ProductType, ref.ID); err != nil {
		log.Println("Add to cart error:", err)
		flashAndRedirect(ctx, msgCartUnavailable, "/cart")
		return
	}

	flashAndRedirect(ctx, msgItemAdded, "/cart")
}

func ChangeQuantity(ctx *gin.Context) {
	cart, err := currentCart(ctx)
	if err != nil {
		log.Println("Cart lookup error:", err)
		flashAndRedirect(ctx, msgCartUnavailable, "/cart")
		return
	}

	var form struct {
		Quantity int `form:"quantity" binding:"required,min=1"`
	}
	if err := ctx.ShouldBind(&form); err != nil {
		flashAndRedirect(ctx, msgInvalidQuantity, "/cart")
		return
	}

	productType := ctx.Param("productType")
	slug := ctx.Param("slug")

	ref, err := models.ResolveBySlug(initializers.DB, productType, slug)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			flashAndRedirect(ctx, msgProductNotFound, "/cart")
			return
		}
		log.Println("Product lookup error:", err)
		flashAndRedirect(ctx, msgCartUnavailable, "/cart")
		return
	}

	if _, err := models.SetCartItemQuantity(initializers.DB, cart, ref.ProductType, ref.ID, form.Quantity); err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			flashAndRedirect(ctx, msgCartItemNotFound, "/cart")
		case errors.Is(err, models.ErrValidation):
			flashAndRedirect(ctx, msgInvalidQuantity, "/cart")
		default:
			log.Println("Change quantity error:", err)
			flashAndRedirect(ctx, msgCartUnavailable, "/cart")
		}
		return
	}

	flashAndRedirect(ctx, msgQuantityChanged, "/cart")
}

func DeleteFromCart(ctx *gin.Context) {
	cart, err := currentCart(ctx)
	if err != nil {
		log.Println("Cart lookup error:", err)
		flashAndRedirect(ctx, msgCartUnavailable, "/cart")
		return
	}

	productType := ctx.Param("productType")
	slug := ctx.Param("slug")

	ref, err := models.ResolveBySlug(initializers.DB, productType, slug)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			flashAndRedirect(ctx, msgProductNotFound, "/cart")
			return
		}
		log.Println("Product lookup error:", err)
		flashAndRedirect(ctx, msgCartUnavailable, "/cart")
		return
	}

	if err := models.RemoveCartItem(initializers.DB, cart, ref.ProductType, ref.ID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			flashAndRedirect(ctx, msgCartItemNotFound, "/cart")
			return
		}
		log.Println("Delete from cart error:", err)
		flashAndRedirect(ctx, msgCartUnavailable, "/cart")
		return
	}

	flashAndRedirect(ctx, msgItemRemoved, "/cart")
}
