package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techshop/techshop-api/initializers"
	"github.com/techshop/techshop-api/models"
	"github.com/techshop/techshop-api/utils"
)

// Landing page sample size per product variant.
const latestPerType = 2

func GetHome(ctx *gin.Context) {
	categories, err := models.CategoryCounts(initializers.DB, models.DefaultCountConfig())
	if err != nil {
		log.Println("Category counts error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	products, err := models.LatestProducts(initializers.DB, latestPerType, models.TypeNotebook)
	if err != nil {
		log.Println("Latest products error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"categories": categories,
		"products":   products,
		"messages":   utils.TakeFlashes(ctx),
	})
}
