package controllers

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/techshop/techshop-api/initializers"
	"github.com/techshop/techshop-api/models"
	"github.com/techshop/techshop-api/utils"
)

// Image constraints for the admin upload path.
const (
	minImageDimension = 400
	maxImageDimension = 800
	maxImageFileSize  = 3 << 20
)

func GetProductDetail(ctx *gin.Context) {
	productType := ctx.Param("productType")
	slug := ctx.Param("slug")

	product, err := models.ProductBySlug(initializers.DB, productType, slug)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgProductNotFound)
			return
		}
		log.Println("Product lookup error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	categories, err := models.CategoryCounts(initializers.DB, models.DefaultCountConfig())
	if err != nil {
		log.Println("Category counts error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"product":     product,
		"productType": productType,
		"specs":       product.Specs(),
		"categories":  categories,
		"messages":    utils.TakeFlashes(ctx),
	})
}

func GetCategoryDetail(ctx *gin.Context) {
	slug := ctx.Param("slug")

	category, err := models.CategoryBySlug(initializers.DB, slug)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Category not found")
			return
		}
		log.Println("Category lookup error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch category")
		return
	}

	products, err := models.ProductsByCategory(initializers.DB, category.ID)
	if err != nil {
		log.Println("Category products error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch category products")
		return
	}

	categories, err := models.CategoryCounts(initializers.DB, models.DefaultCountConfig())
	if err != nil {
		log.Println("Category counts error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"category":   category,
		"products":   products,
		"categories": categories,
		"messages":   utils.TakeFlashes(ctx),
	})
}

func CreateCategory(ctx *gin.Context) {
	var category models.Category
	if err := ctx.ShouldBindJSON(&category); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := initializers.DB.Create(&category).Error; err != nil {
		log.Println("Category creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create category")
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

// CreateProduct creates one product of the variant named in the path.
func CreateProduct(ctx *gin.Context) {
	product, err := models.NewProduct(ctx.Param("productType"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Unknown product type")
		return
	}

	if err := ctx.ShouldBindJSON(product); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := initializers.DB.Create(product).Error; err != nil {
		log.Println("Product creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create product")
		return
	}

	ctx.JSON(http.StatusCreated, product)
}

func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// UploadProductImage validates the image against the catalog
// constraints and uploads it to S3, storing the resulting URL on the
// product.
func UploadProductImage(ctx *gin.Context) {
	productType := ctx.Param("productType")
	slug := ctx.Param("slug")

	if _, err := models.ResolveBySlug(initializers.DB, productType, slug); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgProductNotFound)
			return
		}
		log.Println("Product lookup error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "No image uploaded")
		return
	}

	if file.Size > maxImageFileSize {
		sendErrorResponse(ctx, http.StatusBadRequest, "Image is larger than 3 MB")
		return
	}

	f, err := file.Open()
	if err != nil {
		log.Println("Image open error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Unable to read uploaded image")
		return
	}
	defer f.Close()

	imageConfig, _, err := image.DecodeConfig(f)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Uploaded file is not a supported image")
		return
	}
	if imageConfig.Width < minImageDimension || imageConfig.Height < minImageDimension {
		sendErrorResponse(ctx, http.StatusBadRequest, "Image resolution is smaller than 400x400")
		return
	}
	if imageConfig.Width > maxImageDimension || imageConfig.Height > maxImageDimension {
		sendErrorResponse(ctx, http.StatusBadRequest, "Image resolution is larger than 800x800")
		return
	}

	if _, err := f.Seek(0, 0); err != nil {
		log.Println("Image rewind error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to read uploaded image")
		return
	}

	uploader, err := getAWSUploader()
	if err != nil {
		log.Println("AWS config error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to configure AWS")
		return
	}

	uniqueFilename := fmt.Sprintf("%s-%s-%s-%s", productType, slug, time.Now().Format("20060102150405"), file.Filename)
	result, err := uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("S3_BUCKET")),
		Key:         aws.String(uniqueFilename),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		log.Printf("Error uploading file %s: %v", file.Filename, err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	if err := models.SetProductImage(initializers.DB, productType, slug, result.Location); err != nil {
		log.Println("Error saving image URL:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Image uploaded but not saved")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Image uploaded successfully",
		"url":     result.Location,
	})
}
