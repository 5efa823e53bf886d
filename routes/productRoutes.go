package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/techshop/techshop-api/controllers"
	"github.com/techshop/techshop-api/middlewares"
)

func ProductRoutes(server *gin.Engine) {
	server.GET("/products/:productType/:slug/", controllers.GetProductDetail)
	server.GET("/category/:slug/", controllers.GetCategoryDetail)

	admin := server.Group("/admin", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("/categories", controllers.CreateCategory)
		admin.POST("/products/:productType", controllers.CreateProduct)
		admin.POST("/products/:productType/:slug/image", controllers.UploadProductImage)
		admin.GET("/orders", controllers.GetOrders)
		admin.PATCH("/orders/:orderId/status", controllers.UpdateOrderStatus)
	}
}
