package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/techshop/techshop-api/controllers"
	"github.com/techshop/techshop-api/middlewares"
)

func CartRoutes(server *gin.Engine) {
	cart := server.Group("/", middlewares.CurrentUser())
	{
		cart.GET("/cart", controllers.GetCart)
		cart.GET("/add_to_cart/:productType/:slug", controllers.AddToCart)
		cart.POST("/change_quantity/:productType/:slug", controllers.ChangeQuantity)
		cart.GET("/delete_from_cart/:productType/:slug", controllers.DeleteFromCart)
	}
}
