package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/techshop/techshop-api/controllers"
	"github.com/techshop/techshop-api/middlewares"
)

func OrderRoutes(server *gin.Engine) {
	checkout := server.Group("/", middlewares.RequireAuth())
	{
		checkout.GET("/checkout", controllers.GetCheckout)
		checkout.POST("/make_order", controllers.MakeOrder)
	}
}
