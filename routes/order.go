package routes

import (
	orderControllers "github.com/Burhanmalu/LUMARIYA/controllers/order"
	"github.com/Burhanmalu/LUMARIYA/middleware"
	"github.com/gin-gonic/gin"
)

func SetupOrderRoutes(api *gin.RouterGroup, d Deps, authenticated gin.HandlerFunc) {
	orders := api.Group("/orders", authenticated)
	{
		// Checkout
		orders.POST("", orderControllers.PlaceOrderHandler(d.DB, d.Publisher, d.Metrics))

		// Caller's own orders
		orders.GET("", orderControllers.GetUserOrdersHandler(d.DB))
		orders.GET("/:id", orderControllers.GetOrderByIDHandler(d.DB))

		// Status changes are an admin action
		orders.PUT("/:id/status", middleware.RequireAdmin, orderControllers.UpdateOrderStatusHandler(d.DB, d.Publisher))
	}
}
