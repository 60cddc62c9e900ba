package routes

import (
	addressControllers "github.com/Burhanmalu/LUMARIYA/controllers/address"
	cartControllers "github.com/Burhanmalu/LUMARIYA/controllers/cart"
	productcontroller "github.com/Burhanmalu/LUMARIYA/controllers/product"
	userControllers "github.com/Burhanmalu/LUMARIYA/controllers/user"
	"github.com/Burhanmalu/LUMARIYA/middleware"
	"github.com/gin-gonic/gin"
)

// SetupProductRoutes registers the public catalog and its admin-only writes.
func SetupProductRoutes(api *gin.RouterGroup, d Deps, authenticated gin.HandlerFunc) {
	products := api.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(d.DB))
		products.GET("/categories", productcontroller.GetAllCategories(d.DB))
		products.GET("/:id", productcontroller.GetProductByID(d.DB))

		products.POST("", authenticated, middleware.RequireAdmin, productcontroller.CreateProduct(d.DB))
		products.PUT("/:id", authenticated, middleware.RequireAdmin, productcontroller.UpdateProduct(d.DB))
		products.DELETE("/:id", authenticated, middleware.RequireAdmin, productcontroller.DeleteProduct(d.DB))
	}
}

// SetupUserRoutes registers the cart, profile and address book. Requires a token.
func SetupUserRoutes(api *gin.RouterGroup, d Deps, authenticated gin.HandlerFunc) {
	cart := api.Group("/cart", authenticated)
	{
		cart.GET("", cartControllers.GetCart(d.DB))
		cart.DELETE("", cartControllers.ClearUserCart(d.DB))
		cart.POST("/items", cartControllers.AddCartItem(d.DB))
		cart.PUT("/items/:id", cartControllers.UpdateCartItem(d.DB))
		cart.DELETE("/items/:id", cartControllers.DeleteCartItem(d.DB))
	}

	users := api.Group("/users", authenticated)
	{
		users.GET("/profile", userControllers.GetUser)
		users.PUT("/profile", userControllers.UpdateUser(d.DB))

		addresses := users.Group("/addresses")
		{
			addresses.GET("", addressControllers.ListAddresses(d.DB))
			addresses.POST("", addressControllers.CreateAddress(d.DB))
			addresses.PUT("/:id", addressControllers.UpdateAddress(d.DB))
			addresses.DELETE("/:id", addressControllers.DeleteAddress(d.DB))
		}
	}
}
