package routes

import (
	adminController "github.com/Burhanmalu/LUMARIYA/controllers/admin"
	orderControllers "github.com/Burhanmalu/LUMARIYA/controllers/order"
	productcontroller "github.com/Burhanmalu/LUMARIYA/controllers/product"
	userControllers "github.com/Burhanmalu/LUMARIYA/controllers/user"
	"github.com/Burhanmalu/LUMARIYA/middleware"
	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes registers all /api/admin endpoints. Requires an admin token.
func SetupAdminRoutes(api *gin.RouterGroup, d Deps, authenticated gin.HandlerFunc) {
	adminGroup := api.Group("/admin", authenticated, middleware.RequireAdmin)
	{
		// ─────────── Dashboard ───────────
		adminGroup.GET("/stats", adminController.GetStats(d.DB))
		adminGroup.GET("/orders", orderControllers.GetAllOrdersHandler(d.DB))
		adminGroup.GET("/ws/orders", orderControllers.OrderWebSocketHandler(d.Hub))

		// ─────────── User Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(d.DB))
		adminGroup.PUT("/users/:id/role", adminController.UpdateUserRole(d.DB))

		// ─────────── Product Management ───────────
		adminGroup.POST("/upload-image", adminController.UploadImage(d.Config.UploadDir, d.Config.PublicBaseURL))
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.GET("/export", productcontroller.ExportProductsToExcel(d.DB))
			productAdmin.POST("/import", productcontroller.ImportProductsFromExcel(d.DB))
		}
	}
}
