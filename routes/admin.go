package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/techcrush-lms/storefront-api/controllers/order"
	productcontroller "github.com/techcrush-lms/storefront-api/controllers/product"
	"github.com/techcrush-lms/storefront-api/middleware"
)

func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	admin := r.Group("/admin", middleware.ValidateAPIKey)
	{
		admin.GET("/orders", orderControllers.GetAllOrdersHandler(deps.DB))
		admin.GET("/orders/export", orderControllers.ExportOrdersToExcel(deps.DB))
		admin.GET("/orders/ws", orderControllers.OrderWebSocketHandler)
		admin.PUT("/orders/:orderRef/status", orderControllers.UpdateOrderStatusHandler(deps.DB))
		admin.PUT("/orders/:orderRef/payment-status", orderControllers.UpdatePaymentStatusHandler(deps.DB))

		admin.POST("/products", productcontroller.CreateProduct(deps.DB))
		admin.DELETE("/products/:id", productcontroller.DeleteProduct(deps.DB))
	}

	// buyer-facing order lookup
	orders := r.Group("/orders")
	{
		orders.GET("/customer/:email", orderControllers.GetCustomerOrdersHandler(deps.DB))
		orders.GET("/:orderRef", orderControllers.GetOrderByRefHandler(deps.DB))
	}
}
