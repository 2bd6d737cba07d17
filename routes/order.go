package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/RajAryan1001/Flamius/controllers/order"
	"github.com/RajAryan1001/Flamius/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/api/orders")
	{
		// Create a new order
		orders.POST("", middleware.ValidateCreateOrder, orderControllers.CreateOrderHandler(db))

		// List orders (GET /api/orders?page=1&limit=20&status=pending)
		orders.GET("", orderControllers.GetOrdersHandler(db))

		// Websocket feed for kitchen dashboards
		orders.GET("/ws", orderControllers.OrderFeedHandler)

		// Single order
		orders.GET("/:id", middleware.ValidateUUID("id"), orderControllers.GetOrderByIDHandler(db))

		// Partial or full update
		orders.PUT("/:id",
			middleware.ValidateUUID("id"),
			middleware.ValidateUpdateOrder,
			orderControllers.UpdateOrderHandler(db))

		// Delete an order
		orders.DELETE("/:id", middleware.ValidateUUID("id"), orderControllers.DeleteOrderHandler(db))
	}
}
