package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/techcrush-lms/storefront-api/controllers/cart"
	"github.com/techcrush-lms/storefront-api/middleware"
)

func SetupCartRoutes(r *gin.Engine, deps Deps) {
	cart := r.Group("/cart", middleware.ValidateSession)
	{
		cart.POST("/add", cartControllers.AddCartItem(deps.DB, deps.Carts, deps.Sessions))
		cart.GET("", cartControllers.GetCart(deps.DB, deps.Carts, deps.Sessions))
		cart.PUT("/item/:product_id", cartControllers.UpdateCartItemQuantity(deps.DB, deps.Carts, deps.Sessions))
		cart.DELETE("/item/:product_id", cartControllers.DeleteCartItem(deps.DB, deps.Carts, deps.Sessions))
		cart.DELETE("", cartControllers.ClearCart(deps.Carts))

		// session-only state co-located with the cart for convenience
		cart.PUT("/currency", cartControllers.SetCurrency(deps.DB, deps.Carts, deps.Sessions))
		cart.PUT("/shipping", cartControllers.SelectShipping(deps.DB, deps.Sessions))

		// websocket feed for the header badge / drawer
		cart.GET("/ws", cartControllers.CartWebSocketHandler(deps.CartHub))
	}
}
