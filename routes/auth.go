package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/techcrush-lms/storefront-api/auth"
	"github.com/techcrush-lms/storefront-api/middleware"
)

func SetupAuthRoutes(r *gin.Engine, deps Deps) {
	group := r.Group("/auth")
	{
		// Issue a storefront session token
		group.POST("/session", auth.CreateSession())

		// Register the buyer before payment or coupon application
		group.POST("/register-customer",
			middleware.ValidateSession,
			auth.RegisterCustomer(deps.DB, deps.Carts),
		)
	}
}
