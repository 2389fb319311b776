package routes

import (
	"github.com/gin-gonic/gin"

	couponControllers "github.com/techcrush-lms/storefront-api/controllers/coupon"
	"github.com/techcrush-lms/storefront-api/middleware"
)

func SetupPaymentRoutes(r *gin.Engine, deps Deps) {
	payment := r.Group("/payment")
	{
		payment.POST("/create", middleware.ValidateSession, deps.Checkout.CreatePayment())
		payment.GET("/pending", middleware.ValidateSession, deps.Checkout.PendingPayment())
		payment.POST("/verify/:reference", middleware.ValidateSession, deps.Checkout.VerifyPayment())
		payment.POST("/cancel/:reference", middleware.ValidateSession, deps.Checkout.CancelPayment())
		payment.GET("/status/:reference", middleware.ValidateSession, deps.Checkout.PaymentStatus())

		// Webhook endpoint: middleware handles signature verification
		payment.POST("/webhook",
			middleware.WebhookAuth("PAYMENT_WEBHOOK_SECRET", "X-Webhook-Signature"),
			deps.Checkout.Webhook(),
		)
	}

	coupon := r.Group("/coupon-management", middleware.ValidateSession)
	{
		coupon.POST("/apply-coupon", couponControllers.ApplyCoupon(deps.DB, deps.Carts, deps.Sessions))
	}
}
