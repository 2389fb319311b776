package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/techcrush-lms/storefront-api/controllers/cart"
	checkoutControllers "github.com/techcrush-lms/storefront-api/controllers/checkout"
	"github.com/techcrush-lms/storefront-api/session"
	"github.com/techcrush-lms/storefront-api/store"
)

// Deps bundles the shared wiring the route groups need.
type Deps struct {
	DB       *gorm.DB
	Carts    *store.CartStore
	Sessions *session.Store
	CartHub  *cartControllers.Hub
	Checkout *checkoutControllers.Checkout
}

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, deps)

	// Public catalog routes
	SetupCatalogRoutes(r, deps)

	// Cart routes (session-token protected)
	SetupCartRoutes(r, deps)

	// Checkout/payment routes
	SetupPaymentRoutes(r, deps)

	// Admin routes (API-key protected)
	SetupAdminRoutes(r, deps)
}
