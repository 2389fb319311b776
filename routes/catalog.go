package routes

import (
	"github.com/gin-gonic/gin"

	businessControllers "github.com/techcrush-lms/storefront-api/controllers/business"
	productcontroller "github.com/techcrush-lms/storefront-api/controllers/product"
)

func SetupCatalogRoutes(r *gin.Engine, deps Deps) {
	business := r.Group("/business")
	{
		business.GET("/:slug", businessControllers.GetBusiness(deps.DB))
		business.GET("/:slug/products", productcontroller.GetBusinessProducts(deps.DB))
		business.GET("/:slug/shipping", businessControllers.GetShippingOptions(deps.DB))
	}

	r.GET("/products/:id", productcontroller.GetProduct(deps.DB))
}
