package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/techcrush-lms/storefront-api/models"
	"github.com/techcrush-lms/storefront-api/pricing"
)

// GET /products/:id
// Tier and plan lists come back price-sorted so previews can default to
// the lowest-priced variant on first render.
func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		err := db.Preload("Prices").Preload("Tiers").Preload("Plans").
			First(&product, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "No product found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		pricing.SortTiersByPrice(product.Tiers)
		pricing.SortPlansByPrice(product.Plans)

		c.JSON(http.StatusOK, product)
	}
}
