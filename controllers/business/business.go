package businessControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/techcrush-lms/storefront-api/models"
)

// GET /business/:slug
func GetBusiness(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		if slug == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid access: business is required"})
			return
		}

		var business models.Business
		if err := db.Where("slug = ?", slug).First(&business).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch business"})
			return
		}
		c.JSON(http.StatusOK, business)
	}
}

// GET /business/:slug/shipping
func GetShippingOptions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")

		var business models.Business
		if err := db.Where("slug = ?", slug).First(&business).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch business"})
			return
		}

		currency := c.Query("currency")
		query := db.Where("business_id = ?", business.ID)
		if currency != "" {
			query = query.Where("currency = ?", currency)
		}

		var options []models.ShippingOption
		if err := query.Order("fee ASC").Find(&options).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shipping options"})
			return
		}
		c.JSON(http.StatusOK, options)
	}
}
