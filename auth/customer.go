package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/techcrush-lms/storefront-api/models"
	"github.com/techcrush-lms/storefront-api/pricing"
	"github.com/techcrush-lms/storefront-api/store"
)

// POST /auth/register-customer
// Registers the buyer before payment creation or coupon application.
// Address fields are only required when the session's cart holds a
// physical line; validation failures never reach the database.
func RegisterCustomer(db *gorm.DB, carts *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("session_id")

		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cart, err := carts.Load(c.Request.Context(), sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		if errs := ValidateRegistration(input, pricing.HasPhysical(cart.Items)); len(errs) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
			return
		}

		customer := models.Customer{
			Email: input.Email,
			Name:  input.Name,
			Phone: input.Phone,
			Address: models.Address{
				Country: input.Country,
				State:   input.State,
				City:    input.City,
				Street:  input.Street,
			},
		}

		var existing models.Customer
		err = db.Where("email = ?", input.Email).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := db.Create(&customer).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register customer"})
				return
			}
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register customer"})
			return
		default:
			customer.ID = existing.ID
			customer.CreatedAt = existing.CreatedAt
			if err := db.Save(&customer).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
				return
			}
		}

		c.JSON(http.StatusOK, customer)
	}
}
