package orderControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/techcrush-lms/storefront-api/models"
	"github.com/techcrush-lms/storefront-api/pricing"
)

// VerifiedPayment carries everything needed to freeze a verified payment
// into an order.
type VerifiedPayment struct {
	Cart       *models.Cart
	Customer   models.Customer
	Totals     pricing.Totals
	Reference  string
	Provider   string
	CouponCode string
}

func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusConfirmed):
		return models.OrderStatusConfirmed, nil
	case string(models.OrderStatusFulfilled):
		return models.OrderStatusFulfilled, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

func mapPaymentStatus(status string) (models.PaymentStatus, error) {
	switch strings.ToLower(status) {
	case string(models.PaymentStatusPending):
		return models.PaymentStatusPending, nil
	case string(models.PaymentStatusPaid):
		return models.PaymentStatusPaid, nil
	case string(models.PaymentStatusFailed):
		return models.PaymentStatusFailed, nil
	case string(models.PaymentStatusRefunded):
		return models.PaymentStatusRefunded, nil
	default:
		return "", errors.New("invalid payment status")
	}
}

// PlaceVerifiedOrder creates the order in one transaction: lock product
// rows for stocked lines, check and deduct stock, freeze the cart lines
// and totals. Only the lines visible in the paid currency go in.
func PlaceVerifiedOrder(db *gorm.DB, vp VerifiedPayment) (*models.Order, error) {
	visible := pricing.FilterByCurrency(vp.Cart.Items, vp.Totals.Currency)
	if len(visible) == 0 {
		return nil, errors.New("cart is empty")
	}

	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var businessID uint
		var orderItems []models.OrderItem

		for _, item := range visible {
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", item.ProductID).Error; err != nil {
				return err
			}
			businessID = product.BusinessID

			// Tickets and physical goods are stock-limited; courses,
			// subscriptions and digital products are not.
			if product.Type == models.ProductTypeTicket || product.Type == models.ProductTypePhysical {
				if product.Stock < item.Quantity {
					return errors.New("insufficient stock for product: " + item.ProductName)
				}
				product.Stock -= item.Quantity
				if err := tx.Save(&product).Error; err != nil {
					return err
				}
			}

			orderItems = append(orderItems, models.OrderItem{
				ProductID:          item.ProductID,
				ProductName:        item.ProductName,
				ProductType:        item.ProductType,
				TicketTierID:       item.TicketTierID,
				SubscriptionPlanID: item.SubscriptionPlanID,
				Currency:           item.Currency,
				UnitPrice:          item.UnitPrice,
				Quantity:           item.Quantity,
				Size:               item.Size,
				Color:              item.Color,
				Measurements:       item.Measurements,
			})
		}

		order = models.Order{
			Reference:     vp.Reference,
			BusinessID:    businessID,
			CustomerID:    vp.Customer.ID,
			Currency:      vp.Totals.Currency,
			Subtotal:      vp.Totals.Subtotal,
			ShippingFee:   vp.Totals.ShippingFee,
			Discount:      vp.Totals.Discount,
			Total:         vp.Totals.GrandTotal,
			CouponCode:    vp.CouponCode,
			Provider:      vp.Provider,
			Items:         orderItems,
			Status:        models.OrderStatusConfirmed,
			PaymentStatus: models.PaymentStatusPaid,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Customer").
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/customer/:email
func GetCustomerOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
			return
		}

		var customer models.Customer
		if err := db.Where("email = ?", email).First(&customer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, []models.Order{})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var orders []models.Order
		if err := db.
			Where("customer_id = ?", customer.ID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:orderRef
func GetOrderByRefHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Param("orderRef")
		if ref == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderRef is required"})
			return
		}

		var order models.Order
		if err := db.
			Preload("Customer").
			Preload("Items").
			Where("reference = ?", ref).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /admin/orders/:orderRef/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Param("orderRef")

		var req struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		status, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result := db.Model(&models.Order{}).Where("reference = ?", ref).Update("status", status)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
	}
}

// PUT /admin/orders/:orderRef/payment-status
func UpdatePaymentStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Param("orderRef")

		var req struct {
			PaymentStatus string `json:"payment_status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		status, err := mapPaymentStatus(req.PaymentStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result := db.Model(&models.Order{}).Where("reference = ?", ref).Update("payment_status", status)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment status updated"})
	}
}
