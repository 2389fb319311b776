package checkoutControllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	orderControllers "github.com/techcrush-lms/storefront-api/controllers/order"
	"github.com/techcrush-lms/storefront-api/models"
	"github.com/techcrush-lms/storefront-api/payment"
	"github.com/techcrush-lms/storefront-api/pricing"
	"github.com/techcrush-lms/storefront-api/session"
	"github.com/techcrush-lms/storefront-api/store"
)

// Checkout owns the pending-payment marker lifecycle: written before the
// widget launches, deleted on success, cancel, or webhook finalization —
// every exit path cleans it up.
type Checkout struct {
	db       *gorm.DB
	carts    *store.CartStore
	sessions *session.Store
	provider payment.Provider

	statusGroup singleflight.Group // dedupes concurrent status polls per reference
}

func New(db *gorm.DB, carts *store.CartStore, sessions *session.Store, provider payment.Provider) *Checkout {
	return &Checkout{db: db, carts: carts, sessions: sessions, provider: provider}
}

// PurchaseLine is one entry of the purchase payload: ticket and
// subscription lines reference their tier, everything else the product.
type PurchaseLine struct {
	ProductID uint `json:"product_id,omitempty"`
	TierID    uint `json:"tier_id,omitempty"`
	Quantity  int  `json:"quantity"`
}

// BuildPurchaseLines maps cart lines to the purchase payload.
func BuildPurchaseLines(items []models.CartItem) []PurchaseLine {
	lines := make([]PurchaseLine, 0, len(items))
	for _, it := range items {
		line := PurchaseLine{Quantity: it.Quantity}
		switch {
		case it.TicketTierID != nil:
			line.TierID = *it.TicketTierID
		case it.SubscriptionPlanID != nil:
			line.TierID = *it.SubscriptionPlanID
		default:
			line.ProductID = it.ProductID
		}
		lines = append(lines, line)
	}
	return lines
}

func generatePaymentRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

type createPaymentInput struct {
	Email      string `json:"email" binding:"required,email"`
	BusinessID uint   `json:"business_id" binding:"required"`
}

// POST /payment/create
func (h *Checkout) CreatePayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("session_id")

		var input createPaymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var customer models.Customer
		if err := h.db.Where("email = ?", input.Email).First(&customer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Customer is not registered"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate customer"})
			return
		}

		cart, err := h.carts.Load(c.Request.Context(), sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		state, err := h.sessions.Get(c.Request.Context(), sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch session"})
			return
		}

		visible := pricing.FilterByCurrency(cart.Items, state.Currency)
		if len(visible) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		totals := pricing.Compute(cart, state.Currency, h.shippingOption(state), state.Coupon)
		amountMinor := pricing.ToMinorUnits(totals.GrandTotal)

		reference := generatePaymentRef()
		result, err := h.provider.Initialize(c.Request.Context(), payment.InitRequest{
			Reference:   reference,
			AmountMinor: amountMinor,
			Currency:    state.Currency,
			Email:       customer.Email,
		})
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		// The marker must be durable before the widget opens, so an
		// interrupted session can resume instead of losing the payment.
		pending := models.PendingPayment{
			SessionID:   sessionID,
			Reference:   result.Reference,
			Provider:    result.Provider,
			PublicKey:   result.PublicKey,
			AmountMinor: amountMinor,
			Currency:    state.Currency,
			Email:       customer.Email,
		}
		err = h.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("session_id = ?", sessionID).Delete(&models.PendingPayment{}).Error; err != nil {
				return err
			}
			return tx.Create(&pending).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save payment session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"payment":   result,
			"purchases": BuildPurchaseLines(visible),
			"amount":    amountMinor,
			"currency":  state.Currency,
		})
	}
}

// GET /payment/pending
// Resume flow: a dangling marker means the buyer left mid-payment; the
// front-end re-opens the widget from this record.
func (h *Checkout) PendingPayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("session_id")

		var pending models.PendingPayment
		err := h.db.Where("session_id = ?", sessionID).First(&pending).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No pending payment"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending payment"})
			return
		}
		c.JSON(http.StatusOK, pending)
	}
}

// POST /payment/verify/:reference
func (h *Checkout) VerifyPayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		reference := c.Param("reference")

		// already finalized: verification is idempotent
		var existing models.Order
		if err := h.db.Where("reference = ?", reference).First(&existing).Error; err == nil {
			c.JSON(http.StatusOK, gin.H{"message": "Payment verified", "order_ref": existing.Reference})
			return
		}

		result, err := h.provider.Verify(c.Request.Context(), reference)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		if result.Status != payment.StatusSuccess {
			c.JSON(http.StatusPaymentRequired, gin.H{"status": result.Status})
			return
		}

		order, err := h.finalize(c, reference, result)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment verified", "order_ref": order.Reference})
	}
}

// POST /payment/cancel/:reference
// Widget close is a normal terminal state, not an error: the marker goes
// away and nothing else changes.
func (h *Checkout) CancelPayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("session_id")
		reference := c.Param("reference")

		result := h.db.Where("session_id = ? AND reference = ?", sessionID, reference).
			Delete(&models.PendingPayment{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel payment"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment cancelled"})
	}
}

// GET /payment/status/:reference
func (h *Checkout) PaymentStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		reference := c.Param("reference")

		// the shared result outlives the winning caller's request, so the
		// provider call must not die with that caller's context
		v, err, _ := h.statusGroup.Do(reference, func() (interface{}, error) {
			return h.provider.Verify(context.WithoutCancel(c.Request.Context()), reference)
		})
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		result := v.(*payment.VerifyResult)
		c.JSON(http.StatusOK, gin.H{"reference": result.Reference, "status": result.Status})
	}
}

type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		TxRef     string `json:"tx_ref"`
		Status    string `json:"status"`
	} `json:"data"`
}

// POST /payment/webhook
// Provider-to-server confirmation; finalizes the order even when the
// buyer never returned to the success callback.
func (h *Checkout) Webhook() gin.HandlerFunc {
	return func(c *gin.Context) {
		var event webhookEvent
		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse webhook payload"})
			return
		}

		reference := event.Data.Reference
		if reference == "" {
			reference = event.Data.TxRef
		}
		if reference == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing payment reference"})
			return
		}

		if event.Event != "charge.success" && event.Data.Status != "successful" {
			c.JSON(http.StatusOK, gin.H{"message": "Payment not successful"})
			return
		}

		var existing models.Order
		if err := h.db.Where("reference = ?", reference).First(&existing).Error; err == nil {
			c.JSON(http.StatusOK, gin.H{"message": "Order already placed"})
			return
		}

		result, err := h.provider.Verify(c.Request.Context(), reference)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		if result.Status != payment.StatusSuccess {
			c.JSON(http.StatusOK, gin.H{"message": "Payment not successful"})
			return
		}

		if _, err := h.finalize(c, reference, result); err != nil {
			log.Printf("webhook finalize for %s failed: %v", reference, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order placed successfully"})
	}
}

// finalize turns a verified payment into an order, then empties the cart,
// clears the coupon and deletes the marker.
func (h *Checkout) finalize(c *gin.Context, reference string, result *payment.VerifyResult) (*models.Order, error) {
	ctx := c.Request.Context()

	var pending models.PendingPayment
	if err := h.db.Where("reference = ?", reference).First(&pending).Error; err != nil {
		return nil, errors.New("no pending payment for reference")
	}

	var customer models.Customer
	if err := h.db.Where("email = ?", pending.Email).First(&customer).Error; err != nil {
		return nil, errors.New("customer not found for payment")
	}

	cart, err := h.carts.Load(ctx, pending.SessionID)
	if err != nil {
		return nil, err
	}
	state, err := h.sessions.Get(ctx, pending.SessionID)
	if err != nil {
		return nil, err
	}

	totals := pricing.Compute(cart, pending.Currency, h.shippingOption(state), state.Coupon)
	if pricing.ToMinorUnits(totals.GrandTotal) != result.AmountMinor {
		return nil, errors.New("payment amount does not match cart total")
	}

	couponCode := ""
	if state.Coupon != nil {
		couponCode = state.Coupon.Code
	}

	order, err := orderControllers.PlaceVerifiedOrder(h.db, orderControllers.VerifiedPayment{
		Cart:       cart,
		Customer:   customer,
		Totals:     totals,
		Reference:  reference,
		Provider:   pending.Provider,
		CouponCode: couponCode,
	})
	if err != nil {
		return nil, err
	}

	h.cleanup(ctx, &pending)

	orderControllers.BroadcastNewOrder(*order)
	return order, nil
}

// cleanup is the success-path teardown: empty the cart (which clears the
// coupon and notifies the badge), then drop the marker so the widget
// never reopens. Best-effort; the order is already placed.
func (h *Checkout) cleanup(ctx context.Context, pending *models.PendingPayment) {
	if err := h.carts.Empty(ctx, pending.SessionID); err != nil {
		log.Printf("empty cart after payment %s: %v", pending.Reference, err)
	}
	if err := h.db.Delete(pending).Error; err != nil {
		log.Printf("delete pending payment %s: %v", pending.Reference, err)
	}
}

func (h *Checkout) shippingOption(state *models.SessionState) *models.ShippingOption {
	if state.ShippingOptionID == 0 {
		return nil
	}
	var opt models.ShippingOption
	if err := h.db.First(&opt, "id = ?", state.ShippingOptionID).Error; err != nil {
		return nil
	}
	return &opt
}
