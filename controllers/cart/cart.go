package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/techcrush-lms/storefront-api/models"
	"github.com/techcrush-lms/storefront-api/pricing"
	"github.com/techcrush-lms/storefront-api/session"
	"github.com/techcrush-lms/storefront-api/store"
)

type CartItemInput struct {
	ProductID          uint   `json:"product_id" binding:"required"`
	Quantity           int    `json:"quantity"`
	TicketTierID       *uint  `json:"ticket_tier_id"`
	SubscriptionPlanID *uint  `json:"subscription_plan_id"`
	Currency           string `json:"currency"`
	Size               string `json:"size"`
	Color              string `json:"color"`
	Measurements       string `json:"measurements"`
}

// CartView is what the storefront renders: lines filtered to the active
// currency plus totals recomputed from current state.
type CartView struct {
	Items  []models.CartItem `json:"items"`
	Totals pricing.Totals    `json:"totals"`
}

// BuildCartView derives the currency-filtered view and totals for a
// cart. Shared by GET /cart and the websocket push.
func BuildCartView(c *gin.Context, db *gorm.DB, sessions *session.Store, cart *models.Cart) (*CartView, error) {
	state, err := sessions.Get(c.Request.Context(), cart.SessionID)
	if err != nil {
		return nil, err
	}

	var shipping *models.ShippingOption
	if state.ShippingOptionID != 0 {
		var opt models.ShippingOption
		if err := db.First(&opt, "id = ?", state.ShippingOptionID).Error; err == nil {
			shipping = &opt
		}
	}

	view := &CartView{
		Items:  pricing.FilterByCurrency(cart.Items, state.Currency),
		Totals: pricing.Compute(cart, state.Currency, shipping, state.Coupon),
	}
	if view.Items == nil {
		view.Items = []models.CartItem{}
	}
	return view, nil
}

// POST /cart/add
func AddCartItem(db *gorm.DB, carts *store.CartStore, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("session_id")

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity <= 0 {
			input.Quantity = 1
		}

		var product models.Product
		err := db.Preload("Prices").Preload("Tiers").Preload("Plans").
			First(&product, "id = ?", input.ProductID).Error
		if err != nil {
			status := http.StatusInternalServerError
			errMsg := "Failed to validate product"
			if errors.Is(err, gorm.ErrRecordNotFound) {
				status = http.StatusBadRequest
				errMsg = "Product does not exist"
			}
			c.JSON(status, gin.H{"error": errMsg})
			return
		}

		currency := input.Currency
		if currency == "" {
			state, err := sessions.Get(c.Request.Context(), sessionID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch session"})
				return
			}
			currency = state.Currency
		}

		item, err := snapshotLine(&product, input, currency)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		cart, err := carts.AddItem(c.Request.Context(), sessionID, *item)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}

		view, err := BuildCartView(c, db, sessions, cart)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusCreated, view)
	}
}

// snapshotLine freezes the product into a cart line at add time: tier or
// plan price when a variant is referenced, otherwise the price variant
// for the active currency. The line carries the product's minimum order
// quantity so later decrements know the floor.
func snapshotLine(product *models.Product, input CartItemInput, currency string) (*models.CartItem, error) {
	item := models.CartItem{
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductImage: product.Image,
		ProductType:  product.Type,
		Currency:     currency,
		Quantity:     input.Quantity,
		MinRequired:  product.MinRequired,
		Size:         input.Size,
		Color:        input.Color,
		Measurements: input.Measurements,
	}

	if !pricing.QuantityAdjustable(product.Type) {
		item.Quantity = 1
	} else if product.MinRequired > 0 && item.Quantity < product.MinRequired {
		item.Quantity = product.MinRequired
	}

	switch {
	case input.TicketTierID != nil:
		for _, tier := range product.Tiers {
			if tier.ID == *input.TicketTierID && tier.Currency == currency {
				item.TicketTierID = input.TicketTierID
				item.UnitPrice = tier.Price
				return &item, nil
			}
		}
		return nil, errors.New("ticket tier not available in this currency")
	case input.SubscriptionPlanID != nil:
		for _, plan := range product.Plans {
			if plan.ID == *input.SubscriptionPlanID && plan.Currency == currency {
				item.SubscriptionPlanID = input.SubscriptionPlanID
				item.UnitPrice = plan.Price
				return &item, nil
			}
		}
		return nil, errors.New("subscription plan not available in this currency")
	default:
		amount, ok := pricing.PriceFor(product, currency)
		if !ok {
			return nil, errors.New("product not available in this currency")
		}
		item.UnitPrice = amount
		return &item, nil
	}
}

// GET /cart
func GetCart(db *gorm.DB, carts *store.CartStore, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("session_id")

		cart, err := carts.Load(c.Request.Context(), sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		view, err := BuildCartView(c, db, sessions, cart)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// PUT /cart/item/:product_id
func UpdateCartItemQuantity(db *gorm.DB, carts *store.CartStore, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("session_id")

		productID, err := parseProductID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}

		var input struct {
			Quantity int    `json:"quantity"`
			Currency string `json:"currency" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cart, err := carts.Load(c.Request.Context(), sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		for _, it := range cart.Items {
			if it.ProductID == productID && it.Currency == input.Currency &&
				!pricing.QuantityAdjustable(it.ProductType) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity is fixed for this product type"})
				return
			}
		}

		cart, err = carts.UpdateQuantity(c.Request.Context(), sessionID, productID, input.Quantity, input.Currency)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}

		view, err := BuildCartView(c, db, sessions, cart)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// DELETE /cart/item/:product_id?currency=USD
func DeleteCartItem(db *gorm.DB, carts *store.CartStore, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("session_id")

		productID, err := parseProductID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}
		currency := c.Query("currency")
		if currency == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "currency is required"})
			return
		}

		cart, err := carts.RemoveItem(c.Request.Context(), sessionID, productID, currency)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}

		view, err := BuildCartView(c, db, sessions, cart)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// DELETE /cart
func ClearCart(carts *store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("session_id")

		if err := carts.Empty(c.Request.Context(), sessionID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// PUT /cart/currency
// Switching currency only changes which lines are visible and priced;
// lines in other currencies stay in the cart untouched.
func SetCurrency(db *gorm.DB, carts *store.CartStore, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("session_id")

		var input struct {
			Currency string `json:"currency" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := sessions.SetCurrency(c.Request.Context(), sessionID, input.Currency); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to switch currency"})
			return
		}

		cart, err := carts.Load(c.Request.Context(), sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		view, err := BuildCartView(c, db, sessions, cart)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// PUT /cart/shipping
// Looks up the shipping option by id and sets it as the session's active
// selection. Not persisted past the session.
func SelectShipping(db *gorm.DB, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("session_id")

		var input struct {
			ShippingOptionID uint `json:"shipping_option_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var option models.ShippingOption
		if err := db.First(&option, "id = ?", input.ShippingOptionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Shipping option does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate shipping option"})
			return
		}

		if err := sessions.SetShipping(c.Request.Context(), sessionID, option.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set shipping option"})
			return
		}
		c.JSON(http.StatusOK, option)
	}
}

func parseProductID(c *gin.Context) (uint, error) {
	raw, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(raw), nil
}
