// Package store is the single owner of cart state. All mutations go
// through the pure reducers in package cart, are persisted here, clear
// the session coupon, and notify subscribers (the cart websocket).
package store

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/techcrush-lms/storefront-api/cart"
	"github.com/techcrush-lms/storefront-api/models"
)

// SessionStore is the slice of session state the cart store touches:
// the coupon it must clear after every mutation.
type SessionStore interface {
	ClearCoupon(ctx context.Context, sessionID string) error
}

type CartStore struct {
	db       *gorm.DB
	sessions SessionStore
	onChange func(sessionID string, c *models.Cart)
}

func NewCartStore(db *gorm.DB, sessions SessionStore) *CartStore {
	return &CartStore{db: db, sessions: sessions}
}

// OnChange registers a subscriber called after every persisted mutation.
func (s *CartStore) OnChange(fn func(sessionID string, c *models.Cart)) {
	s.onChange = fn
}

// Load returns the session's cart, or an unsaved empty cart when none
// exists yet. Carts are created lazily on first add.
func (s *CartStore) Load(ctx context.Context, sessionID string) (*models.Cart, error) {
	var c models.Cart
	err := s.db.WithContext(ctx).Preload("Items").Where("session_id = ?", sessionID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Cart{SessionID: sessionID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// AddItem applies the add reducer and persists.
func (s *CartStore) AddItem(ctx context.Context, sessionID string, item models.CartItem) (*models.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *models.Cart) {
		cart.AddItem(c, item)
	})
}

// UpdateQuantity applies the quantity reducer and persists.
func (s *CartStore) UpdateQuantity(ctx context.Context, sessionID string, productID uint, quantity int, currency string) (*models.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *models.Cart) {
		cart.UpdateQuantity(c, productID, quantity, currency)
	})
}

// RemoveItem applies the remove reducer and persists.
func (s *CartStore) RemoveItem(ctx context.Context, sessionID string, productID uint, currency string) (*models.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *models.Cart) {
		cart.RemoveItem(c, productID, currency)
	})
}

// Empty deletes the session's cart entirely. Used on successful checkout
// and explicit clear. The coupon is cleared alongside.
func (s *CartStore) Empty(ctx context.Context, sessionID string) error {
	c, err := s.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	if c.CartID != 0 {
		if err := s.db.WithContext(ctx).Select("Items").Delete(c).Error; err != nil {
			return err
		}
	}
	s.afterMutation(ctx, sessionID, &models.Cart{SessionID: sessionID})
	return nil
}

func (s *CartStore) mutate(ctx context.Context, sessionID string, apply func(*models.Cart)) (*models.Cart, error) {
	c, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	apply(c)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if c.CartID == 0 {
			if len(c.Items) == 0 {
				return nil // nothing to create for a no-op on an absent cart
			}
			created := models.Cart{SessionID: sessionID, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
			if err := tx.Omit("Items").Create(&created).Error; err != nil {
				return err
			}
			c.CartID = created.CartID
		}

		// Replace the line set wholesale: the reducer already produced the
		// final list, so stale rows are deleted and the result re-inserted.
		if err := tx.Where("cart_id = ?", c.CartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		for i := range c.Items {
			c.Items[i].ID = 0
			c.Items[i].CartID = c.CartID
		}
		if len(c.Items) > 0 {
			if err := tx.Create(&c.Items).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Cart{}).Where("cart_id = ?", c.CartID).Update("updated_at", c.UpdatedAt).Error
	})
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, sessionID, c)
	return c, nil
}

// afterMutation enforces the coupon invariant and fans out to
// subscribers. Coupon clearing is best-effort: a Redis hiccup must not
// fail the cart write it trails.
func (s *CartStore) afterMutation(ctx context.Context, sessionID string, c *models.Cart) {
	if err := s.sessions.ClearCoupon(ctx, sessionID); err != nil {
		log.Printf("clear coupon for session %s: %v", sessionID, err)
	}
	if s.onChange != nil {
		s.onChange(sessionID, c)
	}
}
