// Package session keeps the session-only storefront state (active
// currency, applied coupon, shipping selection) in Redis with a TTL.
// Cart contents are persisted separately in Postgres.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/techcrush-lms/storefront-api/models"
)

const DefaultCurrency = "USD"

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

// Get returns the session state, or a fresh default when the session has
// no record yet (first visit or expired).
func (s *Store) Get(ctx context.Context, sessionID string) (*models.SessionState, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return &models.SessionState{Currency: DefaultCurrency}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var state models.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal session failed: %w", err)
	}
	if state.Currency == "" {
		state.Currency = DefaultCurrency
	}
	return &state, nil
}

func (s *Store) Save(ctx context.Context, sessionID string, state *models.SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// SetCurrency switches the active display currency. Cart lines in other
// currencies stay put; they are filtered at read time. An applied coupon
// is dropped since its discount was computed against the old currency.
func (s *Store) SetCurrency(ctx context.Context, sessionID, currency string) error {
	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if state.Currency != currency {
		state.Coupon = nil
	}
	state.Currency = currency
	return s.Save(ctx, sessionID, state)
}

// ApplyCoupon records the discount the backend computed for this session.
func (s *Store) ApplyCoupon(ctx context.Context, sessionID string, info models.CouponInfo) error {
	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	state.Coupon = &info
	return s.Save(ctx, sessionID, state)
}

// ClearCoupon drops any applied coupon. Called on every cart mutation:
// a coupon is only valid against the exact amount it was computed for.
func (s *Store) ClearCoupon(ctx context.Context, sessionID string) error {
	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if state.Coupon == nil {
		return nil
	}
	state.Coupon = nil
	return s.Save(ctx, sessionID, state)
}

// SetShipping records the chosen shipping option id. Not persisted past
// the session; re-chosen each visit.
func (s *Store) SetShipping(ctx context.Context, sessionID string, optionID uint) error {
	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	state.ShippingOptionID = optionID
	return s.Save(ctx, sessionID, state)
}
