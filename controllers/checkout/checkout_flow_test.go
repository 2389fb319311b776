package checkoutControllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/techcrush-lms/storefront-api/models"
	"github.com/techcrush-lms/storefront-api/payment"
	"github.com/techcrush-lms/storefront-api/session"
	"github.com/techcrush-lms/storefront-api/store"
)

type fakeProvider struct {
	verifyCalls  int
	verifyCtxErr error
	result       *payment.VerifyResult
}

func (f *fakeProvider) Name() string      { return "fake" }
func (f *fakeProvider) PublicKey() string { return "pk_fake" }

func (f *fakeProvider) Initialize(ctx context.Context, req payment.InitRequest) (*payment.InitResult, error) {
	return &payment.InitResult{Provider: "fake", Reference: req.Reference, PublicKey: "pk_fake"}, nil
}

func (f *fakeProvider) Verify(ctx context.Context, reference string) (*payment.VerifyResult, error) {
	f.verifyCalls++
	f.verifyCtxErr = ctx.Err()
	if f.result != nil {
		return f.result, nil
	}
	return &payment.VerifyResult{Reference: reference, Status: payment.StatusSuccess}, nil
}

type checkoutFixture struct {
	checkout *Checkout
	db       *gorm.DB
	carts    *store.CartStore
	sessions *session.Store
	provider *fakeProvider
}

func newFixture(t *testing.T) *checkoutFixture {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Cart{}, &models.CartItem{},
		&models.Customer{},
		&models.Order{}, &models.OrderItem{},
		&models.PendingPayment{},
	))

	mr := miniredis.RunT(t)
	sessions := session.NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	carts := store.NewCartStore(db, sessions)
	provider := &fakeProvider{}

	return &checkoutFixture{
		checkout: New(db, carts, sessions, provider),
		db:       db,
		carts:    carts,
		sessions: sessions,
		provider: provider,
	}
}

func serveAs(sessionID string, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Any("/x/:reference", func(c *gin.Context) {
		c.Set("session_id", sessionID)
		handler(c)
	})
	return r
}

func pendingCount(t *testing.T, db *gorm.DB, reference string) int64 {
	var count int64
	require.NoError(t, db.Model(&models.PendingPayment{}).Where("reference = ?", reference).Count(&count).Error)
	return count
}

func TestCancelPayment_DeletesOnlyOwnMarker(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Create(&models.PendingPayment{SessionID: "sess_a", Reference: "ref-1", Provider: "fake", Currency: "USD"}).Error)
	require.NoError(t, f.db.Create(&models.PendingPayment{SessionID: "sess_b", Reference: "ref-2", Provider: "fake", Currency: "USD"}).Error)

	r := serveAs("sess_a", f.checkout.CancelPayment())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/x/ref-1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, pendingCount(t, f.db, "ref-1"))
	assert.EqualValues(t, 1, pendingCount(t, f.db, "ref-2")) // other sessions untouched
}

func TestCancelPayment_CannotDeleteAnotherSessionsMarker(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Create(&models.PendingPayment{SessionID: "sess_b", Reference: "ref-2", Provider: "fake", Currency: "USD"}).Error)

	r := serveAs("sess_a", f.checkout.CancelPayment())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/x/ref-2", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, pendingCount(t, f.db, "ref-2"))
}

func TestCleanup_EmptiesCartClearsCouponDeletesMarker(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.carts.AddItem(ctx, "sess_a", models.CartItem{
		ProductID:   1,
		ProductType: models.ProductTypeCourse,
		Currency:    "USD",
		UnitPrice:   decimal.RequireFromString("50"),
		Quantity:    1,
	})
	require.NoError(t, err)
	require.NoError(t, f.sessions.ApplyCoupon(ctx, "sess_a", models.CouponInfo{
		Code:     "SAVE10",
		Discount: decimal.RequireFromString("5"),
	}))

	pending := models.PendingPayment{SessionID: "sess_a", Reference: "ref-5", Provider: "fake", Currency: "USD"}
	require.NoError(t, f.db.Create(&pending).Error)

	f.checkout.cleanup(ctx, &pending)

	cart, err := f.carts.Load(ctx, "sess_a")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	state, err := f.sessions.Get(ctx, "sess_a")
	require.NoError(t, err)
	assert.Nil(t, state.Coupon)

	assert.EqualValues(t, 0, pendingCount(t, f.db, "ref-5"))
}

func TestVerifyPayment_IdempotentOnExistingOrder(t *testing.T) {
	f := newFixture(t)
	order := models.Order{
		Reference:     "ref-9",
		Currency:      "USD",
		Status:        models.OrderStatusConfirmed,
		PaymentStatus: models.PaymentStatusPaid,
	}
	require.NoError(t, f.db.Omit("Customer", "Items").Create(&order).Error)

	r := serveAs("sess_a", f.checkout.VerifyPayment())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/x/ref-9", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ref-9")
	assert.Equal(t, 0, f.provider.verifyCalls) // no second provider round-trip
}

func TestPaymentStatus_SurvivesCallerCancel(t *testing.T) {
	f := newFixture(t)

	r := serveAs("sess_a", f.checkout.PaymentStatus())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/x/ref-1", nil).WithContext(ctx))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, f.provider.verifyCalls)
	assert.NoError(t, f.provider.verifyCtxErr) // provider call detached from the cancelled caller
}
