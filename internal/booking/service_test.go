package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/LilKangoo/cypruseye-backend/internal/catalog"
	"github.com/LilKangoo/cypruseye-backend/internal/coupon"
	"github.com/LilKangoo/cypruseye-backend/internal/pricing"
)

// --------------------------------------------------
// Mocks
// --------------------------------------------------

type mockCatalog struct {
	svc *catalog.Service
	err error
}

func (m *mockCatalog) GetByID(ctx context.Context, id string) (*catalog.Service, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.svc, nil
}

type mockQuoter struct {
	outcome coupon.Outcome
	calls   int
	lastReq coupon.QuoteRequest
}

func (m *mockQuoter) Quote(ctx context.Context, req coupon.QuoteRequest) coupon.Outcome {
	m.calls++
	m.lastReq = req
	return m.outcome
}

type mockStore struct {
	inserted  []*Booking
	insertErr error
}

func (m *mockStore) Insert(ctx context.Context, b *Booking) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, b)
	return nil
}

func (m *mockStore) GetByID(ctx context.Context, id string) (*Booking, error) {
	for _, b := range m.inserted {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockStore) ListByUser(ctx context.Context, userID string) ([]*Booking, error) {
	var out []*Booking
	for _, b := range m.inserted {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockStore) ListAll(ctx context.Context) ([]*Booking, error) {
	return m.inserted, nil
}

func tripService() *catalog.Service {
	return &catalog.Service{
		ID:           "svc-1",
		Type:         "trip",
		Name:         "Akamas Boat Trip",
		Currency:     "EUR",
		CategoryKeys: []string{"boat", "family"},
		Active:       true,
		Pricing: pricing.Item{
			Model:          pricing.PerPerson,
			PricePerPerson: 25,
		},
	}
}

func two() *float64 {
	v := 2.0
	return &v
}

// --------------------------------------------------
// Tests
// --------------------------------------------------

func TestCreateBookingWithoutCoupon(t *testing.T) {
	store := &mockStore{}
	quoter := &mockQuoter{}
	svc := NewService(&mockCatalog{svc: tripService()}, quoter, store)

	b, err := svc.CreateBooking(context.Background(), "user-1", "user@example.com", CreateInput{
		ServiceID: "svc-1",
		Adults:    two(),
		Children:  1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.BaseTotal != 75.00 {
		t.Errorf("base total = %v, want 75.00", b.BaseTotal)
	}
	if b.FinalTotal != 75.00 {
		t.Errorf("final total = %v, want base total when no coupon", b.FinalTotal)
	}
	if b.CouponCode != nil {
		t.Errorf("coupon code = %v, want nil", *b.CouponCode)
	}
	if quoter.calls != 0 {
		t.Errorf("quoter called %d times, want 0", quoter.calls)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("expected one persisted booking")
	}
	if b.ID == "" {
		t.Errorf("booking id not assigned")
	}
	if b.Status != "PENDING" {
		t.Errorf("status = %q, want PENDING", b.Status)
	}
}

func TestCreateBookingWithCoupon(t *testing.T) {
	store := &mockStore{}
	quoter := &mockQuoter{outcome: coupon.Outcome{
		OK:      true,
		Message: "Coupon applied",
		Result: &coupon.QuoteResult{
			IsValid:        true,
			CouponCode:     "SUMMER10",
			DiscountAmount: 7.5,
			FinalTotal:     67.5,
			Currency:       "EUR",
		},
	}}
	svc := NewService(&mockCatalog{svc: tripService()}, quoter, store)

	b, err := svc.CreateBooking(context.Background(), "user-1", "user@example.com", CreateInput{
		ServiceID:  "svc-1",
		Adults:     two(),
		Children:   1,
		CouponCode: "summer10",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quoter.calls != 1 {
		t.Fatalf("quoter called %d times, want 1", quoter.calls)
	}

	// The quote context comes from the priced booking, not the raw input.
	req := quoter.lastReq
	if req.BaseTotal != 75.00 {
		t.Errorf("quoted base total = %v, want 75.00", req.BaseTotal)
	}
	if req.ServiceType != "trip" || req.ResourceID != "svc-1" {
		t.Errorf("quote context = (%q, %q)", req.ServiceType, req.ResourceID)
	}
	if req.UserID != "user-1" || req.UserEmail != "user@example.com" {
		t.Errorf("quote identity = (%q, %q)", req.UserID, req.UserEmail)
	}
	if len(req.CategoryKeys) != 2 {
		t.Errorf("category keys = %v", req.CategoryKeys)
	}

	if b.DiscountAmount != 7.5 || b.FinalTotal != 67.5 {
		t.Errorf("totals = (%v, %v), want (7.5, 67.5)", b.DiscountAmount, b.FinalTotal)
	}
	if b.CouponCode == nil || *b.CouponCode != "SUMMER10" {
		t.Errorf("coupon code = %v, want SUMMER10", b.CouponCode)
	}
}

func TestCreateBookingCouponRejected(t *testing.T) {
	store := &mockStore{}
	quoter := &mockQuoter{outcome: coupon.Outcome{
		Message: "Coupon expired",
	}}
	svc := NewService(&mockCatalog{svc: tripService()}, quoter, store)

	_, err := svc.CreateBooking(context.Background(), "user-1", "", CreateInput{
		ServiceID:  "svc-1",
		CouponCode: "OLD",
	})

	var rejected *ErrCouponRejected
	if !errors.As(err, &rejected) {
		t.Fatalf("expected ErrCouponRejected, got %v", err)
	}
	if rejected.Reason != "Coupon expired" {
		t.Errorf("reason = %q", rejected.Reason)
	}
	if len(store.inserted) != 0 {
		t.Errorf("rejected booking must not be persisted")
	}
}

func TestCreateBookingServiceNotFound(t *testing.T) {
	svc := NewService(&mockCatalog{err: catalog.ErrNotFound}, &mockQuoter{}, &mockStore{})

	_, err := svc.CreateBooking(context.Background(), "user-1", "", CreateInput{
		ServiceID: "missing",
	})
	if !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
}

func TestPreviewPrice(t *testing.T) {
	svc := NewService(&mockCatalog{svc: tripService()}, &mockQuoter{}, &mockStore{})

	res, err := svc.PreviewPrice(context.Background(), "svc-1", pricing.PartyInput{
		Adults:   two(),
		Children: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 75.00 {
		t.Errorf("total = %v, want 75.00", res.Total)
	}
}

func TestCreateBookingDefaultsAdults(t *testing.T) {
	store := &mockStore{}
	svc := NewService(&mockCatalog{svc: tripService()}, &mockQuoter{}, store)

	b, err := svc.CreateBooking(context.Background(), "user-1", "", CreateInput{
		ServiceID: "svc-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Adults != 1 {
		t.Errorf("adults = %v, want 1", b.Adults)
	}
	if b.BaseTotal != 25.00 {
		t.Errorf("base total = %v, want 25.00", b.BaseTotal)
	}
}
