package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LilKangoo/cypruseye-backend/internal/catalog"
	"github.com/LilKangoo/cypruseye-backend/internal/coupon"
	"github.com/LilKangoo/cypruseye-backend/internal/pricing"
)

var ErrServiceNotFound = errors.New("service not found")

// ErrCouponRejected carries the quoter's human-readable reason back to
// the handler; a booking with a bad coupon is rejected, not silently
// charged full price.
type ErrCouponRejected struct {
	Reason string
}

func (e *ErrCouponRejected) Error() string {
	return e.Reason
}

// CatalogReader is the slice of the catalog the booking flow needs.
type CatalogReader interface {
	GetByID(ctx context.Context, id string) (*catalog.Service, error)
}

// CouponQuoter matches *coupon.Quoter.
type CouponQuoter interface {
	Quote(ctx context.Context, req coupon.QuoteRequest) coupon.Outcome
}

// Store persists bookings.
type Store interface {
	Insert(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*Booking, error)
	ListAll(ctx context.Context) ([]*Booking, error)
}

type Service struct {
	catalog CatalogReader
	quoter  CouponQuoter
	store   Store
}

func NewService(catalog CatalogReader, quoter CouponQuoter, store Store) *Service {
	return &Service{
		catalog: catalog,
		quoter:  quoter,
		store:   store,
	}
}

// PreviewPrice prices a party against a catalog service without touching
// coupons or persistence.
func (s *Service) PreviewPrice(
	ctx context.Context,
	serviceID string,
	party pricing.PartyInput,
) (pricing.Result, error) {

	svc, err := s.catalog.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return pricing.Result{}, ErrServiceNotFound
		}
		return pricing.Result{}, fmt.Errorf("load service %s: %w", serviceID, err)
	}

	return pricing.Calculate(svc.Pricing, party), nil
}

// CreateBooking prices the party, applies an optional coupon and persists
// the result. The price calculator and the coupon quoter never call each
// other; this is the one place they are composed.
func (s *Service) CreateBooking(
	ctx context.Context,
	userID string,
	userEmail string,
	in CreateInput,
) (*Booking, error) {

	svc, err := s.catalog.GetByID(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("load service %s: %w", in.ServiceID, err)
	}

	priced := pricing.Calculate(svc.Pricing, in.party())

	b := &Booking{
		ID:         uuid.NewString(),
		ServiceID:  svc.ID,
		UserID:     userID,
		UserEmail:  userEmail,
		Children:   in.Children,
		Hours:      in.Hours,
		Days:       in.Days,
		Addons:     in.Addons,
		ServiceAt:  in.ServiceAt,
		BaseTotal:  priced.Total,
		FinalTotal: priced.Total,
		Currency:   svc.Currency,
		Status:     "PENDING",
		CreatedAt:  time.Now().UTC(),
	}
	if in.Adults != nil {
		b.Adults = *in.Adults
	} else {
		b.Adults = 1
	}
	if b.Currency == "" {
		b.Currency = "EUR"
	}

	if in.CouponCode != "" {
		outcome := s.quoter.Quote(ctx, coupon.QuoteRequest{
			ServiceType:  svc.Type,
			CouponCode:   in.CouponCode,
			BaseTotal:    priced.Total,
			ServiceAt:    in.ServiceAt,
			ResourceID:   svc.ID,
			CategoryKeys: svc.CategoryKeys,
			UserID:       userID,
			UserEmail:    userEmail,
		})
		if !outcome.OK {
			return nil, &ErrCouponRejected{Reason: outcome.Message}
		}

		code := outcome.Result.CouponCode
		b.CouponCode = &code
		b.DiscountAmount = outcome.Result.DiscountAmount
		b.FinalTotal = outcome.Result.FinalTotal
		b.Currency = outcome.Result.Currency
	}

	if err := s.store.Insert(ctx, b); err != nil {
		return nil, fmt.Errorf("save booking: %w", err)
	}

	return b, nil
}

func (s *Service) GetBooking(
	ctx context.Context,
	id string,
) (*Booking, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) ListBookings(
	ctx context.Context,
	userID string,
) ([]*Booking, error) {
	return s.store.ListByUser(ctx, userID)
}

// AllBookings is the admin view across all users.
func (s *Service) AllBookings(
	ctx context.Context,
) ([]*Booking, error) {
	return s.store.ListAll(ctx)
}
