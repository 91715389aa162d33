package booking

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("booking not found")

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(
	ctx context.Context,
	b *Booking,
) error {

	_, err := r.db.Exec(ctx, `
		INSERT INTO bookings (
			id,
			service_id,
			user_id,
			user_email,
			adults,
			children,
			hours,
			days,
			addons,
			service_at,
			base_total,
			coupon_code,
			discount_amount,
			final_total,
			currency,
			status,
			created_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`,
		b.ID,
		b.ServiceID,
		b.UserID,
		b.UserEmail,
		b.Adults,
		b.Children,
		b.Hours,
		b.Days,
		b.Addons,
		b.ServiceAt,
		b.BaseTotal,
		b.CouponCode,
		b.DiscountAmount,
		b.FinalTotal,
		b.Currency,
		b.Status,
		b.CreatedAt,
	)

	return err
}

const bookingColumns = `
	id,
	service_id,
	user_id,
	user_email,
	adults,
	children,
	hours,
	days,
	addons,
	service_at,
	base_total,
	coupon_code,
	discount_amount,
	final_total,
	currency,
	status,
	created_at
`

func (r *Repository) GetByID(
	ctx context.Context,
	id string,
) (*Booking, error) {

	row := r.db.QueryRow(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE id = $1
	`, id)

	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return b, nil
}

func (r *Repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]*Booking, error) {

	rows, err := r.db.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

func (r *Repository) ListAll(
	ctx context.Context,
) ([]*Booking, error) {

	rows, err := r.db.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking

	err := row.Scan(
		&b.ID,
		&b.ServiceID,
		&b.UserID,
		&b.UserEmail,
		&b.Adults,
		&b.Children,
		&b.Hours,
		&b.Days,
		&b.Addons,
		&b.ServiceAt,
		&b.BaseTotal,
		&b.CouponCode,
		&b.DiscountAmount,
		&b.FinalTotal,
		&b.Currency,
		&b.Status,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &b, nil
}
