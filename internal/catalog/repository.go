package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LilKangoo/cypruseye-backend/internal/pricing"
)

var ErrNotFound = errors.New("service not found")

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const serviceColumns = `
	id,
	type,
	name,
	currency,
	category_keys,
	active,
	pricing_model,
	price_base,
	price_per_person,
	price_extra_person,
	included_people,
	min_hours,
	created_at,
	updated_at
`

func (r *Repository) GetByID(
	ctx context.Context,
	id string,
) (*Service, error) {

	row := r.db.QueryRow(ctx, `
		SELECT `+serviceColumns+`
		FROM services
		WHERE id = $1 AND active = true
	`, id)

	svc, err := scanService(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return svc, nil
}

func (r *Repository) ListByType(
	ctx context.Context,
	serviceType string,
) ([]*Service, error) {

	rows, err := r.db.Query(ctx, `
		SELECT `+serviceColumns+`
		FROM services
		WHERE type = $1 AND active = true
		ORDER BY name
	`, serviceType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}

	return services, rows.Err()
}

func scanService(row pgx.Row) (*Service, error) {
	var svc Service
	var model string

	err := row.Scan(
		&svc.ID,
		&svc.Type,
		&svc.Name,
		&svc.Currency,
		&svc.CategoryKeys,
		&svc.Active,
		&model,
		&svc.Pricing.PriceBase,
		&svc.Pricing.PricePerPerson,
		&svc.Pricing.PriceExtraPerson,
		&svc.Pricing.IncludedPeople,
		&svc.Pricing.MinHours,
		&svc.CreatedAt,
		&svc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Unrecognized tags pass through as-is; the calculator's unknown-model
	// fallback handles them.
	svc.Pricing.Model = pricing.Model(model)
	return &svc, nil
}
