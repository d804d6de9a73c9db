// README: Delivery rate store backed by PostgreSQL.
package pricing

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nosh/internal/types"
)

var ErrNoRate = errors.New("no rate configured")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) GetRate(ctx context.Context, vendorID types.ID) (Rate, error) {
	row := s.db.QueryRow(ctx, `
        SELECT base_fee, per_km, currency
        FROM delivery_rates
        WHERE vendor_id = $1`, string(vendorID),
	)

	var r Rate
	err := row.Scan(&r.BaseFee, &r.PerKm, &r.Currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return Rate{}, ErrNoRate
	}
	if err != nil {
		return Rate{}, err
	}
	return r, nil
}
