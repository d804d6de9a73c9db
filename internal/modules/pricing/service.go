// README: Pricing service computes delivery fee quotes.
package pricing

import (
	"context"
	"errors"
	"math"

	"nosh/internal/types"
)

// defaultRate applies to vendors without a configured rate row.
var defaultRate = Rate{BaseFee: 299, PerKm: 100, Currency: "USD"}

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Quote returns the delivery fee for the distance using the vendor's rate,
// falling back to the default when none is configured.
func (s *Service) Quote(ctx context.Context, vendorID types.ID, distanceKm float64) (types.Money, error) {
	rate := defaultRate
	if s.store != nil {
		r, err := s.store.GetRate(ctx, vendorID)
		switch {
		case err == nil:
			rate = r
		case errors.Is(err, ErrNoRate):
			// keep default
		default:
			return types.Money{}, err
		}
	}
	return fee(rate, distanceKm), nil
}

func fee(rate Rate, distanceKm float64) types.Money {
	if distanceKm < 0 {
		distanceKm = 0
	}
	amount := rate.BaseFee + int64(math.Ceil(distanceKm))*rate.PerKm
	return types.Money{Amount: amount, Currency: rate.Currency}
}
