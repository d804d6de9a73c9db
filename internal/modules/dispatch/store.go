// README: Courier pool backed by Redis GEO.
package dispatch

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"nosh/internal/types"
)

const (
	courierGeoKey = "dispatch:couriers"
	// Liveness marker per courier; a courier that stops reporting falls out
	// of consideration once the marker expires.
	seenKeyPrefix = "dispatch:courier:seen:"
	seenTTL       = 2 * time.Minute
)

type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

// SetLocation upserts the courier in the GEO pool and refreshes liveness.
func (s *Store) SetLocation(ctx context.Context, id types.ID, pos types.Point) error {
	if err := s.redis.GeoAdd(ctx, courierGeoKey, &redis.GeoLocation{
		Name:      string(id),
		Longitude: pos.Lng,
		Latitude:  pos.Lat,
	}).Err(); err != nil {
		return err
	}
	return s.redis.Set(ctx, seenKeyPrefix+string(id), time.Now().Unix(), seenTTL).Err()
}

func (s *Store) Remove(ctx context.Context, id types.ID) error {
	if err := s.redis.ZRem(ctx, courierGeoKey, string(id)).Err(); err != nil {
		return err
	}
	return s.redis.Del(ctx, seenKeyPrefix+string(id)).Err()
}

// Nearby returns couriers within radiusKm of p, nearest first, filtered to
// those whose liveness marker is still present.
func (s *Store) Nearby(ctx context.Context, p types.Point, radiusKm float64) ([]Courier, error) {
	results, err := s.redis.GeoSearchLocation(ctx, courierGeoKey, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  p.Lng,
			Latitude:   p.Lat,
			Radius:     radiusKm,
			RadiusUnit: "km",
			Sort:       "ASC",
		},
		WithCoord: true,
	}).Result()
	if err != nil {
		return nil, err
	}

	couriers := make([]Courier, 0, len(results))
	for _, r := range results {
		alive, err := s.redis.Exists(ctx, seenKeyPrefix+r.Name).Result()
		if err != nil {
			return nil, err
		}
		if alive == 1 {
			couriers = append(couriers, Courier{
				ID:       types.ID(r.Name),
				Position: types.Point{Lat: r.Latitude, Lng: r.Longitude},
			})
		}
	}
	return couriers, nil
}
