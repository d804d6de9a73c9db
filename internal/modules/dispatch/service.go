// README: Dispatch service: courier availability and the background assign loop.
package dispatch

import (
	"context"
	"errors"
	"log"
	"time"

	"nosh/internal/config"
	"nosh/internal/modules/order"
	"nosh/internal/types"
)

var ErrBadRequest = errors.New("bad request")

// OrderAssigner is the slice of the order service the assign loop needs.
type OrderAssigner interface {
	UnassignedPreparing(ctx context.Context, limit int) ([]*order.Order, error)
	Assign(ctx context.Context, cmd order.AssignCommand) error
}

// BranchLocator resolves a branch id to its coordinates.
type BranchLocator interface {
	BranchPoint(ctx context.Context, branchID types.ID) (types.Point, error)
}

type Service struct {
	store    *Store
	orders   OrderAssigner
	branches BranchLocator
	cfg      config.DispatchConfig
}

func NewService(store *Store, orders OrderAssigner, branches BranchLocator, cfg config.DispatchConfig) *Service {
	return &Service{store: store, orders: orders, branches: branches, cfg: cfg}
}

func (s *Service) UpdateLocation(ctx context.Context, courierID types.ID, pos types.Point) error {
	if courierID == "" {
		return ErrBadRequest
	}
	return s.store.SetLocation(ctx, courierID, pos)
}

func (s *Service) GoOffline(ctx context.Context, courierID types.ID) error {
	if courierID == "" {
		return ErrBadRequest
	}
	return s.store.Remove(ctx, courierID)
}

// Nearest returns the closest available courier to p, or "" when none is in
// range.
func (s *Service) Nearest(ctx context.Context, p types.Point) (types.ID, error) {
	couriers, err := s.store.Nearby(ctx, p, s.cfg.RadiusKm)
	if err != nil {
		return "", err
	}
	if len(couriers) == 0 {
		return "", nil
	}
	return couriers[0].ID, nil
}

// RunAssignLoop periodically attaches the nearest available courier to
// PREPARING orders that have none. Losing the conditional assign (another
// process got there first) is not an error.
func (s *Service) RunAssignLoop(ctx context.Context) {
	tick := time.Duration(s.cfg.TickSeconds) * time.Second
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.assignPending(ctx)
		}
	}
}

func (s *Service) assignPending(ctx context.Context) {
	orders, err := s.orders.UnassignedPreparing(ctx, 20)
	if err != nil {
		log.Printf("dispatch: list unassigned: %v", err)
		return
	}
	for _, o := range orders {
		point, err := s.branches.BranchPoint(ctx, o.BranchID)
		if err != nil {
			log.Printf("dispatch: branch %s: %v", o.BranchID, err)
			continue
		}
		courierID, err := s.Nearest(ctx, point)
		if err != nil {
			log.Printf("dispatch: nearby lookup: %v", err)
			continue
		}
		if courierID == "" {
			continue
		}
		err = s.orders.Assign(ctx, order.AssignCommand{OrderID: o.ID, CourierID: courierID})
		if err != nil && err != order.ErrAlreadyAssigned && err != order.ErrConflict {
			log.Printf("dispatch: assign %s to %s: %v", courierID, o.ID, err)
		}
	}
}
