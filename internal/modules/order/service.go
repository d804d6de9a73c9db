// README: Order service implements checkout, role-gated transitions and courier assignment.
package order

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math"
	"time"

	"nosh/internal/auth"
	"nosh/internal/types"
)

// Pricing quotes the delivery fee for an order at checkout.
type Pricing interface {
	Quote(ctx context.Context, vendorID types.ID, distanceKm float64) (types.Money, error)
}

type Service struct {
	store   *Store
	pricing Pricing
}

func NewService(store *Store, pricing Pricing) *Service {
	return &Service{store: store, pricing: pricing}
}

var (
	ErrBadRequest        = errors.New("bad request")
	ErrNotFound          = errors.New("order not found")
	ErrInvalidTransition = errors.New("transition not allowed")
	ErrConflict          = errors.New("order state conflict")
	ErrAlreadyAssigned   = errors.New("order already assigned")
)

// MaxNoteLen bounds the free-text note on checkout and transitions.
const MaxNoteLen = 500

type CreateCommand struct {
	CustomerID types.ID
	VendorID   types.ID
	BranchID   types.ID
	Dropoff    types.Point
	DistanceKm float64
	Note       string
}

type TransitionCommand struct {
	OrderID types.ID
	To      Status
	Role    auth.PrimaryRole
	ActorID types.ID
	Note    string
}

type AssignCommand struct {
	OrderID   types.ID
	CourierID types.ID
}

// Create places a NEW order for the customer. The delivery fee is quoted if a
// pricing service is wired; checkout does not fail on a missing quote.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (types.ID, error) {
	if cmd.CustomerID == "" || cmd.VendorID == "" || cmd.BranchID == "" || len(cmd.Note) > MaxNoteLen {
		return "", ErrBadRequest
	}

	id := newID()
	now := time.Now()
	fee := types.Money{Amount: 0, Currency: "USD"}
	if s.pricing != nil {
		if m, err := s.pricing.Quote(ctx, cmd.VendorID, cmd.DistanceKm); err == nil {
			fee = m
		}
	}

	o := &Order{
		ID:            id,
		CustomerID:    cmd.CustomerID,
		VendorID:      cmd.VendorID,
		BranchID:      cmd.BranchID,
		Status:        StatusNew,
		StatusVersion: 0,
		Dropoff:       cmd.Dropoff,
		DeliveryFee:   fee,
		Note:          cmd.Note,
		CreatedAt:     now,
	}
	if err := s.store.Create(ctx, o); err != nil {
		return "", err
	}
	_ = s.store.AppendEvent(ctx, &Event{
		OrderID:    id,
		FromStatus: StatusNone,
		ToStatus:   StatusNew,
		ActorRole:  string(auth.RoleCustomer),
		ActorID:    &cmd.CustomerID,
		CreatedAt:  now,
	})
	return id, nil
}

// Transition moves the order to cmd.To if the matrix allows it for cmd.Role.
// The write is conditional on the status and version observed in the read, so
// a concurrent transition surfaces as ErrConflict rather than a silent
// overwrite. Returns the updated order on success.
func (s *Service) Transition(ctx context.Context, cmd TransitionCommand) (*Order, error) {
	o, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, cmd.To, cmd.Role) {
		return nil, ErrInvalidTransition
	}
	ok, err := s.store.UpdateStatus(ctx, o.ID, o.Status, cmd.To, o.StatusVersion)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}
	actorID := cmd.ActorID
	_ = s.store.AppendEvent(ctx, &Event{
		OrderID:    o.ID,
		FromStatus: o.Status,
		ToStatus:   cmd.To,
		ActorRole:  string(cmd.Role),
		ActorID:    &actorID,
		Note:       cmd.Note,
		CreatedAt:  time.Now(),
	})
	return s.store.Get(ctx, o.ID)
}

// Assign attaches a courier to an order that does not have one yet.
func (s *Service) Assign(ctx context.Context, cmd AssignCommand) error {
	if cmd.CourierID == "" {
		return ErrBadRequest
	}
	o, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if o.CourierID != nil {
		return ErrAlreadyAssigned
	}
	if o.Status.IsTerminal() {
		return ErrInvalidTransition
	}
	ok, err := s.store.AssignCourier(ctx, o.ID, cmd.CourierID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Order, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Events(ctx context.Context, id types.ID) ([]Event, error) {
	return s.store.EventsByOrder(ctx, id)
}

// UnassignedPreparing lists orders the dispatch loop still needs a courier for.
func (s *Service) UnassignedPreparing(ctx context.Context, limit int) ([]*Order, error) {
	return s.store.ListUnassignedByStatus(ctx, StatusPreparing, limit)
}

func newID() types.ID {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return types.ID(hex.EncodeToString(b[:]))
}

// DistanceKm is the haversine distance between two points.
func DistanceKm(a, b types.Point) float64 {
	const R = 6371.0
	lat1 := a.Lat * math.Pi / 180.0
	lat2 := b.Lat * math.Pi / 180.0
	dlat := (b.Lat - a.Lat) * math.Pi / 180.0
	dlng := (b.Lng - a.Lng) * math.Pi / 180.0
	h := math.Sin(dlat/2)*math.Sin(dlat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlng/2)*math.Sin(dlng/2)
	return 2 * R * math.Asin(math.Sqrt(h))
}
