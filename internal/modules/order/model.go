// README: Order aggregate and status definitions.
package order

import (
	"time"

	"nosh/internal/types"
)

type Status string

const (
	StatusNone             Status = "NONE"
	StatusNew              Status = "NEW"
	StatusConfirmed        Status = "CONFIRMED"
	StatusPreparing        Status = "PREPARING"
	StatusPickedUp         Status = "PICKED_UP"
	StatusOnRoute          Status = "ON_ROUTE"
	StatusDelivered        Status = "DELIVERED"
	StatusRejected         Status = "REJECTED"
	StatusCanceledByVendor Status = "CANCELED_BY_VENDOR"
)

// ParseStatus validates a wire status value. StatusNone is internal-only and
// never accepted from a request.
func ParseStatus(v string) (Status, bool) {
	switch s := Status(v); s {
	case StatusNew, StatusConfirmed, StatusPreparing, StatusPickedUp,
		StatusOnRoute, StatusDelivered, StatusRejected, StatusCanceledByVendor:
		return s, true
	}
	return "", false
}

// IsTerminal reports whether the status has no outgoing transitions for any role.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusRejected, StatusCanceledByVendor:
		return true
	}
	return false
}

type Order struct {
	ID            types.ID
	CustomerID    types.ID
	VendorID      types.ID
	BranchID      types.ID
	CourierID     *types.ID
	Status        Status
	StatusVersion int
	Dropoff       types.Point
	DeliveryFee   types.Money
	Note          string
	CreatedAt     time.Time
	ConfirmedAt   *time.Time
	PickedUpAt    *time.Time
	DeliveredAt   *time.Time
	ClosedAt      *time.Time
}

// Event is one row of the order audit trail.
type Event struct {
	ID         int64
	OrderID    types.ID
	FromStatus Status
	ToStatus   Status
	ActorRole  string
	ActorID    *types.ID
	Note       string
	CreatedAt  time.Time
}
