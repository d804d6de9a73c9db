// README: Per-role order transition matrix (state diagram as code).
package order

import "nosh/internal/auth"

// TransitionsByRole maps a settled role to the statuses it may move an order
// between. A missing role or source status means no permitted transitions.
// Terminal statuses never appear as sources. Admin is intentionally absent:
// admin overrides the matrix entirely in CanTransition.
var TransitionsByRole = map[auth.PrimaryRole]map[Status][]Status{
	auth.RoleVendorAdmin: {
		StatusNew:       {StatusConfirmed, StatusRejected},
		StatusConfirmed: {StatusPreparing, StatusCanceledByVendor},
		StatusPreparing: {StatusPickedUp, StatusCanceledByVendor},
		StatusPickedUp:  {StatusOnRoute},
		StatusOnRoute:   {StatusDelivered},
	},
	auth.RoleCourier: {
		StatusPreparing: {StatusPickedUp},
		StatusPickedUp:  {StatusOnRoute, StatusDelivered},
		StatusOnRoute:   {StatusDelivered},
	},
}

// CanTransition reports whether role may move an order from one status to
// another. Admin may force any transition, including out of terminal
// statuses. Both statuses are assumed to be validated enum members.
func CanTransition(from, to Status, role auth.PrimaryRole) bool {
	if role == auth.RoleAdmin {
		return true
	}
	byStatus, ok := TransitionsByRole[role]
	if !ok {
		return false
	}
	next, ok := byStatus[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
