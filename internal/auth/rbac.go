// README: Pure RBAC decision function over actor, resource and action.
package auth

// Action is the closed set of operations a caller may request on a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Actor is the authenticated caller of an operation.
// VendorIDs is the set of vendors the actor administers; it is only
// meaningful for vendor_admin and must already be deduplicated
// (ResolveVendorContext takes care of that).
type Actor struct {
	Role      Role
	UserID    string
	VendorIDs []string
}

// Resource is the target of an action. OwnerUserID is the customer that
// created it, VendorID the vendor entity that fulfils it, CourierID the
// courier it is assigned to. The fields are independent.
type Resource struct {
	Type        string
	OwnerUserID string
	VendorID    string
	CourierID   string
}

// CanAccess decides whether the actor may perform action on resource.
// It is total over its inputs and fails closed: no role, pending roles and
// unrecognised roles all deny.
func CanAccess(actor Actor, res Resource, action Action) bool {
	if actor.Role.Kind != KindPrimary {
		return false
	}
	switch actor.Role.Primary {
	case RoleAdmin:
		// Admin bypasses ownership and vendor scoping for every action.
		return true
	case RoleCustomer:
		return res.OwnerUserID != "" && res.OwnerUserID == actor.UserID
	case RoleVendorAdmin:
		if res.VendorID == "" {
			return false
		}
		for _, v := range actor.VendorIDs {
			if v == res.VendorID {
				return true
			}
		}
		return false
	case RoleCourier:
		// A courier only touches resources currently assigned to them.
		// Status mutation is additionally gated by the transition matrix.
		return res.CourierID != "" && res.CourierID == actor.UserID
	default:
		return false
	}
}
