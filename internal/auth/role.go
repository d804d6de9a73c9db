// README: Role tagged union; primary roles carry permissions, pending roles do not.
package auth

// PrimaryRole is a settled, permission-bearing role.
type PrimaryRole string

const (
	RoleCustomer    PrimaryRole = "customer"
	RoleVendorAdmin PrimaryRole = "vendor_admin"
	RoleCourier     PrimaryRole = "courier"
	RoleAdmin       PrimaryRole = "admin"
)

// PendingRole is a transient onboarding marker awaiting admin approval.
// It grants nothing; it only exists so the caller can route onboarding flows.
type PendingRole string

const (
	PendingVendorAdmin PendingRole = "vendor_admin_pending"
	PendingCourier     PendingRole = "courier_pending"
	PendingGeneric     PendingRole = "pending"
)

type RoleKind int

const (
	KindNone RoleKind = iota
	KindPrimary
	KindPending
)

// Role is the tagged union over primary, pending and absent roles.
// Exactly one arm is meaningful, selected by Kind.
type Role struct {
	Kind    RoleKind
	Primary PrimaryRole
	Pending PendingRole
}

func NoRole() Role {
	return Role{Kind: KindNone}
}

func Primary(p PrimaryRole) Role {
	return Role{Kind: KindPrimary, Primary: p}
}

func Pending(p PendingRole) Role {
	return Role{Kind: KindPending, Pending: p}
}

// ParseRole maps a raw role claim to the union. Unknown or empty strings
// resolve to no role at all rather than an error: an unrecognised claim must
// deny, not fail.
func ParseRole(claim string) Role {
	switch PrimaryRole(claim) {
	case RoleCustomer, RoleVendorAdmin, RoleCourier, RoleAdmin:
		return Primary(PrimaryRole(claim))
	}
	switch PendingRole(claim) {
	case PendingVendorAdmin, PendingCourier, PendingGeneric:
		return Pending(PendingRole(claim))
	}
	return NoRole()
}

func (r Role) IsPrimary() bool {
	return r.Kind == KindPrimary
}

// Is reports whether the role is the given settled primary role.
func (r Role) Is(p PrimaryRole) bool {
	return r.Kind == KindPrimary && r.Primary == p
}

func (r Role) String() string {
	switch r.Kind {
	case KindPrimary:
		return string(r.Primary)
	case KindPending:
		return string(r.Pending)
	default:
		return "none"
	}
}
