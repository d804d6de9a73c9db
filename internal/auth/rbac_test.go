// README: Tests for the RBAC decision function.
package auth

import "testing"

var allActions = []Action{ActionRead, ActionUpdate, ActionDelete}

func TestCanAccess_NoRoleAlwaysDenied(t *testing.T) {
	resources := []Resource{
		{},
		{Type: "order", OwnerUserID: "u1"},
		{Type: "order", VendorID: "v1"},
		{Type: "vendor", VendorID: "v1", OwnerUserID: "u1"},
	}
	for _, res := range resources {
		for _, a := range allActions {
			if CanAccess(Actor{Role: NoRole(), UserID: "u1"}, res, a) {
				t.Errorf("no role must deny %s on %+v", a, res)
			}
		}
	}
}

func TestCanAccess_PendingRolesDenied(t *testing.T) {
	res := Resource{Type: "order", OwnerUserID: "u1", VendorID: "v1"}
	for _, p := range []PendingRole{PendingVendorAdmin, PendingCourier, PendingGeneric} {
		actor := Actor{Role: Pending(p), UserID: "u1", VendorIDs: []string{"v1"}}
		for _, a := range allActions {
			if CanAccess(actor, res, a) {
				t.Errorf("pending role %s must deny %s", p, a)
			}
		}
	}
}

func TestCanAccess_AdminAlwaysAllowed(t *testing.T) {
	resources := []Resource{
		{},
		{Type: "order", OwnerUserID: "someone-else"},
		{Type: "order", VendorID: "not-mine"},
	}
	actor := Actor{Role: Primary(RoleAdmin), UserID: "a1"}
	for _, res := range resources {
		for _, a := range allActions {
			if !CanAccess(actor, res, a) {
				t.Errorf("admin must allow %s on %+v", a, res)
			}
		}
	}
}

func TestCanAccess_CustomerOwnership(t *testing.T) {
	actor := Actor{Role: Primary(RoleCustomer), UserID: "u1"}
	if !CanAccess(actor, Resource{Type: "order", OwnerUserID: "u1"}, ActionRead) {
		t.Error("customer must read their own order")
	}
	if CanAccess(actor, Resource{Type: "order", OwnerUserID: "u2"}, ActionRead) {
		t.Error("customer must not read another customer's order")
	}
	// Customers have no vendor-scoped access.
	if CanAccess(actor, Resource{Type: "order", VendorID: "v1"}, ActionRead) {
		t.Error("customer must not access by vendor id")
	}
	if CanAccess(actor, Resource{Type: "order"}, ActionRead) {
		t.Error("missing owner must deny")
	}
}

func TestCanAccess_VendorAdminScope(t *testing.T) {
	actor := Actor{Role: Primary(RoleVendorAdmin), UserID: "u1", VendorIDs: []string{"v1", "v2"}}
	if !CanAccess(actor, Resource{Type: "order", VendorID: "v2"}, ActionUpdate) {
		t.Error("vendor_admin must update an order of an administered vendor")
	}
	if CanAccess(Actor{Role: Primary(RoleVendorAdmin), UserID: "u1", VendorIDs: []string{"v3"}},
		Resource{Type: "order", VendorID: "v2"}, ActionUpdate) {
		t.Error("vendor_admin must not update a foreign vendor's order")
	}
	if CanAccess(actor, Resource{Type: "order"}, ActionUpdate) {
		t.Error("resource without vendor id must deny vendor_admin")
	}
	if CanAccess(Actor{Role: Primary(RoleVendorAdmin), UserID: "u1"},
		Resource{Type: "order", VendorID: "v1"}, ActionUpdate) {
		t.Error("vendor_admin without affiliations must be denied")
	}
	// Ownership alone does not grant vendor access.
	if CanAccess(actor, Resource{Type: "order", OwnerUserID: "u1"}, ActionRead) {
		t.Error("vendor_admin must not fall back to ownership checks")
	}
}

func TestCanAccess_CourierAssignment(t *testing.T) {
	actor := Actor{Role: Primary(RoleCourier), UserID: "c1"}
	if !CanAccess(actor, Resource{Type: "order", CourierID: "c1"}, ActionRead) {
		t.Error("courier must read an order assigned to them")
	}
	if CanAccess(actor, Resource{Type: "order", CourierID: "c2"}, ActionRead) {
		t.Error("courier must not read another courier's order")
	}
	if CanAccess(actor, Resource{Type: "order"}, ActionUpdate) {
		t.Error("unassigned order must deny courier")
	}
}
