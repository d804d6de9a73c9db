// README: Tests for the per-role transition matrix.
package order

import (
	"testing"

	"nosh/internal/auth"
)

var allStatuses = []Status{
	StatusNew, StatusConfirmed, StatusPreparing, StatusPickedUp,
	StatusOnRoute, StatusDelivered, StatusRejected, StatusCanceledByVendor,
}

var terminalStatuses = []Status{StatusDelivered, StatusRejected, StatusCanceledByVendor}

func TestCanTransition_VendorAdminRows(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusNew, StatusConfirmed, true},
		{StatusNew, StatusRejected, true},
		{StatusConfirmed, StatusPreparing, true},
		{StatusConfirmed, StatusCanceledByVendor, true},
		{StatusPreparing, StatusPickedUp, true},
		{StatusPreparing, StatusCanceledByVendor, true},
		{StatusPickedUp, StatusOnRoute, true},
		{StatusOnRoute, StatusDelivered, true},
		// skipping steps is not allowed
		{StatusNew, StatusPreparing, false},
		{StatusNew, StatusPickedUp, false},
		{StatusConfirmed, StatusDelivered, false},
		{StatusPickedUp, StatusDelivered, false},
		// no going backwards
		{StatusConfirmed, StatusNew, false},
		{StatusOnRoute, StatusPreparing, false},
		// cancel is only available before pickup
		{StatusPickedUp, StatusCanceledByVendor, false},
		{StatusOnRoute, StatusCanceledByVendor, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to, auth.RoleVendorAdmin); got != c.want {
			t.Errorf("vendor_admin %s -> %s = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestCanTransition_CourierRows(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPreparing, StatusPickedUp, true},
		{StatusPickedUp, StatusOnRoute, true},
		{StatusPickedUp, StatusDelivered, true},
		{StatusOnRoute, StatusDelivered, true},
		// couriers never touch the vendor-side stages
		{StatusNew, StatusConfirmed, false},
		{StatusNew, StatusPickedUp, false},
		{StatusConfirmed, StatusPreparing, false},
		{StatusPreparing, StatusCanceledByVendor, false},
		{StatusOnRoute, StatusCanceledByVendor, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to, auth.RoleCourier); got != c.want {
			t.Errorf("courier %s -> %s = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestCanTransition_AdminOverridesEverything(t *testing.T) {
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			if !CanTransition(from, to, auth.RoleAdmin) {
				t.Errorf("admin %s -> %s must be allowed", from, to)
			}
		}
	}
}

func TestCanTransition_TerminalStatusesAreFinal(t *testing.T) {
	for _, from := range terminalStatuses {
		if !from.IsTerminal() {
			t.Errorf("%s must be terminal", from)
		}
		for _, to := range allStatuses {
			for _, role := range []auth.PrimaryRole{auth.RoleCustomer, auth.RoleVendorAdmin, auth.RoleCourier} {
				if CanTransition(from, to, role) {
					t.Errorf("%s %s -> %s must be denied", role, from, to)
				}
			}
		}
	}
}

func TestCanTransition_RolesWithoutRowsDenyAll(t *testing.T) {
	// Customers have no matrix entry at all; couriers have none for NEW or
	// CONFIRMED. Every target must be denied for those sources.
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			if CanTransition(from, to, auth.RoleCustomer) {
				t.Errorf("customer %s -> %s must be denied", from, to)
			}
		}
	}
	for _, from := range []Status{StatusNew, StatusConfirmed} {
		for _, to := range allStatuses {
			if CanTransition(from, to, auth.RoleCourier) {
				t.Errorf("courier %s -> %s must be denied", from, to)
			}
		}
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range allStatuses {
		got, ok := ParseStatus(string(s))
		if !ok || got != s {
			t.Errorf("ParseStatus(%q) = %q, %v", s, got, ok)
		}
	}
	for _, bad := range []string{"", "NONE", "new", "SHIPPED", "Delivered"} {
		if _, ok := ParseStatus(bad); ok {
			t.Errorf("ParseStatus(%q) must fail", bad)
		}
	}
}
