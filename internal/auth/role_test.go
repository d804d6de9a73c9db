// README: Tests for role claim parsing.
package auth

import "testing"

func TestParseRole_Primary(t *testing.T) {
	for _, p := range []PrimaryRole{RoleCustomer, RoleVendorAdmin, RoleCourier, RoleAdmin} {
		r := ParseRole(string(p))
		if r.Kind != KindPrimary || r.Primary != p {
			t.Errorf("ParseRole(%q) = %+v, want primary %s", p, r, p)
		}
		if !r.IsPrimary() || !r.Is(p) {
			t.Errorf("ParseRole(%q) should satisfy IsPrimary and Is(%s)", p, p)
		}
	}
}

func TestParseRole_Pending(t *testing.T) {
	for _, p := range []PendingRole{PendingVendorAdmin, PendingCourier, PendingGeneric} {
		r := ParseRole(string(p))
		if r.Kind != KindPending || r.Pending != p {
			t.Errorf("ParseRole(%q) = %+v, want pending %s", p, r, p)
		}
		if r.IsPrimary() {
			t.Errorf("pending role %q must not be primary", p)
		}
	}
}

func TestParseRole_UnknownFailsClosed(t *testing.T) {
	for _, claim := range []string{"", "root", "superadmin", "Customer", "vendor"} {
		if r := ParseRole(claim); r.Kind != KindNone {
			t.Errorf("ParseRole(%q) = %+v, want none", claim, r)
		}
	}
}

func TestRole_String(t *testing.T) {
	if got := NoRole().String(); got != "none" {
		t.Errorf("NoRole().String() = %q", got)
	}
	if got := Primary(RoleCourier).String(); got != "courier" {
		t.Errorf("Primary(courier).String() = %q", got)
	}
	if got := Pending(PendingCourier).String(); got != "courier_pending" {
		t.Errorf("Pending(courier_pending).String() = %q", got)
	}
}
