// README: Vendor affiliation resolution from trusted claims or the vendor store.
package auth

import "context"

// VendorStore looks up the vendors a user owns. Implemented by the vendor
// module's store.
type VendorStore interface {
	VendorIDsByOwner(ctx context.Context, ownerUserID string) ([]string, error)
}

type VendorContextInput struct {
	// Claims is the verified token claim map; a non-empty "vendor_ids" claim
	// short-circuits the store lookup.
	Claims map[string]interface{}
	Store  VendorStore
	UserID string
}

type VendorContext struct {
	VendorIDs []string
}

// ResolveVendorContext returns the vendor ids the caller administers.
// Trusted claims win; otherwise a single read against the vendor store.
// "No vendors" is an empty slice, never an error; store failures propagate
// unmodified because denied and unknown are different outcomes.
func ResolveVendorContext(ctx context.Context, in VendorContextInput) (VendorContext, error) {
	if ids := claimVendorIDs(in.Claims); len(ids) > 0 {
		return VendorContext{VendorIDs: dedupe(ids)}, nil
	}
	if in.Store == nil || in.UserID == "" {
		return VendorContext{VendorIDs: []string{}}, nil
	}
	ids, err := in.Store.VendorIDsByOwner(ctx, in.UserID)
	if err != nil {
		return VendorContext{}, err
	}
	if ids == nil {
		ids = []string{}
	}
	return VendorContext{VendorIDs: dedupe(ids)}, nil
}

// claimVendorIDs extracts the vendor_ids claim, tolerating both []string and
// the []interface{} shape the Firebase SDK decodes JSON arrays into.
func claimVendorIDs(claims map[string]interface{}) []string {
	if claims == nil {
		return nil
	}
	switch v := claims["vendor_ids"].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// dedupe removes duplicates preserving first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
