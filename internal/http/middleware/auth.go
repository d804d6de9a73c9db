// README: Firebase bearer-token auth middleware; resolves role and vendor affiliations.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nosh/internal/auth"
	"nosh/internal/infra"
)

const (
	ctxUID       = "caller_uid"
	ctxRole      = "caller_role"
	ctxVendorIDs = "caller_vendor_ids"
)

// Auth verifies the Authorization bearer token, parses the role claim into
// the role union and, for vendor admins, resolves vendor affiliations (claims
// first, store fallback). Requests without a valid token get 401; a failing
// affiliation lookup is a 500, not a deny, because unknown is not denied.
func Auth(verifier infra.TokenVerifier, vendors auth.VendorStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token, err := verifier.VerifyIDToken(c.Request.Context(), strings.TrimPrefix(header, prefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		role := auth.ParseRole(roleClaim(token.Claims))

		var vendorIDs []string
		if role.Is(auth.RoleVendorAdmin) {
			vc, err := auth.ResolveVendorContext(c.Request.Context(), auth.VendorContextInput{
				Claims: token.Claims,
				Store:  vendors,
				UserID: token.UID,
			})
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "vendor lookup failed"})
				return
			}
			vendorIDs = vc.VendorIDs
		}

		c.Set(ctxUID, token.UID)
		c.Set(ctxRole, role)
		c.Set(ctxVendorIDs, vendorIDs)
		c.Next()
	}
}

func roleClaim(claims map[string]interface{}) string {
	if claims == nil {
		return ""
	}
	if s, ok := claims["role"].(string); ok {
		return s
	}
	return ""
}

// CallerUID returns the authenticated caller's user id, or "" if unset.
func CallerUID(c *gin.Context) string {
	if v, ok := c.Get(ctxUID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// CallerRole returns the caller's resolved role union; absent means no role.
func CallerRole(c *gin.Context) auth.Role {
	if v, ok := c.Get(ctxRole); ok {
		if r, ok := v.(auth.Role); ok {
			return r
		}
	}
	return auth.NoRole()
}

// CallerVendorIDs returns the vendor ids the caller administers.
func CallerVendorIDs(c *gin.Context) []string {
	if v, ok := c.Get(ctxVendorIDs); ok {
		if ids, ok := v.([]string); ok {
			return ids
		}
	}
	return nil
}

// CallerActor assembles the RBAC actor for the current request.
func CallerActor(c *gin.Context) auth.Actor {
	return auth.Actor{
		Role:      CallerRole(c),
		UserID:    CallerUID(c),
		VendorIDs: CallerVendorIDs(c),
	}
}
