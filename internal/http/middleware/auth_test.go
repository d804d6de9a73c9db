// README: Tests for the auth middleware and caller context getters.
package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"nosh/internal/auth"
	"nosh/internal/http/middleware"
	"nosh/internal/infra"
)

// stubVerifier is a test double for infra.TokenVerifier.
type stubVerifier struct {
	token *infra.FirebaseToken
	err   error
}

func (s *stubVerifier) VerifyIDToken(_ context.Context, _ string) (*infra.FirebaseToken, error) {
	return s.token, s.err
}

func newTestRouter(verifier infra.TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Auth(verifier, nil))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"uid":        middleware.CallerUID(c),
			"role":       middleware.CallerRole(c).String(),
			"vendor_ids": middleware.CallerVendorIDs(c),
		})
	})
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingHeader(t *testing.T) {
	r := newTestRouter(&stubVerifier{token: &infra.FirebaseToken{UID: "user1"}})
	if w := doGet(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_InvalidBearerPrefix(t *testing.T) {
	r := newTestRouter(&stubVerifier{token: &infra.FirebaseToken{UID: "user1"}})
	if w := doGet(r, "Token sometoken"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_VerifierError(t *testing.T) {
	r := newTestRouter(&stubVerifier{err: errors.New("bad token")})
	if w := doGet(r, "Bearer invalidtoken"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_ValidToken_UIDAndRolePopulated(t *testing.T) {
	token := &infra.FirebaseToken{
		UID:    "courier123",
		Claims: map[string]interface{}{"role": "courier"},
	}
	r := newTestRouter(&stubVerifier{token: token})
	w := doGet(r, "Bearer validtoken")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "courier123") {
		t.Errorf("expected uid courier123 in body, got %s", body)
	}
	if !strings.Contains(body, `"role":"courier"`) {
		t.Errorf("expected role courier in body, got %s", body)
	}
}

func TestAuth_UnknownRoleClaimResolvesToNone(t *testing.T) {
	token := &infra.FirebaseToken{
		UID:    "user456",
		Claims: map[string]interface{}{"role": "superuser"},
	}
	r := newTestRouter(&stubVerifier{token: token})
	w := doGet(r, "Bearer validtoken")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"role":"none"`) {
		t.Errorf("unknown role claim must resolve to none, got %s", w.Body.String())
	}
}

func TestAuth_VendorAdminClaimsShortCircuit(t *testing.T) {
	token := &infra.FirebaseToken{
		UID: "owner1",
		Claims: map[string]interface{}{
			"role":       "vendor_admin",
			"vendor_ids": []interface{}{"v1", "v1", "v2"},
		},
	}
	// nil vendor store: the claims must be enough.
	r := newTestRouter(&stubVerifier{token: token})
	w := doGet(r, "Bearer validtoken")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"vendor_ids":["v1","v2"]`) {
		t.Errorf("expected deduplicated vendor ids, got %s", body)
	}
}

func TestAuth_VendorLookupFailureIsNotADeny(t *testing.T) {
	token := &infra.FirebaseToken{
		UID:    "owner2",
		Claims: map[string]interface{}{"role": "vendor_admin"},
	}
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Auth(&stubVerifier{token: token}, failingVendorStore{}))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer validtoken")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 on affiliation lookup failure, got %d", w.Code)
	}
}

type failingVendorStore struct{}

func (failingVendorStore) VendorIDsByOwner(_ context.Context, _ string) ([]string, error) {
	return nil, errors.New("connection refused")
}

var _ auth.VendorStore = failingVendorStore{}
