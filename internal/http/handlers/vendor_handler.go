// README: Vendor application and read handlers.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"nosh/internal/auth"
	"nosh/internal/http/middleware"
	"nosh/internal/modules/vendor"
	"nosh/internal/types"
)

type VendorHandler struct {
	vendors *vendor.Service
}

func NewVendorHandler(vendorSvc *vendor.Service) *VendorHandler {
	return &VendorHandler{vendors: vendorSvc}
}

type applyReq struct {
	Name string `json:"name"`
}

// Apply files a vendor application for the caller. Any authenticated user may
// apply; the resulting vendor stays pending until an admin approves it.
func (h *VendorHandler) Apply(c *gin.Context) {
	var req applyReq
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(c, http.StatusBadRequest, "missing name")
		return
	}
	id, err := h.vendors.Apply(c.Request.Context(), vendor.ApplyCommand{
		Name:        req.Name,
		OwnerUserID: types.ID(middleware.CallerUID(c)),
	})
	if err != nil {
		writeVendorError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"vendor_id": id, "status": vendor.VendorPending})
}

// Get returns the vendor to its owner, its admins, or a platform admin.
func (h *VendorHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid vendor id")
		return
	}
	v, err := h.vendors.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeVendorError(c, err)
		return
	}
	res := auth.Resource{
		Type:        "vendor",
		OwnerUserID: string(v.OwnerUserID),
		VendorID:    string(v.ID),
	}
	if !auth.CanAccess(middleware.CallerActor(c), res, auth.ActionRead) {
		writeError(c, http.StatusForbidden, "access denied")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"id":         v.ID,
		"name":       v.Name,
		"status":     v.Status,
		"created_at": v.CreatedAt,
	})
}
