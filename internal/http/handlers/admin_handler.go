// README: Admin handlers: vendor approval and AI support drafting.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nosh/internal/ai"
	"nosh/internal/auth"
	"nosh/internal/http/middleware"
	"nosh/internal/modules/order"
	"nosh/internal/modules/vendor"
	"nosh/internal/types"
)

type AdminHandler struct {
	vendors *vendor.Service
	orders  *order.Service
	drafter ai.SupportDrafter
}

func NewAdminHandler(vendorSvc *vendor.Service, orderSvc *order.Service, drafter ai.SupportDrafter) *AdminHandler {
	return &AdminHandler{vendors: vendorSvc, orders: orderSvc, drafter: drafter}
}

func (h *AdminHandler) requireAdmin(c *gin.Context) bool {
	if !middleware.CallerRole(c).Is(auth.RoleAdmin) {
		writeError(c, http.StatusForbidden, "admin role required")
		return false
	}
	return true
}

// ApproveVendor settles a pending vendor application. Approval is what turns
// the applicant's pending role into a real vendor_admin upstream.
func (h *AdminHandler) ApproveVendor(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid vendor id")
		return
	}
	if err := h.vendors.Approve(c.Request.Context(), types.ID(id)); err != nil {
		writeVendorError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"vendor_id": id, "status": vendor.VendorApproved})
}

func (h *AdminHandler) SuspendVendor(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid vendor id")
		return
	}
	if err := h.vendors.Suspend(c.Request.Context(), types.ID(id)); err != nil {
		writeVendorError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"vendor_id": id, "status": vendor.VendorSuspended})
}

// SupportDraft asks the AI provider for a customer-facing note about the
// order's current status.
func (h *AdminHandler) SupportDraft(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	if h.drafter == nil {
		writeError(c, http.StatusServiceUnavailable, "support drafting unavailable")
		return
	}
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid order id")
		return
	}
	o, err := h.orders.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeOrderError(c, err)
		return
	}
	vendorName := ""
	if v, err := h.vendors.Get(c.Request.Context(), o.VendorID); err == nil {
		vendorName = v.Name
	}
	draft, err := h.drafter.DraftStatusNote(c.Request.Context(), ai.DraftRequest{
		OrderID:    string(o.ID),
		Status:     string(o.Status),
		VendorName: vendorName,
		Reason:     o.Note,
	})
	if err != nil {
		writeError(c, http.StatusBadGateway, "draft generation failed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"order_id": o.ID, "message": draft.Message, "tone": draft.Tone})
}
