// README: Courier availability handlers.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"nosh/internal/auth"
	"nosh/internal/http/middleware"
	"nosh/internal/modules/dispatch"
	"nosh/internal/types"
)

type CourierHandler struct {
	dispatch *dispatch.Service
}

func NewCourierHandler(dispatchSvc *dispatch.Service) *CourierHandler {
	return &CourierHandler{dispatch: dispatchSvc}
}

type locationReq struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// UpdateLocation reports the courier's position and marks them available.
func (h *CourierHandler) UpdateLocation(c *gin.Context) {
	if !middleware.CallerRole(c).Is(auth.RoleCourier) {
		writeError(c, http.StatusForbidden, "courier role required")
		return
	}
	var req locationReq
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	err := h.dispatch.UpdateLocation(c.Request.Context(),
		types.ID(middleware.CallerUID(c)),
		types.Point{Lat: req.Lat, Lng: req.Lng})
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"available": true})
}

// GoOffline removes the courier from the dispatch pool.
func (h *CourierHandler) GoOffline(c *gin.Context) {
	if !middleware.CallerRole(c).Is(auth.RoleCourier) {
		writeError(c, http.StatusForbidden, "courier role required")
		return
	}
	if err := h.dispatch.GoOffline(c.Request.Context(), types.ID(middleware.CallerUID(c))); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"available": false})
}
