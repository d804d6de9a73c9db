// README: Order handlers: checkout, read, status transitions, assignment, ETA.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nosh/internal/auth"
	"nosh/internal/http/middleware"
	"nosh/internal/maps"
	"nosh/internal/modules/order"
	"nosh/internal/modules/vendor"
	"nosh/internal/types"
)

type OrderHandler struct {
	order   *order.Service
	vendors *vendor.Service
	routes  *maps.RouteService
}

func NewOrderHandler(orderSvc *order.Service, vendorSvc *vendor.Service, routes *maps.RouteService) *OrderHandler {
	return &OrderHandler{order: orderSvc, vendors: vendorSvc, routes: routes}
}

type createOrderReq struct {
	VendorID   string  `json:"vendor_id"`
	BranchID   string  `json:"branch_id"`
	DropoffLat float64 `json:"dropoff_lat"`
	DropoffLng float64 `json:"dropoff_lng"`
	Note       string  `json:"note"`
}

// Create places an order for the authenticated customer.
func (h *OrderHandler) Create(c *gin.Context) {
	role := middleware.CallerRole(c)
	if !role.Is(auth.RoleCustomer) && !role.Is(auth.RoleAdmin) {
		writeError(c, http.StatusForbidden, "only customers can place orders")
		return
	}
	var req createOrderReq
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !isValidID(req.VendorID) || !isValidID(req.BranchID) {
		writeError(c, http.StatusBadRequest, "missing fields")
		return
	}
	if len(req.Note) > order.MaxNoteLen {
		writeError(c, http.StatusBadRequest, "note too long")
		return
	}

	dropoff := types.Point{Lat: req.DropoffLat, Lng: req.DropoffLng}
	var distanceKm float64
	if branch, err := h.vendors.GetBranch(c.Request.Context(), types.ID(req.BranchID)); err == nil {
		distanceKm = order.DistanceKm(branch.Position, dropoff)
	}

	id, err := h.order.Create(c.Request.Context(), order.CreateCommand{
		CustomerID: types.ID(middleware.CallerUID(c)),
		VendorID:   types.ID(req.VendorID),
		BranchID:   types.ID(req.BranchID),
		Dropoff:    dropoff,
		DistanceKm: distanceKm,
		Note:       req.Note,
	})
	if err != nil {
		writeOrderError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"order_id": id, "status": order.StatusNew})
}

// Get returns the order if the caller may read it.
func (h *OrderHandler) Get(c *gin.Context) {
	o, ok := h.authorizedOrder(c, auth.ActionRead)
	if !ok {
		return
	}
	writeJSON(c, http.StatusOK, orderResponse(o))
}

// Events returns the order's audit trail under the same read rule.
func (h *OrderHandler) Events(c *gin.Context) {
	o, ok := h.authorizedOrder(c, auth.ActionRead)
	if !ok {
		return
	}
	events, err := h.order.Events(c.Request.Context(), o.ID)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	out := make([]gin.H, 0, len(events))
	for _, e := range events {
		out = append(out, gin.H{
			"from":       e.FromStatus,
			"to":         e.ToStatus,
			"actor_role": e.ActorRole,
			"note":       e.Note,
			"created_at": e.CreatedAt,
		})
	}
	writeJSON(c, http.StatusOK, gin.H{"order_id": o.ID, "events": out})
}

type updateStatusReq struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// UpdateStatus moves the order through the lifecycle. Customers never mutate
// status directly; vendor admins and couriers must be participants of the
// order, and the transition matrix decides the rest.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	role := middleware.CallerRole(c)
	if !role.IsPrimary() || role.Is(auth.RoleCustomer) {
		writeError(c, http.StatusForbidden, "role cannot update order status")
		return
	}

	var req updateStatusReq
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	next, ok := order.ParseStatus(req.Status)
	if !ok {
		writeError(c, http.StatusBadRequest, "unknown status")
		return
	}
	if len(req.Note) > order.MaxNoteLen {
		writeError(c, http.StatusBadRequest, "note too long")
		return
	}

	o, ok := h.authorizedOrder(c, auth.ActionUpdate)
	if !ok {
		return
	}

	updated, err := h.order.Transition(c.Request.Context(), order.TransitionCommand{
		OrderID: o.ID,
		To:      next,
		Role:    role.Primary,
		ActorID: types.ID(middleware.CallerUID(c)),
		Note:    req.Note,
	})
	if err != nil {
		writeOrderError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, orderResponse(updated))
}

type assignReq struct {
	CourierID string `json:"courier_id"`
}

// Assign attaches a courier; vendor admins of the order's vendor and admins only.
func (h *OrderHandler) Assign(c *gin.Context) {
	role := middleware.CallerRole(c)
	if !role.Is(auth.RoleVendorAdmin) && !role.Is(auth.RoleAdmin) {
		writeError(c, http.StatusForbidden, "role cannot assign couriers")
		return
	}
	var req assignReq
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil || !isValidID(req.CourierID) {
		writeError(c, http.StatusBadRequest, "missing courier_id")
		return
	}

	o, ok := h.authorizedOrder(c, auth.ActionUpdate)
	if !ok {
		return
	}

	if err := h.order.Assign(c.Request.Context(), order.AssignCommand{
		OrderID:   o.ID,
		CourierID: types.ID(req.CourierID),
	}); err != nil {
		writeOrderError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"order_id": o.ID, "courier_id": req.CourierID})
}

// ETA returns a live delivery estimate from the fulfilling branch to the dropoff.
func (h *OrderHandler) ETA(c *gin.Context) {
	if h.routes == nil {
		writeError(c, http.StatusServiceUnavailable, "eta unavailable")
		return
	}
	o, ok := h.authorizedOrder(c, auth.ActionRead)
	if !ok {
		return
	}
	branch, err := h.vendors.GetBranch(c.Request.Context(), o.BranchID)
	if err != nil {
		writeVendorError(c, err)
		return
	}
	dur, distance, err := h.routes.DeliveryEstimate(c.Request.Context(), branch.Position, o.Dropoff)
	if err != nil {
		writeError(c, http.StatusBadGateway, "eta lookup failed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"order_id":    o.ID,
		"eta_seconds": int(dur / time.Second),
		"distance":    distance,
	})
}

// authorizedOrder loads the path order and runs the RBAC check for action.
// Writes the error response and returns ok=false when the caller may not
// proceed.
func (h *OrderHandler) authorizedOrder(c *gin.Context, action auth.Action) (*order.Order, bool) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid order id")
		return nil, false
	}
	o, err := h.order.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeOrderError(c, err)
		return nil, false
	}
	if !auth.CanAccess(middleware.CallerActor(c), orderResource(o), action) {
		writeError(c, http.StatusForbidden, "access denied")
		return nil, false
	}
	return o, true
}

func orderResource(o *order.Order) auth.Resource {
	res := auth.Resource{
		Type:        "order",
		OwnerUserID: string(o.CustomerID),
		VendorID:    string(o.VendorID),
	}
	if o.CourierID != nil {
		res.CourierID = string(*o.CourierID)
	}
	return res
}

func orderResponse(o *order.Order) gin.H {
	var courierID *string
	if o.CourierID != nil {
		s := string(*o.CourierID)
		courierID = &s
	}
	return gin.H{
		"id":             o.ID,
		"status":         o.Status,
		"status_version": o.StatusVersion,
		"customer_id":    o.CustomerID,
		"vendor_id":      o.VendorID,
		"branch_id":      o.BranchID,
		"courier_id":     courierID,
		"delivery_fee":   o.DeliveryFee.Amount,
		"currency":       o.DeliveryFee.Currency,
		"note":           o.Note,
		"created_at":     o.CreatedAt,
	}
}
