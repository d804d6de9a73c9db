// README: API gateway; registers routes and middleware, delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nosh/internal/ai"
	"nosh/internal/auth"
	"nosh/internal/http/handlers"
	"nosh/internal/http/middleware"
	"nosh/internal/infra"
	"nosh/internal/maps"
	"nosh/internal/modules/dispatch"
	"nosh/internal/modules/order"
	"nosh/internal/modules/vendor"
	"nosh/internal/ratelimit"
)

type ServerDeps struct {
	Order    *order.Service
	Vendor   *vendor.Service
	Dispatch *dispatch.Service
	Verifier infra.TokenVerifier
	Vendors  auth.VendorStore
	Limiter  *ratelimit.Limiter
	Routes   *maps.RouteService
	Drafter  ai.SupportDrafter
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	return &Server{deps: deps}
}

// Routes builds the gin engine with middleware and all API routes.
func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	api.Use(middleware.Auth(s.deps.Verifier, s.deps.Vendors))
	api.Use(middleware.RateLimit(s.deps.Limiter))

	orderHandler := handlers.NewOrderHandler(s.deps.Order, s.deps.Vendor, s.deps.Routes)
	api.POST("/orders", orderHandler.Create)
	api.GET("/orders/:id", orderHandler.Get)
	api.GET("/orders/:id/events", orderHandler.Events)
	api.GET("/orders/:id/eta", orderHandler.ETA)
	api.POST("/orders/:id/status", orderHandler.UpdateStatus)
	api.POST("/orders/:id/assign", orderHandler.Assign)

	courierHandler := handlers.NewCourierHandler(s.deps.Dispatch)
	api.PUT("/couriers/location", courierHandler.UpdateLocation)
	api.DELETE("/couriers/location", courierHandler.GoOffline)

	vendorHandler := handlers.NewVendorHandler(s.deps.Vendor)
	api.POST("/vendors", vendorHandler.Apply)
	api.GET("/vendors/:id", vendorHandler.Get)

	adminHandler := handlers.NewAdminHandler(s.deps.Vendor, s.deps.Order, s.deps.Drafter)
	api.POST("/admin/vendors/:id/approve", adminHandler.ApproveVendor)
	api.POST("/admin/vendors/:id/suspend", adminHandler.SuspendVendor)
	api.POST("/admin/orders/:id/support-draft", adminHandler.SupportDraft)

	return r
}
