// README: Entry point; loads config, wires services, starts HTTP server and dispatch loop.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"nosh/internal/ai"
	"nosh/internal/config"
	httptransport "nosh/internal/http"
	"nosh/internal/infra"
	"nosh/internal/maps"
	"nosh/internal/modules/dispatch"
	"nosh/internal/modules/order"
	"nosh/internal/modules/pricing"
	"nosh/internal/modules/vendor"
	"nosh/internal/ratelimit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Firebase.ProjectID == "" {
		log.Fatal("NOSH_FIREBASE_PROJECT_ID is required")
	}
	verifier, err := infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		log.Fatalf("firebase init: %v", err)
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	pricingStore := pricing.NewStore(dbPool)
	pricingSvc := pricing.NewService(pricingStore)

	orderStore := order.NewStore(dbPool)
	orderSvc := order.NewService(orderStore, pricingSvc)

	vendorStore := vendor.NewStore(dbPool)
	vendorSvc := vendor.NewService(vendorStore)

	dispatchStore := dispatch.NewStore(redisClient)
	dispatchSvc := dispatch.NewService(dispatchStore, orderSvc, vendorSvc, cfg.Dispatch)

	limiter := ratelimit.New(redisClient, cfg.RateLimit.Limit, cfg.RateLimit.Window)

	var routeSvc *maps.RouteService
	if cfg.Maps.APIKey != "" {
		routeSvc, err = maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
	}

	var drafter ai.SupportDrafter
	if cfg.AI.GeminiKey != "" {
		gemini, err := ai.NewGeminiDrafter(ctx, cfg.AI.GeminiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer gemini.Close()
		drafter = gemini
	}

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Order:    orderSvc,
		Vendor:   vendorSvc,
		Dispatch: dispatchSvc,
		Verifier: verifier,
		Vendors:  vendorStore,
		Limiter:  limiter,
		Routes:   routeSvc,
		Drafter:  drafter,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go dispatchSvc.RunAssignLoop(ctx)

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
