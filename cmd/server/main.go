package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/go-chi/chi/v5"

	"github.com/niki241/NeuroBridge-New/internal/analytics"
	"github.com/niki241/NeuroBridge-New/internal/config"
	"github.com/niki241/NeuroBridge-New/internal/events"
	"github.com/niki241/NeuroBridge-New/internal/httpapi"
	"github.com/niki241/NeuroBridge-New/internal/rewards"
	"github.com/niki241/NeuroBridge-New/pkg/auth"
	"github.com/niki241/NeuroBridge-New/pkg/logging"
	"github.com/niki241/NeuroBridge-New/pkg/server"
)

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("config error: %w", err))
	}

	logger := logging.NewLogger("neurobridge-api")

	var (
		rewardsRepo   rewards.Repository
		analyticsRepo analytics.Repository
	)

	switch cfg.DataStore {
	case config.DataStoreFirestore:
		client, err := firestore.NewClientWithDatabase(ctx, cfg.GCPProjectID, cfg.Firestore.Database)
		if err != nil {
			panic(fmt.Errorf("firestore client: %w", err))
		}
		defer client.Close()

		rewardsRepo = rewards.NewFirestoreRepository(client)
		analyticsRepo = analytics.NewFirestoreRepository(client)
	default:
		rewardsRepo = rewards.NewMemoryRepository()
		analyticsRepo = analytics.NewMemoryRepository()
	}

	publisher := events.NewLogPublisher(logger)

	rewardsService, err := rewards.NewService(rewardsRepo, rewards.NewSystemClock(), rewards.NewUUIDGenerator(), publisher, logger)
	if err != nil {
		panic(fmt.Errorf("rewards service: %w", err))
	}

	analyticsService, err := analytics.NewService(analyticsRepo, analytics.NewSystemClock(), logger)
	if err != nil {
		panic(fmt.Errorf("analytics service: %w", err))
	}

	verifier, err := auth.NewVerifier(auth.Config{
		Mode:     cfg.Auth.Mode,
		JWKSURL:  cfg.Auth.JWKSURL,
		Audience: cfg.Auth.Audience,
		Issuer:   cfg.Auth.Issuer,
	})
	if err != nil {
		panic(fmt.Errorf("auth verifier error: %w", err))
	}

	router := server.NewRouter("neurobridge-api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(verifier))

			httpapi.RegisterRewardRoutes(r, rewardsService)
			httpapi.RegisterAnalyticsRoutes(r, analyticsService)
		})
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if err := server.Run(ctx, srv, logger); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
}
