package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/bookwell/backend/internal/adapters/cache"
	"github.com/bookwell/backend/internal/adapters/database"
	"github.com/bookwell/backend/internal/adapters/queue"
	"github.com/bookwell/backend/internal/api/handlers"
	"github.com/bookwell/backend/internal/api/routes"
	"github.com/bookwell/backend/internal/application/services"
	"github.com/bookwell/backend/internal/infrastructure/clients/postgres"
	redisclient "github.com/bookwell/backend/internal/infrastructure/clients/redis"
	"github.com/bookwell/backend/internal/infrastructure/observability"
	"github.com/bookwell/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("bookwell-api", cfg.App.Env)

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	redisClient, err := redisclient.NewClient(&cfg.Redis)
	if err != nil {
		// The booking path can live without the provider cache, but the job
		// queue cannot: cancellations would lose their email jobs.
		log.Fatal().Err(err).Msg("failed to initialize Redis client")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to Redis")

	appointmentAdapter := database.NewAppointmentAdapter(pgClient)
	userAdapter := database.NewUserAdapter(pgClient)
	notificationAdapter := database.NewNotificationAdapter(pgClient)
	cacheProvider := cache.NewRedisAdapter(redisClient)
	jobQueue := queue.NewRedisStreamQueue(redisClient)
	defer jobQueue.Close()

	bookingService := services.NewBookingService(appointmentAdapter, userAdapter, notificationAdapter, time.Now)
	cancellationService := services.NewCancellationService(appointmentAdapter, jobQueue, time.Now)
	providerDirectory := services.NewProviderDirectoryService(
		userAdapter,
		cacheProvider,
		cfg.App.BaseURL,
		cfg.App.ProviderCacheTTLSeconds,
	)

	appointmentHandler := handlers.NewAppointmentHandler(bookingService, cancellationService)
	providerHandler := handlers.NewProviderHandler(providerDirectory)

	router := routes.NewRouter(appointmentHandler, providerHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
