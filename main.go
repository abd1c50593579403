// File: bookhive/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookhive/config"
	"bookhive/cron"
	"bookhive/database"
	bookingRepo "bookhive/database/repository/booking"
	userRepo "bookhive/database/repository/user"
	"bookhive/handlers"
	"bookhive/middleware"
	"bookhive/routes"
	"bookhive/services/booking"
	"bookhive/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	ctx := context.Background()
	db, err := database.Connect(ctx, config.AppConfig.DatabaseURL, config.AppConfig.DatabaseName)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to MongoDB: %v", err)
	}
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo(db.DB())
	users := userRepo.NewMongoUserRepo(db.DB())
	if err := bookings.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to create booking indexes: %v", err)
	}

	// services.
	bookingService := booking.NewDefaultBookingEngine(bookings, users, utils.GetCacheClient())

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)

	// Register routes.
	routes.RegisterRoutes(router, bookingHandler)

	// Background completion sweep.
	cron.InitCompletionWorker(bookingService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if err := db.Close(shutdownCtx); err != nil {
		logger.Sugar().Warnf("main: error closing MongoDB connection: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
