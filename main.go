// api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"brightwork/api/booking"
	"brightwork/api/config"
	"brightwork/api/database"
	"brightwork/api/handlers"
	"brightwork/api/middleware"
	"brightwork/api/notify"
	"brightwork/api/payments"
	"brightwork/api/store"
)

func main() {
	// Load .env file at the very start
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg := config.Load()
	ctx := context.Background()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("Invalid TIMEZONE %q: %v", cfg.Timezone, err)
	}

	// --- Graph store for analytics (optional; absence disables the feature) ---
	neoClient, err := database.NewNeo4jDB(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Neo4j database: %v", err)
	}

	var analyticsHandlers *handlers.AnalyticsHandlers
	if neoClient != nil {
		analyticsStore := store.NewAnalyticsStore(neoClient)
		if err := analyticsStore.EnsureConstraints(ctx); err != nil {
			log.Printf("ERROR: Failed to prepare Neo4j constraints: %v", err)
		} else {
			log.Println("Neo4j analytics constraints ensured.")
		}
		analyticsHandlers = handlers.NewAnalyticsHandlers(analyticsStore)
	} else {
		analyticsHandlers = handlers.NewAnalyticsHandlers(nil)
	}

	// --- PostgreSQL webhook audit log (optional) ---
	pgClient, err := database.NewPostgresDB()
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL database: %v", err)
	}
	var webhookEvents handlers.EventRecorder
	if pgClient != nil {
		defer pgClient.Close()
		webhookEvents = store.NewWebhookEventStore(pgClient.DB)
	}

	// --- External collaborators ---
	paymentsClient := payments.NewClient(cfg)

	var scheduler booking.Scheduler
	if cfg.GoogleClientEmail != "" && cfg.GooglePrivateKey != "" {
		gcalScheduler, err := booking.NewGoogleCalendarScheduler(ctx, cfg.GoogleClientEmail, cfg.GooglePrivateKey, cfg.GoogleCalendarID)
		if err != nil {
			log.Fatalf("Failed to initialize Google Calendar client: %v", err)
		}
		scheduler = gcalScheduler
	} else {
		log.Println("Google Calendar credentials missing - intro call booking disabled.")
	}

	httpClient := &http.Client{Timeout: 10 * time.Second}

	var notifier handlers.FollowUpSender
	if cfg.PostCallWebhook != "" {
		notifier = notify.NewFollowUpNotifier(cfg.PostCallWebhook, httpClient)
	}

	var companion handlers.CompanionRelay
	if cfg.CompanionWebhook != "" {
		companion = notify.NewCompanionClient(cfg.CompanionWebhook, httpClient)
	}

	// --- Initialize Handlers ---
	checkoutHandlers := handlers.NewCheckoutHandlers(paymentsClient)
	webhookHandlers := handlers.NewWebhookHandlers(cfg, scheduler, notifier, webhookEvents, loc)
	companionHandlers := handlers.NewCompanionHandlers(companion)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware(cfg.Origins))

	stripeRoutes := r.Group("/stripe")
	{
		stripeRoutes.POST("/checkout", checkoutHandlers.CreateCheckout)
		stripeRoutes.POST("/subscription", checkoutHandlers.CreateSubscription)
		stripeRoutes.POST("/portal", checkoutHandlers.CreatePortal)
		stripeRoutes.POST("/webhook", webhookHandlers.HandleWebhook)
	}

	analyticsRoutes := r.Group("/analytics")
	{
		analyticsRoutes.POST("/events", analyticsHandlers.RecordEvent)
		analyticsRoutes.GET("/metrics", analyticsHandlers.GetMetrics)
	}

	r.POST("/client/companion", companionHandlers.RelayMessage)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Backend listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("API server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if neoClient != nil {
		neoClient.Close(shutdownCtx)
	}

	log.Println("Server exiting.")
}
