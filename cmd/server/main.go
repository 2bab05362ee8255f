package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contactdesk-service/internal/domain/entity"
	"contactdesk-service/internal/domain/repository"
	"contactdesk-service/internal/infrastructure/config"
	"contactdesk-service/internal/infrastructure/oauth"
	"contactdesk-service/internal/infrastructure/router"
	"contactdesk-service/internal/interface/httpapi"
	contactRepo "contactdesk-service/internal/interface/repository"
	"contactdesk-service/internal/usecase"
	"contactdesk-service/pkg/logger"
	"contactdesk-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Contactdesk Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics("contactdesk")

	// Set up directory fetch with per-URL in-memory caching
	directoryRepo := contactRepo.NewHTTPDirectoryRepository(cfg.DirectoryCacheTTL, m, log)

	// Register one normalization handler per source-document shape
	deptRouter := router.NewDepartmentRouter(log)
	deptRouter.Register(usecase.NewSimpleHandler())
	deptRouter.Register(usecase.NewCargoHandler())
	deptRouter.Register(usecase.NewTravelShopHandler(log))

	sources := usecase.SourceURLs{
		entity.SourceContacts:    cfg.ContactsURL,
		entity.SourceCargo:       cfg.CargoURL,
		entity.SourceTravelShops: cfg.TravelShopsURL,
	}

	session := usecase.NewSession(directoryRepo, deptRouter, sources, cfg.MaxResults, log)
	composer := usecase.NewComposer(cfg.BrandSignature)

	// Set up relay providers
	var emailRelay repository.EmailRelay
	switch cfg.EmailProvider {
	case "gmail":
		gmailOAuth := oauth.NewGmailOAuth(
			cfg.GmailClientID,
			cfg.GmailClientSecret,
			cfg.GmailRefreshToken,
			log,
		)
		tokenSource := gmailOAuth.GetTokenSource(ctx)
		emailRelay, err = contactRepo.NewGmailRepository(ctx, tokenSource, cfg.FromEmail, cfg.FromName, log)
		if err != nil {
			log.Fatal("Failed to create Gmail relay", "error", err)
		}
	default:
		if cfg.SendGridAPIKey != "" {
			emailRelay = contactRepo.NewSendGridRepository(cfg.SendGridAPIKey, cfg.FromEmail, cfg.FromName, log)
		}
	}

	var whatsappRelay repository.WhatsappRelay
	if cfg.WhatsAppToken != "" && cfg.WhatsAppPhoneNumberID != "" {
		whatsappRelay = contactRepo.NewWhatsappRepository("", cfg.WhatsAppToken, cfg.WhatsAppPhoneNumberID, log)
	}

	// When an external gateway is configured, requests are forwarded
	// instead of dispatched locally
	var gateway repository.RelayGateway
	if cfg.RelayURL != "" {
		gateway = contactRepo.NewGatewayRepository(cfg.RelayURL, log)
	}

	orchestrator := usecase.NewRelayOrchestrator(emailRelay, whatsappRelay, gateway, cfg.RelayRatePerMin, m, log)
	if cfg.WhatsAppTemplate != "" {
		orchestrator.SetWhatsAppTemplate(cfg.WhatsAppTemplate, cfg.WhatsAppTemplateLang)
	}

	// Set up HTTP server
	api := httpapi.NewServer(session, composer, orchestrator, cfg.AllowedOrigins, m, log)

	mux := http.NewServeMux()
	api.Register(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	log.Info("Contactdesk Service stopped")
}
