package main

import (
	"log"
	netHttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"registration-module/config"
	"registration-module/db"
	"registration-module/http"
	"registration-module/http/handlers"
	"registration-module/logger"
	"registration-module/services"
)

func main() {
	cfg := config.Load()

	if !cfg.VerifyCallback {
		logger.Warn("PayU postback verification is DISABLED; inbound callbacks are trusted as-is (set PAYU_VERIFY_CALLBACK=true to enable)")
	}

	store, err := db.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Error initializing database: %v", err)
	}

	events := services.NewEvents(cfg.KafkaBrokers, cfg.KafkaTopic)
	mailer := services.NewMailer(cfg)

	payment := handlers.NewPaymentHandler(cfg, store, events, mailer)
	admin := handlers.NewAdminHandler(cfg, store)
	router := http.NewRouter(payment, admin)

	// Set up graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting on :%s", cfg.Port)
		log.Fatal(netHttp.ListenAndServe(":"+cfg.Port, router))
	}()

	// Wait for shutdown signal
	<-sigChan
	logger.Info("Shutdown signal received, closing Kafka producer...")

	if err := events.Close(); err != nil {
		logger.Error("Error closing Kafka producer: %v", err)
	}
	if err := store.Close(); err != nil {
		logger.Error("Error closing database: %v", err)
	}

	logger.Info("Server shutdown complete")
}
