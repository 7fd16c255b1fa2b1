package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Carlosbarranquero/spending-tracker/internal/amqp"
	"github.com/Carlosbarranquero/spending-tracker/internal/cli"
	apphttp "github.com/Carlosbarranquero/spending-tracker/internal/http"
	"github.com/Carlosbarranquero/spending-tracker/internal/journal"
	"github.com/Carlosbarranquero/spending-tracker/internal/services"
	ports "github.com/Carlosbarranquero/spending-tracker/internal/sheets"
	gsheet "github.com/Carlosbarranquero/spending-tracker/internal/sheets/google"
	mem "github.com/Carlosbarranquero/spending-tracker/internal/sheets/memory"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()

	cfg := cli.LoadAndValidateConfig(logger)

	// Choose data backend (default: memory).
	var (
		appender ports.RowAppender
		cells    ports.CellReader
		meta     ports.MetadataReader
	)

	switch cfg.DataBackend {
	case "sheets":
		client, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err, "backend", cfg.DataBackend)
			os.Exit(1)
		}
		appender, cells, meta = client, client, client
		logger.Info("Initialized Google Sheets backend", "backend", cfg.DataBackend)
	default:
		store := mem.New()
		store.AddSheet(cfg.SpreadsheetID, "Gastos")
		store.SetCell(cfg.SpreadsheetID, cfg.ConversionRange(), "1.10")
		appender, cells, meta = store, store, store
		logger.Info("Initialized memory backend", "backend", cfg.DataBackend)
	}

	// The event stream is optional: without AMQP the service still records,
	// it just leaves no journal trail.
	var events services.EventPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to connect to AMQP, events disabled", "error", err)
		} else {
			defer amqpClient.Close()
			events = amqpClient
			logger.Info("Connected to AMQP", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	// The journal is read-only here; the worker writes it. Opening it lets
	// this process serve /journal/recent.
	var journalReader apphttp.JournalReader
	if cfg.JournalDBPath != "" {
		repo, err := journal.NewRepository(cfg.JournalDBPath)
		if err != nil {
			logger.Warn("Failed to open receipt journal, endpoint disabled", "error", err, "path", cfg.JournalDBPath)
		} else {
			defer repo.Close()
			journalReader = repo
		}
	}

	recorder := services.NewRecorder(cfg, appender, cells, meta, events)

	srv := apphttp.NewServer(":"+cfg.Port, recorder, journalReader)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting spending tracker",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"profile", cfg.Profile)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
