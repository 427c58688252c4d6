package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gstsuite/internal/config"
	"gstsuite/internal/crypto"
	"gstsuite/internal/handler"
	"gstsuite/internal/port"
	"gstsuite/internal/repository/postgres"
	"gstsuite/internal/router"
	"gstsuite/internal/service"
	s3storage "gstsuite/internal/storage/s3"
	"gstsuite/internal/store"

	// Register GSP providers.
	_ "gstsuite/internal/gsp/cleartax"
	_ "gstsuite/internal/gsp/mastergst"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	cacheRepo := postgres.NewReportCacheRepo(db)
	settingsRepo := postgres.NewGstSettingsRepo(db)
	importRepo := postgres.NewGstr2aImportRepo(db)
	reconRepo := postgres.NewReconciliationRepo(db)
	einvoiceRepo := postgres.NewEInvoiceRequestRepo(db)
	ewaybillRepo := postgres.NewEWayBillRequestRepo(db)

	// Collaborator stores
	storeTimeout := time.Duration(cfg.Stores.TimeoutSecs) * time.Second
	invoiceStore := store.NewInvoiceStore(cfg.Stores.InvoiceBaseURL, storeTimeout)
	partyStore := store.NewPartyStore(cfg.Stores.PartyBaseURL, storeTimeout)
	businessStore := store.NewBusinessStore(cfg.Stores.BusinessBaseURL, storeTimeout)

	// Statement archive (optional)
	var archive port.ObjectStorage
	if cfg.Archive.Bucket != "" {
		archive, err = s3storage.NewS3Client(&cfg.Archive)
		if err != nil {
			return fmt.Errorf("failed to initialize archive client: %w", err)
		}
	}

	cipher, err := crypto.NewAESCipher(cfg.Crypto.Secret)
	if err != nil {
		return fmt.Errorf("failed to initialize credential cipher: %w", err)
	}

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWT)
	settingsSvc := service.NewSettingsService(settingsRepo, cipher, cfg.GSP.DefaultProvider, cfg.GSP.BaseURL)
	returnSvc := service.NewReturnService(invoiceStore, partyStore, businessStore, cacheRepo, cfg.Cache.FreshnessWindow)
	reconSvc := service.NewReconciliationService(importRepo, reconRepo, invoiceStore, archive, cfg.Archive.Bucket)
	einvoiceSvc := service.NewEInvoiceService(einvoiceRepo, invoiceStore, partyStore, businessStore, settingsSvc)
	ewaybillSvc := service.NewEWayBillService(ewaybillRepo, invoiceStore, partyStore, businessStore, settingsSvc)

	// Initialize handlers
	returnH := handler.NewReturnHandler(returnSvc)
	reconH := handler.NewReconciliationHandler(reconSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)
	einvoiceH := handler.NewEInvoiceHandler(einvoiceSvc)
	ewaybillH := handler.NewEWayBillHandler(ewaybillSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, returnH, reconH, settingsH, einvoiceH, ewaybillH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server failed: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Printf("Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}
