package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"campreg/internal/config"
	"campreg/internal/db"
	"campreg/internal/httpserver"
	addonrepo "campreg/internal/repository/addon"
	athleterepo "campreg/internal/repository/athlete"
	camprepo "campreg/internal/repository/camp"
	promorepo "campreg/internal/repository/promo"
	registrationrepo "campreg/internal/repository/registration"
	sessionrepo "campreg/internal/repository/session"
	catalogsvc "campreg/internal/service/catalog"
	checkoutsvc "campreg/internal/service/checkout"
	promosvc "campreg/internal/service/promo"
	registrationsvc "campreg/internal/service/registration"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	campRepo := camprepo.NewPostgres(dbpool, logger)
	addonRepo := addonrepo.NewPostgres(dbpool, logger)
	promoRepo := promorepo.NewPostgres(dbpool, logger)
	athleteRepo := athleterepo.NewPostgres(dbpool, logger)
	sessionStore := sessionrepo.NewPostgres(dbpool, logger)
	registrationRepo := registrationrepo.NewPostgres(dbpool, logger)

	catalogService := catalogsvc.New(campRepo, addonRepo)
	promoService := promosvc.New(promoRepo)
	checkoutService := checkoutsvc.New(sessionStore, campRepo, addonRepo, promoService, athleteRepo, logger, cfg.CheckoutTTL)
	registrationService := registrationsvc.New(registrationRepo, checkoutService)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CatalogSvc:      catalogService,
		PromoSvc:        promoService,
		CheckoutSvc:     checkoutService,
		RegistrationSvc: registrationService,
		AthleteRepo:     athleteRepo,
	}, cfg.CORSOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
