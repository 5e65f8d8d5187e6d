package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/leadscout/leadgen-api/internal/auth"
	"github.com/leadscout/leadgen-api/internal/config"
	"github.com/leadscout/leadgen-api/internal/database"
	"github.com/leadscout/leadgen-api/internal/handler"
	middlewarepkg "github.com/leadscout/leadgen-api/internal/middleware"
	"github.com/leadscout/leadgen-api/internal/nominatim"
	"github.com/leadscout/leadgen-api/internal/opencorporates"
	"github.com/leadscout/leadgen-api/internal/overpass"
	"github.com/leadscout/leadgen-api/internal/repository"
	"github.com/leadscout/leadgen-api/internal/router"
	"github.com/leadscout/leadgen-api/internal/service"
	"github.com/leadscout/leadgen-api/internal/service/scoring"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	businessesRepo := repository.NewPGXBusinessesRepository(pool)
	favoritesRepo := repository.NewPGXFavoritesRepository(pool)

	httpClient := &http.Client{Timeout: cfg.UpstreamTimeout}
	geocoder := nominatim.NewClient(cfg.NominatimBaseURL,
		nominatim.WithHTTPClient(httpClient),
		nominatim.WithUserAgent(cfg.UserAgent),
	)
	fetcher := overpass.NewClient(cfg.OverpassBaseURL, overpass.WithHTTPClient(httpClient))
	registry := opencorporates.NewClient(cfg.RegistryBaseURL, opencorporates.WithHTTPClient(httpClient))

	profile := scoring.ByName(cfg.ScoringProfile)

	authService := service.NewAuthService(usersRepo, jwtManager)
	userService := service.NewUserService(usersRepo)
	searchService := service.NewSearchService(geocoder, fetcher, registry, businessesRepo, profile)
	businessesService := service.NewBusinessesService(businessesRepo)
	favoritesService := service.NewFavoritesService(favoritesRepo, businessesRepo)
	exportService := service.NewExportService(businessesRepo)
	importService := service.NewImportService(businessesRepo, profile)

	handlers := router.Handlers{
		Health:     handler.NewHealthHandler(),
		Search:     handler.NewSearchHandler(searchService),
		Businesses: handler.NewBusinessesHandler(businessesService),
		Favorites:  handler.NewFavoritesHandler(favoritesService),
		Export:     handler.NewExportHandler(exportService),
		Categories: handler.NewCategoriesHandler(),
		Auth:       handler.NewAuthHandler(authService),
		Users:      handler.NewUserAdminHandler(userService),
		Import:     handler.NewImportHandler(importService),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
