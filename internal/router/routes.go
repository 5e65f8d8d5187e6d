package router

import (
	"github.com/labstack/echo/v4"

	"github.com/leadscout/leadgen-api/internal/auth"
	"github.com/leadscout/leadgen-api/internal/config"
	"github.com/leadscout/leadgen-api/internal/handler"
	middlewarepkg "github.com/leadscout/leadgen-api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Health     *handler.HealthHandler
	Search     *handler.SearchHandler
	Businesses *handler.BusinessesHandler
	Favorites  *handler.FavoritesHandler
	Export     *handler.ExportHandler
	Categories *handler.CategoriesHandler
	Auth       *handler.AuthHandler
	Users      *handler.UserAdminHandler
	Import     *handler.ImportHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/health", handlers.Health.Health)

	e.POST("/search", handlers.Search.Search, middlewarepkg.SearchRateLimiter(cfg.RateLimitSearch))
	e.GET("/businesses", handlers.Businesses.List)
	e.POST("/favorites", handlers.Favorites.Add)
	e.GET("/favorites", handlers.Favorites.List)
	e.DELETE("/favorites/:id", handlers.Favorites.Remove)
	e.GET("/export", handlers.Export.Export)
	e.GET("/categories", handlers.Categories.List)

	e.POST("/auth/login", handlers.Auth.Login)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager))

	admin := secured.Group("/admin", middlewarepkg.RequireRole("admin"))
	admin.GET("/users", handlers.Users.List)
	admin.POST("/users", handlers.Users.Create)
	admin.PATCH("/users/:id", handlers.Users.Update)
	admin.DELETE("/users/:id", handlers.Users.Delete)
	admin.POST("/import-csv", handlers.Import.ImportCSV)
}
