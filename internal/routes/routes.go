package routes

import (
	"time"

	"github.com/faisal420-png/bdcinema/internal/config"
	"github.com/faisal420-png/bdcinema/internal/handlers"
	"github.com/faisal420-png/bdcinema/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	titleHandler *handlers.TitleHandler,
	reviewHandler *handlers.ReviewHandler,
	listHandler *handlers.ListHandler,
	searchHandler *handlers.SearchHandler,
	profileHandler *handlers.ProfileHandler,
	adminHandler *handlers.AdminHandler,
	legalHandler *handlers.LegalHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Legal pages
	api.Get("/legal/privacy", legalHandler.PrivacyPolicy)
	api.Get("/legal/terms", legalHandler.TermsOfService)

	// Auth is public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected auth routes - apply middleware to individual routes so the
	// JWT middleware never touches public routes
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Catalog, public browse
	api.Get("/titles", titleHandler.List)
	api.Get("/titles/:id", titleHandler.Get)
	api.Get("/titles/:id/reviews", reviewHandler.ForTitle)

	// Search and people lookups proxy the metadata provider
	api.Get("/search", searchHandler.Search)
	api.Get("/people/:id", searchHandler.Person)

	// Reviews, protected
	api.Post("/reviews", middleware.JWTProtected(cfg), reviewHandler.Submit)
	api.Get("/titles/:id/reviews/me", middleware.JWTProtected(cfg), reviewHandler.Mine)

	// Personal lists, protected
	api.Get("/watchlist", middleware.JWTProtected(cfg), listHandler.Watchlist)
	api.Post("/watchlist/toggle", middleware.JWTProtected(cfg), listHandler.ToggleWatchlist)
	api.Get("/watchlist/status", middleware.JWTProtected(cfg), listHandler.WatchlistStatus)
	api.Post("/watched/toggle", middleware.JWTProtected(cfg), listHandler.ToggleWatched)
	api.Get("/watched/status", middleware.JWTProtected(cfg), listHandler.WatchedStatus)
	api.Post("/interested/toggle", middleware.JWTProtected(cfg), listHandler.ToggleInterested)
	api.Get("/interested/status", middleware.JWTProtected(cfg), listHandler.InterestedStatus)

	// Profile, protected
	api.Get("/profile", middleware.JWTProtected(cfg), profileHandler.Get)
	api.Post("/profile/avatar", middleware.JWTProtected(cfg), profileHandler.UploadAvatar)

	// Admin curation panel (protected + admin required)
	admin := api.Group("/admin", middleware.JWTOrAdminToken(cfg), middleware.AdminRequired(db, cfg))
	admin.Post("/titles", titleHandler.Create)
	admin.Delete("/titles/:id", titleHandler.Delete)
	admin.Post("/sync", adminHandler.Sync)
	admin.Post("/upload", adminHandler.UploadPoster)
}
