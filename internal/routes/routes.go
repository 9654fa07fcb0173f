// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"vesta/internal/handlers"
	"vesta/internal/middleware"
	"vesta/internal/models"
	"vesta/internal/repositories"
	"vesta/internal/services/auth"
	"vesta/internal/services/exchange"
	"vesta/internal/services/ledger"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB, activityPublisher ledger.ActivityPublisher) {
	// Repositories
	ledgerRepo := repositories.NewLedgerRepository(db)
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	countryRepo := repositories.NewCountryRepository(db)

	// Services
	authService := auth.NewService(userRepo)
	exchangeService := exchange.NewService(countryRepo, repositories.CacheService)
	ledgerService := ledger.NewService(ledgerRepo, exchangeService, activityPublisher)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	walletHandler := handlers.NewWalletHandler(ledgerService, userRepo)
	countryHandler := handlers.NewCountryHandler(countryRepo)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Public endpoints
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.RefreshToken)
	api.Get("/countries", countryHandler.GetCountries)

	// Authenticated endpoints
	authenticated := api.Use(authMiddleware.Handler)
	authenticated.Post("/logout", authHandler.Logout)
	authenticated.Post("/change-password", authHandler.ChangePassword)

	wallets := authenticated.Group("/wallets")
	wallets.Get("/", middleware.HasPermission(models.PermissionWalletRead), walletHandler.GetWallets)
	wallets.Get("/transactions", middleware.HasPermission(models.PermissionTransactionRead), walletHandler.GetTransactions)
	wallets.Get("/transactions/:reference", middleware.HasPermission(models.PermissionTransactionRead), walletHandler.GetTransaction)
	wallets.Post("/fund", middleware.HasPermission(models.PermissionWalletWrite), walletHandler.FundWallet)
	wallets.Post("/convert", middleware.HasPermission(models.PermissionWalletWrite), walletHandler.ConvertCurrency)
	wallets.Post("/trade", middleware.HasPermission(models.PermissionWalletWrite), walletHandler.TradeCurrency)

	// Admin endpoints
	admin := authenticated.Group("/admin", middleware.AdminAuthMiddleware)
	admin.Put("/countries", countryHandler.UpsertCountry)
}
