package handlers

import (
	"time"

	"tally/internal/middleware"
	"tally/internal/repositories"
	"tally/internal/repositories/cache"
	"tally/internal/services/account"
	"tally/internal/services/auth"
	"tally/internal/services/history"
	"tally/internal/services/ledger"
	"tally/internal/services/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

// SetupRoutes wires repositories, services and handlers onto the app.
func SetupRoutes(app *fiber.App, db *gorm.DB, accountCache *cache.AccountCache) {
	accountRepo := repositories.NewAccountRepository(db)
	userRepo := repositories.NewUserRepository(db)

	var svcCache account.Cache
	var engineCache ledger.Cache
	if accountCache != nil {
		svcCache = accountCache
		engineCache = accountCache
	}

	accountService := account.NewService(accountRepo, svcCache)
	engine := ledger.NewService(accountRepo, userRepo, engineCache, ledger.Config{}, nil)
	historyService := history.NewService(accountRepo)
	userService := user.NewService(userRepo)
	authService := auth.NewService(userRepo)

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	accountHandler := NewAccountHandler(accountService)
	ledgerHandler := NewLedgerHandler(engine, accountService)
	historyHandler := NewHistoryHandler(historyService, accountService)

	authMiddleware := middleware.NewAuthMiddleware(userRepo)

	app.Get("/health", Health(accountCache))

	api := app.Group("/api")

	// Credential endpoints are rate limited per client IP.
	credLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many requests, try again later",
			})
		},
	})
	api.Post("/register", credLimiter, userHandler.Register)
	api.Post("/login", credLimiter, authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)

	authed := api.Group("/", authMiddleware.Handler)
	authed.Post("/logout", authHandler.Logout)
	authed.Get("/account", accountHandler.Get)
	authed.Post("/account/deposit", ledgerHandler.Deposit)
	authed.Post("/account/withdraw", ledgerHandler.Withdraw)
	authed.Post("/account/transfer", ledgerHandler.Transfer)
	authed.Get("/account/transactions", historyHandler.List)
}
