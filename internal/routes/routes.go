// Package routes defines the API routing configuration.
// It wires repositories and services into handlers and mounts them,
// including middleware and authentication requirements.
package routes

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"quickpay/internal/config"
	"quickpay/internal/domain/address"
	"quickpay/internal/handlers"
	"quickpay/internal/ledger"
	"quickpay/internal/middleware"
	"quickpay/internal/repositories"
	"quickpay/internal/services/receive"
	"quickpay/internal/services/recipient"
	"quickpay/internal/services/scan"
	"quickpay/internal/services/transfer"
	"quickpay/internal/services/wallet"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB, redisClient *redis.Client, cfg config.Config) {
	// Initialize repositories
	profileRepo := repositories.NewProfileRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// Initialize services
	recipientService := recipient.NewService(profileRepo)
	viewService := wallet.NewService(
		profileRepo,
		transactionRepo,
		cacheRepo,
		wallet.Config{TTL: cfg.ViewCacheTTL},
		&wallet.NoopMetricsCollector{},
	)
	transferService := transfer.NewService(newLedger(db, cfg), transfer.Config{LedgerTimeout: cfg.LedgerTimeout})
	scanService := scan.NewService(recipientService)
	receiveService := receive.NewService(bitcoinNetwork(cfg))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, redisClient)
	recipientHandler := handlers.NewRecipientHandler(recipientService)
	scanHandler := handlers.NewScanHandler(scanService)
	transferHandler := handlers.NewTransferHandler(recipientService, transferService, viewService)
	receiveHandler := handlers.NewReceiveHandler(viewService, receiveService)
	walletHandler := handlers.NewWalletHandler(viewService)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to QuickPay API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})

	health := app.Group("/health")
	health.Get("/", healthHandler.HealthCheck)
	health.Get("/cache", healthHandler.CacheStats)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)
	protected := app.Group("/api", authMiddleware.Handler)

	setupPaymentRoutes(protected, recipientHandler, scanHandler, transferHandler)
	setupAccountRoutes(protected, receiveHandler, walletHandler)
}

func setupPaymentRoutes(router fiber.Router, recipients *handlers.RecipientHandler, scanner *handlers.ScanHandler, transfers *handlers.TransferHandler) {
	router.Get("/recipients/search", recipients.Search)
	router.Post("/scan", scanner.Scan)

	transferGroup := router.Group("/transfers")
	transferGroup.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			if userID, ok := c.Locals(middleware.UserIDKey).(string); ok {
				return userID
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many transfers. Please try again later.",
			})
		},
	}))
	transferGroup.Post("/", transfers.Transfer)
}

func setupAccountRoutes(router fiber.Router, receiveHandler *handlers.ReceiveHandler, walletHandler *handlers.WalletHandler) {
	router.Get("/receive", receiveHandler.GetCodes)
	router.Get("/receive/:scheme", receiveHandler.GetCode)
	router.Get("/wallet", walletHandler.GetWallet)
	router.Get("/transactions", walletHandler.GetTransactions)
}

// newLedger picks the remote ledger when LEDGER_URL is set and settles in
// postgres otherwise.
func newLedger(db *gorm.DB, cfg config.Config) transfer.LedgerService {
	if cfg.LedgerURL != "" {
		log.WithField("url", cfg.LedgerURL).Info("using remote ledger")
		return ledger.NewClient(cfg.LedgerURL, cfg.LedgerTimeout)
	}
	log.Info("using postgres ledger")
	return repositories.NewLedgerRepository(db)
}

func bitcoinNetwork(cfg config.Config) *chaincfg.Params {
	params, err := address.NetworkParams(cfg.BitcoinNetwork)
	if err != nil {
		log.WithError(err).Warn("unknown bitcoin network, using mainnet")
		return &chaincfg.MainNetParams
	}
	return params
}
