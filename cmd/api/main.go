package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go-caixa-pos/internal/config"
	"go-caixa-pos/internal/handler"
	"go-caixa-pos/internal/infra"
	"go-caixa-pos/internal/repository"
	"go-caixa-pos/internal/service"
	"go-caixa-pos/internal/ws"
	"go-caixa-pos/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// 1. Load Env
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg)
	if envErr != nil {
		log.Debug().Msg(".env file not found, using environment only")
	}
	if cfg.JWTSecret != "" {
		jwt.SetSecretKey(cfg.JWTSecret)
	} else if cfg.IsProduction() {
		log.Warn().Msg("JWT_SECRET is not set, using the built-in development secret")
	}

	ctx := context.Background()

	// 2. Setup Store
	store, closeStore, err := infra.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
	}
	defer closeStore()
	log.Info().Str("driver", cfg.StoreDriver).Msg("store ready")

	productRepo := repository.NewProductRepo(store)
	categoryRepo := repository.NewCategoryRepo(store)
	sessionRepo := repository.NewSessionRepo(store)
	saleRepo := repository.NewSaleRepo(store)
	authRepo := repository.NewAuthRepo(store)

	// 3. Seed default catalog
	if cfg.SeedCatalog {
		if err := productRepo.SeedDefaults(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to seed products")
		}
		if err := categoryRepo.SeedDefaults(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to seed categories")
		}
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	caixaService, err := service.NewCaixaService(ctx, sessionRepo, wsHub, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load cash drawer state")
	}
	invService := service.NewInventoryService(productRepo, categoryRepo, wsHub)
	cartService := service.NewCartService(productRepo)
	checkoutService := service.NewCheckoutService(caixaService, cartService, invService, saleRepo, wsHub, nil)
	reportService := service.NewReportService(saleRepo, productRepo, caixaService, cfg.Location(), nil)
	authService := service.NewAuthService(authRepo, cfg.TokenTTL())

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Caixa POS v1.0",
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 7. Routes
	handler.Register(app, handler.Services{
		Auth:      authService,
		Caixa:     caixaService,
		Inventory: invService,
		Cart:      cartService,
		Checkout:  checkoutService,
		Reports:   reportService,
	}, wsHub)

	// 8. Graceful Shutdown
	go func() {
		addr := ":" + strconv.Itoa(cfg.Port)
		log.Info().Str("addr", addr).Bool("drawer_open", caixaService.IsOpen()).Msg("server listening")
		if err := app.Listen(addr); err != nil {
			log.Panic().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
