package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Onboarding-api/internal/application/auth"
	"github.com/jhoicas/Onboarding-api/internal/application/clients"
	"github.com/jhoicas/Onboarding-api/internal/application/documents"
	"github.com/jhoicas/Onboarding-api/internal/application/products"
	"github.com/jhoicas/Onboarding-api/internal/application/session"
	"github.com/jhoicas/Onboarding-api/internal/application/sheet"
	"github.com/jhoicas/Onboarding-api/internal/domain/document"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
	"github.com/jhoicas/Onboarding-api/internal/infrastructure/audit"
	"github.com/jhoicas/Onboarding-api/internal/infrastructure/backend"
	"github.com/jhoicas/Onboarding-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Onboarding-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Onboarding-api/internal/infrastructure/postgres"
	sessionstore "github.com/jhoicas/Onboarding-api/internal/infrastructure/session"
	httpRouter "github.com/jhoicas/Onboarding-api/internal/interfaces/http"
	"github.com/jhoicas/Onboarding-api/pkg/config"
	"github.com/jhoicas/Onboarding-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.BaseURL).
		Msg("iniciando aplicación")

	ctx := context.Background()
	m := metrics.New()

	backendClient := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log, backend.WithObserver(m))

	// Sesiones: ristretto en memoria (una instancia) o Redis (varias réplicas)
	var (
		sessionRepo repository.SessionRepository
		closer      io.Closer
	)
	switch cfg.Session.Store {
	case "redis":
		store, err := sessionstore.NewRedisStore(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		sessionRepo, closer = store, store
	default:
		store, err := sessionstore.NewMemoryStore(cfg.Session.MaxCostBytes)
		if err != nil {
			log.Fatal().Err(err).Msg("cache de sesiones")
		}
		sessionRepo, closer = store, store
	}
	defer closer.Close()
	sessions := session.NewManager(sessionRepo, cfg.Session.TTL)

	// Histórico de documentos: PostgreSQL opcional
	var events repository.DocumentEventRepository = audit.Nop{}
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		events = postgres.NewDocumentEventRepository(pool)
		log.Info().Msg("histórico de documentos habilitado")
	}

	registry := document.DefaultRegistry()
	authUC := auth.NewAuthUseCase(backendClient, sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	clientsUC := clients.NewUseCase(backendClient, log)
	productsUC := products.NewUseCase(backendClient.Products(), log)
	documentsUC := documents.NewUseCase(backendClient.Documents(), events, registry, m, log)

	// PDF: Ficha Cadastral
	sheetUC := sheet.NewUseCase(clientsUC, documentsUC, infrapdf.NewClientSheetGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Upload.MaxBodyMB << 20,
		ReadTimeout:  time.Minute * 5,
		WriteTimeout: time.Minute * 5,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Onboarding API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:             authUC,
		Sessions:           sessions,
		ClientsUC:          clientsUC,
		SheetUC:            sheetUC,
		ProductsUC:         productsUC,
		DocumentsUC:        documentsUC,
		JWTSecret:          cfg.JWT.Secret,
		LoginRatePerSecond: cfg.RateLimit.LoginPerSecond,
		LoginRateBurst:     cfg.RateLimit.LoginBurst,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
