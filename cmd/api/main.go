package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Facturio-api/internal/application/auth"
	"github.com/jhoicas/Facturio-api/internal/application/billing"
	"github.com/jhoicas/Facturio-api/internal/application/media"
	"github.com/jhoicas/Facturio-api/internal/application/usecase"
	"github.com/jhoicas/Facturio-api/internal/infrastructure/gcs"
	infrapdf "github.com/jhoicas/Facturio-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Facturio-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Facturio-api/internal/interfaces/http"
	"github.com/jhoicas/Facturio-api/pkg/config"
	"github.com/jhoicas/Facturio-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	blobStorage, err := gcs.NewBlobStorage(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Google Cloud Storage")
	}
	defer blobStorage.Close()
	mediaSvc := media.NewService(blobStorage, log.Zerolog())

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo, mediaSvc)
	customerUC := usecase.NewCustomerUseCase(customerRepo, mediaSvc)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo, nil)
	analyticsUC := usecase.NewAnalyticsUseCase(analyticsRepo)

	pdfGenerator := infrapdf.NewMarotoInvoicePDF(cfg.App.Name)
	pdfUC := billing.NewPDFUseCase(invoiceRepo, customerRepo, productRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Facturio API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		CustomerUC:  customerUC,
		InvoiceUC:   invoiceUC,
		PDFUC:       pdfUC,
		AnalyticsUC: analyticsUC,
		JWTSecret:   cfg.JWT.Secret,
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
