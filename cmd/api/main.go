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

	"github.com/tu-usuario/marketplace-pro/internal/application/auth"
	"github.com/tu-usuario/marketplace-pro/internal/application/ports"
	"github.com/tu-usuario/marketplace-pro/internal/application/usecase"
	infraai "github.com/tu-usuario/marketplace-pro/internal/infrastructure/ai"
	inframail "github.com/tu-usuario/marketplace-pro/internal/infrastructure/mail"
	"github.com/tu-usuario/marketplace-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/marketplace-pro/internal/interfaces/http"
	"github.com/tu-usuario/marketplace-pro/pkg/config"
	"github.com/tu-usuario/marketplace-pro/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	businessRepo := postgres.NewBusinessRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	chatRepo := postgres.NewChatMessageRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Mailer SMTP — opcional: sin SMTP_HOST las invitaciones salen sin email.
	var mailer ports.Mailer
	smtpMailer := inframail.NewSMTPMailer(cfg.SMTP)
	if smtpMailer.Enabled() {
		mailer = smtpMailer
	} else {
		log.Warn().Msg("SMTP no configurado, las invitaciones no enviarán email")
	}

	// LLM remoto — opcional: sin OPENAI_API_KEY el chatbot opera solo local.
	var llm ports.LLMService
	if cfg.AI.OpenAIAPIKey != "" {
		llm = infraai.NewOpenAIService(cfg.AI.OpenAIAPIKey, cfg.AI.OpenAIModel)
	} else {
		log.Warn().Msg("OPENAI_API_KEY no configurado, chatbot en modo local")
	}

	authUC := auth.NewAuthUseCase(userRepo, businessRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, businessRepo, mailer, log)
	businessUC := usecase.NewBusinessUseCase(businessRepo, userUC)
	productUC := usecase.NewProductUseCase(productRepo, businessRepo)
	chatUC := usecase.NewChatUseCase(productRepo, chatRepo, llm, log)

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
		Title:    "Marketplace API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		UserUC:     userUC,
		BusinessUC: businessUC,
		ProductUC:  productUC,
		ChatUC:     chatUC,
		JWTSecret:  cfg.JWT.Secret,
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
