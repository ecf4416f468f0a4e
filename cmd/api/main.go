package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/cultiva/reponedores-api/internal/application/auth"
	"github.com/cultiva/reponedores-api/internal/application/usecase"
	"github.com/cultiva/reponedores-api/internal/application/validation"
	infraexport "github.com/cultiva/reponedores-api/internal/infrastructure/export"
	inframail "github.com/cultiva/reponedores-api/internal/infrastructure/mail"
	infrapdf "github.com/cultiva/reponedores-api/internal/infrastructure/pdf"
	"github.com/cultiva/reponedores-api/internal/infrastructure/postgres"
	infraqr "github.com/cultiva/reponedores-api/internal/infrastructure/qrcode"
	"github.com/cultiva/reponedores-api/internal/infrastructure/storage"
	httpRouter "github.com/cultiva/reponedores-api/internal/interfaces/http"
	"github.com/cultiva/reponedores-api/pkg/config"
	"github.com/cultiva/reponedores-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	userRepo := postgres.NewUserRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	reponedorRepo := postgres.NewReponedorRepository(pool)
	visitRepo := postgres.NewVisitRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	validator := validation.New()
	hasher := auth.NewBcryptHasher(0)

	// Fotos: se guardan bajo UPLOAD_DIR y se sirven en /uploads
	files := storage.NewLocalStore(cfg.Uploads.Dir, cfg.Uploads.PublicBaseURL, cfg.Uploads.MaxFileMB, log.Named("storage").Zerolog())
	qrSvc := infraqr.NewService(cfg.QR.Size, cfg.QR.RecoveryLevel)
	credentialPDF := infrapdf.NewCredentialGenerator(filepath.Join(files.BaseDir(), usecase.ReponedorPhotosDir))
	exporter := infraexport.NewExcelExporter()

	// Sin SMTP configurado los contactos sólo se guardan
	var notifier usecase.ContactNotifier
	if n := inframail.NewSMTPNotifier(cfg.SMTP); n != nil {
		notifier = n
	}

	authUC := auth.NewAuthUseCase(userRepo, hasher, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, hasher, validator)
	locationUC := usecase.NewLocationUseCase(locationRepo, validator)
	contactUC := usecase.NewContactUseCase(contactRepo, notifier, validator, log.Named("contact").Zerolog())
	reponedorUC := usecase.NewReponedorUseCase(reponedorRepo, userRepo, files, qrSvc, credentialPDF, validator)
	taskUC := usecase.NewTaskUseCase(taskRepo, reponedorRepo, validator)
	visitUC := usecase.NewVisitUseCase(
		visitRepo, locationRepo, reponedorRepo,
		txRunner, files, exporter, log.Named("visit").Zerolog(),
	)

	httpLog := log.Named("http").Zerolog()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		// 50 fotos de productos por cierre de visita
		BodyLimit:    (usecase.MaxProductPhotos + 2) * cfg.Uploads.MaxFileMB * 1024 * 1024,
		ErrorHandler: httpRouter.ErrorHandler(httpLog),
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigin,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(httpRouter.RequestLogger(httpLog))

	// Swagger UI en /docs sólo si existe el archivo generado
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Reponedores API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Static(storage.PublicPrefix, files.BaseDir())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		LocationUC:  locationUC,
		ContactUC:   contactUC,
		ReponedorUC: reponedorUC,
		TaskUC:      taskUC,
		VisitUC:     visitUC,
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
	contactUC.Wait()

	log.Info().Msg("aplicación detenida")
}
