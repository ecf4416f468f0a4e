// Command createadmin crea el administrador inicial a partir de ADMIN_NAME, ADMIN_EMAIL y ADMIN_PASSWORD.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/cultiva/reponedores-api/internal/application/auth"
	"github.com/cultiva/reponedores-api/internal/application/dto"
	"github.com/cultiva/reponedores-api/internal/application/usecase"
	"github.com/cultiva/reponedores-api/internal/application/validation"
	"github.com/cultiva/reponedores-api/internal/domain"
	"github.com/cultiva/reponedores-api/internal/domain/entity"
	"github.com/cultiva/reponedores-api/internal/infrastructure/postgres"
	"github.com/cultiva/reponedores-api/pkg/config"
	"github.com/cultiva/reponedores-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if cfg.Admin.Password == "" {
		log.Fatal().Msg("ADMIN_PASSWORD es obligatorio")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	userUC := usecase.NewUserUseCase(postgres.NewUserRepository(pool), auth.NewBcryptHasher(0), validation.New())
	user, err := userUC.Create(ctx, dto.CreateUserRequest{
		Nombre:   cfg.Admin.Name,
		Correo:   cfg.Admin.Email,
		Password: cfg.Admin.Password,
		Rol:      entity.RoleAdmin,
	})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Info().Str("correo", cfg.Admin.Email).Msg("el administrador ya existe")
		return
	case err != nil:
		log.Error().Err(err).Msg("crear administrador")
		pool.Close()
		os.Exit(1)
	}
	log.Info().Int64("id", user.ID).Str("correo", user.Correo).Msg("administrador creado")
}
