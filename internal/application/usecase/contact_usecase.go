package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cultiva/reponedores-api/internal/application/dto"
	"github.com/cultiva/reponedores-api/internal/application/validation"
	"github.com/cultiva/reponedores-api/internal/domain/entity"
	"github.com/cultiva/reponedores-api/internal/domain/repository"
)

// ContactUseCase recibe y lista mensajes del formulario de contacto.
type ContactUseCase struct {
	repo      repository.ContactRepository
	notifier  ContactNotifier // opcional
	validator *validation.Validator
	log       zerolog.Logger
	pending   sync.WaitGroup
}

// NotifyTimeout acota cada aviso de contacto enviado en segundo plano.
const NotifyTimeout = 30 * time.Second

// NewContactUseCase construye el caso de uso. notifier puede ser nil.
func NewContactUseCase(repo repository.ContactRepository, notifier ContactNotifier, v *validation.Validator, log zerolog.Logger) *ContactUseCase {
	return &ContactUseCase{repo: repo, notifier: notifier, validator: v, log: log}
}

// Submit valida y guarda el mensaje. El aviso por correo sale en segundo plano
// y no afecta el resultado.
func (uc *ContactUseCase) Submit(ctx context.Context, in dto.ContactRequest) error {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.ApellidoPaterno = strings.TrimSpace(in.ApellidoPaterno)
	in.ApellidoMaterno = strings.TrimSpace(in.ApellidoMaterno)
	in.Correo = strings.TrimSpace(in.Correo)
	in.Mensaje = strings.TrimSpace(in.Mensaje)
	if err := uc.validator.Struct(in); err != nil {
		return err
	}
	c := &entity.Contact{
		Nombre:          in.Nombre,
		ApellidoPaterno: in.ApellidoPaterno,
		ApellidoMaterno: in.ApellidoMaterno,
		Correo:          in.Correo,
		Telefono:        nonEmpty(in.Telefono),
		Mensaje:         in.Mensaje,
		FechaCreacion:   time.Now(),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return err
	}
	if uc.notifier != nil {
		uc.pending.Add(1)
		go uc.notify(context.WithoutCancel(ctx), c)
	}
	return nil
}

func (uc *ContactUseCase) notify(ctx context.Context, c *entity.Contact) {
	defer uc.pending.Done()
	ctx, cancel := context.WithTimeout(ctx, NotifyTimeout)
	defer cancel()
	if err := uc.notifier.NotifyContact(ctx, c); err != nil {
		uc.log.Warn().Err(err).Int64("contacto_id", c.ID).Msg("aviso de contacto no enviado")
	}
}

// Wait bloquea hasta que terminen los avisos en curso.
func (uc *ContactUseCase) Wait() {
	uc.pending.Wait()
}

// List devuelve los mensajes del más nuevo al más antiguo.
func (uc *ContactUseCase) List(ctx context.Context) ([]dto.ContactResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContactResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ContactResponse{
			ID:              c.ID,
			Nombre:          c.Nombre,
			ApellidoPaterno: c.ApellidoPaterno,
			ApellidoMaterno: c.ApellidoMaterno,
			Correo:          c.Correo,
			Telefono:        c.Telefono,
			Mensaje:         c.Mensaje,
			FechaCreacion:   c.FechaCreacion,
		})
	}
	return out, nil
}
