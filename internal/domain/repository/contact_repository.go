package repository

import (
	"context"

	"github.com/cultiva/reponedores-api/internal/domain/entity"
)

// ContactRepository define el puerto de persistencia para mensajes de contacto (solo inserción y lectura).
type ContactRepository interface {
	Create(ctx context.Context, c *entity.Contact) error
	// List ordena del más nuevo al más antiguo.
	List(ctx context.Context) ([]*entity.Contact, error)
}
