package postgres

import (
	"context"
	"fmt"

	"github.com/cultiva/reponedores-api/internal/domain/entity"
	"github.com/cultiva/reponedores-api/internal/domain/repository"
)

var _ repository.ContactRepository = (*ContactRepo)(nil)

// ContactRepo implementación del puerto ContactRepository sobre PostgreSQL.
type ContactRepo struct {
	db Querier
}

// NewContactRepository construye el repositorio de contactos.
func NewContactRepository(db Querier) *ContactRepo {
	return &ContactRepo{db: db}
}

// Create inserta el mensaje y asigna su ID.
func (r *ContactRepo) Create(ctx context.Context, c *entity.Contact) error {
	query := `
		INSERT INTO contactos (nombre, apellido_paterno, apellido_materno, correo, telefono, mensaje, fecha_creacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		c.Nombre, c.ApellidoPaterno, c.ApellidoMaterno, c.Correo, c.Telefono, c.Mensaje, c.FechaCreacion,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert contacto: %w", err)
	}
	return nil
}

// List mensajes del más nuevo al más antiguo.
func (r *ContactRepo) List(ctx context.Context) ([]*entity.Contact, error) {
	query := `
		SELECT id, nombre, apellido_paterno, apellido_materno, correo, telefono, mensaje, fecha_creacion
		FROM contactos
		ORDER BY fecha_creacion DESC, id DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list contactos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Contact
	for rows.Next() {
		var c entity.Contact
		if err := rows.Scan(&c.ID, &c.Nombre, &c.ApellidoPaterno, &c.ApellidoMaterno, &c.Correo, &c.Telefono, &c.Mensaje, &c.FechaCreacion); err != nil {
			return nil, fmt.Errorf("scan contacto: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
