package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cultiva/reponedores-api/internal/domain"
	"github.com/cultiva/reponedores-api/internal/domain/entity"
	"github.com/cultiva/reponedores-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

const locationColumns = `id, nombre_empresa, comuna, direccion, horarios, creado_en`

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	db Querier
}

// NewLocationRepository construye el repositorio de locales.
func NewLocationRepository(db Querier) *LocationRepo {
	return &LocationRepo{db: db}
}

// Create inserta un local y asigna su ID.
func (r *LocationRepo) Create(ctx context.Context, loc *entity.Location) error {
	query := `
		INSERT INTO locales (nombre_empresa, comuna, direccion, horarios, creado_en)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		loc.NombreEmpresa, loc.Comuna, loc.Direccion, loc.Horarios, loc.CreadoEn,
	).Scan(&loc.ID)
	if err != nil {
		return fmt.Errorf("insert local: %w", err)
	}
	return nil
}

// GetByID obtiene un local; (nil, nil) si no existe.
func (r *LocationRepo) GetByID(ctx context.Context, id int64) (*entity.Location, error) {
	var l entity.Location
	err := r.db.QueryRow(ctx, `SELECT `+locationColumns+` FROM locales WHERE id = $1`, id).Scan(
		&l.ID, &l.NombreEmpresa, &l.Comuna, &l.Direccion, &l.Horarios, &l.CreadoEn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get local: %w", err)
	}
	return &l, nil
}

// List locales del más nuevo al más antiguo.
func (r *LocationRepo) List(ctx context.Context) ([]*entity.Location, error) {
	return r.list(ctx, `SELECT `+locationColumns+` FROM locales ORDER BY creado_en DESC, id DESC`)
}

// ListByName locales por nombre de empresa.
func (r *LocationRepo) ListByName(ctx context.Context) ([]*entity.Location, error) {
	return r.list(ctx, `SELECT `+locationColumns+` FROM locales ORDER BY nombre_empresa ASC, id ASC`)
}

func (r *LocationRepo) list(ctx context.Context, query string) ([]*entity.Location, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.NombreEmpresa, &l.Comuna, &l.Direccion, &l.Horarios, &l.CreadoEn); err != nil {
			return nil, fmt.Errorf("scan local: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Update reemplaza los datos del local.
func (r *LocationRepo) Update(ctx context.Context, loc *entity.Location) error {
	query := `
		UPDATE locales SET nombre_empresa = $2, comuna = $3, direccion = $4, horarios = $5
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, loc.ID, loc.NombreEmpresa, loc.Comuna, loc.Direccion, loc.Horarios)
	if err != nil {
		return fmt.Errorf("update local: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLocationNotFound
	}
	return nil
}

// Delete elimina el local (sus visitas caen por ON DELETE CASCADE).
func (r *LocationRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM locales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete local: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLocationNotFound
	}
	return nil
}
