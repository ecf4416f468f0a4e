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

var _ repository.ReponedorRepository = (*ReponedorRepo)(nil)

// ReponedorRepo implementación del puerto ReponedorRepository sobre PostgreSQL.
type ReponedorRepo struct {
	db Querier
}

// NewReponedorRepository construye el repositorio de perfiles de reponedor.
func NewReponedorRepository(db Querier) *ReponedorRepo {
	return &ReponedorRepo{db: db}
}

// Create inserta un perfil; ErrUserNotFound si usuario_id no existe.
func (r *ReponedorRepo) Create(ctx context.Context, rep *entity.Reponedor) error {
	query := `
		INSERT INTO reponedores (usuario_id, rut, empresa, empresa_servicio, vigencia, foto, geolocalizacion, observaciones, creado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		rep.UsuarioID, rep.RUT, rep.Empresa, rep.EmpresaServicio, rep.Vigencia,
		rep.Foto, rep.Geolocalizacion, rep.Observaciones, rep.CreadoEn,
	).Scan(&rep.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert reponedor: %w", err)
	}
	return nil
}

// GetByID obtiene un perfil por su ID.
func (r *ReponedorRepo) GetByID(ctx context.Context, id int64) (*entity.Reponedor, error) {
	query := `
		SELECT id, usuario_id, rut, empresa, empresa_servicio, vigencia, foto, geolocalizacion, observaciones, creado_en
		FROM reponedores WHERE id = $1`
	var rep entity.Reponedor
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rep.ID, &rep.UsuarioID, &rep.RUT, &rep.Empresa, &rep.EmpresaServicio, &rep.Vigencia,
		&rep.Foto, &rep.Geolocalizacion, &rep.Observaciones, &rep.CreadoEn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reponedor: %w", err)
	}
	return &rep, nil
}

// FindProfileByUserID devuelve el perfil más reciente del usuario con nombre, correo y rol.
func (r *ReponedorRepo) FindProfileByUserID(ctx context.Context, userID int64) (*entity.ReponedorProfile, error) {
	query := `
		SELECT r.id, r.usuario_id, r.rut, r.empresa, r.empresa_servicio, r.vigencia, r.foto,
		       r.geolocalizacion, r.observaciones, r.creado_en, u.nombre, u.correo, u.rol
		FROM reponedores r
		JOIN usuarios u ON u.id = r.usuario_id
		WHERE u.id = $1
		ORDER BY r.id DESC
		LIMIT 1`
	var p entity.ReponedorProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UsuarioID, &p.RUT, &p.Empresa, &p.EmpresaServicio, &p.Vigencia, &p.Foto,
		&p.Geolocalizacion, &p.Observaciones, &p.CreadoEn, &p.Nombre, &p.Correo, &p.Rol,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get perfil reponedor: %w", err)
	}
	return &p, nil
}

// ListSummaries lista perfiles con el nombre del usuario, por nombre.
func (r *ReponedorRepo) ListSummaries(ctx context.Context) ([]entity.ReponedorSummary, error) {
	query := `
		SELECT r.id, u.nombre, r.empresa, r.empresa_servicio
		FROM reponedores r
		JOIN usuarios u ON u.id = r.usuario_id
		ORDER BY u.nombre ASC, r.id ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reponedores: %w", err)
	}
	defer rows.Close()

	var list []entity.ReponedorSummary
	for rows.Next() {
		var s entity.ReponedorSummary
		if err := rows.Scan(&s.ID, &s.Nombre, &s.Empresa, &s.EmpresaServicio); err != nil {
			return nil, fmt.Errorf("scan reponedor: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
