package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/cultiva/reponedores-api/internal/domain"
	"github.com/cultiva/reponedores-api/internal/domain/entity"
	"github.com/cultiva/reponedores-api/internal/domain/repository"
	"github.com/cultiva/reponedores-api/internal/domain/schedule"
)

var _ repository.VisitRepository = (*VisitRepo)(nil)

// VisitRepo implementación del puerto VisitRepository sobre PostgreSQL.
// Con un pgx.Tx como Querier participa de la transacción de TxRunner.
type VisitRepo struct {
	db Querier
}

// NewVisitRepository construye el repositorio de visitas.
func NewVisitRepository(db Querier) *VisitRepo {
	return &VisitRepo{db: db}
}

// Create inserta la visita; la restricción (reponedor_id, fecha, hora) se traduce a ErrConflict.
func (r *VisitRepo) Create(ctx context.Context, v *entity.ScheduledVisit) error {
	query := `
		INSERT INTO visitas_agendadas (local_id, supervisor_id, reponedor_id, fecha, hora, estado)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		v.LocalID, nullableID(v.SupervisorID), v.ReponedorID, v.Fecha, v.Hora, v.Estado,
	).Scan(&v.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert visita: %w", err)
	}
	return nil
}

// GetByID obtiene una visita; (nil, nil) si no existe.
func (r *VisitRepo) GetByID(ctx context.Context, id int64) (*entity.ScheduledVisit, error) {
	query := `
		SELECT id, local_id, COALESCE(supervisor_id, 0), reponedor_id, fecha, hora, estado,
		       foto_inicio, foto_fin, fotos_productos, observaciones, inicio_real, fin_real, geolocalizacion,
		       lat, lng
		FROM visitas_agendadas WHERE id = $1`
	var v entity.ScheduledVisit
	var lat, lng decimal.NullDecimal
	err := r.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.LocalID, &v.SupervisorID, &v.ReponedorID, &v.Fecha, &v.Hora, &v.Estado,
		&v.FotoInicio, &v.FotoFin, &v.FotosProductos, &v.Observaciones, &v.InicioReal, &v.FinReal, &v.Geolocalizacion,
		&lat, &lng,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get visita: %w", err)
	}
	v.Ubicacion = geoPoint(lat, lng)
	return &v, nil
}

// SlotTaken reporta si el usuario ya tiene otra visita en esa fecha y hora.
func (r *VisitRepo) SlotTaken(ctx context.Context, usuarioID int64, fecha time.Time, hora string, excludeID int64) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM visitas_agendadas
			WHERE reponedor_id = $1 AND fecha = $2 AND hora = $3 AND id <> $4
		)`, usuarioID, fecha, hora, excludeID,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check horario: %w", err)
	}
	return taken, nil
}

// UpdateAssignment cambia local, reponedor, fecha y hora.
func (r *VisitRepo) UpdateAssignment(ctx context.Context, v *entity.ScheduledVisit) error {
	query := `
		UPDATE visitas_agendadas SET local_id = $2, reponedor_id = $3, fecha = $4, hora = $5
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, v.ID, v.LocalID, v.ReponedorID, v.Fecha, v.Hora)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update visita: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVisitNotFound
	}
	return nil
}

// Delete elimina la visita.
func (r *VisitRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM visitas_agendadas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete visita: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVisitNotFound
	}
	return nil
}

// InsertDays inserta los días en una sola sentencia.
func (r *VisitRepo) InsertDays(ctx context.Context, days []entity.VisitDay) error {
	if len(days) == 0 {
		return nil
	}
	visitaIDs := make([]int64, len(days))
	dias := make([]time.Time, len(days))
	estados := make([]string, len(days))
	for i, d := range days {
		visitaIDs[i], dias[i], estados[i] = d.VisitaID, d.Dia, d.Estado
	}
	query := `
		INSERT INTO visitas_semana (visita_id, dia, estado)
		SELECT * FROM unnest($1::bigint[], $2::date[], $3::text[])`
	if _, err := r.db.Exec(ctx, query, visitaIDs, dias, estados); err != nil {
		return fmt.Errorf("insert visitas_semana: %w", err)
	}
	return nil
}

// DeleteDays borra todos los días de la visita.
func (r *VisitRepo) DeleteDays(ctx context.Context, visitaID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM visitas_semana WHERE visita_id = $1`, visitaID); err != nil {
		return fmt.Errorf("delete visitas_semana: %w", err)
	}
	return nil
}

// ListDaysForLocation días de las visitas del local que caen en alguna de las fechas dadas.
func (r *VisitRepo) ListDaysForLocation(ctx context.Context, localID int64, dates []time.Time) ([]entity.VisitDay, error) {
	return r.listDays(ctx, `
		SELECT s.id, s.visita_id, s.dia, s.estado
		FROM visitas_semana s
		JOIN visitas_agendadas v ON v.id = s.visita_id
		WHERE v.local_id = $1 AND s.dia = ANY($2::date[])
		ORDER BY s.dia`, localID, dates)
}

func (r *VisitRepo) listDays(ctx context.Context, query string, args ...any) ([]entity.VisitDay, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list visitas_semana: %w", err)
	}
	defer rows.Close()

	var list []entity.VisitDay
	for rows.Next() {
		var d entity.VisitDay
		if err := rows.Scan(&d.ID, &d.VisitaID, &d.Dia, &d.Estado); err != nil {
			return nil, fmt.Errorf("scan visitas_semana: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// SetDayState cambia el estado de un día o de todos los días de la visita.
func (r *VisitRepo) SetDayState(ctx context.Context, visitaID int64, estado string, dia *time.Time) (int64, error) {
	query := `UPDATE visitas_semana SET estado = $2 WHERE visita_id = $1`
	args := []any{visitaID, estado}
	if dia != nil {
		query += ` AND dia = $3`
		args = append(args, *dia)
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update estado visitas_semana: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Start marca la visita EN_PROGRESO y, si el día de inicio pertenece a su semana, también ese día.
func (r *VisitRepo) Start(ctx context.Context, in entity.VisitStart) error {
	query := `
		WITH v AS (
			UPDATE visitas_agendadas
			SET estado = $3, foto_inicio = $4, inicio_real = $5, geolocalizacion = $6,
			    lat = $9, lng = $10
			WHERE id = $1 AND reponedor_id = $2
			RETURNING id
		), d AS (
			UPDATE visitas_semana SET estado = $3
			WHERE visita_id IN (SELECT id FROM v) AND dia = $7 AND estado = $8
		)
		SELECT count(*) FROM v`
	var n int
	err := r.db.QueryRow(ctx, query,
		in.VisitaID, in.UsuarioID, entity.VisitEnProgreso, in.FotoInicio, in.Inicio,
		in.Geolocalizacion.String(), schedule.Day(in.Inicio), entity.VisitNoRealizada,
		in.Geolocalizacion.Lat(), in.Geolocalizacion.Lng(),
	).Scan(&n)
	if err != nil {
		return fmt.Errorf("iniciar visita: %w", err)
	}
	if n == 0 {
		return domain.ErrVisitNotFound
	}
	return nil
}

// Finish marca la visita FINALIZADA y, si el día de cierre pertenece a su semana, también ese día.
func (r *VisitRepo) Finish(ctx context.Context, in entity.VisitFinish) error {
	query := `
		WITH v AS (
			UPDATE visitas_agendadas
			SET estado = $3, fotos_productos = $4, foto_fin = $5, observaciones = $6, fin_real = $7
			WHERE id = $1 AND reponedor_id = $2
			RETURNING id
		), d AS (
			UPDATE visitas_semana SET estado = $3
			WHERE visita_id IN (SELECT id FROM v) AND dia = $8
		)
		SELECT count(*) FROM v`
	var n int
	err := r.db.QueryRow(ctx, query,
		in.VisitaID, in.UsuarioID, entity.VisitFinalizada, strings.Join(in.FotosProductos, ","),
		in.FotoFin, in.Observaciones, in.Fin, schedule.Day(in.Fin),
	).Scan(&n)
	if err != nil {
		return fmt.Errorf("finalizar visita: %w", err)
	}
	if n == 0 {
		return domain.ErrVisitNotFound
	}
	return nil
}

// ListForReponedor visitas del usuario con datos del local, por fecha y hora.
func (r *VisitRepo) ListForReponedor(ctx context.Context, usuarioID int64) ([]entity.ReponedorVisitView, error) {
	query := `
		SELECT v.id, v.fecha, v.hora, v.estado, v.inicio_real, v.fin_real,
		       v.foto_inicio, v.foto_fin, v.fotos_productos, v.geolocalizacion,
		       v.lat, v.lng, l.nombre_empresa, l.direccion, l.comuna
		FROM visitas_agendadas v
		JOIN locales l ON l.id = v.local_id
		WHERE v.reponedor_id = $1
		ORDER BY v.fecha ASC, v.hora ASC`
	rows, err := r.db.Query(ctx, query, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("list visitas reponedor: %w", err)
	}
	defer rows.Close()

	var list []entity.ReponedorVisitView
	for rows.Next() {
		var v entity.ReponedorVisitView
		var lat, lng decimal.NullDecimal
		if err := rows.Scan(
			&v.ID, &v.Fecha, &v.Hora, &v.Estado, &v.InicioReal, &v.FinReal,
			&v.FotoInicio, &v.FotoFin, &v.FotosProductos, &v.Geolocalizacion,
			&lat, &lng, &v.LocalNombre, &v.Direccion, &v.Comuna,
		); err != nil {
			return nil, fmt.Errorf("scan visita reponedor: %w", err)
		}
		v.Ubicacion = geoPoint(lat, lng)
		list = append(list, v)
	}
	return list, rows.Err()
}

// ListAll todas las visitas con local y nombre del reponedor, fecha descendente.
func (r *VisitRepo) ListAll(ctx context.Context) ([]entity.VisitView, error) {
	query := `
		SELECT v.id, v.local_id, l.nombre_empresa, l.direccion, v.reponedor_id, u.nombre,
		       v.fecha, v.hora, v.estado
		FROM visitas_agendadas v
		JOIN locales l ON l.id = v.local_id
		JOIN usuarios u ON u.id = v.reponedor_id
		ORDER BY v.fecha DESC, v.hora ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list visitas: %w", err)
	}
	defer rows.Close()

	var list []entity.VisitView
	for rows.Next() {
		var v entity.VisitView
		if err := rows.Scan(
			&v.ID, &v.LocalID, &v.NombreEmpresa, &v.Direccion, &v.ReponedorID, &v.ReponedorNombre,
			&v.Fecha, &v.Hora, &v.Estado,
		); err != nil {
			return nil, fmt.Errorf("scan visita: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

// geoPoint arma la ubicación desde lat/lng NUMERIC; nil si la visita no se ha iniciado.
func geoPoint(lat, lng decimal.NullDecimal) *entity.GeoPoint {
	if !lat.Valid || !lng.Valid {
		return nil
	}
	p := entity.NewGeoPoint(lat.Decimal, lng.Decimal)
	return &p
}
