package repository

import (
	"context"
	"time"

	"github.com/cultiva/reponedores-api/internal/domain/entity"
)

// VisitRepository define el puerto de persistencia para visitas agendadas y sus días.
type VisitRepository interface {
	Create(ctx context.Context, v *entity.ScheduledVisit) error
	GetByID(ctx context.Context, id int64) (*entity.ScheduledVisit, error)
	// SlotTaken reporta si el usuario ya tiene otra visita (id != excludeID) en esa fecha y hora.
	SlotTaken(ctx context.Context, usuarioID int64, fecha time.Time, hora string, excludeID int64) (bool, error)
	// UpdateAssignment cambia local, reponedor, fecha y hora.
	UpdateAssignment(ctx context.Context, v *entity.ScheduledVisit) error
	Delete(ctx context.Context, id int64) error

	InsertDays(ctx context.Context, days []entity.VisitDay) error
	DeleteDays(ctx context.Context, visitaID int64) error
	// ListDaysForLocation devuelve los días de las visitas del local que caen en dates.
	ListDaysForLocation(ctx context.Context, localID int64, dates []time.Time) ([]entity.VisitDay, error)
	// SetDayState cambia el estado de un día (dia != nil) o de todos; devuelve filas afectadas.
	SetDayState(ctx context.Context, visitaID int64, estado string, dia *time.Time) (int64, error)

	// Start y Finish exigen que la visita pertenezca al usuario; ErrVisitNotFound si no.
	Start(ctx context.Context, in entity.VisitStart) error
	Finish(ctx context.Context, in entity.VisitFinish) error

	ListForReponedor(ctx context.Context, usuarioID int64) ([]entity.ReponedorVisitView, error)
	ListAll(ctx context.Context) ([]entity.VisitView, error)
}
