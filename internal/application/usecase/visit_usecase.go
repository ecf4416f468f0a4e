package usecase

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cultiva/reponedores-api/internal/application/dto"
	"github.com/cultiva/reponedores-api/internal/domain"
	"github.com/cultiva/reponedores-api/internal/domain/entity"
	"github.com/cultiva/reponedores-api/internal/domain/repository"
	"github.com/cultiva/reponedores-api/internal/domain/schedule"
)

// VisitPhotosDir subdirectorio de uploads para fotos de visitas.
const VisitPhotosDir = "visitas"

// MaxProductPhotos límite de fotos de productos por cierre de visita.
const MaxProductPhotos = 50

// VisitUseCase agenda visitas, mantiene sus 7 días y registra su ejecución en terreno.
type VisitUseCase struct {
	visits     repository.VisitRepository
	locations  repository.LocationRepository
	reponedors repository.ReponedorRepository
	tx         VisitTxRunner
	files      FileStore
	exporter   VisitExporter
	log        zerolog.Logger
	now        func() time.Time
}

// NewVisitUseCase construye el caso de uso.
func NewVisitUseCase(
	visits repository.VisitRepository,
	locations repository.LocationRepository,
	reponedors repository.ReponedorRepository,
	tx VisitTxRunner,
	files FileStore,
	exporter VisitExporter,
	log zerolog.Logger,
) *VisitUseCase {
	return &VisitUseCase{
		visits:     visits,
		locations:  locations,
		reponedors: reponedors,
		tx:         tx,
		files:      files,
		exporter:   exporter,
		log:        log,
		now:        time.Now,
	}
}

// visitInput es un VisitRequest ya validado.
type visitInput struct {
	localID     int64
	reponedorID int64
	fecha       time.Time
	hora        string
}

func parseVisitRequest(in dto.VisitRequest) (visitInput, error) {
	var errs domain.ValidationErrors
	out := visitInput{hora: strings.TrimSpace(in.Hora)}
	if fe, ok := checkID("localId", in.LocalID); !ok {
		errs = append(errs, fe)
	}
	if fe, ok := checkID("reponedorId", in.ReponedorID); !ok {
		errs = append(errs, fe)
	}
	if err := schedule.ValidateHour(out.hora); err != nil {
		errs = append(errs, domain.FieldError{Campo: "hora", Mensaje: err.Error()})
	}
	fecha, err := schedule.ParseDate(in.Fecha)
	if err != nil {
		errs = append(errs, domain.FieldError{Campo: "fecha", Mensaje: err.Error()})
	}
	if len(errs) > 0 {
		return visitInput{}, errs
	}
	out.localID = in.LocalID.Value
	out.reponedorID = in.ReponedorID.Value
	out.fecha = fecha
	return out, nil
}

// checkID distingue un id ausente de uno con valor no entero o no positivo.
func checkID(campo string, id dto.FlexInt) (domain.FieldError, bool) {
	switch {
	case !id.Present:
		return domain.FieldError{Campo: campo, Mensaje: campo + " es obligatorio"}, false
	case !id.Valid || id.Value <= 0:
		return domain.FieldError{Campo: campo, Mensaje: campo + " inválido"}, false
	}
	return domain.FieldError{}, true
}

// resolveAssignment comprueba local y reponedor; devuelve el id de usuario del reponedor.
func (uc *VisitUseCase) resolveAssignment(ctx context.Context, in visitInput) (int64, error) {
	loc, err := uc.locations.GetByID(ctx, in.localID)
	if err != nil {
		return 0, err
	}
	if loc == nil {
		return 0, domain.ErrLocationNotFound
	}
	rep, err := uc.reponedors.GetByID(ctx, in.reponedorID)
	if err != nil {
		return 0, err
	}
	if rep == nil {
		return 0, domain.ErrReponedorNotFound
	}
	return rep.UsuarioID, nil
}

// Schedule agenda una visita y materializa sus 7 días en una sola transacción.
func (uc *VisitUseCase) Schedule(ctx context.Context, supervisorID int64, req dto.VisitRequest) (*dto.ScheduleVisitResponse, error) {
	in, err := parseVisitRequest(req)
	if err != nil {
		return nil, err
	}
	usuarioID, err := uc.resolveAssignment(ctx, in)
	if err != nil {
		return nil, err
	}
	taken, err := uc.visits.SlotTaken(ctx, usuarioID, in.fecha, in.hora, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrConflict
	}

	visit := &entity.ScheduledVisit{
		LocalID:      in.localID,
		SupervisorID: supervisorID,
		ReponedorID:  usuarioID,
		Fecha:        in.fecha,
		Hora:         in.hora,
		Estado:       entity.VisitNoRealizada,
	}
	err = uc.tx.RunVisits(ctx, func(visits repository.VisitRepository) error {
		if err := visits.Create(ctx, visit); err != nil {
			return err
		}
		return visits.InsertDays(ctx, schedule.NewVisitDays(visit.ID, in.fecha))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("visita_id", visit.ID).Int64("local_id", in.localID).
		Str("fecha", in.fecha.Format(schedule.DateLayout)).Msg("visita agendada")
	return &dto.ScheduleVisitResponse{Message: "Visita agendada correctamente", VisitaID: visit.ID}, nil
}

// Reschedule cambia local, reponedor, fecha u hora y regenera los 7 días (los estados previos se pierden).
func (uc *VisitUseCase) Reschedule(ctx context.Context, visitID int64, req dto.VisitRequest) error {
	in, err := parseVisitRequest(req)
	if err != nil {
		return err
	}
	current, err := uc.visits.GetByID(ctx, visitID)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrVisitNotFound
	}
	usuarioID, err := uc.resolveAssignment(ctx, in)
	if err != nil {
		return err
	}
	taken, err := uc.visits.SlotTaken(ctx, usuarioID, in.fecha, in.hora, visitID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrConflict
	}

	current.LocalID = in.localID
	current.ReponedorID = usuarioID
	current.Fecha = in.fecha
	current.Hora = in.hora
	return uc.tx.RunVisits(ctx, func(visits repository.VisitRepository) error {
		if err := visits.UpdateAssignment(ctx, current); err != nil {
			return err
		}
		if err := visits.DeleteDays(ctx, visitID); err != nil {
			return err
		}
		return visits.InsertDays(ctx, schedule.NewVisitDays(visitID, in.fecha))
	})
}

// Cancel elimina la visita y sus días.
func (uc *VisitUseCase) Cancel(ctx context.Context, visitID int64) error {
	current, err := uc.visits.GetByID(ctx, visitID)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrVisitNotFound
	}
	return uc.tx.RunVisits(ctx, func(visits repository.VisitRepository) error {
		if err := visits.DeleteDays(ctx, visitID); err != nil {
			return err
		}
		return visits.Delete(ctx, visitID)
	})
}

// WeeklySummary estado L..D de un local para la semana que contiene week.
func (uc *VisitUseCase) WeeklySummary(ctx context.Context, localID int64, week string) ([]dto.WeeklySummaryDay, error) {
	var errs domain.ValidationErrors
	if localID <= 0 {
		errs = append(errs, domain.FieldError{Campo: "localId", Mensaje: "localId inválido"})
	}
	anchor, err := schedule.ParseDate(week)
	if err != nil {
		errs = append(errs, domain.FieldError{Campo: "week", Mensaje: err.Error()})
	}
	if len(errs) > 0 {
		return nil, errs
	}
	dates := schedule.WeekDates(anchor)
	days, err := uc.visits.ListDaysForLocation(ctx, localID, dates)
	if err != nil {
		return nil, err
	}
	summary := schedule.Summarize(anchor, days)
	out := make([]dto.WeeklySummaryDay, 0, len(summary))
	for _, d := range summary {
		out = append(out, dto.WeeklySummaryDay{
			Dia:    d.Label,
			Fecha:  d.Fecha.Format(schedule.DateLayout),
			Estado: d.Estado,
		})
	}
	return out, nil
}

// SetDayState fija el estado de un día de la visita o, sin día, de toda su semana.
func (uc *VisitUseCase) SetDayState(ctx context.Context, visitID int64, in dto.SetDayStateRequest) error {
	estado := strings.ToUpper(strings.TrimSpace(in.Estado))
	if !entity.IsValidVisitState(estado) {
		return domain.NewFieldError("estado", "debe ser uno de: "+
			strings.Join([]string{entity.VisitNoRealizada, entity.VisitEnProgreso, entity.VisitFinalizada}, ", "))
	}
	var dia *time.Time
	if in.Dia != nil && strings.TrimSpace(*in.Dia) != "" {
		d, err := schedule.ParseDate(*in.Dia)
		if err != nil {
			return domain.NewFieldError("dia", err.Error())
		}
		dia = &d
	}
	n, err := uc.visits.SetDayState(ctx, visitID, estado, dia)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrVisitNotFound
	}
	return nil
}

// ListForReponedor visitas propias del usuario, por fecha y hora ascendentes.
func (uc *VisitUseCase) ListForReponedor(ctx context.Context, usuarioID int64) ([]dto.ReponedorVisitResponse, error) {
	rows, err := uc.visits.ListForReponedor(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReponedorVisitResponse, 0, len(rows))
	for _, v := range rows {
		var lat, lng *float64
		if v.Ubicacion != nil {
			la, lo := v.Ubicacion.Lat().InexactFloat64(), v.Ubicacion.Lng().InexactFloat64()
			lat, lng = &la, &lo
		}
		out = append(out, dto.ReponedorVisitResponse{
			ID:              v.ID,
			Fecha:           v.Fecha.Format(schedule.DateLayout),
			Hora:            v.Hora,
			Estado:          v.Estado,
			InicioReal:      v.InicioReal,
			FinReal:         v.FinReal,
			FotoInicio:      uc.publicPath(v.FotoInicio),
			FotoFin:         uc.publicPath(v.FotoFin),
			FotosProductos:  uc.productPhotos(v.FotosProductos),
			Geolocalizacion: v.Geolocalizacion,
			Lat:             lat,
			Lng:             lng,
			LocalNombre:     v.LocalNombre,
			Direccion:       v.Direccion,
			Comuna:          v.Comuna,
		})
	}
	return out, nil
}

// ListAll listado general para supervisores.
func (uc *VisitUseCase) ListAll(ctx context.Context) ([]dto.VisitResponse, error) {
	rows, err := uc.visits.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VisitResponse, 0, len(rows))
	for _, v := range rows {
		out = append(out, dto.VisitResponse{
			ID:              v.ID,
			LocalID:         v.LocalID,
			NombreEmpresa:   v.NombreEmpresa,
			Direccion:       v.Direccion,
			ReponedorID:     v.ReponedorID,
			ReponedorNombre: v.ReponedorNombre,
			Fecha:           v.Fecha.Format(schedule.DateLayout),
			Hora:            v.Hora,
			Estado:          v.Estado,
		})
	}
	return out, nil
}

// ExportAll planilla XLSX con el listado general.
func (uc *VisitUseCase) ExportAll(ctx context.Context) ([]byte, error) {
	rows, err := uc.visits.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return uc.exporter.ExportVisits(ctx, rows)
}

// StartVisitInput datos de inicio recibidos desde el formulario multipart.
type StartVisitInput struct {
	Foto *multipart.FileHeader
	Lat  string
	Lng  string
}

// Start marca la visita EN_PROGRESO con foto y coordenadas. Devuelve la ruta pública de la foto.
func (uc *VisitUseCase) Start(ctx context.Context, visitID, usuarioID int64, in StartVisitInput) (*dto.StartVisitResponse, error) {
	var errs domain.ValidationErrors
	if in.Foto == nil {
		errs = append(errs, domain.FieldError{Campo: "foto_inicio", Mensaje: "es obligatorio"})
	}
	if strings.TrimSpace(in.Lat) == "" {
		errs = append(errs, domain.FieldError{Campo: "lat", Mensaje: "es obligatorio"})
	}
	if strings.TrimSpace(in.Lng) == "" {
		errs = append(errs, domain.FieldError{Campo: "lng", Mensaje: "es obligatorio"})
	}
	if len(errs) > 0 {
		return nil, errs
	}
	point, err := entity.ParseGeoPoint(in.Lat, in.Lng)
	if err != nil {
		return nil, domain.NewFieldError("geolocalizacion", err.Error())
	}

	names, err := uc.files.Save(ctx, VisitPhotosDir, usuarioID, []*multipart.FileHeader{in.Foto})
	if err != nil {
		return nil, err
	}
	err = uc.visits.Start(ctx, entity.VisitStart{
		VisitaID:        visitID,
		UsuarioID:       usuarioID,
		FotoInicio:      names[0],
		Geolocalizacion: point,
		Inicio:          uc.now(),
	})
	if err != nil {
		uc.files.Remove(VisitPhotosDir, names...)
		return nil, err
	}
	return &dto.StartVisitResponse{
		Message:    "Visita iniciada correctamente",
		FotoInicio: uc.files.PublicPath(VisitPhotosDir, names[0]),
	}, nil
}

// FinishVisitInput datos de cierre. FotoFin puede llegar como archivo o como referencia ya subida.
type FinishVisitInput struct {
	FotosProductos []*multipart.FileHeader
	FotoFin        *multipart.FileHeader
	FotoFinRef     string
	Observaciones  *string
}

// Finish marca la visita FINALIZADA con sus fotos de productos.
func (uc *VisitUseCase) Finish(ctx context.Context, visitID, usuarioID int64, in FinishVisitInput) error {
	var errs domain.ValidationErrors
	if len(in.FotosProductos) == 0 {
		errs = append(errs, domain.FieldError{Campo: "fotos_productos", Mensaje: "Debe subir al menos una foto de productos"})
	} else if len(in.FotosProductos) > MaxProductPhotos {
		errs = append(errs, domain.FieldError{Campo: "fotos_productos", Mensaje: "máximo 50 fotos"})
	}
	fotoFinRef := strings.TrimSpace(in.FotoFinRef)
	if in.FotoFin == nil && fotoFinRef == "" {
		errs = append(errs, domain.FieldError{Campo: "foto_fin", Mensaje: "Debe subir la foto final de la visita"})
	}
	if len(errs) > 0 {
		return errs
	}

	uploads := in.FotosProductos
	if in.FotoFin != nil {
		uploads = append(append([]*multipart.FileHeader{}, in.FotosProductos...), in.FotoFin)
	}
	names, err := uc.files.Save(ctx, VisitPhotosDir, usuarioID, uploads)
	if err != nil {
		return err
	}
	productos := names[:len(in.FotosProductos)]
	fotoFin := fotoFinRef
	if in.FotoFin != nil {
		fotoFin = names[len(names)-1]
	}

	err = uc.visits.Finish(ctx, entity.VisitFinish{
		VisitaID:       visitID,
		UsuarioID:      usuarioID,
		FotosProductos: productos,
		FotoFin:        fotoFin,
		Observaciones:  nonEmpty(in.Observaciones),
		Fin:            uc.now(),
	})
	if err != nil {
		uc.files.Remove(VisitPhotosDir, names...)
		if !errors.Is(err, domain.ErrVisitNotFound) {
			uc.log.Error().Err(err).Int64("visita_id", visitID).Msg("no se pudo finalizar la visita")
		}
		return err
	}
	return nil
}

func (uc *VisitUseCase) publicPath(name *string) *string {
	if name == nil || *name == "" {
		return name
	}
	// referencias ya absolutas se devuelven tal cual
	if strings.HasPrefix(*name, "/") || strings.Contains(*name, "://") {
		return name
	}
	p := uc.files.PublicPath(VisitPhotosDir, *name)
	return &p
}

func (uc *VisitUseCase) productPhotos(joined *string) []string {
	out := []string{}
	if joined == nil {
		return out
	}
	for _, n := range strings.Split(*joined, ",") {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		out = append(out, *uc.publicPath(&n))
	}
	return out
}
