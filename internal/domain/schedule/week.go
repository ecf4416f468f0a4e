// Package schedule contiene el cálculo de fechas de las visitas semanales:
// los 7 días materializados por visita y el resumen de lunes a domingo.
package schedule

import (
	"errors"
	"regexp"
	"time"

	"github.com/cultiva/reponedores-api/internal/domain/entity"
)

// DaysPerVisit cantidad de registros diarios que se crean por visita agendada.
const DaysPerVisit = 7

// DateLayout formato de fecha en la API y en la base de datos.
const DateLayout = "2006-01-02"

// DayLabels etiquetas de lunes a domingo usadas por el resumen semanal.
var DayLabels = [DaysPerVisit]string{"L", "M", "X", "J", "V", "S", "D"}

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	hourRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

	// ErrInvalidDate fecha con formato distinto de YYYY-MM-DD o inexistente.
	ErrInvalidDate = errors.New("fecha inválida, formato YYYY-MM-DD")
	// ErrInvalidHour hora con formato distinto de HH:MM o fuera de rango.
	ErrInvalidHour = errors.New("hora inválida, formato HH:MM")
)

// ParseDate valida el formato YYYY-MM-DD y que la fecha exista en el calendario.
// El resultado queda a medianoche UTC.
func ParseDate(s string) (time.Time, error) {
	if !dateRe.MatchString(s) {
		return time.Time{}, ErrInvalidDate
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// ValidateHour valida el formato HH:MM con hora 00-23 y minutos 00-59.
func ValidateHour(s string) error {
	if !hourRe.MatchString(s) {
		return ErrInvalidHour
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return ErrInvalidHour
	}
	return nil
}

// Day normaliza t a medianoche UTC de su fecha calendario.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// VisitDays devuelve los 7 días consecutivos a partir de start (incluido).
func VisitDays(start time.Time) []time.Time {
	start = Day(start)
	days := make([]time.Time, DaysPerVisit)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// NewVisitDays materializa los registros diarios de una visita, todos NO_REALIZADA.
func NewVisitDays(visitaID int64, start time.Time) []entity.VisitDay {
	dates := VisitDays(start)
	out := make([]entity.VisitDay, len(dates))
	for i, d := range dates {
		out[i] = entity.VisitDay{VisitaID: visitaID, Dia: d, Estado: entity.VisitNoRealizada}
	}
	return out
}

// WeekStart devuelve el lunes de la semana ISO que contiene anchor.
// Un domingo se trata como séptimo día de la semana anterior.
func WeekStart(anchor time.Time) time.Time {
	anchor = Day(anchor)
	wd := int(anchor.Weekday())
	if wd == 0 {
		return anchor.AddDate(0, 0, -6)
	}
	return anchor.AddDate(0, 0, 1-wd)
}

// WeekDates devuelve los 7 días (lunes a domingo) de la semana de anchor.
func WeekDates(anchor time.Time) []time.Time {
	return VisitDays(WeekStart(anchor))
}

// SummaryDay una entrada del resumen semanal.
type SummaryDay struct {
	Label  string
	Fecha  time.Time
	Estado string
}

// Summarize arma el resumen L..D de la semana de anchor a partir de los registros diarios.
// Los registros se indexan por fecha, nunca por posición. Si varias visitas coinciden en un
// día, gana el estado más avanzado. Los días sin registro quedan NO_REALIZADA.
func Summarize(anchor time.Time, days []entity.VisitDay) []SummaryDay {
	byDate := make(map[string]string, len(days))
	for _, d := range days {
		key := Day(d.Dia).Format(DateLayout)
		if prev, ok := byDate[key]; !ok || entity.VisitStateRank(d.Estado) > entity.VisitStateRank(prev) {
			byDate[key] = d.Estado
		}
	}

	dates := WeekDates(anchor)
	out := make([]SummaryDay, len(dates))
	for i, d := range dates {
		estado, ok := byDate[d.Format(DateLayout)]
		if !ok {
			estado = entity.VisitNoRealizada
		}
		out[i] = SummaryDay{Label: DayLabels[i], Fecha: d, Estado: estado}
	}
	return out
}
