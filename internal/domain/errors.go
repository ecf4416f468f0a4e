package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrLocationNotFound   = errors.New("local no encontrado")
	ErrReponedorNotFound  = errors.New("reponedor no encontrado")
	ErrVisitNotFound      = errors.New("visita no encontrada")
	ErrTaskNotFound       = errors.New("tarea no encontrada")
	ErrInvalidInput       = errors.New("datos inválidos")
	ErrNothingToUpdate    = errors.New("no hay datos para actualizar")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrEmailAlreadyExists = errors.New("correo ya registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("el reponedor ya tiene una visita agendada a esa hora")
)

// notFoundErrors permite que errors.Is(err, ErrNotFound) sea verdadero para los específicos.
var notFoundErrors = []error{
	ErrUserNotFound, ErrLocationNotFound, ErrReponedorNotFound, ErrVisitNotFound, ErrTaskNotFound,
}

// IsNotFound reporta si err es ErrNotFound o alguno de sus específicos.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	for _, nf := range notFoundErrors {
		if errors.Is(err, nf) {
			return true
		}
	}
	return false
}

// FieldError error de validación de un campo, con el formato {campo, mensaje}.
type FieldError struct {
	Campo   string `json:"campo"`
	Mensaje string `json:"mensaje"`
}

// ValidationErrors agrupa errores por campo. Implementa error y hace Is(ErrInvalidInput).
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Campo+": "+fe.Mensaje)
	}
	return "datos inválidos: " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput).
func (v ValidationErrors) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewFieldError atajo para un único error de campo.
func NewFieldError(campo, mensaje string) ValidationErrors {
	return ValidationErrors{{Campo: campo, Mensaje: mensaje}}
}
