package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cultiva/reponedores-api/internal/domain"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse cuerpo de error de validación por campo.
type ValidationErrorResponse struct {
	Errores []domain.FieldError `json:"errores"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}

// FlexInt entero que acepta número o texto en JSON ("12" o 12).
// Nunca falla al decodificar: Valid queda false si el valor no es un entero.
type FlexInt struct {
	Value   int64
	Valid   bool
	Present bool
}

// UnmarshalJSON implementa json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	*f = FlexInt{Present: true}
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		f.Present = false
		return nil
	}
	var raw string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return nil
		}
	} else {
		raw = string(b)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		// 12.0 es un entero válido en JSON numérico
		var fl float64
		if ferr := json.Unmarshal([]byte(raw), &fl); ferr != nil || fl != float64(int64(fl)) {
			return nil
		}
		n = int64(fl)
	}
	f.Value, f.Valid = n, true
	return nil
}

// MarshalJSON implementa json.Marshaler.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(f.Value, 10)), nil
}

// NewFlexInt atajo para construir un FlexInt válido.
func NewFlexInt(v int64) FlexInt {
	return FlexInt{Value: v, Valid: true, Present: true}
}
