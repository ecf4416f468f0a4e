// Package validation traduce las etiquetas `validate` de los DTO a errores {campo, mensaje}.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cultiva/reponedores-api/internal/domain"
	"github.com/cultiva/reponedores-api/internal/domain/entity"
)

// Validator envuelve validator.Validate (seguro para uso concurrente una vez construido).
type Validator struct {
	v *validator.Validate
}

// New construye el validador con el nombre JSON como nombre de campo y la regla "rol".
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("rol", func(fl validator.FieldLevel) bool {
		return entity.IsValidRole(entity.NormalizeRole(fl.Field().String()))
	})
	return &Validator{v: v}
}

// Struct valida s. Devuelve domain.ValidationErrors o nil.
func (x *Validator) Struct(s any) error {
	err := x.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validar: %w", err)
	}
	out := make(domain.ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, domain.FieldError{Campo: fe.Field(), Mensaje: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "email":
		return "correo inválido"
	case "min":
		return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	case "oneof":
		return "debe ser uno de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "rol":
		return "debe ser uno de: " + strings.Join(entity.Roles, ", ")
	default:
		return "valor inválido"
	}
}
