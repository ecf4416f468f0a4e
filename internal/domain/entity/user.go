package entity

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Roles válidos para User.
const (
	RoleAdmin      = "ADMIN"
	RoleSupervisor = "SUPERVISOR"
	RoleReponedor  = "REPONEDOR"
	RoleProveedor  = "PROVEEDOR"
)

// Roles lista los roles en el orden en que se documentan.
var Roles = []string{RoleAdmin, RoleSupervisor, RoleReponedor, RoleProveedor}

// IsValidRole reporta si r (ya normalizado a mayúsculas) es un rol conocido.
func IsValidRole(r string) bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// NormalizeRole recorta y pasa a mayúsculas el rol recibido.
// Un Caser no se comparte entre goroutines, por eso se crea en cada llamada.
func NormalizeRole(r string) string {
	return cases.Upper(language.Spanish).String(strings.TrimSpace(r))
}

// User representa una cuenta del sistema.
type User struct {
	ID           int64
	Nombre       string
	Correo       string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Rol          string
	CreadoEn     time.Time
}

// UserPatch cambios parciales sobre un usuario; nil = sin cambio.
// PasswordHash ya viene hasheado desde el caso de uso.
type UserPatch struct {
	Nombre       *string
	Correo       *string
	PasswordHash *string
	Rol          *string
}

// Empty reporta si el patch no trae cambios.
func (p UserPatch) Empty() bool {
	return p.Nombre == nil && p.Correo == nil && p.PasswordHash == nil && p.Rol == nil
}
