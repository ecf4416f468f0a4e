// Package policy centraliza qué roles pueden ejecutar cada grupo de operaciones.
// Todas las rutas protegidas consultan una Policy; no hay comparaciones de rol sueltas.
package policy

import (
	"strings"

	"github.com/cultiva/reponedores-api/internal/domain/entity"
)

// Policy es el conjunto de roles autorizados. Un conjunto vacío autoriza a cualquier rol autenticado.
type Policy struct {
	name  string
	roles map[string]struct{}
}

// New construye una política con nombre (para mensajes) y los roles permitidos.
func New(name string, roles ...string) Policy {
	set := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		set[entity.NormalizeRole(r)] = struct{}{}
	}
	return Policy{name: name, roles: set}
}

// Políticas usadas por la API.
var (
	// Authenticated cualquier usuario con token válido.
	Authenticated = New("autenticado")
	// AdminOnly solo administradores.
	AdminOnly = New("administrador", entity.RoleAdmin)
	// SupervisorOrAdmin supervisores; ADMIN se incluye como superusuario.
	SupervisorOrAdmin = New("supervisor", entity.RoleSupervisor, entity.RoleAdmin)
)

// Allows reporta si el rol puede ejecutar operaciones bajo esta política.
func (p Policy) Allows(rol string) bool {
	if rol == "" {
		return false
	}
	if len(p.roles) == 0 {
		return true
	}
	_, ok := p.roles[entity.NormalizeRole(rol)]
	return ok
}

// Name nombre legible de la política.
func (p Policy) Name() string { return p.name }

// DeniedMessage mensaje de error para respuestas 403.
func (p Policy) DeniedMessage() string {
	return "Acceso solo " + strings.ToLower(p.name)
}
