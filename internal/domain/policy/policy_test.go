package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cultiva/reponedores-api/internal/domain/entity"
	"github.com/cultiva/reponedores-api/internal/domain/policy"
)

func TestPolicies(t *testing.T) {
	cases := []struct {
		name   string
		p      policy.Policy
		rol    string
		allows bool
	}{
		{"admin en ruta admin", policy.AdminOnly, entity.RoleAdmin, true},
		{"supervisor en ruta admin", policy.AdminOnly, entity.RoleSupervisor, false},
		{"supervisor en ruta supervisor", policy.SupervisorOrAdmin, entity.RoleSupervisor, true},
		{"admin como superusuario", policy.SupervisorOrAdmin, entity.RoleAdmin, true},
		{"reponedor en ruta supervisor", policy.SupervisorOrAdmin, entity.RoleReponedor, false},
		{"proveedor autenticado", policy.Authenticated, entity.RoleProveedor, true},
		{"rol en minúsculas", policy.SupervisorOrAdmin, "supervisor", true},
		{"sin rol", policy.Authenticated, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allows, tc.p.Allows(tc.rol))
		})
	}
}

func TestPolicy_DeniedMessage(t *testing.T) {
	assert.Equal(t, "Acceso solo administrador", policy.AdminOnly.DeniedMessage())
	assert.Equal(t, "Acceso solo supervisor", policy.SupervisorOrAdmin.DeniedMessage())
}
