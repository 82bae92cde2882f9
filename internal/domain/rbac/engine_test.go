package rbac_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greengotts/greengotts-api/internal/domain/entity"
	"github.com/greengotts/greengotts-api/internal/domain/rbac"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del almacén de roles
// ──────────────────────────────────────────────────────────────────────────────

type fakeRoles struct {
	assignments []entity.RoleAssignment
}

func (f *fakeRoles) HasRole(_ context.Context, userID string, role entity.RoleCode, teamID *string) (bool, error) {
	for _, a := range f.assignments {
		if a.UserID != userID || a.Role != role {
			continue
		}
		if a.TeamID == nil {
			return true, nil // la global siempre satisface el check acotado
		}
		if teamID != nil && *a.TeamID == *teamID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRoles) HasGlobalRole(_ context.Context, userID string, role entity.RoleCode) (bool, error) {
	for _, a := range f.assignments {
		if a.UserID == userID && a.Role == role && a.TeamID == nil {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRoles) ListAssignments(_ context.Context, userID string) ([]entity.RoleAssignment, error) {
	var out []entity.RoleAssignment
	for _, a := range f.assignments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func assignment(userID string, role entity.RoleCode, teamID string) entity.RoleAssignment {
	a := entity.RoleAssignment{UserID: userID, Role: role}
	if teamID != "" {
		a.TeamID = &teamID
	}
	return a
}

func activeUser(id string) *entity.User {
	return &entity.User{ID: id, Email: id + "@example.com", Status: entity.UserStatusActive}
}

// ──────────────────────────────────────────────────────────────────────────────
// Authorize
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthorize_SinActor_Unauthenticated(t *testing.T) {
	engine := rbac.NewEngine(&fakeRoles{})

	d, err := engine.Authorize(context.Background(), nil, rbac.Policy{
		RequiredRoles: []entity.RoleCode{entity.RoleAdmin},
		Scope:         rbac.ScopeGlobal,
	})
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, rbac.ReasonUnauthenticated, d.Reason)
}

// Un usuario inactivo se rechaza aunque tenga todos los roles asignados.
func TestAuthorize_UsuarioInactivo_ForbiddenSiempre(t *testing.T) {
	roles := &fakeRoles{assignments: []entity.RoleAssignment{
		assignment("u1", entity.RoleAdmin, ""),
		assignment("u1", entity.RoleManager, "t1"),
	}}
	engine := rbac.NewEngine(roles)
	inactive := &entity.User{ID: "u1", Status: entity.UserStatusInactive}

	for _, p := range []rbac.Policy{
		{RequiredRoles: []entity.RoleCode{entity.RoleAdmin}, Scope: rbac.ScopeGlobal},
		{RequiredRoles: []entity.RoleCode{entity.RoleManager}, Scope: rbac.ScopeContextual, TeamID: "t1"},
		{Scope: rbac.ScopeGlobal}, // sin roles requeridos tampoco pasa
	} {
		d, err := engine.Authorize(context.Background(), inactive, p)
		require.NoError(t, err)
		assert.False(t, d.Allowed)
		assert.Equal(t, rbac.ReasonInactive, d.Reason)
	}
}

// Scope global: solo cuentan asignaciones globales.
func TestAuthorize_ScopeGlobal_IgnoraAsignacionesDeEquipo(t *testing.T) {
	roles := &fakeRoles{assignments: []entity.RoleAssignment{
		assignment("u1", entity.RoleManager, "t1"), // acotada, no sirve para global
	}}
	engine := rbac.NewEngine(roles)

	d, err := engine.Authorize(context.Background(), activeUser("u1"), rbac.Policy{
		RequiredRoles: []entity.RoleCode{entity.RoleManager},
		Scope:         rbac.ScopeGlobal,
	})
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, rbac.ReasonInsufficientRole, d.Reason)
	assert.Equal(t, []entity.RoleCode{entity.RoleManager}, d.Required,
		"el rechazo debe cargar el conjunto de roles requerido para diagnóstico")
}

func TestAuthorize_ScopeGlobal_PermiteConRolGlobal(t *testing.T) {
	roles := &fakeRoles{assignments: []entity.RoleAssignment{
		assignment("u1", entity.RoleFinance, ""),
	}}
	engine := rbac.NewEngine(roles)

	d, err := engine.Authorize(context.Background(), activeUser("u1"), rbac.Policy{
		RequiredRoles: []entity.RoleCode{entity.RoleFinance, entity.RoleAdmin},
		Scope:         rbac.ScopeGlobal,
	})
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.NoError(t, d.Err())
}

// Semántica OR: basta con uno de los roles requeridos.
func TestAuthorize_RolesRequeridosSonOR(t *testing.T) {
	roles := &fakeRoles{assignments: []entity.RoleAssignment{
		assignment("u1", entity.RoleContributor, "t1"),
	}}
	engine := rbac.NewEngine(roles)

	d, err := engine.Authorize(context.Background(), activeUser("u1"), rbac.Policy{
		RequiredRoles: []entity.RoleCode{entity.RoleContributor, entity.RoleManager, entity.RoleAdmin},
		Scope:         rbac.ScopeContextual,
		TeamID:        "t1",
	})
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestAuthorize_Contextual_RolDeOtroEquipoNoSirve(t *testing.T) {
	roles := &fakeRoles{assignments: []entity.RoleAssignment{
		assignment("u1", entity.RoleManager, "t1"),
	}}
	engine := rbac.NewEngine(roles)

	d, err := engine.Authorize(context.Background(), activeUser("u1"), rbac.Policy{
		RequiredRoles: []entity.RoleCode{entity.RoleManager, entity.RoleAdmin},
		Scope:         rbac.ScopeContextual,
		TeamID:        "t2",
	})
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, rbac.ReasonInsufficientRole, d.Reason)
}

// ADMIN global satisface cualquier política contextual, para cualquier equipo.
func TestAuthorize_AdminGlobal_SatisfaceContextualDeCualquierEquipo(t *testing.T) {
	roles := &fakeRoles{assignments: []entity.RoleAssignment{
		assignment("admin", entity.RoleAdmin, ""),
	}}
	engine := rbac.NewEngine(roles)

	d, err := engine.Authorize(context.Background(), activeUser("admin"), rbac.Policy{
		RequiredRoles:     []entity.RoleCode{entity.RoleManager, entity.RoleAdmin},
		Scope:             rbac.ScopeContextual,
		TeamID:            "equipo-que-no-existe",
		RequireTeamMember: true,
	})
	require.NoError(t, err)
	assert.True(t, d.Allowed, "un ADMIN global pasa también el check de pertenencia")
}

func TestAuthorize_RequireTeamMember_SinAsignacionEnEquipo(t *testing.T) {
	roles := &fakeRoles{assignments: []entity.RoleAssignment{
		assignment("u1", entity.RoleContributor, ""), // global, pero no es ADMIN
	}}
	engine := rbac.NewEngine(roles)

	d, err := engine.Authorize(context.Background(), activeUser("u1"), rbac.Policy{
		RequiredRoles:     []entity.RoleCode{entity.RoleContributor, entity.RoleManager, entity.RoleAdmin},
		Scope:             rbac.ScopeContextual,
		TeamID:            "t1",
		RequireTeamMember: true,
	})
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, rbac.ReasonNoTeamAccess, d.Reason)
}

func TestAuthorize_RequireTeamMember_CualquierRolDelEquipoBasta(t *testing.T) {
	roles := &fakeRoles{assignments: []entity.RoleAssignment{
		assignment("u1", entity.RoleContributor, "t1"),
	}}
	engine := rbac.NewEngine(roles)

	d, err := engine.Authorize(context.Background(), activeUser("u1"), rbac.Policy{
		Scope:             rbac.ScopeContextual,
		TeamID:            "t1",
		RequireTeamMember: true,
	})
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestAuthorize_ContextualSinTeamID_EsErrorDePrograma(t *testing.T) {
	engine := rbac.NewEngine(&fakeRoles{})

	_, err := engine.Authorize(context.Background(), activeUser("u1"), rbac.Policy{
		RequiredRoles: []entity.RoleCode{entity.RoleAdmin},
		Scope:         rbac.ScopeContextual,
	})
	assert.Error(t, err)
}

// Propiedad §8: con scope global, permite sii el actor tiene al menos una
// asignación global cuyo rol esté en R.
func TestAuthorize_PropiedadGlobal_TablaExhaustiva(t *testing.T) {
	allRoles := []entity.RoleCode{entity.RoleAdmin, entity.RoleManager, entity.RoleContributor, entity.RoleFinance}

	cases := []struct {
		name     string
		held     []entity.RoleAssignment
		required []entity.RoleCode
		want     bool
	}{
		{"sin roles", nil, []entity.RoleCode{entity.RoleAdmin}, false},
		{"rol exacto", []entity.RoleAssignment{assignment("u", entity.RoleFinance, "")}, []entity.RoleCode{entity.RoleFinance}, true},
		{"interseccion vacia", []entity.RoleAssignment{assignment("u", entity.RoleFinance, "")}, []entity.RoleCode{entity.RoleAdmin, entity.RoleManager}, false},
		{"interseccion parcial", []entity.RoleAssignment{assignment("u", entity.RoleContributor, "")}, allRoles, true},
		{"solo acotados", []entity.RoleAssignment{assignment("u", entity.RoleAdmin, "t1"), assignment("u", entity.RoleManager, "t2")}, allRoles, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := rbac.NewEngine(&fakeRoles{assignments: tc.held})
			d, err := engine.Authorize(context.Background(), activeUser("u"), rbac.Policy{
				RequiredRoles: tc.required,
				Scope:         rbac.ScopeGlobal,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, d.Allowed)
		})
	}
}
