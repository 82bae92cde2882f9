package rbac

import (
	"context"
	"fmt"

	"github.com/greengotts/greengotts-api/internal/domain"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
)

// Scope define qué asignaciones cuentan para una política.
type Scope string

const (
	// ScopeGlobal solo acepta asignaciones globales (team_id NULL).
	ScopeGlobal Scope = "global"
	// ScopeContextual acepta asignaciones globales o acotadas al equipo indicado.
	ScopeContextual Scope = "contextual"
)

// Policy describe los requisitos de autorización de una operación. Los roles
// requeridos son semántica OR: basta con tener uno. La jerarquía se expresa
// enumerando en cada política todos los roles que la satisfacen (MANAGER y
// ADMIN se listan ambos donde ambos aplican), nunca por herencia.
type Policy struct {
	RequiredRoles []entity.RoleCode
	Scope         Scope
	TeamID        string // requerido cuando Scope == ScopeContextual
	// RequireTeamMember exige además que el actor tenga alguna asignación
	// (cualquier rol) acotada al equipo TeamID.
	RequireTeamMember bool
}

// Motivos de rechazo.
const (
	ReasonUnauthenticated  = "unauthenticated"
	ReasonInactive         = "inactive"
	ReasonInsufficientRole = "insufficient_role"
	ReasonNoTeamAccess     = "no_team_access"
)

// Decision es el resultado de evaluar una política. Cuando el rechazo es por
// rol insuficiente, Required trae el conjunto exigido para diagnóstico; nunca
// se exponen roles de otros usuarios.
type Decision struct {
	Allowed  bool
	Reason   string
	Required []entity.RoleCode
}

// Err traduce la decisión a los errores sentinela del dominio. Devuelve nil
// si la decisión es permitir.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	switch d.Reason {
	case ReasonUnauthenticated:
		return domain.ErrUnauthenticated
	case ReasonInactive:
		return fmt.Errorf("%w: cuenta inactiva", domain.ErrForbidden)
	case ReasonInsufficientRole:
		return fmt.Errorf("%w: rol insuficiente, se requiere alguno de %v", domain.ErrForbidden, d.Required)
	case ReasonNoTeamAccess:
		return fmt.Errorf("%w: sin acceso al equipo", domain.ErrForbidden)
	}
	return domain.ErrForbidden
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Reason: reason} }

// RoleReader es el contrato mínimo que el motor necesita del almacén de roles.
// Lo implementa postgres.RoleRepo; la interfaz vive junto al consumidor para
// evitar el import circular y permitir fakes en tests.
type RoleReader interface {
	// HasRole con teamID no-nil acepta una asignación acotada a ese equipo
	// exacto o una asignación global del mismo rol; con teamID nil solo la
	// global.
	HasRole(ctx context.Context, userID string, role entity.RoleCode, teamID *string) (bool, error)
	HasGlobalRole(ctx context.Context, userID string, role entity.RoleCode) (bool, error)
	ListAssignments(ctx context.Context, userID string) ([]entity.RoleAssignment, error)
}

// Engine evalúa políticas contra el estado actual del almacén de roles. No
// cachea nada: cada decisión relee los roles (una escalada por caché viciado
// es inaceptable). Es puro respecto a efectos: solo lee, nunca escribe.
type Engine struct {
	roles RoleReader
}

// NewEngine construye el motor sobre el almacén de roles.
func NewEngine(roles RoleReader) *Engine {
	return &Engine{roles: roles}
}

// Authorize decide si el actor puede ejecutar la operación descrita por la
// política. La decisión es función determinista de (estado del actor,
// contenido del almacén, política); el error solo reporta fallas de
// infraestructura al consultar el almacén.
func (e *Engine) Authorize(ctx context.Context, actor *entity.User, p Policy) (Decision, error) {
	if actor == nil {
		return deny(ReasonUnauthenticated), nil
	}
	if !actor.IsActive() {
		return deny(ReasonInactive), nil
	}
	if p.Scope == ScopeContextual && p.TeamID == "" {
		return Decision{}, fmt.Errorf("rbac: política contextual sin team id")
	}

	if len(p.RequiredRoles) > 0 {
		matched, err := e.matchAnyRole(ctx, actor.ID, p)
		if err != nil {
			return Decision{}, err
		}
		if !matched {
			d := deny(ReasonInsufficientRole)
			d.Required = p.RequiredRoles
			return d, nil
		}
	}

	if p.RequireTeamMember {
		member, err := e.isTeamMember(ctx, actor.ID, p.TeamID)
		if err != nil {
			return Decision{}, err
		}
		if !member {
			return deny(ReasonNoTeamAccess), nil
		}
	}

	return allow(), nil
}

// matchAnyRole corta en el primer rol que matchee (OR). Para scope contextual
// se prueba siempre también la rama global: un ADMIN global debe satisfacer
// cualquier política contextual sin importar el equipo pedido.
func (e *Engine) matchAnyRole(ctx context.Context, userID string, p Policy) (bool, error) {
	for _, role := range p.RequiredRoles {
		if p.Scope == ScopeContextual {
			ok, err := e.roles.HasRole(ctx, userID, role, &p.TeamID)
			if err != nil {
				return false, fmt.Errorf("rbac: consultar rol %s: %w", role, err)
			}
			if ok {
				return true, nil
			}
		}
		ok, err := e.roles.HasGlobalRole(ctx, userID, role)
		if err != nil {
			return false, fmt.Errorf("rbac: consultar rol global %s: %w", role, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// isTeamMember verifica pertenencia al equipo con cualquier rol. Un ADMIN
// global pasa sin fila acotada, consistente con la regla de override global.
func (e *Engine) isTeamMember(ctx context.Context, userID, teamID string) (bool, error) {
	assignments, err := e.roles.ListAssignments(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("rbac: listar asignaciones: %w", err)
	}
	for _, a := range assignments {
		if a.TeamID != nil && *a.TeamID == teamID {
			return true, nil
		}
	}
	return e.roles.HasGlobalRole(ctx, userID, entity.RoleAdmin)
}
