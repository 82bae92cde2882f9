package postgres

import (
	"context"
	"fmt"

	"github.com/greengotts/greengotts-api/internal/domain"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
	"github.com/greengotts/greengotts-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo almacén de asignaciones de rol sobre PostgreSQL. Las lecturas van
// directo a la DB en cada llamada: el motor de autorización exige datos
// frescos, sin caché.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// HasRole verifica si el usuario tiene el rol. Con teamID, una asignación
// global del mismo rol también satisface (cubre todos los equipos); sin
// teamID, solo cuenta la asignación global.
func (r *RoleRepo) HasRole(ctx context.Context, userID string, role entity.RoleCode, teamID *string) (bool, error) {
	roleID, ok := entity.RoleID(role)
	if !ok {
		return false, fmt.Errorf("%w: rol desconocido %q", domain.ErrValidation, role)
	}
	var query string
	var args []any
	if teamID == nil {
		query = `
			SELECT EXISTS (
				SELECT 1 FROM gg_user_role
				WHERE user_id = $1 AND role_id = $2 AND team_id IS NULL
			)`
		args = []any{userID, roleID}
	} else {
		query = `
			SELECT EXISTS (
				SELECT 1 FROM gg_user_role
				WHERE user_id = $1 AND role_id = $2 AND (team_id = $3 OR team_id IS NULL)
			)`
		args = []any{userID, roleID, *teamID}
	}
	var has bool
	if err := r.q.QueryRow(ctx, query, args...).Scan(&has); err != nil {
		return false, fmt.Errorf("has role: %w", err)
	}
	return has, nil
}

// HasGlobalRole verifica si el usuario tiene el rol con alcance global.
func (r *RoleRepo) HasGlobalRole(ctx context.Context, userID string, role entity.RoleCode) (bool, error) {
	return r.HasRole(ctx, userID, role, nil)
}

// ListAssignments devuelve todas las asignaciones del usuario.
func (r *RoleRepo) ListAssignments(ctx context.Context, userID string) ([]entity.RoleAssignment, error) {
	query := `
		SELECT ur.user_id, r.code, ur.team_id
		FROM gg_user_role ur
		JOIN gg_role r ON r.id = ur.role_id
		WHERE ur.user_id = $1
		ORDER BY r.id, ur.team_id NULLS FIRST`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list role assignments: %w", err)
	}
	defer rows.Close()
	var list []entity.RoleAssignment
	for rows.Next() {
		var a entity.RoleAssignment
		if err := rows.Scan(&a.UserID, &a.Role, &a.TeamID); err != nil {
			return nil, fmt.Errorf("scan role assignment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Assign otorga un rol. ON CONFLICT DO NOTHING hace la operación idempotente:
// repetir la misma tripleta no falla ni duplica.
func (r *RoleRepo) Assign(ctx context.Context, userID string, role entity.RoleCode, teamID *string) error {
	roleID, ok := entity.RoleID(role)
	if !ok {
		return fmt.Errorf("%w: rol desconocido %q", domain.ErrValidation, role)
	}
	query := `
		INSERT INTO gg_user_role (user_id, role_id, team_id)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING`
	_, err := r.q.Exec(ctx, query, userID, roleID, teamID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: usuario o equipo inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}

// Revoke retira un rol. Revocar una asignación inexistente no es error.
func (r *RoleRepo) Revoke(ctx context.Context, userID string, role entity.RoleCode, teamID *string) error {
	roleID, ok := entity.RoleID(role)
	if !ok {
		return fmt.Errorf("%w: rol desconocido %q", domain.ErrValidation, role)
	}
	var query string
	var args []any
	if teamID == nil {
		query = `DELETE FROM gg_user_role WHERE user_id = $1 AND role_id = $2 AND team_id IS NULL`
		args = []any{userID, roleID}
	} else {
		query = `DELETE FROM gg_user_role WHERE user_id = $1 AND role_id = $2 AND team_id = $3`
		args = []any{userID, roleID, *teamID}
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("revoke role: %w", err)
	}
	return nil
}
