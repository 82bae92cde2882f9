package repository

import (
	"context"

	"github.com/greengotts/greengotts-api/internal/domain/entity"
)

// RoleRepository es el almacén de asignaciones de rol. La parte de lectura
// coincide con rbac.RoleReader; aquí se agregan las escrituras.
type RoleRepository interface {
	HasRole(ctx context.Context, userID string, role entity.RoleCode, teamID *string) (bool, error)
	HasGlobalRole(ctx context.Context, userID string, role entity.RoleCode) (bool, error)
	ListAssignments(ctx context.Context, userID string) ([]entity.RoleAssignment, error)

	// Assign es idempotente: repetir la misma tripleta (user, role, team) no
	// produce error ni fila duplicada (insert-or-ignore a nivel de almacén).
	Assign(ctx context.Context, userID string, role entity.RoleCode, teamID *string) error
	Revoke(ctx context.Context, userID string, role entity.RoleCode, teamID *string) error
}
