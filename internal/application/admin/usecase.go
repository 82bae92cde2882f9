package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/greengotts/greengotts-api/internal/application/dto"
	"github.com/greengotts/greengotts-api/internal/domain"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
	"github.com/greengotts/greengotts-api/internal/domain/repository"
)

// TxRunner ejecuta el callback con repos atados a una misma transacción:
// o todo se aplica o todo se revierte. Lo implementa postgres.TxRunner.
type TxRunner interface {
	RunAdmin(ctx context.Context, fn func(
		users repository.UserRepository,
		teams repository.TeamRepository,
		roles repository.RoleRepository,
	) error) error
}

// AdminUseCase superficie administrativa: gestión del allowlist y de
// asignaciones de rol. Toda operación de este caso de uso se expone solo a
// ADMIN global (la política vive en el router).
type AdminUseCase struct {
	users     repository.UserRepository
	roles     repository.RoleRepository
	allowlist repository.AllowlistRepository
	tx        TxRunner
}

// NewAdminUseCase construye el caso de uso administrativo.
func NewAdminUseCase(users repository.UserRepository, roles repository.RoleRepository, allowlist repository.AllowlistRepository, tx TxRunner) *AdminUseCase {
	return &AdminUseCase{users: users, roles: roles, allowlist: allowlist, tx: tx}
}

// ──────────────────────────────────────────────────────────────────────────────
// Allowlist
// ──────────────────────────────────────────────────────────────────────────────

// ListAllowlist lista entradas, opcionalmente filtradas por estado.
func (uc *AdminUseCase) ListAllowlist(ctx context.Context, status string) ([]*entity.AllowlistEntry, error) {
	if status != "" && !validAllowlistStatus(status) {
		return nil, fmt.Errorf("%w: estado de allowlist desconocido %q", domain.ErrValidation, status)
	}
	return uc.allowlist.List(ctx, repository.AllowlistFilters{Status: status})
}

// AddAllowlistEntry agrega un email al allowlist. El email se normaliza antes
// de guardar; un email ya listado es ErrConflict.
func (uc *AdminUseCase) AddAllowlistEntry(ctx context.Context, invitedBy string, in dto.AllowlistRequest) (*entity.AllowlistEntry, error) {
	normalized, err := entity.NormalizeEmail(in.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrValidation)
	}
	status := in.Status
	if status == "" {
		status = entity.AllowlistPending
	}
	if !validAllowlistStatus(status) {
		return nil, fmt.Errorf("%w: estado de allowlist desconocido %q", domain.ErrValidation, status)
	}
	existing, err := uc.allowlist.GetByEmail(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el email ya está en el allowlist", domain.ErrConflict)
	}
	entry := &entity.AllowlistEntry{
		Email:     normalized,
		Status:    status,
		InvitedBy: &invitedBy,
		InvitedAt: time.Now(),
	}
	if err := uc.allowlist.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateAllowlistStatus cambia el estado de una entrada existente.
func (uc *AdminUseCase) UpdateAllowlistStatus(ctx context.Context, email, status string) (*entity.AllowlistEntry, error) {
	normalized, err := entity.NormalizeEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrValidation)
	}
	if !validAllowlistStatus(status) {
		return nil, fmt.Errorf("%w: estado de allowlist desconocido %q", domain.ErrValidation, status)
	}
	entry, err := uc.allowlist.UpdateStatus(ctx, normalized, status)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

// DeleteAllowlistEntry elimina la entrada del email.
func (uc *AdminUseCase) DeleteAllowlistEntry(ctx context.Context, email string) error {
	normalized, err := entity.NormalizeEmail(email)
	if err != nil {
		return fmt.Errorf("%w: email inválido", domain.ErrValidation)
	}
	return uc.allowlist.Delete(ctx, normalized)
}

// PendingCount cantidad de entradas pendientes de decisión.
func (uc *AdminUseCase) PendingCount(ctx context.Context) (int, error) {
	return uc.allowlist.PendingCount(ctx)
}

func validAllowlistStatus(s string) bool {
	switch s {
	case entity.AllowlistPending, entity.AllowlistApproved, entity.AllowlistRevoked:
		return true
	}
	return false
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios y roles
// ──────────────────────────────────────────────────────────────────────────────

// ListUsersWithRoles lista usuarios con sus asignaciones de rol.
func (uc *AdminUseCase) ListUsersWithRoles(ctx context.Context, limit, offset int) ([]dto.UserWithRolesResponse, error) {
	users, err := uc.users.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserWithRolesResponse, 0, len(users))
	for _, u := range users {
		assignments, err := uc.roles.ListAssignments(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		roles := make([]dto.RoleAssignmentResponse, 0, len(assignments))
		for _, a := range assignments {
			roles = append(roles, dto.RoleAssignmentResponse{Role: string(a.Role), TeamID: a.TeamID})
		}
		out = append(out, dto.UserWithRolesResponse{
			UserResponse: dto.UserResponse{
				ID:          u.ID,
				Email:       u.Email,
				DisplayName: u.DisplayName,
				Status:      u.Status,
				CreatedAt:   u.CreatedAt,
			},
			Roles: roles,
		})
	}
	return out, nil
}

// GrantRole asigna un rol a un usuario (global si TeamID es nil). Valida
// usuario y equipo dentro de la transacción; la asignación en sí es
// idempotente.
func (uc *AdminUseCase) GrantRole(ctx context.Context, userID string, in dto.RoleGrantRequest) error {
	role := entity.RoleCode(in.Role)
	if !entity.ValidRole(role) {
		return fmt.Errorf("%w: rol desconocido %q", domain.ErrValidation, in.Role)
	}
	return uc.tx.RunAdmin(ctx, func(
		users repository.UserRepository,
		teams repository.TeamRepository,
		roles repository.RoleRepository,
	) error {
		user, err := users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		if in.TeamID != nil {
			team, err := teams.GetByID(ctx, *in.TeamID)
			if err != nil {
				return err
			}
			if team == nil {
				return fmt.Errorf("%w: equipo %s", domain.ErrNotFound, *in.TeamID)
			}
		}
		return roles.Assign(ctx, userID, role, in.TeamID)
	})
}

// RevokeRole revoca una asignación exacta (user, role, team).
func (uc *AdminUseCase) RevokeRole(ctx context.Context, userID string, in dto.RoleGrantRequest) error {
	role := entity.RoleCode(in.Role)
	if !entity.ValidRole(role) {
		return fmt.Errorf("%w: rol desconocido %q", domain.ErrValidation, in.Role)
	}
	return uc.roles.Revoke(ctx, userID, role, in.TeamID)
}
