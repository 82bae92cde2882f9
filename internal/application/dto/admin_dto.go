package dto

import "time"

// AllowlistRequest alta o cambio de estado de una entrada del allowlist.
type AllowlistRequest struct {
	Email  string `json:"email"`
	Status string `json:"status"` // pending, approved, revoked
}

// AllowlistEntryResponse proyección de una entrada del allowlist.
type AllowlistEntryResponse struct {
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	InvitedBy *string   `json:"invited_by,omitempty"`
	InvitedAt time.Time `json:"invited_at"`
}

// AllowlistDecisionResponse resultado del gate de pre-registro.
type AllowlistDecisionResponse struct {
	Email    string `json:"email"`
	Decision string `json:"decision"` // not_listed, pending, approved, revoked
}

// RoleGrantRequest asignación o revocación de rol. TeamID nil = global.
type RoleGrantRequest struct {
	Role   string  `json:"role"`
	TeamID *string `json:"team_id,omitempty"`
}

// RoleAssignmentResponse una asignación de rol de un usuario.
type RoleAssignmentResponse struct {
	Role   string  `json:"role"`
	TeamID *string `json:"team_id,omitempty"`
}

// UserWithRolesResponse usuario más sus asignaciones (vista admin).
type UserWithRolesResponse struct {
	UserResponse
	Roles []RoleAssignmentResponse `json:"roles"`
}
