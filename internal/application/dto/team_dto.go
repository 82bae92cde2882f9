package dto

import "time"

// CreateTeamRequest alta de equipo. El dueño recibe MANAGER acotado al nuevo
// equipo en la misma transacción.
type CreateTeamRequest struct {
	Name                string  `json:"name"`
	OwnerUserID         string  `json:"owner_user_id"`
	CostCenterDefaultID *string `json:"cost_center_default_id,omitempty"`
}

// UpdateTeamRequest cambios parciales de un equipo.
type UpdateTeamRequest struct {
	Name                *string `json:"name,omitempty"`
	OwnerUserID         *string `json:"owner_user_id,omitempty"`
	CostCenterDefaultID *string `json:"cost_center_default_id,omitempty"`
}

// TeamResponse proyección de un equipo.
type TeamResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	OwnerUserID         string    `json:"owner_user_id"`
	CostCenterDefaultID *string   `json:"cost_center_default_id,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// TeamDetailResponse equipo con sus centros de costo.
type TeamDetailResponse struct {
	TeamResponse
	CostCenters []CostCenterResponse `json:"cost_centers"`
}

// CreateCostCenterRequest alta de centro de costo dentro de un equipo.
type CreateCostCenterRequest struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active *bool  `json:"active,omitempty"`
}

// UpdateCostCenterRequest cambios parciales de un centro de costo.
type UpdateCostCenterRequest struct {
	Code   *string `json:"code,omitempty"`
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// CostCenterResponse proyección de un centro de costo.
type CostCenterResponse struct {
	ID     string `json:"id"`
	TeamID string `json:"team_id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}
