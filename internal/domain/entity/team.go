package entity

import "time"

// Team agrupa presupuestos y centros de costo bajo un dueño. El centro de
// costo por defecto es una back-reference opcional, no una relación de
// pertenencia.
type Team struct {
	ID                  string
	Name                string
	OwnerUserID         string
	CostCenterDefaultID *string
	CreatedAt           time.Time
}

// CostCenter pertenece a un Team; el código es único dentro del equipo.
type CostCenter struct {
	ID     string
	TeamID string
	Code   string
	Name   string
	Active bool
}
