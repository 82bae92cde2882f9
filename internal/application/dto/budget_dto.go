package dto

import "time"

// CreateBudgetRequest alta de presupuesto para un equipo.
type CreateBudgetRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	FiscalYear  int     `json:"fiscal_year"`
}

// BudgetResponse proyección de un presupuesto.
type BudgetResponse struct {
	ID           string    `json:"id"`
	TeamID       string    `json:"team_id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	FiscalYear   int       `json:"fiscal_year"`
	BaseCurrency string    `json:"base_currency"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateSectionRequest alta de sección dentro de un presupuesto.
type CreateSectionRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	SortOrder   int     `json:"sort_order"`
}

// SectionResponse proyección de una sección.
type SectionResponse struct {
	ID          string  `json:"id"`
	BudgetID    string  `json:"budget_id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	SortOrder   int     `json:"sort_order"`
}

// CreateItemRequest alta de ítem. Los montos USD y la distribución mensual
// los calcula el servidor; el cliente solo manda moneda y monto local.
// StartMonth/EndMonth en formato YYYY-MM-DD (primer día del mes).
type CreateItemRequest struct {
	SectionID      *string `json:"section_id,omitempty"`
	CostCenterID   string  `json:"cost_center_id"`
	Type           string  `json:"type"`
	Nature         string  `json:"nature"`
	VendorOrPerson *string `json:"vendor_or_person,omitempty"`
	Description    *string `json:"description,omitempty"`
	LocalCurrency  string  `json:"local_currency"`
	LocalAmount    string  `json:"local_amount"`
	Status         string  `json:"status,omitempty"`
	StartMonth     *string `json:"start_month,omitempty"`
	EndMonth       *string `json:"end_month,omitempty"`
	// AsOfDate fecha de referencia para la tasa fx; por defecto, hoy.
	AsOfDate *string `json:"as_of_date,omitempty"`
}

// ItemFiltersRequest filtros de listado de ítems.
type ItemFiltersRequest struct {
	Type         string `query:"type"`
	Status       string `query:"status"`
	CostCenterID string `query:"cost_center_id"`
	Month        string `query:"month"`
}

// TypeTotalResponse total USD acumulado de un tipo de ítem.
type TypeTotalResponse struct {
	Type  string `json:"type"`
	Total string `json:"total"`
}

// BudgetSummaryResponse agregado de un presupuesto: totales por tipo,
// distribución mensual combinada y los ítems vigentes.
type BudgetSummaryResponse struct {
	Budget      BudgetResponse      `json:"budget"`
	TotalUSD    string              `json:"total_usd"`
	ByType      []TypeTotalResponse `json:"by_type"`
	ByMonth     []string            `json:"by_month"`
	Unallocated string              `json:"unallocated"`
	Items       []ItemResponse      `json:"items"`
}

// ItemResponse proyección de un ítem. Los montos viajan como strings decimales
// para no perder precisión en JSON.
type ItemResponse struct {
	ID               string     `json:"id"`
	BudgetID         string     `json:"budget_id"`
	SectionID        *string    `json:"section_id,omitempty"`
	CostCenterID     string     `json:"cost_center_id"`
	OwnerUserID      string     `json:"owner_user_id"`
	Type             string     `json:"type"`
	Nature           string     `json:"nature"`
	VendorOrPerson   *string    `json:"vendor_or_person,omitempty"`
	Description      *string    `json:"description,omitempty"`
	LocalCurrency    string     `json:"local_currency"`
	LocalAmount      string     `json:"local_amount"`
	FxRateIDSnapshot string     `json:"fx_rate_id_snapshot"`
	USDAmount        string     `json:"usd_amount"`
	Allocations      []string   `json:"allocations"`
	Status           string     `json:"status"`
	StartMonth       *time.Time `json:"start_month,omitempty"`
	EndMonth         *time.Time `json:"end_month,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
