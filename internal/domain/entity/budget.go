package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un Budget.
const (
	BudgetDraft  = "draft"
	BudgetActive = "active"
	BudgetClosed = "closed"
)

// Budget agrupa ítems de gasto de un equipo para un año fiscal. La moneda base
// es siempre USD en esta versión; el campo queda para trazabilidad.
type Budget struct {
	ID           string
	TeamID       string
	Title        string
	Description  *string
	FiscalYear   int
	BaseCurrency string
	Status       string // draft, active, closed
	CreatedBy    string
	UpdatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BudgetSection ordena ítems dentro de un budget.
type BudgetSection struct {
	ID          string
	BudgetID    string
	Title       string
	Description *string
	SortOrder   int
}

// Tipos de ítem.
const (
	ItemHeadcount        = "headcount"
	ItemMarketingExpense = "marketing_expense"
	ItemSoftwareTool     = "software_tool"
	ItemClientCare       = "client_care"
	ItemViatico          = "viatico"
)

// Naturalezas de ítem.
const (
	NatureOneTime   = "one_time"
	NatureRecurring = "recurring"
	NatureProvision = "provision"
)

// Estados de ítem.
const (
	ItemPlanned    = "planned"
	ItemProvision  = "provision"
	ItemActualized = "actualized"
)

// BudgetItem es una línea de gasto. USDAmount deriva de LocalAmount por la
// tasa cuya identidad quedó congelada en FxRateIDSnapshot; Allocations reparte
// USDAmount por mes. Un ítem actualizado nunca se borra físicamente: el soft
// delete preserva la traza de auditoría.
type BudgetItem struct {
	ID               string
	BudgetID         string
	SectionID        *string
	CostCenterID     string
	OwnerUserID      string
	Type             string
	Nature           string
	VendorOrPerson   *string
	Description      *string
	LocalCurrency    string
	LocalAmount      decimal.Decimal
	FxRateIDSnapshot string
	USDAmount        decimal.Decimal
	Allocations      []decimal.Decimal
	Status           string // planned, provision, actualized
	StartMonth       *time.Time
	EndMonth         *time.Time
	CreatedBy        string
	UpdatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	SoftDeletedAt    *time.Time
}

// Unallocated indica que el ítem quedó sin distribución mensual (recurrente o
// provisión sin end_month): la distribución se difiere hasta fijar el fin.
func (i *BudgetItem) Unallocated() bool {
	return len(i.Allocations) == 0
}

// ValidItemType valida el tipo contra la enumeración.
func ValidItemType(t string) bool {
	switch t {
	case ItemHeadcount, ItemMarketingExpense, ItemSoftwareTool, ItemClientCare, ItemViatico:
		return true
	}
	return false
}

// ValidItemNature valida la naturaleza contra la enumeración.
func ValidItemNature(n string) bool {
	switch n {
	case NatureOneTime, NatureRecurring, NatureProvision:
		return true
	}
	return false
}
