package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greengotts/greengotts-api/internal/application/dto"
	"github.com/greengotts/greengotts-api/internal/domain"
	"github.com/greengotts/greengotts-api/internal/domain/budgeting"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
	"github.com/greengotts/greengotts-api/internal/domain/repository"
)

// BudgetUseCase gestión de presupuestos, secciones e ítems. El cálculo de
// montos USD y la distribución mensual pasan siempre por el motor de montos;
// el repo persiste lo ya calculado y nunca recalcula.
type BudgetUseCase struct {
	budgets repository.BudgetRepository
	teams   repository.TeamRepository
	amounts *budgeting.AmountEngine
}

// NewBudgetUseCase construye el caso de uso de presupuestos.
func NewBudgetUseCase(budgets repository.BudgetRepository, teams repository.TeamRepository, amounts *budgeting.AmountEngine) *BudgetUseCase {
	return &BudgetUseCase{budgets: budgets, teams: teams, amounts: amounts}
}

// CreateBudget alta de presupuesto para un equipo.
func (uc *BudgetUseCase) CreateBudget(ctx context.Context, teamID, actorID string, in dto.CreateBudgetRequest) (*entity.Budget, error) {
	if in.Title == "" || in.FiscalYear == 0 {
		return nil, fmt.Errorf("%w: title y fiscal_year son requeridos", domain.ErrValidation)
	}
	team, err := uc.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, fmt.Errorf("%w: equipo %s", domain.ErrNotFound, teamID)
	}
	now := time.Now()
	b := &entity.Budget{
		ID:           uuid.New().String(),
		TeamID:       teamID,
		Title:        in.Title,
		Description:  in.Description,
		FiscalYear:   in.FiscalYear,
		BaseCurrency: budgeting.BaseCurrency,
		Status:       entity.BudgetDraft,
		CreatedBy:    actorID,
		UpdatedBy:    actorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.budgets.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBudget devuelve un presupuesto por id.
func (uc *BudgetUseCase) GetBudget(ctx context.Context, budgetID string) (*entity.Budget, error) {
	b, err := uc.budgets.GetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// ListBudgets presupuestos de un equipo, año fiscal descendente.
func (uc *BudgetUseCase) ListBudgets(ctx context.Context, teamID string) ([]*entity.Budget, error) {
	return uc.budgets.ListByTeam(ctx, teamID)
}

// CreateSection alta de sección dentro de un presupuesto.
func (uc *BudgetUseCase) CreateSection(ctx context.Context, budgetID string, in dto.CreateSectionRequest) (*entity.BudgetSection, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title es requerido", domain.ErrValidation)
	}
	if _, err := uc.GetBudget(ctx, budgetID); err != nil {
		return nil, err
	}
	s := &entity.BudgetSection{
		ID:          uuid.New().String(),
		BudgetID:    budgetID,
		Title:       in.Title,
		Description: in.Description,
		SortOrder:   in.SortOrder,
	}
	if err := uc.budgets.CreateSection(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ListSections secciones de un presupuesto, por sort_order.
func (uc *BudgetUseCase) ListSections(ctx context.Context, budgetID string) ([]*entity.BudgetSection, error) {
	return uc.budgets.ListSections(ctx, budgetID)
}

// CreateItem alta de ítem: valida entrada, convierte el monto local a USD
// congelando la identidad de la tasa fx usada, distribuye por meses según la
// naturaleza y persiste el ítem completo.
func (uc *BudgetUseCase) CreateItem(ctx context.Context, budgetID, actorID string, in dto.CreateItemRequest) (*entity.BudgetItem, error) {
	if _, err := uc.GetBudget(ctx, budgetID); err != nil {
		return nil, err
	}
	if in.CostCenterID == "" {
		return nil, fmt.Errorf("%w: cost_center_id es requerido", domain.ErrValidation)
	}
	if !entity.ValidItemType(in.Type) {
		return nil, fmt.Errorf("%w: tipo de ítem desconocido %q", domain.ErrValidation, in.Type)
	}
	if !entity.ValidItemNature(in.Nature) {
		return nil, fmt.Errorf("%w: naturaleza desconocida %q", domain.ErrValidation, in.Nature)
	}
	status := in.Status
	if status == "" {
		status = entity.ItemPlanned
	}
	if status != entity.ItemPlanned && status != entity.ItemProvision && status != entity.ItemActualized {
		return nil, fmt.Errorf("%w: estado de ítem desconocido %q", domain.ErrValidation, status)
	}

	localAmount, err := decimal.NewFromString(in.LocalAmount)
	if err != nil {
		return nil, fmt.Errorf("%w: local_amount no es un decimal válido", domain.ErrValidation)
	}

	startMonth, err := parseMonth(in.StartMonth)
	if err != nil {
		return nil, err
	}
	endMonth, err := parseMonth(in.EndMonth)
	if err != nil {
		return nil, err
	}
	if startMonth != nil && endMonth != nil && endMonth.Before(*startMonth) {
		return nil, fmt.Errorf("%w: end_month anterior a start_month", domain.ErrValidation)
	}

	asOf := time.Now()
	if in.AsOfDate != nil {
		parsed, err := parseMonthValue(*in.AsOfDate)
		if err != nil {
			return nil, fmt.Errorf("%w: as_of_date inválida", domain.ErrValidation)
		}
		asOf = parsed
	}

	conv, err := uc.amounts.ComputeUSDAmount(ctx, in.LocalCurrency, localAmount, asOf)
	if err != nil {
		return nil, err
	}
	allocations, err := budgeting.AllocateForNature(in.Nature, conv.USDAmount, startMonth, endMonth)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item := &entity.BudgetItem{
		ID:               uuid.New().String(),
		BudgetID:         budgetID,
		SectionID:        in.SectionID,
		CostCenterID:     in.CostCenterID,
		OwnerUserID:      actorID,
		Type:             in.Type,
		Nature:           in.Nature,
		VendorOrPerson:   in.VendorOrPerson,
		Description:      in.Description,
		LocalCurrency:    in.LocalCurrency,
		LocalAmount:      localAmount,
		FxRateIDSnapshot: conv.FxRateID,
		USDAmount:        conv.USDAmount,
		Allocations:      allocations,
		Status:           status,
		StartMonth:       startMonth,
		EndMonth:         endMonth,
		CreatedBy:        actorID,
		UpdatedBy:        actorID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.budgets.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem devuelve un ítem (incluye soft-deleted, para restore).
func (uc *BudgetUseCase) GetItem(ctx context.Context, itemID string) (*entity.BudgetItem, error) {
	item, err := uc.budgets.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// ListItems ítems de un presupuesto con filtros; los soft-deleted quedan
// fuera siempre.
func (uc *BudgetUseCase) ListItems(ctx context.Context, budgetID string, in dto.ItemFiltersRequest) ([]*entity.BudgetItem, error) {
	filters := repository.ItemFilters{
		Type:         in.Type,
		Status:       in.Status,
		CostCenterID: in.CostCenterID,
	}
	if in.Month != "" {
		m, err := parseMonthValue(in.Month)
		if err != nil {
			return nil, fmt.Errorf("%w: month inválido", domain.ErrValidation)
		}
		filters.Month = &m
	}
	return uc.budgets.ListItems(ctx, budgetID, filters)
}

// SoftDeleteItem marca el ítem como borrado preservando la fila (traza de
// auditoría); no hay borrado físico de ítems.
func (uc *BudgetUseCase) SoftDeleteItem(ctx context.Context, itemID, actorID string) error {
	if _, err := uc.GetItem(ctx, itemID); err != nil {
		return err
	}
	_ = actorID // el actor queda en el audit log del almacén
	return uc.budgets.SoftDeleteItem(ctx, itemID, time.Now())
}

// RestoreItem revierte un soft delete.
func (uc *BudgetUseCase) RestoreItem(ctx context.Context, itemID string) error {
	if _, err := uc.GetItem(ctx, itemID); err != nil {
		return err
	}
	return uc.budgets.RestoreItem(ctx, itemID)
}

// parseMonth acepta nil o YYYY-MM-DD (se trunca al primer día del mes).
func parseMonth(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseMonthValue(*s)
	if err != nil {
		return nil, fmt.Errorf("%w: mes inválido %q (se espera YYYY-MM-DD)", domain.ErrValidation, *s)
	}
	return &t, nil
}

func parseMonthValue(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}
