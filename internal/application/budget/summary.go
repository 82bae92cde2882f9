package budget

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/greengotts/greengotts-api/internal/application/dto"
	"github.com/greengotts/greengotts-api/internal/domain/budgeting"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
	"github.com/greengotts/greengotts-api/internal/domain/repository"
)

// TypeTotal total USD acumulado de un tipo de ítem.
type TypeTotal struct {
	Type  string
	Total decimal.Decimal
}

// BudgetSummary agregado de un presupuesto para reportes: totales por tipo,
// distribución mensual combinada y el detalle de ítems vigentes.
type BudgetSummary struct {
	Budget      *entity.Budget
	Items       []*entity.BudgetItem
	TotalUSD    decimal.Decimal
	ByType      []TypeTotal
	ByMonth     []decimal.Decimal
	Unallocated decimal.Decimal
}

// Summarize arma el agregado de un presupuesto sobre sus ítems vigentes.
// ByMonth alinea las distribuciones de todos los ítems desde su primer mes;
// los ítems diferidos (sin distribución) suman solo a Unallocated.
func (uc *BudgetUseCase) Summarize(ctx context.Context, budgetID string) (*BudgetSummary, error) {
	b, err := uc.GetBudget(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	items, err := uc.budgets.ListItems(ctx, budgetID, repository.ItemFilters{})
	if err != nil {
		return nil, err
	}

	s := &BudgetSummary{Budget: b, Items: items}
	byType := make(map[string]decimal.Decimal)
	for _, item := range items {
		s.TotalUSD = s.TotalUSD.Add(item.USDAmount)
		byType[item.Type] = byType[item.Type].Add(item.USDAmount)
		if item.Unallocated() {
			s.Unallocated = s.Unallocated.Add(item.USDAmount)
			continue
		}
		for i, amt := range item.Allocations {
			for len(s.ByMonth) <= i {
				s.ByMonth = append(s.ByMonth, decimal.Zero)
			}
			s.ByMonth[i] = s.ByMonth[i].Add(amt)
		}
	}
	for t, total := range byType {
		s.ByType = append(s.ByType, TypeTotal{Type: t, Total: budgeting.RoundMoney(total)})
	}
	sort.Slice(s.ByType, func(i, j int) bool { return s.ByType[i].Type < s.ByType[j].Type })
	return s, nil
}

// ToSummaryResponse proyecta el agregado al DTO de salida.
func ToSummaryResponse(s *BudgetSummary) dto.BudgetSummaryResponse {
	out := dto.BudgetSummaryResponse{
		Budget:      ToBudgetResponse(s.Budget),
		TotalUSD:    s.TotalUSD.StringFixed(2),
		Unallocated: s.Unallocated.StringFixed(2),
		ByType:      make([]dto.TypeTotalResponse, 0, len(s.ByType)),
		ByMonth:     make([]string, 0, len(s.ByMonth)),
		Items:       make([]dto.ItemResponse, 0, len(s.Items)),
	}
	for _, tt := range s.ByType {
		out.ByType = append(out.ByType, dto.TypeTotalResponse{Type: tt.Type, Total: tt.Total.StringFixed(2)})
	}
	for _, m := range s.ByMonth {
		out.ByMonth = append(out.ByMonth, m.StringFixed(2))
	}
	for _, item := range s.Items {
		out.Items = append(out.Items, ToItemResponse(item))
	}
	return out
}

// ToItemResponse proyecta un ítem al DTO de salida.
func ToItemResponse(item *entity.BudgetItem) dto.ItemResponse {
	allocations := make([]string, len(item.Allocations))
	for i, a := range item.Allocations {
		allocations[i] = a.StringFixed(2)
	}
	return dto.ItemResponse{
		ID:               item.ID,
		BudgetID:         item.BudgetID,
		SectionID:        item.SectionID,
		CostCenterID:     item.CostCenterID,
		OwnerUserID:      item.OwnerUserID,
		Type:             item.Type,
		Nature:           item.Nature,
		VendorOrPerson:   item.VendorOrPerson,
		Description:      item.Description,
		LocalCurrency:    item.LocalCurrency,
		LocalAmount:      item.LocalAmount.String(),
		FxRateIDSnapshot: item.FxRateIDSnapshot,
		USDAmount:        item.USDAmount.StringFixed(2),
		Allocations:      allocations,
		Status:           item.Status,
		StartMonth:       item.StartMonth,
		EndMonth:         item.EndMonth,
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
	}
}

// ToBudgetResponse proyecta un presupuesto al DTO de salida.
func ToBudgetResponse(b *entity.Budget) dto.BudgetResponse {
	return dto.BudgetResponse{
		ID:           b.ID,
		TeamID:       b.TeamID,
		Title:        b.Title,
		Description:  b.Description,
		FiscalYear:   b.FiscalYear,
		BaseCurrency: b.BaseCurrency,
		Status:       b.Status,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// ToSectionResponse proyecta una sección al DTO de salida.
func ToSectionResponse(s *entity.BudgetSection) dto.SectionResponse {
	return dto.SectionResponse{
		ID:          s.ID,
		BudgetID:    s.BudgetID,
		Title:       s.Title,
		Description: s.Description,
		SortOrder:   s.SortOrder,
	}
}
