package budget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greengotts/greengotts-api/internal/application/dto"
	"github.com/greengotts/greengotts-api/internal/domain"
	"github.com/greengotts/greengotts-api/internal/domain/budgeting"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
	"github.com/greengotts/greengotts-api/internal/domain/repository"
)

// ─────────────────────────── fakes en memoria ───────────────────────────

type memBudgets struct {
	budgets  map[string]*entity.Budget
	sections map[string]*entity.BudgetSection
	items    map[string]*entity.BudgetItem
}

func newMemBudgets() *memBudgets {
	return &memBudgets{
		budgets:  make(map[string]*entity.Budget),
		sections: make(map[string]*entity.BudgetSection),
		items:    make(map[string]*entity.BudgetItem),
	}
}

func (m *memBudgets) Create(_ context.Context, b *entity.Budget) error {
	m.budgets[b.ID] = b
	return nil
}

func (m *memBudgets) GetByID(_ context.Context, id string) (*entity.Budget, error) {
	return m.budgets[id], nil
}

func (m *memBudgets) Update(_ context.Context, b *entity.Budget) error {
	m.budgets[b.ID] = b
	return nil
}

func (m *memBudgets) Delete(_ context.Context, id string) error {
	delete(m.budgets, id)
	return nil
}

func (m *memBudgets) ListByTeam(_ context.Context, teamID string) ([]*entity.Budget, error) {
	var out []*entity.Budget
	for _, b := range m.budgets {
		if b.TeamID == teamID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBudgets) CreateSection(_ context.Context, s *entity.BudgetSection) error {
	m.sections[s.ID] = s
	return nil
}

func (m *memBudgets) ListSections(_ context.Context, budgetID string) ([]*entity.BudgetSection, error) {
	var out []*entity.BudgetSection
	for _, s := range m.sections {
		if s.BudgetID == budgetID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memBudgets) UpdateSection(_ context.Context, s *entity.BudgetSection) error {
	m.sections[s.ID] = s
	return nil
}

func (m *memBudgets) DeleteSection(_ context.Context, id string) error {
	delete(m.sections, id)
	return nil
}

func (m *memBudgets) CreateItem(_ context.Context, item *entity.BudgetItem) error {
	m.items[item.ID] = item
	return nil
}

func (m *memBudgets) GetItem(_ context.Context, id string) (*entity.BudgetItem, error) {
	return m.items[id], nil
}

func (m *memBudgets) ListItems(_ context.Context, budgetID string, f repository.ItemFilters) ([]*entity.BudgetItem, error) {
	var out []*entity.BudgetItem
	for _, item := range m.items {
		if item.BudgetID != budgetID || item.SoftDeletedAt != nil {
			continue
		}
		if f.Type != "" && item.Type != f.Type {
			continue
		}
		if f.Status != "" && item.Status != f.Status {
			continue
		}
		if f.CostCenterID != "" && item.CostCenterID != f.CostCenterID {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (m *memBudgets) UpdateItem(_ context.Context, item *entity.BudgetItem) error {
	m.items[item.ID] = item
	return nil
}

func (m *memBudgets) SoftDeleteItem(_ context.Context, id string, at time.Time) error {
	if item, ok := m.items[id]; ok {
		item.SoftDeletedAt = &at
	}
	return nil
}

func (m *memBudgets) RestoreItem(_ context.Context, id string) error {
	if item, ok := m.items[id]; ok {
		item.SoftDeletedAt = nil
	}
	return nil
}

// stubTeams solo resuelve GetByID; el resto del contrato no se usa aquí.
type stubTeams struct {
	repository.TeamRepository
	team *entity.Team
}

func (s *stubTeams) GetByID(_ context.Context, id string) (*entity.Team, error) {
	if s.team != nil && s.team.ID == id {
		return s.team, nil
	}
	return nil, nil
}

// memRates resolver de tasas en memoria: devuelve la fila más reciente con
// fecha <= asOf y, a igual fecha, la publicada más recientemente (una
// corrección del mismo par/fecha), igual que el resolver real.
type memRates struct {
	rates []*entity.FxRate
}

func (m *memRates) Resolve(_ context.Context, fromCcy, toCcy string, asOf time.Time) (*entity.FxRate, error) {
	var best *entity.FxRate
	for _, r := range m.rates {
		if r.FromCcy != fromCcy || r.ToCcy != toCcy || r.AsOfDate.After(asOf) {
			continue
		}
		if best == nil || r.AsOfDate.After(best.AsOfDate) ||
			(r.AsOfDate.Equal(best.AsOfDate) && r.CreatedAt.After(best.CreatedAt)) {
			best = r
		}
	}
	if best == nil {
		return nil, domain.ErrNotFound
	}
	return best, nil
}

func setup(t *testing.T) (*BudgetUseCase, *memBudgets, *memRates, *entity.Budget) {
	t.Helper()
	budgets := newMemBudgets()
	rates := &memRates{rates: []*entity.FxRate{{
		ID:       "fx-cop-1",
		AsOfDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		FromCcy:  "COP",
		ToCcy:    "USD",
		Rate:     decimal.RequireFromString("0.00025"),
	}}}
	teams := &stubTeams{team: &entity.Team{ID: "team-1", Name: "Plataforma", OwnerUserID: "u-owner"}}
	uc := NewBudgetUseCase(budgets, teams, budgeting.NewAmountEngine(rates))

	b, err := uc.CreateBudget(context.Background(), "team-1", "u-owner", dto.CreateBudgetRequest{
		Title:      "Presupuesto 2025",
		FiscalYear: 2025,
	})
	require.NoError(t, err)
	return uc, budgets, rates, b
}

func strptr(s string) *string { return &s }

// ─────────────────────────── presupuestos ───────────────────────────

func TestCreateBudget_EquipoInexistente(t *testing.T) {
	uc, _, _, _ := setup(t)

	_, err := uc.CreateBudget(context.Background(), "team-fantasma", "u-owner", dto.CreateBudgetRequest{
		Title:      "x",
		FiscalYear: 2025,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateBudget_ValoresIniciales(t *testing.T) {
	_, _, _, b := setup(t)

	assert.Equal(t, entity.BudgetDraft, b.Status)
	assert.Equal(t, budgeting.BaseCurrency, b.BaseCurrency)
	assert.Equal(t, "u-owner", b.CreatedBy)
}

// ─────────────────────────── alta de ítems ───────────────────────────

func TestCreateItem_ConversionYSnapshot(t *testing.T) {
	uc, _, _, b := setup(t)

	item, err := uc.CreateItem(context.Background(), b.ID, "u-owner", dto.CreateItemRequest{
		CostCenterID:  "cc-1",
		Type:          entity.ItemSoftwareTool,
		Nature:        entity.NatureOneTime,
		LocalCurrency: "COP",
		LocalAmount:   "4000000",
		AsOfDate:      strptr("2025-02-15"),
	})
	require.NoError(t, err)

	// 4.000.000 COP * 0.00025 = 1000.00 USD
	assert.Equal(t, "1000.00", item.USDAmount.StringFixed(2))
	assert.Equal(t, "fx-cop-1", item.FxRateIDSnapshot)
	require.Len(t, item.Allocations, 1)
	assert.True(t, item.Allocations[0].Equal(item.USDAmount))
}

func TestCreateItem_SnapshotInmutableAnteTasasNuevas(t *testing.T) {
	uc, _, rates, b := setup(t)

	item, err := uc.CreateItem(context.Background(), b.ID, "u-owner", dto.CreateItemRequest{
		CostCenterID:  "cc-1",
		Type:          entity.ItemViatico,
		Nature:        entity.NatureOneTime,
		LocalCurrency: "COP",
		LocalAmount:   "1000000",
		AsOfDate:      strptr("2025-03-01"),
	})
	require.NoError(t, err)
	usdBefore := item.USDAmount
	snapBefore := item.FxRateIDSnapshot

	// Se publica una corrección para el MISMO par y la MISMA as_of_date; el
	// ítem ya creado no cambia jamás, su snapshot referencia fx-cop-1 por id.
	rates.rates = append(rates.rates, &entity.FxRate{
		ID:        "fx-cop-2",
		AsOfDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		FromCcy:   "COP",
		ToCcy:     "USD",
		Rate:      decimal.RequireFromString("0.00050"),
		CreatedAt: rates.rates[0].CreatedAt.Add(time.Hour),
	})

	got, err := uc.GetItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.True(t, got.USDAmount.Equal(usdBefore))
	assert.Equal(t, snapBefore, got.FxRateIDSnapshot)

	// Un ítem nuevo con la misma fecha de referencia sí toma la corrección.
	fresh, err := uc.CreateItem(context.Background(), b.ID, "u-owner", dto.CreateItemRequest{
		CostCenterID:  "cc-1",
		Type:          entity.ItemViatico,
		Nature:        entity.NatureOneTime,
		LocalCurrency: "COP",
		LocalAmount:   "1000000",
		AsOfDate:      strptr("2025-03-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, "fx-cop-2", fresh.FxRateIDSnapshot)
	assert.Equal(t, "500.00", fresh.USDAmount.StringFixed(2))
}

func TestCreateItem_RecurrenteDistribuyePorMeses(t *testing.T) {
	uc, _, rates, b := setup(t)
	rates.rates = append(rates.rates, &entity.FxRate{
		ID:       "fx-usd-1",
		AsOfDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		FromCcy:  "USD",
		ToCcy:    "USD",
		Rate:     decimal.NewFromInt(1),
	})

	item, err := uc.CreateItem(context.Background(), b.ID, "u-owner", dto.CreateItemRequest{
		CostCenterID:  "cc-1",
		Type:          entity.ItemHeadcount,
		Nature:        entity.NatureRecurring,
		LocalCurrency: "USD",
		LocalAmount:   "100.00",
		StartMonth:    strptr("2025-01-01"),
		EndMonth:      strptr("2025-12-01"),
		AsOfDate:      strptr("2025-01-15"),
	})
	require.NoError(t, err)

	require.Len(t, item.Allocations, 12)
	sum := decimal.Zero
	for _, a := range item.Allocations {
		sum = sum.Add(a)
	}
	assert.True(t, sum.Equal(item.USDAmount), "la suma de cuotas debe dar exacto: %s", sum)
	assert.Equal(t, "8.37", item.Allocations[11].StringFixed(2))
}

func TestCreateItem_RecurrenteSinFinQuedaDiferido(t *testing.T) {
	uc, _, _, b := setup(t)

	item, err := uc.CreateItem(context.Background(), b.ID, "u-owner", dto.CreateItemRequest{
		CostCenterID:  "cc-1",
		Type:          entity.ItemClientCare,
		Nature:        entity.NatureProvision,
		LocalCurrency: "COP",
		LocalAmount:   "2000000",
		StartMonth:    strptr("2025-06-01"),
		AsOfDate:      strptr("2025-06-01"),
	})
	require.NoError(t, err)
	assert.True(t, item.Unallocated())
}

func TestCreateItem_SinTasaEsErrorDuro(t *testing.T) {
	uc, _, _, b := setup(t)

	_, err := uc.CreateItem(context.Background(), b.ID, "u-owner", dto.CreateItemRequest{
		CostCenterID:  "cc-1",
		Type:          entity.ItemSoftwareTool,
		Nature:        entity.NatureOneTime,
		LocalCurrency: "EUR",
		LocalAmount:   "100",
		AsOfDate:      strptr("2025-02-01"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateItem_Validaciones(t *testing.T) {
	uc, _, _, b := setup(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CreateItemRequest
	}{
		{"tipo desconocido", dto.CreateItemRequest{CostCenterID: "cc-1", Type: "yates", Nature: entity.NatureOneTime, LocalCurrency: "COP", LocalAmount: "1"}},
		{"naturaleza desconocida", dto.CreateItemRequest{CostCenterID: "cc-1", Type: entity.ItemViatico, Nature: "eterna", LocalCurrency: "COP", LocalAmount: "1"}},
		{"monto no decimal", dto.CreateItemRequest{CostCenterID: "cc-1", Type: entity.ItemViatico, Nature: entity.NatureOneTime, LocalCurrency: "COP", LocalAmount: "mucho"}},
		{"sin centro de costo", dto.CreateItemRequest{Type: entity.ItemViatico, Nature: entity.NatureOneTime, LocalCurrency: "COP", LocalAmount: "1"}},
		{"rango invertido", dto.CreateItemRequest{CostCenterID: "cc-1", Type: entity.ItemViatico, Nature: entity.NatureRecurring, LocalCurrency: "COP", LocalAmount: "1", StartMonth: strptr("2025-06-01"), EndMonth: strptr("2025-01-01")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateItem(ctx, b.ID, "u-owner", tc.in)
			assert.True(t, errors.Is(err, domain.ErrValidation), "esperaba ErrValidation, vino: %v", err)
		})
	}
}

// ─────────────────────────── borrado y restauración ───────────────────────────

func TestSoftDeleteItem_SaleDeLosListadosYSeRestaura(t *testing.T) {
	uc, _, _, b := setup(t)
	ctx := context.Background()

	item, err := uc.CreateItem(ctx, b.ID, "u-owner", dto.CreateItemRequest{
		CostCenterID:  "cc-1",
		Type:          entity.ItemMarketingExpense,
		Nature:        entity.NatureOneTime,
		LocalCurrency: "COP",
		LocalAmount:   "500000",
		AsOfDate:      strptr("2025-04-01"),
	})
	require.NoError(t, err)

	require.NoError(t, uc.SoftDeleteItem(ctx, item.ID, "u-admin"))

	listed, err := uc.ListItems(ctx, b.ID, dto.ItemFiltersRequest{})
	require.NoError(t, err)
	assert.Empty(t, listed)

	// La fila sigue existiendo: restore la devuelve intacta.
	require.NoError(t, uc.RestoreItem(ctx, item.ID))
	listed, err = uc.ListItems(ctx, b.ID, dto.ItemFiltersRequest{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.True(t, listed[0].USDAmount.Equal(item.USDAmount))
}

// ─────────────────────────── resumen ───────────────────────────

func TestSummarize_TotalesPorTipoYPorMes(t *testing.T) {
	uc, _, rates, b := setup(t)
	rates.rates = append(rates.rates, &entity.FxRate{
		ID:       "fx-usd-1",
		AsOfDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		FromCcy:  "USD",
		ToCcy:    "USD",
		Rate:     decimal.NewFromInt(1),
	})
	ctx := context.Background()

	_, err := uc.CreateItem(ctx, b.ID, "u-owner", dto.CreateItemRequest{
		CostCenterID: "cc-1", Type: entity.ItemHeadcount, Nature: entity.NatureRecurring,
		LocalCurrency: "USD", LocalAmount: "300.00",
		StartMonth: strptr("2025-01-01"), EndMonth: strptr("2025-03-01"), AsOfDate: strptr("2025-01-01"),
	})
	require.NoError(t, err)
	_, err = uc.CreateItem(ctx, b.ID, "u-owner", dto.CreateItemRequest{
		CostCenterID: "cc-1", Type: entity.ItemSoftwareTool, Nature: entity.NatureOneTime,
		LocalCurrency: "USD", LocalAmount: "50.00", AsOfDate: strptr("2025-01-01"),
	})
	require.NoError(t, err)
	_, err = uc.CreateItem(ctx, b.ID, "u-owner", dto.CreateItemRequest{
		CostCenterID: "cc-1", Type: entity.ItemClientCare, Nature: entity.NatureProvision,
		LocalCurrency: "USD", LocalAmount: "80.00",
		StartMonth: strptr("2025-02-01"), AsOfDate: strptr("2025-01-01"),
	})
	require.NoError(t, err)

	s, err := uc.Summarize(ctx, b.ID)
	require.NoError(t, err)

	assert.Equal(t, "430.00", s.TotalUSD.StringFixed(2))
	assert.Equal(t, "80.00", s.Unallocated.StringFixed(2))
	require.Len(t, s.ByType, 3)
	assert.Equal(t, entity.ItemClientCare, s.ByType[0].Type)

	// 300/3 recurrente + 50 one_time en el primer mes.
	require.Len(t, s.ByMonth, 3)
	assert.Equal(t, "150.00", s.ByMonth[0].StringFixed(2))
	assert.Equal(t, "100.00", s.ByMonth[1].StringFixed(2))
}
