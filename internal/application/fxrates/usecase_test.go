package fxrates

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greengotts/greengotts-api/internal/application/dto"
	"github.com/greengotts/greengotts-api/internal/domain"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
	"github.com/greengotts/greengotts-api/internal/domain/repository"
)

type memFxRates struct {
	rows []*entity.FxRate
}

func (m *memFxRates) Create(_ context.Context, rate *entity.FxRate) error {
	m.rows = append(m.rows, rate)
	return nil
}

func (m *memFxRates) GetByID(_ context.Context, id string) (*entity.FxRate, error) {
	for _, r := range m.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memFxRates) FindMatchesUpToDate(_ context.Context, fromCcy, toCcy string, asOf time.Time) ([]*entity.FxRate, error) {
	var out []*entity.FxRate
	for _, r := range m.rows {
		if r.FromCcy == fromCcy && r.ToCcy == toCcy && !r.AsOfDate.After(asOf) {
			out = append(out, r)
		}
	}
	// Misma ordenación que el almacén real: fecha descendente y, a igual
	// fecha, la publicada más recientemente primero.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AsOfDate.Equal(out[j].AsOfDate) {
			return out[i].AsOfDate.After(out[j].AsOfDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memFxRates) List(_ context.Context, f repository.FxRateFilters) ([]*entity.FxRate, error) {
	var out []*entity.FxRate
	for _, r := range m.rows {
		if f.FromCcy != "" && r.FromCcy != f.FromCcy {
			continue
		}
		if f.ToCcy != "" && r.ToCcy != f.ToCcy {
			continue
		}
		if f.StartDate != nil && r.AsOfDate.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && r.AsOfDate.After(*f.EndDate) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *memFxRates) ListPairs(_ context.Context) ([]repository.CurrencyPair, error) {
	seen := make(map[repository.CurrencyPair]bool)
	var out []repository.CurrencyPair
	for _, r := range m.rows {
		p := repository.CurrencyPair{FromCcy: r.FromCcy, ToCcy: r.ToCcy}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out, nil
}

func TestCreateRate_NormalizaYPersiste(t *testing.T) {
	uc := NewFxUseCase(&memFxRates{})

	fx, err := uc.CreateRate(context.Background(), "u-finanzas", dto.CreateFxRateRequest{
		AsOfDate: "2025-01-01",
		FromCcy:  "cop",
		ToCcy:    "usd",
		Rate:     "0.00025",
	})
	require.NoError(t, err)
	assert.Equal(t, "COP", fx.FromCcy)
	assert.Equal(t, "USD", fx.ToCcy)
	assert.Equal(t, "u-finanzas", fx.CreatedBy)
	assert.NotEmpty(t, fx.ID)
}

// Una corrección para el mismo par/fecha se publica como fila nueva, nunca se
// rechaza ni pisa la anterior: ambas quedan en el registro y la más reciente
// por created_at pasa a ser la aplicable para cálculos futuros.
func TestCreateRate_CorreccionMismoParFechaEsFilaNueva(t *testing.T) {
	store := &memFxRates{}
	uc := NewFxUseCase(store)
	ctx := context.Background()
	req := dto.CreateFxRateRequest{AsOfDate: "2025-01-01", FromCcy: "COP", ToCcy: "USD", Rate: "0.00025"}

	original, err := uc.CreateRate(ctx, "u-finanzas", req)
	require.NoError(t, err)

	req.Rate = "0.00026"
	correction, err := uc.CreateRate(ctx, "u-finanzas", req)
	require.NoError(t, err, "el mismo par/fecha admite una corrección como fila nueva")
	assert.NotEqual(t, original.ID, correction.ID)

	// Ambas filas quedan en el registro.
	rates, err := uc.ListRates(ctx, dto.FxRateFiltersRequest{FromCcy: "COP", ToCcy: "USD"})
	require.NoError(t, err)
	assert.Len(t, rates, 2)

	// La corrección pasa a ser la tasa aplicable hacia adelante.
	original.CreatedAt = correction.CreatedAt.Add(-time.Minute)
	asOf, _ := time.Parse("2006-01-02", "2025-01-15")
	matches, err := store.FindMatchesUpToDate(ctx, "COP", "USD", asOf)
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	assert.Equal(t, correction.ID, matches[0].ID)
	assert.Equal(t, "0.00026", matches[0].Rate.String())
}

func TestCreateRate_Validaciones(t *testing.T) {
	uc := NewFxUseCase(&memFxRates{})
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CreateFxRateRequest
	}{
		{"moneda corta", dto.CreateFxRateRequest{AsOfDate: "2025-01-01", FromCcy: "CO", ToCcy: "USD", Rate: "1"}},
		{"moneda con dígitos", dto.CreateFxRateRequest{AsOfDate: "2025-01-01", FromCcy: "C0P", ToCcy: "USD", Rate: "1"}},
		{"tasa cero", dto.CreateFxRateRequest{AsOfDate: "2025-01-01", FromCcy: "COP", ToCcy: "USD", Rate: "0"}},
		{"tasa negativa", dto.CreateFxRateRequest{AsOfDate: "2025-01-01", FromCcy: "COP", ToCcy: "USD", Rate: "-1"}},
		{"tasa no decimal", dto.CreateFxRateRequest{AsOfDate: "2025-01-01", FromCcy: "COP", ToCcy: "USD", Rate: "una"}},
		{"fecha inválida", dto.CreateFxRateRequest{AsOfDate: "01/01/2025", FromCcy: "COP", ToCcy: "USD", Rate: "1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateRate(ctx, "u-finanzas", tc.in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestListRates_FiltraPorParYRango(t *testing.T) {
	uc := NewFxUseCase(&memFxRates{})
	ctx := context.Background()
	for _, seed := range []dto.CreateFxRateRequest{
		{AsOfDate: "2025-01-01", FromCcy: "COP", ToCcy: "USD", Rate: "0.00025"},
		{AsOfDate: "2025-02-01", FromCcy: "COP", ToCcy: "USD", Rate: "0.00026"},
		{AsOfDate: "2025-01-01", FromCcy: "EUR", ToCcy: "USD", Rate: "1.05"},
	} {
		_, err := uc.CreateRate(ctx, "u-finanzas", seed)
		require.NoError(t, err)
	}

	rates, err := uc.ListRates(ctx, dto.FxRateFiltersRequest{FromCcy: "cop", ToCcy: "usd", EndDate: "2025-01-31"})
	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.Equal(t, "COP", rates[0].FromCcy)

	pairs, err := uc.ListPairs(ctx)
	require.NoError(t, err)
	assert.Len(t, pairs, 2)
}
