package fx_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greengotts/greengotts-api/internal/domain"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
	"github.com/greengotts/greengotts-api/internal/domain/fx"
)

// fakeRates reproduce la consulta del repositorio: pares coincidentes con
// as_of_date <= asOf, orden descendente por fecha.
type fakeRates struct {
	rows []*entity.FxRate
}

func (f *fakeRates) FindMatchesUpToDate(_ context.Context, fromCcy, toCcy string, asOf time.Time) ([]*entity.FxRate, error) {
	var out []*entity.FxRate
	for _, r := range f.rows {
		if r.FromCcy == fromCcy && r.ToCcy == toCcy && !r.AsOfDate.After(asOf) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AsOfDate.After(out[j].AsOfDate) })
	return out, nil
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func rate(id, from, to, asOf, value string) *entity.FxRate {
	return &entity.FxRate{
		ID:       id,
		FromCcy:  from,
		ToCcy:    to,
		AsOfDate: date(asOf),
		Rate:     decimal.RequireFromString(value),
	}
}

func TestResolve_EligeLaTasaMasRecienteNoFutura(t *testing.T) {
	store := &fakeRates{rows: []*entity.FxRate{
		rate("r1", "USD", "MXN", "2025-01-01", "20.0"),
		rate("r2", "USD", "MXN", "2025-03-01", "21.0"),
	}}
	resolver := fx.NewResolver(store)

	got, err := resolver.Resolve(context.Background(), "USD", "MXN", date("2025-02-15"))
	require.NoError(t, err)
	assert.Equal(t, "r1", got.ID, "entre 2025-01-01 y 2025-03-01 debe aplicar la de enero")
}

func TestResolve_FechaExactaNoEsCasoEspecial(t *testing.T) {
	store := &fakeRates{rows: []*entity.FxRate{
		rate("r1", "USD", "MXN", "2025-01-01", "20.0"),
		rate("r2", "USD", "MXN", "2025-03-01", "21.0"),
	}}
	resolver := fx.NewResolver(store)

	got, err := resolver.Resolve(context.Background(), "USD", "MXN", date("2025-03-01"))
	require.NoError(t, err)
	assert.Equal(t, "r2", got.ID)
}

func TestResolve_SinTasaAnterior_NotFound(t *testing.T) {
	store := &fakeRates{rows: []*entity.FxRate{
		rate("r1", "USD", "MXN", "2025-01-01", "20.0"),
	}}
	resolver := fx.NewResolver(store)

	_, err := resolver.Resolve(context.Background(), "USD", "MXN", date("2024-12-01"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolve_ParDistinto_NotFound(t *testing.T) {
	store := &fakeRates{rows: []*entity.FxRate{
		rate("r1", "USD", "MXN", "2025-01-01", "20.0"),
	}}
	resolver := fx.NewResolver(store)

	_, err := resolver.Resolve(context.Background(), "EUR", "MXN", date("2025-06-01"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// No hay tasa identidad implícita: USD/USD también requiere fila publicada.
func TestResolve_MismaMonedasSinFila_NotFound(t *testing.T) {
	resolver := fx.NewResolver(&fakeRates{})

	_, err := resolver.Resolve(context.Background(), "USD", "USD", date("2025-06-01"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolve_ParVacio_Validation(t *testing.T) {
	resolver := fx.NewResolver(&fakeRates{})

	_, err := resolver.Resolve(context.Background(), "", "MXN", date("2025-06-01"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}
