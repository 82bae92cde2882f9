package budgeting_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greengotts/greengotts-api/internal/domain"
	"github.com/greengotts/greengotts-api/internal/domain/budgeting"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
)

// fakeResolver devuelve una tasa fija o un error, sin tocar almacén alguno.
type fakeResolver struct {
	rate *entity.FxRate
	err  error
}

func (f *fakeResolver) Resolve(_ context.Context, _, _ string, _ time.Time) (*entity.FxRate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rate, nil
}

func asOf() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

func TestComputeUSDAmount_ConversionYSnapshot(t *testing.T) {
	engine := budgeting.NewAmountEngine(&fakeResolver{rate: &entity.FxRate{
		ID:   "fx-1",
		Rate: money("0.0512"), // MXN → USD
	}})

	conv, err := engine.ComputeUSDAmount(context.Background(), "MXN", money("1000.00"), asOf())
	require.NoError(t, err)
	assert.Equal(t, "fx-1", conv.FxRateID, "la identidad de la tasa queda congelada en el ítem")
	assert.True(t, money("51.20").Equal(conv.USDAmount))
}

// Redondeo half-up documentado: 0.005 de medio sube.
func TestComputeUSDAmount_RedondeoHalfUp(t *testing.T) {
	engine := budgeting.NewAmountEngine(&fakeResolver{rate: &entity.FxRate{
		ID:   "fx-1",
		Rate: money("0.125"),
	}})

	// 1.00 * 0.125 = 0.125 → 0.13 con half-up (banker's daría 0.12)
	conv, err := engine.ComputeUSDAmount(context.Background(), "MXN", money("1.00"), asOf())
	require.NoError(t, err)
	assert.True(t, money("0.13").Equal(conv.USDAmount), "esperaba 0.13, vino %s", conv.USDAmount)
}

func TestComputeUSDAmount_SinTasa_ErrorDuro(t *testing.T) {
	engine := budgeting.NewAmountEngine(&fakeResolver{err: domain.ErrNotFound})

	_, err := engine.ComputeUSDAmount(context.Background(), "MXN", money("1000.00"), asOf())
	assert.ErrorIs(t, err, domain.ErrNotFound, "sin tasa no hay default: el caller debe reportarlo al actor")
}

func TestComputeUSDAmount_MontoNegativo_Validation(t *testing.T) {
	engine := budgeting.NewAmountEngine(&fakeResolver{rate: &entity.FxRate{ID: "fx-1", Rate: money("1.0")}})

	_, err := engine.ComputeUSDAmount(context.Background(), "MXN", money("-5.00"), asOf())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestComputeUSDAmount_MonedaVacia_Validation(t *testing.T) {
	engine := budgeting.NewAmountEngine(&fakeResolver{rate: &entity.FxRate{ID: "fx-1", Rate: money("1.0")}})

	_, err := engine.ComputeUSDAmount(context.Background(), "", money("5.00"), asOf())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRoundMoney_DosDecimalesHalfUp(t *testing.T) {
	cases := map[string]string{
		"8.333333": "8.33",
		"8.335":    "8.34",
		"0.005":    "0.01",
		"2.675":    "2.68",
		"10":       "10",
	}
	for in, want := range cases {
		got := budgeting.RoundMoney(decimal.RequireFromString(in))
		assert.True(t, decimal.RequireFromString(want).Equal(got), "RoundMoney(%s) = %s, esperaba %s", in, got, want)
	}
}
