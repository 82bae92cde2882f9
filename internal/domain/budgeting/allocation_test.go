package budgeting_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greengotts/greengotts-api/internal/domain"
	"github.com/greengotts/greengotts-api/internal/domain/budgeting"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func monthPtr(y int, m time.Month) *time.Time {
	t := month(y, m)
	return &t
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sum(xs []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, x := range xs {
		total = total.Add(x)
	}
	return total
}

// Fixture canónico: 100.00 de enero a diciembre → 11×8.33 + 8.37, suma exacta.
func TestAllocateMonths_CienEnDoceMeses(t *testing.T) {
	got, err := budgeting.AllocateMonths(money("100.00"), month(2025, time.January), monthPtr(2025, time.December))
	require.NoError(t, err)
	require.Len(t, got, 12)

	for i := 0; i < 11; i++ {
		assert.True(t, money("8.33").Equal(got[i]), "mes %d: esperaba 8.33, vino %s", i+1, got[i])
	}
	assert.True(t, money("8.37").Equal(got[11]), "el residuo de redondeo va entero al último mes")
	assert.True(t, money("100.00").Equal(sum(got)), "la suma debe igualar el total exactamente")
}

func TestAllocateMonths_UnSoloMes(t *testing.T) {
	got, err := budgeting.AllocateMonths(money("100.00"), month(2025, time.January), monthPtr(2025, time.January))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, money("100.00").Equal(got[0]))
}

func TestAllocateMonths_RangoCruzaAnio(t *testing.T) {
	// nov 2025 .. feb 2026 = 4 meses
	got, err := budgeting.AllocateMonths(money("10.00"), month(2025, time.November), monthPtr(2026, time.February))
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.True(t, money("10.00").Equal(sum(got)))
	assert.True(t, money("2.50").Equal(got[0]))
}

// La suma exacta se sostiene también cuando el redondeo deja residuo negativo
// (por cuota redondeada hacia arriba): 100.00 / 3 = 33.33 → último 33.34.
func TestAllocateMonths_SumaExactaPropiedad(t *testing.T) {
	cases := []struct {
		total  string
		months int
	}{
		{"100.00", 3},
		{"0.01", 5},
		{"999.99", 7},
		{"1.00", 12},
		{"250.10", 6},
		{"0.00", 4},
	}
	for _, tc := range cases {
		end := month(2025, time.Month(tc.months))
		got, err := budgeting.AllocateMonths(money(tc.total), month(2025, time.January), &end)
		require.NoError(t, err)
		require.Len(t, got, tc.months, "total=%s", tc.total)
		assert.True(t, money(tc.total).Equal(sum(got)),
			"total=%s meses=%d: la suma %s no iguala el total", tc.total, tc.months, sum(got))
	}
}

func TestAllocateMonths_SinEndMonth_DistribucionDiferida(t *testing.T) {
	got, err := budgeting.AllocateMonths(money("100.00"), month(2025, time.January), nil)
	require.NoError(t, err)
	assert.Empty(t, got, "rango abierto: no se fabrica un horizonte")
}

func TestAllocateMonths_EndAntesDeStart_Validation(t *testing.T) {
	_, err := budgeting.AllocateMonths(money("100.00"), month(2025, time.June), monthPtr(2025, time.January))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAllocateMonths_MontoNegativo_Validation(t *testing.T) {
	_, err := budgeting.AllocateMonths(money("-1.00"), month(2025, time.January), monthPtr(2025, time.December))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAllocateForNature_OneTimeEsUnaSolaCuota(t *testing.T) {
	got, err := budgeting.AllocateForNature(entity.NatureOneTime, money("450.00"),
		monthPtr(2025, time.January), monthPtr(2025, time.December))
	require.NoError(t, err)
	require.Len(t, got, 1, "one_time ignora el rango de meses")
	assert.True(t, money("450.00").Equal(got[0]))
}

func TestAllocateForNature_RecurringSinFin_Diferido(t *testing.T) {
	got, err := budgeting.AllocateForNature(entity.NatureRecurring, money("60.00"),
		monthPtr(2025, time.March), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAllocateForNature_ProvisionConRango(t *testing.T) {
	got, err := budgeting.AllocateForNature(entity.NatureProvision, money("60.00"),
		monthPtr(2025, time.January), monthPtr(2025, time.June))
	require.NoError(t, err)
	require.Len(t, got, 6)
	assert.True(t, money("60.00").Equal(sum(got)))
}

func TestAllocateForNature_NaturalezaDesconocida_Validation(t *testing.T) {
	_, err := budgeting.AllocateForNature("weekly", money("60.00"), monthPtr(2025, time.January), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMonthCount(t *testing.T) {
	assert.Equal(t, 1, budgeting.MonthCount(month(2025, time.January), month(2025, time.January)))
	assert.Equal(t, 12, budgeting.MonthCount(month(2025, time.January), month(2025, time.December)))
	assert.Equal(t, 2, budgeting.MonthCount(month(2025, time.December), month(2026, time.January)))
}
