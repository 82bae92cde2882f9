package budgeting

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greengotts/greengotts-api/internal/domain"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
)

// monthIndex colapsa una fecha a su mes calendario absoluto.
func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// MonthCount devuelve la cantidad de meses del rango inclusivo [start, end].
func MonthCount(start, end time.Time) int {
	return monthIndex(end) - monthIndex(start) + 1
}

// AllocateMonths reparte un total USD en cuotas mensuales para el rango
// inclusivo [startMonth, endMonth]. Cada cuota es total/n redondeado a 2
// decimales y el residuo de redondeo se asigna completo al ÚLTIMO mes, de
// modo que la suma de cuotas iguale el total exactamente (no aproximadamente):
// 100.00 en 12 meses → once cuotas de 8.33 y una final de 8.37.
//
// endMonth nil significa rango abierto: la distribución se difiere (se
// devuelve vacío) hasta que se fije un fin; no se inventa un horizonte.
func AllocateMonths(usdAmount decimal.Decimal, startMonth time.Time, endMonth *time.Time) ([]decimal.Decimal, error) {
	if usdAmount.IsNegative() {
		return nil, fmt.Errorf("%w: el monto a distribuir no puede ser negativo", domain.ErrValidation)
	}
	if endMonth == nil {
		return nil, nil
	}
	n := MonthCount(startMonth, *endMonth)
	if n < 1 {
		return nil, fmt.Errorf("%w: end_month anterior a start_month", domain.ErrValidation)
	}
	if n == 1 {
		return []decimal.Decimal{RoundMoney(usdAmount)}, nil
	}

	per := RoundMoney(usdAmount.Div(decimal.NewFromInt(int64(n))))
	out := make([]decimal.Decimal, n)
	allocated := decimal.Zero
	for i := 0; i < n-1; i++ {
		out[i] = per
		allocated = allocated.Add(per)
	}
	out[n-1] = usdAmount.Sub(allocated)
	return out, nil
}

// AllocateForNature aplica la regla de distribución según la naturaleza del
// ítem: one_time produce una sola cuota por el total sin importar el rango;
// recurring/provision distribuyen por meses (o difieren si no hay end_month).
func AllocateForNature(nature string, usdAmount decimal.Decimal, startMonth, endMonth *time.Time) ([]decimal.Decimal, error) {
	switch nature {
	case entity.NatureOneTime:
		if usdAmount.IsNegative() {
			return nil, fmt.Errorf("%w: el monto a distribuir no puede ser negativo", domain.ErrValidation)
		}
		return []decimal.Decimal{RoundMoney(usdAmount)}, nil
	case entity.NatureRecurring, entity.NatureProvision:
		if startMonth == nil {
			return nil, nil
		}
		return AllocateMonths(usdAmount, *startMonth, endMonth)
	}
	return nil, fmt.Errorf("%w: naturaleza de ítem desconocida %q", domain.ErrValidation, nature)
}
