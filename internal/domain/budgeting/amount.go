// Package budgeting implementa el cálculo de montos de ítems de presupuesto:
// conversión a USD con snapshot de tasa fx y distribución mensual.
//
// Política de redondeo (decisión documentada, ver tests): half-up a 2
// decimales, aplicada uniformemente tanto a la conversión como a cada cuota
// mensual. decimal.Round redondea el medio alejándose de cero, que para
// montos positivos equivale a half-up.
package budgeting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greengotts/greengotts-api/internal/domain"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
)

// BaseCurrency es la moneda base de todos los presupuestos.
const BaseCurrency = "USD"

// RoundMoney aplica la política de redondeo monetario del sistema.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RateResolver fija la tasa aplicable a un par/fecha. Lo implementa
// fx.Resolver.
type RateResolver interface {
	Resolve(ctx context.Context, fromCcy, toCcy string, asOf time.Time) (*entity.FxRate, error)
}

// Conversion es el resultado de convertir un monto local a USD. FxRateID es
// la identidad de la fila de tasa usada; el ítem la congela de forma
// permanente: publicar tasas nuevas para el mismo par/fecha jamás cambia
// retroactivamente un usd_amount ya calculado.
type Conversion struct {
	USDAmount decimal.Decimal
	FxRateID  string
	Rate      decimal.Decimal
}

// AmountEngine computa montos USD de ítems. Puro salvo la lectura de tasas;
// no persiste ni loguea.
type AmountEngine struct {
	resolver RateResolver
}

// NewAmountEngine construye el motor sobre el resolver de tasas.
func NewAmountEngine(resolver RateResolver) *AmountEngine {
	return &AmountEngine{resolver: resolver}
}

// ComputeUSDAmount convierte un monto en moneda local a USD con la tasa
// vigente a la fecha de referencia:
//
//	usd = round(local_amount * rate, 2)
//
// La ausencia de tasa es error duro (ErrNotFound): no existe tasa identidad
// ni default 1.0 — un cálculo de dinero nunca asume valores en silencio.
func (e *AmountEngine) ComputeUSDAmount(ctx context.Context, localCcy string, localAmount decimal.Decimal, asOf time.Time) (*Conversion, error) {
	if localAmount.IsNegative() {
		return nil, fmt.Errorf("%w: el monto local no puede ser negativo", domain.ErrValidation)
	}
	if localCcy == "" {
		return nil, fmt.Errorf("%w: moneda local requerida", domain.ErrValidation)
	}
	rate, err := e.resolver.Resolve(ctx, localCcy, BaseCurrency, asOf)
	if err != nil {
		return nil, err
	}
	return &Conversion{
		USDAmount: RoundMoney(localAmount.Mul(rate.Rate)),
		FxRateID:  rate.ID,
		Rate:      rate.Rate,
	}, nil
}
