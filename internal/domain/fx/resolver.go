package fx

import (
	"context"
	"fmt"
	"time"

	"github.com/greengotts/greengotts-api/internal/domain"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
)

// RateFinder es el contrato de lectura que necesita el resolver. Devuelve las
// tasas del par con as_of_date <= asOf, ordenadas por fecha descendente.
type RateFinder interface {
	FindMatchesUpToDate(ctx context.Context, fromCcy, toCcy string, asOf time.Time) ([]*entity.FxRate, error)
}

// Resolver fija la tasa aplicable a un par de monedas a una fecha de
// referencia: la más reciente que no sea posterior a la fecha. El match de
// fecha exacta es un caso particular de esa regla, no un camino aparte.
type Resolver struct {
	rates RateFinder
}

// NewResolver construye el resolver sobre el almacén de tasas.
func NewResolver(rates RateFinder) *Resolver {
	return &Resolver{rates: rates}
}

// Resolve devuelve la tasa aplicable o ErrNotFound si no existe ninguna para
// el par hasta la fecha. No hay fallback: nunca se asume tasa identidad ni
// 1.0 implícito, ni siquiera para pares de la misma moneda.
func (r *Resolver) Resolve(ctx context.Context, fromCcy, toCcy string, asOf time.Time) (*entity.FxRate, error) {
	if fromCcy == "" || toCcy == "" {
		return nil, fmt.Errorf("%w: par de monedas incompleto", domain.ErrValidation)
	}
	matches, err := r.rates.FindMatchesUpToDate(ctx, fromCcy, toCcy, asOf)
	if err != nil {
		return nil, fmt.Errorf("fx: buscar tasas %s/%s: %w", fromCcy, toCcy, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: sin tasa fx para %s/%s al %s",
			domain.ErrNotFound, fromCcy, toCcy, asOf.Format("2006-01-02"))
	}
	return matches[0], nil
}
