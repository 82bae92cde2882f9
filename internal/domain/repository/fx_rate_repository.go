package repository

import (
	"context"
	"time"

	"github.com/greengotts/greengotts-api/internal/domain/entity"
)

// FxRateFilters filtros opcionales para listar tasas.
type FxRateFilters struct {
	FromCcy   string
	ToCcy     string
	StartDate *time.Time
	EndDate   *time.Time
}

// CurrencyPair es un par de monedas con al menos una tasa publicada.
type CurrencyPair struct {
	FromCcy string
	ToCcy   string
}

// FxRateRepository persiste tasas de cambio. Las filas referenciadas por un
// ítem no se modifican ni eliminan.
type FxRateRepository interface {
	Create(ctx context.Context, rate *entity.FxRate) error
	GetByID(ctx context.Context, id string) (*entity.FxRate, error)
	// FindMatchesUpToDate devuelve las tasas del par con as_of_date <= asOf,
	// ordenadas por fecha descendente (la primera es la aplicable).
	FindMatchesUpToDate(ctx context.Context, fromCcy, toCcy string, asOf time.Time) ([]*entity.FxRate, error)
	List(ctx context.Context, filters FxRateFilters) ([]*entity.FxRate, error)
	ListPairs(ctx context.Context) ([]CurrencyPair, error)
}
