package fxrates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greengotts/greengotts-api/internal/application/dto"
	"github.com/greengotts/greengotts-api/internal/domain"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
	"github.com/greengotts/greengotts-api/internal/domain/repository"
)

// FxUseCase publicación y consulta de tasas de cambio. Las tasas son
// append-only: una corrección para un par/fecha ya publicado es una fila
// nueva, nunca sobreescritura, para que los snapshots de ítems existentes
// sigan referenciando su fila original.
type FxUseCase struct {
	rates repository.FxRateRepository
}

// NewFxUseCase construye el caso de uso de tasas.
func NewFxUseCase(rates repository.FxRateRepository) *FxUseCase {
	return &FxUseCase{rates: rates}
}

// CreateRate publica una tasa nueva. Valida códigos de moneda (ISO 4217 de
// tres letras), tasa positiva y fecha en formato YYYY-MM-DD.
func (uc *FxUseCase) CreateRate(ctx context.Context, actorID string, in dto.CreateFxRateRequest) (*entity.FxRate, error) {
	from := strings.ToUpper(strings.TrimSpace(in.FromCcy))
	to := strings.ToUpper(strings.TrimSpace(in.ToCcy))
	if !validCurrency(from) || !validCurrency(to) {
		return nil, fmt.Errorf("%w: códigos de moneda inválidos %q/%q", domain.ErrValidation, in.FromCcy, in.ToCcy)
	}

	rate, err := decimal.NewFromString(in.Rate)
	if err != nil || !rate.IsPositive() {
		return nil, fmt.Errorf("%w: la tasa debe ser un decimal positivo", domain.ErrValidation)
	}

	asOf, err := time.Parse("2006-01-02", in.AsOfDate)
	if err != nil {
		return nil, fmt.Errorf("%w: as_of_date inválida %q (se espera YYYY-MM-DD)", domain.ErrValidation, in.AsOfDate)
	}

	fx := &entity.FxRate{
		ID:         uuid.New().String(),
		AsOfDate:   asOf,
		FromCcy:    from,
		ToCcy:      to,
		Rate:       rate,
		SourceNote: in.SourceNote,
		CreatedBy:  actorID,
		CreatedAt:  time.Now(),
	}
	// Un par/fecha ya publicado no es conflicto: la fila nueva es una
	// corrección y pasa a ser la aplicable por created_at.
	if err := uc.rates.Create(ctx, fx); err != nil {
		return nil, err
	}
	return fx, nil
}

// ListRates tasas publicadas con filtros opcionales de par y rango de fechas.
func (uc *FxUseCase) ListRates(ctx context.Context, in dto.FxRateFiltersRequest) ([]*entity.FxRate, error) {
	filters := repository.FxRateFilters{
		FromCcy: strings.ToUpper(in.FromCcy),
		ToCcy:   strings.ToUpper(in.ToCcy),
	}
	if in.StartDate != "" {
		t, err := time.Parse("2006-01-02", in.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: start_date inválida", domain.ErrValidation)
		}
		filters.StartDate = &t
	}
	if in.EndDate != "" {
		t, err := time.Parse("2006-01-02", in.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: end_date inválida", domain.ErrValidation)
		}
		filters.EndDate = &t
	}
	return uc.rates.List(ctx, filters)
}

// ListPairs pares de monedas con al menos una tasa publicada.
func (uc *FxUseCase) ListPairs(ctx context.Context) ([]repository.CurrencyPair, error) {
	return uc.rates.ListPairs(ctx)
}

// ToRateResponse proyecta una tasa al DTO de salida.
func ToRateResponse(r *entity.FxRate) dto.FxRateResponse {
	return dto.FxRateResponse{
		ID:         r.ID,
		AsOfDate:   r.AsOfDate,
		FromCcy:    r.FromCcy,
		ToCcy:      r.ToCcy,
		Rate:       r.Rate.String(),
		SourceNote: r.SourceNote,
		CreatedBy:  r.CreatedBy,
		CreatedAt:  r.CreatedAt,
	}
}

func validCurrency(ccy string) bool {
	if len(ccy) != 3 {
		return false
	}
	for _, c := range ccy {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
