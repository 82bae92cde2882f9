package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/greengotts/greengotts-api/internal/domain"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
	"github.com/greengotts/greengotts-api/internal/domain/repository"
)

var _ repository.FxRateRepository = (*FxRateRepo)(nil)

// FxRateRepo almacén de tasas de cambio sobre PostgreSQL. Append-only: no hay
// UPDATE ni DELETE, una fila referenciada por un ítem es permanente.
type FxRateRepo struct {
	q Querier
}

// NewFxRateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFxRateRepository(q Querier) *FxRateRepo {
	return &FxRateRepo{q: q}
}

const fxColumns = `id, as_of_date, from_ccy, to_ccy, rate, source_note, created_by, created_at`

// Create publica una tasa. Par/fecha repetido NO es conflicto: una corrección
// es una fila nueva y la más reciente por created_at pasa a ser la aplicable.
func (r *FxRateRepo) Create(ctx context.Context, rate *entity.FxRate) error {
	query := `
		INSERT INTO gg_fx_rate (id, as_of_date, from_ccy, to_ccy, rate, source_note, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		rate.ID, rate.AsOfDate, rate.FromCcy, rate.ToCcy, rate.Rate,
		rate.SourceNote, rate.CreatedBy, rate.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: usuario %s", domain.ErrNotFound, rate.CreatedBy)
		}
		return fmt.Errorf("insert fx rate: %w", err)
	}
	return nil
}

// GetByID obtiene una tasa; (nil, nil) si no existe.
func (r *FxRateRepo) GetByID(ctx context.Context, id string) (*entity.FxRate, error) {
	query := `SELECT ` + fxColumns + ` FROM gg_fx_rate WHERE id = $1`
	var fx entity.FxRate
	err := r.q.QueryRow(ctx, query, id).Scan(
		&fx.ID, &fx.AsOfDate, &fx.FromCcy, &fx.ToCcy, &fx.Rate,
		&fx.SourceNote, &fx.CreatedBy, &fx.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fx rate: %w", err)
	}
	return &fx, nil
}

// FindMatchesUpToDate devuelve las tasas del par con as_of_date <= asOf, la
// aplicable primero. Con varias filas para la misma fecha (correcciones)
// gana la publicada más recientemente.
func (r *FxRateRepo) FindMatchesUpToDate(ctx context.Context, fromCcy, toCcy string, asOf time.Time) ([]*entity.FxRate, error) {
	query := `
		SELECT ` + fxColumns + `
		FROM gg_fx_rate
		WHERE from_ccy = $1 AND to_ccy = $2 AND as_of_date <= $3
		ORDER BY as_of_date DESC, created_at DESC`
	return r.queryRates(ctx, query, fromCcy, toCcy, asOf)
}

// List tasas con filtros opcionales, fecha descendente.
func (r *FxRateRepo) List(ctx context.Context, filters repository.FxRateFilters) ([]*entity.FxRate, error) {
	query := `SELECT ` + fxColumns + ` FROM gg_fx_rate WHERE 1=1`
	var args []any
	if filters.FromCcy != "" {
		args = append(args, filters.FromCcy)
		query += fmt.Sprintf(" AND from_ccy = $%d", len(args))
	}
	if filters.ToCcy != "" {
		args = append(args, filters.ToCcy)
		query += fmt.Sprintf(" AND to_ccy = $%d", len(args))
	}
	if filters.StartDate != nil {
		args = append(args, *filters.StartDate)
		query += fmt.Sprintf(" AND as_of_date >= $%d", len(args))
	}
	if filters.EndDate != nil {
		args = append(args, *filters.EndDate)
		query += fmt.Sprintf(" AND as_of_date <= $%d", len(args))
	}
	query += " ORDER BY as_of_date DESC, from_ccy, to_ccy, created_at DESC"
	return r.queryRates(ctx, query, args...)
}

func (r *FxRateRepo) queryRates(ctx context.Context, query string, args ...any) ([]*entity.FxRate, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query fx rates: %w", err)
	}
	defer rows.Close()
	var list []*entity.FxRate
	for rows.Next() {
		var fx entity.FxRate
		if err := rows.Scan(&fx.ID, &fx.AsOfDate, &fx.FromCcy, &fx.ToCcy, &fx.Rate,
			&fx.SourceNote, &fx.CreatedBy, &fx.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan fx rate: %w", err)
		}
		list = append(list, &fx)
	}
	return list, rows.Err()
}

// ListPairs pares de monedas con al menos una tasa publicada.
func (r *FxRateRepo) ListPairs(ctx context.Context) ([]repository.CurrencyPair, error) {
	query := `SELECT DISTINCT from_ccy, to_ccy FROM gg_fx_rate ORDER BY from_ccy, to_ccy`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list fx pairs: %w", err)
	}
	defer rows.Close()
	var list []repository.CurrencyPair
	for rows.Next() {
		var p repository.CurrencyPair
		if err := rows.Scan(&p.FromCcy, &p.ToCcy); err != nil {
			return nil, fmt.Errorf("scan fx pair: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
