package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/greengotts/greengotts-api/internal/domain"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
	"github.com/greengotts/greengotts-api/internal/domain/repository"
)

var _ repository.BudgetRepository = (*BudgetRepo)(nil)

// BudgetRepo persiste presupuestos, secciones e ítems sobre PostgreSQL. Las
// cuotas mensuales se guardan como JSONB de strings decimales; los montos
// nunca se recalculan aquí, llegan ya computados.
type BudgetRepo struct {
	q Querier
}

// NewBudgetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBudgetRepository(q Querier) *BudgetRepo {
	return &BudgetRepo{q: q}
}

const budgetColumns = `id, team_id, title, description, fiscal_year, base_currency, status, created_by, updated_by, created_at, updated_at`

// Create persiste un presupuesto nuevo.
func (r *BudgetRepo) Create(ctx context.Context, b *entity.Budget) error {
	query := `
		INSERT INTO gg_budget (id, team_id, title, description, fiscal_year, base_currency, status, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.TeamID, b.Title, b.Description, b.FiscalYear, b.BaseCurrency,
		b.Status, b.CreatedBy, b.UpdatedBy, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: equipo inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert budget: %w", err)
	}
	return nil
}

// GetByID obtiene un presupuesto; (nil, nil) si no existe.
func (r *BudgetRepo) GetByID(ctx context.Context, id string) (*entity.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM gg_budget WHERE id = $1`
	var b entity.Budget
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.TeamID, &b.Title, &b.Description, &b.FiscalYear, &b.BaseCurrency,
		&b.Status, &b.CreatedBy, &b.UpdatedBy, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get budget: %w", err)
	}
	return &b, nil
}

// Update actualiza título, descripción y estado.
func (r *BudgetRepo) Update(ctx context.Context, b *entity.Budget) error {
	query := `
		UPDATE gg_budget SET title = $2, description = $3, status = $4, updated_by = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, b.ID, b.Title, b.Description, b.Status, b.UpdatedBy, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return nil
}

// Delete elimina el presupuesto; secciones e ítems caen por cascade.
func (r *BudgetRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM gg_budget WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return nil
}

// ListByTeam presupuestos de un equipo, año fiscal descendente.
func (r *BudgetRepo) ListByTeam(ctx context.Context, teamID string) ([]*entity.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM gg_budget WHERE team_id = $1 ORDER BY fiscal_year DESC, created_at DESC`
	rows, err := r.q.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Budget
	for rows.Next() {
		var b entity.Budget
		if err := rows.Scan(&b.ID, &b.TeamID, &b.Title, &b.Description, &b.FiscalYear, &b.BaseCurrency,
			&b.Status, &b.CreatedBy, &b.UpdatedBy, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// CreateSection alta de sección.
func (r *BudgetRepo) CreateSection(ctx context.Context, s *entity.BudgetSection) error {
	query := `
		INSERT INTO gg_budget_section (id, budget_id, title, description, sort_order)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, s.ID, s.BudgetID, s.Title, s.Description, s.SortOrder)
	if err != nil {
		return fmt.Errorf("insert budget section: %w", err)
	}
	return nil
}

// ListSections secciones de un presupuesto, por sort_order.
func (r *BudgetRepo) ListSections(ctx context.Context, budgetID string) ([]*entity.BudgetSection, error) {
	query := `
		SELECT id, budget_id, title, description, sort_order
		FROM gg_budget_section WHERE budget_id = $1 ORDER BY sort_order, title`
	rows, err := r.q.Query(ctx, query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("list budget sections: %w", err)
	}
	defer rows.Close()
	var list []*entity.BudgetSection
	for rows.Next() {
		var s entity.BudgetSection
		if err := rows.Scan(&s.ID, &s.BudgetID, &s.Title, &s.Description, &s.SortOrder); err != nil {
			return nil, fmt.Errorf("scan budget section: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// UpdateSection actualiza título, descripción y orden.
func (r *BudgetRepo) UpdateSection(ctx context.Context, s *entity.BudgetSection) error {
	query := `UPDATE gg_budget_section SET title = $2, description = $3, sort_order = $4 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, s.ID, s.Title, s.Description, s.SortOrder); err != nil {
		return fmt.Errorf("update budget section: %w", err)
	}
	return nil
}

// DeleteSection elimina la sección; sus ítems quedan con section_id NULL.
func (r *BudgetRepo) DeleteSection(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM gg_budget_section WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete budget section: %w", err)
	}
	return nil
}

const itemColumns = `id, budget_id, section_id, cost_center_id, owner_user_id, type, nature,
	vendor_or_person, description, local_currency, local_amount, fx_rate_id_snapshot,
	usd_amount, allocations, status, start_month, end_month, created_by, updated_by,
	created_at, updated_at, soft_deleted_at`

// CreateItem persiste un ítem con montos ya calculados.
func (r *BudgetRepo) CreateItem(ctx context.Context, item *entity.BudgetItem) error {
	allocations, err := json.Marshal(item.Allocations)
	if err != nil {
		return fmt.Errorf("marshal allocations: %w", err)
	}
	query := `
		INSERT INTO gg_budget_item (id, budget_id, section_id, cost_center_id, owner_user_id,
			type, nature, vendor_or_person, description, local_currency, local_amount,
			fx_rate_id_snapshot, usd_amount, allocations, status, start_month, end_month,
			created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err = r.q.Exec(ctx, query,
		item.ID, item.BudgetID, item.SectionID, item.CostCenterID, item.OwnerUserID,
		item.Type, item.Nature, item.VendorOrPerson, item.Description, item.LocalCurrency,
		item.LocalAmount, item.FxRateIDSnapshot, item.USDAmount, allocations, item.Status,
		item.StartMonth, item.EndMonth, item.CreatedBy, item.UpdatedBy, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: referencia inexistente en el ítem", domain.ErrNotFound)
		}
		return fmt.Errorf("insert budget item: %w", err)
	}
	return nil
}

// GetItem obtiene un ítem por id, incluidos los soft-deleted (para restore);
// (nil, nil) si no existe.
func (r *BudgetRepo) GetItem(ctx context.Context, id string) (*entity.BudgetItem, error) {
	query := `SELECT ` + itemColumns + ` FROM gg_budget_item WHERE id = $1`
	item, err := r.scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get budget item: %w", err)
	}
	return item, nil
}

// ListItems ítems vigentes de un presupuesto con filtros opcionales. Month
// filtra ítems cuyo rango cubre el mes (end abierto incluye).
func (r *BudgetRepo) ListItems(ctx context.Context, budgetID string, filters repository.ItemFilters) ([]*entity.BudgetItem, error) {
	query := `SELECT ` + itemColumns + ` FROM gg_budget_item WHERE budget_id = $1 AND soft_deleted_at IS NULL`
	args := []any{budgetID}
	if filters.Type != "" {
		args = append(args, filters.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filters.CostCenterID != "" {
		args = append(args, filters.CostCenterID)
		query += fmt.Sprintf(" AND cost_center_id = $%d", len(args))
	}
	if filters.Month != nil {
		args = append(args, *filters.Month)
		n := len(args)
		query += fmt.Sprintf(" AND (start_month IS NULL OR start_month <= $%d) AND (end_month IS NULL OR end_month >= $%d)", n, n)
	}
	query += " ORDER BY created_at"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list budget items: %w", err)
	}
	defer rows.Close()
	var list []*entity.BudgetItem
	for rows.Next() {
		item, err := r.scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// UpdateItem actualiza un ítem completo (montos ya recalculados por el caso de uso).
func (r *BudgetRepo) UpdateItem(ctx context.Context, item *entity.BudgetItem) error {
	allocations, err := json.Marshal(item.Allocations)
	if err != nil {
		return fmt.Errorf("marshal allocations: %w", err)
	}
	query := `
		UPDATE gg_budget_item SET section_id = $2, cost_center_id = $3, type = $4, nature = $5,
			vendor_or_person = $6, description = $7, local_currency = $8, local_amount = $9,
			fx_rate_id_snapshot = $10, usd_amount = $11, allocations = $12, status = $13,
			start_month = $14, end_month = $15, updated_by = $16, updated_at = $17
		WHERE id = $1`
	_, err = r.q.Exec(ctx, query,
		item.ID, item.SectionID, item.CostCenterID, item.Type, item.Nature,
		item.VendorOrPerson, item.Description, item.LocalCurrency, item.LocalAmount,
		item.FxRateIDSnapshot, item.USDAmount, allocations, item.Status,
		item.StartMonth, item.EndMonth, item.UpdatedBy, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update budget item: %w", err)
	}
	return nil
}

// SoftDeleteItem marca el ítem como borrado; la fila queda para auditoría.
func (r *BudgetRepo) SoftDeleteItem(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE gg_budget_item SET soft_deleted_at = $2 WHERE id = $1 AND soft_deleted_at IS NULL`
	if _, err := r.q.Exec(ctx, query, id, at); err != nil {
		return fmt.Errorf("soft delete budget item: %w", err)
	}
	return nil
}

// RestoreItem revierte un soft delete.
func (r *BudgetRepo) RestoreItem(ctx context.Context, id string) error {
	query := `UPDATE gg_budget_item SET soft_deleted_at = NULL WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("restore budget item: %w", err)
	}
	return nil
}

func (r *BudgetRepo) scanItem(row pgx.Row) (*entity.BudgetItem, error) {
	var item entity.BudgetItem
	var allocations []byte
	err := row.Scan(
		&item.ID, &item.BudgetID, &item.SectionID, &item.CostCenterID, &item.OwnerUserID,
		&item.Type, &item.Nature, &item.VendorOrPerson, &item.Description, &item.LocalCurrency,
		&item.LocalAmount, &item.FxRateIDSnapshot, &item.USDAmount, &allocations, &item.Status,
		&item.StartMonth, &item.EndMonth, &item.CreatedBy, &item.UpdatedBy,
		&item.CreatedAt, &item.UpdatedAt, &item.SoftDeletedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(allocations) > 0 {
		var parsed []decimal.Decimal
		if err := json.Unmarshal(allocations, &parsed); err != nil {
			return nil, fmt.Errorf("unmarshal allocations: %w", err)
		}
		item.Allocations = parsed
	}
	return &item, nil
}
