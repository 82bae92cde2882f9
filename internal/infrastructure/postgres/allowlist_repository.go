package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/greengotts/greengotts-api/internal/domain"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
	"github.com/greengotts/greengotts-api/internal/domain/repository"
)

var _ repository.AllowlistRepository = (*AllowlistRepo)(nil)

// AllowlistRepo almacén del allowlist de acceso sobre PostgreSQL, keyed por
// email normalizado.
type AllowlistRepo struct {
	q Querier
}

// NewAllowlistRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAllowlistRepository(q Querier) *AllowlistRepo {
	return &AllowlistRepo{q: q}
}

const allowlistColumns = `email, status, invited_by, invited_at`

// GetByEmail obtiene la entrada del allowlist; (nil, nil) si no existe.
func (r *AllowlistRepo) GetByEmail(ctx context.Context, email string) (*entity.AllowlistEntry, error) {
	query := `SELECT ` + allowlistColumns + ` FROM gg_access_allowlist WHERE email = $1`
	var e entity.AllowlistEntry
	err := r.q.QueryRow(ctx, query, email).Scan(&e.Email, &e.Status, &e.InvitedBy, &e.InvitedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get allowlist entry: %w", err)
	}
	return &e, nil
}

// Create persiste una entrada nueva; email duplicado es ErrConflict.
func (r *AllowlistRepo) Create(ctx context.Context, entry *entity.AllowlistEntry) error {
	query := `
		INSERT INTO gg_access_allowlist (email, status, invited_by, invited_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, entry.Email, entry.Status, entry.InvitedBy, entry.InvitedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email ya en el allowlist", domain.ErrConflict)
		}
		return fmt.Errorf("insert allowlist entry: %w", err)
	}
	return nil
}

// UpdateStatus cambia el estado de una entrada y devuelve la fila resultante;
// (nil, nil) si el email no está listado.
func (r *AllowlistRepo) UpdateStatus(ctx context.Context, email, status string) (*entity.AllowlistEntry, error) {
	query := `
		UPDATE gg_access_allowlist SET status = $2
		WHERE email = $1
		RETURNING ` + allowlistColumns
	var e entity.AllowlistEntry
	err := r.q.QueryRow(ctx, query, email, status).Scan(&e.Email, &e.Status, &e.InvitedBy, &e.InvitedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update allowlist status: %w", err)
	}
	return &e, nil
}

// Delete elimina una entrada; borrar un email no listado no es error.
func (r *AllowlistRepo) Delete(ctx context.Context, email string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM gg_access_allowlist WHERE email = $1`, email); err != nil {
		return fmt.Errorf("delete allowlist entry: %w", err)
	}
	return nil
}

// List devuelve las entradas con filtros opcionales, más recientes primero.
func (r *AllowlistRepo) List(ctx context.Context, filters repository.AllowlistFilters) ([]*entity.AllowlistEntry, error) {
	query := `SELECT ` + allowlistColumns + ` FROM gg_access_allowlist WHERE 1=1`
	var args []any
	if filters.Status != "" {
		args = append(args, filters.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filters.InvitedBy != "" {
		args = append(args, filters.InvitedBy)
		query += fmt.Sprintf(" AND invited_by = $%d", len(args))
	}
	query += " ORDER BY invited_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list allowlist: %w", err)
	}
	defer rows.Close()
	var list []*entity.AllowlistEntry
	for rows.Next() {
		var e entity.AllowlistEntry
		if err := rows.Scan(&e.Email, &e.Status, &e.InvitedBy, &e.InvitedAt); err != nil {
			return nil, fmt.Errorf("scan allowlist entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// PendingCount cuenta las entradas pendientes de decisión.
func (r *AllowlistRepo) PendingCount(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM gg_access_allowlist WHERE status = $1`,
		entity.AllowlistPending,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pending allowlist: %w", err)
	}
	return n, nil
}
