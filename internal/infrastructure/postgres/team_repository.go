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

var _ repository.TeamRepository = (*TeamRepo)(nil)

// TeamRepo persiste equipos y centros de costo sobre PostgreSQL.
type TeamRepo struct {
	q Querier
}

// NewTeamRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTeamRepository(q Querier) *TeamRepo {
	return &TeamRepo{q: q}
}

const teamColumns = `id, name, owner_user_id, cost_center_default_id, created_at`

// Create persiste un equipo nuevo.
func (r *TeamRepo) Create(ctx context.Context, team *entity.Team) error {
	query := `
		INSERT INTO gg_team (id, name, owner_user_id, cost_center_default_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		team.ID, team.Name, team.OwnerUserID, team.CostCenterDefaultID, team.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: owner inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

// GetByID obtiene un equipo; (nil, nil) si no existe.
func (r *TeamRepo) GetByID(ctx context.Context, id string) (*entity.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM gg_team WHERE id = $1`
	var t entity.Team
	err := r.q.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.OwnerUserID, &t.CostCenterDefaultID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get team by id: %w", err)
	}
	return &t, nil
}

// Update actualiza nombre y owner del equipo.
func (r *TeamRepo) Update(ctx context.Context, team *entity.Team) error {
	query := `UPDATE gg_team SET name = $2, owner_user_id = $3 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, team.ID, team.Name, team.OwnerUserID); err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	return nil
}

// Delete elimina el equipo. Centros de costo, presupuestos y asignaciones de
// rol acotadas caen por cascade.
func (r *TeamRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM gg_team WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}

// ListAll equipos ordenados por nombre.
func (r *TeamRepo) ListAll(ctx context.Context) ([]*entity.Team, error) {
	return r.list(ctx, `SELECT `+teamColumns+` FROM gg_team ORDER BY name`)
}

// ListByOwner equipos de un owner.
func (r *TeamRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]*entity.Team, error) {
	return r.list(ctx, `SELECT `+teamColumns+` FROM gg_team WHERE owner_user_id = $1 ORDER BY name`, ownerUserID)
}

func (r *TeamRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Team, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()
	var list []*entity.Team
	for rows.Next() {
		var t entity.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.OwnerUserID, &t.CostCenterDefaultID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// SetDefaultCostCenter fija el centro de costo default del equipo.
func (r *TeamRepo) SetDefaultCostCenter(ctx context.Context, teamID, costCenterID string) error {
	query := `UPDATE gg_team SET cost_center_default_id = $2 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, teamID, costCenterID); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: centro de costo inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("set default cost center: %w", err)
	}
	return nil
}

const ccColumns = `id, team_id, code, name, active`

// CreateCostCenter alta de centro de costo; código repetido en el equipo es ErrConflict.
func (r *TeamRepo) CreateCostCenter(ctx context.Context, cc *entity.CostCenter) error {
	query := `
		INSERT INTO gg_cost_center (id, team_id, code, name, active)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, cc.ID, cc.TeamID, cc.Code, cc.Name, cc.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s ya existe en el equipo", domain.ErrConflict, cc.Code)
		}
		return fmt.Errorf("insert cost center: %w", err)
	}
	return nil
}

// GetCostCenter obtiene un centro de costo; (nil, nil) si no existe.
func (r *TeamRepo) GetCostCenter(ctx context.Context, id string) (*entity.CostCenter, error) {
	query := `SELECT ` + ccColumns + ` FROM gg_cost_center WHERE id = $1`
	var cc entity.CostCenter
	err := r.q.QueryRow(ctx, query, id).Scan(&cc.ID, &cc.TeamID, &cc.Code, &cc.Name, &cc.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cost center: %w", err)
	}
	return &cc, nil
}

// UpdateCostCenter actualiza código, nombre y estado.
func (r *TeamRepo) UpdateCostCenter(ctx context.Context, cc *entity.CostCenter) error {
	query := `UPDATE gg_cost_center SET code = $2, name = $3, active = $4 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, cc.ID, cc.Code, cc.Name, cc.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s ya existe en el equipo", domain.ErrConflict, cc.Code)
		}
		return fmt.Errorf("update cost center: %w", err)
	}
	return nil
}

// ListCostCenters centros de costo de un equipo, por código.
func (r *TeamRepo) ListCostCenters(ctx context.Context, teamID string) ([]*entity.CostCenter, error) {
	query := `SELECT ` + ccColumns + ` FROM gg_cost_center WHERE team_id = $1 ORDER BY code`
	rows, err := r.q.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("list cost centers: %w", err)
	}
	defer rows.Close()
	var list []*entity.CostCenter
	for rows.Next() {
		var cc entity.CostCenter
		if err := rows.Scan(&cc.ID, &cc.TeamID, &cc.Code, &cc.Name, &cc.Active); err != nil {
			return nil, fmt.Errorf("scan cost center: %w", err)
		}
		list = append(list, &cc)
	}
	return list, rows.Err()
}
