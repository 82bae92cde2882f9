package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greengotts/greengotts-api/internal/application/admin"
	"github.com/greengotts/greengotts-api/internal/application/team"
	"github.com/greengotts/greengotts-api/internal/domain/repository"
)

// Ensure TxRunner implements team.TxRunner and admin.TxRunner.
var _ team.TxRunner = (*TxRunner)(nil)
var _ admin.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunTeams inicia una transacción con repos de equipos y roles atados a la tx
// (para crear equipo + otorgar MANAGER al owner de forma atómica) y hace
// Commit o Rollback.
func (r *TxRunner) RunTeams(ctx context.Context, fn func(
	teams repository.TeamRepository,
	roles repository.RoleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewTeamRepository(tx), NewRoleRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAdmin inicia una transacción con repos de usuarios, equipos y roles
// (validación de referencias + escritura de rol en una sola tx).
func (r *TxRunner) RunAdmin(ctx context.Context, fn func(
	users repository.UserRepository,
	teams repository.TeamRepository,
	roles repository.RoleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserRepository(tx), NewTeamRepository(tx), NewRoleRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
